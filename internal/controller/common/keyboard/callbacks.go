package keyboard

// Префиксы callback data. Роутер обработчиков выбирает обработчик по префиксу.
const (
	Noop = "noop"

	PrefixWizardPage   = "wzp:" // wzp:<page>
	PrefixCalendar     = "wzc:" // wzc:<YYYY-MM>
	CallbackMinuteText = "wzm:other"

	PrefixList       = "list:"  // list:<entity>:<page>
	PrefixItem       = "item:"  // item:<entity>:<id>
	PrefixEditMenu   = "edit:"  // edit:<entity>:<id>
	PrefixEditField  = "editf:" // editf:<entity>:<id>:<field>
	PrefixDelete     = "del:"   // del:<entity>:<id>
	PrefixDeleteOK   = "delok:" // delok:<entity>:<id>
	PrefixFilter     = "filter:"
	PrefixFiles      = "files:" // files:<task id>
	PrefixAI         = "ai:"    // ai:<task id>:cur|new
	PrefixGantt      = "gantt:" // gantt:all|month|weeks
	PrefixSettings   = "set:"   // set:group|status
	PrefixImportPage = "imp:page:"
	PrefixImportAdd  = "imp:add:"
	PrefixRegister   = "reg:"
)

// Сущности в callback data
const (
	EntityTask       = "task"
	EntityLesson     = "lesson"
	EntityDiscipline = "discipline"
	EntityTeacher    = "teacher"
)

const (
	GanttAll   = "all"
	GanttMonth = "month"
	GanttWeeks = "weeks"
)

const (
	FilterAll        = "all"
	FilterStatus     = "status"
	FilterDiscipline = "disc"
	FilterWeek       = "week"
)
