package handlers

import (
	"go.uber.org/zap"

	"github.com/Freeeeeet/study_tracker/internal/controller/common/keyboard"
	"github.com/Freeeeeet/study_tracker/internal/controller/menu"
	"github.com/Freeeeeet/study_tracker/internal/controller/wizard"
)

var sectionTitles = map[menu.Menu]string{
	menu.Tasks:       "📋 <b>Задания</b>\n\nДобавьте лабораторную или посмотрите список.",
	menu.Lessons:     "🗓 <b>Занятия</b>\n\nДобавьте занятие или посмотрите расписание.",
	menu.Disciplines: "📚 <b>Дисциплины</b>",
	menu.Teachers:    "👩‍🏫 <b>Преподаватели</b>",
}

// sectionActions - кнопки разделов, которые не являются переходом по меню
var sectionActions = map[string]func(h *Handlers, c *Context) error{
	keyboard.BtnAddTask:         func(h *Handlers, c *Context) error { return h.startIn(c, menu.Tasks, wizard.FlowTask) },
	keyboard.BtnAddLesson:       func(h *Handlers, c *Context) error { return h.startIn(c, menu.Lessons, wizard.FlowLesson) },
	keyboard.BtnAddDiscipline:   func(h *Handlers, c *Context) error { return h.startIn(c, menu.Disciplines, wizard.FlowDiscipline) },
	keyboard.BtnAddTeacher:      func(h *Handlers, c *Context) error { return h.startIn(c, menu.Teachers, wizard.FlowTeacher) },
	keyboard.BtnListTasks:       func(h *Handlers, c *Context) error { return h.openList(c, keyboard.EntityTask) },
	keyboard.BtnListLessons:     func(h *Handlers, c *Context) error { return h.openList(c, keyboard.EntityLesson) },
	keyboard.BtnListDisciplines: func(h *Handlers, c *Context) error { return h.openList(c, keyboard.EntityDiscipline) },
	keyboard.BtnListTeachers:    func(h *Handlers, c *Context) error { return h.openList(c, keyboard.EntityTeacher) },
	keyboard.BtnImportTeachers:  func(h *Handlers, c *Context) error { return h.showImport(c, 0) },
}

// navigate выполняет переход по меню и показывает новый пункт
func (h *Handlers) navigate(c *Context, ev menu.Event) error {
	if ev == menu.Back && !menu.New(c.Session.Menu).Can(ev) {
		ev = menu.ToMain
	}
	m, err := menu.Navigate(c.Ctx, c.Session, ev)
	if err != nil {
		return err
	}
	h.logger.Debug("Menu changed", zap.Int64("user_id", c.TelegramID), zap.String("menu", string(m)))
	return h.showMenu(c, m)
}

func (h *Handlers) showMenu(c *Context, m menu.Menu) error {
	switch m {
	case menu.Tasks, menu.Lessons, menu.Disciplines:
		return c.Send(sectionTitles[m], keyboard.SectionMenu(m, false))
	case menu.Teachers:
		isStudent, err := h.isStudent(c)
		if err != nil {
			return err
		}
		return c.Send(sectionTitles[m], keyboard.SectionMenu(m, isStudent))
	case menu.Gantt:
		return c.Send("📊 <b>Диаграмма Ганта</b>\n\nВыберите период:", keyboard.GanttPeriods())
	case menu.Kanban:
		return h.sendKanban(c)
	case menu.Settings:
		return h.showSettings(c)
	case menu.TaskList:
		return h.showList(c, keyboard.EntityTask, 0)
	case menu.LessonList:
		return h.showList(c, keyboard.EntityLesson, 0)
	case menu.DisciplineList:
		return h.showList(c, keyboard.EntityDiscipline, 0)
	case menu.TeacherList:
		return h.showList(c, keyboard.EntityTeacher, 0)
	}
	return c.Send("🏠 Главное меню", keyboard.MainMenu())
}

func (h *Handlers) isStudent(c *Context) (bool, error) {
	status, err := h.api.UserStatus(c.Ctx, c.TelegramID)
	if err != nil {
		return false, err
	}
	return status.IsPetrSUStudent, nil
}

// startIn открывает раздел и запускает мастер добавления
func (h *Handlers) startIn(c *Context, section menu.Menu, flow string) error {
	if _, err := menu.Enter(c.Ctx, c.Session, section); err != nil {
		return err
	}
	return h.startWizard(c, flow)
}

// openList открывает список раздела с первой страницы
func (h *Handlers) openList(c *Context, entity string) error {
	view := entities[entity]
	if _, err := menu.Enter(c.Ctx, c.Session, view.list); err != nil {
		return err
	}
	if entity == keyboard.EntityTask {
		c.Session.Set(dataTaskFilter, "")
	}
	return h.showList(c, entity, 0)
}
