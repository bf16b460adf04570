package keyboard

import (
	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/study_tracker/internal/controller/menu"
)

// Кнопки главного меню
const (
	BtnTasks       = "Задания"
	BtnGantt       = "Диаграмма Ганта"
	BtnKanban      = "Канбан-доска"
	BtnLessons     = "Занятия"
	BtnDisciplines = "Дисциплины"
	BtnTeachers    = "Преподаватели"
	BtnSettings    = "Настройки"
	BtnBack        = "⬅ Назад"
)

// Кнопки разделов
const (
	BtnAddTask         = "Добавить задание"
	BtnListTasks       = "Посмотреть список заданий"
	BtnAddLesson       = "Добавить занятие"
	BtnListLessons     = "Посмотреть список занятий"
	BtnAddDiscipline   = "Добавить дисциплину"
	BtnListDisciplines = "Посмотреть список дисциплин"
	BtnAddTeacher      = "Добавить преподавателя"
	BtnListTeachers    = "Посмотреть список преподавателей"
	BtnImportTeachers  = "Преподаватели из расписания"
)

var mainButtons = map[string]menu.Event{
	BtnTasks:       menu.OpenTasks,
	BtnGantt:       menu.OpenGantt,
	BtnKanban:      menu.OpenKanban,
	BtnLessons:     menu.OpenLessons,
	BtnDisciplines: menu.OpenDisciplines,
	BtnTeachers:    menu.OpenTeachers,
	BtnSettings:    menu.OpenSettings,
	BtnBack:        menu.Back,
}

// MenuEvent сопоставляет текст кнопки с событием навигации
func MenuEvent(text string) (menu.Event, bool) {
	ev, ok := mainButtons[text]
	return ev, ok
}

func reply(rows ...[]string) *models.ReplyKeyboardMarkup {
	kb := make([][]models.KeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]models.KeyboardButton, 0, len(row))
		for _, text := range row {
			buttons = append(buttons, models.KeyboardButton{Text: text})
		}
		kb = append(kb, buttons)
	}
	return &models.ReplyKeyboardMarkup{
		Keyboard:       kb,
		ResizeKeyboard: true,
	}
}

// MainMenu - постоянная клавиатура главного меню
func MainMenu() *models.ReplyKeyboardMarkup {
	return reply(
		[]string{BtnTasks},
		[]string{BtnGantt, BtnKanban},
		[]string{BtnLessons},
		[]string{BtnDisciplines, BtnTeachers},
		[]string{BtnSettings},
	)
}

// SectionMenu - клавиатура раздела. isStudent добавляет импорт из расписания ПетрГУ.
func SectionMenu(m menu.Menu, isStudent bool) *models.ReplyKeyboardMarkup {
	switch m {
	case menu.Tasks:
		return reply([]string{BtnAddTask}, []string{BtnListTasks}, []string{BtnBack})
	case menu.Lessons:
		return reply([]string{BtnAddLesson}, []string{BtnListLessons}, []string{BtnBack})
	case menu.Disciplines:
		return reply([]string{BtnAddDiscipline}, []string{BtnListDisciplines}, []string{BtnBack})
	case menu.Teachers:
		if isStudent {
			return reply([]string{BtnAddTeacher}, []string{BtnImportTeachers}, []string{BtnListTeachers}, []string{BtnBack})
		}
		return reply([]string{BtnAddTeacher}, []string{BtnListTeachers}, []string{BtnBack})
	}
	return MainMenu()
}

// Settings - inline клавиатура настроек
func Settings(isStudent bool) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	if isStudent {
		b.Row(Button("✏️ Изменить группу", PrefixSettings+"group"))
		b.Row(Button("🚫 Я не студент ПетрГУ", PrefixSettings+"status"))
	} else {
		b.Row(Button("🎓 Я студент ПетрГУ", PrefixSettings+"status"))
	}
	return b.Build()
}

// GanttPeriods - выбор периода диаграммы Ганта
func GanttPeriods() *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(Button("📊 Все задания", PrefixGantt+GanttAll)).
		Row(Button("🗓 Текущий месяц", PrefixGantt+GanttMonth)).
		Row(Button("⏱ Две недели", PrefixGantt+GanttWeeks)).
		Build()
}

// Register - начало регистрации
func Register() *models.InlineKeyboardMarkup {
	return NewBuilder().Row(Button("✅ Зарегистрироваться", PrefixRegister+"start")).Build()
}
