// Package menu - дерево меню бота как конечный автомат
package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/Freeeeeet/study_tracker/internal/controller/state"
)

type Menu string

const (
	Main           Menu = "main"
	Tasks          Menu = "tasks"
	TaskList       Menu = "task_list"
	TaskItem       Menu = "task_item"
	Gantt          Menu = "gantt"
	Kanban         Menu = "kanban"
	Lessons        Menu = "lessons"
	LessonList     Menu = "lesson_list"
	LessonItem     Menu = "lesson_item"
	Disciplines    Menu = "disciplines"
	DisciplineList Menu = "discipline_list"
	DisciplineItem Menu = "discipline_item"
	Teachers       Menu = "teachers"
	TeacherList    Menu = "teacher_list"
	TeacherItem    Menu = "teacher_item"
	Settings       Menu = "settings"
)

// Event - нажатие кнопки навигации
type Event string

const (
	OpenTasks       Event = "open_tasks"
	OpenGantt       Event = "open_gantt"
	OpenKanban      Event = "open_kanban"
	OpenLessons     Event = "open_lessons"
	OpenDisciplines Event = "open_disciplines"
	OpenTeachers    Event = "open_teachers"
	OpenSettings    Event = "open_settings"
	OpenList        Event = "list"
	OpenItem        Event = "item"
	Back            Event = "back"
	ToMain          Event = "main"
)

var all = []Menu{
	Main, Tasks, TaskList, TaskItem, Gantt, Kanban, Lessons, LessonList, LessonItem,
	Disciplines, DisciplineList, DisciplineItem, Teachers, TeacherList, TeacherItem, Settings,
}

// parents - куда ведёт "Назад"
var parents = map[Menu]Menu{
	Tasks:          Main,
	TaskList:       Tasks,
	TaskItem:       TaskList,
	Gantt:          Main,
	Kanban:         Main,
	Lessons:        Main,
	LessonList:     Lessons,
	LessonItem:     LessonList,
	Disciplines:    Main,
	DisciplineList: Disciplines,
	DisciplineItem: DisciplineList,
	Teachers:       Main,
	TeacherList:    Teachers,
	TeacherItem:    TeacherList,
	Settings:       Main,
}

var sections = map[Event]Menu{
	OpenTasks:       Tasks,
	OpenGantt:       Gantt,
	OpenKanban:      Kanban,
	OpenLessons:     Lessons,
	OpenDisciplines: Disciplines,
	OpenTeachers:    Teachers,
	OpenSettings:    Settings,
}

// lists - раздел -> список -> элемент
var lists = map[Menu]Menu{
	Tasks:       TaskList,
	Lessons:     LessonList,
	Disciplines: DisciplineList,
	Teachers:    TeacherList,
}

func names(menus []Menu) []string {
	out := make([]string, len(menus))
	for i, m := range menus {
		out[i] = string(m)
	}
	return out
}

func events() fsm.Events {
	src := names(all)
	evs := fsm.Events{
		{Name: string(ToMain), Src: src, Dst: string(Main)},
	}
	for ev, dst := range sections {
		evs = append(evs, fsm.EventDesc{Name: string(ev), Src: src, Dst: string(dst)})
	}
	for m, parent := range parents {
		evs = append(evs, fsm.EventDesc{Name: string(Back), Src: []string{string(m)}, Dst: string(parent)})
	}
	for section, list := range lists {
		evs = append(evs,
			fsm.EventDesc{Name: string(OpenList), Src: []string{string(section)}, Dst: string(list)},
			fsm.EventDesc{Name: string(OpenItem), Src: []string{string(list)}, Dst: string(itemOf(list))},
		)
	}
	return evs
}

func itemOf(list Menu) Menu {
	switch list {
	case TaskList:
		return TaskItem
	case LessonList:
		return LessonItem
	case DisciplineList:
		return DisciplineItem
	case TeacherList:
		return TeacherItem
	}
	return list
}

// Navigator хранит положение пользователя в меню
type Navigator struct {
	fsm *fsm.FSM
}

// New восстанавливает навигатор из сохранённого пункта меню
func New(current string) *Navigator {
	if !known(Menu(current)) {
		current = string(Main)
	}
	return &Navigator{fsm: fsm.NewFSM(current, events(), fsm.Callbacks{})}
}

func known(m Menu) bool {
	for _, k := range all {
		if k == m {
			return true
		}
	}
	return false
}

func (n *Navigator) Current() Menu {
	return Menu(n.fsm.Current())
}

func (n *Navigator) Can(ev Event) bool {
	return n.fsm.Can(string(ev))
}

// Fire выполняет переход. Повторный вход в текущий пункт не ошибка.
func (n *Navigator) Fire(ctx context.Context, ev Event) (Menu, error) {
	err := n.fsm.Event(ctx, string(ev))
	var noTransition fsm.NoTransitionError
	if err != nil && !errors.As(err, &noTransition) {
		return n.Current(), fmt.Errorf("menu %s: %s: %w", n.Current(), ev, err)
	}
	return n.Current(), nil
}

// Navigate переводит меню сессии и сбрасывает незавершённый мастер
func Navigate(ctx context.Context, s *state.Session, ev Event) (Menu, error) {
	n := New(s.Menu)
	m, err := n.Fire(ctx, ev)
	if err != nil {
		return m, err
	}
	s.ResetDraft()
	s.Menu = string(m)
	return m, nil
}

// Parent возвращает пункт, в который ведёт "Назад"
func Parent(m Menu) Menu {
	if p, ok := parents[m]; ok {
		return p
	}
	return Main
}

// into - событие, которое открывает m из родительского пункта
func into(m Menu) Event {
	for ev, section := range sections {
		if section == m {
			return ev
		}
	}
	for _, list := range lists {
		if list == m {
			return OpenList
		}
		if itemOf(list) == m {
			return OpenItem
		}
	}
	return ToMain
}

// Enter переводит сессию в пункт target цепочкой раздел -> список -> элемент.
// Нужен для inline кнопок старых сообщений, когда пользователь уже ушёл в другой раздел.
func Enter(ctx context.Context, s *state.Session, target Menu) (Menu, error) {
	if !known(target) {
		return Menu(s.Menu), fmt.Errorf("unknown menu %q", target)
	}
	var chain []Event
	for m := target; m != Main; m = Parent(m) {
		chain = append([]Event{into(m)}, chain...)
	}
	if len(chain) == 0 {
		chain = []Event{ToMain}
	}

	current := Menu(s.Menu)
	for _, ev := range chain {
		m, err := Navigate(ctx, s, ev)
		if err != nil {
			return m, err
		}
		current = m
	}
	return current, nil
}
