package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/study_tracker/internal/client/backend"
	"github.com/Freeeeeet/study_tracker/internal/controller/common/keyboard"
	"github.com/Freeeeeet/study_tracker/internal/controller/menu"
	"github.com/Freeeeeet/study_tracker/internal/controller/wizard"
	"github.com/Freeeeeet/study_tracker/internal/model"
)

// entityView связывает сущность с мастером и пунктами меню
type entityView struct {
	flow  string
	list  menu.Menu
	item  menu.Menu
	title string
	empty string
}

var entities = map[string]entityView{
	keyboard.EntityTask: {
		flow: wizard.FlowTask, list: menu.TaskList, item: menu.TaskItem,
		title: "📋 <b>Ваши задания</b>",
		empty: "📭 У вас пока нет заданий",
	},
	keyboard.EntityLesson: {
		flow: wizard.FlowLesson, list: menu.LessonList, item: menu.LessonItem,
		title: "🗓 <b>Ваши занятия</b>",
		empty: "📭 У вас пока нет занятий",
	},
	keyboard.EntityDiscipline: {
		flow: wizard.FlowDiscipline, list: menu.DisciplineList, item: menu.DisciplineItem,
		title: "📚 <b>Ваши дисциплины</b>",
		empty: "📭 У вас пока нет дисциплин",
	},
	keyboard.EntityTeacher: {
		flow: wizard.FlowTeacher, list: menu.TeacherList, item: menu.TeacherItem,
		title: "👩‍🏫 <b>Ваши преподаватели</b>",
		empty: "📭 У вас пока нет преподавателей",
	},
}

// itemCard - загруженная карточка записи
type itemCard struct {
	text  string
	seed  map[string]string
	extra [][]models.InlineKeyboardButton
}

// parseItemRef разбирает "<entity>:<id>"
func parseItemRef(s string) (string, int64, error) {
	entity, rawID, ok := strings.Cut(s, ":")
	if !ok {
		return "", 0, ErrInvalidFormat
	}
	if _, known := entities[entity]; !known {
		return "", 0, ErrInvalidFormat
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return "", 0, ErrInvalidFormat
	}
	return entity, id, nil
}

// parseItemAction разбирает "<entity>:<id>[:<field>]" после префикса
func parseItemAction(data, prefix string) (entity string, id int64, field string, err error) {
	rest := strings.TrimPrefix(data, prefix)
	parts := strings.SplitN(rest, ":", 3)
	if len(parts) < 2 {
		return "", 0, "", ErrInvalidFormat
	}
	entity, id, err = parseItemRef(parts[0] + ":" + parts[1])
	if len(parts) == 3 {
		field = parts[2]
	}
	return entity, id, field, err
}

// showList показывает страницу списка сущностей
func (h *Handlers) showList(c *Context, entity string, page int) error {
	view, ok := entities[entity]
	if !ok {
		return ErrInvalidFormat
	}
	u, err := h.currentUser(c)
	if err != nil {
		return err
	}

	header := view.title
	var items []keyboard.Item
	switch entity {
	case keyboard.EntityTask:
		return h.showTaskList(c, u, page)
	case keyboard.EntityLesson:
		items, err = h.lessonItems(c, u)
	case keyboard.EntityDiscipline:
		var disciplines []model.Discipline
		disciplines, err = h.api.Disciplines(c.Ctx, u.ID)
		for _, d := range disciplines {
			items = append(items, keyboard.Item{ID: d.ID, Label: "📚 " + d.Name})
		}
	case keyboard.EntityTeacher:
		var teachers []model.Teacher
		teachers, err = h.api.Teachers(c.Ctx, u.ID)
		for _, t := range teachers {
			items = append(items, keyboard.Item{ID: t.ID, Label: "👩‍🏫 " + t.Name})
		}
	}
	if err != nil {
		return err
	}

	if len(items) == 0 {
		return c.Reply(view.empty, nil)
	}
	return c.Reply(header, keyboard.List(entity, items, page))
}

func (h *Handlers) lessonItems(c *Context, u wizard.User) ([]keyboard.Item, error) {
	lessons, err := h.api.Lessons(c.Ctx, u.ID)
	if err != nil {
		return nil, err
	}
	disciplines, err := h.api.Disciplines(c.Ctx, u.ID)
	if err != nil {
		return nil, err
	}
	names := model.DisciplineNames(disciplines)

	sortLessons(lessons)
	items := make([]keyboard.Item, 0, len(lessons))
	for _, l := range lessons {
		items = append(items, keyboard.Item{ID: l.ID, Label: lessonLabel(l, names[l.DisciplineID])})
	}
	return items, nil
}

// showItem показывает карточку записи и запоминает её для возврата после изменения
func (h *Handlers) showItem(c *Context, entity string, id int64) error {
	view, ok := entities[entity]
	if !ok {
		return ErrInvalidFormat
	}
	card, err := h.loadItem(c, entity, id)
	if err != nil {
		return err
	}

	if _, err := menu.Enter(c.Ctx, c.Session, view.item); err != nil {
		return err
	}
	c.Session.Set(dataItem, fmt.Sprintf("%s:%d", entity, id))
	return c.Reply(card.text, keyboard.ItemMenu(entity, id, card.extra...))
}

// loadItem загружает запись пользователя. Чужая или удалённая запись - ErrItemNotFound.
func (h *Handlers) loadItem(c *Context, entity string, id int64) (*itemCard, error) {
	u, err := h.currentUser(c)
	if err != nil {
		return nil, err
	}

	switch entity {
	case keyboard.EntityTask:
		task, err := h.findTask(c, u, id)
		if err != nil {
			return nil, err
		}
		disciplines, err := h.api.Disciplines(c.Ctx, u.ID)
		if err != nil {
			return nil, err
		}
		names := model.DisciplineNames(disciplines)
		return &itemCard{
			text:  TaskCard(*task, names[task.DisciplineID], model.Today()),
			seed:  wizard.TaskSeed(*task),
			extra: keyboard.TaskExtras(task.ID),
		}, nil

	case keyboard.EntityLesson:
		lessons, err := h.api.Lessons(c.Ctx, u.ID)
		if err != nil {
			return nil, err
		}
		for _, l := range lessons {
			if l.ID != id {
				continue
			}
			disciplines, err := h.api.Disciplines(c.Ctx, u.ID)
			if err != nil {
				return nil, err
			}
			names := model.DisciplineNames(disciplines)
			return &itemCard{text: LessonCard(l, names[l.DisciplineID]), seed: wizard.LessonSeed(l)}, nil
		}
		return nil, ErrItemNotFound

	case keyboard.EntityDiscipline:
		d, err := h.api.Discipline(c.Ctx, id)
		if err != nil {
			return nil, notFound(err)
		}
		if d.UserID != u.ID {
			return nil, ErrItemNotFound
		}
		teacher := ""
		if d.TeacherID != nil {
			t, err := h.api.Teacher(c.Ctx, *d.TeacherID)
			switch {
			case err == nil:
				teacher = t.Name
			case !backend.IsNotFound(err):
				return nil, err
			}
		}
		return &itemCard{text: DisciplineCard(*d, teacher), seed: wizard.DisciplineSeed(*d)}, nil

	case keyboard.EntityTeacher:
		t, err := h.api.Teacher(c.Ctx, id)
		if err != nil {
			return nil, notFound(err)
		}
		if t.UserID != u.ID {
			return nil, ErrItemNotFound
		}
		return &itemCard{text: TeacherCard(*t), seed: wizard.TeacherSeed(*t)}, nil
	}
	return nil, ErrInvalidFormat
}

func (h *Handlers) findTask(c *Context, u wizard.User, id int64) (*model.Task, error) {
	tasks, err := h.api.Labs(c.Ctx, u.ID)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], nil
		}
	}
	return nil, ErrItemNotFound
}

func notFound(err error) error {
	if backend.IsNotFound(err) {
		return ErrItemNotFound
	}
	return err
}

// showEditFields показывает поля, доступные для изменения
func (h *Handlers) showEditFields(c *Context, entity string, id int64) error {
	view := entities[entity]
	def, ok := h.engine.Definition(view.flow)
	if !ok {
		return ErrInvalidFormat
	}
	card, err := h.loadItem(c, entity, id)
	if err != nil {
		return err
	}
	c.Session.Set(dataItem, fmt.Sprintf("%s:%d", entity, id))
	return c.Reply(card.text+"\n✏️ <b>Что изменить?</b>", keyboard.EditFields(entity, id, def.Editable))
}

// startItemEdit запускает мастер изменения одного поля
func (h *Handlers) startItemEdit(c *Context, entity string, id int64, field string) error {
	u, err := h.currentUser(c)
	if err != nil {
		return err
	}
	if entity == keyboard.EntityDiscipline && field == "name" {
		fromAPI, err := h.api.DisciplineFromAPI(c.Ctx, id)
		if err != nil {
			return notFound(err)
		}
		if fromAPI {
			return ErrAPINameLocked
		}
	}

	card, err := h.loadItem(c, entity, id)
	if err != nil {
		return err
	}
	if _, err := menu.Enter(c.Ctx, c.Session, entities[entity].item); err != nil {
		return err
	}
	c.Session.Set(dataItem, fmt.Sprintf("%s:%d", entity, id))
	c.Session.Set(dataMonth, "")

	h.logger.Info("Edit started",
		zap.Int64("user_id", c.TelegramID),
		zap.String("entity", entity),
		zap.Int64("id", id),
		zap.String("field", field))
	return h.render(c, h.engine.StartEdit(c.Ctx, u, c.Session, entities[entity].flow, id, field, card.seed))
}

// confirmDelete спрашивает подтверждение удаления
func (h *Handlers) confirmDelete(c *Context, entity string, id int64) error {
	card, err := h.loadItem(c, entity, id)
	if err != nil {
		return err
	}
	return c.Reply(card.text+"\n🗑 <b>Удалить запись?</b>", keyboard.ConfirmDelete(entity, id))
}

// deleteItem удаляет запись и возвращает к списку
func (h *Handlers) deleteItem(c *Context, entity string, id int64) error {
	if _, err := h.loadItem(c, entity, id); err != nil {
		return err
	}

	var err error
	switch entity {
	case keyboard.EntityTask:
		err = h.api.DeleteLab(c.Ctx, id)
	case keyboard.EntityLesson:
		err = h.api.DeleteLesson(c.Ctx, id)
	case keyboard.EntityDiscipline:
		err = h.api.DeleteDiscipline(c.Ctx, id)
	case keyboard.EntityTeacher:
		err = h.api.DeleteTeacher(c.Ctx, id)
	}
	if err != nil {
		return notFound(err)
	}

	h.logger.Info("Item deleted",
		zap.Int64("user_id", c.TelegramID),
		zap.String("entity", entity),
		zap.Int64("id", id))
	c.Answer("🗑 Удалено")
	c.Session.Set(dataItem, "")
	if _, err := menu.Enter(c.Ctx, c.Session, entities[entity].list); err != nil {
		return err
	}
	return h.showList(c, entity, 0)
}
