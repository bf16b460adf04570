package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/study_tracker/internal/client/backend"
	"github.com/Freeeeeet/study_tracker/internal/client/petrsu"
	"github.com/Freeeeeet/study_tracker/internal/controller/common/formatting"
	"github.com/Freeeeeet/study_tracker/internal/controller/common/keyboard"
	"github.com/Freeeeeet/study_tracker/internal/controller/wizard"
)

// showSettings показывает статус студента и группу
func (h *Handlers) showSettings(c *Context) error {
	status, err := h.api.UserStatus(c.Ctx, c.TelegramID)
	if backend.IsNotFound(err) {
		return ErrNotRegistered
	}
	if err != nil {
		return err
	}

	text := "⚙️ <b>Настройки</b>\n\n"
	if status.IsPetrSUStudent {
		text += fmt.Sprintf("🎓 Студент ПетрГУ\n👥 Группа: <b>%s</b>", formatting.OrDash(status.Group))
	} else {
		text += "👤 Вы не студент ПетрГУ.\nСтуденты могут загружать дисциплины и преподавателей из расписания."
	}
	return c.Reply(text, keyboard.Settings(status.IsPetrSUStudent))
}

// handleSettings обрабатывает set:group и set:status
func (h *Handlers) handleSettings(c *Context, data string) error {
	switch strings.TrimPrefix(data, keyboard.PrefixSettings) {
	case "group":
		return h.startWizard(c, wizard.FlowGroup)
	case "status":
		isStudent, err := h.isStudent(c)
		if err != nil {
			return err
		}
		if !isStudent {
			return h.startWizard(c, wizard.FlowStudent)
		}
		if err := h.api.ChangeUserStatus(c.Ctx, c.TelegramID, false, ""); err != nil {
			return err
		}
		h.logger.Info("Student status removed", zap.Int64("user_id", c.TelegramID))
		c.Answer("✅ Статус изменён")
		return h.showSettings(c)
	}
	return ErrInvalidFormat
}

// showImport показывает преподавателей из расписания группы, которых ещё нет у пользователя
func (h *Handlers) showImport(c *Context, page int) error {
	u, err := h.currentUser(c)
	if err != nil {
		return err
	}
	status, err := h.api.UserStatus(c.Ctx, c.TelegramID)
	if err != nil {
		return err
	}
	if !status.IsPetrSUStudent || status.Group == "" {
		return ErrNotStudent
	}

	schedule, err := h.petrsu.Schedule(c.Ctx, status.Group)
	if err != nil {
		return err
	}
	teachers, err := h.api.Teachers(c.Ctx, u.ID)
	if err != nil {
		return err
	}
	existing := make([]string, 0, len(teachers))
	for _, t := range teachers {
		existing = append(existing, t.Name)
	}

	names := petrsu.Exclude(petrsu.Lecturers(schedule), existing)
	c.Session.Set(dataImport, strings.Join(names, "\n"))
	return h.renderImport(c, names, page)
}

func (h *Handlers) renderImport(c *Context, names []string, page int) error {
	if len(names) == 0 {
		return c.Reply("✅ Все преподаватели из расписания уже добавлены", nil)
	}

	b := keyboard.NewBuilder()
	pageNames, page, _ := keyboard.Page(names, page)
	for _, name := range pageNames {
		b.Row(keyboard.Button("➕ "+name, keyboard.PrefixImportAdd+wizard.StableID(name)))
	}
	b.AddPagination(keyboard.PrefixImportPage, page, len(names))
	return c.Reply("🎓 <b>Преподаватели из расписания</b>\n\nНажмите, чтобы добавить:", b.Build())
}

// importNames - список, показанный пользователю последним
func importNames(c *Context) []string {
	raw := c.Session.Get(dataImport)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}

// handleImport обрабатывает imp:page:<n> и imp:add:<stable id>
func (h *Handlers) handleImport(c *Context, data string) error {
	switch {
	case strings.HasPrefix(data, keyboard.PrefixImportPage):
		page, err := strconv.Atoi(strings.TrimPrefix(data, keyboard.PrefixImportPage))
		if err != nil {
			return ErrInvalidFormat
		}
		names := importNames(c)
		if names == nil {
			return h.showImport(c, page)
		}
		return h.renderImport(c, names, page)

	case strings.HasPrefix(data, keyboard.PrefixImportAdd):
		id := strings.TrimPrefix(data, keyboard.PrefixImportAdd)
		names := importNames(c)
		idx := -1
		for i, name := range names {
			if wizard.StableID(name) == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrStale
		}

		u, err := h.currentUser(c)
		if err != nil {
			return err
		}
		name := names[idx]
		if _, err := h.api.AddTeacher(c.Ctx, backend.NewTeacher{UserID: u.ID, Name: name, IsFromAPI: true}); err != nil {
			return err
		}
		h.logger.Info("Teacher imported from schedule", zap.Int64("user_id", c.TelegramID), zap.String("name", name))
		c.Answer("✅ Добавлен: " + name)

		names = append(names[:idx], names[idx+1:]...)
		c.Session.Set(dataImport, strings.Join(names, "\n"))
		return h.renderImport(c, names, idx/keyboard.PageSize)
	}
	return ErrInvalidFormat
}
