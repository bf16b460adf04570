package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/study_tracker/internal/client/llm"
	"github.com/Freeeeeet/study_tracker/internal/controller/common/formatting"
	"github.com/Freeeeeet/study_tracker/internal/controller/common/keyboard"
	"github.com/Freeeeeet/study_tracker/internal/controller/state"
	"github.com/Freeeeeet/study_tracker/internal/controller/wizard"
	"github.com/Freeeeeet/study_tracker/internal/model"
)

// stateHintText - ждём текст задания для подсказки ИИ
const stateHintText state.State = "hint:text"

// showTaskList показывает задания с учётом сохранённого фильтра
func (h *Handlers) showTaskList(c *Context, u wizard.User, page int) error {
	tasks, err := h.api.Labs(c.Ctx, u.ID)
	if err != nil {
		return err
	}
	disciplines, err := h.api.Disciplines(c.Ctx, u.ID)
	if err != nil {
		return err
	}
	names := model.DisciplineNames(disciplines)
	filter := c.Session.Get(dataTaskFilter)

	if filter == keyboard.FilterWeek {
		text := "📆 <b>Задания на неделю</b>\n\n" + WeekView(tasks, names, model.Today())
		return c.Reply(text, keyboard.TaskFilters())
	}

	tasks = FilterTasks(tasks, filter)
	header := fmt.Sprintf("%s\n%s · %d %s", entities[keyboard.EntityTask].title, filterTitle(filter, names),
		len(tasks), formatting.Plural(len(tasks), "задание", "задания", "заданий"))
	if len(tasks) == 0 {
		empty := entities[keyboard.EntityTask].empty
		if filter != "" {
			empty = "📭 Нет заданий по выбранному фильтру"
		}
		return c.Reply(empty, keyboard.TaskFilters())
	}

	items := make([]keyboard.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, keyboard.Item{ID: t.ID, Label: taskLabel(t)})
	}

	kb := keyboard.TaskFilters()
	kb.InlineKeyboard = append(kb.InlineKeyboard, keyboard.List(keyboard.EntityTask, items, page).InlineKeyboard...)
	return c.Reply(header, kb)
}

// handleFilter обрабатывает filter:all|week|status[:<status>]|disc[:<id>]
func (h *Handlers) handleFilter(c *Context, data string) error {
	rest := strings.TrimPrefix(data, keyboard.PrefixFilter)
	kind, value, hasValue := strings.Cut(rest, ":")

	switch kind {
	case keyboard.FilterAll:
		c.Session.Set(dataTaskFilter, "")
	case keyboard.FilterWeek:
		c.Session.Set(dataTaskFilter, keyboard.FilterWeek)
	case keyboard.FilterStatus:
		if !hasValue {
			return c.Reply("🏷 Выберите статус:", statusFilters())
		}
		if _, err := model.ParseStatus(value); err != nil {
			return ErrInvalidFormat
		}
		c.Session.Set(dataTaskFilter, keyboard.FilterStatus+":"+value)
	case keyboard.FilterDiscipline:
		if !hasValue {
			return h.showDisciplineFilters(c)
		}
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return ErrInvalidFormat
		}
		c.Session.Set(dataTaskFilter, keyboard.FilterDiscipline+":"+value)
	default:
		return ErrInvalidFormat
	}

	u, err := h.currentUser(c)
	if err != nil {
		return err
	}
	return h.showTaskList(c, u, 0)
}

func statusFilters() *models.InlineKeyboardMarkup {
	b := keyboard.NewBuilder()
	for _, s := range model.Statuses {
		b.Row(keyboard.Button(formatting.FormatStatus(s), keyboard.PrefixFilter+keyboard.FilterStatus+":"+string(s)))
	}
	b.Row(keyboard.Button(keyboard.BtnBack, keyboard.PrefixFilter+keyboard.FilterAll))
	return b.Build()
}

func (h *Handlers) showDisciplineFilters(c *Context) error {
	u, err := h.currentUser(c)
	if err != nil {
		return err
	}
	disciplines, err := h.api.Disciplines(c.Ctx, u.ID)
	if err != nil {
		return err
	}
	if len(disciplines) == 0 {
		return c.Reply("📭 У вас пока нет дисциплин", keyboard.TaskFilters())
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(disciplines))
	for _, d := range disciplines {
		buttons = append(buttons, keyboard.Button(d.Name, fmt.Sprintf("%s%s:%d", keyboard.PrefixFilter, keyboard.FilterDiscipline, d.ID)))
	}
	b := keyboard.NewBuilder().Grid(2, buttons...)
	b.Row(keyboard.Button(keyboard.BtnBack, keyboard.PrefixFilter+keyboard.FilterAll))
	return c.Reply("📚 Выберите дисциплину:", b.Build())
}

// sendTaskFiles отправляет вложения задания. Файл, который не удалось отправить, пропускается.
func (h *Handlers) sendTaskFiles(c *Context, data string) error {
	taskID, err := strconv.ParseInt(strings.TrimPrefix(data, keyboard.PrefixFiles), 10, 64)
	if err != nil {
		return ErrInvalidFormat
	}
	u, err := h.currentUser(c)
	if err != nil {
		return err
	}
	if _, err := h.findTask(c, u, taskID); err != nil {
		return err
	}

	files, err := h.api.LabFiles(c.Ctx, taskID)
	if err != nil {
		return notFound(err)
	}
	if len(files) == 0 {
		c.AnswerAlert("📭 К заданию не прикреплены файлы")
		return nil
	}
	c.Answer(fmt.Sprintf("📎 Отправляю %d %s", len(files), formatting.Plural(len(files), "файл", "файла", "файлов")))

	failed := 0
	for _, f := range files {
		if err := c.SendFile(string(f.FileType), f.FileName, f.FileData, ""); err != nil {
			failed++
			h.logger.Warn("Failed to send task file",
				zap.Int64("user_id", c.TelegramID),
				zap.Int64("file_id", f.ID),
				zap.String("file_name", f.FileName),
				zap.Error(err))
		}
	}
	if failed > 0 {
		return c.Send(fmt.Sprintf("⚠️ Не удалось отправить %d из %d %s", failed, len(files),
			formatting.Plural(len(files), "файла", "файлов", "файлов")), nil)
	}
	return nil
}

// handleAI обрабатывает ai:<id>:cur и ai:<id>:new
func (h *Handlers) handleAI(c *Context, data string) error {
	rawID, mode, ok := strings.Cut(strings.TrimPrefix(data, keyboard.PrefixAI), ":")
	if !ok {
		return ErrInvalidFormat
	}
	taskID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return ErrInvalidFormat
	}
	if h.llm == nil {
		return ErrLLMDisabled
	}

	u, err := h.currentUser(c)
	if err != nil {
		return err
	}
	task, err := h.findTask(c, u, taskID)
	if err != nil {
		return err
	}

	switch mode {
	case "cur":
		if task.TaskText == nil || strings.TrimSpace(*task.TaskText) == "" {
			return ErrNoTaskText
		}
		c.Answer("🤖 Готовлю подсказку...")
		return h.sendHint(c, *task.TaskText)
	case "new":
		c.Session.ResetDraft()
		c.Session.State = stateHintText
		c.Answer("")
		return c.Send("🤖 Отправьте текст задания одним сообщением.\n\n/cancel - отмена", nil)
	}
	return ErrInvalidFormat
}

// hintForText отвечает подсказкой на присланный текст задания
func (h *Handlers) hintForText(c *Context, text string) error {
	c.Session.State = state.StateIdle
	if strings.TrimSpace(text) == "" {
		c.Session.State = stateHintText
		return c.Send("⚠️ Отправьте текст задания", nil)
	}
	if h.llm == nil {
		return ErrLLMDisabled
	}
	return h.sendHint(c, text)
}

func (h *Handlers) sendHint(c *Context, taskText string) error {
	h.logger.Info("LLM hint requested", zap.Int64("user_id", c.TelegramID), zap.Int("text_len", len(taskText)))

	answer, err := h.llm.Hint(c.Ctx, taskText)
	if err != nil {
		return err
	}
	_, err = c.Bot.SendMessage(c.Ctx, &bot.SendMessageParams{
		ChatID:    c.ChatID,
		Text:      "🤖 " + llm.EscapeMarkdownV2(answer),
		ParseMode: models.ParseModeMarkdown,
	})
	return err
}
