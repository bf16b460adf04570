package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/study_tracker/internal/controller/common/keyboard"
	"github.com/Freeeeeet/study_tracker/internal/controller/menu"
	"github.com/Freeeeeet/study_tracker/internal/controller/wizard"
)

// Ключи Session.Data, которыми пользуются обработчики
const (
	dataPage       = "wz_page"  // <state>|<page> - страница вариантов текущего шага
	dataMonth      = "wz_month" // месяц календаря YYYY-MM
	dataTaskFilter = "task_filter"
	dataItem       = "item" // <entity>:<id> - открытая карточка
	dataImport     = "import"
)

// wizardUser - автор действия для мастера. При регистрации id ещё нет.
func (h *Handlers) wizardUser(c *Context) (wizard.User, error) {
	if c.Session.Flow == wizard.FlowUser {
		return wizard.User{TelegramID: c.TelegramID}, nil
	}
	return h.currentUser(c)
}

// startWizard запускает мастер создания
func (h *Handlers) startWizard(c *Context, flow string) error {
	u := wizard.User{TelegramID: c.TelegramID}
	if flow != wizard.FlowUser {
		var err error
		if u, err = h.currentUser(c); err != nil {
			return err
		}
	}

	h.logger.Info("Wizard started", zap.Int64("user_id", c.TelegramID), zap.String("flow", flow))
	c.Session.Set(dataMonth, "")
	return h.render(c, h.engine.Start(c.Ctx, u, c.Session, flow))
}

func (h *Handlers) handleWizardEvent(c *Context, ev wizard.Event) error {
	u, err := h.wizardUser(c)
	if err != nil {
		return err
	}
	return h.render(c, h.engine.Handle(c.Ctx, u, c.Session, ev))
}

// handleWizardCallback обрабатывает wz:, wzp:, wzc: и wzm: кнопки
func (h *Handlers) handleWizardCallback(c *Context, data string) error {
	if !h.engine.Active(c.Session) {
		return ErrStale
	}

	switch {
	case strings.HasPrefix(data, keyboard.PrefixWizardPage):
		page, err := strconv.Atoi(strings.TrimPrefix(data, keyboard.PrefixWizardPage))
		if err != nil {
			return ErrInvalidFormat
		}
		c.Session.Set(dataPage, string(c.Session.State)+"|"+strconv.Itoa(page))
		return h.reprompt(c)
	case strings.HasPrefix(data, keyboard.PrefixCalendar):
		month := strings.TrimPrefix(data, keyboard.PrefixCalendar)
		if _, err := keyboard.ParseMonth(month); err != nil {
			return ErrInvalidFormat
		}
		c.Session.Set(dataMonth, month)
		return h.reprompt(c)
	case data == keyboard.CallbackMinuteText:
		c.Answer("")
		return c.Send("⌨️ Введите минуты числом от 0 до 59", nil)
	}

	ev, ok := wizard.ParseCallback(data)
	if !ok {
		return ErrInvalidFormat
	}
	return h.handleWizardEvent(c, ev)
}

func (h *Handlers) reprompt(c *Context) error {
	u, err := h.wizardUser(c)
	if err != nil {
		return err
	}
	return h.render(c, h.engine.Prompt(c.Ctx, u, c.Session))
}

// render показывает ответ мастера
func (h *Handlers) render(c *Context, r wizard.Reply) error {
	switch r.Kind {
	case wizard.ReplyIgnored:
		return ErrStale
	case wizard.ReplyPrompt:
		return c.Reply(promptText(r), h.stepKeyboard(c, r))
	case wizard.ReplyInvalid:
		text, kb := promptText(r), h.stepKeyboard(c, r)
		if r.Step == nil {
			// Ошибка на подтверждении
			text, kb = r.Summary, h.confirmKeyboard(c, r.Flow)
		}
		if c.Message != nil {
			c.AnswerAlert(ErrorMessage(r.Err))
			return c.Reply(text, kb)
		}
		return c.Send(ErrorMessage(r.Err)+"\n\n"+text, inline(kb))
	case wizard.ReplyAccepted:
		return c.Send(r.Message, inline(h.stepKeyboard(c, r)))
	case wizard.ReplyConfirm:
		return c.Reply(r.Summary, h.confirmKeyboard(c, r.Flow))
	case wizard.ReplyDone, wizard.ReplyEdited, wizard.ReplyCancelled:
		if err := c.Reply(r.Message, nil); err != nil {
			return err
		}
		return h.afterWizard(c, r)
	case wizard.ReplyFailed:
		return h.renderFailure(c, r)
	}
	return nil
}

// renderFailure: при ошибке отправки остаёмся на подтверждении или шаге, иначе мастер закрыт
func (h *Handlers) renderFailure(c *Context, r wizard.Reply) error {
	msg := ErrorMessage(r.Err)
	h.logger.Warn("Wizard failed",
		zap.Int64("user_id", c.TelegramID),
		zap.String("flow", r.Flow),
		zap.Error(r.Err))

	def, ok := h.engine.Definition(r.Flow)
	switch {
	case ok && c.Session.State == def.ConfirmState():
		return c.Send(msg+"\n\n"+r.Summary, inline(h.confirmKeyboard(c, r.Flow)))
	case r.Step != nil && h.engine.Active(c.Session):
		return c.Send(msg+"\n\n"+promptText(r), inline(h.stepKeyboard(c, r)))
	}
	if err := c.Send(msg, nil); err != nil {
		return err
	}
	return h.afterWizard(c, r)
}

func promptText(r wizard.Reply) string {
	if r.Step == nil {
		return ""
	}
	text := r.Step.Prompt
	if r.Editing {
		text = "✏️ " + text
	}
	if r.Step.Optional {
		text += "\n\n<i>Можно пропустить</i>"
	}
	if r.Step.Multi {
		text += "\n\n<i>Отправьте файлы и нажмите «Готово»</i>"
	}
	return text
}

func (h *Handlers) stepKeyboard(c *Context, r wizard.Reply) *models.InlineKeyboardMarkup {
	page := 0
	if st, p, ok := strings.Cut(c.Session.Get(dataPage), "|"); ok && st == string(c.Session.State) {
		page, _ = strconv.Atoi(p)
	}
	month := time.Now()
	if m, err := keyboard.ParseMonth(c.Session.Get(dataMonth)); err == nil {
		month = m
	}
	return keyboard.Step(r, page, month)
}

func (h *Handlers) confirmKeyboard(c *Context, flow string) *models.InlineKeyboardMarkup {
	def, ok := h.engine.Definition(flow)
	if !ok {
		return nil
	}
	return keyboard.Confirm(def.Editables(c.Session))
}

// flowEntities - сущность, которую создаёт мастер
var flowEntities = map[string]string{
	wizard.FlowTask:       keyboard.EntityTask,
	wizard.FlowLesson:     keyboard.EntityLesson,
	wizard.FlowDiscipline: keyboard.EntityDiscipline,
	wizard.FlowTeacher:    keyboard.EntityTeacher,
}

// afterWizard возвращает пользователя туда, откуда был запущен мастер
func (h *Handlers) afterWizard(c *Context, r wizard.Reply) error {
	// Результат мастера остаётся в чате, дальше - новое сообщение
	c.Message = nil

	switch r.Flow {
	case wizard.FlowUser:
		if r.Kind == wizard.ReplyDone {
			return c.Send("🏠 Главное меню", keyboard.MainMenu())
		}
		return c.Send("Регистрацию можно пройти позже командой /start", nil)
	case wizard.FlowGroup, wizard.FlowStudent:
		return h.showSettings(c)
	}

	entity, ok := flowEntities[r.Flow]
	if !ok {
		return nil
	}
	// Изменение из карточки - показываем обновлённую карточку
	if m := menu.Menu(c.Session.Menu); m == entities[entity].item {
		if e, id, err := parseItemRef(c.Session.Get(dataItem)); err == nil && e == entity {
			return h.showItem(c, entity, id)
		}
	}
	// Из раздела остаёмся в разделе, список показываем под ним
	list := entities[entity].list
	if menu.Menu(c.Session.Menu) != menu.Parent(list) {
		if _, err := menu.Enter(c.Ctx, c.Session, list); err != nil {
			return err
		}
	}
	return h.showList(c, entity, 0)
}
