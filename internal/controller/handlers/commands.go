package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Freeeeeet/study_tracker/internal/controller/common/formatting"
	"github.com/Freeeeeet/study_tracker/internal/controller/common/keyboard"
	"github.com/Freeeeeet/study_tracker/internal/controller/menu"
	"github.com/Freeeeeet/study_tracker/internal/controller/state"
	"github.com/Freeeeeet/study_tracker/internal/controller/wizard"
)

// HandleStart обрабатывает команду /start: приветствие или регистрация
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.withMessage(ctx, b, update.Message, func(c *Context) error {
		exists, err := h.api.CheckUser(ctx, c.TelegramID)
		if err != nil {
			return err
		}

		name := formatting.Escape(update.Message.From.FirstName)
		if exists {
			if _, err := menu.Navigate(ctx, c.Session, menu.ToMain); err != nil {
				return err
			}
			return c.Send(fmt.Sprintf("👋 С возвращением, %s!", name), keyboard.MainMenu())
		}

		h.logger.Info("Starting registration", zap.Int64("user_id", c.TelegramID))
		if err := c.Send(fmt.Sprintf(
			"👋 Привет, %s!\n\n"+
				"Я помогу следить за лабораторными, занятиями и сроками сдачи.\n"+
				"Для начала ответьте на пару вопросов.", name), nil); err != nil {
			return err
		}
		return h.startWizard(c, wizard.FlowUser)
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.withMessage(ctx, b, update.Message, func(c *Context) error {
		return c.Send("📚 <b>Справка</b>\n\n"+
			"<b>Задания</b> - лабораторные работы со сроками, файлами и статусами\n"+
			"<b>Диаграмма Ганта</b> и <b>Канбан-доска</b> - задания на картинке\n"+
			"<b>Занятия</b> - расписание с периодичностью\n"+
			"<b>Дисциплины</b> и <b>Преподаватели</b> - справочники, студенты ПетрГУ могут загрузить их из расписания\n"+
			"<b>Настройки</b> - группа и статус студента\n\n"+
			"/menu - главное меню\n"+
			"/cancel - отменить текущее действие", nil)
	})
}

// HandleMenu обрабатывает команду /menu - возврат в главное меню со сбросом мастера
func (h *Handlers) HandleMenu(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.withMessage(ctx, b, update.Message, func(c *Context) error {
		return h.navigate(c, menu.ToMain)
	})
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.withMessage(ctx, b, update.Message, func(c *Context) error {
		s := c.Session
		if h.engine.Active(s) {
			u, err := h.wizardUser(c)
			if err != nil {
				return err
			}
			return h.render(c, h.engine.Handle(ctx, u, s, wizard.Cancel()))
		}
		if s.State != state.StateIdle {
			s.ResetDraft()
			return c.Send("✅ Операция отменена.", nil)
		}
		return c.Send("❌ Нет активных операций для отмены.", nil)
	})
}

// HandleMessage обрабатывает сообщения без команды: кнопки меню, ввод в мастере, файлы
func (h *Handlers) HandleMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	h.withMessage(ctx, b, msg, func(c *Context) error {
		text := strings.TrimSpace(msg.Text)
		if strings.HasPrefix(text, "/") {
			return c.Send("🤔 Неизвестная команда. Список команд: /help", nil)
		}

		h.logger.Debug("Message received",
			zap.Int64("user_id", c.TelegramID),
			zap.String("state", string(c.Session.State)))

		// Кнопки меню работают из любого состояния и прерывают мастер
		if ev, ok := keyboard.MenuEvent(text); ok {
			return h.navigate(c, ev)
		}
		if action, ok := sectionActions[text]; ok {
			return action(h, c)
		}

		if ref, ok := fileRef(msg); ok {
			if !h.engine.Active(c.Session) {
				return c.Send("📎 Файлы можно прикрепить при добавлении задания", nil)
			}
			return h.handleWizardEvent(c, wizard.File(ref))
		}

		switch {
		case h.engine.Active(c.Session):
			return h.handleWizardEvent(c, wizard.Text(text))
		case c.Session.State == stateHintText:
			return h.hintForText(c, text)
		}
		return c.Send("🤔 Не понимаю. Воспользуйтесь кнопками меню", keyboard.MainMenu())
	})
}

// fileRef извлекает вложение сообщения
func fileRef(msg *models.Message) (wizard.FileRef, bool) {
	switch {
	case msg.Document != nil:
		return wizard.FileRef{FileID: msg.Document.FileID, Type: "document", Name: fileName(msg.Document.FileName, ".bin")}, true
	case len(msg.Photo) > 0:
		// Последний размер - самый большой
		photo := msg.Photo[len(msg.Photo)-1]
		return wizard.FileRef{FileID: photo.FileID, Type: "photo", Name: fileName("", ".jpg")}, true
	case msg.Video != nil:
		return wizard.FileRef{FileID: msg.Video.FileID, Type: "video", Name: fileName(msg.Video.FileName, ".mp4")}, true
	case msg.Audio != nil:
		return wizard.FileRef{FileID: msg.Audio.FileID, Type: "audio", Name: fileName(msg.Audio.FileName, ".mp3")}, true
	}
	return wizard.FileRef{}, false
}

func fileName(name, ext string) string {
	if name != "" {
		return name
	}
	return uuid.NewString() + ext
}
