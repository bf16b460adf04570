package handlers

import (
	"bytes"
	"context"
	"errors"
	"html"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/study_tracker/internal/client/backend"
	"github.com/Freeeeeet/study_tracker/internal/controller/common/keyboard"
	"github.com/Freeeeeet/study_tracker/internal/controller/state"
	"github.com/Freeeeeet/study_tracker/internal/controller/wizard"
)

// Context содержит общие данные обработки одного обновления.
// Message задан для callback: это сообщение с нажатой кнопкой.
type Context struct {
	Ctx        context.Context
	Bot        *bot.Bot
	TelegramID int64
	ChatID     int64
	Message    *models.Message
	CallbackID string
	Session    *state.Session

	user     *wizard.User
	answered bool
	logger   *zap.Logger
}

// Answer отвечает на callback query
func (c *Context) Answer(text string) {
	c.answer(text, false)
}

// AnswerAlert отвечает на callback query с alert
func (c *Context) AnswerAlert(text string) {
	c.answer(text, true)
}

func (c *Context) answer(text string, alert bool) {
	if c.CallbackID == "" || c.answered {
		return
	}
	c.answered = true
	// Ответ на callback - обычный текст без разметки
	_, err := c.Bot.AnswerCallbackQuery(c.Ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: c.CallbackID,
		Text:            html.UnescapeString(text),
		ShowAlert:       alert,
	})
	if err != nil {
		c.logger.Warn("Failed to answer callback", zap.Int64("user_id", c.TelegramID), zap.Error(err))
	}
}

// Send отправляет новое сообщение (HTML)
func (c *Context) Send(text string, markup models.ReplyMarkup) error {
	_, err := c.Bot.SendMessage(c.Ctx, &bot.SendMessageParams{
		ChatID:      c.ChatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	return err
}

// Reply редактирует сообщение с кнопкой или отправляет новое, если это ответ на текст
func (c *Context) Reply(text string, kb *models.InlineKeyboardMarkup) error {
	if c.Message == nil {
		return c.Send(text, inline(kb))
	}

	_, err := c.Bot.EditMessageText(c.Ctx, &bot.EditMessageTextParams{
		ChatID:      c.ChatID,
		MessageID:   c.Message.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: inline(kb),
	})
	if err == nil || isMessageNotModified(err) {
		return nil
	}

	// Сообщение с фото или слишком старое - отправляем новое
	c.logger.Debug("Edit failed, sending new message", zap.Error(err))
	return c.Send(text, inline(kb))
}

// SendFile отправляет файл как фото или документ
func (c *Context) SendFile(kind, name string, data []byte, caption string) error {
	upload := &models.InputFileUpload{Filename: name, Data: bytes.NewReader(data)}

	var err error
	switch kind {
	case "photo":
		_, err = c.Bot.SendPhoto(c.Ctx, &bot.SendPhotoParams{ChatID: c.ChatID, Photo: upload, Caption: caption})
	case "video":
		_, err = c.Bot.SendVideo(c.Ctx, &bot.SendVideoParams{ChatID: c.ChatID, Video: upload, Caption: caption})
	case "audio":
		_, err = c.Bot.SendAudio(c.Ctx, &bot.SendAudioParams{ChatID: c.ChatID, Audio: upload, Caption: caption})
	default:
		_, err = c.Bot.SendDocument(c.Ctx, &bot.SendDocumentParams{ChatID: c.ChatID, Document: upload, Caption: caption})
	}
	return err
}

// inline не даёт передать типизированный nil в интерфейс ReplyMarkup
func inline(kb *models.InlineKeyboardMarkup) models.ReplyMarkup {
	if kb == nil {
		return nil
	}
	return kb
}

func isMessageNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}

// currentUser возвращает пользователя REST API по telegram id
func (h *Handlers) currentUser(c *Context) (wizard.User, error) {
	if c.user != nil {
		return *c.user, nil
	}
	id, err := h.api.UserID(c.Ctx, c.TelegramID)
	if backend.IsNotFound(err) {
		return wizard.User{}, ErrNotRegistered
	}
	if err != nil {
		return wizard.User{}, err
	}
	c.user = &wizard.User{TelegramID: c.TelegramID, ID: id}
	return *c.user, nil
}

// withMessage загружает сессию автора сообщения, выполняет fn и сохраняет сессию
func (h *Handlers) withMessage(ctx context.Context, b *bot.Bot, msg *models.Message, fn func(*Context) error) {
	if msg == nil || msg.From == nil {
		return
	}
	h.run(&Context{
		Ctx:        ctx,
		Bot:        b,
		TelegramID: msg.From.ID,
		ChatID:     msg.Chat.ID,
		logger:     h.logger,
	}, fn)
}

// withCallback делает то же для нажатия inline кнопки и всегда отвечает на callback
func (h *Handlers) withCallback(ctx context.Context, b *bot.Bot, cb *models.CallbackQuery, fn func(*Context) error) {
	c := &Context{
		Ctx:        ctx,
		Bot:        b,
		TelegramID: cb.From.ID,
		ChatID:     cb.From.ID,
		CallbackID: cb.ID,
		logger:     h.logger,
	}
	if msg := cb.Message.Message; msg != nil {
		c.Message = msg
		c.ChatID = msg.Chat.ID
	}
	h.run(c, fn)
	c.Answer("")
}

func (h *Handlers) run(c *Context, fn func(*Context) error) {
	unlock := h.lock(c.TelegramID)
	defer unlock()

	s, err := h.sessions.Load(c.Ctx, c.TelegramID)
	if err != nil {
		h.logger.Error("Failed to load session", zap.Int64("user_id", c.TelegramID), zap.Error(err))
		h.report(c, err)
		return
	}
	c.Session = s

	if err := fn(c); err != nil {
		h.logger.Warn("Handler failed", zap.Int64("user_id", c.TelegramID), zap.Error(err))
		h.report(c, err)
	}

	if err := h.sessions.Save(c.Ctx, c.TelegramID, c.Session); err != nil {
		h.logger.Error("Failed to save session", zap.Int64("user_id", c.TelegramID), zap.Error(err))
	}
}

// report показывает пользователю ошибку
func (h *Handlers) report(c *Context, err error) {
	text := ErrorMessage(err)
	if c.CallbackID != "" && !c.answered {
		c.AnswerAlert(text)
		return
	}

	var markup models.ReplyMarkup
	if errors.Is(err, ErrNotRegistered) {
		markup = keyboard.Register()
	}
	if sendErr := c.Send(text, markup); sendErr != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", c.ChatID),
			zap.String("text", text),
			zap.Error(sendErr))
	}
}
