// Package controller собирает Telegram бота: обработчики обновлений и рассылку напоминаний
package controller

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/study_tracker/internal/app"
	"github.com/Freeeeeet/study_tracker/internal/controller/handlers"
)

type BotController struct {
	bot       *bot.Bot
	handlers  *handlers.Handlers
	reminders *app.ReminderScheduler
	logger    *zap.Logger
}

// NewBotController создаёт бота. Сообщения без команды уходят в HandleMessage.
func NewBotController(
	token string,
	h *handlers.Handlers,
	deadlines app.DeadlineSource,
	reminderHour int,
	logger *zap.Logger,
) (*BotController, error) {
	b, err := bot.New(token, bot.WithDefaultHandler(h.HandleMessage))
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	c := &BotController{
		bot:      b,
		handlers: h,
		logger:   logger,
	}
	c.reminders = app.NewReminderScheduler(deadlines, c.notify, reminderHour, logger)
	return c, nil
}

// RegisterHandlers регистрирует команды, inline кнопки и меню команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	return c.handlers.Register(ctx, c.bot)
}

// notify отправляет напоминание пользователю
func (c *BotController) notify(ctx context.Context, telegramID int64, text string) error {
	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    telegramID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	return err
}

// Start запускает напоминания и long polling до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.reminders.Start(ctx)
	defer c.reminders.Stop()

	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	c.logger.Info("Bot stopped")
	return nil
}
