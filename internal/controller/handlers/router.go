package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/study_tracker/internal/controller/common/keyboard"
	"github.com/Freeeeeet/study_tracker/internal/controller/wizard"
)

// HandleCallback обрабатывает нажатия inline кнопок
func (h *Handlers) HandleCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil {
		return
	}

	h.logger.Debug("Callback received",
		zap.String("callback_data", cb.Data),
		zap.Int64("user_id", cb.From.ID))

	h.withCallback(ctx, b, cb, func(c *Context) error {
		return h.routeCallback(c, cb.Data)
	})
}

func (h *Handlers) routeCallback(c *Context, data string) error {
	switch {
	case data == keyboard.Noop:
		return nil

	case strings.HasPrefix(data, keyboard.PrefixWizardPage),
		strings.HasPrefix(data, keyboard.PrefixCalendar),
		data == keyboard.CallbackMinuteText,
		strings.HasPrefix(data, wizard.CallbackPrefix):
		return h.handleWizardCallback(c, data)

	case strings.HasPrefix(data, keyboard.PrefixList):
		entity, rawPage, ok := strings.Cut(strings.TrimPrefix(data, keyboard.PrefixList), ":")
		page, err := strconv.Atoi(rawPage)
		if !ok || err != nil {
			return ErrInvalidFormat
		}
		if _, known := entities[entity]; !known {
			return ErrInvalidFormat
		}
		return h.showList(c, entity, page)

	case strings.HasPrefix(data, keyboard.PrefixItem):
		entity, id, err := parseItemRef(strings.TrimPrefix(data, keyboard.PrefixItem))
		if err != nil {
			return err
		}
		return h.showItem(c, entity, id)

	case strings.HasPrefix(data, keyboard.PrefixEditField):
		entity, id, field, err := parseItemAction(data, keyboard.PrefixEditField)
		if err != nil || field == "" {
			return ErrInvalidFormat
		}
		return h.startItemEdit(c, entity, id, field)

	case strings.HasPrefix(data, keyboard.PrefixEditMenu):
		entity, id, _, err := parseItemAction(data, keyboard.PrefixEditMenu)
		if err != nil {
			return err
		}
		return h.showEditFields(c, entity, id)

	case strings.HasPrefix(data, keyboard.PrefixDeleteOK):
		entity, id, _, err := parseItemAction(data, keyboard.PrefixDeleteOK)
		if err != nil {
			return err
		}
		return h.deleteItem(c, entity, id)

	case strings.HasPrefix(data, keyboard.PrefixDelete):
		entity, id, _, err := parseItemAction(data, keyboard.PrefixDelete)
		if err != nil {
			return err
		}
		return h.confirmDelete(c, entity, id)

	case strings.HasPrefix(data, keyboard.PrefixFilter):
		return h.handleFilter(c, data)
	case strings.HasPrefix(data, keyboard.PrefixFiles):
		return h.sendTaskFiles(c, data)
	case strings.HasPrefix(data, keyboard.PrefixAI):
		return h.handleAI(c, data)
	case strings.HasPrefix(data, keyboard.PrefixGantt):
		return h.handleGantt(c, data)
	case strings.HasPrefix(data, keyboard.PrefixSettings):
		return h.handleSettings(c, data)
	case strings.HasPrefix(data, keyboard.PrefixImportPage),
		strings.HasPrefix(data, keyboard.PrefixImportAdd):
		return h.handleImport(c, data)
	case data == keyboard.PrefixRegister+"start":
		return h.startWizard(c, wizard.FlowUser)
	}

	h.logger.Warn("Unknown callback", zap.String("callback_data", data), zap.Int64("user_id", c.TelegramID))
	return ErrStale
}
