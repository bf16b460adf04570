package handlers

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/study_tracker/internal/chart"
	"github.com/Freeeeeet/study_tracker/internal/controller/common/keyboard"
	"github.com/Freeeeeet/study_tracker/internal/model"
)

var periodCaptions = map[chart.Period]string{
	chart.PeriodAll:      "📊 Диаграмма Ганта: все задания",
	chart.PeriodMonth:    "📊 Диаграмма Ганта: текущий месяц",
	chart.PeriodTwoWeeks: "📊 Диаграмма Ганта: две недели",
}

// handleGantt обрабатывает gantt:<period>
func (h *Handlers) handleGantt(c *Context, data string) error {
	period, err := chart.ParsePeriod(strings.TrimPrefix(data, keyboard.PrefixGantt))
	if err != nil {
		return ErrInvalidFormat
	}
	tasks, names, err := h.chartData(c)
	if err != nil {
		return err
	}

	c.Answer("⏳ Рисую диаграмму...")
	png, err := chart.Gantt(tasks, names, period, model.Today())
	if err != nil {
		return err
	}
	return h.sendChart(c, fmt.Sprintf("gantt_%s.png", period), png, periodCaptions[period])
}

// sendKanban отправляет канбан-доску
func (h *Handlers) sendKanban(c *Context) error {
	tasks, names, err := h.chartData(c)
	if err != nil {
		return err
	}
	png, err := chart.Kanban(tasks, names, model.Today())
	if err != nil {
		return err
	}
	return h.sendChart(c, "kanban.png", png, "🗂 Канбан-доска")
}

func (h *Handlers) chartData(c *Context) ([]model.Task, map[int64]string, error) {
	u, err := h.currentUser(c)
	if err != nil {
		return nil, nil, err
	}
	tasks, err := h.api.Labs(c.Ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}
	disciplines, err := h.api.Disciplines(c.Ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}
	return tasks, model.DisciplineNames(disciplines), nil
}

// sendChart отправляет картинку и её же документом без сжатия
func (h *Handlers) sendChart(c *Context, name string, png []byte, caption string) error {
	photoErr := c.SendFile(string(model.FileTypePhoto), name, png, caption)
	if photoErr != nil {
		h.logger.Warn("Failed to send chart photo", zap.Int64("user_id", c.TelegramID), zap.Error(photoErr))
	}
	docErr := c.SendFile(string(model.FileTypeDocument), name, png, "")
	if docErr != nil {
		h.logger.Warn("Failed to send chart document", zap.Int64("user_id", c.TelegramID), zap.Error(docErr))
	}
	if photoErr != nil && docErr != nil {
		return photoErr
	}
	return nil
}
