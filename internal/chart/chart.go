// Package chart рисует диаграмму Ганта и канбан-доску по заданиям пользователя
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"sort"

	"github.com/fogleman/gg"

	"github.com/Freeeeeet/study_tracker/internal/model"
)

// ErrNoTasks - после фильтрации не осталось заданий
var ErrNoTasks = errors.New("no tasks to draw")

// Period - фильтр диаграммы Ганта
type Period string

const (
	PeriodAll      Period = "all"
	PeriodMonth    Period = "month"
	PeriodTwoWeeks Period = "weeks"
)

// ParsePeriod принимает all, month или weeks
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodAll, PeriodMonth, PeriodTwoWeeks:
		return p, nil
	}
	return "", fmt.Errorf("unknown chart period %q", s)
}

// Цветовая схема
var (
	bgColor       = color.RGBA{245, 246, 248, 255}
	textColor     = color.RGBA{40, 44, 48, 255}
	mutedColor    = color.RGBA{110, 115, 120, 255}
	gridColor     = color.NRGBA{150, 150, 150, 120}
	todayColor    = color.NRGBA{255, 80, 80, 220}
	overdueColor  = color.RGBA{220, 60, 60, 255}
	columnBgColor = color.RGBA{232, 234, 237, 255}
	cardColor     = color.RGBA{255, 255, 255, 255}
	shadowColor   = color.RGBA{0, 0, 0, 20}

	statusColors = map[model.Status]color.RGBA{
		model.StatusNotStarted: {0xde, 0xde, 0xde, 0xff},
		model.StatusInProgress: {0x66, 0xe3, 0xff, 0xff},
		model.StatusDone:       {0xdd, 0xb3, 0xfc, 0xff},
		model.StatusSubmitted:  {0x66, 0xff, 0x87, 0xff},
	}
)

// StatusColor возвращает цвет статуса на диаграммах
func StatusColor(s model.Status) color.RGBA {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return statusColors[model.StatusNotStarted]
}

// Select оставляет задания, попадающие в период.
// Месяц: начало раньше начала следующего месяца и конец не раньше начала текущего.
// Две недели: пересечение с окном [today-7, today+7].
func Select(tasks []model.Task, p Period, today model.Date) []model.Task {
	var from, to model.Date
	switch p {
	case PeriodMonth:
		from = model.NewDate(today.Year(), today.Month(), 1)
		next := model.Date{Time: from.AddDate(0, 1, 0)}
		to = next.AddDays(-1)
	case PeriodTwoWeeks:
		from = today.AddDays(-7)
		to = today.AddDays(7)
	default:
		out := make([]model.Task, len(tasks))
		copy(out, tasks)
		return out
	}

	var out []model.Task
	for _, t := range tasks {
		if !t.StartDate.After(to) && !t.EndDate.Before(from) {
			out = append(out, t)
		}
	}
	return out
}

// sortByStart сортирует по дате начала, затем по сроку сдачи
func sortByStart(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if !tasks[i].StartDate.Equal(tasks[j].StartDate.Time) {
			return tasks[i].StartDate.Before(tasks[j].StartDate)
		}
		return tasks[i].EndDate.Before(tasks[j].EndDate)
	})
}

func label(t model.Task, disciplines map[int64]string) string {
	if name, ok := disciplines[t.DisciplineID]; ok && name != "" {
		return name + ": " + t.Name
	}
	return t.Name
}

func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// drawLegend рисует легенду статусов в строку начиная с (x, y)
func drawLegend(dc *gg.Context, x, y float64) {
	loadFont(dc, legendFontSize, FontRegular)
	for _, s := range model.Statuses {
		dc.SetColor(StatusColor(s))
		dc.DrawRoundedRectangle(x, y-10, 20, 20, 4)
		dc.Fill()
		dc.SetColor(textColor)
		dc.DrawStringAnchored(s.Label(), x+28, y, 0, 0.35)
		w, _ := dc.MeasureString(s.Label())
		x += 28 + w + 30
	}
}
