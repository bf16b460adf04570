package keyboard

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/study_tracker/internal/controller/common/formatting"
	"github.com/Freeeeeet/study_tracker/internal/controller/wizard"
)

// Step строит клавиатуру шага мастера. page - страница вариантов, month - месяц календаря.
func Step(r wizard.Reply, page int, month time.Time) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	step := r.Step
	if step == nil {
		return b.Build()
	}

	switch step.Input {
	case wizard.InputOptions:
		items, page, _ := Page(r.Options, page)
		for _, o := range items {
			b.Row(Button(o.Label, wizard.Choose(o.ID).Callback()))
		}
		b.AddPagination(PrefixWizardPage, page, len(r.Options))
	case wizard.InputCalendar:
		b.calendar(month)
	case wizard.InputHour:
		b.Grid(6, hours()...)
	case wizard.InputMinute:
		b.Grid(6, minutes()...)
		b.Row(Button("Другое", CallbackMinuteText))
	case wizard.InputYesNo:
		b.Row(
			Button("✅ Да", wizard.Choose(wizard.Yes).Callback()),
			Button("❌ Нет", wizard.Choose(wizard.No).Callback()),
		)
	}

	var controls []models.InlineKeyboardButton
	if step.Optional {
		controls = append(controls, Button("⏭ Пропустить", wizard.Skip().Callback()))
	}
	if step.Multi {
		controls = append(controls, Button("✅ Готово", wizard.Finish().Callback()))
	}
	b.Row(controls...)
	b.Row(Button("❌ Отмена", wizard.Cancel().Callback()))
	return b.Build()
}

// Confirm - подтверждение черновика с кнопками изменения доступных полей
func Confirm(editable []wizard.Editable) *models.InlineKeyboardMarkup {
	b := NewBuilder().Row(Button("✅ Сохранить", wizard.Submit().Callback()))
	edits := make([]models.InlineKeyboardButton, 0, len(editable))
	for _, e := range editable {
		edits = append(edits, Button("✏️ "+e.Label, wizard.EditField(e.Field).Callback()))
	}
	b.Grid(2, edits...)
	b.Row(Button("❌ Отмена", wizard.Cancel().Callback()))
	return b.Build()
}

func hours() []models.InlineKeyboardButton {
	out := make([]models.InlineKeyboardButton, 0, 24)
	for h := 0; h < 24; h++ {
		out = append(out, Button(fmt.Sprintf("%02d", h), wizard.Choose(strconv.Itoa(h)).Callback()))
	}
	return out
}

func minutes() []models.InlineKeyboardButton {
	out := make([]models.InlineKeyboardButton, 0, 12)
	for m := 0; m < 60; m += 5 {
		v := fmt.Sprintf("%02d", m)
		out = append(out, Button(v, wizard.Choose(v).Callback()))
	}
	return out
}

// calendar рисует сетку месяца с переходом на соседние месяцы
func (b *Builder) calendar(month time.Time) {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)

	b.Row(Button(fmt.Sprintf("%s %d", formatting.GetMonthName(first.Month()), first.Year()), Noop))

	header := make([]models.InlineKeyboardButton, 0, 7)
	for _, wd := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday} {
		header = append(header, Button(formatting.GetWeekdayShort(wd), Noop))
	}
	b.Row(header...)

	// Понедельник - первый день недели
	offset := (int(first.Weekday()) + 6) % 7
	days := first.AddDate(0, 1, -1).Day()

	cells := make([]models.InlineKeyboardButton, 0, 42)
	for i := 0; i < offset; i++ {
		cells = append(cells, Button(" ", Noop))
	}
	for d := 1; d <= days; d++ {
		day := first.AddDate(0, 0, d-1)
		cells = append(cells, Button(strconv.Itoa(d), wizard.Choose(day.Format("2006-01-02")).Callback()))
	}
	for len(cells)%7 != 0 {
		cells = append(cells, Button(" ", Noop))
	}
	b.Grid(7, cells...)

	b.Row(
		Button("◀️", PrefixCalendar+first.AddDate(0, -1, 0).Format("2006-01")),
		Button("▶️", PrefixCalendar+first.AddDate(0, 1, 0).Format("2006-01")),
	)
}

// ParseMonth разбирает месяц календаря из callback data
func ParseMonth(s string) (time.Time, error) {
	return time.Parse("2006-01", s)
}
