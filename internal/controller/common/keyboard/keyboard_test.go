package keyboard

import (
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/study_tracker/internal/controller/menu"
	"github.com/Freeeeeet/study_tracker/internal/controller/wizard"
)

func texts(row []models.InlineKeyboardButton) []string {
	out := make([]string, len(row))
	for i, b := range row {
		out[i] = b.Text
	}
	return out
}

func TestPage(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

	for _, tc := range []struct {
		page     int
		want     []int
		wantPage int
	}{
		{0, []int{0, 1, 2, 3, 4}, 0},
		{1, []int{5, 6, 7, 8, 9}, 1},
		{2, []int{10, 11}, 2},
		{7, []int{10, 11}, 2},
		{-1, []int{0, 1, 2, 3, 4}, 0},
	} {
		got, page, pages := Page(items, tc.page)
		assert.Equal(t, tc.want, got)
		assert.Equal(t, tc.wantPage, page)
		assert.Equal(t, 3, pages)
	}

	got, _, pages := Page([]int{}, 0)
	assert.Empty(t, got)
	assert.Zero(t, pages)
}

func TestPaginationButtons(t *testing.T) {
	for _, tc := range []struct {
		n, page  int
		hasPrev  bool
		hasNext  bool
		noButton bool
	}{
		{n: 5, page: 0, noButton: true},
		{n: 6, page: 0, hasNext: true},
		{n: 6, page: 1, hasPrev: true},
		{n: 15, page: 1, hasPrev: true, hasNext: true},
		{n: 15, page: 2, hasPrev: true},
		{n: 10, page: 1, hasPrev: true},
	} {
		row := PaginationButtons("list:task:", tc.page, tc.n)
		if tc.noButton {
			assert.Empty(t, row)
			continue
		}
		labels := texts(row)
		assert.Equal(t, tc.hasPrev, labels[0] == "⬅️", "n=%d page=%d", tc.n, tc.page)
		assert.Equal(t, tc.hasNext, labels[len(labels)-1] == "➡️", "n=%d page=%d", tc.n, tc.page)
		if tc.hasNext {
			assert.Equal(t, "list:task:"+string(rune('0'+tc.page+1)), row[len(row)-1].CallbackData)
		}
	}
}

func TestListCallbacks(t *testing.T) {
	items := make([]Item, 7)
	for i := range items {
		items[i] = Item{ID: int64(100 + i), Label: "x"}
	}
	kb := List(EntityDiscipline, items, 1)
	require.Len(t, kb.InlineKeyboard, 3)
	assert.Equal(t, "item:discipline:105", kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "list:discipline:0", kb.InlineKeyboard[2][0].CallbackData)
}

func TestStepKeyboards(t *testing.T) {
	month := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)

	optional := &wizard.Step{Field: "email", Optional: true}
	kb := Step(wizard.Reply{Step: optional}, 0, month)
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, "wz:skip", kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "wz:cancel", kb.InlineKeyboard[1][0].CallbackData)

	hours := Step(wizard.Reply{Step: &wizard.Step{Input: wizard.InputHour}}, 0, month)
	assert.Len(t, hours.InlineKeyboard, 5)
	assert.Equal(t, "wz:choose:23", hours.InlineKeyboard[3][5].CallbackData)

	minutes := Step(wizard.Reply{Step: &wizard.Step{Input: wizard.InputMinute}}, 0, month)
	assert.Equal(t, "wz:choose:55", minutes.InlineKeyboard[1][5].CallbackData)
	assert.Equal(t, CallbackMinuteText, minutes.InlineKeyboard[2][0].CallbackData)

	options := make([]wizard.Option, 7)
	for i := range options {
		options[i] = wizard.Option{ID: string(rune('a' + i)), Label: "o"}
	}
	picker := Step(wizard.Reply{Step: &wizard.Step{Input: wizard.InputOptions}, Options: options}, 1, month)
	assert.Equal(t, "wz:choose:f", picker.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "wzp:0", picker.InlineKeyboard[2][0].CallbackData)
}

func TestCalendar(t *testing.T) {
	// Февраль 2025 начинается в субботу
	kb := Step(wizard.Reply{Step: &wizard.Step{Input: wizard.InputCalendar}},
		0, time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC))
	rows := kb.InlineKeyboard

	assert.Equal(t, "Февраль 2025", rows[0][0].Text)
	assert.Equal(t, []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}, texts(rows[1]))
	assert.Equal(t, "wz:choose:2025-02-01", rows[2][5].CallbackData)
	assert.Equal(t, Noop, rows[2][4].CallbackData)

	nav := rows[len(rows)-2]
	assert.Equal(t, "wzc:2025-01", nav[0].CallbackData)
	assert.Equal(t, "wzc:2025-03", nav[1].CallbackData)

	m, err := ParseMonth("2025-03")
	require.NoError(t, err)
	assert.Equal(t, time.March, m.Month())
}

func TestMenuEvents(t *testing.T) {
	ev, ok := MenuEvent(BtnGantt)
	require.True(t, ok)
	assert.Equal(t, menu.OpenGantt, ev)

	_, ok = MenuEvent("Привет")
	assert.False(t, ok)

	main := MainMenu()
	assert.Equal(t, BtnTasks, main.Keyboard[0][0].Text)
	assert.Len(t, SectionMenu(menu.Teachers, true).Keyboard, 4)
	assert.Len(t, SectionMenu(menu.Teachers, false).Keyboard, 3)
}
