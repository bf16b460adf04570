package formatting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/study_tracker/internal/model"
)

func TestPlural(t *testing.T) {
	forms := func(n int) string { return Plural(n, "день", "дня", "дней") }
	assert.Equal(t, "день", forms(1))
	assert.Equal(t, "дня", forms(3))
	assert.Equal(t, "дней", forms(11))
	assert.Equal(t, "дней", forms(14))
	assert.Equal(t, "день", forms(21))
	assert.Equal(t, "дня", forms(102))
}

func TestFormatPeriodicity(t *testing.T) {
	assert.Equal(t, "не повторяется", FormatPeriodicity(0))
	assert.Equal(t, "каждый день", FormatPeriodicity(1))
	assert.Equal(t, "каждую неделю", FormatPeriodicity(7))
	assert.Equal(t, "каждые 2 недели", FormatPeriodicity(14))
	assert.Equal(t, "каждые 3 дня", FormatPeriodicity(3))
}

func TestDates(t *testing.T) {
	d, err := ParseUserDate("03.02.2025")
	require.NoError(t, err)
	assert.Equal(t, model.NewDate(2025, time.February, 3), d)

	d, err = ParseUserDate("2025-02-03")
	require.NoError(t, err)
	assert.Equal(t, "03.02.2025", FormatDate(d))

	_, err = ParseUserDate("3 февраля")
	assert.Error(t, err)
	assert.Equal(t, "-", FormatDate(model.Date{}))
	assert.Equal(t, "Февраль", GetMonthName(time.February))
}

func TestTextHelpers(t *testing.T) {
	assert.Equal(t, "a &lt;b&gt;", Escape("a <b>"))
	assert.Equal(t, "-", OrDash("  "))
	assert.Equal(t, "-", Opt(nil))
	assert.Equal(t, "🟢 Сдано", FormatStatus(model.StatusSubmitted))
	for _, s := range model.Statuses {
		assert.Contains(t, FormatStatus(s), s.Label())
	}
}
