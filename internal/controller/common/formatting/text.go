package formatting

import (
	"html"
	"strings"

	"github.com/Freeeeeet/study_tracker/internal/model"
)

// Plural выбирает форму слова для числа: 1 день, 2 дня, 5 дней
func Plural(count int, one, few, many string) string {
	n := count % 100
	if n < 0 {
		n = -n
	}
	if n%10 == 1 && n != 11 {
		return one
	}
	if n%10 >= 2 && n%10 <= 4 && (n < 10 || n >= 20) {
		return few
	}
	return many
}

// Escape экранирует текст для ParseMode HTML
func Escape(s string) string {
	return html.EscapeString(s)
}

// OrDash возвращает "-" для пустого значения
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return Escape(s)
}

// Opt форматирует необязательное поле
func Opt(s *string) string {
	if s == nil {
		return "-"
	}
	return OrDash(*s)
}

// StatusEmoji возвращает значок статуса задания
func StatusEmoji(s model.Status) string {
	switch s {
	case model.StatusNotStarted:
		return "⚪"
	case model.StatusInProgress:
		return "🔵"
	case model.StatusDone:
		return "🟣"
	case model.StatusSubmitted:
		return "🟢"
	default:
		return "❔"
	}
}

// FormatStatus - значок и название статуса
func FormatStatus(s model.Status) string {
	return StatusEmoji(s) + " " + s.Label()
}
