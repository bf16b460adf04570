package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/study_tracker/internal/model"
)

// FormatDate форматирует дату как 02.01.2006
func FormatDate(d model.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.Format("02.01.2006")
}

// ParseUserDate принимает дату в виде 02.01.2006 или 2006-01-02
func ParseUserDate(s string) (model.Date, error) {
	if t, err := time.Parse("02.01.2006", s); err == nil {
		return model.DateOf(t), nil
	}
	return model.ParseDate(s)
}

// FormatTimeRange форматирует интервал занятия
func FormatTimeRange(start, end model.ClockTime) string {
	return fmt.Sprintf("%s-%s", start.Short(), end.Short())
}

// FormatPeriodicity описывает повторение занятия
func FormatPeriodicity(days int) string {
	switch {
	case days <= 0:
		return "не повторяется"
	case days == 1:
		return "каждый день"
	case days == 7:
		return "каждую неделю"
	case days%7 == 0:
		return fmt.Sprintf("каждые %d %s", days/7, Plural(days/7, "неделю", "недели", "недель"))
	default:
		return fmt.Sprintf("каждые %d %s", days, Plural(days, "день", "дня", "дней"))
	}
}

// GetWeekdayShort возвращает короткое название дня недели
func GetWeekdayShort(weekday time.Weekday) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	return names[weekday]
}

var monthNames = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

// GetMonthName возвращает название месяца на русском
func GetMonthName(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return monthNames[month-1]
}
