package wizard

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"

	"github.com/Freeeeeet/study_tracker/internal/controller/common/formatting"
	"github.com/Freeeeeet/study_tracker/internal/model"
)

// StableID - короткий идентификатор строки без ID в базе (названия из расписания)
func StableID(s string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return fmt.Sprintf("%08x", h.Sum32())
}

// TitleOptions строит варианты по названиям со стабильными ID
func TitleOptions(titles []string) []Option {
	out := make([]Option, 0, len(titles))
	for _, t := range titles {
		out = append(out, Option{ID: StableID(t), Label: t, Value: t})
	}
	return out
}

func fixed(options ...Option) Picker {
	return func(context.Context, User, Draft) ([]Option, error) {
		return options, nil
	}
}

const (
	Yes = "yes"
	No  = "no"
)

func isYes(field string) func(Draft) bool {
	return func(d Draft) bool { return d.String(field) == Yes }
}

func yesNo(v string) string {
	if v == Yes {
		return "Да"
	}
	return "Нет"
}

// Валидаторы

func text(check func(string) error, hint string) Validator {
	return func(_ context.Context, _ Draft, raw string) (string, error) {
		if err := check(raw); err != nil {
			return "", invalid("%s", hint)
		}
		return raw, nil
	}
}

func anyText(_ context.Context, _ Draft, raw string) (string, error) {
	if raw == "" {
		return "", invalid("Введите текст")
	}
	return raw, nil
}

func choiceYesNo(_ context.Context, _ Draft, raw string) (string, error) {
	if raw != Yes && raw != No {
		return "", ErrUnexpected
	}
	return raw, nil
}

func date(_ context.Context, _ Draft, raw string) (string, error) {
	d, err := formatting.ParseUserDate(raw)
	if err != nil {
		return "", invalid("Введите дату в формате ДД.ММ.ГГГГ или выберите в календаре")
	}
	return d.String(), nil
}

// dateNotBefore проверяет, что дата не раньше поля other
func dateNotBefore(other, hint string) Validator {
	return func(ctx context.Context, d Draft, raw string) (string, error) {
		v, err := date(ctx, d, raw)
		if err != nil {
			return "", err
		}
		if !d.Has(other) {
			return v, nil
		}
		day, _ := model.ParseDate(v)
		bound, err := d.Date(other)
		if err == nil && day.Before(bound) {
			return "", invalid("%s", hint)
		}
		return v, nil
	}
}

// dateNotAfter - обратная проверка при изменении начала
func dateNotAfter(other, hint string) Validator {
	return func(ctx context.Context, d Draft, raw string) (string, error) {
		v, err := date(ctx, d, raw)
		if err != nil {
			return "", err
		}
		if !d.Has(other) {
			return v, nil
		}
		day, _ := model.ParseDate(v)
		bound, err := d.Date(other)
		if err == nil && day.After(bound) {
			return "", invalid("%s", hint)
		}
		return v, nil
	}
}

func hour(_ context.Context, _ Draft, raw string) (string, error) {
	h, err := strconv.Atoi(raw)
	if err != nil || h < 0 || h > 23 {
		return "", invalid("Выберите час от 0 до 23")
	}
	return strconv.Itoa(h), nil
}

// clock собирает время из часа в поле hourField и введённых минут
func clock(hourField string, check func(d Draft, c model.ClockTime) error) Validator {
	return func(_ context.Context, d Draft, raw string) (string, error) {
		m, err := model.ParseMinutes(raw)
		if err != nil {
			return "", invalid("Введите минуты числом от 0 до 59")
		}
		h, err := d.Int(hourField)
		if err != nil {
			return "", invalid("Сначала выберите час")
		}
		c, err := model.NewClockTime(h, m)
		if err != nil {
			return "", invalid("Некорректное время")
		}
		if check != nil {
			if err := check(d, c); err != nil {
				return "", err
			}
		}
		return c.Short(), nil
	}
}

func positive(_ context.Context, _ Draft, raw string) (string, error) {
	n, err := model.ParsePositive(raw)
	if err != nil {
		return "", invalid("Введите целое положительное число")
	}
	return strconv.Itoa(n), nil
}

func idOptions[T any](items []T, id func(T) int64, label func(T) string) []Option {
	out := make([]Option, 0, len(items))
	for _, it := range items {
		out = append(out, Option{ID: strconv.FormatInt(id(it), 10), Label: label(it)})
	}
	return out
}
