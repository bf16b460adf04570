package wizard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/study_tracker/internal/client/backend"
	"github.com/Freeeeeet/study_tracker/internal/controller/common/formatting"
	"github.com/Freeeeeet/study_tracker/internal/model"
)

const (
	UnitDay  = "day"
	UnitWeek = "week"
)

func lessonFlow(deps Deps) *Definition {
	periodic := isYes("periodic")

	return &Definition{
		Flow: FlowLesson,
		Steps: []Step{
			{
				Field:  "discipline_id",
				Prompt: "Выберите дисциплину:",
				Input:  InputOptions,
				Picker: disciplineOptions(deps),
				Empty:  "У вас пока нет дисциплин. Сначала добавьте дисциплину",
			},
			{
				Field:  "classroom",
				Prompt: "Введите аудиторию:",
				Text:   text(model.ValidateName, "Аудитория должна содержать от 1 до 100 символов"),
			},
			{
				Field:  "date",
				Prompt: "Выберите дату занятия:",
				Input:  InputCalendar,
				Choice: date,
				Text:   date,
			},
			{
				Field:     "start_hour",
				Prompt:    "Выберите час начала занятия:",
				Input:     InputHour,
				Choice:    hour,
				Continues: true,
			},
			{
				Field:  "start_time",
				Prompt: "Выберите минуты начала или введите число от 0 до 59:",
				Input:  InputMinute,
				Choice: clock("start_hour", startBeforeEnd),
				Text:   clock("start_hour", startBeforeEnd),
			},
			{
				Field:     "end_hour",
				Prompt:    "Выберите час окончания занятия:",
				Input:     InputHour,
				Choice:    hour,
				Continues: true,
			},
			{
				Field:  "end_time",
				Prompt: "Выберите минуты окончания или введите число от 0 до 59:",
				Input:  InputMinute,
				Choice: clock("end_hour", endAfterStart),
				Text:   clock("end_hour", endAfterStart),
			},
			{
				Field:     "periodic",
				Prompt:    "Занятие повторяется?",
				Input:     InputYesNo,
				Choice:    choiceYesNo,
				Continues: true,
			},
			{
				Field:  "periodicity_unit",
				Prompt: "Как часто повторяется занятие?",
				Input:  InputOptions,
				Picker: fixed(
					Option{ID: UnitDay, Label: "Раз в несколько дней"},
					Option{ID: UnitWeek, Label: "Раз в несколько недель"},
				),
				When:      periodic,
				Continues: true,
			},
			{
				Field:  "periodicity_count",
				Prompt: "Введите, через сколько дней или недель повторяется занятие:",
				Text:   positive,
				When:   periodic,
			},
		},
		Summary: lessonSummary,
		Submit: func(ctx context.Context, u User, d Draft) error {
			l, err := lessonFromDraft(d)
			if err != nil {
				return err
			}
			l.UserID = u.ID
			_, err = deps.API.AddLesson(ctx, l)
			return err
		},
		Update: func(ctx context.Context, _ User, id int64, d Draft, changed []string) error {
			return sendEdits(changed,
				func(field string) (model.LessonEdit, bool, error) { return lessonEdit(d, field) },
				func(e model.LessonEdit) error { return deps.API.EditLesson(ctx, id, e) })
		},
		Editable: []Editable{
			{Field: "discipline_id", Label: "Дисциплина"},
			{Field: "classroom", Label: "Аудитория"},
			{Field: "date", Label: "Дата"},
			{Field: "start_time", Label: "Время начала", From: "start_hour"},
			{Field: "end_time", Label: "Время окончания", From: "end_hour"},
			{Field: "periodicity_days", Label: "Периодичность", From: "periodic"},
		},
		Done:   "✅ Занятие добавлено",
		Edited: "✅ Занятие обновлено",
	}
}

func startBeforeEnd(d Draft, c model.ClockTime) error {
	if !d.Has("end_time") {
		return nil
	}
	end, err := d.Clock("end_time")
	if err == nil && !c.Before(end) {
		return invalid("Время начала должно быть раньше времени окончания (%s)", end.Short())
	}
	return nil
}

func endAfterStart(d Draft, c model.ClockTime) error {
	if !d.Has("start_time") {
		return nil
	}
	start, err := d.Clock("start_time")
	if err == nil && !start.Before(c) {
		return invalid("Время окончания должно быть позже времени начала (%s)", start.Short())
	}
	return nil
}

// periodicityDays переводит ответы о повторении в число дней
func periodicityDays(d Draft) (int, error) {
	if d.String("periodic") != Yes {
		return 0, nil
	}
	n, err := d.Int("periodicity_count")
	if err != nil {
		return 0, err
	}
	if d.String("periodicity_unit") == UnitWeek {
		n *= 7
	}
	return n, nil
}

func lessonFromDraft(d Draft) (backend.NewLesson, error) {
	var l backend.NewLesson
	var err error
	if l.DisciplineID, err = d.ID("discipline_id"); err != nil {
		return l, err
	}
	if l.Date, err = d.Date("date"); err != nil {
		return l, err
	}
	if l.StartTime, err = d.Clock("start_time"); err != nil {
		return l, err
	}
	if l.EndTime, err = d.Clock("end_time"); err != nil {
		return l, err
	}
	if l.PeriodicityDays, err = periodicityDays(d); err != nil {
		return l, err
	}
	l.Classroom = d.String("classroom")
	return l, nil
}

func lessonEdit(d Draft, field string) (model.LessonEdit, bool, error) {
	switch field {
	case "discipline_id":
		id, err := d.ID(field)
		return model.LessonDiscipline(id), err == nil, err
	case "classroom":
		return model.LessonClassroom(d.String(field)), true, nil
	case "date":
		v, err := d.Date(field)
		return model.LessonDate(v), err == nil, err
	case "start_time":
		c, err := d.Clock(field)
		return model.LessonStartTime(c), err == nil, err
	case "end_time":
		c, err := d.Clock(field)
		return model.LessonEndTime(c), err == nil, err
	case "periodic", "periodicity_unit", "periodicity_count":
		days, err := periodicityDays(d)
		return model.LessonPeriodicity(days), err == nil, err
	case "start_hour", "end_hour":
		// час хранится только вместе с минутами
		return nil, false, nil
	}
	return nil, false, fmt.Errorf("%w: lesson.%s", model.ErrUnknownField, field)
}

func lessonSummary(d Draft) string {
	var b strings.Builder
	b.WriteString("<b>Проверьте данные занятия:</b>\n\n")
	fmt.Fprintf(&b, "Дисциплина: %s\n", formatting.OrDash(d.Label("discipline_id")))
	fmt.Fprintf(&b, "Аудитория: %s\n", formatting.OrDash(d.String("classroom")))
	fmt.Fprintf(&b, "Дата: %s\n", displayDate(d, "date"))
	fmt.Fprintf(&b, "Время: %s-%s\n", formatting.OrDash(d.String("start_time")), formatting.OrDash(d.String("end_time")))
	days, err := periodicityDays(d)
	if err != nil {
		days = 0
	}
	fmt.Fprintf(&b, "Повторение: %s\n", formatting.FormatPeriodicity(days))
	return b.String()
}

// LessonSeed - текущие значения занятия для изменения поля
func LessonSeed(l model.Lesson) map[string]string {
	seed := map[string]string{
		"discipline_id": strconv.FormatInt(l.DisciplineID, 10),
		"classroom":     l.Classroom,
		"date":          l.Date.String(),
		"start_hour":    strconv.Itoa(l.StartTime.Hour),
		"start_time":    l.StartTime.Short(),
		"end_hour":      strconv.Itoa(l.EndTime.Hour),
		"end_time":      l.EndTime.Short(),
		"periodic":      No,
	}
	if l.PeriodicityDays > 0 {
		seed["periodic"] = Yes
		if l.PeriodicityDays%7 == 0 {
			seed["periodicity_unit"] = UnitWeek
			seed["periodicity_count"] = strconv.Itoa(l.PeriodicityDays / 7)
		} else {
			seed["periodicity_unit"] = UnitDay
			seed["periodicity_count"] = strconv.Itoa(l.PeriodicityDays)
		}
	}
	return seed
}
