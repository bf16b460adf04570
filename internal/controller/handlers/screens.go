package handlers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Freeeeeet/study_tracker/internal/controller/common/formatting"
	"github.com/Freeeeeet/study_tracker/internal/controller/common/keyboard"
	"github.com/Freeeeeet/study_tracker/internal/model"
)

// TaskCard - карточка задания
func TaskCard(t model.Task, discipline string, today model.Date) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📝 <b>%s</b>\n\n", formatting.Escape(t.Name))
	fmt.Fprintf(&b, "📚 Дисциплина: %s\n", formatting.OrDash(discipline))
	fmt.Fprintf(&b, "📊 Статус: %s\n", formatting.FormatStatus(t.Status))
	fmt.Fprintf(&b, "📅 Сроки: %s – %s\n", formatting.FormatDate(t.StartDate), formatting.FormatDate(t.EndDate))
	if t.Overdue(today) {
		b.WriteString("⏰ <b>Срок сдачи прошёл</b>\n")
	}
	fmt.Fprintf(&b, "🔗 Ссылка: %s\n", formatting.Opt(t.TaskLink))
	fmt.Fprintf(&b, "ℹ️ Доп. информация: %s\n", formatting.Opt(t.ExtraInfo))
	if t.TaskText != nil && *t.TaskText != "" {
		fmt.Fprintf(&b, "\n📄 <b>Текст задания:</b>\n%s\n", formatting.Escape(*t.TaskText))
	}
	return b.String()
}

// LessonCard - карточка занятия
func LessonCard(l model.Lesson, discipline string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🗓 <b>%s</b>\n\n", formatting.OrDash(discipline))
	fmt.Fprintf(&b, "🏫 Аудитория: %s\n", formatting.OrDash(l.Classroom))
	fmt.Fprintf(&b, "📅 Дата: %s (%s)\n", formatting.FormatDate(l.Date), formatting.GetWeekdayShort(l.Date.Weekday()))
	fmt.Fprintf(&b, "⏰ Время: %s\n", formatting.FormatTimeRange(l.StartTime, l.EndTime))
	fmt.Fprintf(&b, "🔁 Повтор: %s\n", formatting.FormatPeriodicity(l.PeriodicityDays))
	return b.String()
}

// DisciplineCard - карточка дисциплины
func DisciplineCard(d model.Discipline, teacher string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 <b>%s</b>\n\n", formatting.Escape(d.Name))
	fmt.Fprintf(&b, "👩‍🏫 Преподаватель: %s\n", formatting.OrDash(teacher))
	if d.IsFromAPI {
		b.WriteString("🎓 Из расписания ПетрГУ\n")
	}
	return b.String()
}

// TeacherCard - карточка преподавателя
func TeacherCard(t model.Teacher) string {
	var b strings.Builder
	fmt.Fprintf(&b, "👩‍🏫 <b>%s</b>\n\n", formatting.Escape(t.Name))
	fmt.Fprintf(&b, "📞 Телефон: %s\n", formatting.Opt(t.PhoneNumber))
	fmt.Fprintf(&b, "📧 Email: %s\n", formatting.Opt(t.Email))
	fmt.Fprintf(&b, "🌐 Страница: %s\n", formatting.Opt(t.SocialPageLink))
	fmt.Fprintf(&b, "🏫 Аудитория: %s\n", formatting.Opt(t.Classroom))
	if t.IsFromAPI {
		b.WriteString("🎓 Из расписания ПетрГУ\n")
	}
	return b.String()
}

// FilterTasks применяет фильтр списка заданий: "", "status:<status>" или "disc:<id>"
func FilterTasks(tasks []model.Task, filter string) []model.Task {
	kind, value, _ := strings.Cut(filter, ":")
	var keep func(model.Task) bool
	switch kind {
	case keyboard.FilterStatus:
		keep = func(t model.Task) bool { return string(t.Status) == value }
	case keyboard.FilterDiscipline:
		keep = func(t model.Task) bool { return fmt.Sprint(t.DisciplineID) == value }
	default:
		return tasks
	}

	var out []model.Task
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// WeekTasks делит несданные задания на просроченные и со сроком в ближайшие 7 дней.
// Обе части отсортированы по сроку сдачи.
func WeekTasks(tasks []model.Task, today model.Date) (overdue, upcoming []model.Task) {
	limit := today.AddDays(7)
	for _, t := range tasks {
		switch {
		case t.Overdue(today):
			overdue = append(overdue, t)
		case t.Status != model.StatusSubmitted && !t.EndDate.After(limit):
			upcoming = append(upcoming, t)
		}
	}
	byEnd := func(list []model.Task) {
		sort.SliceStable(list, func(i, j int) bool { return list[i].EndDate.Before(list[j].EndDate) })
	}
	byEnd(overdue)
	byEnd(upcoming)
	return overdue, upcoming
}

// WeekView - текст заданий на неделю
func WeekView(tasks []model.Task, disciplines map[int64]string, today model.Date) string {
	overdue, upcoming := WeekTasks(tasks, today)
	if len(overdue) == 0 && len(upcoming) == 0 {
		return "🎉 На ближайшую неделю сроков нет"
	}

	var b strings.Builder
	line := func(t model.Task) {
		fmt.Fprintf(&b, "%s %s · %s · до %s\n",
			formatting.StatusEmoji(t.Status),
			formatting.Escape(t.Name),
			formatting.OrDash(disciplines[t.DisciplineID]),
			formatting.FormatDate(t.EndDate))
	}
	if len(overdue) > 0 {
		b.WriteString("⏰ <b>Просрочено</b>\n")
		for _, t := range overdue {
			line(t)
		}
		b.WriteString("\n")
	}
	if len(upcoming) > 0 {
		b.WriteString("📆 <b>Ближайшие 7 дней</b>\n")
		for _, t := range upcoming {
			line(t)
		}
	}
	return b.String()
}

// filterTitle - подпись текущего фильтра над списком
func filterTitle(filter string, disciplines map[int64]string) string {
	kind, value, _ := strings.Cut(filter, ":")
	switch kind {
	case keyboard.FilterStatus:
		return "Статус: " + formatting.FormatStatus(model.Status(value))
	case keyboard.FilterDiscipline:
		for id, name := range disciplines {
			if fmt.Sprint(id) == value {
				return "Дисциплина: " + formatting.Escape(name)
			}
		}
		return "Дисциплина: -"
	}
	return "Все задания"
}

func taskLabel(t model.Task) string {
	return fmt.Sprintf("%s %s · до %s", formatting.StatusEmoji(t.Status), t.Name, t.EndDate.Format("02.01"))
}

func lessonLabel(l model.Lesson, discipline string) string {
	return fmt.Sprintf("%s · %s %s", discipline, l.Date.Format("02.01"), l.StartTime.Short())
}

func sortLessons(lessons []model.Lesson) {
	sort.SliceStable(lessons, func(i, j int) bool {
		if !lessons[i].Date.Equal(lessons[j].Date.Time) {
			return lessons[i].Date.Before(lessons[j].Date)
		}
		return lessons[i].StartTime.Before(lessons[j].StartTime)
	})
}
