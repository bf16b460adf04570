package handlers

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/study_tracker/internal/chart"
	"github.com/Freeeeeet/study_tracker/internal/client/backend"
	"github.com/Freeeeeet/study_tracker/internal/client/petrsu"
	"github.com/Freeeeeet/study_tracker/internal/controller/common/keyboard"
	"github.com/Freeeeeet/study_tracker/internal/controller/wizard"
	"github.com/Freeeeeet/study_tracker/internal/model"
)

func ptr(s string) *string { return &s }

func task(id, discipline int64, name string, start, end model.Date, status model.Status) model.Task {
	return model.Task{ID: id, DisciplineID: discipline, Name: name, StartDate: start, EndDate: end, Status: status}
}

func TestErrorMessage(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want string
	}{
		{ErrNotRegistered, "❌ Вы ещё не зарегистрированы. Используйте /start"},
		{fmt.Errorf("load: %w", ErrItemNotFound), "❌ Запись не найдена. Возможно, она уже удалена"},
		{&wizard.InputError{Hint: "Введите дату"}, "⚠️ Введите дату"},
		{fmt.Errorf("add lab: %w", &backend.APIError{Status: 400, Detail: "Дата окончания раньше даты начала"}), "❌ Дата окончания раньше даты начала"},
		{&petrsu.StatusError{Status: 502}, "❌ Сервис расписания ПетрГУ недоступен (код 502)"},
		{&wizard.InputError{Hint: "Группа <1> не найдена"}, "⚠️ Группа &lt;1&gt; не найдена"},
		{&backend.APIError{Status: 422, Detail: "invalid <json> & body"}, "❌ invalid &lt;json&gt; &amp; body"},
		{fmt.Errorf("edit: %w", wizard.ErrNotEditable), "❌ Это поле сейчас нельзя изменить"},
		{chart.ErrNoTasks, "📭 Нет заданий для выбранного периода"},
		{errors.New("boom"), "❌ Произошла ошибка. Попробуйте позже."},
	} {
		assert.Equal(t, tc.want, ErrorMessage(tc.err), "%v", tc.err)
	}
}

func TestFilterTasks(t *testing.T) {
	d := model.NewDate(2025, time.March, 1)
	tasks := []model.Task{
		task(1, 10, "Лаба 1", d, d, model.StatusNotStarted),
		task(2, 20, "Лаба 2", d, d, model.StatusDone),
		task(3, 10, "Лаба 3", d, d, model.StatusDone),
	}

	ids := func(list []model.Task) []int64 {
		out := []int64{}
		for _, t := range list {
			out = append(out, t.ID)
		}
		return out
	}

	assert.Equal(t, []int64{1, 2, 3}, ids(FilterTasks(tasks, "")))
	assert.Equal(t, []int64{2, 3}, ids(FilterTasks(tasks, "status:done")))
	assert.Equal(t, []int64{1, 3}, ids(FilterTasks(tasks, "disc:10")))
	assert.Empty(t, FilterTasks(tasks, "disc:99"))
}

func TestWeekTasks(t *testing.T) {
	today := model.NewDate(2025, time.March, 10)
	tasks := []model.Task{
		task(1, 1, "Просрочена", today.AddDays(-10), today.AddDays(-2), model.StatusInProgress),
		task(2, 1, "Сдана", today.AddDays(-10), today.AddDays(-1), model.StatusSubmitted),
		task(3, 1, "Через неделю", today, today.AddDays(7), model.StatusNotStarted),
		task(4, 1, "Завтра", today, today.AddDays(1), model.StatusDone),
		task(5, 1, "Через месяц", today, today.AddDays(30), model.StatusNotStarted),
		task(6, 1, "Сегодня", today, today, model.StatusNotStarted),
	}

	overdue, upcoming := WeekTasks(tasks, today)
	require.Len(t, overdue, 1)
	assert.Equal(t, int64(1), overdue[0].ID)

	var names []string
	for _, t := range upcoming {
		names = append(names, t.Name)
	}
	assert.Equal(t, []string{"Сегодня", "Завтра", "Через неделю"}, names)
}

func TestWeekView(t *testing.T) {
	today := model.NewDate(2025, time.March, 10)

	assert.Equal(t, "🎉 На ближайшую неделю сроков нет", WeekView(nil, nil, today))

	tasks := []model.Task{
		task(1, 7, "Отчёт <1>", today.AddDays(-3), today.AddDays(-1), model.StatusInProgress),
		task(2, 7, "Лаба 2", today, today.AddDays(2), model.StatusNotStarted),
	}
	text := WeekView(tasks, map[int64]string{7: "Сети"}, today)
	assert.Contains(t, text, "Просрочено")
	assert.Contains(t, text, "Ближайшие 7 дней")
	assert.Contains(t, text, "Отчёт &lt;1&gt;")
	assert.Contains(t, text, "Сети")
	assert.Less(t, strings.Index(text, "Отчёт"), strings.Index(text, "Лаба 2"))
}

func TestCards(t *testing.T) {
	today := model.NewDate(2025, time.March, 10)

	tk := task(1, 3, "Лаба <b>", today.AddDays(-5), today.AddDays(-1), model.StatusInProgress)
	tk.TaskText = ptr("Реализовать сортировку")
	card := TaskCard(tk, "", today)
	assert.Contains(t, card, "Лаба &lt;b&gt;")
	assert.Contains(t, card, "Дисциплина: -")
	assert.Contains(t, card, "Срок сдачи прошёл")
	assert.Contains(t, card, "Реализовать сортировку")

	tk.Status = model.StatusSubmitted
	assert.NotContains(t, TaskCard(tk, "Алгоритмы", today), "Срок сдачи прошёл")

	teacher := TeacherCard(model.Teacher{Name: "Иванов Иван Иванович", Email: ptr("ivanov@petrsu.ru"), IsFromAPI: true})
	assert.Contains(t, teacher, "Иванов Иван Иванович")
	assert.Contains(t, teacher, "ivanov@petrsu.ru")
	assert.Contains(t, teacher, "Телефон: -")
	assert.Contains(t, teacher, "Из расписания ПетрГУ")

	discipline := DisciplineCard(model.Discipline{Name: "Базы данных"}, "Петров П.П.")
	assert.Contains(t, discipline, "Базы данных")
	assert.Contains(t, discipline, "Петров П.П.")
	assert.NotContains(t, discipline, "Из расписания")
}

func TestParseItemRef(t *testing.T) {
	entity, id, err := parseItemRef("task:42")
	require.NoError(t, err)
	assert.Equal(t, keyboard.EntityTask, entity)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "task", "task:x", "task:-1", "course:1"} {
		_, _, err := parseItemRef(bad)
		assert.ErrorIs(t, err, ErrInvalidFormat, bad)
	}

	entity, id, field, err := parseItemAction("editf:lesson:7:start_time", keyboard.PrefixEditField)
	require.NoError(t, err)
	assert.Equal(t, keyboard.EntityLesson, entity)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, "start_time", field)

	_, _, field, err = parseItemAction("del:teacher:3", keyboard.PrefixDelete)
	require.NoError(t, err)
	assert.Empty(t, field)
}

func TestFileRef(t *testing.T) {
	ref, ok := fileRef(&models.Message{Document: &models.Document{FileID: "doc1", FileName: "report.pdf"}})
	require.True(t, ok)
	assert.Equal(t, wizard.FileRef{FileID: "doc1", Type: "document", Name: "report.pdf"}, ref)

	ref, ok = fileRef(&models.Message{Photo: []models.PhotoSize{{FileID: "small"}, {FileID: "large"}}})
	require.True(t, ok)
	assert.Equal(t, "large", ref.FileID)
	assert.Equal(t, "photo", ref.Type)
	assert.True(t, strings.HasSuffix(ref.Name, ".jpg"))

	_, ok = fileRef(&models.Message{Text: "привет"})
	assert.False(t, ok)
}

func TestUserLock(t *testing.T) {
	h := &Handlers{locks: make(map[int64]*userLock)}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		running int
		maxRun  int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := h.lock(42)
			defer unlock()

			mu.Lock()
			running++
			maxRun = max(maxRun, running)
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			running--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxRun)
	assert.Empty(t, h.locks)

	unlock := h.lock(7)
	assert.Len(t, h.locks, 1)
	unlock()
	assert.Empty(t, h.locks)
}
