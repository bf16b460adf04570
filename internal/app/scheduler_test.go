package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/study_tracker/internal/model"
)

type fakeDeadlines struct {
	day       model.Date
	deadlines []model.Deadline
	err       error
}

func (f *fakeDeadlines) Deadlines(_ context.Context, day model.Date) ([]model.Deadline, error) {
	f.day = day
	return f.deadlines, f.err
}

func TestNextRun(t *testing.T) {
	loc := time.UTC
	assert.Equal(t,
		time.Date(2025, 3, 10, 9, 0, 0, 0, loc),
		nextRun(time.Date(2025, 3, 10, 8, 30, 0, 0, loc), 9))
	assert.Equal(t,
		time.Date(2025, 3, 11, 9, 0, 0, 0, loc),
		nextRun(time.Date(2025, 3, 10, 9, 0, 0, 0, loc), 9))
	assert.Equal(t,
		time.Date(2025, 4, 1, 9, 0, 0, 0, loc),
		nextRun(time.Date(2025, 3, 31, 22, 0, 0, 0, loc), 9))
}

func TestSendReminders(t *testing.T) {
	tomorrow := model.NewDate(2025, time.March, 11)
	source := &fakeDeadlines{deadlines: []model.Deadline{
		{TelegramID: 1, TaskID: 10, Name: "Лаба 1", EndDate: tomorrow},
		{TelegramID: 2, TaskID: 20, Name: "Отчёт <final>", EndDate: tomorrow},
		{TelegramID: 1, TaskID: 11, Name: "Лаба 2", EndDate: tomorrow},
	}}

	sent := map[int64]string{}
	notify := func(_ context.Context, id int64, text string) error {
		sent[id] = text
		if id == 2 {
			return errors.New("blocked by user")
		}
		return nil
	}

	s := NewReminderScheduler(source, notify, 9, zap.NewNop())
	s.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	s.SendReminders(context.Background())

	assert.Equal(t, tomorrow, source.day)
	require.Len(t, sent, 2)
	assert.Contains(t, sent[1], "Лаба 1")
	assert.Contains(t, sent[1], "Лаба 2")
	assert.Contains(t, sent[1], "11.03.2025")
	assert.Contains(t, sent[2], "Отчёт &lt;final&gt;")
}

func TestSendRemindersSourceError(t *testing.T) {
	called := false
	s := NewReminderScheduler(&fakeDeadlines{err: errors.New("api down")}, func(context.Context, int64, string) error {
		called = true
		return nil
	}, 9, zap.NewNop())
	s.SendReminders(context.Background())
	assert.False(t, called)
}
