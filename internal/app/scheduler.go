package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/study_tracker/internal/controller/common/formatting"
	"github.com/Freeeeeet/study_tracker/internal/model"
)

// DeadlineSource возвращает задания, срок сдачи которых наступает в указанный день
type DeadlineSource interface {
	Deadlines(ctx context.Context, day model.Date) ([]model.Deadline, error)
}

// Notifier отправляет сообщение пользователю Telegram (HTML)
type Notifier func(ctx context.Context, telegramID int64, text string) error

// ReminderScheduler раз в сутки напоминает о заданиях со сроком сдачи завтра
type ReminderScheduler struct {
	source   DeadlineSource
	notify   Notifier
	hour     int
	logger   *zap.Logger
	stopChan chan struct{}
	now      func() time.Time
}

// NewReminderScheduler создаёт планировщик напоминаний, hour - час отправки (0-23, местное время)
func NewReminderScheduler(source DeadlineSource, notify Notifier, hour int, logger *zap.Logger) *ReminderScheduler {
	return &ReminderScheduler{
		source:   source,
		notify:   notify,
		hour:     hour,
		logger:   logger,
		stopChan: make(chan struct{}),
		now:      time.Now,
	}
}

// Start запускает фоновую задачу
func (s *ReminderScheduler) Start(ctx context.Context) {
	s.logger.Info("Starting reminder scheduler", zap.Int("hour", s.hour))
	go s.run(ctx)
}

// Stop останавливает фоновую задачу
func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler")
	close(s.stopChan)
}

func (s *ReminderScheduler) run(ctx context.Context) {
	for {
		wait := nextRun(s.now(), s.hour).Sub(s.now())
		s.logger.Debug("Next reminder run scheduled", zap.Duration("in", wait))

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
			s.SendReminders(ctx)
		case <-s.stopChan:
			timer.Stop()
			s.logger.Info("Reminder task stopped")
			return
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Reminder task cancelled")
			return
		}
	}
}

// SendReminders отправляет напоминания о заданиях со сроком сдачи завтра
func (s *ReminderScheduler) SendReminders(ctx context.Context) {
	tomorrow := model.DateOf(s.now()).AddDays(1)
	deadlines, err := s.source.Deadlines(ctx, tomorrow)
	if err != nil {
		s.logger.Error("Failed to load deadlines", zap.Error(err))
		return
	}

	sent, failed := 0, 0
	for telegramID, tasks := range groupDeadlines(deadlines) {
		if err := s.notify(ctx, telegramID, ReminderText(tasks)); err != nil {
			failed++
			s.logger.Warn("Failed to send reminder", zap.Int64("user_id", telegramID), zap.Error(err))
			continue
		}
		sent++
	}

	s.logger.Info("Reminders sent",
		zap.String("day", tomorrow.String()),
		zap.Int("deadlines", len(deadlines)),
		zap.Int("sent", sent),
		zap.Int("failed", failed))
}

// nextRun - ближайший момент hour:00 строго после now
func nextRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func groupDeadlines(deadlines []model.Deadline) map[int64][]model.Deadline {
	out := make(map[int64][]model.Deadline)
	for _, d := range deadlines {
		out[d.TelegramID] = append(out[d.TelegramID], d)
	}
	return out
}

// ReminderText - текст напоминания для одного пользователя
func ReminderText(tasks []model.Deadline) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⏰ <b>Завтра срок сдачи</b> (%s)\n\n", formatting.FormatDate(tasks[0].EndDate))
	for _, t := range tasks {
		fmt.Fprintf(&b, "• %s\n", formatting.Escape(t.Name))
	}
	return b.String()
}
