package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/study_tracker/internal/model"
	"go.uber.org/zap"
)

type LessonService struct {
	lessonRepo     LessonRepository
	disciplineRepo DisciplineRepository
	userRepo       UserRepository
	logger         *zap.Logger
}

func NewLessonService(lessonRepo LessonRepository, disciplineRepo DisciplineRepository, userRepo UserRepository, logger *zap.Logger) *LessonService {
	return &LessonService{
		lessonRepo:     lessonRepo,
		disciplineRepo: disciplineRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

func (s *LessonService) Create(ctx context.Context, l *model.Lesson) error {
	if err := requireUser(ctx, s.userRepo, l.UserID); err != nil {
		return err
	}
	if err := ownedDiscipline(ctx, s.disciplineRepo, l.DisciplineID, l.UserID); err != nil {
		return err
	}
	l.Classroom = strings.TrimSpace(l.Classroom)
	if err := model.ValidateName(l.Classroom); err != nil {
		return Invalid("Укажите аудиторию")
	}
	if l.Date.IsZero() {
		return Invalid("Укажите дату занятия")
	}
	if !l.StartTime.Before(l.EndTime) {
		return Invalid("Время окончания должно быть позже времени начала")
	}
	if l.PeriodicityDays < 0 {
		return Invalid("Периодичность не может быть отрицательной")
	}

	if err := s.lessonRepo.Create(ctx, l); err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}

	s.logger.Info("Lesson created",
		zap.Int64("lesson_id", l.ID),
		zap.Int64("user_id", l.UserID),
		zap.Int("periodicity_days", l.PeriodicityDays))
	return nil
}

func (s *LessonService) Get(ctx context.Context, id int64) (*model.Lesson, error) {
	l, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	if l == nil {
		return nil, NotFound(EntityLesson, id)
	}
	return l, nil
}

func (s *LessonService) List(ctx context.Context, userID int64) ([]model.Lesson, error) {
	return s.lessonRepo.ListByUser(ctx, userID)
}

func (s *LessonService) Update(ctx context.Context, id int64, edit model.LessonEdit) error {
	l, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	switch e := edit.(type) {
	case model.LessonDiscipline:
		if err := ownedDiscipline(ctx, s.disciplineRepo, int64(e), l.UserID); err != nil {
			return err
		}
	case model.LessonStartTime:
		if !model.ClockTime(e).Before(l.EndTime) {
			return Invalid("Время начала должно быть раньше времени окончания")
		}
	case model.LessonEndTime:
		if !l.StartTime.Before(model.ClockTime(e)) {
			return Invalid("Время окончания должно быть позже времени начала")
		}
	}

	ok, err := s.lessonRepo.Update(ctx, id, edit)
	if err != nil {
		return fmt.Errorf("update lesson: %w", err)
	}
	if !ok {
		return NotFound(EntityLesson, id)
	}

	s.logger.Info("Lesson updated", zap.Int64("lesson_id", id), zap.String("field", edit.Column()))
	return nil
}

func (s *LessonService) Delete(ctx context.Context, id int64) error {
	ok, err := s.lessonRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if !ok {
		return NotFound(EntityLesson, id)
	}

	s.logger.Info("Lesson deleted", zap.Int64("lesson_id", id))
	return nil
}
