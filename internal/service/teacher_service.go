package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/study_tracker/internal/model"
	"go.uber.org/zap"
)

type TeacherService struct {
	teacherRepo TeacherRepository
	userRepo    UserRepository
	logger      *zap.Logger
}

func NewTeacherService(teacherRepo TeacherRepository, userRepo UserRepository, logger *zap.Logger) *TeacherService {
	return &TeacherService{
		teacherRepo: teacherRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Create добавляет преподавателя пользователю
func (s *TeacherService) Create(ctx context.Context, t *model.Teacher) error {
	if err := requireUser(ctx, s.userRepo, t.UserID); err != nil {
		return err
	}
	if err := model.ValidateName(t.Name); err != nil {
		return Invalid("Некорректное ФИО преподавателя")
	}
	if err := validateOptional(t.PhoneNumber, model.ValidatePhone, "Некорректный номер телефона"); err != nil {
		return err
	}
	if err := validateOptional(t.Email, model.ValidateEmail, "Некорректный адрес почты"); err != nil {
		return err
	}
	if err := validateOptional(t.SocialPageLink, model.ValidateLink, "Некорректная ссылка"); err != nil {
		return err
	}

	if err := s.teacherRepo.Create(ctx, t); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}

	s.logger.Info("Teacher created",
		zap.Int64("teacher_id", t.ID),
		zap.Int64("user_id", t.UserID),
		zap.Bool("is_from_api", t.IsFromAPI))
	return nil
}

func (s *TeacherService) Get(ctx context.Context, id int64) (*model.Teacher, error) {
	t, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	if t == nil {
		return nil, NotFound(EntityTeacher, id)
	}
	return t, nil
}

func (s *TeacherService) List(ctx context.Context, userID int64) ([]model.Teacher, error) {
	return s.teacherRepo.ListByUser(ctx, userID)
}

func (s *TeacherService) Update(ctx context.Context, id int64, edit model.TeacherEdit) error {
	ok, err := s.teacherRepo.Update(ctx, id, edit)
	if err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}
	if !ok {
		return NotFound(EntityTeacher, id)
	}

	s.logger.Info("Teacher updated", zap.Int64("teacher_id", id), zap.String("field", edit.Column()))
	return nil
}

func (s *TeacherService) Delete(ctx context.Context, id int64) error {
	ok, err := s.teacherRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}
	if !ok {
		return NotFound(EntityTeacher, id)
	}

	s.logger.Info("Teacher deleted", zap.Int64("teacher_id", id))
	return nil
}

func validateOptional(v *string, validate func(string) error, detail string) error {
	if v == nil {
		return nil
	}
	if err := validate(*v); err != nil {
		return Invalid("%s", detail)
	}
	return nil
}
