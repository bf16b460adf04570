package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/study_tracker/internal/model"
	"go.uber.org/zap"
)

type DisciplineService struct {
	disciplineRepo DisciplineRepository
	teacherRepo    TeacherRepository
	userRepo       UserRepository
	logger         *zap.Logger
}

func NewDisciplineService(disciplineRepo DisciplineRepository, teacherRepo TeacherRepository, userRepo UserRepository, logger *zap.Logger) *DisciplineService {
	return &DisciplineService{
		disciplineRepo: disciplineRepo,
		teacherRepo:    teacherRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

func (s *DisciplineService) Create(ctx context.Context, d *model.Discipline) error {
	if err := requireUser(ctx, s.userRepo, d.UserID); err != nil {
		return err
	}
	if err := model.ValidateName(d.Name); err != nil {
		return Invalid("Название дисциплины должно быть от 1 до %d символов", model.MaxNameLength)
	}
	if d.TeacherID != nil {
		if err := s.checkTeacher(ctx, *d.TeacherID, d.UserID); err != nil {
			return err
		}
	}

	if err := s.disciplineRepo.Create(ctx, d); err != nil {
		return fmt.Errorf("create discipline: %w", err)
	}

	s.logger.Info("Discipline created",
		zap.Int64("discipline_id", d.ID),
		zap.Int64("user_id", d.UserID),
		zap.String("name", d.Name))
	return nil
}

func (s *DisciplineService) Get(ctx context.Context, id int64) (*model.Discipline, error) {
	d, err := s.disciplineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get discipline: %w", err)
	}
	if d == nil {
		return nil, NotFound(EntityDiscipline, id)
	}
	return d, nil
}

func (s *DisciplineService) List(ctx context.Context, userID int64) ([]model.Discipline, error) {
	return s.disciplineRepo.ListByUser(ctx, userID)
}

func (s *DisciplineService) Update(ctx context.Context, id int64, edit model.DisciplineEdit) error {
	d, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	switch e := edit.(type) {
	case model.DisciplineName:
		if d.IsFromAPI {
			return Invalid("Название дисциплины из расписания ПетрГУ изменить нельзя")
		}
	case model.DisciplineTeacher:
		if e.Value != nil {
			if err := s.checkTeacher(ctx, *e.Value, d.UserID); err != nil {
				return err
			}
		}
	}

	ok, err := s.disciplineRepo.Update(ctx, id, edit)
	if err != nil {
		return fmt.Errorf("update discipline: %w", err)
	}
	if !ok {
		return NotFound(EntityDiscipline, id)
	}

	s.logger.Info("Discipline updated", zap.Int64("discipline_id", id), zap.String("field", edit.Column()))
	return nil
}

func (s *DisciplineService) Delete(ctx context.Context, id int64) error {
	ok, err := s.disciplineRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete discipline: %w", err)
	}
	if !ok {
		return NotFound(EntityDiscipline, id)
	}

	s.logger.Info("Discipline deleted", zap.Int64("discipline_id", id))
	return nil
}

// checkTeacher проверяет, что преподаватель существует и принадлежит пользователю
func (s *DisciplineService) checkTeacher(ctx context.Context, teacherID, userID int64) error {
	t, err := s.teacherRepo.GetByID(ctx, teacherID)
	if err != nil {
		return fmt.Errorf("get teacher: %w", err)
	}
	if t == nil {
		return NotFound(EntityTeacher, teacherID)
	}
	if t.UserID != userID {
		return Invalid("Преподаватель принадлежит другому пользователю")
	}
	return nil
}

// ownedDiscipline проверяет, что дисциплина существует и принадлежит пользователю
func ownedDiscipline(ctx context.Context, repo DisciplineRepository, disciplineID, userID int64) error {
	d, err := repo.GetByID(ctx, disciplineID)
	if err != nil {
		return fmt.Errorf("get discipline: %w", err)
	}
	if d == nil {
		return NotFound(EntityDiscipline, disciplineID)
	}
	if d.UserID != userID {
		return Invalid("Дисциплина принадлежит другому пользователю")
	}
	return nil
}
