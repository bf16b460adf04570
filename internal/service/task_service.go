package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/study_tracker/internal/model"
	"go.uber.org/zap"
)

// MaxFileSize ограничивает размер одного вложения задания
const MaxFileSize = 20 << 20

type TaskService struct {
	taskRepo       TaskRepository
	fileRepo       FileRepository
	disciplineRepo DisciplineRepository
	userRepo       UserRepository
	logger         *zap.Logger
}

func NewTaskService(taskRepo TaskRepository, fileRepo FileRepository, disciplineRepo DisciplineRepository, userRepo UserRepository, logger *zap.Logger) *TaskService {
	return &TaskService{
		taskRepo:       taskRepo,
		fileRepo:       fileRepo,
		disciplineRepo: disciplineRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// Create добавляет задание. Пустой статус означает not_started.
func (s *TaskService) Create(ctx context.Context, t *model.Task) error {
	if err := requireUser(ctx, s.userRepo, t.UserID); err != nil {
		return err
	}
	if err := ownedDiscipline(ctx, s.disciplineRepo, t.DisciplineID, t.UserID); err != nil {
		return err
	}
	if err := model.ValidateName(t.Name); err != nil {
		return Invalid("Название задания должно быть от 1 до %d символов", model.MaxNameLength)
	}
	if err := validateOptional(t.TaskLink, model.ValidateLink, "Ссылка должна начинаться с http:// или https://"); err != nil {
		return err
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return Invalid("Укажите дату начала и срок сдачи")
	}
	if t.StartDate.After(t.EndDate) {
		return Invalid("Дата начала не может быть позже срока сдачи")
	}
	if t.Status == "" {
		t.Status = model.StatusNotStarted
	}
	if !t.Status.Valid() {
		return Invalid("Неизвестный статус %q", t.Status)
	}

	if err := s.taskRepo.Create(ctx, t); err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	s.logger.Info("Task created",
		zap.Int64("task_id", t.ID),
		zap.Int64("user_id", t.UserID),
		zap.Int64("discipline_id", t.DisciplineID))
	return nil
}

func (s *TaskService) Get(ctx context.Context, id int64) (*model.Task, error) {
	t, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if t == nil {
		return nil, NotFound(EntityTask, id)
	}
	return t, nil
}

func (s *TaskService) List(ctx context.Context, userID int64) ([]model.Task, error) {
	return s.taskRepo.ListByUser(ctx, userID)
}

func (s *TaskService) Update(ctx context.Context, id int64, edit model.TaskEdit) error {
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	switch e := edit.(type) {
	case model.TaskDiscipline:
		if err := ownedDiscipline(ctx, s.disciplineRepo, int64(e), t.UserID); err != nil {
			return err
		}
	case model.TaskStartDate:
		if model.Date(e).After(t.EndDate) {
			return Invalid("Дата начала не может быть позже срока сдачи")
		}
	case model.TaskEndDate:
		if t.StartDate.After(model.Date(e)) {
			return Invalid("Срок сдачи не может быть раньше даты начала")
		}
	}

	ok, err := s.taskRepo.Update(ctx, id, edit)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if !ok {
		return NotFound(EntityTask, id)
	}

	s.logger.Info("Task updated", zap.Int64("task_id", id), zap.String("field", edit.Column()))
	return nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	ok, err := s.taskRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !ok {
		return NotFound(EntityTask, id)
	}

	s.logger.Info("Task deleted", zap.Int64("task_id", id))
	return nil
}

// AddFile прикрепляет файл к заданию
func (s *TaskService) AddFile(ctx context.Context, f *model.File) error {
	t, err := s.Get(ctx, f.TaskID)
	if err != nil {
		return err
	}
	if f.UserID == 0 {
		f.UserID = t.UserID
	}
	if f.UserID != t.UserID {
		return Invalid("Задание принадлежит другому пользователю")
	}
	f.FileName = strings.TrimSpace(f.FileName)
	if f.FileName == "" || len(f.FileName) > model.MaxLinkLength {
		return Invalid("Некорректное имя файла")
	}
	if len(f.FileData) == 0 {
		return Invalid("Файл %s пустой", f.FileName)
	}
	if len(f.FileData) > MaxFileSize {
		return Invalid("Файл %s больше %d МБ", f.FileName, MaxFileSize>>20)
	}
	if f.FileType == "" {
		f.FileType = model.FileTypeDocument
	}

	if err := s.fileRepo.Create(ctx, f); err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	s.logger.Info("File attached",
		zap.Int64("file_id", f.ID),
		zap.Int64("task_id", f.TaskID),
		zap.String("file_type", string(f.FileType)),
		zap.Int("size", len(f.FileData)))
	return nil
}

func (s *TaskService) Files(ctx context.Context, taskID int64) ([]model.File, error) {
	if _, err := s.Get(ctx, taskID); err != nil {
		return nil, err
	}
	return s.fileRepo.ListByTask(ctx, taskID)
}

func (s *TaskService) DeleteFiles(ctx context.Context, taskID int64) (int64, error) {
	if _, err := s.Get(ctx, taskID); err != nil {
		return 0, err
	}
	n, err := s.fileRepo.DeleteByTask(ctx, taskID)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Task files deleted", zap.Int64("task_id", taskID), zap.Int64("count", n))
	return n, nil
}

// Deadlines возвращает несданные задания со сроком сдачи в указанный день
func (s *TaskService) Deadlines(ctx context.Context, day model.Date) ([]model.Deadline, error) {
	return s.taskRepo.DeadlinesOn(ctx, day)
}
