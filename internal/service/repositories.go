package service

import (
	"context"

	"github.com/Freeeeeet/study_tracker/internal/model"
)

// Интерфейсы хранилищ. Реализации на pgx лежат в internal/repository.

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UpdateProfile(ctx context.Context, telegramID int64, isPetrSUStudent bool, group string) (bool, error)
}

type TeacherRepository interface {
	Create(ctx context.Context, t *model.Teacher) error
	GetByID(ctx context.Context, id int64) (*model.Teacher, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Teacher, error)
	Update(ctx context.Context, id int64, edit model.TeacherEdit) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type DisciplineRepository interface {
	Create(ctx context.Context, d *model.Discipline) error
	GetByID(ctx context.Context, id int64) (*model.Discipline, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Discipline, error)
	Update(ctx context.Context, id int64, edit model.DisciplineEdit) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type TaskRepository interface {
	Create(ctx context.Context, t *model.Task) error
	GetByID(ctx context.Context, id int64) (*model.Task, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Task, error)
	Update(ctx context.Context, id int64, edit model.TaskEdit) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	DeadlinesOn(ctx context.Context, day model.Date) ([]model.Deadline, error)
}

type FileRepository interface {
	Create(ctx context.Context, f *model.File) error
	ListByTask(ctx context.Context, taskID int64) ([]model.File, error)
	DeleteByTask(ctx context.Context, taskID int64) (int64, error)
}

type LessonRepository interface {
	Create(ctx context.Context, l *model.Lesson) error
	GetByID(ctx context.Context, id int64) (*model.Lesson, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Lesson, error)
	Update(ctx context.Context, id int64, edit model.LessonEdit) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
