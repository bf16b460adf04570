package wizard

import (
	"context"

	"go.uber.org/zap"

	"github.com/Freeeeeet/study_tracker/internal/client/backend"
	"github.com/Freeeeeet/study_tracker/internal/client/petrsu"
	"github.com/Freeeeeet/study_tracker/internal/model"
)

const (
	FlowUser       = "user"
	FlowGroup      = "group"
	FlowStudent    = "student"
	FlowTeacher    = "teacher"
	FlowDiscipline = "discipline"
	FlowTask       = "task"
	FlowLesson     = "lesson"
)

// Backend - методы REST API, которые вызывают мастера
type Backend interface {
	AddUser(ctx context.Context, telegramID int64, isPetrSUStudent bool, group string) error
	ChangeUserGroup(ctx context.Context, telegramID int64, group string) error
	ChangeUserStatus(ctx context.Context, telegramID int64, isPetrSUStudent bool, group string) error
	UserGroup(ctx context.Context, telegramID int64) (string, error)

	AddTeacher(ctx context.Context, t backend.NewTeacher) (int64, error)
	Teachers(ctx context.Context, userID int64) ([]model.Teacher, error)
	EditTeacher(ctx context.Context, id int64, edit model.TeacherEdit) error

	AddDiscipline(ctx context.Context, d backend.NewDiscipline) (int64, error)
	Disciplines(ctx context.Context, userID int64) ([]model.Discipline, error)
	EditDiscipline(ctx context.Context, id int64, edit model.DisciplineEdit) error

	AddLab(ctx context.Context, lab backend.NewLab) (int64, error)
	EditLab(ctx context.Context, id int64, edit model.TaskEdit) error
	AddFile(ctx context.Context, f backend.NewFile) (int64, error)

	AddLesson(ctx context.Context, l backend.NewLesson) (int64, error)
	EditLesson(ctx context.Context, id int64, edit model.LessonEdit) error
}

// Schedule - расписание ПетрГУ
type Schedule interface {
	GroupExists(ctx context.Context, group string) (bool, error)
	Schedule(ctx context.Context, group string) (*petrsu.Schedule, error)
}

// FileFetcher скачивает файл Telegram по file_id
type FileFetcher func(ctx context.Context, fileID string) ([]byte, error)

type Deps struct {
	API    Backend
	PetrSU Schedule
	Fetch  FileFetcher
	Logger *zap.Logger
}

// Definitions возвращает все мастера бота
func Definitions(deps Deps) []*Definition {
	return []*Definition{
		userFlow(deps),
		groupFlow(deps),
		studentFlow(deps),
		teacherFlow(deps),
		disciplineFlow(deps),
		taskFlow(deps),
		lessonFlow(deps),
	}
}

// sendEdits отправляет по одному изменению на столбец
func sendEdits[E model.Edit](changed []string, build func(field string) (E, bool, error), send func(E) error) error {
	sent := make(map[string]bool, len(changed))
	for _, field := range changed {
		edit, ok, err := build(field)
		if err != nil {
			return err
		}
		if !ok || sent[edit.Column()] {
			continue
		}
		sent[edit.Column()] = true
		if err := send(edit); err != nil {
			return err
		}
	}
	return nil
}

func disciplineOptions(deps Deps) Picker {
	return func(ctx context.Context, u User, _ Draft) ([]Option, error) {
		list, err := deps.API.Disciplines(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		return idOptions(list,
			func(d model.Discipline) int64 { return d.ID },
			func(d model.Discipline) string { return d.Name }), nil
	}
}

func teacherOptions(deps Deps) Picker {
	return func(ctx context.Context, u User, _ Draft) ([]Option, error) {
		list, err := deps.API.Teachers(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		return idOptions(list,
			func(t model.Teacher) int64 { return t.ID },
			func(t model.Teacher) string { return t.Name }), nil
	}
}
