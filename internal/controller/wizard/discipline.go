package wizard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/study_tracker/internal/client/backend"
	"github.com/Freeeeeet/study_tracker/internal/client/petrsu"
	"github.com/Freeeeeet/study_tracker/internal/controller/common/formatting"
	"github.com/Freeeeeet/study_tracker/internal/model"
)

const (
	SourceAPI    = "api"
	SourceManual = "manual"
)

func disciplineFlow(deps Deps) *Definition {
	fromAPI := func(d Draft) bool { return d.String("source") == SourceAPI }

	return &Definition{
		Flow: FlowDiscipline,
		Steps: []Step{
			{
				Field:  "source",
				Prompt: "Как добавить дисциплину?",
				Input:  InputOptions,
				Picker: func(ctx context.Context, u User, _ Draft) ([]Option, error) {
					manual := Option{ID: SourceManual, Label: "✏️ Ввести вручную"}
					group, err := deps.API.UserGroup(ctx, u.TelegramID)
					if err != nil || group == "" {
						return []Option{manual}, nil
					}
					return []Option{{ID: SourceAPI, Label: "📅 Из расписания ПетрГУ"}, manual}, nil
				},
			},
			{
				Field:  "name",
				State:  "discipline:name_api",
				Prompt: "Выберите дисциплину из расписания:",
				Input:  InputOptions,
				Picker: scheduleTitles(deps),
				Empty:  "Все дисциплины из вашего расписания уже добавлены",
				When:   fromAPI,
			},
			{
				Field:  "name",
				Prompt: "Введите название дисциплины:",
				Text:   text(model.ValidateName, "Название должно содержать от 1 до 100 символов"),
				When:   func(d Draft) bool { return !fromAPI(d) },
			},
			{
				Field:    "teacher_id",
				Prompt:   "Выберите преподавателя или пропустите шаг:",
				Input:    InputOptions,
				Picker:   teacherOptions(deps),
				Optional: true,
			},
		},
		Summary: func(d Draft) string {
			var b strings.Builder
			b.WriteString("<b>Проверьте данные дисциплины:</b>\n\n")
			fmt.Fprintf(&b, "Название: %s\n", formatting.OrDash(d.Label("name")))
			fmt.Fprintf(&b, "Преподаватель: %s\n", formatting.OrDash(d.Label("teacher_id")))
			if fromAPI(d) {
				b.WriteString("Источник: расписание ПетрГУ\n")
			}
			return b.String()
		},
		Submit: func(ctx context.Context, u User, d Draft) error {
			teacherID, err := d.OptID("teacher_id")
			if err != nil {
				return err
			}
			_, err = deps.API.AddDiscipline(ctx, backend.NewDiscipline{
				UserID:    u.ID,
				TeacherID: teacherID,
				Name:      d.String("name"),
				IsFromAPI: fromAPI(d),
			})
			return err
		},
		Update: func(ctx context.Context, _ User, id int64, d Draft, changed []string) error {
			return sendEdits(changed,
				func(field string) (model.DisciplineEdit, bool, error) { return disciplineEdit(d, field) },
				func(e model.DisciplineEdit) error { return deps.API.EditDiscipline(ctx, id, e) })
		},
		Editable: []Editable{
			{Field: "name", Label: "Название"},
			{Field: "teacher_id", Label: "Преподаватель"},
		},
		Done:   "✅ Дисциплина добавлена",
		Edited: "✅ Дисциплина обновлена",
	}
}

// scheduleTitles - дисциплины из расписания группы, которых ещё нет у пользователя
func scheduleTitles(deps Deps) Picker {
	return func(ctx context.Context, u User, _ Draft) ([]Option, error) {
		group, err := deps.API.UserGroup(ctx, u.TelegramID)
		if err != nil {
			return nil, err
		}
		schedule, err := deps.PetrSU.Schedule(ctx, group)
		if err != nil {
			return nil, err
		}
		existing, err := deps.API.Disciplines(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(existing))
		for _, d := range existing {
			names = append(names, d.Name)
		}
		return TitleOptions(petrsu.Exclude(petrsu.Disciplines(schedule), names)), nil
	}
}

func disciplineEdit(d Draft, field string) (model.DisciplineEdit, bool, error) {
	switch field {
	case "name":
		return model.DisciplineName(d.String("name")), true, nil
	case "teacher_id":
		id, err := d.OptID("teacher_id")
		if err != nil {
			return nil, false, err
		}
		return model.DisciplineTeacher{Value: id}, true, nil
	}
	return nil, false, fmt.Errorf("%w: discipline.%s", model.ErrUnknownField, field)
}

// DisciplineSeed - текущие значения дисциплины для изменения поля
func DisciplineSeed(d model.Discipline) map[string]string {
	seed := map[string]string{"name": d.Name, "source": SourceManual}
	if d.IsFromAPI {
		seed["source"] = SourceAPI
	}
	if d.TeacherID != nil {
		seed["teacher_id"] = strconv.FormatInt(*d.TeacherID, 10)
	}
	return seed
}
