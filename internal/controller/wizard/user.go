package wizard

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/study_tracker/internal/controller/common/formatting"
)

func groupStep(deps Deps) Step {
	return Step{
		Field:  "group",
		Prompt: "Введите номер вашей группы (например, 22207):",
		Text: func(ctx context.Context, _ Draft, raw string) (string, error) {
			ok, err := deps.PetrSU.GroupExists(ctx, raw)
			if err != nil {
				deps.Logger.Warn("Failed to check PetrSU group", zap.String("group", raw), zap.Error(err))
				return "", invalid("Не удалось проверить группу, попробуйте позже")
			}
			if !ok {
				return "", invalid("Группа %s не найдена в расписании ПетрГУ. Проверьте номер группы", raw)
			}
			return raw, nil
		},
	}
}

// userFlow - регистрация
func userFlow(deps Deps) *Definition {
	group := groupStep(deps)
	group.When = isYes("is_petrsu_student")

	return &Definition{
		Flow: FlowUser,
		Steps: []Step{
			{
				Field:     "is_petrsu_student",
				Prompt:    "Вы студент ПетрГУ? Тогда можно будет подгружать дисциплины и преподавателей из расписания.",
				Input:     InputYesNo,
				Choice:    choiceYesNo,
				Continues: true,
			},
			group,
		},
		Summary: func(d Draft) string {
			var b strings.Builder
			b.WriteString("<b>Проверьте данные:</b>\n\n")
			b.WriteString("Студент ПетрГУ: " + yesNo(d.String("is_petrsu_student")) + "\n")
			if d.String("is_petrsu_student") == Yes {
				b.WriteString("Группа: " + formatting.OrDash(d.String("group")) + "\n")
			}
			return b.String()
		},
		Submit: func(ctx context.Context, u User, d Draft) error {
			isStudent := d.String("is_petrsu_student") == Yes
			group := ""
			if isStudent {
				group = d.String("group")
			}
			return deps.API.AddUser(ctx, u.TelegramID, isStudent, group)
		},
		Editable: []Editable{
			{Field: "is_petrsu_student", Label: "Студент ПетрГУ"},
			{Field: "group", Label: "Группа"},
		},
		Done: "✅ Регистрация завершена!",
	}
}

// groupFlow - смена группы в настройках
func groupFlow(deps Deps) *Definition {
	return &Definition{
		Flow:  FlowGroup,
		Steps: []Step{groupStep(deps)},
		Submit: func(ctx context.Context, u User, d Draft) error {
			return deps.API.ChangeUserGroup(ctx, u.TelegramID, d.String("group"))
		},
		AutoSubmit: true,
		Done:       "✅ Группа изменена",
	}
}

// studentFlow - переход в студенты ПетрГУ из настроек
func studentFlow(deps Deps) *Definition {
	return &Definition{
		Flow:  FlowStudent,
		Steps: []Step{groupStep(deps)},
		Submit: func(ctx context.Context, u User, d Draft) error {
			return deps.API.ChangeUserStatus(ctx, u.TelegramID, true, d.String("group"))
		},
		AutoSubmit: true,
		Done:       "✅ Теперь вы студент ПетрГУ",
	}
}
