package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/study_tracker/internal/client/backend"
	"github.com/Freeeeeet/study_tracker/internal/controller/common/formatting"
	"github.com/Freeeeeet/study_tracker/internal/model"
)

func teacherFlow(deps Deps) *Definition {
	return &Definition{
		Flow: FlowTeacher,
		Steps: []Step{
			{
				Field:  "name",
				Prompt: "Введите ФИО преподавателя (Фамилия Имя Отчество):",
				Text:   text(model.ValidateFIO, "Неверный формат ФИО. Введите ФИО кириллицей, например: Иванов Иван Иванович"),
			},
			{
				Field:    "phone_number",
				Prompt:   "Введите номер телефона преподавателя в формате +7XXXXXXXXXX:",
				Text:     text(model.ValidatePhone, "Неверный формат телефона. Введите номер в формате +7XXXXXXXXXX"),
				Optional: true,
			},
			{
				Field:    "email",
				Prompt:   "Введите email преподавателя:",
				Text:     text(model.ValidateEmail, "Неверный формат email. Пример: ivanov@petrsu.ru"),
				Optional: true,
			},
			{
				Field:    "social_page_link",
				Prompt:   "Введите ссылку на страницу преподавателя (http:// или https://):",
				Text:     text(model.ValidateLink, "Ссылка должна начинаться с http:// или https://"),
				Optional: true,
			},
			{
				Field:    "classroom",
				Prompt:   "Введите аудиторию или кафедру преподавателя:",
				Text:     text(model.ValidateName, "Слишком длинное значение, максимум 100 символов"),
				Optional: true,
			},
		},
		Summary: teacherSummary,
		Submit: func(ctx context.Context, u User, d Draft) error {
			_, err := deps.API.AddTeacher(ctx, backend.NewTeacher{
				UserID:         u.ID,
				Name:           d.String("name"),
				PhoneNumber:    d.Opt("phone_number"),
				Email:          d.Opt("email"),
				SocialPageLink: d.Opt("social_page_link"),
				Classroom:      d.Opt("classroom"),
			})
			return err
		},
		Update: func(ctx context.Context, _ User, id int64, d Draft, changed []string) error {
			return sendEdits(changed,
				func(field string) (model.TeacherEdit, bool, error) { return teacherEdit(d, field) },
				func(e model.TeacherEdit) error { return deps.API.EditTeacher(ctx, id, e) })
		},
		Editable: []Editable{
			{Field: "name", Label: "ФИО"},
			{Field: "phone_number", Label: "Телефон"},
			{Field: "email", Label: "Email"},
			{Field: "social_page_link", Label: "Ссылка"},
			{Field: "classroom", Label: "Аудитория"},
		},
		Done:   "✅ Преподаватель добавлен",
		Edited: "✅ Данные преподавателя обновлены",
	}
}

func teacherEdit(d Draft, field string) (model.TeacherEdit, bool, error) {
	switch field {
	case "name":
		return model.TeacherName(d.String("name")), true, nil
	case "phone_number":
		return model.TeacherPhone{Value: d.Opt(field)}, true, nil
	case "email":
		return model.TeacherEmail{Value: d.Opt(field)}, true, nil
	case "social_page_link":
		return model.TeacherSocial{Value: d.Opt(field)}, true, nil
	case "classroom":
		return model.TeacherClassroom{Value: d.Opt(field)}, true, nil
	}
	return nil, false, fmt.Errorf("%w: teacher.%s", model.ErrUnknownField, field)
}

func teacherSummary(d Draft) string {
	var b strings.Builder
	b.WriteString("<b>Проверьте данные преподавателя:</b>\n\n")
	fmt.Fprintf(&b, "ФИО: %s\n", formatting.OrDash(d.String("name")))
	fmt.Fprintf(&b, "Телефон: %s\n", formatting.Opt(d.Opt("phone_number")))
	fmt.Fprintf(&b, "Email: %s\n", formatting.Opt(d.Opt("email")))
	fmt.Fprintf(&b, "Ссылка: %s\n", formatting.Opt(d.Opt("social_page_link")))
	fmt.Fprintf(&b, "Аудитория: %s\n", formatting.Opt(d.Opt("classroom")))
	return b.String()
}

// TeacherSeed - текущие значения преподавателя для изменения поля
func TeacherSeed(t model.Teacher) map[string]string {
	seed := map[string]string{"name": t.Name}
	for field, v := range map[string]*string{
		"phone_number":     t.PhoneNumber,
		"email":            t.Email,
		"social_page_link": t.SocialPageLink,
		"classroom":        t.Classroom,
	} {
		if v != nil {
			seed[field] = *v
		}
	}
	return seed
}
