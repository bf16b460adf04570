package wizard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/study_tracker/internal/client/backend"
	"github.com/Freeeeeet/study_tracker/internal/controller/common/formatting"
	"github.com/Freeeeeet/study_tracker/internal/model"
)

func statusOptions() []Option {
	out := make([]Option, 0, len(model.Statuses))
	for _, s := range model.Statuses {
		out = append(out, Option{ID: string(s), Label: formatting.FormatStatus(s)})
	}
	return out
}

func taskFlow(deps Deps) *Definition {
	return &Definition{
		Flow: FlowTask,
		Steps: []Step{
			{
				Field:  "discipline_id",
				Prompt: "Выберите дисциплину:",
				Input:  InputOptions,
				Picker: disciplineOptions(deps),
				Empty:  "У вас пока нет дисциплин. Сначала добавьте дисциплину",
			},
			{
				Field:  "name",
				Prompt: "Введите название задания:",
				Text:   text(model.ValidateName, "Название должно содержать от 1 до 100 символов"),
			},
			{
				Field:    "task_text",
				Prompt:   "Введите текст задания:",
				Text:     anyText,
				Optional: true,
			},
			{
				Field:  "files",
				Prompt: "Прикрепите файлы задания (документы, фото, видео, аудио) и нажмите «Готово»:",
				Input:  InputFiles,
				Multi:  true,
			},
			{
				Field:    "task_link",
				Prompt:   "Введите ссылку на задание:",
				Text:     text(model.ValidateLink, "Ссылка должна начинаться с http:// или https://"),
				Optional: true,
			},
			{
				Field:  "start_date",
				Prompt: "Выберите дату начала:",
				Input:  InputCalendar,
				Choice: dateNotAfter("end_date", "Дата начала не может быть позже даты окончания"),
				Text:   dateNotAfter("end_date", "Дата начала не может быть позже даты окончания"),
			},
			{
				Field:  "end_date",
				Prompt: "Выберите дату окончания (срок сдачи):",
				Input:  InputCalendar,
				Choice: dateNotBefore("start_date", "Дата окончания не может быть раньше даты начала"),
				Text:   dateNotBefore("start_date", "Дата окончания не может быть раньше даты начала"),
			},
			{
				Field:    "extra_info",
				Prompt:   "Введите дополнительную информацию:",
				Text:     anyText,
				Optional: true,
			},
			{
				Field:    "status",
				Prompt:   "Выберите статус задания:",
				Input:    InputOptions,
				Picker:   fixed(statusOptions()...),
				EditOnly: true,
			},
		},
		Summary: taskSummary,
		Submit: func(ctx context.Context, u User, d Draft) error {
			return submitTask(ctx, deps, u, d)
		},
		Update: func(ctx context.Context, _ User, id int64, d Draft, changed []string) error {
			return sendEdits(changed,
				func(field string) (model.TaskEdit, bool, error) { return taskEdit(d, field) },
				func(e model.TaskEdit) error { return deps.API.EditLab(ctx, id, e) })
		},
		Editable: []Editable{
			{Field: "discipline_id", Label: "Дисциплина"},
			{Field: "name", Label: "Название"},
			{Field: "task_text", Label: "Текст"},
			{Field: "task_link", Label: "Ссылка"},
			{Field: "start_date", Label: "Дата начала"},
			{Field: "end_date", Label: "Дата окончания"},
			{Field: "extra_info", Label: "Доп. информация"},
			{Field: "status", Label: "Статус"},
		},
		Done:   "✅ Задание добавлено",
		Edited: "✅ Задание обновлено",
	}
}

func submitTask(ctx context.Context, deps Deps, u User, d Draft) error {
	disciplineID, err := d.ID("discipline_id")
	if err != nil {
		return err
	}
	start, err := d.Date("start_date")
	if err != nil {
		return err
	}
	end, err := d.Date("end_date")
	if err != nil {
		return err
	}

	taskID, err := deps.API.AddLab(ctx, backend.NewLab{
		UserID:       u.ID,
		DisciplineID: disciplineID,
		Name:         d.String("name"),
		TaskText:     d.Opt("task_text"),
		TaskLink:     d.Opt("task_link"),
		StartDate:    start,
		EndDate:      end,
		ExtraInfo:    d.Opt("extra_info"),
		Status:       model.StatusNotStarted,
	})
	if err != nil {
		return err
	}

	// Задание уже создано: ошибка одного файла не отменяет остальные
	for _, raw := range d.List("files") {
		ref, ok := ParseFileRef(raw)
		if !ok {
			continue
		}
		if err := attachFile(ctx, deps, u, taskID, ref); err != nil {
			deps.Logger.Warn("Failed to attach task file",
				zap.Int64("task_id", taskID),
				zap.String("file_id", ref.FileID),
				zap.Error(err))
		}
	}
	return nil
}

func attachFile(ctx context.Context, deps Deps, u User, taskID int64, ref FileRef) error {
	if deps.Fetch == nil {
		return fmt.Errorf("file fetcher is not configured")
	}
	fileType, err := model.ParseFileType(ref.Type)
	if err != nil {
		return err
	}
	data, err := deps.Fetch(ctx, ref.FileID)
	if err != nil {
		return fmt.Errorf("download file: %w", err)
	}
	_, err = deps.API.AddFile(ctx, backend.NewFile{
		UserID:   u.ID,
		TaskID:   taskID,
		FileName: ref.Name,
		FileData: data,
		FileType: fileType,
	})
	return err
}

func taskEdit(d Draft, field string) (model.TaskEdit, bool, error) {
	switch field {
	case "discipline_id":
		id, err := d.ID(field)
		return model.TaskDiscipline(id), err == nil, err
	case "name":
		return model.TaskName(d.String(field)), true, nil
	case "task_text":
		return model.TaskText{Value: d.Opt(field)}, true, nil
	case "task_link":
		return model.TaskLink{Value: d.Opt(field)}, true, nil
	case "extra_info":
		return model.TaskExtraInfo{Value: d.Opt(field)}, true, nil
	case "start_date":
		v, err := d.Date(field)
		return model.TaskStartDate(v), err == nil, err
	case "end_date":
		v, err := d.Date(field)
		return model.TaskEndDate(v), err == nil, err
	case "status":
		s, err := model.ParseStatus(d.String(field))
		return model.TaskStatus(s), err == nil, err
	}
	return nil, false, fmt.Errorf("%w: lab.%s", model.ErrUnknownField, field)
}

func taskSummary(d Draft) string {
	var b strings.Builder
	b.WriteString("<b>Проверьте данные задания:</b>\n\n")
	fmt.Fprintf(&b, "Дисциплина: %s\n", formatting.OrDash(d.Label("discipline_id")))
	fmt.Fprintf(&b, "Название: %s\n", formatting.OrDash(d.String("name")))
	fmt.Fprintf(&b, "Текст: %s\n", formatting.Opt(d.Opt("task_text")))
	fmt.Fprintf(&b, "Файлы: %d\n", len(d.List("files")))
	fmt.Fprintf(&b, "Ссылка: %s\n", formatting.Opt(d.Opt("task_link")))
	fmt.Fprintf(&b, "Начало: %s\n", displayDate(d, "start_date"))
	fmt.Fprintf(&b, "Срок сдачи: %s\n", displayDate(d, "end_date"))
	fmt.Fprintf(&b, "Доп. информация: %s\n", formatting.Opt(d.Opt("extra_info")))
	return b.String()
}

func displayDate(d Draft, field string) string {
	v, err := d.Date(field)
	if err != nil {
		return "-"
	}
	return formatting.FormatDate(v)
}

// TaskSeed - текущие значения задания для изменения поля
func TaskSeed(t model.Task) map[string]string {
	seed := map[string]string{
		"discipline_id": strconv.FormatInt(t.DisciplineID, 10),
		"name":          t.Name,
		"start_date":    t.StartDate.String(),
		"end_date":      t.EndDate.String(),
		"status":        string(t.Status),
	}
	for field, v := range map[string]*string{
		"task_text":  t.TaskText,
		"task_link":  t.TaskLink,
		"extra_info": t.ExtraInfo,
	} {
		if v != nil {
			seed[field] = *v
		}
	}
	return seed
}
