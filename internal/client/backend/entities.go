package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Freeeeeet/study_tracker/internal/model"
)

// Тела запросов на создание сущностей

type NewTeacher struct {
	UserID         int64   `json:"user_id"`
	Name           string  `json:"name"`
	PhoneNumber    *string `json:"phone_number"`
	Email          *string `json:"email"`
	SocialPageLink *string `json:"social_page_link"`
	Classroom      *string `json:"classroom"`
	IsFromAPI      bool    `json:"is_from_API"`
}

type NewDiscipline struct {
	UserID    int64  `json:"user_id"`
	TeacherID *int64 `json:"teacher_id"`
	Name      string `json:"name"`
	IsFromAPI bool   `json:"is_from_API"`
}

type NewLab struct {
	UserID       int64        `json:"user_id"`
	DisciplineID int64        `json:"discipline_id"`
	Name         string       `json:"name"`
	TaskText     *string      `json:"task_text"`
	TaskLink     *string      `json:"task_link"`
	StartDate    model.Date   `json:"start_date"`
	EndDate      model.Date   `json:"end_date"`
	ExtraInfo    *string      `json:"extra_info"`
	Status       model.Status `json:"status"`
}

type NewFile struct {
	UserID   int64          `json:"user_id"`
	TaskID   int64          `json:"task_id"`
	FileName string         `json:"file_name"`
	FileData []byte         `json:"file_data"`
	FileType model.FileType `json:"file_type"`
}

type NewLesson struct {
	UserID          int64           `json:"user_id"`
	DisciplineID    int64           `json:"discipline_id"`
	Classroom       string          `json:"classroom"`
	Date            model.Date      `json:"date"`
	StartTime       model.ClockTime `json:"start_time"`
	EndTime         model.ClockTime `json:"end_time"`
	PeriodicityDays int             `json:"periodicity_days"`
}

// editBody строит {<id>, editing_attribute, editing_value}
func editBody(idField string, id int64, edit model.Edit) map[string]any {
	return map[string]any{
		idField:             id,
		"editing_attribute": edit.Column(),
		"editing_value":     edit.Arg(),
	}
}

// ========================
// Преподаватели
// ========================

func (c *Client) AddTeacher(ctx context.Context, t NewTeacher) (int64, error) {
	var resp struct {
		ID int64 `json:"teacher_id"`
	}
	err := c.send(ctx, http.MethodPost, "/add_teacher", t, &resp)
	return resp.ID, err
}

func (c *Client) Teachers(ctx context.Context, userID int64) ([]model.Teacher, error) {
	var resp struct {
		Teachers []model.Teacher `json:"teachers"`
	}
	err := c.get(ctx, "/get_teachers", idQuery("user_id", userID), &resp)
	return resp.Teachers, err
}

func (c *Client) Teacher(ctx context.Context, id int64) (*model.Teacher, error) {
	var t model.Teacher
	if err := c.get(ctx, "/get_teacher", idQuery("teacher_id", id), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) EditTeacher(ctx context.Context, id int64, edit model.TeacherEdit) error {
	return c.send(ctx, http.MethodPost, "/edit_teacher", editBody("teacher_id", id, edit), nil)
}

func (c *Client) DeleteTeacher(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, "/delete_teacher", map[string]int64{"teacher_id": id}, nil)
}

// ========================
// Дисциплины
// ========================

func (c *Client) AddDiscipline(ctx context.Context, d NewDiscipline) (int64, error) {
	var resp struct {
		ID int64 `json:"discipline_id"`
	}
	err := c.send(ctx, http.MethodPost, "/add_discipline", d, &resp)
	return resp.ID, err
}

func (c *Client) Disciplines(ctx context.Context, userID int64) ([]model.Discipline, error) {
	var resp struct {
		Disciplines []model.Discipline `json:"disciplines"`
	}
	err := c.get(ctx, "/get_disciplines", idQuery("user_id", userID), &resp)
	return resp.Disciplines, err
}

func (c *Client) Discipline(ctx context.Context, id int64) (*model.Discipline, error) {
	var d model.Discipline
	if err := c.get(ctx, "/get_discipline", idQuery("discipline_id", id), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DisciplineFromAPI - дисциплина импортирована из расписания ПетрГУ
func (c *Client) DisciplineFromAPI(ctx context.Context, id int64) (bool, error) {
	var resp struct {
		IsFromAPI bool `json:"is_from_API"`
	}
	err := c.get(ctx, "/get_discipline_api_status", idQuery("discipline_id", id), &resp)
	return resp.IsFromAPI, err
}

func (c *Client) EditDiscipline(ctx context.Context, id int64, edit model.DisciplineEdit) error {
	return c.send(ctx, http.MethodPost, "/edit_discipline", editBody("discipline_id", id, edit), nil)
}

func (c *Client) DeleteDiscipline(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, "/delete_discipline", map[string]int64{"discipline_id": id}, nil)
}

// ========================
// Задания и файлы
// ========================

func (c *Client) AddLab(ctx context.Context, lab NewLab) (int64, error) {
	var resp struct {
		ID int64 `json:"task_id"`
	}
	err := c.send(ctx, http.MethodPost, "/add_lab", lab, &resp)
	return resp.ID, err
}

func (c *Client) Labs(ctx context.Context, userID int64) ([]model.Task, error) {
	var resp struct {
		Labs []model.Task `json:"labs"`
	}
	err := c.get(ctx, "/get_labs", idQuery("user_id", userID), &resp)
	return resp.Labs, err
}

func (c *Client) EditLab(ctx context.Context, id int64, edit model.TaskEdit) error {
	return c.send(ctx, http.MethodPost, "/edit_lab", editBody("task_id", id, edit), nil)
}

func (c *Client) DeleteLab(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, "/delete_lab", map[string]int64{"task_id": id}, nil)
}

func (c *Client) AddFile(ctx context.Context, f NewFile) (int64, error) {
	var resp struct {
		ID int64 `json:"file_id"`
	}
	err := c.send(ctx, http.MethodPost, "/add_file", f, &resp)
	return resp.ID, err
}

func (c *Client) LabFiles(ctx context.Context, taskID int64) ([]model.File, error) {
	var resp struct {
		Files []model.File `json:"files"`
	}
	err := c.get(ctx, "/get_lab_files", idQuery("task_id", taskID), &resp)
	return resp.Files, err
}

func (c *Client) DeleteFiles(ctx context.Context, taskID int64) error {
	return c.send(ctx, http.MethodDelete, "/delete_files", map[string]int64{"task_id": taskID}, nil)
}

// Deadlines возвращает несданные задания всех пользователей со сроком в указанный день
func (c *Client) Deadlines(ctx context.Context, day model.Date) ([]model.Deadline, error) {
	var resp struct {
		Deadlines []model.Deadline `json:"deadlines"`
	}
	err := c.get(ctx, "/get_deadlines", url.Values{"date": []string{day.String()}}, &resp)
	return resp.Deadlines, err
}

// ========================
// Занятия
// ========================

func (c *Client) AddLesson(ctx context.Context, l NewLesson) (int64, error) {
	var resp struct {
		ID int64 `json:"lesson_id"`
	}
	err := c.send(ctx, http.MethodPost, "/add_lesson", l, &resp)
	return resp.ID, err
}

func (c *Client) Lessons(ctx context.Context, userID int64) ([]model.Lesson, error) {
	var resp struct {
		Lessons []model.Lesson `json:"lessons"`
	}
	err := c.get(ctx, "/get_lessons", idQuery("user_id", userID), &resp)
	return resp.Lessons, err
}

func (c *Client) EditLesson(ctx context.Context, id int64, edit model.LessonEdit) error {
	return c.send(ctx, http.MethodPost, "/edit_lesson", editBody("lesson_id", id, edit), nil)
}

func (c *Client) DeleteLesson(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, "/delete_lesson", map[string]int64{"lesson_id": id}, nil)
}
