package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Edit - изменение одного поля сущности.
// Column возвращает имя колонки из закрытого набора вариантов ниже, Arg - новое значение.
type Edit interface {
	Column() string
	Arg() any
}

// ========================
// Преподаватель
// ========================

type TeacherEdit interface {
	Edit
	teacherEdit()
}

type (
	TeacherName      string
	TeacherPhone     struct{ Value *string }
	TeacherEmail     struct{ Value *string }
	TeacherSocial    struct{ Value *string }
	TeacherClassroom struct{ Value *string }
)

func (e TeacherName) Column() string      { return "name" }
func (e TeacherName) Arg() any            { return string(e) }
func (e TeacherPhone) Column() string     { return "phone_number" }
func (e TeacherPhone) Arg() any           { return e.Value }
func (e TeacherEmail) Column() string     { return "email" }
func (e TeacherEmail) Arg() any           { return e.Value }
func (e TeacherSocial) Column() string    { return "social_page_link" }
func (e TeacherSocial) Arg() any          { return e.Value }
func (e TeacherClassroom) Column() string { return "classroom" }
func (e TeacherClassroom) Arg() any       { return e.Value }

func (TeacherName) teacherEdit()      {}
func (TeacherPhone) teacherEdit()     {}
func (TeacherEmail) teacherEdit()     {}
func (TeacherSocial) teacherEdit()    {}
func (TeacherClassroom) teacherEdit() {}

// ParseTeacherEdit разбирает пару (editing_attribute, editing_value) из запроса
func ParseTeacherEdit(attr string, raw json.RawMessage) (TeacherEdit, error) {
	switch attr {
	case "name":
		s, err := decodeString(raw, ValidateName)
		return TeacherName(s), err
	case "phone_number":
		v, err := decodeOptString(raw, ValidatePhone)
		return TeacherPhone{v}, err
	case "email":
		v, err := decodeOptString(raw, ValidateEmail)
		return TeacherEmail{v}, err
	case "social_page_link":
		v, err := decodeOptString(raw, ValidateLink)
		return TeacherSocial{v}, err
	case "classroom":
		v, err := decodeOptString(raw, ValidateName)
		return TeacherClassroom{v}, err
	}
	return nil, fmt.Errorf("%w: teacher.%s", ErrUnknownField, attr)
}

// ========================
// Дисциплина
// ========================

type DisciplineEdit interface {
	Edit
	disciplineEdit()
}

type (
	DisciplineName    string
	DisciplineTeacher struct{ Value *int64 }
)

func (e DisciplineName) Column() string    { return "name" }
func (e DisciplineName) Arg() any          { return string(e) }
func (e DisciplineTeacher) Column() string { return "teacher_id" }
func (e DisciplineTeacher) Arg() any       { return e.Value }

func (DisciplineName) disciplineEdit()    {}
func (DisciplineTeacher) disciplineEdit() {}

func ParseDisciplineEdit(attr string, raw json.RawMessage) (DisciplineEdit, error) {
	switch attr {
	case "name":
		s, err := decodeString(raw, ValidateName)
		return DisciplineName(s), err
	case "teacher_id":
		var id *int64
		if err := json.Unmarshal(raw, &id); err != nil {
			return nil, fmt.Errorf("%w: teacher_id: %v", ErrInvalidValue, err)
		}
		return DisciplineTeacher{id}, nil
	}
	return nil, fmt.Errorf("%w: discipline.%s", ErrUnknownField, attr)
}

// ========================
// Задание
// ========================

type TaskEdit interface {
	Edit
	taskEdit()
}

type (
	TaskDiscipline int64
	TaskName       string
	TaskText       struct{ Value *string }
	TaskLink       struct{ Value *string }
	TaskStartDate  Date
	TaskEndDate    Date
	TaskExtraInfo  struct{ Value *string }
	TaskStatus     Status
)

func (e TaskDiscipline) Column() string { return "discipline_id" }
func (e TaskDiscipline) Arg() any       { return int64(e) }
func (e TaskName) Column() string       { return "name" }
func (e TaskName) Arg() any             { return string(e) }
func (e TaskText) Column() string       { return "task_text" }
func (e TaskText) Arg() any             { return e.Value }
func (e TaskLink) Column() string       { return "task_link" }
func (e TaskLink) Arg() any             { return e.Value }
func (e TaskStartDate) Column() string  { return "start_date" }
func (e TaskStartDate) Arg() any        { return Date(e) }
func (e TaskEndDate) Column() string    { return "end_date" }
func (e TaskEndDate) Arg() any          { return Date(e) }
func (e TaskExtraInfo) Column() string  { return "extra_info" }
func (e TaskExtraInfo) Arg() any        { return e.Value }
func (e TaskStatus) Column() string     { return "status" }
func (e TaskStatus) Arg() any           { return string(e) }

func (TaskDiscipline) taskEdit() {}
func (TaskName) taskEdit()       {}
func (TaskText) taskEdit()       {}
func (TaskLink) taskEdit()       {}
func (TaskStartDate) taskEdit()  {}
func (TaskEndDate) taskEdit()    {}
func (TaskExtraInfo) taskEdit()  {}
func (TaskStatus) taskEdit()     {}

func ParseTaskEdit(attr string, raw json.RawMessage) (TaskEdit, error) {
	switch attr {
	case "discipline_id":
		id, err := decodeID(raw)
		return TaskDiscipline(id), err
	case "name":
		s, err := decodeString(raw, ValidateName)
		return TaskName(s), err
	case "task_text":
		v, err := decodeOptString(raw, nil)
		return TaskText{v}, err
	case "task_link":
		v, err := decodeOptString(raw, ValidateLink)
		return TaskLink{v}, err
	case "start_date":
		d, err := decodeDate(raw)
		return TaskStartDate(d), err
	case "end_date":
		d, err := decodeDate(raw)
		return TaskEndDate(d), err
	case "extra_info":
		v, err := decodeOptString(raw, nil)
		return TaskExtraInfo{v}, err
	case "status":
		s, err := decodeString(raw, nil)
		if err != nil {
			return nil, err
		}
		status, err := ParseStatus(s)
		return TaskStatus(status), err
	}
	return nil, fmt.Errorf("%w: lab.%s", ErrUnknownField, attr)
}

// ========================
// Занятие
// ========================

type LessonEdit interface {
	Edit
	lessonEdit()
}

type (
	LessonDiscipline  int64
	LessonClassroom   string
	LessonDate        Date
	LessonStartTime   ClockTime
	LessonEndTime     ClockTime
	LessonPeriodicity int
)

func (e LessonDiscipline) Column() string  { return "discipline_id" }
func (e LessonDiscipline) Arg() any        { return int64(e) }
func (e LessonClassroom) Column() string   { return "classroom" }
func (e LessonClassroom) Arg() any         { return string(e) }
func (e LessonDate) Column() string        { return "date" }
func (e LessonDate) Arg() any              { return Date(e) }
func (e LessonStartTime) Column() string   { return "start_time" }
func (e LessonStartTime) Arg() any         { return ClockTime(e) }
func (e LessonEndTime) Column() string     { return "end_time" }
func (e LessonEndTime) Arg() any           { return ClockTime(e) }
func (e LessonPeriodicity) Column() string { return "periodicity_days" }
func (e LessonPeriodicity) Arg() any       { return int(e) }

func (LessonDiscipline) lessonEdit()  {}
func (LessonClassroom) lessonEdit()   {}
func (LessonDate) lessonEdit()        {}
func (LessonStartTime) lessonEdit()   {}
func (LessonEndTime) lessonEdit()     {}
func (LessonPeriodicity) lessonEdit() {}

func ParseLessonEdit(attr string, raw json.RawMessage) (LessonEdit, error) {
	switch attr {
	case "discipline_id":
		id, err := decodeID(raw)
		return LessonDiscipline(id), err
	case "classroom":
		s, err := decodeString(raw, ValidateName)
		return LessonClassroom(s), err
	case "date":
		d, err := decodeDate(raw)
		return LessonDate(d), err
	case "start_time", "end_time":
		var c ClockTime
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidValue, attr, err)
		}
		if attr == "start_time" {
			return LessonStartTime(c), nil
		}
		return LessonEndTime(c), nil
	case "periodicity_days":
		var n int
		if err := json.Unmarshal(raw, &n); err != nil || n < 0 {
			return nil, fmt.Errorf("%w: periodicity_days %s", ErrInvalidValue, raw)
		}
		return LessonPeriodicity(n), nil
	}
	return nil, fmt.Errorf("%w: lesson.%s", ErrUnknownField, attr)
}

func decodeString(raw json.RawMessage, validate func(string) error) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: expected string: %v", ErrInvalidValue, err)
	}
	s = strings.TrimSpace(s)
	if validate != nil {
		if err := validate(s); err != nil {
			return "", err
		}
	}
	return s, nil
}

// decodeOptString: null или пустая строка означают отсутствие значения
func decodeOptString(raw json.RawMessage, validate func(string) error) (*string, error) {
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: expected string or null: %v", ErrInvalidValue, err)
	}
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if validate != nil {
		if err := validate(v); err != nil {
			return nil, err
		}
	}
	return &v, nil
}

func decodeID(raw json.RawMessage) (int64, error) {
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %s", ErrInvalidValue, raw)
	}
	return id, nil
}

func decodeDate(raw json.RawMessage) (Date, error) {
	var d Date
	if err := json.Unmarshal(raw, &d); err != nil {
		return Date{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return d, nil
}
