package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid request")
)

type Entity string

const (
	EntityUser       Entity = "user"
	EntityTeacher    Entity = "teacher"
	EntityDiscipline Entity = "discipline"
	EntityTask       Entity = "task"
	EntityLesson     Entity = "lesson"
)

var notFoundMessages = map[Entity]string{
	EntityUser:       "Пользователь с ID %d не найден",
	EntityTeacher:    "Преподаватель с ID %d не найден",
	EntityDiscipline: "Дисциплина с ID %d не найдена",
	EntityTask:       "Задание с ID %d не найдено",
	EntityLesson:     "Занятие с ID %d не найдено",
}

// NotFoundError - сущность с указанным ID отсутствует.
// Текст ошибки показывается пользователю без изменений.
type NotFoundError struct {
	Entity Entity
	ID     int64
}

func NotFound(entity Entity, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	if msg, ok := notFoundMessages[e.Entity]; ok {
		return fmt.Sprintf(msg, e.ID)
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidError - запрос нарушает правила предметной области
type InvalidError struct {
	Detail string
}

func Invalid(format string, args ...any) *InvalidError {
	return &InvalidError{Detail: fmt.Sprintf(format, args...)}
}

func (e *InvalidError) Error() string {
	return e.Detail
}

func (e *InvalidError) Is(target error) bool {
	return target == ErrInvalid
}
