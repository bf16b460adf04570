package model

import "fmt"

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"      // Готово к сдаче
	StatusSubmitted  Status = "submitted" // Сдано
)

// Statuses перечисляет статусы в порядке колонок канбан-доски
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusDone, StatusSubmitted}

var statusLabels = map[Status]string{
	StatusNotStarted: "Не начато",
	StatusInProgress: "В процессе",
	StatusDone:       "Готово к сдаче",
	StatusSubmitted:  "Сдано",
}

// Label возвращает название статуса для пользователя
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// ParseStatus принимает ключ статуса (not_started, ...)
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidValue, s)
	}
	return status, nil
}

// Task - лабораторная работа или другое задание по дисциплине
type Task struct {
	ID           int64   `json:"task_id"`
	UserID       int64   `json:"user_id"`
	DisciplineID int64   `json:"discipline_id"`
	Name         string  `json:"name"`
	TaskText     *string `json:"task_text"`
	TaskLink     *string `json:"task_link"`
	StartDate    Date    `json:"start_date"`
	EndDate      Date    `json:"end_date"`
	ExtraInfo    *string `json:"extra_info"`
	Status       Status  `json:"status"`
}

// Overdue - срок сдачи прошёл, а задание не сдано
func (t Task) Overdue(today Date) bool {
	return t.EndDate.Before(today) && t.Status != StatusSubmitted
}
