package model

type Lesson struct {
	ID              int64     `json:"lesson_id"`
	UserID          int64     `json:"user_id"`
	DisciplineID    int64     `json:"discipline_id"`
	Classroom       string    `json:"classroom"`
	Date            Date      `json:"date"` // Дата первого или единственного занятия
	StartTime       ClockTime `json:"start_time"`
	EndTime         ClockTime `json:"end_time"`
	PeriodicityDays int       `json:"periodicity_days"` // 0 - занятие не повторяется
	IsFromAPI       bool      `json:"is_from_API"`
}
