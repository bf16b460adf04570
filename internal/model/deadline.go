package model

// Deadline - задание с приближающимся сроком сдачи и владелец для напоминания
type Deadline struct {
	TelegramID int64  `json:"telegram_id"`
	TaskID     int64  `json:"task_id"`
	Name       string `json:"name"`
	EndDate    Date   `json:"end_date"`
}
