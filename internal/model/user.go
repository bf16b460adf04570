package model

import "time"

type User struct {
	ID              int64     `json:"user_id"`
	TelegramID      int64     `json:"telegram_id"`
	IsPetrSUStudent bool      `json:"is_petrsu_student"`
	Group           string    `json:"group"` // Пустая строка, если пользователь не студент ПетрГУ
	CreatedAt       time.Time `json:"created_at"`
}
