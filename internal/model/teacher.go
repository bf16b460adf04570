package model

type Teacher struct {
	ID             int64   `json:"teacher_id"`
	UserID         int64   `json:"user_id"`
	Name           string  `json:"name"` // ФИО
	PhoneNumber    *string `json:"phone_number"`
	Email          *string `json:"email"`
	SocialPageLink *string `json:"social_page_link"`
	Classroom      *string `json:"classroom"`
	IsFromAPI      bool    `json:"is_from_API"` // Получен из расписания ПетрГУ
}
