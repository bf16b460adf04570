package model

type Discipline struct {
	ID        int64  `json:"discipline_id"`
	UserID    int64  `json:"user_id"`
	TeacherID *int64 `json:"teacher_id"`
	Name      string `json:"name"`
	IsFromAPI bool   `json:"is_from_API"`
}

// DisciplineNames строит справочник id -> название
func DisciplineNames(disciplines []Discipline) map[int64]string {
	names := make(map[int64]string, len(disciplines))
	for _, d := range disciplines {
		names[d.ID] = d.Name
	}
	return names
}
