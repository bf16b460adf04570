package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/study_tracker/internal/model"
	"github.com/Freeeeeet/study_tracker/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TeacherRepository struct {
	*base.Repository
}

func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{Repository: base.NewRepository(pool)}
}

const teacherColumns = `id, user_id, name, phone_number, email, social_page_link, classroom, is_from_api`

func scanTeacher(row pgx.Row) (*model.Teacher, error) {
	var t model.Teacher
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.PhoneNumber, &t.Email, &t.SocialPageLink, &t.Classroom, &t.IsFromAPI)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create создаёт преподавателя
func (r *TeacherRepository) Create(ctx context.Context, t *model.Teacher) error {
	query := `
		INSERT INTO teachers (user_id, name, phone_number, email, social_page_link, classroom, is_from_api)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.QueryRow(ctx, query, t.UserID, t.Name, t.PhoneNumber, t.Email, t.SocialPageLink, t.Classroom, t.IsFromAPI).
		Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// GetByID возвращает nil, nil если преподаватель не найден
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*model.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE id = $1`

	t, err := scanTeacher(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	return t, nil
}

// ListByUser возвращает преподавателей пользователя, отсортированных по ФИО
func (r *TeacherRepository) ListByUser(ctx context.Context, userID int64) ([]model.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE user_id = $1 ORDER BY name, id`

	rows, err := r.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	defer rows.Close()

	teachers := make([]model.Teacher, 0)
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		teachers = append(teachers, *t)
	}
	return teachers, rows.Err()
}

func (r *TeacherRepository) Update(ctx context.Context, id int64, edit model.TeacherEdit) (bool, error) {
	ok, err := r.ApplyEdit(ctx, "teachers", "id", id, edit)
	if err != nil {
		return false, fmt.Errorf("update teacher %s: %w", edit.Column(), err)
	}
	return ok, nil
}

// Delete удаляет преподавателя, у дисциплин teacher_id обнуляется внешним ключом
func (r *TeacherRepository) Delete(ctx context.Context, id int64) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete teacher: %w", err)
	}
	return affected > 0, nil
}
