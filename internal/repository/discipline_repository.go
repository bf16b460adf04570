package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/study_tracker/internal/model"
	"github.com/Freeeeeet/study_tracker/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DisciplineRepository struct {
	*base.Repository
}

func NewDisciplineRepository(pool *pgxpool.Pool) *DisciplineRepository {
	return &DisciplineRepository{Repository: base.NewRepository(pool)}
}

const disciplineColumns = `id, user_id, teacher_id, name, is_from_api`

func scanDiscipline(row pgx.Row) (*model.Discipline, error) {
	var d model.Discipline
	if err := row.Scan(&d.ID, &d.UserID, &d.TeacherID, &d.Name, &d.IsFromAPI); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DisciplineRepository) Create(ctx context.Context, d *model.Discipline) error {
	query := `
		INSERT INTO disciplines (user_id, teacher_id, name, is_from_api)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	if err := r.QueryRow(ctx, query, d.UserID, d.TeacherID, d.Name, d.IsFromAPI).Scan(&d.ID); err != nil {
		return fmt.Errorf("create discipline: %w", err)
	}
	return nil
}

func (r *DisciplineRepository) GetByID(ctx context.Context, id int64) (*model.Discipline, error) {
	query := `SELECT ` + disciplineColumns + ` FROM disciplines WHERE id = $1`

	d, err := scanDiscipline(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get discipline: %w", err)
	}
	return d, nil
}

func (r *DisciplineRepository) ListByUser(ctx context.Context, userID int64) ([]model.Discipline, error) {
	query := `SELECT ` + disciplineColumns + ` FROM disciplines WHERE user_id = $1 ORDER BY name, id`

	rows, err := r.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list disciplines: %w", err)
	}
	defer rows.Close()

	disciplines := make([]model.Discipline, 0)
	for rows.Next() {
		d, err := scanDiscipline(rows)
		if err != nil {
			return nil, fmt.Errorf("scan discipline: %w", err)
		}
		disciplines = append(disciplines, *d)
	}
	return disciplines, rows.Err()
}

func (r *DisciplineRepository) Update(ctx context.Context, id int64, edit model.DisciplineEdit) (bool, error) {
	ok, err := r.ApplyEdit(ctx, "disciplines", "id", id, edit)
	if err != nil {
		return false, fmt.Errorf("update discipline %s: %w", edit.Column(), err)
	}
	return ok, nil
}

// Delete удаляет дисциплину вместе с заданиями, файлами и занятиями (каскад в схеме)
func (r *DisciplineRepository) Delete(ctx context.Context, id int64) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM disciplines WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete discipline: %w", err)
	}
	return affected > 0, nil
}
