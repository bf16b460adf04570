package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/study_tracker/internal/model"
	"github.com/Freeeeeet/study_tracker/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LessonRepository struct {
	*base.Repository
}

func NewLessonRepository(pool *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{Repository: base.NewRepository(pool)}
}

const lessonColumns = `id, user_id, discipline_id, classroom, date, start_time, end_time, periodicity_days, is_from_api`

func scanLesson(row pgx.Row) (*model.Lesson, error) {
	var (
		l          model.Lesson
		date       time.Time
		start, end pgtype.Time
	)
	err := row.Scan(&l.ID, &l.UserID, &l.DisciplineID, &l.Classroom, &date, &start, &end, &l.PeriodicityDays, &l.IsFromAPI)
	if err != nil {
		return nil, err
	}
	l.Date = base.Date(date)
	l.StartTime = model.ClockFromMicros(start.Microseconds)
	l.EndTime = model.ClockFromMicros(end.Microseconds)
	return &l, nil
}

func (r *LessonRepository) Create(ctx context.Context, l *model.Lesson) error {
	query := `
		INSERT INTO lessons (user_id, discipline_id, classroom, date, start_time, end_time, periodicity_days, is_from_api)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.QueryRow(ctx, query,
		l.UserID,
		l.DisciplineID,
		l.Classroom,
		l.Date.Time,
		base.Clock(l.StartTime),
		base.Clock(l.EndTime),
		l.PeriodicityDays,
		l.IsFromAPI,
	).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}
	return nil
}

func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`

	l, err := scanLesson(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	return l, nil
}

// ListByUser возвращает занятия пользователя по дате и времени начала
func (r *LessonRepository) ListByUser(ctx context.Context, userID int64) ([]model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE user_id = $1 ORDER BY date, start_time, id`

	rows, err := r.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	lessons := make([]model.Lesson, 0)
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, *l)
	}
	return lessons, rows.Err()
}

func (r *LessonRepository) Update(ctx context.Context, id int64, edit model.LessonEdit) (bool, error) {
	ok, err := r.ApplyEdit(ctx, "lessons", "id", id, edit)
	if err != nil {
		return false, fmt.Errorf("update lesson %s: %w", edit.Column(), err)
	}
	return ok, nil
}

func (r *LessonRepository) Delete(ctx context.Context, id int64) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete lesson: %w", err)
	}
	return affected > 0, nil
}
