package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/study_tracker/internal/model"
	"github.com/Freeeeeet/study_tracker/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	*base.Repository
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{Repository: base.NewRepository(pool)}
}

const taskColumns = `id, user_id, discipline_id, name, task_text, task_link, start_date, end_date, extra_info, status`

func scanTask(row pgx.Row) (*model.Task, error) {
	var (
		t          model.Task
		start, end time.Time
		status     string
	)
	err := row.Scan(&t.ID, &t.UserID, &t.DisciplineID, &t.Name, &t.TaskText, &t.TaskLink, &start, &end, &t.ExtraInfo, &status)
	if err != nil {
		return nil, err
	}
	t.StartDate = base.Date(start)
	t.EndDate = base.Date(end)
	t.Status = model.Status(status)
	return &t, nil
}

// Create создаёт задание
func (r *TaskRepository) Create(ctx context.Context, t *model.Task) error {
	query := `
		INSERT INTO tasks (user_id, discipline_id, name, task_text, task_link, start_date, end_date, extra_info, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.QueryRow(ctx, query,
		t.UserID,
		t.DisciplineID,
		t.Name,
		t.TaskText,
		t.TaskLink,
		t.StartDate.Time,
		t.EndDate.Time,
		t.ExtraInfo,
		string(t.Status),
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	t, err := scanTask(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// ListByUser возвращает задания пользователя, ближайшие сроки первыми
func (r *TaskRepository) ListByUser(ctx context.Context, userID int64) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY end_date, id`

	rows, err := r.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, id int64, edit model.TaskEdit) (bool, error) {
	ok, err := r.ApplyEdit(ctx, "tasks", "id", id, edit)
	if err != nil {
		return false, fmt.Errorf("update task %s: %w", edit.Column(), err)
	}
	return ok, nil
}

// Delete удаляет задание, файлы удаляются каскадом
func (r *TaskRepository) Delete(ctx context.Context, id int64) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return affected > 0, nil
}

// DeadlinesOn возвращает несданные задания со сроком сдачи в указанный день
func (r *TaskRepository) DeadlinesOn(ctx context.Context, day model.Date) ([]model.Deadline, error) {
	query := `
		SELECT u.telegram_id, t.id, t.name, t.end_date
		FROM tasks t
		JOIN users u ON u.id = t.user_id
		WHERE t.end_date = $1 AND t.status <> $2
		ORDER BY u.telegram_id, t.id
	`

	rows, err := r.Query(ctx, query, day.Time, string(model.StatusSubmitted))
	if err != nil {
		return nil, fmt.Errorf("list deadlines: %w", err)
	}
	defer rows.Close()

	deadlines := make([]model.Deadline, 0)
	for rows.Next() {
		var (
			d   model.Deadline
			end time.Time
		)
		if err := rows.Scan(&d.TelegramID, &d.TaskID, &d.Name, &end); err != nil {
			return nil, fmt.Errorf("scan deadline: %w", err)
		}
		d.EndDate = base.Date(end)
		deadlines = append(deadlines, d)
	}
	return deadlines, rows.Err()
}
