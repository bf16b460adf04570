package base

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/study_tracker/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository базовый репозиторий с общими методами
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository создаёт новый базовый репозиторий
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Pool возвращает пул соединений
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}

// QueryRow выполняет запрос и возвращает одну строку
func (r *Repository) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return r.pool.QueryRow(ctx, query, args...)
}

// Query выполняет запрос и возвращает множество строк
func (r *Repository) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return r.pool.Query(ctx, query, args...)
}

// ExecAffected выполняет команду и возвращает количество затронутых строк
func (r *Repository) ExecAffected(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ApplyEdit обновляет одну колонку строки table с первичным ключом idColumn = id.
// Имя колонки приходит только из типизированного model.Edit.
func (r *Repository) ApplyEdit(ctx context.Context, table, idColumn string, id int64, edit model.Edit) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`, table, edit.Column(), idColumn)
	affected, err := r.ExecAffected(ctx, query, Arg(edit.Arg()), id)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Arg приводит значения модели к типам, которые понимает pgx
func Arg(v any) any {
	switch val := v.(type) {
	case model.Date:
		return val.Time
	case model.ClockTime:
		return Clock(val)
	}
	return v
}

// Clock переводит время суток в postgres time
func Clock(c model.ClockTime) pgtype.Time {
	return pgtype.Time{Microseconds: c.Micros(), Valid: true}
}

// Date отбрасывает часовой пояс у значения колонки date
func Date(t time.Time) model.Date {
	return model.DateOf(t)
}

// IsNotFound проверяет является ли ошибка "строка не найдена"
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
