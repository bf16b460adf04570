package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/study_tracker/internal/model"
	"github.com/Freeeeeet/study_tracker/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FileRepository struct {
	*base.Repository
}

func NewFileRepository(pool *pgxpool.Pool) *FileRepository {
	return &FileRepository{Repository: base.NewRepository(pool)}
}

func (r *FileRepository) Create(ctx context.Context, f *model.File) error {
	query := `
		INSERT INTO files (user_id, task_id, file_name, file_type, file_data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.QueryRow(ctx, query, f.UserID, f.TaskID, f.FileName, string(f.FileType), f.FileData).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	return nil
}

// ListByTask возвращает файлы задания вместе с содержимым
func (r *FileRepository) ListByTask(ctx context.Context, taskID int64) ([]model.File, error) {
	query := `
		SELECT id, user_id, task_id, file_name, file_type, file_data
		FROM files
		WHERE task_id = $1
		ORDER BY id
	`

	rows, err := r.Query(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	files := make([]model.File, 0)
	for rows.Next() {
		var (
			f        model.File
			fileType string
		)
		if err := rows.Scan(&f.ID, &f.UserID, &f.TaskID, &f.FileName, &fileType, &f.FileData); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		f.FileType = model.FileType(fileType)
		files = append(files, f)
	}
	return files, rows.Err()
}

// DeleteByTask удаляет все файлы задания и возвращает их количество
func (r *FileRepository) DeleteByTask(ctx context.Context, taskID int64) (int64, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM files WHERE task_id = $1`, taskID)
	if err != nil {
		return 0, fmt.Errorf("delete files: %w", err)
	}
	return affected, nil
}
