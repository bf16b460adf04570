package model

import "fmt"

type FileType string

const (
	FileTypeDocument FileType = "document"
	FileTypePhoto    FileType = "photo"
	FileTypeVideo    FileType = "video"
	FileTypeAudio    FileType = "audio"
)

func ParseFileType(s string) (FileType, error) {
	switch t := FileType(s); t {
	case FileTypeDocument, FileTypePhoto, FileTypeVideo, FileTypeAudio:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown file type %q", ErrInvalidValue, s)
}

// File - вложение задания. FileData в JSON кодируется в base64.
type File struct {
	ID       int64    `json:"file_id"`
	UserID   int64    `json:"user_id"`
	TaskID   int64    `json:"task_id"`
	FileName string   `json:"file_name"`
	FileType FileType `json:"file_type"`
	FileData []byte   `json:"file_data"`
}
