package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Freeeeeet/study_tracker/internal/model"
	"github.com/Freeeeeet/study_tracker/internal/service"
	"go.uber.org/zap"
)

// maxBodySize с запасом покрывает файл в base64
const maxBodySize = service.MaxFileSize*4/3 + 1<<20

// errorResponse - тело любого ответа с ошибкой
type errorResponse struct {
	Detail string `json:"detail"`
}

// requestError - запрос не удалось разобрать
type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// statusOf сопоставляет ошибку HTTP-статусу
func statusOf(err error) int {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalid),
		errors.Is(err, model.ErrInvalidValue),
		errors.Is(err, model.ErrUnknownField):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.Error(err))
		detail = "Внутренняя ошибка сервера"
	}
	writeDetail(w, status, detail)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil {
		return &requestError{msg: fmt.Sprintf("Некорректное тело запроса: %v", err)}
	}
	return nil
}

func queryInt64(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, &requestError{msg: fmt.Sprintf("Параметр %s обязателен", name)}
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &requestError{msg: fmt.Sprintf("Параметр %s должен быть числом", name)}
	}
	return v, nil
}

// editRequest - общий вид запроса на изменение одного поля
type editRequest struct {
	Attribute string          `json:"editing_attribute"`
	Value     json.RawMessage `json:"editing_value"`
}

func (e editRequest) value() json.RawMessage {
	if len(e.Value) == 0 {
		return json.RawMessage("null")
	}
	return e.Value
}
