package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Freeeeeet/study_tracker/internal/model"
	"github.com/Freeeeeet/study_tracker/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	t      *testing.T
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	services := servicetest.NewRepos().Services(logger)
	return &testServer{t: t, router: NewHandler(services, logger).Router()}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func (s *testServer) register(telegramID int64) int64 {
	rec := s.do(http.MethodPost, "/add_user", map[string]any{
		"telegram_id": telegramID, "is_petrsu_student": false, "group": "",
	})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[map[string]int64](s.t, rec)["user_id"]
}

func TestUserEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/check_user?telegram_id=77", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[map[string]bool](t, rec)["exists"])

	userID := s.register(77)

	rec = s.do(http.MethodGet, "/get_user_id?telegram_id=77", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, decode[map[string]int64](t, rec)["user_id"])

	rec = s.do(http.MethodPost, "/change_user_status", map[string]any{
		"telegram_id": 77, "is_petrsu_student": true, "group": "22207",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/check_is_petrsu_student?telegram_id=77", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, true, body["is_petrsu_student"])
	assert.Equal(t, "22207", body["group"])

	rec = s.do(http.MethodGet, "/get_user_id?telegram_id=1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Пользователь с ID 1 не найден", decode[errorResponse](t, rec).Detail)

	rec = s.do(http.MethodGet, "/get_user_id?telegram_id=abc", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestDisciplineFlow(t *testing.T) {
	s := newTestServer(t)
	userID := s.register(1)

	rec := s.do(http.MethodPost, "/add_discipline", map[string]any{
		"user_id": userID, "teacher_id": nil, "name": "Алгоритмы", "is_from_API": false,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	disciplineID := decode[map[string]int64](t, rec)["discipline_id"]
	require.NotZero(t, disciplineID)

	rec = s.do(http.MethodPost, "/edit_discipline", map[string]any{
		"discipline_id": disciplineID, "editing_attribute": "name", "editing_value": "Алгоритмы и структуры данных",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Алгоритмы и структуры данных", decode[model.Discipline](t, rec).Name)

	rec = s.do(http.MethodPost, "/edit_discipline", map[string]any{
		"discipline_id": disciplineID, "editing_attribute": "user_id", "editing_value": 2,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/get_disciplines?user_id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[map[string][]model.Discipline](t, rec)["disciplines"], 1)

	rec = s.do(http.MethodDelete, "/delete_discipline", map[string]any{"discipline_id": disciplineID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodDelete, "/delete_discipline", map[string]any{"discipline_id": disciplineID})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLabAndFiles(t *testing.T) {
	s := newTestServer(t)
	userID := s.register(5)

	rec := s.do(http.MethodPost, "/add_discipline", map[string]any{"user_id": userID, "name": "ОС"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	disciplineID := decode[map[string]int64](t, rec)["discipline_id"]

	rec = s.do(http.MethodPost, "/add_lab", map[string]any{
		"user_id":       userID,
		"discipline_id": disciplineID,
		"name":          "Лабораторная 2",
		"task_text":     nil,
		"task_link":     "https://example.org/lab2",
		"start_date":    "2024-10-01",
		"end_date":      "2024-10-15",
		"extra_info":    nil,
		"status":        "not_started",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	taskID := decode[map[string]int64](t, rec)["task_id"]

	rec = s.do(http.MethodPost, "/add_file", map[string]any{
		"task_id": taskID, "file_name": "report.txt", "file_data": []byte("hello"), "file_type": "document",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/get_lab_files?task_id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	files := decode[map[string][]model.File](t, rec)["files"]
	require.Len(t, files, 1)
	assert.Equal(t, []byte("hello"), files[0].FileData)

	rec = s.do(http.MethodPost, "/edit_lab", map[string]any{
		"task_id": taskID, "editing_attribute": "status", "editing_value": "submitted",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, model.StatusSubmitted, decode[model.Task](t, rec).Status)

	rec = s.do(http.MethodGet, "/get_deadlines?date=2024-10-15", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[map[string][]model.Deadline](t, rec)["deadlines"])

	rec = s.do(http.MethodDelete, "/delete_files", map[string]any{"task_id": taskID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), decode[map[string]int64](t, rec)["deleted"])

	rec = s.do(http.MethodDelete, "/delete_lab", map[string]any{"task_id": 999})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Задание с ID 999 не найдено", decode[errorResponse](t, rec).Detail)
}

func TestLessonEndpoints(t *testing.T) {
	s := newTestServer(t)
	userID := s.register(9)

	rec := s.do(http.MethodPost, "/add_discipline", map[string]any{"user_id": userID, "name": "Матанализ"})
	require.Equal(t, http.StatusOK, rec.Code)
	disciplineID := decode[map[string]int64](t, rec)["discipline_id"]

	rec = s.do(http.MethodPost, "/add_lesson", map[string]any{
		"user_id":          userID,
		"discipline_id":    disciplineID,
		"classroom":        "ГК 221",
		"date":             "2024-09-02",
		"start_time":       "08:00:00",
		"end_time":         "09:35:00",
		"periodicity_days": 7,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	lessonID := decode[map[string]int64](t, rec)["lesson_id"]

	rec = s.do(http.MethodPost, "/edit_lesson", map[string]any{
		"lesson_id": lessonID, "editing_attribute": "classroom", "editing_value": "ГК 325",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/get_lessons?user_id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	lessons := decode[map[string][]model.Lesson](t, rec)["lessons"]
	require.Len(t, lessons, 1)
	assert.Equal(t, "ГК 325", lessons[0].Classroom)
	assert.Equal(t, "09:35", lessons[0].EndTime.Short())
}

func TestUnknownRouteAndMethod(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/add_user", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
