package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/study_tracker/internal/model"
)

type recorded struct {
	method string
	path   string
	query  string
	body   map[string]any
}

func newRecordingServer(t *testing.T, status int, response string) (*Client, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery}
		if r.Body != nil && r.ContentLength > 0 {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&rec.body))
		}
		calls = append(calls, rec)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", zap.NewNop()), &calls
}

func TestAddDisciplinePayload(t *testing.T) {
	c, calls := newRecordingServer(t, http.StatusOK, `{"discipline_id": 7}`)

	id, err := c.AddDiscipline(context.Background(), NewDiscipline{UserID: 3, Name: "Алгоритмы"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, "/add_discipline", call.path)
	assert.Equal(t, map[string]any{
		"user_id":     float64(3),
		"teacher_id":  nil,
		"name":        "Алгоритмы",
		"is_from_API": false,
	}, call.body)
}

func TestEditBody(t *testing.T) {
	c, calls := newRecordingServer(t, http.StatusOK, `{}`)

	require.NoError(t, c.EditLab(context.Background(), 5, model.TaskStatus(model.StatusSubmitted)))
	link := "https://example.com"
	require.NoError(t, c.EditTeacher(context.Background(), 2, model.TeacherSocial{Value: &link}))

	require.Len(t, *calls, 2)
	assert.Equal(t, "/edit_lab", (*calls)[0].path)
	assert.Equal(t, map[string]any{
		"task_id":           float64(5),
		"editing_attribute": "status",
		"editing_value":     string(model.StatusSubmitted),
	}, (*calls)[0].body)
	assert.Equal(t, "social_page_link", (*calls)[1].body["editing_attribute"])
}

func TestGetQuery(t *testing.T) {
	c, calls := newRecordingServer(t, http.StatusOK, `{"labs": []}`)

	labs, err := c.Labs(context.Background(), 11)
	require.NoError(t, err)
	assert.Empty(t, labs)
	assert.Equal(t, "user_id=11", (*calls)[0].query)
}

func TestAPIErrorDetail(t *testing.T) {
	c, _ := newRecordingServer(t, http.StatusNotFound, `{"detail": "Задание с ID 9 не найдено"}`)

	err := c.DeleteLab(context.Background(), 9)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Задание с ID 9 не найдено", err.Error())
}

func TestAPIErrorWithoutDetail(t *testing.T) {
	c, _ := newRecordingServer(t, http.StatusInternalServerError, `oops`)

	_, err := c.CheckUser(context.Background(), 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Contains(t, apiErr.Detail, "500")
}
