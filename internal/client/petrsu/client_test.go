package petrsu

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const scheduleJSON = `{
  "denominator": [
    [{"title": "Алгоритмы", "lecturer": "Иванов И.И.", "type": "лекция", "date": "2025-02-03"}],
    [{"title": "Базы данных", "lecturer": "", "type": "практика", "date": "2025-02-04"}]
  ],
  "numerator": [
    [{"title": "Алгоритмы", "lecturer": "Петров П.П.", "type": "практика", "date": "2025-02-10"}]
  ]
}`

func newTestClient(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/groups":
			_, _ = w.Write([]byte(`{"22207": {}, "22307": {}}`))
		case "/schedule/22207":
			_, _ = w.Write([]byte(scheduleJSON))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, zap.NewNop())
}

func TestGroupExists(t *testing.T) {
	c := newTestClient(t)

	ok, err := c.GroupExists(context.Background(), "22207")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.GroupExists(context.Background(), "99999")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScheduleHelpers(t *testing.T) {
	c := newTestClient(t)

	s, err := c.Schedule(context.Background(), "22207")
	require.NoError(t, err)
	assert.Len(t, s.Lessons(), 3)
	assert.Equal(t, []string{"Алгоритмы", "Базы данных"}, Disciplines(s))
	assert.Equal(t, []string{"Иванов И.И.", "Петров П.П."}, Lecturers(s))
	assert.Equal(t, []string{"Петров П.П."}, Exclude(Lecturers(s), []string{"Иванов И.И."}))
}

func TestScheduleUnknownGroup(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Schedule(context.Background(), "00000")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Status)
}
