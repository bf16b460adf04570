package state

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerDefaults(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore())

	st, err := m.GetState(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, st)

	require.NoError(t, m.SetState(ctx, 1, "teacher:fio"))
	require.NoError(t, m.UpdateFields(ctx, 1, map[string]string{"name": "Иванов"}))
	require.NoError(t, m.UpdateFields(ctx, 1, map[string]string{"name": "Петров", "email": "a@b.ru"}))

	s, err := m.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, State("teacher:fio"), s.State)
	assert.Equal(t, map[string]string{"name": "Петров", "email": "a@b.ru"}, s.Fields)

	require.NoError(t, m.Clear(ctx, 1))
	st, err = m.GetState(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, st)
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := NewSession()
	s.SetField("name", "a")
	require.NoError(t, store.Put(ctx, 1, s))

	s.SetField("name", "b")
	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Fields["name"])

	got.Append("files", "f1")
	again, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, again.List("files"))

	other, err := store.Get(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestSessionHelpers(t *testing.T) {
	s := NewSession()
	s.Menu = "tasks"
	s.Flow = "task"
	s.ItemID = 5
	s.AddOption("ab12cd34", "Алгоритмы")
	s.MarkChanged("name")
	s.MarkChanged("name")
	s.Set("filter", "status")

	v, ok := s.Option("ab12cd34")
	assert.True(t, ok)
	assert.Equal(t, "Алгоритмы", v)
	assert.Equal(t, []string{"name"}, s.Changed)

	s.ResetDraft()
	assert.Equal(t, StateIdle, s.State)
	assert.Empty(t, s.Flow)
	assert.Zero(t, s.ItemID)
	assert.Nil(t, s.Options)
	assert.Equal(t, "tasks", s.Menu)
	assert.Equal(t, "status", s.Get("filter"))
}

func TestSessionJSON(t *testing.T) {
	s := NewSession()
	s.State = "lab:files"
	s.Append("files", "doc-1")
	s.SetField("name", "ЛР1")

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var back Session
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s, &back)
	assert.Equal(t, "session:42", sessionKey(42))
}

// Требует запущенный Redis: REDIS_TEST_ADDR=localhost:6379
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	id := time.Now().UnixNano()
	store := NewRedisStore(client, time.Minute)

	s := NewSession()
	s.State = "discipline:name"
	s.SetField("source", "manual")
	require.NoError(t, store.Put(ctx, id, s))

	ttl, err := client.TTL(ctx, "session:"+strconv.FormatInt(id, 10)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	require.NoError(t, store.Clear(ctx, id))
	got, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}
