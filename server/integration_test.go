package server_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/existflow/tidytask/internal/api"
	"github.com/existflow/tidytask/internal/model"
	"github.com/existflow/tidytask/internal/store"
	"github.com/existflow/tidytask/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStore wires a store to a real server over HTTP
func newStore(t *testing.T) *store.Store {
	t.Helper()
	srv, err := server.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	return store.New(api.New(ts.URL))
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.True(t, s.AddTodo(ctx, "Buy milk"))
	require.True(t, s.AddTodo(ctx, "Walk dog"))

	todos := s.Todos()
	require.Len(t, todos, 2)
	assert.Equal(t, model.StatusPending, todos[0].Status)

	milk := todos[0]
	require.True(t, s.UpdateTodo(ctx, milk.WithStatus(model.StatusCompleted)))
	got, ok := s.TodoByID(milk.ID)
	require.True(t, ok)
	assert.Equal(t, model.StatusCompleted, got.Status)

	require.True(t, s.DeleteTodo(ctx, milk.ID))
	assert.Len(t, s.Todos(), 1)

	s.FetchTrash(ctx)
	require.Len(t, s.Trash(), 1)
	assert.Equal(t, milk.ID, s.Trash()[0].ID)

	require.True(t, s.RestoreTrash(ctx, milk.ID))
	s.FetchTodos(ctx)
	s.FetchTrash(ctx)
	assert.Len(t, s.Todos(), 2)
	assert.Empty(t, s.Trash())

	_, hasErr := s.Error()
	assert.False(t, hasErr)
}

func TestStoreEmptyTrashAndPurge(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for _, text := range []string{"a", "b", "c"} {
		require.True(t, s.AddTodo(ctx, text))
	}
	for _, todo := range s.Todos() {
		require.True(t, s.DeleteTodo(ctx, todo.ID))
	}
	s.FetchTrash(ctx)
	require.Len(t, s.Trash(), 3)

	first := s.Trash()[0].ID
	require.True(t, s.DeleteTrash(ctx, first))
	assert.Len(t, s.Trash(), 2)

	s.EmptyTrash(ctx)
	assert.Empty(t, s.Trash())
	s.FetchTrash(ctx)
	assert.Empty(t, s.Trash())
}

func TestStoreReportsServerErrors(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	assert.False(t, s.DeleteTodo(ctx, "does-not-exist"))
	msg, hasErr := s.Error()
	require.True(t, hasErr)
	assert.Equal(t, "Failed to delete todo", msg)

	assert.False(t, s.AddTodo(ctx, "   "))
	msg, _ = s.Error()
	assert.Equal(t, "Failed to create todo", msg)
}
