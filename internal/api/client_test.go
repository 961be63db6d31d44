package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/existflow/tidytask/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorded is what the fake server saw for a single request
type recorded struct {
	method      string
	path        string
	contentType string
	body        []byte
}

type recorder struct {
	mu   sync.Mutex
	last recorded
}

func (r *recorder) get() recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func newTestServer(t *testing.T, status int, response interface{}) (*Client, *recorder) {
	t.Helper()

	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.last = recorded{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			body:        body,
		}
		rec.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if response != nil {
			_ = json.NewEncoder(w).Encode(response)
		}
	}))
	t.Cleanup(srv.Close)

	return New(srv.URL + "/"), rec
}

func TestGetAllTodos(t *testing.T) {
	want := []model.Task{
		{ID: "1", Task: "Buy milk", Status: model.StatusPending},
		{ID: "2", Task: "Walk dog", Status: model.StatusCompleted},
	}
	c, rec := newTestServer(t, http.StatusOK, want)

	res := c.GetAllTodos(context.Background())
	require.True(t, res.OK())
	assert.Equal(t, http.MethodGet, rec.get().method)
	assert.Equal(t, "/todos", rec.get().path)
	assert.Equal(t, "application/json", rec.get().contentType)

	got := res.Data()
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "Walk dog", got[1].Task)
}

func TestGetAllTodosServerError(t *testing.T) {
	c, _ := newTestServer(t, http.StatusInternalServerError, map[string]string{"error": "db down"})

	res := c.GetAllTodos(context.Background())
	require.False(t, res.OK())
	assert.Equal(t, KindFetchTodos, res.Failure().Kind)

	data, err := res.Unwrap()
	assert.Nil(t, data)
	assert.EqualError(t, err, "Failed to fetch todos")
}

func TestGetAllTodosEmptyList(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, []model.Task{})

	res := c.GetAllTodos(context.Background())
	require.True(t, res.OK())
	assert.NotNil(t, res.Data())
	assert.Empty(t, res.Data())
}

func TestCreateTodoSendsPendingTask(t *testing.T) {
	created := model.Task{ID: "abc", Task: "buy milk", Status: model.StatusPending}
	c, rec := newTestServer(t, http.StatusCreated, created)

	before := time.Now().Add(-time.Second)
	res := c.CreateTodo(context.Background(), "buy milk")
	require.True(t, res.OK())
	assert.Equal(t, "abc", res.Data().ID)

	assert.Equal(t, http.MethodPost, rec.get().method)
	assert.Equal(t, "/todos", rec.get().path)
	assert.Equal(t, "application/json", rec.get().contentType)

	var sent model.Task
	require.NoError(t, json.Unmarshal(rec.get().body, &sent))
	assert.Empty(t, sent.ID)
	assert.Equal(t, "buy milk", sent.Task)
	assert.Equal(t, model.StatusPending, sent.Status)
	assert.True(t, sent.CreatedAt.After(before))
	assert.True(t, sent.UpdatedAt.After(before))
}

func TestCreateTodoFailure(t *testing.T) {
	c, _ := newTestServer(t, http.StatusBadRequest, nil)

	res := c.CreateTodo(context.Background(), "x")
	require.False(t, res.OK())
	assert.Equal(t, "Failed to create todo", res.Failure().Error())
}

func TestDeleteTodo(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, nil)

	res := c.DeleteTodo(context.Background(), "42")
	require.True(t, res.OK())
	assert.Equal(t, http.MethodDelete, rec.get().method)
	assert.Equal(t, "/todos/42", rec.get().path)

	_, err := res.Unwrap()
	assert.NoError(t, err)
}

func TestDeleteTodoNotFound(t *testing.T) {
	c, _ := newTestServer(t, http.StatusNotFound, nil)

	res := c.DeleteTodo(context.Background(), "42")
	require.False(t, res.OK())
	assert.Equal(t, KindDeleteTodo, res.Failure().Kind)
}

func TestUpdateTodo(t *testing.T) {
	task := model.Task{ID: "7", Task: "ship it", Status: model.StatusInProgress}
	c, rec := newTestServer(t, http.StatusOK, task)

	res := c.UpdateTodo(context.Background(), task)
	require.True(t, res.OK())
	assert.Equal(t, model.StatusInProgress, res.Data().Status)

	assert.Equal(t, http.MethodPut, rec.get().method)
	assert.Equal(t, "/todos/7", rec.get().path)

	var sent model.Task
	require.NoError(t, json.Unmarshal(rec.get().body, &sent))
	assert.Equal(t, task.ID, sent.ID)
	assert.Equal(t, task.Task, sent.Task)
}

func TestTrashEndpoints(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		c, rec := newTestServer(t, http.StatusOK, []model.Task{{ID: "t1", Task: "old"}})
		res := c.GetAllTrash(context.Background())
		require.True(t, res.OK())
		assert.Len(t, res.Data(), 1)
		assert.Equal(t, "/trash", rec.get().path)
	})

	t.Run("delete one", func(t *testing.T) {
		c, rec := newTestServer(t, http.StatusOK, nil)
		res := c.DeleteTrash(context.Background(), "t1")
		require.True(t, res.OK())
		assert.Equal(t, http.MethodDelete, rec.get().method)
		assert.Equal(t, "/trash/t1", rec.get().path)
	})

	t.Run("restore has no body", func(t *testing.T) {
		c, rec := newTestServer(t, http.StatusOK, model.Task{ID: "t1", Task: "old"})
		res := c.RestoreTrash(context.Background(), "t1")
		require.True(t, res.OK())
		assert.Equal(t, "t1", res.Data().ID)
		assert.Equal(t, http.MethodPut, rec.get().method)
		assert.Equal(t, "/trash/t1", rec.get().path)
		assert.Empty(t, rec.get().body)
	})

	t.Run("empty", func(t *testing.T) {
		c, rec := newTestServer(t, http.StatusNoContent, nil)
		res := c.EmptyTrash(context.Background())
		require.True(t, res.OK())
		assert.Equal(t, http.MethodDelete, rec.get().method)
		assert.Equal(t, "/trash", rec.get().path)
	})

	t.Run("failures use fixed messages", func(t *testing.T) {
		c, _ := newTestServer(t, http.StatusInternalServerError, nil)
		ctx := context.Background()
		assert.Equal(t, "Failed to fetch trash", c.GetAllTrash(ctx).Failure().Error())
		assert.Equal(t, "Failed to delete trash item", c.DeleteTrash(ctx, "x").Failure().Error())
		assert.Equal(t, "Failed to restore todo", c.RestoreTrash(ctx, "x").Failure().Error())
		assert.Equal(t, "Failed to empty trash", c.EmptyTrash(ctx).Failure().Error())
		assert.Equal(t, "Failed to update todo", c.UpdateTodo(ctx, model.Task{ID: "x"}).Failure().Error())
	})
}

func TestMalformedBodyIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"not": "a list"`))
	}))
	defer srv.Close()

	res := New(srv.URL).GetAllTodos(context.Background())
	require.False(t, res.OK())
	assert.Equal(t, KindFetchTodos, res.Failure().Kind)
}

func TestUnreachableServerIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := New(url, WithTimeout(time.Second)).CreateTodo(context.Background(), "x")
	require.False(t, res.OK())
	assert.Equal(t, KindCreateTodo, res.Failure().Kind)
}

func TestCancelledContextIsFailure(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, []model.Task{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.GetAllTodos(ctx)
	assert.False(t, res.OK())
}

func TestKindMessages(t *testing.T) {
	assert.Equal(t, "Failed to fetch todos", KindFetchTodos.Message())
	assert.Equal(t, "Failed to create todo", KindCreateTodo.Message())
	assert.Equal(t, "Failed to delete todo", KindDeleteTodo.Message())
	assert.Equal(t, "Failed to update todo", KindUpdateTodo.Message())
	assert.Equal(t, "Request failed", Kind(0).Message())
}

func TestResultVariants(t *testing.T) {
	ok := Ok(3)
	v, err := ok.Unwrap()
	assert.True(t, ok.OK())
	assert.Nil(t, ok.Failure())
	assert.Equal(t, 3, v)
	assert.NoError(t, err)

	failed := Fail[int](KindEmptyTrash)
	v, err = failed.Unwrap()
	assert.False(t, failed.OK())
	assert.Zero(t, v)
	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, KindEmptyTrash, f.Kind)
}
