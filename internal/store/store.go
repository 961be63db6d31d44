package store

import (
	"context"
	"strings"
	"sync"

	"github.com/existflow/tidytask/internal/api"
	"github.com/existflow/tidytask/internal/logger"
	"github.com/existflow/tidytask/internal/model"
)

// TaskService is the remote API the store reconciles against.
// *api.Client implements it.
type TaskService interface {
	GetAllTodos(ctx context.Context) api.Result[[]model.Task]
	CreateTodo(ctx context.Context, text string) api.Result[model.Task]
	DeleteTodo(ctx context.Context, id string) api.Result[api.None]
	UpdateTodo(ctx context.Context, task model.Task) api.Result[model.Task]
	GetAllTrash(ctx context.Context) api.Result[[]model.Task]
	DeleteTrash(ctx context.Context, id string) api.Result[api.None]
	RestoreTrash(ctx context.Context, id string) api.Result[model.Task]
	EmptyTrash(ctx context.Context) api.Result[api.None]
}

// Store holds the client-side snapshot of todos and trash.
//
// Each action calls the service once and reconciles the snapshot with the
// response. The lock is never held across a service call, so overlapping
// actions apply their results in the order they resolve.
type Store struct {
	svc TaskService

	mu      sync.RWMutex
	todos   []model.Task
	trash   []model.Task
	loading bool
	err     string
	hasErr  bool

	listenerMu sync.Mutex
	listeners  []func()
}

// New creates a store with an empty snapshot
func New(svc TaskService) *Store {
	return &Store{
		svc:   svc,
		todos: []model.Task{},
		trash: []model.Task{},
	}
}

// OnChange registers fn to be called after every snapshot mutation
func (s *Store) OnChange(fn func()) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify() {
	s.listenerMu.Lock()
	listeners := append([]func(){}, s.listeners...)
	s.listenerMu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
	s.notify()
}

func (s *Store) setError(msg string) {
	s.mu.Lock()
	s.err = msg
	s.hasErr = true
	s.mu.Unlock()
	s.notify()
}

func (s *Store) clearError() {
	s.mu.Lock()
	s.err = ""
	s.hasErr = false
	s.mu.Unlock()
	s.notify()
}

func (s *Store) mutate(fn func()) {
	s.mu.Lock()
	fn()
	s.mu.Unlock()
	s.notify()
}

// fail records the failure message and reports false
func (s *Store) fail(f *api.Failure) bool {
	logger.Warn("Store action failed", logger.F("kind", f.Kind), logger.F("error", f.Error()))
	s.setError(f.Error())
	return false
}

// FetchTodos replaces todos with the server's list
func (s *Store) FetchTodos(ctx context.Context) {
	s.setLoading(true)
	s.clearError()
	defer s.setLoading(false)

	res := s.svc.GetAllTodos(ctx)
	if !res.OK() {
		s.fail(res.Failure())
		return
	}

	todos := res.Data()
	s.mutate(func() { s.todos = cloneTasks(todos) })
	logger.Debug("Fetched todos", logger.F("count", len(todos)))
}

// AddTodo creates a task and appends the server's record to todos
func (s *Store) AddTodo(ctx context.Context, text string) bool {
	s.setLoading(true)
	s.clearError()
	defer s.setLoading(false)

	res := s.svc.CreateTodo(ctx, text)
	if !res.OK() {
		return s.fail(res.Failure())
	}

	created := res.Data()
	if created.ID == "" {
		logger.Warn("Create returned no record, todos left as is")
		return true
	}
	s.mutate(func() { s.todos = append(s.todos, created) })
	logger.Info("Todo added", logger.F("id", created.ID))
	return true
}

// DeleteTodo deletes a task and drops every todo with that id
func (s *Store) DeleteTodo(ctx context.Context, id string) bool {
	res := s.svc.DeleteTodo(ctx, id)
	if !res.OK() {
		return s.fail(res.Failure())
	}

	s.mutate(func() { s.todos = removeByID(s.todos, id) })
	logger.Info("Todo deleted", logger.F("id", id))
	return true
}

// UpdateTodo saves task and replaces the matching todo in place.
// A successful update of a task not in todos, or one answered without a
// record, leaves the list unchanged.
func (s *Store) UpdateTodo(ctx context.Context, task model.Task) bool {
	res := s.svc.UpdateTodo(ctx, task)
	if !res.OK() {
		return s.fail(res.Failure())
	}

	updated := res.Data()
	if updated.ID == "" {
		return true
	}
	s.mutate(func() { replaceByID(s.todos, task.ID, updated) })
	return true
}

// FetchTrash replaces trash with the server's list
func (s *Store) FetchTrash(ctx context.Context) {
	s.setLoading(true)
	s.clearError()
	defer s.setLoading(false)

	res := s.svc.GetAllTrash(ctx)
	if !res.OK() {
		s.fail(res.Failure())
		return
	}

	trash := res.Data()
	s.mutate(func() { s.trash = cloneTasks(trash) })
	logger.Debug("Fetched trash", logger.F("count", len(trash)))
}

// DeleteTrash permanently deletes a trashed task
func (s *Store) DeleteTrash(ctx context.Context, id string) bool {
	res := s.svc.DeleteTrash(ctx, id)
	if !res.OK() {
		return s.fail(res.Failure())
	}

	s.mutate(func() { s.trash = removeByID(s.trash, id) })
	logger.Info("Trash item deleted", logger.F("id", id))
	return true
}

// RestoreTrash restores a trashed task. The trash entry is overwritten with
// the server's record; it stays in trash until the next FetchTrash.
func (s *Store) RestoreTrash(ctx context.Context, id string) bool {
	res := s.svc.RestoreTrash(ctx, id)
	if !res.OK() {
		return s.fail(res.Failure())
	}

	restored := res.Data()
	if restored.ID == "" {
		return true
	}
	s.mutate(func() { replaceByID(s.trash, id, restored) })
	logger.Info("Trash item restored", logger.F("id", id))
	return true
}

// EmptyTrash permanently deletes every trashed task
func (s *Store) EmptyTrash(ctx context.Context) {
	res := s.svc.EmptyTrash(ctx)
	if !res.OK() {
		s.fail(res.Failure())
		return
	}

	s.mutate(func() { s.trash = []model.Task{} })
	logger.Info("Trash emptied")
}

// FilterTodos returns todos whose description contains text, ignoring case.
// Empty text returns every todo.
func (s *Store) FilterTodos(text string) []model.Task {
	todos := s.Todos()
	if text == "" {
		return todos
	}

	needle := strings.ToLower(text)
	matched := make([]model.Task, 0, len(todos))
	for _, t := range todos {
		if strings.Contains(strings.ToLower(t.Task), needle) {
			matched = append(matched, t)
		}
	}
	return matched
}

// Todos returns a copy of the active tasks
func (s *Store) Todos() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(s.todos)
}

// Trash returns a copy of the trashed tasks
func (s *Store) Trash() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(s.trash)
}

// TodoByID looks up an active task
func (s *Store) TodoByID(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.todos {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Loading reports whether a fetch or create is in flight
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Error returns the last error message, if any
func (s *Store) Error() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err, s.hasErr
}

func cloneTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	return out
}

func removeByID(tasks []model.Task, id string) []model.Task {
	kept := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return kept
}

// replaceByID swaps the first task with the given id for with
func replaceByID(tasks []model.Task, id string, with model.Task) {
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i] = with
			return
		}
	}
}
