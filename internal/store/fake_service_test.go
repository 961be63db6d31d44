package store_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/existflow/tidytask/internal/api"
	"github.com/existflow/tidytask/internal/model"
)

// fakeService is an in-memory TaskService. Setting a fail* flag makes the
// matching call return its failure kind.
type fakeService struct {
	mu sync.Mutex

	todos []model.Task
	trash []model.Task
	next  int

	failFetch   bool
	failCreate  bool
	failDelete  bool
	failUpdate  bool
	failTrash   bool
	failPurge   bool
	failRestore bool
	failEmpty   bool

	// noRecord makes create, update and restore succeed without a body
	noRecord bool

	calls []string

	// block, when set, is waited on before GetAllTodos answers
	block chan struct{}
}

func newFakeService(todos ...model.Task) *fakeService {
	return &fakeService{todos: todos}
}

func (f *fakeService) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeService) GetAllTodos(ctx context.Context) api.Result[[]model.Task] {
	f.record("GetAllTodos")
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFetch {
		return api.Fail[[]model.Task](api.KindFetchTodos)
	}
	return api.Ok(append([]model.Task{}, f.todos...))
}

func (f *fakeService) CreateTodo(ctx context.Context, text string) api.Result[model.Task] {
	f.record("CreateTodo")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return api.Fail[model.Task](api.KindCreateTodo)
	}
	if f.noRecord {
		return api.Ok(model.Task{})
	}
	f.next++
	t := model.NewTask(text)
	t.ID = fmt.Sprintf("new-%d", f.next)
	f.todos = append(f.todos, t)
	return api.Ok(t)
}

func (f *fakeService) DeleteTodo(ctx context.Context, id string) api.Result[api.None] {
	f.record("DeleteTodo")
	if f.failDelete {
		return api.Fail[api.None](api.KindDeleteTodo)
	}
	return api.Ok(api.None{})
}

func (f *fakeService) UpdateTodo(ctx context.Context, task model.Task) api.Result[model.Task] {
	f.record("UpdateTodo")
	if f.failUpdate {
		return api.Fail[model.Task](api.KindUpdateTodo)
	}
	if f.noRecord {
		return api.Ok(model.Task{})
	}
	return api.Ok(task)
}

func (f *fakeService) GetAllTrash(ctx context.Context) api.Result[[]model.Task] {
	f.record("GetAllTrash")
	if f.failTrash {
		return api.Fail[[]model.Task](api.KindFetchTrash)
	}
	return api.Ok(append([]model.Task{}, f.trash...))
}

func (f *fakeService) DeleteTrash(ctx context.Context, id string) api.Result[api.None] {
	f.record("DeleteTrash")
	if f.failPurge {
		return api.Fail[api.None](api.KindDeleteTrash)
	}
	return api.Ok(api.None{})
}

func (f *fakeService) RestoreTrash(ctx context.Context, id string) api.Result[model.Task] {
	f.record("RestoreTrash")
	if f.failRestore {
		return api.Fail[model.Task](api.KindRestoreTrash)
	}
	if f.noRecord {
		return api.Ok(model.Task{})
	}
	for _, t := range f.trash {
		if t.ID == id {
			return api.Ok(t.WithStatus(model.StatusPending))
		}
	}
	return api.Fail[model.Task](api.KindRestoreTrash)
}

func (f *fakeService) EmptyTrash(ctx context.Context) api.Result[api.None] {
	f.record("EmptyTrash")
	if f.failEmpty {
		return api.Fail[api.None](api.KindEmptyTrash)
	}
	return api.Ok(api.None{})
}
