package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/existflow/tidytask/internal/api"
	"github.com/existflow/tidytask/internal/model"
	"github.com/existflow/tidytask/internal/store"
)

// newStore builds a store backed by the configured task service
func (a *app) newStore() *store.Store {
	client := api.New(a.cfg.APIBaseURL, api.WithTimeout(a.cfg.RequestTimeout))
	return store.New(client)
}

// storeError turns the store's last error into a command error
func storeError(s *store.Store) error {
	if msg, ok := s.Error(); ok {
		return errors.New(msg)
	}
	return errors.New("request failed")
}

// loadTodos fetches the active list, failing the command on error
func loadTodos(ctx context.Context, s *store.Store) error {
	s.FetchTodos(ctx)
	if _, failed := s.Error(); failed {
		return storeError(s)
	}
	return nil
}

// loadTrash fetches the trash list, failing the command on error
func loadTrash(ctx context.Context, s *store.Store) error {
	s.FetchTrash(ctx)
	if _, failed := s.Error(); failed {
		return storeError(s)
	}
	return nil
}

// resolveTask finds a task by exact id, then by unique id prefix
func resolveTask(tasks []model.Task, ref string) (model.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Task{}, errors.New("task id required")
	}

	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
	}

	var matches []model.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return model.Task{}, fmt.Errorf("task not found: %s", ref)
	case 1:
		return matches[0], nil
	default:
		return model.Task{}, fmt.Errorf("ambiguous task id %q matches %d tasks", ref, len(matches))
	}
}
