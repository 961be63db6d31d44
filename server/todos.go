package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/existflow/tidytask/internal/logger"
	"github.com/existflow/tidytask/internal/model"
	"github.com/labstack/echo/v4"
)

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

// storageError maps storage failures onto HTTP responses
func storageError(c echo.Context, err error) error {
	if errors.Is(err, ErrNotFound) {
		return errorJSON(c, http.StatusNotFound, "not found")
	}
	logger.Error("Storage error", logger.F("error", err), logger.F("uri", c.Request().RequestURI))
	return errorJSON(c, http.StatusInternalServerError, "internal error")
}

// bindTask decodes and validates a task body
func bindTask(c echo.Context) (model.Task, error) {
	var t model.Task
	if err := c.Bind(&t); err != nil {
		return model.Task{}, errors.New("invalid request")
	}
	t.Task = strings.TrimSpace(t.Task)
	if t.Task == "" {
		return model.Task{}, errors.New("task is required")
	}
	if t.Status == "" {
		t.Status = model.StatusPending
	}
	if !t.Status.Valid() {
		return model.Task{}, errors.New("invalid status")
	}
	return t, nil
}

func (s *Server) handleListTodos(c echo.Context) error {
	tasks, err := s.storage.List(c.Request().Context(), false)
	if err != nil {
		return storageError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateTodo(c echo.Context) error {
	t, err := bindTask(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	created, err := s.storage.Create(c.Request().Context(), t)
	if err != nil {
		return storageError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) handleUpdateTodo(c echo.Context) error {
	t, err := bindTask(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	// the path wins over the body
	t.ID = c.Param("id")

	updated, err := s.storage.Update(c.Request().Context(), t)
	if err != nil {
		return storageError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteTodo(c echo.Context) error {
	if err := s.storage.MoveToTrash(c.Request().Context(), c.Param("id")); err != nil {
		return storageError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
