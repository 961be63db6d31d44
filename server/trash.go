package server

import (
	"net/http"

	"github.com/existflow/tidytask/internal/logger"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleListTrash(c echo.Context) error {
	tasks, err := s.storage.List(c.Request().Context(), true)
	if err != nil {
		return storageError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// handleRestoreTrash moves the task back to todos and returns it
func (s *Server) handleRestoreTrash(c echo.Context) error {
	restored, err := s.storage.Restore(c.Request().Context(), c.Param("id"))
	if err != nil {
		return storageError(c, err)
	}
	return c.JSON(http.StatusOK, restored)
}

func (s *Server) handleDeleteTrash(c echo.Context) error {
	if err := s.storage.Purge(c.Request().Context(), c.Param("id")); err != nil {
		return storageError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleEmptyTrash(c echo.Context) error {
	n, err := s.storage.PurgeAll(c.Request().Context())
	if err != nil {
		return storageError(c, err)
	}
	logger.Info("Trash emptied", logger.F("deleted", n))
	return c.NoContent(http.StatusNoContent)
}
