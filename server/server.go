package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server serves the todos and trash REST API
type Server struct {
	storage *Storage
	echo    *echo.Echo
}

// New opens storage at dsn and builds the router
func New(dsn string) (*Server, error) {
	storage, err := OpenStorage(dsn)
	if err != nil {
		return nil, err
	}

	s := &Server{storage: storage}
	s.setupEcho()
	return s, nil
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.GET("/health", s.handleHealth)

	e.GET("/todos", s.handleListTodos)
	e.POST("/todos", s.handleCreateTodo)
	e.PUT("/todos/:id", s.handleUpdateTodo)
	e.DELETE("/todos/:id", s.handleDeleteTodo)

	e.GET("/trash", s.handleListTrash)
	e.PUT("/trash/:id", s.handleRestoreTrash)
	e.DELETE("/trash/:id", s.handleDeleteTrash)
	e.DELETE("/trash", s.handleEmptyTrash)

	s.echo = e
}

// Close closes the database connection
func (s *Server) Close() error {
	return s.storage.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
