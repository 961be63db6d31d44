package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/existflow/tidytask/internal/logger"
	"github.com/existflow/tidytask/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// Client talks to the remote task service. Every call issues exactly one
// HTTP request and never returns transport errors to the caller.
type Client struct {
	baseURL string
	http    *resty.Client
}

// Option configures a Client
type Option func(*Client)

// WithTimeout bounds every request. Without it a stalled server blocks the caller.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

func newResty(rc *resty.Client, baseURL string) *resty.Client {
	return rc.
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetLogger(restyLogger{})
}

// restyLogger routes resty's internal messages into the application log
// instead of stderr.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) {
	logger.Warn("resty", logger.F("detail", fmt.Sprintf(format, v...)))
}

func (restyLogger) Warnf(format string, v ...interface{}) {
	logger.Warn("resty", logger.F("detail", fmt.Sprintf(format, v...)))
}

func (restyLogger) Debugf(format string, v ...interface{}) {
	logger.Debug("resty", logger.F("detail", fmt.Sprintf(format, v...)))
}

// New creates a client for the service at baseURL
func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	c := &Client{
		baseURL: baseURL,
		http:    newResty(resty.New(), baseURL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one request. result, when non-nil, receives the decoded JSON body.
func (c *Client) do(ctx context.Context, method, path, id string, body, result interface{}) error {
	req := c.http.R().SetContext(ctx)
	if strings.Contains(path, "{id}") {
		req.SetPathParam("id", id)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result).ForceContentType("application/json")
	}

	logger.Debug("HTTP Request",
		logger.F("method", method),
		logger.F("url", c.baseURL+path),
		logger.F("id", id))

	resp, err := req.Execute(method, path)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}

	logger.Debug("HTTP Response",
		logger.F("status", resp.StatusCode()),
		logger.F("duration", resp.Time().String()))

	if !resp.IsSuccess() {
		return errors.Errorf("%s %s: unexpected status %s: %s", method, path, resp.Status(), strings.TrimSpace(resp.String()))
	}
	return nil
}

func logFailure(kind Kind, err error) {
	logger.Error(kind.Message(), logger.F("error", err))
}

// GetAllTodos lists active tasks
func (c *Client) GetAllTodos(ctx context.Context) Result[[]model.Task] {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/todos", "", nil, &tasks); err != nil {
		logFailure(KindFetchTodos, err)
		return Fail[[]model.Task](KindFetchTodos)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return Ok(tasks)
}

// CreateTodo posts a new pending task and returns the server's copy
func (c *Client) CreateTodo(ctx context.Context, text string) Result[model.Task] {
	var created model.Task
	if err := c.do(ctx, http.MethodPost, "/todos", "", model.NewTask(text), &created); err != nil {
		logFailure(KindCreateTodo, err)
		return Fail[model.Task](KindCreateTodo)
	}
	return Ok(created)
}

// DeleteTodo removes a task; the server moves it to trash
func (c *Client) DeleteTodo(ctx context.Context, id string) Result[None] {
	if err := c.do(ctx, http.MethodDelete, "/todos/{id}", id, nil, nil); err != nil {
		logFailure(KindDeleteTodo, err)
		return Fail[None](KindDeleteTodo)
	}
	return Ok(None{})
}

// UpdateTodo replaces the full task record
func (c *Client) UpdateTodo(ctx context.Context, task model.Task) Result[model.Task] {
	var updated model.Task
	if err := c.do(ctx, http.MethodPut, "/todos/{id}", task.ID, task, &updated); err != nil {
		logFailure(KindUpdateTodo, err)
		return Fail[model.Task](KindUpdateTodo)
	}
	return Ok(updated)
}

// GetAllTrash lists trashed tasks
func (c *Client) GetAllTrash(ctx context.Context) Result[[]model.Task] {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/trash", "", nil, &tasks); err != nil {
		logFailure(KindFetchTrash, err)
		return Fail[[]model.Task](KindFetchTrash)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return Ok(tasks)
}

// DeleteTrash permanently deletes one trashed task
func (c *Client) DeleteTrash(ctx context.Context, id string) Result[None] {
	if err := c.do(ctx, http.MethodDelete, "/trash/{id}", id, nil, nil); err != nil {
		logFailure(KindDeleteTrash, err)
		return Fail[None](KindDeleteTrash)
	}
	return Ok(None{})
}

// RestoreTrash asks the server to move a trashed task back to todos.
// The request has no body.
func (c *Client) RestoreTrash(ctx context.Context, id string) Result[model.Task] {
	var restored model.Task
	if err := c.do(ctx, http.MethodPut, "/trash/{id}", id, nil, &restored); err != nil {
		logFailure(KindRestoreTrash, err)
		return Fail[model.Task](KindRestoreTrash)
	}
	return Ok(restored)
}

// EmptyTrash permanently deletes every trashed task
func (c *Client) EmptyTrash(ctx context.Context) Result[None] {
	if err := c.do(ctx, http.MethodDelete, "/trash", "", nil, nil); err != nil {
		logFailure(KindEmptyTrash, err)
		return Fail[None](KindEmptyTrash)
	}
	return Ok(None{})
}
