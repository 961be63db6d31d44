package model

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a task
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every known status in display order
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ParseStatus converts user input ("done", "in progress", ...) to a Status
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "todo":
		return StatusPending, true
	case "in-progress", "in_progress", "in progress", "doing", "started":
		return StatusInProgress, true
	case "completed", "complete", "done":
		return StatusCompleted, true
	}
	return "", false
}

// Task represents a single todo item as exchanged with the API.
// ID is empty until the server assigns one.
type Task struct {
	ID        string    `json:"id,omitempty"`
	Task      string    `json:"task"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTask creates a pending task with both timestamps set to now
func NewTask(text string) Task {
	now := time.Now()
	return Task{
		Task:      text,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsDone returns true if the task is completed
func (t *Task) IsDone() bool {
	return t.Status == StatusCompleted
}

// WithStatus returns a copy of the task moved to status s
func (t Task) WithStatus(s Status) Task {
	t.Status = s
	t.UpdatedAt = time.Now()
	return t
}

// WithText returns a copy of the task with a new description
func (t Task) WithText(text string) Task {
	t.Task = text
	t.UpdatedAt = time.Now()
	return t
}
