package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/tidytask/internal/alert"
	"github.com/existflow/tidytask/internal/logger"
	"github.com/existflow/tidytask/internal/model"
	"github.com/existflow/tidytask/internal/refresh"
	"github.com/existflow/tidytask/internal/store"
)

// Pane represents which pane is focused
type Pane int

const (
	PaneSidebar Pane = iota
	PaneTaskList
)

// List is the list shown in the task pane
type List int

const (
	ListTodos List = iota
	ListTrash
)

func (l List) String() string {
	if l == ListTrash {
		return "Trash"
	}
	return "Todos"
}

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeEditTask
	ModeFilter
	ModeConfirm
	ModeHelp
)

// confirmation is a destructive action waiting for y/n
type confirmation struct {
	prompt string
	cmd    tea.Cmd
}

// Model is the main TUI model
type Model struct {
	ctx       context.Context
	store     *store.Store
	alerts    *alert.Helper
	refresher *refresh.AutoRefresh // optional

	// Snapshot copies taken from the store on refresh
	todos []model.Task
	trash []model.Task

	// Signals a redraw when the store changes under us
	changed chan struct{}

	// UI state
	width      int
	height     int
	pane       Pane
	mode       Mode
	list       List
	taskCursor int

	// Input
	input textinput.Model

	filterText string
	confirm    *confirmation
}

// NewModel creates a TUI model over s. Nothing is fetched until Init runs.
// refresher may be nil.
func NewModel(s *store.Store, alerts *alert.Helper, refresher *refresh.AutoRefresh) Model {
	logger.Info("Initializing TUI model")

	ti := textinput.New()
	ti.Placeholder = "Enter task..."
	ti.CharLimit = 256
	ti.Width = 50

	m := Model{
		ctx:       context.Background(),
		store:     s,
		alerts:    alerts,
		refresher: refresher,
		pane:      PaneTaskList,
		mode:      ModeNormal,
		list:      ListTodos,
		input:     ti,
		changed:   make(chan struct{}, 1),
	}

	changed := m.changed
	s.OnChange(func() {
		// Non-blocking send; one pending signal is enough for a redraw
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	m.refresh()
	return m
}

// refresh copies the store snapshot into the model, applying the filter
func (m *Model) refresh() {
	m.todos = m.store.FilterTodos(m.filterText)
	m.trash = m.store.Trash()
	m.clampCursor()
}

func (m *Model) visibleTasks() []model.Task {
	if m.list == ListTrash {
		return m.trash
	}
	return m.todos
}

func (m *Model) clampCursor() {
	n := len(m.visibleTasks())
	if m.taskCursor >= n {
		m.taskCursor = n - 1
	}
	if m.taskCursor < 0 {
		m.taskCursor = 0
	}
}

func (m *Model) currentTask() *model.Task {
	tasks := m.visibleTasks()
	if m.taskCursor < len(tasks) {
		return &tasks[m.taskCursor]
	}
	return nil
}
