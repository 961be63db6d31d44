package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/tidytask/internal/logger"
	"github.com/existflow/tidytask/internal/model"
)

// tickMsg is sent every second for alert expiry
type tickMsg time.Time

// storeChangedMsg is sent when the store snapshot changes
type storeChangedMsg struct{}

// actionMsg reports the outcome of a store action
type actionMsg struct {
	ok      bool
	success string
}

// Init starts ticking and loads both lists
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.waitForStoreChange(), m.fetchAll())
}

func tickCmd() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForStoreChange listens for store change signals
func (m Model) waitForStoreChange() tea.Cmd {
	return func() tea.Msg {
		<-m.changed
		return storeChangedMsg{}
	}
}

// fetchAll reloads todos, then trash. It stops at the first failure so the
// error is not cleared by the second fetch.
func (m Model) fetchAll() tea.Cmd {
	s, ctx := m.store, m.ctx
	return func() tea.Msg {
		s.FetchTodos(ctx)
		if _, failed := s.Error(); failed {
			return actionMsg{ok: false}
		}
		s.FetchTrash(ctx)
		_, failed := s.Error()
		return actionMsg{ok: !failed}
	}
}

// action runs fn off the UI goroutine and reports its outcome
func (m Model) action(success string, fn func() bool) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{ok: fn(), success: success}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.alerts.ClearExpired(time.Time(msg))
		return m, tickCmd()

	case storeChangedMsg:
		m.refresh()
		return m, m.waitForStoreChange()

	case actionMsg:
		m.refresh()
		if !msg.ok {
			errMsg, _ := m.store.Error()
			m.alerts.Error(errMsg)
		} else if msg.success != "" {
			m.alerts.Success(msg.success)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Handle mode-specific input
		switch m.mode {
		case ModeAddTask, ModeEditTask:
			return m.updateInput(msg)
		case ModeFilter:
			return m.updateFilter(msg)
		case ModeConfirm:
			return m.updateConfirm(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}

		// Normal mode key handling
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		m.switchList()

	case key.Matches(msg, keys.Left):
		m.pane = PaneSidebar

	case key.Matches(msg, keys.Right):
		m.pane = PaneTaskList

	case key.Matches(msg, keys.Up):
		m.handleUp()

	case key.Matches(msg, keys.Down):
		m.handleDown()

	case msg.String() == "G":
		m.taskCursor = len(m.visibleTasks()) - 1
		m.clampCursor()

	case key.Matches(msg, keys.Add):
		return m.startAddTask()

	case key.Matches(msg, keys.Edit):
		return m.startEditTask()

	case key.Matches(msg, keys.Enter):
		if m.pane == PaneSidebar {
			m.pane = PaneTaskList
			return m, nil
		}
		return m, m.handleToggleDone()

	case key.Matches(msg, keys.Done):
		return m, m.handleToggleDone()

	case key.Matches(msg, keys.Start):
		return m, m.handleStart()

	case key.Matches(msg, keys.Delete):
		return m.handleDelete()

	case key.Matches(msg, keys.Restore):
		return m, m.handleRestore()

	case key.Matches(msg, keys.Empty):
		return m.handleEmptyTrash()

	case key.Matches(msg, keys.Filter):
		return m.startFilter()

	case key.Matches(msg, keys.Escape):
		if m.filterText != "" {
			m.filterText = ""
			m.refresh()
			m.alerts.Clear()
		}

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp

	case key.Matches(msg, keys.Refresh):
		return m, m.fetchAll()
	}

	return m, nil
}

func (m *Model) switchList() {
	if m.list == ListTodos {
		m.list = ListTrash
	} else {
		m.list = ListTodos
	}
	m.taskCursor = 0
	if m.refresher != nil {
		m.refresher.Trigger()
	}
}

func (m *Model) handleUp() {
	if m.pane == PaneSidebar {
		if m.list != ListTodos {
			m.switchList()
		}
		return
	}
	if m.taskCursor > 0 {
		m.taskCursor--
	}
}

func (m *Model) handleDown() {
	if m.pane == PaneSidebar {
		if m.list != ListTrash {
			m.switchList()
		}
		return
	}
	if m.taskCursor < len(m.visibleTasks())-1 {
		m.taskCursor++
	}
}

// selectedTodo returns the task under the cursor when the todo list is active
func (m *Model) selectedTodo() (model.Task, bool) {
	if m.pane != PaneTaskList || m.list != ListTodos {
		return model.Task{}, false
	}
	task := m.currentTask()
	if task == nil {
		return model.Task{}, false
	}
	return *task, true
}

// selectedTrash returns the task under the cursor when the trash list is active
func (m *Model) selectedTrash() (model.Task, bool) {
	if m.pane != PaneTaskList || m.list != ListTrash {
		return model.Task{}, false
	}
	task := m.currentTask()
	if task == nil {
		return model.Task{}, false
	}
	return *task, true
}

func (m Model) startAddTask() (tea.Model, tea.Cmd) {
	m.mode = ModeAddTask
	m.input.SetValue("")
	m.input.Placeholder = "Enter task..."
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) startEditTask() (tea.Model, tea.Cmd) {
	task, ok := m.selectedTodo()
	if !ok {
		return m, nil
	}
	m.mode = ModeEditTask
	m.input.SetValue(task.Task)
	m.input.Placeholder = "Edit task..."
	m.input.Focus()
	m.input.CursorEnd()
	return m, textinput.Blink
}

func (m Model) startFilter() (tea.Model, tea.Cmd) {
	if m.list != ListTodos {
		m.list = ListTodos
		m.taskCursor = 0
	}
	m.pane = PaneTaskList
	m.mode = ModeFilter
	m.input.SetValue(m.filterText)
	m.input.Placeholder = "/"
	m.input.Focus()
	return m, textinput.Blink
}

func (m *Model) handleToggleDone() tea.Cmd {
	task, ok := m.selectedTodo()
	if !ok {
		return nil
	}

	status := model.StatusCompleted
	success := fmt.Sprintf("Completed: %s", task.Task)
	if task.IsDone() {
		status = model.StatusPending
		success = fmt.Sprintf("Reopened: %s", task.Task)
	}

	s, ctx := m.store, m.ctx
	updated := task.WithStatus(status)
	return m.action(success, func() bool { return s.UpdateTodo(ctx, updated) })
}

func (m *Model) handleStart() tea.Cmd {
	task, ok := m.selectedTodo()
	if !ok || task.Status == model.StatusInProgress {
		return nil
	}

	s, ctx := m.store, m.ctx
	updated := task.WithStatus(model.StatusInProgress)
	return m.action(fmt.Sprintf("Started: %s", task.Task), func() bool { return s.UpdateTodo(ctx, updated) })
}

// handleDelete trashes the selected todo, or asks before purging a trash item
func (m Model) handleDelete() (tea.Model, tea.Cmd) {
	s, ctx := m.store, m.ctx

	if task, ok := m.selectedTodo(); ok {
		return m, m.action(fmt.Sprintf("Moved to trash: %s", task.Task), func() bool {
			if !s.DeleteTodo(ctx, task.ID) {
				return false
			}
			s.FetchTrash(ctx)
			return true
		})
	}

	if task, ok := m.selectedTrash(); ok {
		m.askConfirm(fmt.Sprintf("Permanently delete \"%s\"?", truncate(task.Task, 40)),
			m.action(fmt.Sprintf("Purged: %s", task.Task), func() bool { return s.DeleteTrash(ctx, task.ID) }))
	}
	return m, nil
}

// handleRestore restores the selected trash item and reloads both lists
func (m *Model) handleRestore() tea.Cmd {
	task, ok := m.selectedTrash()
	if !ok {
		return nil
	}

	s, ctx := m.store, m.ctx
	return m.action(fmt.Sprintf("Restored: %s", task.Task), func() bool {
		if !s.RestoreTrash(ctx, task.ID) {
			return false
		}
		s.FetchTodos(ctx)
		s.FetchTrash(ctx)
		return true
	})
}

func (m Model) handleEmptyTrash() (tea.Model, tea.Cmd) {
	if m.list != ListTrash || len(m.trash) == 0 {
		return m, nil
	}

	s, ctx := m.store, m.ctx
	m.askConfirm(fmt.Sprintf("Permanently delete all %d trashed tasks?", len(m.trash)),
		m.action("Trash emptied", func() bool {
			s.EmptyTrash(ctx)
			_, failed := s.Error()
			return !failed
		}))
	return m, nil
}

func (m *Model) askConfirm(prompt string, cmd tea.Cmd) {
	m.confirm = &confirmation{prompt: prompt, cmd: cmd}
	m.mode = ModeConfirm
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Yes):
		cmd := m.confirm.cmd
		m.confirm = nil
		m.mode = ModeNormal
		return m, cmd

	case key.Matches(msg, keys.No), key.Matches(msg, keys.Quit):
		m.confirm = nil
		m.mode = ModeNormal
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Enter):
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = ModeNormal
		if value == "" {
			return m, nil
		}

		s, ctx := m.store, m.ctx
		switch mode {
		case ModeAddTask:
			logger.Debug("Adding task from TUI")
			return m, m.action(fmt.Sprintf("Added: %s", value), func() bool { return s.AddTodo(ctx, value) })

		case ModeEditTask:
			task, ok := m.selectedTodo()
			if !ok || task.Task == value {
				return m, nil
			}
			updated := task.WithText(value)
			return m, m.action(fmt.Sprintf("Updated: %s", value), func() bool { return s.UpdateTodo(ctx, updated) })
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.filterText = ""
		m.refresh()
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.mode = ModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	// Live filter as user types
	m.filterText = m.input.Value()
	m.taskCursor = 0
	m.refresh()
	return m, cmd
}
