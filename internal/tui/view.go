package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/tidytask/internal/model"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sidebar := m.renderSidebar()
	taskList := m.renderTaskList()
	statusBar := m.renderStatusBar()

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, taskList)

	var modal string
	switch m.mode {
	case ModeAddTask, ModeEditTask:
		modal = m.renderModal()
	case ModeConfirm:
		modal = m.renderConfirmModal()
	case ModeHelp:
		mainContent = m.renderHelp()
	}
	if modal != "" {
		mainContent = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			modal,
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, statusBar)
}

func (m Model) renderSidebar() string {
	sidebarWidth := 22
	var s string

	// Header with time
	now := time.Now().Format("15:04:05")
	s += lipgloss.NewStyle().Bold(true).Foreground(Primary).Render("TidyTask") + "\n"
	s += HelpStyle.Render(now) + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render("─────────────────") + "\n\n"

	open := 0
	for _, t := range m.store.Todos() {
		if !t.IsDone() {
			open++
		}
	}
	counts := map[List]string{
		ListTodos: fmt.Sprintf("%d/%d", open, len(m.store.Todos())),
		ListTrash: fmt.Sprintf("%d", len(m.trash)),
	}

	for _, l := range []List{ListTodos, ListTrash} {
		cursor := "  "
		style := ListItemStyle
		if l == m.list {
			cursor = "❯ "
			if m.pane == PaneSidebar {
				style = ListItemSelectedStyle
			}
		}
		line := fmt.Sprintf("%s %-8s %s", cursor, l, counts[l])
		s += style.Render(line) + "\n"
	}

	s += "\n" + lipgloss.NewStyle().Foreground(Border).Render("─────────────────") + "\n"
	if m.store.Loading() {
		s += HelpStyle.Render("Loading...")
	} else if m.refresher != nil && m.refresher.IsPending() {
		s += HelpStyle.Render("Refreshing...")
	} else {
		s += HelpStyle.Render("r refresh")
	}

	return SidebarStyle.Width(sidebarWidth).Height(m.height - 2).Render(s)
}

func (m Model) renderTaskList() string {
	width := m.width - 24
	var s string

	tasks := m.visibleTasks()
	header := fmt.Sprintf("%s (%d)", m.list, len(tasks))
	if m.list == ListTodos && m.filterText != "" {
		header = fmt.Sprintf("%s matching \"%s\" (%d)", m.list, m.filterText, len(tasks))
	}
	s += lipgloss.NewStyle().Bold(true).Foreground(Primary).Render(header) + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render(repeat("─", width-4)) + "\n\n"

	if len(tasks) == 0 {
		switch {
		case m.list == ListTrash:
			s += HelpStyle.Render("  Trash is empty.")
		case m.filterText != "":
			s += HelpStyle.Render("  No matching tasks. Esc clears the filter.")
		default:
			s += HelpStyle.Render("  No tasks. Press 'a' to add one.")
		}
	}

	for i, t := range tasks {
		cursor := "  "
		style := TaskItemStyle
		if i == m.taskCursor && m.pane == PaneTaskList {
			cursor = "❯ "
			style = TaskItemSelectedStyle
		}
		if t.IsDone() && m.list == ListTodos {
			style = TaskDoneStyle
		}

		content := truncate(t.Task, width-30)
		check := style.Render(cursor + statusIcon(t.Status))
		desc := style.Render(fmt.Sprintf(" %-*s ", width-30, content))

		s += check + desc + FormatStatus(t.Status) + "\n"
	}

	return TaskListStyle.Width(width).Height(m.height - 2).Render(s)
}

func statusIcon(s model.Status) string {
	switch s {
	case model.StatusCompleted:
		return "[x]"
	case model.StatusInProgress:
		return "[~]"
	default:
		return "[ ]"
	}
}

func (m Model) renderStatusBar() string {
	// When in filter mode, show inline search input (like vim)
	if m.mode == ModeFilter {
		return StatusBarStyle.Width(m.width).Render("/" + m.input.View() + fmt.Sprintf(" [%d]", len(m.todos)))
	}

	help := "/:filter  a:add  e:edit  x:done  s:start  d:del  tab:trash  ?:help  q:quit"
	if m.list == ListTrash {
		help = "u:restore  d:purge  E:empty  tab:todos  ?:help  q:quit"
	}
	if m.filterText != "" && m.list == ListTodos {
		help = fmt.Sprintf("/%s  [%d matches]  Esc:clear", m.filterText, len(m.todos))
	}

	if a, ok := m.alerts.Current(); ok {
		msg := GetAlertStyle(a.Type).Render(a.Message)
		avail := m.width - len(help) - lipgloss.Width(msg) - 4
		if avail > 0 {
			help += strings.Repeat(" ", avail) + msg
		} else {
			help = msg
		}
	}

	return StatusBarStyle.Width(m.width).Render(help)
}

func (m Model) renderModal() string {
	title := "Add Task"
	if m.mode == ModeEditTask {
		title = "Edit Task"
	}

	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n"
	content += m.input.View() + "\n\n"
	content += HelpStyle.Render("Enter:save  Esc:cancel")

	return ModalStyle.Render(content)
}

func (m Model) renderConfirmModal() string {
	if m.confirm == nil {
		return ""
	}

	content := lipgloss.NewStyle().Bold(true).Foreground(AlertError).Render("⚠ "+m.confirm.prompt) + "\n\n"
	content += HelpStyle.Render("This cannot be undone.") + "\n\n"
	content += HelpStyle.Render("y:confirm  n/Esc:cancel")

	return ModalStyle.BorderForeground(AlertError).Render(content)
}

func (m Model) renderHelp() string {
	help := `
╭─── Keyboard Shortcuts ───╮
│                          │
│  Navigation              │
│  ──────────              │
│  j/↓    Move down        │
│  k/↑    Move up          │
│  h/l    Lists / tasks    │
│  Tab    Todos / trash    │
│  G      Go to bottom     │
│                          │
│  Todos                   │
│  ─────                   │
│  a       Add task        │
│  e       Edit task       │
│  x/Enter Toggle done     │
│  s       Start task      │
│  d       Move to trash   │
│  /       Filter          │
│                          │
│  Trash                   │
│  ─────                   │
│  u       Restore         │
│  d       Purge           │
│  E       Empty trash     │
│                          │
│  Other                   │
│  ─────                   │
│  r       Refresh         │
│  ?       Toggle help     │
│  q       Quit            │
│                          │
╰──────────────────────────╯

     Press any key to close
`
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, help)
}
