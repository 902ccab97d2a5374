package activity

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/EzekielClervo/instagram/internal/domain"
)

// Styles with adaptive colors for light/dark backgrounds
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "63", Dark: "205"}).
			MarginLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "250"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "9"}).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "34", Dark: "10"}).
			Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "63", Dark: "205"})

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "63", Dark: "63"}).
			Padding(1, 2)

	activeInputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "63", Dark: "205"})

	inactiveInputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "250"})
)

// View renders the current view
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var content string

	switch m.currentView {
	case viewLogs:
		content = m.viewLogs()
	case viewAccounts:
		content = m.viewAccounts()
	case viewRun:
		content = m.viewRun()
	case viewHelp:
		content = m.viewHelp()
	default:
		content = m.viewLogs()
	}

	// Add status/error messages
	if m.errorMessage != "" {
		content += "\n" + errorStyle.Render("Error: "+m.errorMessage)
	} else if m.statusMessage != "" {
		content += "\n" + successStyle.Render(m.statusMessage)
	}

	if m.loading {
		content += "\n" + m.spinner.View() + " Loading..."
	}

	return content
}

func statusIcon(status domain.ActivityStatus) string {
	switch status {
	case domain.StatusSuccess:
		return "✓"
	case domain.StatusFailed:
		return "✗"
	case domain.StatusPending:
		return "…"
	}
	return "?"
}

// viewLogs renders the automation history
func (m Model) viewLogs() string {
	title := titleStyle.Render("📋 Automation History")

	var b strings.Builder
	b.WriteString(title + "\n\n")

	if len(m.logs) == 0 {
		b.WriteString("  No automation runs yet. Press 'n' to start one.\n")
	} else {
		b.WriteString(fmt.Sprintf("  %d recent runs\n\n", len(m.logs)))

		for i, l := range m.logs {
			cursor := "  "
			if i == m.cursor {
				cursor = "▸ "
			}

			b.WriteString(fmt.Sprintf("  %s%s %-14s %s\n",
				cursor, statusIcon(l.Status), l.Type, l.Description))

			if i == m.cursor {
				b.WriteString(fmt.Sprintf("     %s\n",
					helpStyle.Render(l.CreatedAt.Format("2006-01-02 15:04:05")+" • "+string(l.Status))))
			}
		}
	}

	help := "\n" + helpStyle.Render(
		"  ↑/k up • ↓/j down • n new run • a accounts • r refresh • ? help • q quit",
	)

	return b.String() + help
}

// viewAccounts renders the stored accounts
func (m Model) viewAccounts() string {
	title := titleStyle.Render("👤 Instagram Accounts")

	var b strings.Builder
	b.WriteString(title + "\n\n")

	if len(m.accounts) == 0 {
		b.WriteString("  No accounts stored. Add one with the CLI.\n")
	} else {
		for i, acc := range m.accounts {
			cursor := "  "
			if i == m.cursor {
				cursor = "▸ "
			}

			active := " "
			if acc.Active {
				active = "⭐"
			}

			b.WriteString(fmt.Sprintf("  %s%s %-24s %s\n", cursor, active, acc.Username, acc.Email))
		}
	}

	help := "\n" + helpStyle.Render(
		"  ↑/k up • ↓/j down • d delete • r refresh • esc back • q quit",
	)

	return b.String() + help
}

// viewRun renders the automation form
func (m Model) viewRun() string {
	title := titleStyle.Render("Run Automation")

	var b strings.Builder
	b.WriteString(title + "\n\n")

	// Action selector
	if m.runFocusedField == 0 {
		b.WriteString(activeInputStyle.Render("  Action:") + "\n")
	} else {
		b.WriteString(inactiveInputStyle.Render("  Action:") + "\n")
	}
	var kinds []string
	for i, k := range domain.Kinds() {
		label := string(k)
		if i == m.actionCursor {
			label = "[" + label + "]"
		}
		kinds = append(kinds, label)
	}
	b.WriteString("  " + strings.Join(kinds, " ") + "\n\n")

	fields := []struct {
		label string
		view  string
		index int
	}{
		{"Username:", m.usernameInput.View(), 1},
		{"Post URL:", m.postURLInput.View(), 2},
		{"Comment text:", m.commentInput.View(), 3},
		{"Comment id:", m.commentIDInput.View(), 4},
	}
	for _, f := range fields {
		if m.runFocusedField == f.index {
			b.WriteString(activeInputStyle.Render("  "+f.label) + "\n")
		} else {
			b.WriteString(inactiveInputStyle.Render("  "+f.label) + "\n")
		}
		b.WriteString("  " + f.view + "\n\n")
	}

	help := helpStyle.Render("  Tab next field • ←/→ pick action • Enter run • Esc cancel")

	return boxStyle.Render(b.String()) + "\n\n" + help
}

// viewHelp renders the help screen
func (m Model) viewHelp() string {
	title := titleStyle.Render("Help")

	help := `
  Navigation:
    ↑/k        Move up
    ↓/j        Move down
    Esc        Go back / Cancel
    q          Quit

  History view:
    n          Start a new automation run
    a          Show stored accounts
    r          Refresh

  Accounts view:
    d          Delete selected account
    r          Refresh

  Run form:
    Tab        Next field
    Shift+Tab  Previous field
    ←/→        Pick the action kind
    Enter      Run

  Tips:
    - Only the fields the chosen action needs are read
    - Runs use the oldest stored cookie for your accounts
    - Results land in the history as success or failed
`

	return title + "\n" + help + "\n" + helpStyle.Render("  Press any key to return")
}
