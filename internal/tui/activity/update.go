package activity

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/EzekielClervo/instagram/internal/automation"
	"github.com/EzekielClervo/instagram/internal/domain"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Clear previous messages on keypress
		m.errorMessage = ""
		m.statusMessage = ""

		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case logsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			return m, nil
		}
		m.logs = msg.logs
		if m.cursor >= len(m.logs) {
			m.cursor = 0
		}
		return m, nil

	case accountsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			return m, nil
		}
		m.accounts = msg.accounts
		return m, nil

	case runCompleteMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			return m, nil
		}
		if msg.outcome.Success {
			m.statusMessage = "✓ " + msg.outcome.Message
		} else {
			m.errorMessage = msg.outcome.Message
		}
		m.currentView = viewLogs
		return m, loadLogs(m.api)

	case accountDeletedMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			return m, nil
		}
		m.statusMessage = "✓ Account deleted"
		return m, loadAccounts(m.api)

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Update focused input
	if m.currentView == viewRun {
		switch m.runFocusedField {
		case 1:
			m.usernameInput, cmd = m.usernameInput.Update(msg)
			cmds = append(cmds, cmd)
		case 2:
			m.postURLInput, cmd = m.postURLInput.Update(msg)
			cmds = append(cmds, cmd)
		case 3:
			m.commentInput, cmd = m.commentInput.Update(msg)
			cmds = append(cmds, cmd)
		case 4:
			m.commentIDInput, cmd = m.commentIDInput.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.currentView {
	case viewLogs:
		return m.handleLogsKeys(msg)
	case viewAccounts:
		return m.handleAccountsKeys(msg)
	case viewRun:
		return m.handleRunKeys(msg)
	case viewHelp:
		m.currentView = viewLogs
		return m, nil
	}
	return m, nil
}

// handleLogsKeys handles keys in the history view
func (m Model) handleLogsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("q", "ctrl+c"))):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.cursor < len(m.logs)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
		m.loading = true
		return m, loadLogs(m.api)

	case key.Matches(msg, key.NewBinding(key.WithKeys("n"))):
		// New automation run
		m.currentView = viewRun
		m.runFocusedField = 0
		m.blurInputs()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("a"))):
		m.currentView = viewAccounts
		m.cursor = 0
		m.loading = true
		return m, loadAccounts(m.api)

	case key.Matches(msg, key.NewBinding(key.WithKeys("?"))):
		m.currentView = viewHelp
		return m, nil
	}

	return m, nil
}

// handleAccountsKeys handles keys in the accounts view
func (m Model) handleAccountsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("q", "ctrl+c"))):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		m.currentView = viewLogs
		m.cursor = 0
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.cursor < len(m.accounts)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("d"))):
		if len(m.accounts) > 0 && m.cursor < len(m.accounts) {
			m.loading = true
			return m, deleteAccount(m.api, m.accounts[m.cursor].ID)
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
		m.loading = true
		return m, loadAccounts(m.api)
	}

	return m, nil
}

// handleRunKeys handles keys in the run form
func (m Model) handleRunKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		m.currentView = viewLogs
		m.resetRunForm()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("tab"))):
		m.runFocusedField = (m.runFocusedField + 1) % 5
		m.updateRunFocus()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("shift+tab"))):
		m.runFocusedField--
		if m.runFocusedField < 0 {
			m.runFocusedField = 4
		}
		m.updateRunFocus()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("left", "up"))):
		if m.runFocusedField == 0 {
			if m.actionCursor > 0 {
				m.actionCursor--
			}
			return m, nil
		}

	case key.Matches(msg, key.NewBinding(key.WithKeys("right", "down"))):
		if m.runFocusedField == 0 {
			if m.actionCursor < len(domain.Kinds())-1 {
				m.actionCursor++
			}
			return m, nil
		}

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		req := automation.Request{
			Type:        string(m.selectedAction()),
			Username:    m.usernameInput.Value(),
			PostURL:     m.postURLInput.Value(),
			CommentText: m.commentInput.Value(),
			CommentID:   m.commentIDInput.Value(),
		}
		m.loading = true
		return m, runAutomation(m.api, req)
	}

	return m, nil
}

// updateRunFocus updates which input field is focused
func (m *Model) updateRunFocus() {
	m.blurInputs()
	switch m.runFocusedField {
	case 1:
		m.usernameInput.Focus()
	case 2:
		m.postURLInput.Focus()
	case 3:
		m.commentInput.Focus()
	case 4:
		m.commentIDInput.Focus()
	}
}

func (m *Model) blurInputs() {
	m.usernameInput.Blur()
	m.postURLInput.Blur()
	m.commentInput.Blur()
	m.commentIDInput.Blur()
}

func (m *Model) resetRunForm() {
	m.usernameInput.SetValue("")
	m.postURLInput.SetValue("")
	m.commentInput.SetValue("")
	m.commentIDInput.SetValue("")
	m.actionCursor = 0
	m.runFocusedField = 0
	m.blurInputs()
}
