// Package activity is the terminal dashboard: it shows the automation
// history and the stored accounts, and lets the user fire new automation
// runs against the daemon.
package activity

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/EzekielClervo/instagram/internal/domain"
	"github.com/EzekielClervo/instagram/pkg/client"
)

// view represents different screens in the TUI
type view int

const (
	viewLogs view = iota
	viewAccounts
	viewRun
	viewHelp
)

// logLimit caps how much history the dashboard pulls per refresh.
const logLimit = 50

// Model is the Bubbletea model for the automation dashboard
type Model struct {
	// Navigation
	currentView view
	width       int
	height      int
	quitting    bool

	// Dependencies
	api *client.Client

	// State
	logs     []*domain.ActivityLog
	accounts []*domain.Account
	cursor   int

	// Run form state
	actionCursor    int
	runFocusedField int
	usernameInput   textinput.Model
	postURLInput    textinput.Model
	commentInput    textinput.Model
	commentIDInput  textinput.Model

	// Components
	spinner spinner.Model

	// UI state
	loading       bool
	statusMessage string
	errorMessage  string
}

// NewModel creates a new dashboard model
func NewModel(api *client.Client) Model {
	usernameInput := textinput.New()
	usernameInput.Placeholder = "Target username"
	usernameInput.CharLimit = 64
	usernameInput.Width = 40

	postURLInput := textinput.New()
	postURLInput.Placeholder = "https://www.instagram.com/p/..."
	postURLInput.CharLimit = 256
	postURLInput.Width = 60

	commentInput := textinput.New()
	commentInput.Placeholder = "Comment text"
	commentInput.CharLimit = 256
	commentInput.Width = 60

	commentIDInput := textinput.New()
	commentIDInput.Placeholder = "Comment id"
	commentIDInput.CharLimit = 32
	commentIDInput.Width = 40

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		currentView:    viewLogs,
		api:            api,
		usernameInput:  usernameInput,
		postURLInput:   postURLInput,
		commentInput:   commentInput,
		commentIDInput: commentIDInput,
		spinner:        s,
		loading:        true,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadLogs(m.api),
		loadAccounts(m.api),
		m.spinner.Tick,
	)
}

// selectedAction is the action kind under the form cursor.
func (m Model) selectedAction() domain.ActionKind {
	kinds := domain.Kinds()
	if m.actionCursor < 0 || m.actionCursor >= len(kinds) {
		return kinds[0]
	}
	return kinds[m.actionCursor]
}
