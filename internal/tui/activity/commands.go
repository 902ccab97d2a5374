package activity

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/EzekielClervo/instagram/internal/automation"
	"github.com/EzekielClervo/instagram/pkg/client"
)

// Async commands that return tea.Msg

func loadLogs(api *client.Client) tea.Cmd {
	return func() tea.Msg {
		logs, err := api.ActivityLogs(logLimit)
		return logsLoadedMsg{logs: logs, err: err}
	}
}

func loadAccounts(api *client.Client) tea.Cmd {
	return func() tea.Msg {
		accounts, err := api.Accounts()
		return accountsLoadedMsg{accounts: accounts, err: err}
	}
}

func runAutomation(api *client.Client, req automation.Request) tea.Cmd {
	return func() tea.Msg {
		outcome, err := api.RunAutomation(req)
		return runCompleteMsg{outcome: outcome, err: err}
	}
}

func deleteAccount(api *client.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		return accountDeletedMsg{err: api.DeleteAccount(id)}
	}
}
