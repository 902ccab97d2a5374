package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/EzekielClervo/instagram/internal/automation"
	"github.com/EzekielClervo/instagram/internal/cookies"
	"github.com/EzekielClervo/instagram/internal/tui/activity"
	"github.com/EzekielClervo/instagram/pkg/client"
)

const (
	version = "0.1.0"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	baseURL := os.Getenv("IGBOOST_URL")
	if baseURL == "" {
		baseURL = client.DefaultBaseURL
	}
	c, err := client.New(baseURL)
	if err != nil {
		fatal(err)
	}

	switch os.Args[1] {
	case "register":
		handleRegister(c, os.Args[2:])
	case "login":
		handleLogin(c, os.Args[2:])
	case "accounts":
		handleAccounts(c, os.Args[2:])
	case "cookies":
		handleCookies(c, os.Args[2:])
	case "logs":
		handleLogs(c, os.Args[2:])
	case "run":
		handleRun(c, os.Args[2:])
	case "dashboard":
		handleDashboard(c, os.Args[2:])
	case "admin":
		handleAdmin(c, os.Args[2:])
	case "version":
		fmt.Printf("igboost v%s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Instagram automation client (igboost) v` + version + `

Usage: igboost <command> [args]

Commands:
  register <user> <email> <password>   Create an account on the daemon
  login <user> <password> [cmd...]     Log in, then run another command
  accounts list                        List stored Instagram accounts
  accounts add <user> <email> <pass>   Store an Instagram account
  accounts delete <id>                 Delete an account and its cookies
  cookies list                         List stored cookies
  cookies add <accountId> <value>      Attach a cookie string to an account
  cookies import <accountId> <browser> Import Instagram cookies from a browser
  cookies check <id>                   Check whether a cookie is still valid
  cookies delete <id>                  Delete a cookie
  logs [limit]                         Show automation history (default: 50)
  run <type> [options]                 Run an automation
  dashboard                            Open the interactive dashboard
  admin users                          List all users (admin only)
  admin delete <id>                    Delete a user (admin only)
  version                              Show version
  help                                 Show this help

Run Options:
  --username <name>     Target account (follow, unfollow, profile_info)
  --post <url>          Post URL (like, unlike, comment)
  --text <comment>      Comment text (comment)
  --comment-id <id>     Comment id (delete_comment)

Examples:
  igboost login david secret run follow --username someuser
  igboost run like --post https://www.instagram.com/p/xxx/
  igboost cookies import 1 firefox`)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func parseID(raw string) int64 {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fatal(fmt.Errorf("invalid id %q", raw))
	}
	return id
}

func handleRegister(c *client.Client, args []string) {
	if len(args) < 3 {
		fatal(fmt.Errorf("usage: igboost register <user> <email> <password>"))
	}
	user, err := c.Register(args[0], args[1], args[2])
	if err != nil {
		fatal(err)
	}
	fmt.Printf("✓ Registered as %s (id %d)\n", user.Username, user.ID)
}

// handleLogin authenticates and, when more arguments follow, dispatches them
// as a nested command on the same session.
func handleLogin(c *client.Client, args []string) {
	if len(args) < 2 {
		fatal(fmt.Errorf("usage: igboost login <user> <password> [command...]"))
	}
	user, err := c.Login(args[0], args[1])
	if err != nil {
		fatal(err)
	}
	fmt.Printf("✓ Logged in as %s\n", user.Username)

	if len(args) > 2 {
		switch args[2] {
		case "accounts":
			handleAccounts(c, args[3:])
		case "cookies":
			handleCookies(c, args[3:])
		case "logs":
			handleLogs(c, args[3:])
		case "run":
			handleRun(c, args[3:])
		case "dashboard":
			handleDashboard(c, args[3:])
		case "admin":
			handleAdmin(c, args[3:])
		default:
			fatal(fmt.Errorf("unknown command after login: %s", args[2]))
		}
	}
}

func handleAccounts(c *client.Client, args []string) {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		accounts, err := c.Accounts()
		if err != nil {
			fatal(err)
		}
		if len(accounts) == 0 {
			fmt.Println("No accounts stored.")
			return
		}
		for _, a := range accounts {
			active := " "
			if a.Active {
				active = "*"
			}
			fmt.Printf("%s %-6d %-24s %s\n", active, a.ID, a.Username, a.Email)
		}
	case "add":
		if len(args) < 4 {
			fatal(fmt.Errorf("usage: igboost accounts add <user> <email> <password>"))
		}
		account, err := c.CreateAccount(args[1], args[2], args[3])
		if err != nil {
			fatal(err)
		}
		fmt.Printf("✓ Account %s stored (id %d)\n", account.Username, account.ID)
	case "delete":
		if len(args) < 2 {
			fatal(fmt.Errorf("usage: igboost accounts delete <id>"))
		}
		if err := c.DeleteAccount(parseID(args[1])); err != nil {
			fatal(err)
		}
		fmt.Println("✓ Account deleted")
	default:
		fatal(fmt.Errorf("unknown accounts subcommand: %s", args[0]))
	}
}

func handleCookies(c *client.Client, args []string) {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		list, err := c.Cookies()
		if err != nil {
			fatal(err)
		}
		if len(list) == 0 {
			fmt.Println("No cookies stored.")
			return
		}
		for _, ck := range list {
			fmt.Printf("%-6d account %-6d %s\n", ck.ID, ck.AccountID, truncate(ck.Value, 60))
		}
	case "add":
		if len(args) < 3 {
			fatal(fmt.Errorf("usage: igboost cookies add <accountId> <value>"))
		}
		ck, err := c.CreateCookie(parseID(args[1]), strings.Join(args[2:], " "))
		if err != nil {
			fatal(err)
		}
		fmt.Printf("✓ Cookie stored (id %d)\n", ck.ID)
	case "import":
		if len(args) < 3 {
			fatal(fmt.Errorf("usage: igboost cookies import <accountId> <browser>"))
		}
		importer := cookies.NewBrowserImporter()
		value, err := importer.Import(context.Background(), args[2])
		if err != nil {
			fatal(err)
		}
		ck, err := c.CreateCookie(parseID(args[1]), value)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("✓ Imported cookies from %s (id %d)\n", args[2], ck.ID)
	case "check":
		if len(args) < 2 {
			fatal(fmt.Errorf("usage: igboost cookies check <id>"))
		}
		valid, err := c.CheckCookie(parseID(args[1]))
		if err != nil {
			fatal(err)
		}
		if valid {
			fmt.Println("✓ Cookie carries a live session")
		} else {
			fmt.Println("✗ Cookie is no longer valid")
		}
	case "delete":
		if len(args) < 2 {
			fatal(fmt.Errorf("usage: igboost cookies delete <id>"))
		}
		if err := c.DeleteCookie(parseID(args[1])); err != nil {
			fatal(err)
		}
		fmt.Println("✓ Cookie deleted")
	default:
		fatal(fmt.Errorf("unknown cookies subcommand: %s", args[0]))
	}
}

func handleLogs(c *client.Client, args []string) {
	limit := 50
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fatal(fmt.Errorf("invalid limit %q", args[0]))
		}
		limit = n
	}

	logs, err := c.ActivityLogs(limit)
	if err != nil {
		fatal(err)
	}
	if len(logs) == 0 {
		fmt.Println("No automation runs yet.")
		return
	}
	for _, l := range logs {
		fmt.Printf("%s %-8s %-14s %s\n",
			l.CreatedAt.Format("2006-01-02 15:04:05"), l.Status, l.Type, l.Description)
	}
}

func handleRun(c *client.Client, args []string) {
	if len(args) < 1 {
		fatal(fmt.Errorf("usage: igboost run <type> [options]"))
	}

	req := automation.Request{Type: args[0]}
	rest := args[1:]
	for i := 0; i < len(rest); i += 2 {
		opt := rest[i]
		if i+1 >= len(rest) {
			fatal(fmt.Errorf("%s requires a value", opt))
		}
		value := rest[i+1]
		switch opt {
		case "--username":
			req.Username = value
		case "--post":
			req.PostURL = value
		case "--text":
			req.CommentText = value
		case "--comment-id":
			req.CommentID = value
		default:
			fatal(fmt.Errorf("unknown option: %s", opt))
		}
	}

	out, err := c.RunAutomation(req)
	if err != nil {
		fatal(err)
	}
	if out.Success {
		fmt.Printf("✓ %s\n", out.Message)
	} else {
		fmt.Printf("✗ %s\n", out.Message)
	}
	for k, v := range out.Data {
		fmt.Printf("  %s: %v\n", k, v)
	}
}

func handleDashboard(c *client.Client, _ []string) {
	p := tea.NewProgram(activity.NewModel(c), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatal(err)
	}
}

func handleAdmin(c *client.Client, args []string) {
	if len(args) == 0 {
		fatal(fmt.Errorf("usage: igboost admin <users|delete>"))
	}
	switch args[0] {
	case "users":
		users, err := c.AdminUsers()
		if err != nil {
			fatal(err)
		}
		for _, u := range users {
			role := "user"
			if u.IsAdmin {
				role = "admin"
			}
			fmt.Printf("%-6d %-6s %-20s %s\n", u.ID, role, u.Username, u.Email)
		}
	case "delete":
		if len(args) < 2 {
			fatal(fmt.Errorf("usage: igboost admin delete <id>"))
		}
		if err := c.AdminDeleteUser(parseID(args[1])); err != nil {
			fatal(err)
		}
		fmt.Println("✓ User deleted")
	default:
		fatal(fmt.Errorf("unknown admin subcommand: %s", args[0]))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
