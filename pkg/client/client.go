// Package client is the typed HTTP client for the igboost daemon. It keeps a
// cookie jar so the session from Login carries across calls, which is what
// the CLI and the TUI use.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/EzekielClervo/instagram/internal/automation"
	"github.com/EzekielClervo/instagram/internal/domain"
	"github.com/EzekielClervo/instagram/internal/instagram"
)

// DefaultBaseURL is where a locally running daemon listens.
const DefaultBaseURL = "http://localhost:5000"

// Client talks to a running daemon.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}, nil
}

// NewDefault creates a client for the default local daemon address.
func NewDefault() (*Client, error) {
	return New(DefaultBaseURL)
}

// apiError is the daemon's error payload.
type apiError struct {
	Message string `json:"message"`
}

func (c *Client) do(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w (is the daemon running?)", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Message)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// Register creates a user and logs the session in.
func (c *Client) Register(username, email, password string) (*domain.User, error) {
	var user domain.User
	err := c.do(http.MethodPost, "/api/register", map[string]string{
		"username": username, "email": email, "password": password,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates the session.
func (c *Client) Login(username, password string) (*domain.User, error) {
	var user domain.User
	err := c.do(http.MethodPost, "/api/login", map[string]string{
		"username": username, "password": password,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout ends the session.
func (c *Client) Logout() error {
	return c.do(http.MethodPost, "/api/logout", nil, nil)
}

// CurrentUser returns the logged-in user.
func (c *Client) CurrentUser() (*domain.User, error) {
	var user domain.User
	if err := c.do(http.MethodGet, "/api/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Accounts lists the session user's Instagram accounts.
func (c *Client) Accounts() ([]*domain.Account, error) {
	var accounts []*domain.Account
	if err := c.do(http.MethodGet, "/api/instagram/accounts", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// CreateAccount stores an Instagram account.
func (c *Client) CreateAccount(username, email, password string) (*domain.Account, error) {
	var account domain.Account
	err := c.do(http.MethodPost, "/api/instagram/accounts", map[string]string{
		"username": username, "email": email, "password": password,
	}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// DeleteAccount removes an account and its cookies.
func (c *Client) DeleteAccount(id int64) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/instagram/accounts/%d", id), nil, nil)
}

// Cookies lists the session user's stored cookies.
func (c *Client) Cookies() ([]*domain.Cookie, error) {
	var cookies []*domain.Cookie
	if err := c.do(http.MethodGet, "/api/instagram/cookies", nil, &cookies); err != nil {
		return nil, err
	}
	return cookies, nil
}

// CreateCookie attaches a cookie string to an account.
func (c *Client) CreateCookie(accountID int64, value string) (*domain.Cookie, error) {
	var ck domain.Cookie
	err := c.do(http.MethodPost, "/api/instagram/cookies", map[string]interface{}{
		"accountId": accountID, "cookieValue": value,
	}, &ck)
	if err != nil {
		return nil, err
	}
	return &ck, nil
}

// DeleteCookie removes a stored cookie.
func (c *Client) DeleteCookie(id int64) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/instagram/cookies/%d", id), nil, nil)
}

// CheckCookie asks the daemon whether a stored cookie still carries a live
// Instagram session.
func (c *Client) CheckCookie(id int64) (bool, error) {
	var result struct {
		Valid bool `json:"valid"`
	}
	if err := c.do(http.MethodGet, fmt.Sprintf("/api/instagram/cookies/%d/check", id), nil, &result); err != nil {
		return false, err
	}
	return result.Valid, nil
}

// ActivityLogs returns the session user's automation history, most recent
// first. limit <= 0 fetches everything.
func (c *Client) ActivityLogs(limit int) ([]*domain.ActivityLog, error) {
	path := "/api/activity-logs"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	var logs []*domain.ActivityLog
	if err := c.do(http.MethodGet, path, nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// RunAutomation dispatches an automation request and returns its outcome.
func (c *Client) RunAutomation(req automation.Request) (*instagram.Outcome, error) {
	var out instagram.Outcome
	if err := c.do(http.MethodPost, "/api/automation/run", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminUsers lists every user. Requires an admin session.
func (c *Client) AdminUsers() ([]*domain.User, error) {
	var users []*domain.User
	if err := c.do(http.MethodGet, "/api/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AdminDeleteUser removes a user and everything they own. Requires an
// admin session.
func (c *Client) AdminDeleteUser(id int64) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", id), nil, nil)
}
