package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/EzekielClervo/instagram/internal/auth"
	"github.com/EzekielClervo/instagram/internal/domain"
	"github.com/EzekielClervo/instagram/internal/instagram"
	"github.com/EzekielClervo/instagram/internal/repository/memory"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv is one running API server with its own store, plus a stub
// standing in for Instagram.
type testEnv struct {
	store *memory.Store
	api   *httptest.Server
	ig    *httptest.Server
}

func newTestEnv(t *testing.T, igHandler http.HandlerFunc) *testEnv {
	t.Helper()
	if igHandler == nil {
		igHandler = func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"ok"}`))
		}
	}
	ig := httptest.NewServer(igHandler)
	store := memory.NewStore()
	api := httptest.NewServer(New(store, instagram.NewClient(ig.URL)).Router("test-secret"))
	t.Cleanup(func() {
		api.Close()
		ig.Close()
	})
	return &testEnv{store: store, api: api, ig: ig}
}

// newSession returns an http client with a cookie jar so the session
// survives across requests.
func newSession(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func (e *testEnv) do(t *testing.T, client *http.Client, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, e.api.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func (e *testEnv) register(t *testing.T, client *http.Client, username string) int64 {
	t.Helper()
	resp, body := e.do(t, client, http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d (%v)", username, resp.StatusCode, body)
	}
	id, ok := body["id"].(float64)
	if !ok {
		t.Fatalf("register response has no id: %v", body)
	}
	return int64(id)
}

func TestRegisterLoginAndSession(t *testing.T) {
	env := newTestEnv(t, nil)
	client := newSession(t)

	env.register(t, client, "alice")

	// Registration logs the session in.
	resp, body := env.do(t, client, http.MethodGet, "/api/user", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/user after register: status %d", resp.StatusCode)
	}
	if body["username"] != "alice" {
		t.Errorf("current user = %v", body["username"])
	}
	if _, leaked := body["password"]; leaked {
		t.Error("user payload leaks the password field")
	}

	// Logout kills the session.
	if resp, _ := env.do(t, client, http.MethodPost, "/api/logout", nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: status %d", resp.StatusCode)
	}
	if resp, _ := env.do(t, client, http.MethodGet, "/api/user", nil); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("GET /api/user after logout: status %d, want 401", resp.StatusCode)
	}

	// Login restores it.
	resp, _ = env.do(t, client, http.MethodPost, "/api/login", map[string]string{
		"username": "alice", "password": "secret123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d", resp.StatusCode)
	}
	if resp, _ := env.do(t, client, http.MethodGet, "/api/user", nil); resp.StatusCode != http.StatusOK {
		t.Errorf("GET /api/user after login: status %d", resp.StatusCode)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t, nil)
	env.register(t, newSession(t), "alice")

	resp, body := env.do(t, newSession(t), http.MethodPost, "/api/register", map[string]string{
		"username": "ALICE", "email": "other@example.com", "password": "x",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate register: status %d", resp.StatusCode)
	}
	if body["message"] != "Username already exists" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t, nil)
	env.register(t, newSession(t), "alice")

	for _, creds := range []map[string]string{
		{"username": "alice", "password": "nope"},
		{"username": "nobody", "password": "nope"},
	} {
		resp, body := env.do(t, newSession(t), http.MethodPost, "/api/login", creds)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("login %v: status %d, want 401", creds, resp.StatusCode)
		}
		if body["message"] != "Invalid username or password" {
			t.Errorf("message = %v", body["message"])
		}
	}
}

func TestRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t, nil)
	client := newSession(t)

	for _, path := range []string{
		"/api/instagram/accounts",
		"/api/instagram/cookies",
		"/api/activity-logs",
	} {
		if resp, _ := env.do(t, client, http.MethodGet, path, nil); resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("GET %s anonymous: status %d, want 401", path, resp.StatusCode)
		}
	}
	if resp, _ := env.do(t, client, http.MethodPost, "/api/automation/run", map[string]string{"type": "dedupe"}); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("automation anonymous: status %d, want 401", resp.StatusCode)
	}
}

func TestAccountAndCookieLifecycle(t *testing.T) {
	env := newTestEnv(t, nil)
	client := newSession(t)
	env.register(t, client, "alice")

	resp, acct := env.do(t, client, http.MethodPost, "/api/instagram/accounts", map[string]string{
		"username": "ig_alice", "email": "ig@example.com", "password": "pw",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create account: status %d", resp.StatusCode)
	}
	accountID := int64(acct["id"].(float64))

	resp, ck := env.do(t, client, http.MethodPost, "/api/instagram/cookies", map[string]interface{}{
		"accountId": accountID, "cookieValue": "sessionid=abc; csrftoken=def",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create cookie: status %d (%v)", resp.StatusCode, ck)
	}
	if ck["cookieValue"] != "sessionid=abc; csrftoken=def" {
		t.Errorf("cookie value = %v", ck["cookieValue"])
	}
	cookieID := int64(ck["id"].(float64))

	// Deleting the account cascades to its cookies.
	if resp, _ := env.do(t, client, http.MethodDelete, fmt.Sprintf("/api/instagram/accounts/%d", accountID), nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("delete account: status %d", resp.StatusCode)
	}
	if resp, _ := env.do(t, client, http.MethodDelete, fmt.Sprintf("/api/instagram/cookies/%d", cookieID), nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("cookie survived the account cascade: status %d", resp.StatusCode)
	}
}

func TestOwnershipIsolation(t *testing.T) {
	env := newTestEnv(t, nil)

	alice := newSession(t)
	env.register(t, alice, "alice")
	_, acct := env.do(t, alice, http.MethodPost, "/api/instagram/accounts", map[string]string{
		"username": "ig_alice", "password": "pw",
	})
	accountID := int64(acct["id"].(float64))

	bob := newSession(t)
	env.register(t, bob, "bob")

	// Bob cannot delete or attach cookies to Alice's account.
	if resp, _ := env.do(t, bob, http.MethodDelete, fmt.Sprintf("/api/instagram/accounts/%d", accountID), nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("cross-user account delete: status %d, want 404", resp.StatusCode)
	}
	if resp, _ := env.do(t, bob, http.MethodPost, "/api/instagram/cookies", map[string]interface{}{
		"accountId": accountID, "cookieValue": "sessionid=stolen",
	}); resp.StatusCode != http.StatusNotFound {
		t.Errorf("cross-user cookie create: status %d, want 404", resp.StatusCode)
	}
}

func TestCheckCookie(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	client := newSession(t)
	env.register(t, client, "alice")

	_, acct := env.do(t, client, http.MethodPost, "/api/instagram/accounts", map[string]string{
		"username": "ig_alice", "password": "pw",
	})
	_, ck := env.do(t, client, http.MethodPost, "/api/instagram/cookies", map[string]interface{}{
		"accountId": int64(acct["id"].(float64)), "cookieValue": "sessionid=live",
	})

	resp, body := env.do(t, client, http.MethodGet, fmt.Sprintf("/api/instagram/cookies/%v/check", int64(ck["id"].(float64))), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("check cookie: status %d", resp.StatusCode)
	}
	if body["valid"] != true {
		t.Errorf("valid = %v, want true", body["valid"])
	}
}

func TestAutomationRun(t *testing.T) {
	env := newTestEnv(t, nil)
	client := newSession(t)
	env.register(t, client, "alice")

	// No stored cookies yet.
	resp, body := env.do(t, client, http.MethodPost, "/api/automation/run", map[string]interface{}{
		"type": "like", "postUrl": "https://www.instagram.com/p/ABC123/",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("automation without cookies: status %d", resp.StatusCode)
	}
	if body["message"] != "No cookies available. Please add an account first." {
		t.Errorf("message = %v", body["message"])
	}

	_, acct := env.do(t, client, http.MethodPost, "/api/instagram/accounts", map[string]string{
		"username": "ig_alice", "password": "pw",
	})
	env.do(t, client, http.MethodPost, "/api/instagram/cookies", map[string]interface{}{
		"accountId": int64(acct["id"].(float64)), "cookieValue": "sessionid=live",
	})

	// Missing parameter.
	resp, _ = env.do(t, client, http.MethodPost, "/api/automation/run", map[string]interface{}{"type": "like"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("automation missing param: status %d, want 400", resp.StatusCode)
	}

	// Successful run against the stub.
	resp, body = env.do(t, client, http.MethodPost, "/api/automation/run", map[string]interface{}{
		"type": "like", "postUrl": "https://www.instagram.com/p/ABC123/",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("automation run: status %d (%v)", resp.StatusCode, body)
	}
	if body["success"] != true {
		t.Errorf("outcome = %v", body)
	}

	// The run left exactly one activity log row, most recent first.
	resp, _ = env.do(t, client, http.MethodGet, "/api/activity-logs?limit=5", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("activity logs: status %d", resp.StatusCode)
	}
	logs, err := env.store.ListActivityLogs(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 1 || logs[0].Status != domain.StatusSuccess {
		t.Errorf("logs = %+v, want one success row", logs)
	}
}

func TestAdminRoutes(t *testing.T) {
	env := newTestEnv(t, nil)

	// Seed the admin and a regular user.
	if err := auth.EnsureAdminUser(context.Background(), env.store, "david", "david@@@", "admin@igboost.com"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	user := newSession(t)
	userID := env.register(t, user, "alice")

	// Regular users get 403.
	if resp, _ := env.do(t, user, http.MethodGet, "/api/admin/users", nil); resp.StatusCode != http.StatusForbidden {
		t.Errorf("admin list as user: status %d, want 403", resp.StatusCode)
	}

	admin := newSession(t)
	resp, _ := env.do(t, admin, http.MethodPost, "/api/login", map[string]string{
		"username": "david", "password": "david@@@",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin login: status %d", resp.StatusCode)
	}

	resp, _ = env.do(t, admin, http.MethodGet, "/api/admin/users", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin list: status %d", resp.StatusCode)
	}

	if resp, _ := env.do(t, admin, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", userID), nil); resp.StatusCode != http.StatusOK {
		t.Errorf("admin delete user: status %d", resp.StatusCode)
	}
	if resp, _ := env.do(t, admin, http.MethodDelete, "/api/admin/users/9999", nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("admin delete missing user: status %d, want 404", resp.StatusCode)
	}

	// Admin accounts cannot be deleted, not even by an admin.
	if resp, _ := env.do(t, admin, http.MethodDelete, "/api/admin/users/1", nil); resp.StatusCode != http.StatusForbidden {
		t.Errorf("admin delete admin: status %d, want 403", resp.StatusCode)
	}
}

func TestCreateAccountFetchesCookies(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/accounts/login/":
			http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "csrf-seed"})
		case "/accounts/login/ajax/":
			http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "fetched-session"})
			w.Write([]byte(`{"authenticated":true,"user":true,"status":"ok"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	client := newSession(t)
	env.register(t, client, "alice")

	// Username is derived from the email local part when omitted.
	resp, acct := env.do(t, client, http.MethodPost, "/api/instagram/accounts", map[string]string{
		"email": "ig_alice@example.com", "password": "pw",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create account: status %d (%v)", resp.StatusCode, acct)
	}
	if acct["username"] != "ig_alice" {
		t.Errorf("derived username = %v, want ig_alice", acct["username"])
	}

	resp, _ = env.do(t, client, http.MethodGet, "/api/instagram/cookies", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list cookies: status %d", resp.StatusCode)
	}
	cookies, err := env.store.CookiesForUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("cookies for user: %v", err)
	}
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1 fetched on account creation", len(cookies))
	}
	if !strings.Contains(cookies[0].Value, "sessionid=fetched-session") {
		t.Errorf("stored cookie = %q", cookies[0].Value)
	}
}
