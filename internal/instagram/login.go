package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/EzekielClervo/instagram/internal/cookies"
)

// Login authenticates against Instagram's web login endpoint with a
// username (or email) and password, and returns the essential session
// cookie string on success.
//
// The flow mirrors the web client: fetch the login page to obtain a CSRF
// token, then post the credentials with the password wrapped in the browser
// enc_password envelope.
func (c *Client) Login(ctx context.Context, identifier, password string) (string, error) {
	csrf, seed, err := c.fetchCSRF(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch login page: %w", err)
	}

	encPassword := fmt.Sprintf("#PWD_INSTAGRAM_BROWSER:0:%d:%s", time.Now().Unix(), password)
	form := url.Values{
		"username":      {identifier},
		"enc_password":  {encPassword},
		"queryParams":   {"{}"},
		"optIntoOneTap": {"false"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/accounts/login/ajax/", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-IG-App-ID", igAppID)
	req.Header.Set("X-CSRFToken", csrf)
	req.Header.Set("Referer", DefaultBaseURL+"/accounts/login/")
	req.Header.Set("Origin", DefaultBaseURL)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Cookie", cookies.Format(seed))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Authenticated bool   `json:"authenticated"`
		User          bool   `json:"user"`
		Status        string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if !result.Authenticated {
		if result.User {
			return "", fmt.Errorf("login failed: wrong password")
		}
		return "", fmt.Errorf("login failed: %s", result.Status)
	}

	// Session cookies arrive on the login response; the CSRF seed cookies
	// from the first request stay valid alongside them.
	session := make(map[string]string, len(seed))
	for k, v := range seed {
		session[k] = v
	}
	for _, ck := range resp.Cookies() {
		if ck.Value != "" {
			session[ck.Name] = ck.Value
		}
	}
	if session["sessionid"] == "" {
		return "", fmt.Errorf("login response carried no session cookie")
	}
	return cookies.EssentialString(session), nil
}

// fetchCSRF loads the login page and returns the CSRF token plus every
// cookie the page set, keyed by name.
func (c *Client) fetchCSRF(ctx context.Context) (string, map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/accounts/login/", nil)
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	seed := make(map[string]string)
	for _, ck := range resp.Cookies() {
		if ck.Value != "" {
			seed[ck.Name] = ck.Value
		}
	}
	csrf := seed["csrftoken"]
	if csrf == "" {
		return "", nil, fmt.Errorf("login page set no csrftoken cookie")
	}
	return csrf, seed, nil
}
