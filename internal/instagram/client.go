// Package instagram is the client for Instagram's web API: the interaction
// variants the automation dispatcher runs, the session probe, and the
// credential login flow. Everything here authenticates with a raw session
// cookie string.
package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/EzekielClervo/instagram/internal/cookies"
)

const (
	// DefaultBaseURL is the production endpoint. Tests point the client at an
	// httptest server instead.
	DefaultBaseURL = "https://www.instagram.com"

	userAgent = "Mozilla/5.0"
	igAppID   = "936619743392459"
)

// Client performs Instagram web API calls.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client. An empty baseURL means production.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			// Instagram redirects unauthenticated sessions to the login
			// page; we want to see that, not follow it.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// apiHeaders is the header set Instagram's web client sends. The CSRF token
// comes out of the caller's own cookie string.
func apiHeaders(req *http.Request, cookieStr, referer string) {
	parsed := cookies.Parse(cookieStr)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-IG-App-ID", igAppID)
	req.Header.Set("X-CSRFToken", parsed["csrftoken"])
	req.Header.Set("Referer", referer)
	req.Header.Set("Origin", DefaultBaseURL)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Cookie", cookieStr)
}

func (c *Client) postForm(ctx context.Context, path, cookieStr, referer string, form url.Values) (*http.Response, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	apiHeaders(req, cookieStr, referer)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.httpClient.Do(req)
}

// IsLoggedIn probes whether a cookie string still carries a live session by
// requesting the account settings page without following redirects.
func (c *Client) IsLoggedIn(ctx context.Context, cookieStr string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/accounts/edit/", nil)
	if err != nil {
		return false
	}
	apiHeaders(req, cookieStr, c.baseURL+"/accounts/edit/")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// lookupProfile fetches the web profile info for a username. The response
// nests the profile under data.user.
func (c *Client) lookupProfile(ctx context.Context, username, cookieStr string) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v1/users/web_profile_info/?username="+url.QueryEscape(username), nil)
	if err != nil {
		return nil, err
	}
	apiHeaders(req, cookieStr, fmt.Sprintf("%s/%s/", DefaultBaseURL, username))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile lookup returned status %d", resp.StatusCode)
	}

	var payload struct {
		Data struct {
			User map[string]interface{} `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode profile response: %w", err)
	}
	if payload.Data.User == nil {
		return nil, fmt.Errorf("profile response has no user")
	}
	return payload.Data.User, nil
}

// resolveUserID turns a username into Instagram's numeric user id.
func (c *Client) resolveUserID(ctx context.Context, username, cookieStr string) (string, error) {
	user, err := c.lookupProfile(ctx, username, cookieStr)
	if err != nil {
		return "", err
	}
	id, ok := user["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("profile response has no user id")
	}
	return id, nil
}

// FollowUser follows a target account. Two steps: resolve the username to a
// numeric id, then create the friendship. A failed lookup short-circuits
// without attempting the mutating call.
func (c *Client) FollowUser(ctx context.Context, username, cookieStr string) Outcome {
	userID, err := c.resolveUserID(ctx, username, cookieStr)
	if err != nil {
		return failure("Failed to get profile info for %s", username)
	}

	resp, err := c.postForm(ctx, "/api/v1/friendships/create/"+userID+"/",
		cookieStr, fmt.Sprintf("%s/%s/", DefaultBaseURL, username), nil)
	if err != nil {
		return failure("Error following %s: %v", username, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failure("Failed to follow %s", username)
	}
	return success("Successfully followed %s", username)
}

// UnfollowUser removes a follow, with the same two-step shape as FollowUser.
func (c *Client) UnfollowUser(ctx context.Context, username, cookieStr string) Outcome {
	userID, err := c.resolveUserID(ctx, username, cookieStr)
	if err != nil {
		return failure("Failed to get profile info for %s", username)
	}

	resp, err := c.postForm(ctx, "/api/v1/friendships/destroy/"+userID+"/",
		cookieStr, fmt.Sprintf("%s/%s/", DefaultBaseURL, username), nil)
	if err != nil {
		return failure("Error unfollowing %s: %v", username, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failure("Failed to unfollow %s", username)
	}
	return success("Successfully unfollowed %s", username)
}

// LikePost likes the post behind a post URL.
func (c *Client) LikePost(ctx context.Context, postURL, cookieStr string) Outcome {
	mediaID, err := mediaIDFromPostURL(postURL)
	if err != nil {
		return failure("Invalid post URL format")
	}

	resp, err := c.postForm(ctx, "/web/likes/"+mediaID+"/like/", cookieStr, postURL, nil)
	if err != nil {
		return failure("Error liking post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failure("Failed to like post: %s", postURL)
	}
	return success("Successfully liked post: %s", postURL)
}

// UnlikePost removes a like.
func (c *Client) UnlikePost(ctx context.Context, postURL, cookieStr string) Outcome {
	mediaID, err := mediaIDFromPostURL(postURL)
	if err != nil {
		return failure("Invalid post URL format")
	}

	resp, err := c.postForm(ctx, "/web/likes/"+mediaID+"/unlike/", cookieStr, postURL, nil)
	if err != nil {
		return failure("Error unliking post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failure("Failed to unlike post: %s", postURL)
	}
	return success("Successfully unliked post: %s", postURL)
}

// CommentPost adds a comment to the post behind a post URL.
func (c *Client) CommentPost(ctx context.Context, postURL, commentText, cookieStr string) Outcome {
	mediaID, err := mediaIDFromPostURL(postURL)
	if err != nil {
		return failure("Invalid post URL format")
	}

	form := url.Values{"comment_text": {commentText}}
	resp, err := c.postForm(ctx, "/web/comments/"+mediaID+"/add/", cookieStr, postURL, form)
	if err != nil {
		return failure("Error commenting on post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failure("Failed to comment on post: %s", postURL)
	}
	return success("Successfully commented on post: %s", postURL)
}

// DeleteComment removes one of the session owner's comments by id.
func (c *Client) DeleteComment(ctx context.Context, postURL, commentID, cookieStr string) Outcome {
	form := url.Values{"comment_id": {commentID}}
	resp, err := c.postForm(ctx, "/web/comments/"+commentID+"/delete/", cookieStr, postURL, form)
	if err != nil {
		return failure("Error deleting comment: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failure("Failed to delete comment: %s", commentID)
	}
	return success("Successfully deleted comment: %s", commentID)
}

// ProfileInfo fetches a target account's public profile data.
func (c *Client) ProfileInfo(ctx context.Context, username, cookieStr string) Outcome {
	user, err := c.lookupProfile(ctx, username, cookieStr)
	if err != nil {
		return failure("Failed to retrieve profile info for %s", username)
	}

	out := success("Successfully retrieved profile info for %s", username)
	out.Data = user
	return out
}

// RemoveDuplicates is a placeholder: it performs no network calls and always
// reports success. The contract is kept as-is until real duplicate detection
// is designed.
func (c *Client) RemoveDuplicates(ctx context.Context, cookieStr string) Outcome {
	return success("Duplicate account check completed. No duplicates found.")
}
