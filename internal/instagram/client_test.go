package instagram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testCookies = "csrftoken=tok123; sessionid=sess456; ds_user_id=789"

func TestIsLoggedIn(t *testing.T) {
	var gotCookie, gotCSRF string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		gotCSRF = r.Header.Get("X-CSRFToken")
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	if !c.IsLoggedIn(context.Background(), testCookies) {
		t.Error("expected logged-in for 200 response")
	}
	if gotCookie != testCookies {
		t.Errorf("cookie header = %q, want %q", gotCookie, testCookies)
	}
	if gotCSRF != "tok123" {
		t.Errorf("csrf header = %q, want tok123", gotCSRF)
	}
}

func TestIsLoggedInExpiredSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Instagram redirects dead sessions to the login page.
		http.Redirect(w, r, "/accounts/login/", http.StatusFound)
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	if c.IsLoggedIn(context.Background(), testCookies) {
		t.Error("expected logged-out for redirect response")
	}
}

func TestFollowUser(t *testing.T) {
	var followPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/v1/users/web_profile_info/"):
			if got := r.URL.Query().Get("username"); got != "targetuser" {
				t.Errorf("lookup username = %q, want targetuser", got)
			}
			w.Write([]byte(`{"data":{"user":{"id":"4242"}}}`))
		case strings.HasPrefix(r.URL.Path, "/api/v1/friendships/create/"):
			if r.Method != http.MethodPost {
				t.Errorf("friendship call method = %s, want POST", r.Method)
			}
			followPath = r.URL.Path
			w.Write([]byte(`{"status":"ok"}`))
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	out := NewClient(ts.URL).FollowUser(context.Background(), "targetuser", testCookies)
	if !out.Success {
		t.Fatalf("follow failed: %s", out.Message)
	}
	if out.Message != "Successfully followed targetuser" {
		t.Errorf("message = %q", out.Message)
	}
	if followPath != "/api/v1/friendships/create/4242/" {
		t.Errorf("friendship path = %q", followPath)
	}
}

func TestFollowUserLookupFailureShortCircuits(t *testing.T) {
	var friendshipCalled bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/v1/friendships/") {
			friendshipCalled = true
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	out := NewClient(ts.URL).FollowUser(context.Background(), "ghost", testCookies)
	if out.Success {
		t.Fatal("expected failure when lookup fails")
	}
	if out.Message != "Failed to get profile info for ghost" {
		t.Errorf("message = %q", out.Message)
	}
	if friendshipCalled {
		t.Error("friendship endpoint called after failed lookup")
	}
}

func TestUnfollowUser(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/v1/users/web_profile_info/"):
			w.Write([]byte(`{"data":{"user":{"id":"99"}}}`))
		case r.URL.Path == "/api/v1/friendships/destroy/99/":
			w.Write([]byte(`{"status":"ok"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	out := NewClient(ts.URL).UnfollowUser(context.Background(), "targetuser", testCookies)
	if !out.Success {
		t.Fatalf("unfollow failed: %s", out.Message)
	}
	if out.Message != "Successfully unfollowed targetuser" {
		t.Errorf("message = %q", out.Message)
	}
}

func TestLikePost(t *testing.T) {
	var likePath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		likePath = r.URL.Path
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer ts.Close()

	postURL := "https://www.instagram.com/p/ABC123/"
	out := NewClient(ts.URL).LikePost(context.Background(), postURL, testCookies)
	if !out.Success {
		t.Fatalf("like failed: %s", out.Message)
	}
	if out.Message != "Successfully liked post: "+postURL {
		t.Errorf("message = %q", out.Message)
	}
	if likePath != "/web/likes/17522103/like/" {
		t.Errorf("like path = %q", likePath)
	}
}

func TestLikePostInvalidURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an invalid post URL")
	}))
	defer ts.Close()

	out := NewClient(ts.URL).LikePost(context.Background(), "https://www.instagram.com/someuser/", testCookies)
	if out.Success {
		t.Fatal("expected failure")
	}
	if out.Message != "Invalid post URL format" {
		t.Errorf("message = %q", out.Message)
	}
}

func TestUnlikePost(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/unlike/") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer ts.Close()

	postURL := "https://www.instagram.com/p/ABC123/"
	out := NewClient(ts.URL).UnlikePost(context.Background(), postURL, testCookies)
	if !out.Success {
		t.Fatalf("unlike failed: %s", out.Message)
	}
	if out.Message != "Successfully unliked post: "+postURL {
		t.Errorf("message = %q", out.Message)
	}
}

func TestCommentPost(t *testing.T) {
	var gotText string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/web/comments/17522103/add/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotText = r.PostForm.Get("comment_text")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer ts.Close()

	postURL := "https://www.instagram.com/p/ABC123/"
	out := NewClient(ts.URL).CommentPost(context.Background(), postURL, "nice shot", testCookies)
	if !out.Success {
		t.Fatalf("comment failed: %s", out.Message)
	}
	if gotText != "nice shot" {
		t.Errorf("comment_text = %q, want %q", gotText, "nice shot")
	}
}

func TestDeleteComment(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/web/comments/555/delete/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer ts.Close()

	out := NewClient(ts.URL).DeleteComment(context.Background(),
		"https://www.instagram.com/p/ABC123/", "555", testCookies)
	if !out.Success {
		t.Fatalf("delete comment failed: %s", out.Message)
	}
	if out.Message != "Successfully deleted comment: 555" {
		t.Errorf("message = %q", out.Message)
	}
}

func TestProfileInfo(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"user":{"id":"7","username":"targetuser","follower_count":12}}}`))
	}))
	defer ts.Close()

	out := NewClient(ts.URL).ProfileInfo(context.Background(), "targetuser", testCookies)
	if !out.Success {
		t.Fatalf("profile info failed: %s", out.Message)
	}
	if out.Data["username"] != "targetuser" {
		t.Errorf("data username = %v", out.Data["username"])
	}
	if out.Data["id"] != "7" {
		t.Errorf("data id = %v", out.Data["id"])
	}
}

func TestRemoveDuplicates(t *testing.T) {
	out := NewClient("").RemoveDuplicates(context.Background(), testCookies)
	if !out.Success {
		t.Fatal("expected success")
	}
	if out.Message != "Duplicate account check completed. No duplicates found." {
		t.Errorf("message = %q", out.Message)
	}
}

func TestLogin(t *testing.T) {
	var gotEnc string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/accounts/login/":
			http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "csrf-seed"})
			http.SetCookie(w, &http.Cookie{Name: "mid", Value: "mid-seed"})
		case "/accounts/login/ajax/":
			if got := r.Header.Get("X-CSRFToken"); got != "csrf-seed" {
				t.Errorf("csrf header = %q, want csrf-seed", got)
			}
			if err := r.ParseForm(); err != nil {
				t.Fatalf("parse form: %v", err)
			}
			gotEnc = r.PostForm.Get("enc_password")
			http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "live-session"})
			http.SetCookie(w, &http.Cookie{Name: "ds_user_id", Value: "31337"})
			w.Write([]byte(`{"authenticated":true,"user":true,"status":"ok"}`))
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	cookieStr, err := NewClient(ts.URL).Login(context.Background(), "user@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !strings.HasPrefix(gotEnc, "#PWD_INSTAGRAM_BROWSER:0:") || !strings.HasSuffix(gotEnc, ":hunter2") {
		t.Errorf("enc_password = %q", gotEnc)
	}
	for _, want := range []string{"sessionid=live-session", "ds_user_id=31337", "csrftoken=csrf-seed", "mid=mid-seed"} {
		if !strings.Contains(cookieStr, want) {
			t.Errorf("cookie string %q missing %q", cookieStr, want)
		}
	}
}

func TestLoginWrongPassword(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/accounts/login/":
			http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "csrf-seed"})
		case "/accounts/login/ajax/":
			w.Write([]byte(`{"authenticated":false,"user":true,"status":"ok"}`))
		}
	}))
	defer ts.Close()

	if _, err := NewClient(ts.URL).Login(context.Background(), "user@example.com", "wrong"); err == nil {
		t.Fatal("expected error for unauthenticated login")
	}
}
