package automation

import (
	"context"
	"fmt"

	"github.com/EzekielClervo/instagram/internal/domain"
	"github.com/EzekielClervo/instagram/internal/instagram"
)

// Request carries the parameters of one automation run. Which fields are
// required depends on the action kind; count is accepted for wire
// compatibility but no action consumes it yet.
type Request struct {
	Type        string `json:"type"`
	Username    string `json:"username,omitempty"`
	PostURL     string `json:"postUrl,omitempty"`
	CommentText string `json:"commentText,omitempty"`
	CommentID   string `json:"commentId,omitempty"`
	Count       int    `json:"count,omitempty"`
}

// action binds one kind to its parameter contract, its audit log wording,
// and the client call that runs it.
type action struct {
	validate func(Request) error
	describe func(Request) string
	run      func(ctx context.Context, c *instagram.Client, req Request, cookieStr string) instagram.Outcome
}

func requireParam(value, name string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return nil
}

var actions = map[domain.ActionKind]action{
	domain.ActionFollow: {
		validate: func(r Request) error { return requireParam(r.Username, "username") },
		describe: func(r Request) string { return fmt.Sprintf("Followed @%s", r.Username) },
		run: func(ctx context.Context, c *instagram.Client, r Request, cookieStr string) instagram.Outcome {
			return c.FollowUser(ctx, r.Username, cookieStr)
		},
	},
	domain.ActionUnfollow: {
		validate: func(r Request) error { return requireParam(r.Username, "username") },
		describe: func(r Request) string { return fmt.Sprintf("Unfollowed @%s", r.Username) },
		run: func(ctx context.Context, c *instagram.Client, r Request, cookieStr string) instagram.Outcome {
			return c.UnfollowUser(ctx, r.Username, cookieStr)
		},
	},
	domain.ActionLike: {
		validate: func(r Request) error { return requireParam(r.PostURL, "postUrl") },
		describe: func(r Request) string { return fmt.Sprintf("Liked post: %s", r.PostURL) },
		run: func(ctx context.Context, c *instagram.Client, r Request, cookieStr string) instagram.Outcome {
			return c.LikePost(ctx, r.PostURL, cookieStr)
		},
	},
	domain.ActionUnlike: {
		validate: func(r Request) error { return requireParam(r.PostURL, "postUrl") },
		describe: func(r Request) string { return fmt.Sprintf("Unliked post: %s", r.PostURL) },
		run: func(ctx context.Context, c *instagram.Client, r Request, cookieStr string) instagram.Outcome {
			return c.UnlikePost(ctx, r.PostURL, cookieStr)
		},
	},
	domain.ActionComment: {
		validate: func(r Request) error {
			if err := requireParam(r.PostURL, "postUrl"); err != nil {
				return err
			}
			return requireParam(r.CommentText, "commentText")
		},
		describe: func(r Request) string { return fmt.Sprintf("Commented on post: %s", r.PostURL) },
		run: func(ctx context.Context, c *instagram.Client, r Request, cookieStr string) instagram.Outcome {
			return c.CommentPost(ctx, r.PostURL, r.CommentText, cookieStr)
		},
	},
	domain.ActionDeleteComment: {
		validate: func(r Request) error { return requireParam(r.CommentID, "commentId") },
		describe: func(r Request) string { return fmt.Sprintf("Deleted comment: %s", r.CommentID) },
		run: func(ctx context.Context, c *instagram.Client, r Request, cookieStr string) instagram.Outcome {
			return c.DeleteComment(ctx, r.PostURL, r.CommentID, cookieStr)
		},
	},
	domain.ActionProfileInfo: {
		validate: func(r Request) error { return requireParam(r.Username, "username") },
		describe: func(r Request) string { return fmt.Sprintf("Retrieved profile info for @%s", r.Username) },
		run: func(ctx context.Context, c *instagram.Client, r Request, cookieStr string) instagram.Outcome {
			return c.ProfileInfo(ctx, r.Username, cookieStr)
		},
	},
	domain.ActionDedupe: {
		validate: func(r Request) error { return nil },
		describe: func(r Request) string { return "Checked for duplicate accounts" },
		run: func(ctx context.Context, c *instagram.Client, r Request, cookieStr string) instagram.Outcome {
			return c.RemoveDuplicates(ctx, cookieStr)
		},
	},
}
