package domain

import "fmt"

// ActionKind identifies which Instagram interaction an automation request
// should run. The set is closed; ParseActionKind is the only way requests
// enter it.
type ActionKind string

const (
	ActionFollow        ActionKind = "follow"
	ActionUnfollow      ActionKind = "unfollow"
	ActionLike          ActionKind = "like"
	ActionUnlike        ActionKind = "unlike"
	ActionComment       ActionKind = "comment"
	ActionDeleteComment ActionKind = "delete_comment"
	ActionProfileInfo   ActionKind = "profile_info"
	ActionDedupe        ActionKind = "dedupe"
)

// Kinds lists every action kind, in a stable order.
func Kinds() []ActionKind {
	return []ActionKind{
		ActionFollow,
		ActionUnfollow,
		ActionLike,
		ActionUnlike,
		ActionComment,
		ActionDeleteComment,
		ActionProfileInfo,
		ActionDedupe,
	}
}

// ParseActionKind validates a wire tag. "duplicates" is accepted as a legacy
// alias for dedupe.
func ParseActionKind(s string) (ActionKind, error) {
	switch ActionKind(s) {
	case ActionFollow, ActionUnfollow, ActionLike, ActionUnlike,
		ActionComment, ActionDeleteComment, ActionProfileInfo, ActionDedupe:
		return ActionKind(s), nil
	}
	if s == "duplicates" {
		return ActionDedupe, nil
	}
	return "", fmt.Errorf("unknown automation type: %q", s)
}
