package automation

import "errors"

// Request rejections. These fire before any activity log row is written, so
// a rejected request leaves no trace in the audit log. The HTTP layer maps
// them to 400 responses; anything else out of Dispatch is a storage fault.
var (
	ErrUnknownAction = errors.New("unknown automation type")
	ErrMissingParam  = errors.New("missing required parameter")
	ErrNoCookies     = errors.New("No cookies available. Please add an account first.")
)

// IsClientError reports whether err is a request rejection rather than an
// internal fault.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnknownAction) ||
		errors.Is(err, ErrMissingParam) ||
		errors.Is(err, ErrNoCookies)
}
