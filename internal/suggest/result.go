package suggest

import (
	"errors"
	"fmt"
	"strings"
)

// ServerErrorText is shown in the output region for every failure.
const ServerErrorText = "server error"

// ErrRequestFailed covers every transport, status and decode failure.
var ErrRequestFailed = errors.New("request failed")

// Result is either a list of suggestions or a failure.
type Result struct {
	Suggestions []string
	Err         error
}

// Success wraps suggestions in a Result.
func Success(suggestions []string) Result {
	return Result{Suggestions: suggestions}
}

// Failure wraps cause so that it matches ErrRequestFailed.
func Failure(cause error) Result {
	switch {
	case cause == nil:
		return Result{Err: ErrRequestFailed}
	case errors.Is(cause, ErrRequestFailed):
		return Result{Err: cause}
	}
	return Result{Err: fmt.Errorf("%w: %w", ErrRequestFailed, cause)}
}

// OK reports whether the result holds suggestions.
func (r Result) OK() bool {
	return r.Err == nil
}

// Render returns the text the output region should show for r.
func Render(r Result) string {
	if !r.OK() {
		return ServerErrorText
	}
	return strings.Join(r.Suggestions, " ")
}
