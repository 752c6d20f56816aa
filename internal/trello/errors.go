package trello

import "github.com/pkg/errors"

// Sentinel errors for the failure modes callers branch on. None of
// them are retried; the user re-runs the command after fixing the
// cause.
var (
	// ErrNotFound means the API reported that an identifier does not
	// resolve to a card or board.
	ErrNotFound = errors.New("not found")

	// ErrAuthRejected means Trello rejected the key/token pair. The
	// wrapped message carries the authorization URL so the user can
	// mint a fresh token.
	ErrAuthRejected = errors.New("authentication rejected")

	// ErrUnreachable is a transport-level failure before any HTTP
	// status was received.
	ErrUnreachable = errors.New("unable to reach Trello")

	// ErrListNotFound means a list reference matched nothing on the
	// board.
	ErrListNotFound = errors.New("list not found")
)
