package reconcile

import "errors"

// Engine errors. Handlers map these onto HTTP statuses; none of them are
// retried automatically.
var (
	// ErrNotFound means the session, item or scan id does not exist
	ErrNotFound = errors.New("not found")

	// ErrSessionFinalized means the session already reached a terminal
	// status; completion, scans and deletion are all rejected with it
	ErrSessionFinalized = errors.New("session already finalized")

	// ErrNothingToShip means a shipping commit found zero items with a
	// non-zero scanned quantity; surfaced before any mutation is attempted
	ErrNothingToShip = errors.New("no items with scanned quantity to ship")
)
