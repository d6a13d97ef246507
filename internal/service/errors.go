package service

import "errors"

// Typed failures returned by the service layer. Handlers map these onto
// HTTP statuses; anything else is treated as an internal error.
var (
	// ErrNotFound means the entity id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAccessDenied means the entity exists but belongs to another user.
	// It is always checked before any mutation.
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidArgument covers bad amounts, empty required fields and
	// mismatched password confirmation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict means a unique value (username, email) is already taken.
	ErrConflict = errors.New("conflict")
	// ErrInvalidCredentials is returned on failed login without revealing
	// whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
