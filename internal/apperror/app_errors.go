package apperror

import "errors"

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrRevisionConflict = errors.New("session was updated concurrently")
	ErrUnknownStore     = errors.New("unknown session store")
)
