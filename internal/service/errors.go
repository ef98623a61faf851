package service

import "errors"

// Event handling errors, reported synchronously to the originating session.
// The texts double as the user-facing error messages.
var (
	ErrNotJoined      = errors.New("user not authenticated")
	ErrNotAdmin       = errors.New("admin privileges required")
	ErrEmptyMessage   = errors.New("message cannot be empty")
	ErrNoTeam         = errors.New("invalid channel or no team assigned")
	ErrInvalidChannel = errors.New("invalid channel type")
	ErrBlocked        = errors.New("you have been blocked from sending messages")
	ErrMuted          = errors.New("you have been muted and cannot send messages")
	ErrFlagContent    = errors.New("flag sharing is not allowed in global chat")
	ErrNotFound       = errors.New("not found")
)
