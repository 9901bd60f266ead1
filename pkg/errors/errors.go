package livepoll_errors

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrNotFound      = errors.New("not found")
	ErrPollClosed    = errors.New("poll closed")
	ErrInvalidOption = errors.New("invalid option")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("already exists")
	ErrCodeExhausted = errors.New("join code space exhausted")
	ErrRateLimited   = errors.New("rate limited")
)

// NowPtr returns a pointer to current time
func NowPtr() *time.Time {
	now := time.Now()
	return &now
}
