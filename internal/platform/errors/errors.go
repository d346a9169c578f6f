package apperrors

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrInvalidDateKey = errors.New("invalid date key")
	ErrInvalidTime    = errors.New("invalid time of day")
	ErrNotOpened      = errors.New("planner state is not opened")
)
