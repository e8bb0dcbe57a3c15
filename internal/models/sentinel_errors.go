package models

import "errors"

var (
	ErrInvalidJSON       = errors.New("invalid json")
	ErrInvalidJokerCount = errors.New("invalid joker count")
	ErrCorruptState      = errors.New("corrupt deck state")
	ErrUnauthorized      = errors.New("unauthorized")
)
