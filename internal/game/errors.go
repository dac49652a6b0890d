package game

import "errors"

var (
	ErrShoeExhausted     = errors.New("shoe exhausted")
	ErrInvalidAction     = errors.New("invalid action")
	ErrInvalidCountEntry = errors.New("invalid count entry")
	ErrNoRound           = errors.New("no round in progress")
)
