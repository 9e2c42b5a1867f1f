package shorten

import "errors"

var (
	// ErrInvalidURL the input does not look like a shortenable URL
	ErrInvalidURL = errors.New("invalid url")
)
