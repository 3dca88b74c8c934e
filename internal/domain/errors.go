package domain

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyMessage    = errors.New("message is empty")
	ErrSendInProgress  = errors.New("a message is already being sent")
	ErrChatFailed      = errors.New("chat request failed")
	ErrInvalidScope    = errors.New("invalid memory scope")
	ErrKeyNotFound     = errors.New("key not found")
	ErrEmptyQuery      = errors.New("search query is empty")
	ErrSessionRequired = errors.New("session id is required")
	ErrInvalidMeta     = errors.New("meta must be a JSON object")
)
