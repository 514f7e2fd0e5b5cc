package repository

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameTaken  = errors.New("username already exists")
	ErrTopicNotFound  = errors.New("topic not found")
	ErrContentInvalid = errors.New("content document is invalid")
)
