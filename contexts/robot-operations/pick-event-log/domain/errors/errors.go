package errors

import "errors"

var (
	ErrInvalidPickRequest = errors.New("robot_id and item_id are required")
	ErrInvalidPickEvent   = errors.New("invalid pick event")
)
