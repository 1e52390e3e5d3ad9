package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailExists           = errors.New("email already registered")
	ErrManagerAccessRequired = errors.New("manager access required")
	ErrOwnerAccessRequired   = errors.New("owner access required")
)
