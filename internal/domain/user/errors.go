package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrActorRequired           = errors.New("authenticated user is required")
	ErrCompanyIDRequired       = errors.New("company ID is required")
	ErrOwnerAccessRequired     = errors.New("owner access required")
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrEmployeeLinkRequired    = errors.New("user is not linked to an employee record")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
