package util

import "errors"

var (
	ErrLabNotFound        = errors.New("lab not found")
	ErrLabLocked          = errors.New("this lab is currently locked")
	ErrStudentNotFound    = errors.New("student not found")
	ErrStudentExists      = errors.New("student already exists")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrNotOwner           = errors.New("you can only view your own submissions")
	ErrStaffOnly          = errors.New("access denied - staff only")
	ErrInvalidStatus      = errors.New(`invalid status, must be "approved", "rejected", or "pending"`)

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserNotConfirmed   = errors.New("account not confirmed")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrEmailDomain        = errors.New("email domain is not allowed")
	ErrInvalidCode        = errors.New("invalid or expired confirmation code")
	ErrAlreadyConfirmed   = errors.New("account already confirmed")
	ErrInvalidRefresh     = errors.New("invalid or expired refresh token")
)
