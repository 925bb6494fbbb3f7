package errs

import "errors"

// Domain-specific sentinel errors shared by the usecase layers. The
// handler translates these into HTTP statuses; the core never formats
// user-facing text.
var (
	// Print request errors
	ErrRequestNotFound   = errors.New("print request not found")
	ErrInvalidTransition = errors.New("action is not legal for the current status")
	ErrForbidden         = errors.New("actor is not permitted to perform this action")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("concurrent modification conflict")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrDuplicateEmail     = errors.New("email already registered")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
