package session

// UserError is an action failure caused by the request itself: a violated
// precondition, a cooldown, an unknown id. These are not system failures;
// the transport maps them to a client-visible message, never a crash.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError creates a user-facing action error.
func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}
