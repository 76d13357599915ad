package errors

import "fmt"

// InternalError marks a violated precondition inside the compiler. It is
// thrown with panic, never returned, so callers cannot confuse it with a
// diagnostic about user input. Reaching one is a bug in the caller.
type InternalError struct {
	Reason string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Reason
}

// Internalf panics with an InternalError built from the given format.
func Internalf(format string, args ...interface{}) {
	panic(&InternalError{Reason: fmt.Sprintf(format, args...)})
}
