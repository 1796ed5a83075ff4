package correction

import "fmt"

// MalformedResponseError reports model output that could not be parsed as
// JSON even after the trailing-comma repair pass. Err is the error from
// the original strict parse, not from the repair attempt.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("invalid JSON response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
