package readiness

import "errors"

// ErrAttemptsExhausted is returned when a poll used its whole attempt budget
// without the condition becoming true.
var ErrAttemptsExhausted = errors.New("polling attempts exhausted")
