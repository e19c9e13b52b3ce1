package lifecycle

import "errors"

// ErrMissingPassword is returned when the admin secret exists but carries no password.
var ErrMissingPassword = errors.New("admin secret has no password key")
