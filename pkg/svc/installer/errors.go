package installer

import "errors"

var errEmptyStep = errors.New("recipe step has no command")
