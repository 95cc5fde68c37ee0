package health

import "errors"

// ErrCheckTimeout is reported for a check still running when the timeout
// expires.
var ErrCheckTimeout = errors.New("health: check timeout")
