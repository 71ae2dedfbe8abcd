package logging

import "errors"

// ErrInvalidLogLevel reports a level string New does not recognize. No
// function in this package returns it: New falls back to info instead.
var ErrInvalidLogLevel = errors.New("invalid log level")
