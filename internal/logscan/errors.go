package logscan

import "errors"

// ErrFormat is returned when a line has the shape of a transaction record
// but its timestamp or identifier cannot be parsed.
var ErrFormat = errors.New("invalid log format")
