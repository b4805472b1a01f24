// Package process tears down browser process trees left behind by the
// PDF exporter.
package process

import "errors"

// ErrInvalidPID is returned for non-positive process IDs, which would
// otherwise address the caller's own process group.
var ErrInvalidPID = errors.New("invalid process id")
