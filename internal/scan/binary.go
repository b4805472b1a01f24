package scan

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// ProbeSize is the number of leading bytes inspected by IsBinary.
const ProbeSize = 1024

// ErrProbeRead indicates a file could not be opened or read for probing.
var ErrProbeRead = errors.New("failed to read file")

// IsBinary reports whether the first ProbeSize bytes of the file at path
// fail to decode as UTF-8.
//
// The probe is a heuristic: binary data that happens to be valid UTF-8 is
// reported as text, and text in another encoding is reported as binary.
// A rune cut off by the probe boundary does not count as a decode failure.
// When the file cannot be read, IsBinary returns true together with an
// error wrapping ErrProbeRead.
func IsBinary(path string) (bool, error) {
	file, err := os.Open(path) // #nosec G304 -- path comes from walking the scan root
	if err != nil {
		return true, fmt.Errorf("%w: %v", ErrProbeRead, err)
	}
	defer func() { _ = file.Close() }()

	buf := make([]byte, ProbeSize)
	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return true, fmt.Errorf("%w: %v", ErrProbeRead, err)
	}

	return !validPrefix(buf[:n], n == ProbeSize), nil
}

// validPrefix validates data as UTF-8. When truncated is true, an incomplete
// rune at the very end is tolerated since the rest of it lies past the probe.
func validPrefix(data []byte, truncated bool) bool {
	if utf8.Valid(data) {
		return true
	}
	if !truncated {
		return false
	}

	// Walk back over at most UTFMax-1 trailing bytes to the last rune start.
	for i := 1; i < utf8.UTFMax && i <= len(data); i++ {
		b := data[len(data)-i]
		if !utf8.RuneStart(b) {
			continue
		}
		tail := data[len(data)-i:]
		if utf8.FullRune(tail) {
			return false
		}
		return utf8.Valid(data[:len(data)-i])
	}
	return false
}
