// Package yamlutil decodes configuration documents with a YAML 1.2 parser.
// JSON is a subset of YAML 1.2, so the same entry point reads config.json
// and config.yaml files. Callers never import the parser directly.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// MaxInputSize bounds how much of a config source is read.
var MaxInputSize int64 = 1 << 20

var (
	ErrEmpty         = errors.New("yamlutil: empty document")
	ErrNoDestination = errors.New("yamlutil: nil destination")
	ErrInputTooLarge = errors.New("yamlutil: input exceeds maximum size")
	ErrNotMapping    = errors.New("yamlutil: document is not a mapping")
)

// Decode reads one mapping document from r into v. Keys without a matching
// field are ignored so older and newer config files stay readable; a
// top-level scalar or sequence fails with ErrNotMapping.
func Decode(r io.Reader, v any) error {
	if v == nil {
		return ErrNoDestination
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxInputSize+1))
	if err != nil {
		return fmt.Errorf("yamlutil: reading: %w", err)
	}
	if int64(len(data)) > MaxInputSize {
		return fmt.Errorf("%w: limit is %d bytes", ErrInputTooLarge, MaxInputSize)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmpty
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	if _, isMap := doc.(map[string]any); !isMap {
		return fmt.Errorf("%w: got %T", ErrNotMapping, doc)
	}

	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
