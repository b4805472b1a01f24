package scan

import (
	"go.uber.org/zap"
)

// SkipReason explains why a discovered file was left out.
type SkipReason string

// Skip reasons reported by Scanner.
const (
	SkipExcluded   SkipReason = "excluded"
	SkipBinary     SkipReason = "binary"
	SkipUnreadable SkipReason = "unreadable"
)

// Skipped is a discovered file that did not pass the scan.
type Skipped struct {
	File   File
	Reason SkipReason
	Err    error // set for SkipUnreadable
}

// Result is the outcome of a scan, in discovery order.
type Result struct {
	Included []File
	Skipped  []Skipped
}

// Scanner walks a root and applies the exclusion filter and binary probe to
// every discovered file.
type Scanner struct {
	filter *Filter
	logger *zap.Logger
}

// NewScanner creates a Scanner over the root the filter was built for.
func NewScanner(filter *Filter, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{filter: filter, logger: logger}
}

// Scan lists the files under the filter root and classifies each of them.
// Per-file problems never abort the scan; only an unreadable root does.
func (s *Scanner) Scan() (*Result, error) {
	files, err := Walk(s.filter.Root(), s.logger)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for _, f := range files {
		if s.filter.ExcludedFile(f) {
			s.logger.Debug("excluded by pattern", zap.String("path", f.RelPath))
			res.Skipped = append(res.Skipped, Skipped{File: f, Reason: SkipExcluded})
			continue
		}

		binary, err := IsBinary(f.Path)
		if err != nil {
			s.logger.Error("file read error", zap.String("path", f.Path), zap.Error(err))
			res.Skipped = append(res.Skipped, Skipped{File: f, Reason: SkipUnreadable, Err: err})
			continue
		}
		if binary {
			s.logger.Info("skipping probable binary file", zap.String("path", f.Path))
			res.Skipped = append(res.Skipped, Skipped{File: f, Reason: SkipBinary})
			continue
		}

		res.Included = append(res.Included, f)
	}

	s.logger.Debug("scan complete",
		zap.Int("discovered", len(files)),
		zap.Int("included", len(res.Included)),
		zap.Int("skipped", len(res.Skipped)))
	return res, nil
}
