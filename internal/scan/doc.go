// Package scan enumerates the files of a project tree and decides which of
// them belong in the generated document.
//
// Three pieces cooperate:
//
//   - Walk lists every regular file under a root in lexical order.
//   - Filter excludes files by shell-style wildcard patterns, matched one
//     path segment at a time against directory names and the file name.
//   - IsBinary probes the first bytes of a file and reports whether they
//     fail to decode as UTF-8.
//
// Scanner runs the three in sequence and reports both the included files
// and the skipped ones with a reason.
package scan
