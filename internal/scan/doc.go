// Package scan turns a result root into benchmark records.
//
// A result root holds one directory per benchmark, named
//
//	<marker>_<measurement_type>_<implementation>_<category>
//
// with the estimates document at a fixed relative path inside it. Entries
// that do not start with "<marker>_" are ignored. Every other entry must
// follow the grammar above and hold a valid result document.
//
// # Modes
//
//   - ModeFailFast: the first problem aborts the scan (default for render)
//   - ModeLenient: problems become warnings and the entry is skipped
//   - ModeCollectAll: every problem is returned as an error (validate)
//
// # Error Codes
//
//   - E201: directory name does not follow the grammar
//   - E202: entry is not a directory, or the root is not a directory
//   - E401: two directories map to the same (type, implementation, category)
//   - E3xx: result document problems, see package schema
package scan
