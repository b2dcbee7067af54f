// Package shared holds code reused across packages without belonging to any
// of them. Its testutil subpackage provides a buffered slog handler with log
// assertions and the reference imputation fixtures.
package shared
