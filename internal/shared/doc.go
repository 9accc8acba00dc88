// Package shared holds helpers used across packages.
//
// The testutil subpackage provides log capture for slog and fixture
// writers for tab-separated input files. It must only be imported from
// _test.go files.
package shared
