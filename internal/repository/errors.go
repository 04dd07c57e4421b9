// Package repository persists export audit entries.  Only metadata about a
// generated chart is stored; names and seat assignments never reach the
// database.
package repository

import "errors"

// ErrExportNotFound is returned when an export id has no audit entry.
// Handlers should translate this into an HTTP 404 response.
var ErrExportNotFound = errors.New("export not found")
