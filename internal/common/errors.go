// Package common defines sentinel errors and small utilities shared across
// layers. Callers match the sentinels with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Session-level errors.
	ErrNoSession = errors.New("no active session")
)
