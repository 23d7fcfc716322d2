// Package common defines shared constants and sentinel errors used across
// EduFolio components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Session guard errors (mutating or listing access without a valid
	// current session).
	ErrNotAuthenticated = errors.New("not authenticated")

	// Validation errors.
	ErrEmptyIdentity = errors.New("empty identity")
)
