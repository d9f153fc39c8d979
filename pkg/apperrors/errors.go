// Package apperrors defines the sentinel errors shared across packages.
package apperrors

import "errors"

var (
	ErrNoTemplate       = errors.New("intent has no query template")
	ErrSuspiciousFilter = errors.New("filter value failed injection screening")
)
