// Package common defines shared constants and sentinel errors used across
// client and server layers of goldmanager. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")

	// ErrorUnauthorized is the single outward-facing failure for both rejected
	// credentials and rejected tokens. It never says which check failed.
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrorValidation marks malformed caller input (blank username and so on).
	// Unlike ErrorUnauthorized its wrapped message may be shown to the caller.
	ErrorValidation = errors.New("validation error")
)
