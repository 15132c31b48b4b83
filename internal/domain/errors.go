package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so callers can tell "not found" apart from a
// credential mismatch or a persistence failure without string matching.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBadRequest         = errors.New("bad request")
	ErrStorage            = errors.New("storage failure")
)
