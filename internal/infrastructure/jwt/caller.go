package jwtinfra

import (
	"fmt"

	"github.com/blogger-api-nosql/internal/domain"
)

// Verifier is the token check needed to resolve a caller.
type Verifier interface {
	Verify(tokenStr string) (*Claims, error)
}

// ResolveCaller applies the read-path policy: a missing, invalid or
// expired bearer token yields the anonymous caller, never an error.
func ResolveCaller(v Verifier, bearer string) domain.Caller {
	if bearer == "" {
		return domain.Anonymous
	}
	claims, err := v.Verify(bearer)
	if err != nil {
		return domain.Anonymous
	}
	return domain.AuthenticatedCaller(claims.UserID)
}

// RequireCaller applies the write-path policy: the bearer token must
// verify, there is no anonymous fallback.
func RequireCaller(v Verifier, bearer string) (domain.Caller, error) {
	if bearer == "" {
		return domain.Anonymous, fmt.Errorf("missing bearer token: %w", ErrTokenInvalid)
	}
	claims, err := v.Verify(bearer)
	if err != nil {
		return domain.Anonymous, err
	}
	return domain.AuthenticatedCaller(claims.UserID), nil
}
