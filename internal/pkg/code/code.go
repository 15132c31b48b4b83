package code

import "github.com/google/uuid"

// New generates a confirmation or recovery code. UUIDv4 gives 122 bits
// of randomness, enough to make code guessing infeasible.
func New() string {
	return uuid.NewString()
}
