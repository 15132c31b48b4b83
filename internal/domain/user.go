package domain

import "time"

type User struct {
	UserID           string `json:"id" dynamodbav:"user_id"`
	Login            string `json:"login" dynamodbav:"login"`
	Email            string `json:"email" dynamodbav:"email"`
	PasswordHash     string `json:"-" dynamodbav:"password_hash"`
	PasswordSalt     string `json:"-" dynamodbav:"password_salt"`
	ConfirmationCode string `json:"-" dynamodbav:"confirmation_code"`
	IsConfirmed      bool   `json:"isConfirmed" dynamodbav:"is_confirmed"`
	// recovery_code backs a GSI key, so the attribute must be absent
	// (not empty) while no recovery is pending.
	RecoveryCode    string    `json:"-" dynamodbav:"recovery_code,omitempty"`
	RecoveryExpires int64     `json:"-" dynamodbav:"recovery_expires_at,omitempty"` // Unix seconds, 0 = no pending recovery
	CreatedAt       time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

type CreateUserRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// Profile is the caller-facing slice of an identity.
type Profile struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Login  string `json:"login"`
}
