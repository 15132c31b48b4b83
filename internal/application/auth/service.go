package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/blogger-api-nosql/internal/domain"
	"github.com/blogger-api-nosql/internal/notify"
	"github.com/blogger-api-nosql/internal/pkg/code"
	"github.com/blogger-api-nosql/internal/pkg/hash"
	"github.com/blogger-api-nosql/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldConfirmationCode = "confirmation_code"
	fieldRecoveryCode     = "recovery_code"
	fieldRecoveryExpires  = "recovery_expires_at"
)

// Service is the identity lifecycle: registration, email confirmation,
// password recovery and credential verification. NotFound and credential
// mismatches surface as wrapped domain sentinels, never as panics or
// boundary status codes.
type Service interface {
	VerifyCredentials(ctx context.Context, loginOrEmail, password string) (*domain.User, error)
	Register(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	ConfirmEmail(ctx context.Context, confirmationCode string) error
	CheckIsConfirmedEmail(ctx context.Context, confirmationCode string) (bool, error)
	RecoverPassword(ctx context.Context, email string) error
	NewPassword(ctx context.Context, newPassword, recoveryCode string) error
	ResendConfirmationEmail(ctx context.Context, email string) error
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByConfirmationCode(ctx context.Context, code string) (*domain.User, error)
	GetByRecoveryCode(ctx context.Context, code string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	ConfirmEmail(ctx context.Context, userID string) error
	SetPasswordAndConsumeRecovery(ctx context.Context, userID, recoveryCode, salt, hashed string) error
}

type mailQueue interface {
	Enqueue(job notify.Job) error
}

type service struct {
	repo            userStore
	mail            mailQueue
	recoveryCodeTTL time.Duration
}

type ServiceDeps struct {
	UserRepo        userStore
	Mail            mailQueue
	RecoveryCodeTTL time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:            deps.UserRepo,
		mail:            deps.Mail,
		recoveryCodeTTL: deps.RecoveryCodeTTL,
	}
}

func (s *service) VerifyCredentials(ctx context.Context, loginOrEmail, password string) (*domain.User, error) {
	u, err := s.repo.GetByLogin(ctx, loginOrEmail)
	if errors.Is(err, domain.ErrNotFound) {
		u, err = s.repo.GetByEmail(ctx, loginOrEmail)
	}
	if err != nil {
		return nil, err
	}
	if !hash.Compare(password, u.PasswordHash) {
		return nil, fmt.Errorf("password mismatch: %w", domain.ErrInvalidCredentials)
	}
	return u, nil
}

func (s *service) Register(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	if _, err := s.repo.GetByLogin(ctx, req.Login); err == nil {
		return nil, fmt.Errorf("login already taken: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	salt, hashed, err := hash.Generate(req.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:           id.New(),
		Login:            req.Login,
		Email:            req.Email,
		PasswordHash:     hashed,
		PasswordSalt:     salt,
		ConfirmationCode: code.New(),
		IsConfirmed:      false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Put(ctx, u); err != nil {
		return nil, err
	}

	// Delivery is fully decoupled: a full queue or a dead transport must
	// not fail the registration.
	if err := s.mail.Enqueue(notify.Job{
		Kind:  notify.KindRegistrationConfirmation,
		Email: u.Email,
		Code:  u.ConfirmationCode,
	}); err != nil {
		slog.Warn("confirmation mail not queued", "email", u.Email, "err", err)
	}
	return u, nil
}

func (s *service) ConfirmEmail(ctx context.Context, confirmationCode string) error {
	u, err := s.repo.GetByConfirmationCode(ctx, confirmationCode)
	if err != nil {
		return err
	}
	if u.IsConfirmed {
		return fmt.Errorf("email already confirmed: %w", domain.ErrNotFound)
	}
	// The conditional write resolves a confirm/confirm race: the second
	// caller gets ErrNotFound even if both read is_confirmed=false.
	return s.repo.ConfirmEmail(ctx, u.UserID)
}

func (s *service) CheckIsConfirmedEmail(ctx context.Context, confirmationCode string) (bool, error) {
	u, err := s.repo.GetByConfirmationCode(ctx, confirmationCode)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.IsConfirmed, nil
}

func (s *service) RecoverPassword(ctx context.Context, email string) error {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	recoveryCode := code.New()
	updates := map[string]interface{}{
		fieldRecoveryCode:    recoveryCode,
		fieldRecoveryExpires: time.Now().Add(s.recoveryCodeTTL).Unix(),
	}
	if err := s.repo.Update(ctx, u.UserID, updates); err != nil {
		return err
	}

	return s.mail.Enqueue(notify.Job{
		Kind:  notify.KindRecoveryPassword,
		Email: u.Email,
		Code:  recoveryCode,
	})
}

func (s *service) NewPassword(ctx context.Context, newPassword, recoveryCode string) error {
	u, err := s.repo.GetByRecoveryCode(ctx, recoveryCode)
	if err != nil {
		return err
	}
	if u.RecoveryExpires > 0 && u.RecoveryExpires < time.Now().Unix() {
		return fmt.Errorf("recovery code expired: %w", domain.ErrNotFound)
	}

	salt, hashed, err := hash.Generate(newPassword)
	if err != nil {
		return err
	}
	// One conditional write: sets the credentials and consumes the code.
	return s.repo.SetPasswordAndConsumeRecovery(ctx, u.UserID, recoveryCode, salt, hashed)
}

func (s *service) ResendConfirmationEmail(ctx context.Context, email string) error {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u.IsConfirmed {
		return fmt.Errorf("email already confirmed: %w", domain.ErrNotFound)
	}

	confirmationCode := code.New()
	if err := s.repo.Update(ctx, u.UserID, map[string]interface{}{
		fieldConfirmationCode: confirmationCode,
	}); err != nil {
		return err
	}

	return s.mail.Enqueue(notify.Job{
		Kind:  notify.KindRegistrationConfirmation,
		Email: u.Email,
		Code:  confirmationCode,
	})
}

func (s *service) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.Profile{UserID: u.UserID, Email: u.Email, Login: u.Login}, nil
}
