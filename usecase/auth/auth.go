// Package auth orchestrates signup, login and the password-recovery flow.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"math/big"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/taskdeck/taskdeck/domain"
	pkgauth "github.com/taskdeck/taskdeck/pkg/auth"
	"github.com/taskdeck/taskdeck/pkg/mail"
	"github.com/taskdeck/taskdeck/repository"
)

type UseCase struct {
	users     repository.UserRepository
	otps      repository.OTPRepository
	passwords *pkgauth.PasswordManager
	tokens    *pkgauth.TokenManager
	mailer    mail.Mailer
	logger    *zap.Logger
}

func New(
	users repository.UserRepository,
	otps repository.OTPRepository,
	passwords *pkgauth.PasswordManager,
	tokens *pkgauth.TokenManager,
	mailer mail.Mailer,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:     users,
		otps:      otps,
		passwords: passwords,
		tokens:    tokens,
		mailer:    mailer,
		logger:    logger,
	}
}

// Signup registers a new account. It does not log the user in.
func (uc *UseCase) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "name, email and password are required")
	}
	if err := pkgauth.ValidateEmail(email); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid email", err)
	}

	if _, err := uc.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := uc.passwords.HashPassword(password)
	if err != nil {
		if errors.Is(err, pkgauth.ErrWeakPassword) {
			return nil, domain.WrapError(domain.ErrCodeInvalid, "weak password", err)
		}
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and issues a bearer token.
//
// An unknown email reports "User not found" as a validation error rather
// than a not-found: the login form treats both outcomes as a 400.
func (uc *UseCase) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.NewError(domain.ErrCodeInvalid, "User not found")
		}
		return "", nil, err
	}

	if err := uc.passwords.ComparePassword(user.PasswordHash, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.Generate(user.ID)
	if err != nil {
		return "", nil, err
	}

	uc.logger.Info("user logged in", zap.String("user_id", user.ID))
	return token, user, nil
}

// ForgotPassword issues a one-time reset code and emails it. Once the code
// is stored the request succeeds even when delivery fails: the attempt is
// recorded in the delivery log and the user can retry.
func (uc *UseCase) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	if err := uc.otps.Save(ctx, user.Email, code); err != nil {
		return err
	}

	if err := uc.mailer.SendOTP(ctx, user.Email, code); err != nil {
		uc.logger.Error("otp email delivery failed", zap.String("email", user.Email), zap.Error(err))
	}
	return nil
}

// ResetPassword redeems a one-time code and replaces the stored credential.
// The code is consumed on success only.
func (uc *UseCase) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)

	stored, err := uc.otps.Get(ctx, email)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return domain.ErrInvalidOTP
	}

	hash, err := uc.passwords.HashPassword(newPassword)
	if err != nil {
		if errors.Is(err, pkgauth.ErrWeakPassword) {
			return domain.WrapError(domain.ErrCodeInvalid, "weak password", err)
		}
		return err
	}

	if err := uc.users.UpdatePassword(ctx, email, hash); err != nil {
		return err
	}
	if err := uc.otps.Delete(ctx, email); err != nil {
		uc.logger.Warn("failed to delete redeemed otp", zap.String("email", email), zap.Error(err))
	}

	uc.logger.Info("password reset", zap.String("email", email))
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
