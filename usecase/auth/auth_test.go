package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/domain"
	pkgauth "github.com/taskdeck/taskdeck/pkg/auth"
)

// In-memory stand-ins for the postgres/redis repositories.

type fakeUserRepo struct {
	users map[string]*domain.User // keyed by lowercase email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	key := strings.ToLower(user.Email)
	if _, ok := r.users[key]; ok {
		return domain.ErrUserExists
	}
	if user.ID == "" {
		user.ID = "user-" + key
	}
	stored := *user
	r.users[key] = &stored
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, email, hash string) error {
	user, ok := r.users[strings.ToLower(email)]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = hash
	return nil
}

type fakeOTPRepo struct {
	codes map[string]string
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{codes: make(map[string]string)}
}

func (r *fakeOTPRepo) Save(_ context.Context, email, code string) error {
	r.codes[email] = code
	return nil
}

func (r *fakeOTPRepo) Get(_ context.Context, email string) (string, error) {
	code, ok := r.codes[email]
	if !ok {
		return "", domain.ErrInvalidOTP
	}
	return code, nil
}

func (r *fakeOTPRepo) Delete(_ context.Context, email string) error {
	delete(r.codes, email)
	return nil
}

type fakeMailer struct {
	sent    []string // recipient addresses
	lastOTP string
	fail    error
}

func (m *fakeMailer) SendOTP(_ context.Context, to, code string) error {
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, to)
	m.lastOTP = code
	return nil
}

func newTestUseCase(t *testing.T) (*UseCase, *fakeUserRepo, *fakeOTPRepo, *fakeMailer) {
	t.Helper()
	users := newFakeUserRepo()
	otps := newFakeOTPRepo()
	mailer := &fakeMailer{}
	uc := New(
		users,
		otps,
		pkgauth.NewPasswordManager(),
		pkgauth.NewTokenManager("test-secret", "taskdeck", time.Hour),
		mailer,
		nil,
	)
	return uc, users, otps, mailer
}

func TestSignup(t *testing.T) {
	uc, users, _, _ := newTestUseCase(t)
	ctx := context.Background()

	user, err := uc.Signup(ctx, "Alice", "A@X.com", "password")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email, "email stored lowercased")
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "password", users.users["a@x.com"].PasswordHash)
}

func TestSignupDuplicateEmail(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.Signup(ctx, "Alice", "a@x.com", "password")
	require.NoError(t, err)

	_, err = uc.Signup(ctx, "Alice Again", "a@x.com", "password")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUserExists)
	assert.Equal(t, "User already exists", err.Error())
}

func TestSignupValidation(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{name: "missing name", email: "a@x.com", password: "password"},
		{name: "missing email", userName: "Alice", password: "password"},
		{name: "missing password", userName: "Alice", email: "a@x.com"},
		{name: "malformed email", userName: "Alice", email: "not-an-email", password: "password"},
		{name: "short password", userName: "Alice", email: "a@x.com", password: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Signup(ctx, tt.userName, tt.email, tt.password)
			require.Error(t, err)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
		})
	}
}

func TestLogin(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)
	ctx := context.Background()

	created, err := uc.Signup(ctx, "Alice", "a@x.com", "password")
	require.NoError(t, err)

	token, user, err := uc.Login(ctx, "a@x.com", "password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, created.ID, user.ID)
}

func TestLoginEmailCaseInsensitive(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.Signup(ctx, "Alice", "a@x.com", "password")
	require.NoError(t, err)

	token, _, err := uc.Login(ctx, "  A@X.COM  ", "password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginWrongPassword(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.Signup(ctx, "Alice", "a@x.com", "password")
	require.NoError(t, err)

	token, _, err := uc.Login(ctx, "a@x.com", "wrong-password")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
	assert.Empty(t, token, "no token is issued on a failed login")
}

func TestLoginUnknownUser(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)

	_, _, err := uc.Login(context.Background(), "nobody@x.com", "password")
	require.Error(t, err)
	assert.Equal(t, "User not found", err.Error())
	// The login endpoint reports this as a validation failure, not a 404.
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestLoginPasswordlessAccount(t *testing.T) {
	uc, users, _, _ := newTestUseCase(t)
	ctx := context.Background()

	// Externally-authenticated accounts carry no credential.
	require.NoError(t, users.Create(ctx, &domain.User{Name: "Ext", Email: "ext@x.com"}))

	_, _, err := uc.Login(ctx, "ext@x.com", "password")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestForgotPassword(t *testing.T) {
	uc, _, otps, mailer := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.Signup(ctx, "Alice", "a@x.com", "password")
	require.NoError(t, err)

	require.NoError(t, uc.ForgotPassword(ctx, "A@x.com"))

	code, err := otps.Get(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.Equal(t, []string{"a@x.com"}, mailer.sent)
	assert.Equal(t, code, mailer.lastOTP)
}

func TestForgotPasswordUnknownUser(t *testing.T) {
	uc, _, _, mailer := newTestUseCase(t)

	err := uc.ForgotPassword(context.Background(), "nobody@x.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Empty(t, mailer.sent)
}

func TestForgotPasswordSucceedsWhenDeliveryFails(t *testing.T) {
	uc, _, otps, mailer := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.Signup(ctx, "Alice", "a@x.com", "password")
	require.NoError(t, err)

	mailer.fail = errors.New("smtp unreachable")
	require.NoError(t, uc.ForgotPassword(ctx, "a@x.com"), "stored code outlives a failed delivery")

	_, err = otps.Get(ctx, "a@x.com")
	assert.NoError(t, err)
}

func TestResetPassword(t *testing.T) {
	uc, users, otps, mailer := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.Signup(ctx, "Alice", "a@x.com", "password")
	require.NoError(t, err)
	oldHash := users.users["a@x.com"].PasswordHash

	require.NoError(t, uc.ForgotPassword(ctx, "a@x.com"))
	require.NoError(t, uc.ResetPassword(ctx, "a@x.com", mailer.lastOTP, "new-password"))

	assert.NotEqual(t, oldHash, users.users["a@x.com"].PasswordHash)

	_, err = otps.Get(ctx, "a@x.com")
	assert.Error(t, err, "code is consumed on success")

	_, _, err = uc.Login(ctx, "a@x.com", "new-password")
	assert.NoError(t, err)
}

func TestResetPasswordWrongCode(t *testing.T) {
	uc, users, otps, _ := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.Signup(ctx, "Alice", "a@x.com", "password")
	require.NoError(t, err)
	oldHash := users.users["a@x.com"].PasswordHash

	require.NoError(t, uc.ForgotPassword(ctx, "a@x.com"))

	err = uc.ResetPassword(ctx, "a@x.com", "000000", "new-password")
	require.Error(t, err)
	assert.Equal(t, "Invalid or expired OTP", err.Error())
	assert.Equal(t, oldHash, users.users["a@x.com"].PasswordHash, "stored password unchanged")

	_, err = otps.Get(ctx, "a@x.com")
	assert.NoError(t, err, "code survives a failed redemption")
}

func TestResetPasswordNoCodeIssued(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)

	err := uc.ResetPassword(context.Background(), "a@x.com", "123456", "new-password")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidOTP)
}
