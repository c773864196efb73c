package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/taskdeck/taskdeck/api/transport"
	"github.com/taskdeck/taskdeck/domain"
	pkgauth "github.com/taskdeck/taskdeck/pkg/auth"
	authUC "github.com/taskdeck/taskdeck/usecase/auth"
	taskUC "github.com/taskdeck/taskdeck/usecase/task"
)

type memUserRepo struct {
	users map[string]*domain.User
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	key := strings.ToLower(user.Email)
	if _, ok := r.users[key]; ok {
		return domain.ErrUserExists
	}
	user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	r.users[key] = user
	return nil
}

func (r *memUserRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	user, ok := r.users[strings.ToLower(email)]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

type memOTPRepo struct {
	codes map[string]string
}

func (r *memOTPRepo) Save(ctx context.Context, email, code string) error {
	r.codes[strings.ToLower(email)] = code
	return nil
}

func (r *memOTPRepo) Get(ctx context.Context, email string) (string, error) {
	code, ok := r.codes[strings.ToLower(email)]
	if !ok {
		return "", domain.ErrInvalidOTP
	}
	return code, nil
}

func (r *memOTPRepo) Delete(ctx context.Context, email string) error {
	delete(r.codes, strings.ToLower(email))
	return nil
}

type memTaskRepo struct {
	tasks  map[string]*domain.Task
	nextID int
}

func (r *memTaskRepo) List(ctx context.Context, userID string) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range r.tasks {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memTaskRepo) GetByID(ctx context.Context, userID, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *memTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	r.nextID++
	task.ID = fmt.Sprintf("task-%d", r.nextID)
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	r.tasks[task.ID] = task
	copied := *task
	return &copied, nil
}

func (r *memTaskRepo) Update(ctx context.Context, task *domain.Task) error {
	existing, ok := r.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return domain.ErrTaskNotFound
	}
	task.UpdatedAt = time.Now()
	r.tasks[task.ID] = task
	return nil
}

func (r *memTaskRepo) Delete(ctx context.Context, userID, id string) error {
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

type silentMailer struct{}

func (silentMailer) SendOTP(ctx context.Context, to, code string) error { return nil }

type fixture struct {
	auth *AuthHandler
	task *TaskHandler
	otps *memOTPRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := &memUserRepo{users: map[string]*domain.User{}}
	otps := &memOTPRepo{codes: map[string]string{}}
	tasks := &memTaskRepo{tasks: map[string]*domain.Task{}}

	passwords := pkgauth.NewPasswordManager()
	tokens := pkgauth.NewTokenManager("test-secret", "test", time.Hour)

	authUseCase := authUC.New(users, otps, passwords, tokens, silentMailer{}, nil)
	taskUseCase := taskUC.New(tasks, nil)

	return &fixture{
		auth: NewAuthHandler(authUseCase, nil, nil),
		task: NewTaskHandler(taskUseCase, nil, nil),
		otps: otps,
	}
}

func post(body interface{}) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	if body != nil {
		payload, _ := json.Marshal(body)
		ctx.Request.SetBody(payload)
	}
	return ctx
}

func decode(t *testing.T, ctx *fasthttp.RequestCtx, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), out))
}

func (f *fixture) signup(t *testing.T, name, email, password string) {
	t.Helper()
	ctx := post(transport.SignupRequest{Name: name, Email: email, Password: password})
	f.auth.Signup(ctx)
	require.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode(), string(ctx.Response.Body()))
}

func TestSignupCreatesAccount(t *testing.T) {
	f := newFixture(t)

	ctx := post(transport.SignupRequest{Name: "Ada", Email: "Ada@Example.com", Password: "secret1"})
	f.auth.Signup(ctx)

	require.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())
	var resp transport.SignupResponse
	decode(t, ctx, &resp)
	assert.Equal(t, "User created successfully", resp.Message)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.User.ID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "Ada", "ada@example.com", "secret1")

	ctx := post(transport.SignupRequest{Name: "Ada", Email: "ADA@example.com", Password: "secret1"})
	f.auth.Signup(ctx)

	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	var resp transport.ErrorResponse
	decode(t, ctx, &resp)
	assert.Equal(t, "User already exists", resp.Message)
}

func TestLoginIssuesToken(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "Ada", "ada@example.com", "secret1")

	ctx := post(transport.LoginRequest{Email: "ada@example.com", Password: "secret1"})
	f.auth.Login(ctx)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var resp transport.LoginResponse
	decode(t, ctx, &resp)
	assert.Equal(t, "Login successful", resp.Message)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginUnknownUserReports400(t *testing.T) {
	f := newFixture(t)

	ctx := post(transport.LoginRequest{Email: "ghost@example.com", Password: "secret1"})
	f.auth.Login(ctx)

	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	var resp transport.ErrorResponse
	decode(t, ctx, &resp)
	assert.Equal(t, "User not found", resp.Message)
}

func TestForgotPasswordUnknownUserReports404(t *testing.T) {
	f := newFixture(t)

	ctx := post(transport.ForgotPasswordRequest{Email: "ghost@example.com"})
	f.auth.ForgotPassword(ctx)

	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
	var resp transport.ErrorResponse
	decode(t, ctx, &resp)
	assert.Equal(t, "User not found", resp.Message)
}

func TestPasswordResetFlow(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "Ada", "ada@example.com", "secret1")

	ctx := post(transport.ForgotPasswordRequest{Email: "ada@example.com"})
	f.auth.ForgotPassword(ctx)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	code := f.otps.codes["ada@example.com"]
	require.Len(t, code, 6)

	ctx = post(transport.ResetPasswordRequest{Email: "ada@example.com", OTP: code, NewPassword: "brandnew"})
	f.auth.ResetPassword(ctx)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var resp transport.MessageResponse
	decode(t, ctx, &resp)
	assert.Equal(t, "Password reset successfully", resp.Message)

	ctx = post(transport.LoginRequest{Email: "ada@example.com", Password: "brandnew"})
	f.auth.Login(ctx)
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
}

func TestResetPasswordWrongCode(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "Ada", "ada@example.com", "secret1")

	ctx := post(transport.ForgotPasswordRequest{Email: "ada@example.com"})
	f.auth.ForgotPassword(ctx)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	ctx = post(transport.ResetPasswordRequest{Email: "ada@example.com", OTP: "000000", NewPassword: "brandnew"})
	f.auth.ResetPassword(ctx)

	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	var resp transport.ErrorResponse
	decode(t, ctx, &resp)
	assert.Equal(t, "Invalid or expired OTP", resp.Message)
}

func asUser(ctx *fasthttp.RequestCtx, userID string) *fasthttp.RequestCtx {
	ctx.Request.Header.Set("X-User-ID", userID)
	return ctx
}

func TestTaskCreateAndList(t *testing.T) {
	f := newFixture(t)

	ctx := asUser(post(transport.TaskCreateRequest{Title: "write report", Priority: "High", Deadline: "2026-09-01"}), "u1")
	f.task.Create(ctx)
	require.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode(), string(ctx.Response.Body()))

	var created domain.Task
	decode(t, ctx, &created)
	assert.Equal(t, domain.PriorityHigh, created.Priority)
	require.NotNil(t, created.Deadline)

	ctx = asUser(&fasthttp.RequestCtx{}, "u1")
	f.task.List(ctx)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var tasks []domain.Task
	decode(t, ctx, &tasks)
	assert.Len(t, tasks, 1)
}

func TestTaskListRequiresUser(t *testing.T) {
	f := newFixture(t)

	ctx := &fasthttp.RequestCtx{}
	f.task.List(ctx)

	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestTaskCreateRejectsBadDeadline(t *testing.T) {
	f := newFixture(t)

	ctx := asUser(post(transport.TaskCreateRequest{Title: "x", Deadline: "soon"}), "u1")
	f.task.Create(ctx)

	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestTaskUpdateTogglesCompletion(t *testing.T) {
	f := newFixture(t)

	ctx := asUser(post(transport.TaskCreateRequest{Title: "write report"}), "u1")
	f.task.Create(ctx)
	var created domain.Task
	decode(t, ctx, &created)

	completed := true
	ctx = asUser(post(transport.TaskUpdateRequest{Completed: &completed}), "u1")
	ctx.SetUserValue("id", created.ID)
	f.task.Update(ctx)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))
	var updated domain.Task
	decode(t, ctx, &updated)
	assert.True(t, updated.Completed)
	assert.Equal(t, "write report", updated.Title)
}

func TestTaskUpdateWrongOwner(t *testing.T) {
	f := newFixture(t)

	ctx := asUser(post(transport.TaskCreateRequest{Title: "private"}), "u1")
	f.task.Create(ctx)
	var created domain.Task
	decode(t, ctx, &created)

	pinned := true
	ctx = asUser(post(transport.TaskUpdateRequest{IsPinned: &pinned}), "u2")
	ctx.SetUserValue("id", created.ID)
	f.task.Update(ctx)

	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}

func TestTaskDelete(t *testing.T) {
	f := newFixture(t)

	ctx := asUser(post(transport.TaskCreateRequest{Title: "gone soon"}), "u1")
	f.task.Create(ctx)
	var created domain.Task
	decode(t, ctx, &created)

	ctx = asUser(&fasthttp.RequestCtx{}, "u1")
	ctx.SetUserValue("id", created.ID)
	f.task.Delete(ctx)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var resp transport.MessageResponse
	decode(t, ctx, &resp)
	assert.Equal(t, "Task deleted", resp.Message)
}
