package apiclient

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/taskdeck/taskdeck/api/transport"
	"github.com/taskdeck/taskdeck/domain"
)

// APIError carries the server's message for a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is a typed consumer of the task service REST API.
type Client struct {
	baseURL string
	token   string
	http    *fasthttp.Client
	timeout time.Duration
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &fasthttp.Client{
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		timeout: 15 * time.Second,
	}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Signup(name, email, password string) (*transport.SignupResponse, error) {
	var out transport.SignupResponse
	err := c.do(fasthttp.MethodPost, "/api/auth/signup", transport.SignupRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(email, password string) (*transport.LoginResponse, error) {
	var out transport.LoginResponse
	err := c.do(fasthttp.MethodPost, "/api/auth/login", transport.LoginRequest{
		Email:    email,
		Password: password,
	}, &out)
	if err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

func (c *Client) ForgotPassword(email string) (string, error) {
	var out transport.MessageResponse
	err := c.do(fasthttp.MethodPost, "/api/auth/forgot-password", transport.ForgotPasswordRequest{Email: email}, &out)
	if err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) ResetPassword(email, otp, newPassword string) (string, error) {
	var out transport.MessageResponse
	err := c.do(fasthttp.MethodPost, "/api/auth/reset-password", transport.ResetPasswordRequest{
		Email:       email,
		OTP:         otp,
		NewPassword: newPassword,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) ListTasks() ([]domain.Task, error) {
	var out []domain.Task
	if err := c.do(fasthttp.MethodGet, "/api/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTask(req transport.TaskCreateRequest) (*domain.Task, error) {
	var out domain.Task
	if err := c.do(fasthttp.MethodPost, "/api/tasks", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTask(id string, req transport.TaskUpdateRequest) (*domain.Task, error) {
	var out domain.Task
	if err := c.do(fasthttp.MethodPut, "/api/tasks/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTask(id string) error {
	var out transport.MessageResponse
	return c.do(fasthttp.MethodDelete, "/api/tasks/"+id, nil, &out)
}

func (c *Client) do(method, path string, body, out interface{}) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		req.SetBody(payload)
	}

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}

	status := resp.StatusCode()
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		return decodeError(status, resp.Body())
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(status int, body []byte) error {
	var payload transport.ErrorResponse
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return &APIError{StatusCode: status, Message: payload.Message}
	}
	return &APIError{StatusCode: status, Message: fmt.Sprintf("server returned status %d", status)}
}
