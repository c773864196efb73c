package transport

import (
	"fmt"
	"time"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

type TaskCreateRequest struct {
	Title    string `json:"title"`
	Priority string `json:"priority"`
	Deadline string `json:"deadline"`
}

// TaskUpdateRequest carries a partial update: absent fields keep their
// current value.
type TaskUpdateRequest struct {
	Title     *string `json:"title"`
	Priority  *string `json:"priority"`
	Deadline  *string `json:"deadline"`
	Completed *bool   `json:"completed"`
	IsPinned  *bool   `json:"isPinned"`
}

// deadlineLayouts are the formats clients send: full RFC3339, the
// datetime-local form without zone, and a bare date.
var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDeadline parses a client-supplied deadline string. An empty string
// is a nil deadline, not an error.
func ParseDeadline(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range deadlineLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed, nil
		}
	}
	return nil, fmt.Errorf("unrecognized deadline %q", value)
}
