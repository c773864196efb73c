package transport

import "github.com/taskdeck/taskdeck/domain"

// ErrorResponse is the error envelope every endpoint shares. Error carries
// detail for internal failures only.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageResponse is the body of endpoints that only confirm an action.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserSummary is the public projection of an account.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewUserSummary projects a domain user.
func NewUserSummary(user *domain.User) UserSummary {
	if user == nil {
		return UserSummary{}
	}
	return UserSummary{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

type SignupResponse struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserSummary `json:"user"`
}
