package repository

import "context"

// OTPRepository keeps one-time reset codes per email. Saving overwrites any
// prior code for the address and restarts its TTL; Get on a missing or
// expired code returns domain.ErrInvalidOTP.
type OTPRepository interface {
	Save(ctx context.Context, email, code string) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}
