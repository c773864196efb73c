package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/repository"
)

type otpRepository struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewOTPRepository creates a Redis-backed one-time-code store. Keys expire
// after ttl, which is what makes "expired OTP" true at the API.
func NewOTPRepository(client *redislib.Client, ttl time.Duration) repository.OTPRepository {
	if ttl <= 0 {
		ttl = domain.OTPTTL
	}
	return &otpRepository{
		client: client,
		prefix: "otp:",
		ttl:    ttl,
	}
}

func (r *otpRepository) Save(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		return domain.ErrInvalidPayload
	}
	return r.client.Set(ctx, r.key(email), code, r.ttl).Err()
}

func (r *otpRepository) Get(ctx context.Context, email string) (string, error) {
	code, err := r.client.Get(ctx, r.key(email)).Result()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return "", domain.ErrInvalidOTP
		}
		return "", err
	}
	return code, nil
}

func (r *otpRepository) Delete(ctx context.Context, email string) error {
	return r.client.Del(ctx, r.key(email)).Err()
}

func (r *otpRepository) key(email string) string {
	return fmt.Sprintf("%s%s", r.prefix, strings.ToLower(strings.TrimSpace(email)))
}
