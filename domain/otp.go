package domain

import "time"

// OTPTTL is how long a one-time code stays redeemable after issuance.
const OTPTTL = 5 * time.Minute

// OTP is a one-time numeric code authorizing a password reset. Codes are
// kept in a TTL store, so expiry never needs an explicit field check.
type OTP struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`
}
