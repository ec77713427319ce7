// Package mail delivers one-time codes to users by email.
package mail

import "context"

// Sender delivers an OTP to a single address. Implementations report any
// delivery failure as an error; the caller decides whether the code gets
// recorded.
type Sender interface {
	SendOTP(ctx context.Context, toEmail, code string) error
}
