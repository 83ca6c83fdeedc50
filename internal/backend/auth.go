package backend

import (
	"context"
	"net/http"

	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
)

// AuthResult is the credential + identity pair the backend issues on login
// and on completed registration.
type AuthResult struct {
	Token string          `json:"token"`
	User  domain.Identity `json:"user"`
}

func (c *Client) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, "login", http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// InitiateRegistrationOTP asks the backend to mail a registration OTP. No
// account exists until CompleteRegistration succeeds.
func (c *Client) InitiateRegistrationOTP(ctx context.Context, email string) error {
	return c.do(ctx, "send registration code", http.MethodPost, "/auth/initiate-registration-otp", map[string]string{
		"email": email,
	}, nil)
}

func (c *Client) VerifyRegistrationOTP(ctx context.Context, email, otp string) error {
	return c.do(ctx, "verify registration code", http.MethodPost, "/auth/verify-registration-otp", map[string]string{
		"email": email,
		"otp":   otp,
	}, nil)
}

// CompleteRegistration creates the account after OTP verification and returns
// a credential exactly like Authenticate does.
func (c *Client) CompleteRegistration(ctx context.Context, name, email, password string) (*AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, "complete registration", http.MethodPost, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RequestPasswordOTP(ctx context.Context, email string) error {
	return c.do(ctx, "send reset code", http.MethodPost, "/auth/forgot-password", map[string]string{
		"email": email,
	}, nil)
}

func (c *Client) VerifyPasswordOTP(ctx context.Context, email, otp string) error {
	return c.do(ctx, "verify reset code", http.MethodPost, "/auth/verify-otp", map[string]string{
		"email": email,
		"otp":   otp,
	}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, email, newPassword string) error {
	return c.do(ctx, "reset password", http.MethodPost, "/auth/reset-password", map[string]string{
		"email":       email,
		"newPassword": newPassword,
	}, nil)
}
