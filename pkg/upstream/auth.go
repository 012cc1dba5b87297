package upstream

import (
	"context"
	"net/http"
	"strings"

	pkgerrors "github.com/atelierline/storefront-gateway/pkg/errors"
)

// SignupRequest is the payload for account creation.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// LoginRequest is the payload for email/password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyOTPRequest confirms a one-time code sent during signup or reset.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResetPasswordRequest sets a new password after OTP verification.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// AuthResult is the backend's reply to auth flows. The token is opaque to
// the gateway and handed back to the caller verbatim.
type AuthResult struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Ack is the backend's generic acknowledgement body.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Signup registers a new customer account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	var result AuthResult
	if err := c.call(ctx, http.MethodPost, "signup", "/signup", "", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	var result AuthResult
	if err := c.call(ctx, http.MethodPost, "login", "/login", "", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// VerifyOTP confirms the one-time code for a pending signup.
func (c *Client) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*AuthResult, error) {
	var result AuthResult
	if err := c.call(ctx, http.MethodPost, "verify_otp", "/verify", "", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ResendOTP requests a fresh one-time code for the given email.
func (c *Client) ResendOTP(ctx context.Context, email string) (*Ack, error) {
	if strings.TrimSpace(email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	var ack Ack
	payload := map[string]string{"email": email}
	if err := c.call(ctx, http.MethodPost, "resend_otp", "/reSendOtp", "", payload, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// ForgotPassword starts the password reset flow.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*Ack, error) {
	if strings.TrimSpace(email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	var ack Ack
	payload := map[string]string{"email": email}
	if err := c.call(ctx, http.MethodPost, "forgot_password", "/forgotPassword", "", payload, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// ResetPassword completes the password reset flow.
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*Ack, error) {
	var ack Ack
	if err := c.call(ctx, http.MethodPost, "reset_password", "/resetPassword", "", req, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// UserProfile fetches the authenticated user's document, including cart and
// wishlist snapshots.
func (c *Client) UserProfile(ctx context.Context, token string) (*Profile, error) {
	if strings.TrimSpace(token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "bearer token is required")
	}
	var profile Profile
	if err := c.callData(ctx, http.MethodGet, "user_profile", "/userProfile", token, nil, &profile); err != nil {
		return nil, err
	}
	profile.normalize()
	return &profile, nil
}

// UpdateUserProfile applies partial updates to the user document.
func (c *Client) UpdateUserProfile(ctx context.Context, token string, updates map[string]any) (*Profile, error) {
	if strings.TrimSpace(token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "bearer token is required")
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no profile updates provided")
	}
	var profile Profile
	if err := c.callData(ctx, http.MethodPut, "update_user_profile", "/updateUserProfile", token, updates, &profile); err != nil {
		return nil, err
	}
	profile.normalize()
	return &profile, nil
}
