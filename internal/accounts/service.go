package accounts

import (
	"context"
	"strings"

	pkgerrors "github.com/atelierline/storefront-gateway/pkg/errors"
	"github.com/atelierline/storefront-gateway/pkg/upstream"
)

// Backend is the slice of the commerce client account flows need. Credentials
// and tokens pass through untouched; the gateway never mints its own.
type Backend interface {
	Signup(ctx context.Context, req upstream.SignupRequest) (*upstream.AuthResult, error)
	Login(ctx context.Context, req upstream.LoginRequest) (*upstream.AuthResult, error)
	VerifyOTP(ctx context.Context, req upstream.VerifyOTPRequest) (*upstream.AuthResult, error)
	ResendOTP(ctx context.Context, email string) (*upstream.Ack, error)
	ForgotPassword(ctx context.Context, email string) (*upstream.Ack, error)
	ResetPassword(ctx context.Context, req upstream.ResetPasswordRequest) (*upstream.Ack, error)
	UserProfile(ctx context.Context, token string) (*upstream.Profile, error)
	UpdateUserProfile(ctx context.Context, token string, updates map[string]any) (*upstream.Profile, error)
	ListAddresses(ctx context.Context, token string) ([]upstream.Address, error)
	CreateAddress(ctx context.Context, token string, input upstream.AddressInput) (*upstream.Address, error)
	UpdateAddress(ctx context.Context, token, addressID string, input upstream.AddressInput) (*upstream.Address, error)
	DeleteAddress(ctx context.Context, token, addressID string) error
	SetDefaultAddress(ctx context.Context, token, addressID string) error
}

// Prefill seeds the checkout form from the profile and the default address.
type Prefill struct {
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	Address   *upstream.Address `json:"address,omitempty"`
}

// Service wraps account, profile and address-book flows.
type Service interface {
	Signup(ctx context.Context, req upstream.SignupRequest) (*upstream.AuthResult, error)
	Login(ctx context.Context, req upstream.LoginRequest) (*upstream.AuthResult, error)
	VerifyOTP(ctx context.Context, req upstream.VerifyOTPRequest) (*upstream.AuthResult, error)
	ResendOTP(ctx context.Context, email string) (*upstream.Ack, error)
	ForgotPassword(ctx context.Context, email string) (*upstream.Ack, error)
	ResetPassword(ctx context.Context, req upstream.ResetPasswordRequest) (*upstream.Ack, error)

	Profile(ctx context.Context, token string) (*upstream.Profile, error)
	UpdateProfile(ctx context.Context, token string, updates map[string]any) (*upstream.Profile, error)

	Addresses(ctx context.Context, token string) ([]upstream.Address, error)
	CreateAddress(ctx context.Context, token string, input upstream.AddressInput) (*upstream.Address, error)
	UpdateAddress(ctx context.Context, token, addressID string, input upstream.AddressInput) (*upstream.Address, error)
	DeleteAddress(ctx context.Context, token, addressID string) error
	SetDefaultAddress(ctx context.Context, token, addressID string) error

	CheckoutPrefill(ctx context.Context, token string) (*Prefill, error)
}

type service struct {
	backend Backend
}

// NewService builds the accounts service.
func NewService(backend Backend) (Service, error) {
	if backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "accounts backend is required")
	}
	return &service{backend: backend}, nil
}

func (s *service) Signup(ctx context.Context, req upstream.SignupRequest) (*upstream.AuthResult, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}
	return s.backend.Signup(ctx, req)
}

func (s *service) Login(ctx context.Context, req upstream.LoginRequest) (*upstream.AuthResult, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}
	return s.backend.Login(ctx, req)
}

func (s *service) VerifyOTP(ctx context.Context, req upstream.VerifyOTPRequest) (*upstream.AuthResult, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.OTP) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and otp are required")
	}
	return s.backend.VerifyOTP(ctx, req)
}

func (s *service) ResendOTP(ctx context.Context, email string) (*upstream.Ack, error) {
	if strings.TrimSpace(email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	return s.backend.ResendOTP(ctx, email)
}

func (s *service) ForgotPassword(ctx context.Context, email string) (*upstream.Ack, error) {
	if strings.TrimSpace(email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	return s.backend.ForgotPassword(ctx, email)
}

func (s *service) ResetPassword(ctx context.Context, req upstream.ResetPasswordRequest) (*upstream.Ack, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.NewPassword) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and new password are required")
	}
	return s.backend.ResetPassword(ctx, req)
}

func (s *service) Profile(ctx context.Context, token string) (*upstream.Profile, error) {
	return s.backend.UserProfile(ctx, token)
}

func (s *service) UpdateProfile(ctx context.Context, token string, updates map[string]any) (*upstream.Profile, error) {
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no profile fields to update")
	}
	return s.backend.UpdateUserProfile(ctx, token, updates)
}

func (s *service) Addresses(ctx context.Context, token string) ([]upstream.Address, error) {
	return s.backend.ListAddresses(ctx, token)
}

func (s *service) CreateAddress(ctx context.Context, token string, input upstream.AddressInput) (*upstream.Address, error) {
	if err := validateAddress(input); err != nil {
		return nil, err
	}
	return s.backend.CreateAddress(ctx, token, input)
}

func (s *service) UpdateAddress(ctx context.Context, token, addressID string, input upstream.AddressInput) (*upstream.Address, error) {
	if strings.TrimSpace(addressID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address id is required")
	}
	if err := validateAddress(input); err != nil {
		return nil, err
	}
	return s.backend.UpdateAddress(ctx, token, addressID, input)
}

func (s *service) DeleteAddress(ctx context.Context, token, addressID string) error {
	if strings.TrimSpace(addressID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "address id is required")
	}
	return s.backend.DeleteAddress(ctx, token, addressID)
}

func (s *service) SetDefaultAddress(ctx context.Context, token, addressID string) error {
	if strings.TrimSpace(addressID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "address id is required")
	}
	return s.backend.SetDefaultAddress(ctx, token, addressID)
}

// CheckoutPrefill combines the profile's name and contact details with the
// default address, falling back to the first address when none is flagged.
func (s *service) CheckoutPrefill(ctx context.Context, token string) (*Prefill, error) {
	profile, err := s.backend.UserProfile(ctx, token)
	if err != nil {
		return nil, err
	}

	first, last := splitName(profile.Name)
	prefill := &Prefill{
		FirstName: first,
		LastName:  last,
		Email:     profile.Email,
		Phone:     profile.Phone,
	}

	addresses, err := s.backend.ListAddresses(ctx, token)
	if err != nil {
		return nil, err
	}
	for i := range addresses {
		if addresses[i].IsDefault {
			prefill.Address = &addresses[i]
			break
		}
	}
	if prefill.Address == nil && len(addresses) > 0 {
		prefill.Address = &addresses[0]
	}
	if prefill.Address != nil && prefill.Address.Phone != "" {
		prefill.Phone = prefill.Address.Phone
	}
	return prefill, nil
}

func validateAddress(input upstream.AddressInput) error {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Address) == "" ||
		strings.TrimSpace(input.Pin) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name, address and pin are required")
	}
	return nil
}

func splitName(name string) (string, string) {
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}
