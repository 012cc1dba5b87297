package accounts

import (
	"context"
	"testing"

	pkgerrors "github.com/atelierline/storefront-gateway/pkg/errors"
	"github.com/atelierline/storefront-gateway/pkg/upstream"
)

type stubAccountsBackend struct {
	profile   *upstream.Profile
	addresses []upstream.Address
	logins    []upstream.LoginRequest
	defaults  []string
}

func (s *stubAccountsBackend) Signup(ctx context.Context, req upstream.SignupRequest) (*upstream.AuthResult, error) {
	return &upstream.AuthResult{Message: "otp sent"}, nil
}

func (s *stubAccountsBackend) Login(ctx context.Context, req upstream.LoginRequest) (*upstream.AuthResult, error) {
	s.logins = append(s.logins, req)
	return &upstream.AuthResult{Token: "tok-123"}, nil
}

func (s *stubAccountsBackend) VerifyOTP(ctx context.Context, req upstream.VerifyOTPRequest) (*upstream.AuthResult, error) {
	return &upstream.AuthResult{Token: "tok-123"}, nil
}

func (s *stubAccountsBackend) ResendOTP(ctx context.Context, email string) (*upstream.Ack, error) {
	return &upstream.Ack{Success: true}, nil
}

func (s *stubAccountsBackend) ForgotPassword(ctx context.Context, email string) (*upstream.Ack, error) {
	return &upstream.Ack{Success: true}, nil
}

func (s *stubAccountsBackend) ResetPassword(ctx context.Context, req upstream.ResetPasswordRequest) (*upstream.Ack, error) {
	return &upstream.Ack{Success: true}, nil
}

func (s *stubAccountsBackend) UserProfile(ctx context.Context, token string) (*upstream.Profile, error) {
	return s.profile, nil
}

func (s *stubAccountsBackend) UpdateUserProfile(ctx context.Context, token string, updates map[string]any) (*upstream.Profile, error) {
	return s.profile, nil
}

func (s *stubAccountsBackend) ListAddresses(ctx context.Context, token string) ([]upstream.Address, error) {
	return s.addresses, nil
}

func (s *stubAccountsBackend) CreateAddress(ctx context.Context, token string, input upstream.AddressInput) (*upstream.Address, error) {
	return &upstream.Address{ID: "a-new", Name: input.Name}, nil
}

func (s *stubAccountsBackend) UpdateAddress(ctx context.Context, token, addressID string, input upstream.AddressInput) (*upstream.Address, error) {
	return &upstream.Address{ID: addressID, Name: input.Name}, nil
}

func (s *stubAccountsBackend) DeleteAddress(ctx context.Context, token, addressID string) error {
	return nil
}

func (s *stubAccountsBackend) SetDefaultAddress(ctx context.Context, token, addressID string) error {
	s.defaults = append(s.defaults, addressID)
	return nil
}

func newTestService(t *testing.T, backend Backend) Service {
	t.Helper()
	svc, err := NewService(backend)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestLoginRequiresCredentials(t *testing.T) {
	svc := newTestService(t, &stubAccountsBackend{})

	_, err := svc.Login(context.Background(), upstream.LoginRequest{Email: "a@b.c"})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	result, err := svc.Login(context.Background(), upstream.LoginRequest{Email: "a@b.c", Password: "pw"})
	if err != nil || result.Token != "tok-123" {
		t.Fatalf("expected token passthrough, got %+v %v", result, err)
	}
}

func TestCheckoutPrefillPrefersDefaultAddress(t *testing.T) {
	backend := &stubAccountsBackend{
		profile: &upstream.Profile{Name: "Asha Devi Rao", Email: "asha@example.com", Phone: "111"},
		addresses: []upstream.Address{
			{ID: "a1", Name: "Asha Rao", Phone: "222", Pin: "411001"},
			{ID: "a2", Name: "Asha Rao", Phone: "333", Pin: "560001", IsDefault: true},
		},
	}
	svc := newTestService(t, backend)

	prefill, err := svc.CheckoutPrefill(context.Background(), "tok")
	if err != nil {
		t.Fatalf("prefill: %v", err)
	}
	if prefill.FirstName != "Asha" || prefill.LastName != "Devi Rao" {
		t.Fatalf("expected split name, got %+v", prefill)
	}
	if prefill.Address == nil || prefill.Address.ID != "a2" {
		t.Fatalf("expected default address selected, got %+v", prefill.Address)
	}
	if prefill.Phone != "333" {
		t.Fatalf("address phone should override profile phone, got %q", prefill.Phone)
	}
}

func TestCheckoutPrefillFallsBackToFirstAddress(t *testing.T) {
	backend := &stubAccountsBackend{
		profile:   &upstream.Profile{Name: "Ravi", Email: "ravi@example.com"},
		addresses: []upstream.Address{{ID: "a1", Pin: "110001"}},
	}
	svc := newTestService(t, backend)

	prefill, err := svc.CheckoutPrefill(context.Background(), "tok")
	if err != nil {
		t.Fatalf("prefill: %v", err)
	}
	if prefill.FirstName != "Ravi" || prefill.LastName != "" {
		t.Fatalf("single word name keeps last name empty, got %+v", prefill)
	}
	if prefill.Address == nil || prefill.Address.ID != "a1" {
		t.Fatalf("expected first address fallback, got %+v", prefill.Address)
	}
}

func TestCreateAddressValidation(t *testing.T) {
	svc := newTestService(t, &stubAccountsBackend{})
	_, err := svc.CreateAddress(context.Background(), "tok", upstream.AddressInput{Name: "Asha"})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	created, err := svc.CreateAddress(context.Background(), "tok", upstream.AddressInput{
		Name: "Asha", Address: "12 Lake Rd", Pin: "411001",
	})
	if err != nil || created.ID != "a-new" {
		t.Fatalf("expected created address, got %+v %v", created, err)
	}
}
