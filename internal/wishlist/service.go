package wishlist

import (
	"context"
	"strings"

	pkgerrors "github.com/atelierline/storefront-gateway/pkg/errors"
	"github.com/atelierline/storefront-gateway/pkg/upstream"
)

// Backend is the slice of the commerce client the wishlist needs. Membership
// lives entirely in the backend profile document.
type Backend interface {
	UserProfile(ctx context.Context, token string) (*upstream.Profile, error)
	AddToWishlist(ctx context.Context, token, productID string) error
	RemoveFromWishlist(ctx context.Context, token, productID string) error
}

// Service manages the user's saved products.
type Service interface {
	List(ctx context.Context, token string) ([]upstream.Product, error)
	Add(ctx context.Context, token, productID string) ([]upstream.Product, error)
	Remove(ctx context.Context, token, productID string) ([]upstream.Product, error)
	Contains(ctx context.Context, token, productID string) (bool, error)
}

type service struct {
	backend Backend
}

// NewService builds the wishlist service.
func NewService(backend Backend) (Service, error) {
	if backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "wishlist backend is required")
	}
	return &service{backend: backend}, nil
}

func (s *service) List(ctx context.Context, token string) ([]upstream.Product, error) {
	profile, err := s.backend.UserProfile(ctx, token)
	if err != nil {
		return nil, err
	}
	return profile.Wishlist, nil
}

// Add saves a product and returns the refreshed list.
func (s *service) Add(ctx context.Context, token, productID string) ([]upstream.Product, error) {
	trimmed := strings.TrimSpace(productID)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := s.backend.AddToWishlist(ctx, token, trimmed); err != nil {
		return nil, err
	}
	return s.List(ctx, token)
}

// Remove drops a product and returns the refreshed list.
func (s *service) Remove(ctx context.Context, token, productID string) ([]upstream.Product, error) {
	trimmed := strings.TrimSpace(productID)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := s.backend.RemoveFromWishlist(ctx, token, trimmed); err != nil {
		return nil, err
	}
	return s.List(ctx, token)
}

// Contains reports whether a product is currently saved, for toggling the
// heart icon on product cards.
func (s *service) Contains(ctx context.Context, token, productID string) (bool, error) {
	list, err := s.List(ctx, token)
	if err != nil {
		return false, err
	}
	for _, product := range list {
		if product.ID == productID {
			return true, nil
		}
	}
	return false, nil
}
