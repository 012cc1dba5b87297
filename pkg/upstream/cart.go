package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	pkgerrors "github.com/atelierline/storefront-gateway/pkg/errors"
)

// AddToCart attaches a product to the authenticated user's cart.
func (c *Client) AddToCart(ctx context.Context, token, productID string) error {
	if err := requireTokenAndID(token, productID); err != nil {
		return err
	}
	path := "/addtocart/" + url.PathEscape(strings.TrimSpace(productID))
	return c.call(ctx, http.MethodPost, "add_to_cart", path, token, nil, nil)
}

// RemoveCartItem detaches a product from the authenticated user's cart.
func (c *Client) RemoveCartItem(ctx context.Context, token, productID string) error {
	if err := requireTokenAndID(token, productID); err != nil {
		return err
	}
	path := "/removeitem/" + url.PathEscape(strings.TrimSpace(productID))
	return c.call(ctx, http.MethodPatch, "remove_cart_item", path, token, nil, nil)
}

// AddToWishlist attaches a product to the user's wishlist.
func (c *Client) AddToWishlist(ctx context.Context, token, productID string) error {
	if err := requireTokenAndID(token, productID); err != nil {
		return err
	}
	path := "/addtowishlist/" + url.PathEscape(strings.TrimSpace(productID))
	return c.call(ctx, http.MethodPost, "add_to_wishlist", path, token, nil, nil)
}

// RemoveFromWishlist detaches a product from the user's wishlist.
func (c *Client) RemoveFromWishlist(ctx context.Context, token, productID string) error {
	if err := requireTokenAndID(token, productID); err != nil {
		return err
	}
	path := "/removefromwishlist/" + url.PathEscape(strings.TrimSpace(productID))
	return c.call(ctx, http.MethodPatch, "remove_from_wishlist", path, token, nil, nil)
}

func requireTokenAndID(token, productID string) error {
	if strings.TrimSpace(token) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "bearer token is required")
	}
	if strings.TrimSpace(productID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return nil
}
