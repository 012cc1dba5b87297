package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	pkgerrors "github.com/atelierline/storefront-gateway/pkg/errors"
)

// AddressInput is the mutable part of an address-book entry.
type AddressInput struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pin       string `json:"pin"`
	IsDefault bool   `json:"isDefault"`
}

// ListAddresses fetches the user's address book. The backend returns this
// list unwrapped.
func (c *Client) ListAddresses(ctx context.Context, token string) ([]Address, error) {
	if strings.TrimSpace(token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "bearer token is required")
	}
	var addresses []Address
	if err := c.call(ctx, http.MethodGet, "list_addresses", "/address/getaddress", token, nil, &addresses); err != nil {
		return nil, err
	}
	if addresses == nil {
		addresses = []Address{}
	}
	return addresses, nil
}

// CreateAddress appends a new entry to the user's address book.
func (c *Client) CreateAddress(ctx context.Context, token string, input AddressInput) (*Address, error) {
	if strings.TrimSpace(token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "bearer token is required")
	}
	var created Address
	if err := c.callData(ctx, http.MethodPost, "create_address", "/address/create", token, input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateAddress replaces the fields of an existing entry.
func (c *Client) UpdateAddress(ctx context.Context, token, addressID string, input AddressInput) (*Address, error) {
	if err := requireTokenAndAddressID(token, addressID); err != nil {
		return nil, err
	}
	var updated Address
	path := "/address/updateaddress/" + url.PathEscape(strings.TrimSpace(addressID))
	if err := c.callData(ctx, http.MethodPatch, "update_address", path, token, input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAddress removes an entry from the address book.
func (c *Client) DeleteAddress(ctx context.Context, token, addressID string) error {
	if err := requireTokenAndAddressID(token, addressID); err != nil {
		return err
	}
	path := "/address/deleteaddress/" + url.PathEscape(strings.TrimSpace(addressID))
	return c.call(ctx, http.MethodDelete, "delete_address", path, token, nil, nil)
}

// SetDefaultAddress marks one entry as the checkout prefill default.
func (c *Client) SetDefaultAddress(ctx context.Context, token, addressID string) error {
	if err := requireTokenAndAddressID(token, addressID); err != nil {
		return err
	}
	path := "/address/" + url.PathEscape(strings.TrimSpace(addressID))
	return c.call(ctx, http.MethodPatch, "set_default_address", path, token, nil, nil)
}

func requireTokenAndAddressID(token, addressID string) error {
	if strings.TrimSpace(token) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "bearer token is required")
	}
	if strings.TrimSpace(addressID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "address id is required")
	}
	return nil
}
