package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	pkgerrors "github.com/atelierline/storefront-gateway/pkg/errors"
)

// ApplyCoupon submits a coupon code against an order amount. The backend owns
// all discount rules; the gateway only caps the returned discount.
func (c *Client) ApplyCoupon(ctx context.Context, token, code string, orderAmount float64) (*CouponResult, error) {
	if strings.TrimSpace(token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "bearer token is required")
	}
	if strings.TrimSpace(code) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	payload := map[string]any{
		"code":        strings.TrimSpace(code),
		"orderAmount": orderAmount,
	}
	var result CouponResult
	if err := c.call(ctx, http.MethodPost, "apply_coupon", "/coupon/apply-coupon", token, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CheckDelivery asks whether a product ships to the given pincode. An
// unavailable pincode is a result, not an error; only transport or decode
// failures surface as errors.
func (c *Client) CheckDelivery(ctx context.Context, token, productID, pincode string) (*DeliveryResult, error) {
	if strings.TrimSpace(token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "bearer token is required")
	}
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if strings.TrimSpace(pincode) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pincode is required")
	}

	payload := map[string]string{
		"productId": strings.TrimSpace(productID),
		"pincode":   strings.TrimSpace(pincode),
	}

	var raw struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := c.call(ctx, http.MethodPost, "check_delivery", "/admin/getDeliveryByPincode", token, payload, &raw); err != nil {
		return nil, err
	}

	if !raw.Success {
		message := raw.Message
		if message == "" {
			message = "delivery unavailable for this pincode"
		}
		return &DeliveryResult{Available: false, Message: message, Options: []DeliveryOption{}}, nil
	}

	return &DeliveryResult{
		Available: true,
		Message:   raw.Message,
		Options:   decodeDeliveryOptions(raw.Data),
	}, nil
}

// decodeDeliveryOptions tolerates both shapes the backend emits: an object
// with a deliveryOptions list or a bare list.
func decodeDeliveryOptions(data json.RawMessage) []DeliveryOption {
	if len(data) == 0 {
		return []DeliveryOption{}
	}

	var wrapped struct {
		DeliveryOptions []DeliveryOption `json:"deliveryOptions"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.DeliveryOptions != nil {
		return wrapped.DeliveryOptions
	}

	var bare []DeliveryOption
	if err := json.Unmarshal(data, &bare); err == nil && bare != nil {
		return bare
	}

	return []DeliveryOption{}
}
