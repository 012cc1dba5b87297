package enums

import (
	"fmt"
	"strings"
)

// OrderStatus tracks the lifecycle of a placed order as reported by the
// commerce backend.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

// NormalizeOrderStatus maps the backend's loosely cased status strings onto
// the canonical enum. Casing varies by endpoint; unknown or empty values
// default to pending.
func NormalizeOrderStatus(value string) OrderStatus {
	cleaned := strings.ToLower(strings.TrimSpace(value))
	switch cleaned {
	case "canceled":
		return OrderStatusCancelled
	case "":
		return OrderStatusPending
	}
	if status, err := ParseOrderStatus(cleaned); err == nil {
		return status
	}
	return OrderStatusPending
}
