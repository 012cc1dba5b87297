package checkout

import (
	"context"
	"strings"

	"github.com/atelierline/storefront-gateway/internal/catalog"
	pkgerrors "github.com/atelierline/storefront-gateway/pkg/errors"
	"github.com/atelierline/storefront-gateway/pkg/logger"
	"github.com/atelierline/storefront-gateway/pkg/upstream"
	"github.com/shopspring/decimal"
)

// Backend is the slice of the commerce client checkout needs.
type Backend interface {
	UserProfile(ctx context.Context, token string) (*upstream.Profile, error)
	GetProduct(ctx context.Context, productID string) (*upstream.Product, error)
	CheckDelivery(ctx context.Context, token, productID, pincode string) (*upstream.DeliveryResult, error)
	ApplyCoupon(ctx context.Context, token, code string, orderAmount float64) (*upstream.CouponResult, error)
	CreateOrder(ctx context.Context, token string, payload upstream.OrderPayload) (*upstream.Order, error)
}

// LineInput is one cart line submitted for quoting.
type LineInput struct {
	ProductID string                  `json:"productId"`
	Quantity  int                     `json:"quantity"`
	Selected  catalog.SelectedOptions `json:"selected,omitempty"`
}

// QuoteInput is the full checkout state to be priced.
type QuoteInput struct {
	Lines          []LineInput `json:"lines"`
	Pincode        string      `json:"pincode"`
	ShippingMethod string      `json:"shippingMethod"`
	CouponCode     string      `json:"couponCode,omitempty"`
}

// QuoteLine is one priced line with its delivery verdict. DeliveryMessage is
// set only on lines that block payment.
type QuoteLine struct {
	ProductID       string          `json:"productId"`
	Title           string          `json:"title"`
	VariantID       string          `json:"variantId,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	LineTotal       decimal.Decimal `json:"lineTotal"`
	OutOfStock      bool            `json:"outOfStock"`
	Deliverable     bool            `json:"deliverable"`
	DeliveryMessage string          `json:"deliveryMessage,omitempty"`
}

// Quote is the priced checkout, gated on every line being in stock and
// deliverable to the pincode.
type Quote struct {
	Lines           []QuoteLine               `json:"lines"`
	DeliveryOptions []upstream.DeliveryOption `json:"deliveryOptions"`
	Totals          Totals                    `json:"totals"`
	CouponApplied   bool                      `json:"couponApplied"`
	CouponMessage   string                    `json:"couponMessage,omitempty"`
	ReadyForPayment bool                      `json:"readyForPayment"`
}

// PlaceOrderInput is a quote input plus the shipping destination.
type PlaceOrderInput struct {
	QuoteInput
	Address       upstream.Address `json:"address"`
	PaymentMethod string           `json:"paymentMethod"`
}

// Service prices checkouts and places orders against the backend.
type Service interface {
	Quote(ctx context.Context, token string, input QuoteInput) (*Quote, error)
	PlaceOrder(ctx context.Context, token string, input PlaceOrderInput) (*upstream.Order, error)
}

type service struct {
	backend Backend
	logg    *logger.Logger
}

// NewService builds the checkout service.
func NewService(backend Backend, logg *logger.Logger) (Service, error) {
	if backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout backend is required")
	}
	return &service{backend: backend, logg: logg}, nil
}

// Quote prices the submitted lines, checks delivery per product and applies
// the coupon against the subtotal. An invalid coupon is a message on the
// quote, not an error.
func (s *service) Quote(ctx context.Context, token string, input QuoteInput) (*Quote, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	method := input.ShippingMethod
	if method == "" {
		method = "standard"
	}

	quote := &Quote{
		Lines:           make([]QuoteLine, 0, len(input.Lines)),
		DeliveryOptions: []upstream.DeliveryOption{},
		ReadyForPayment: true,
	}
	subtotal := decimal.Zero

	for _, line := range input.Lines {
		product, err := s.backend.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		availability := catalog.ResolveAvailability(product, line.Selected)
		priced := QuoteLine{
			ProductID: product.ID,
			Title:     product.Title,
			Quantity:  line.Quantity,
			UnitPrice: UnitPrice(product, availability.Variant),
		}
		if availability.Variant != nil {
			priced.VariantID = availability.Variant.ID
		}
		priced.LineTotal = priced.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(priced.LineTotal)

		if availability.OutOfStock {
			priced.OutOfStock = true
			quote.ReadyForPayment = false
		}

		delivery, err := s.backend.CheckDelivery(ctx, token, line.ProductID, input.Pincode)
		if err != nil {
			return nil, err
		}
		if delivery.Available {
			priced.Deliverable = true
			quote.DeliveryOptions = mergeOptions(quote.DeliveryOptions, delivery.Options)
		} else {
			priced.DeliveryMessage = delivery.Message
			if priced.DeliveryMessage == "" {
				priced.DeliveryMessage = "not deliverable to this pincode"
			}
			quote.ReadyForPayment = false
		}

		quote.Lines = append(quote.Lines, priced)
	}

	shipping := ShippingCost(quote.DeliveryOptions, method)

	discount := decimal.Zero
	if code := strings.TrimSpace(input.CouponCode); code != "" {
		amount, _ := subtotal.Float64()
		result, err := s.backend.ApplyCoupon(ctx, token, code, amount)
		if err != nil {
			appErr := pkgerrors.As(err)
			if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
				return nil, err
			}
			quote.CouponMessage = appErr.Message()
		} else if result.Valid {
			discount = decimal.NewFromFloat(result.Discount)
			quote.CouponApplied = true
			quote.CouponMessage = result.Message
		} else {
			quote.CouponMessage = result.Message
		}
	}

	quote.Totals = ComputeTotals(subtotal, shipping, discount)
	return quote, nil
}

// PlaceOrder re-quotes the checkout and submits a cash-on-delivery order when
// every line cleared stock and delivery gating.
func (s *service) PlaceOrder(ctx context.Context, token string, input PlaceOrderInput) (*upstream.Order, error) {
	if strings.TrimSpace(input.Address.Address) == "" || strings.TrimSpace(input.Address.Pin) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address is required")
	}
	if input.Pincode == "" {
		input.Pincode = input.Address.Pin
	}

	quote, err := s.Quote(ctx, token, input.QuoteInput)
	if err != nil {
		return nil, err
	}
	if !quote.ReadyForPayment {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order is not ready for payment").
			WithDetails(quote.Lines)
	}

	profile, err := s.backend.UserProfile(ctx, token)
	if err != nil {
		return nil, err
	}

	method := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	if method == "" {
		method = "cod"
	}

	firstName, lastName := splitName(input.Address.Name)
	items := make([]upstream.OrderItem, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		price, _ := line.UnitPrice.Float64()
		items = append(items, upstream.OrderItem{
			Product:        line.ProductID,
			Quantity:       line.Quantity,
			Price:          price,
			OrderedVariant: line.VariantID,
		})
	}

	total, _ := quote.Totals.Total.Float64()
	shipping, _ := quote.Totals.Shipping.Float64()
	payload := upstream.OrderPayload{
		User: profile.ID,
		ShippingInfo: upstream.ShippingInfo{
			FirstName:     firstName,
			LastName:      lastName,
			StreetAddress: input.Address.Address,
			City:          input.Address.City,
			State:         input.Address.State,
			PostalCode:    input.Address.Pin,
			Country:       "India",
			Phone:         input.Address.Phone,
		},
		OrderItems:    items,
		TotalAmount:   total,
		ShippingPrice: shipping,
		PaymentMethod: method,
		PaymentStatus: "pending",
	}

	order, err := s.backend.CreateOrder(ctx, token, payload)
	if err != nil {
		return nil, err
	}
	if s.logg != nil {
		ctx = s.logg.WithUserID(ctx, profile.ID)
		ctx = s.logg.WithFields(ctx, map[string]any{"order_id": order.ID, "total": total})
		s.logg.Info(ctx, "order placed")
	}
	return order, nil
}

func validateInput(input QuoteInput) error {
	if len(input.Lines) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one line is required")
	}
	if strings.TrimSpace(input.Pincode) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery pincode is required")
	}
	for _, line := range input.Lines {
		if strings.TrimSpace(line.ProductID) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "product id is required on every line")
		}
		if line.Quantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
	}
	return nil
}

// mergeOptions keeps the first price seen per delivery type across products.
func mergeOptions(existing, incoming []upstream.DeliveryOption) []upstream.DeliveryOption {
	seen := make(map[string]bool, len(existing))
	for _, option := range existing {
		seen[option.Type] = true
	}
	for _, option := range incoming {
		if !seen[option.Type] {
			seen[option.Type] = true
			existing = append(existing, option)
		}
	}
	return existing
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
