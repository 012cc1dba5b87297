package upstream

// Wire types mirror the commerce backend's JSON documents. Fields the backend
// omits decode to zero values; slices are normalized to empty rather than nil
// before leaving this package.

// Image is a single product or variant image.
type Image struct {
	URL string `json:"url"`
}

// VariantAttribute is one group/value pair on a variant, e.g. color=red.
type VariantAttribute struct {
	GroupName string `json:"groupName"`
	Value     string `json:"value"`
}

// Variant is a purchasable combination of attribute values with its own
// price, stock and images.
type Variant struct {
	ID              string             `json:"id"`
	Attributes      []VariantAttribute `json:"attributes"`
	Price           float64            `json:"price"`
	DiscountedPrice float64            `json:"discountedPrice"`
	Images          []Image            `json:"images"`
	Stock           int                `json:"stock"`
}

// Review is one customer review attached to a product.
type Review struct {
	ID        string  `json:"_id"`
	Name      string  `json:"name"`
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment"`
	CreatedAt string  `json:"createdAt"`
}

// Product is the catalog document.
type Product struct {
	ID              string    `json:"_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	DiscountedPrice float64   `json:"discountedPrice"`
	Images          []Image   `json:"images"`
	Stock           int       `json:"stock"`
	Category        string    `json:"category"`
	SubCategory     string    `json:"subCategory"`
	Tags            []string  `json:"tags"`
	Variants        []Variant `json:"variants"`
	Ratings         float64   `json:"ratings"`
	Reviews         []Review  `json:"reviews"`
	IsFeatured      bool      `json:"isFeatured"`
}

func (p *Product) normalize() {
	if p == nil {
		return
	}
	if p.Images == nil {
		p.Images = []Image{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Variants == nil {
		p.Variants = []Variant{}
	}
	if p.Reviews == nil {
		p.Reviews = []Review{}
	}
	for i := range p.Variants {
		if p.Variants[i].Attributes == nil {
			p.Variants[i].Attributes = []VariantAttribute{}
		}
		if p.Variants[i].Images == nil {
			p.Variants[i].Images = []Image{}
		}
	}
}

// CartEntry is a product snapshot inside the profile's cart list. The backend
// owns membership; quantity is advisory and the gateway's cache wins.
type CartEntry struct {
	ID       string  `json:"_id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Images   []Image `json:"images"`
	Quantity int     `json:"quantity"`
}

// Profile is the authenticated user's document, including cart and wishlist
// snapshots.
type Profile struct {
	ID       string      `json:"_id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Country  string      `json:"country"`
	Cart     []CartEntry `json:"addtocart"`
	Wishlist []Product   `json:"wishlist"`
}

func (p *Profile) normalize() {
	if p == nil {
		return
	}
	if p.Cart == nil {
		p.Cart = []CartEntry{}
	}
	if p.Wishlist == nil {
		p.Wishlist = []Product{}
	}
	for i := range p.Wishlist {
		p.Wishlist[i].normalize()
	}
}

// Address is one address-book entry.
type Address struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pin       string `json:"pin"`
	IsDefault bool   `json:"isDefault"`
}

// DeliveryOption is a shipping method valid for a product/pincode pair.
type DeliveryOption struct {
	Type  string  `json:"type"`
	Price float64 `json:"price"`
}

// DeliveryResult is the outcome of a delivery availability check.
type DeliveryResult struct {
	Available bool
	Message   string
	Options   []DeliveryOption
}

// CouponResult is the backend's verdict on a submitted coupon code.
type CouponResult struct {
	Valid    bool    `json:"valid"`
	Discount float64 `json:"discount"`
	Message  string  `json:"message"`
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	Product        string  `json:"product"`
	Quantity       int     `json:"quantity"`
	Price          float64 `json:"price"`
	Message        string  `json:"message,omitempty"`
	OrderedVariant string  `json:"orderedVariant,omitempty"`
}

// ShippingInfo is the order's destination.
type ShippingInfo struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
}

// OrderPayload is the body POSTed to create an order.
type OrderPayload struct {
	User          string       `json:"user"`
	ShippingInfo  ShippingInfo `json:"shippingInfo"`
	OrderItems    []OrderItem  `json:"orderItems"`
	TotalAmount   float64      `json:"totalAmount"`
	ShippingPrice float64      `json:"shippingPrice"`
	PaymentMethod string       `json:"paymentMethod"`
	PaymentStatus string       `json:"paymentStatus"`
	Message       string       `json:"message,omitempty"`
}

// Order is a placed order as returned by the backend.
type Order struct {
	ID          string      `json:"_id"`
	OrderStatus string      `json:"orderStatus"`
	OrderItems  []OrderItem `json:"orderItems"`
	TotalAmount float64     `json:"totalAmount"`
	CreatedAt   string      `json:"createdAt"`
}

// BlogComment is one comment on a blog post.
type BlogComment struct {
	ID        string `json:"_id"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

// Blog is one blog post.
type Blog struct {
	ID        string        `json:"_id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Image     string        `json:"image"`
	Comments  []BlogComment `json:"comments"`
	CreatedAt string        `json:"createdAt"`
}

// Banner is one homepage banner.
type Banner struct {
	ID    string `json:"_id"`
	Image string `json:"image"`
	Link  string `json:"link"`
}

// Promo is a promotional tile shown on the home page.
type Promo struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Button      string `json:"button"`
}

// Settings is the site-wide configuration document.
type Settings struct {
	SiteTitle string `json:"siteTitle"`
	Logo      string `json:"logo"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// CMSPage is a content-managed page document.
type CMSPage struct {
	ID      string `json:"_id"`
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SiteReview is a customer review shown on the home page.
type SiteReview struct {
	ID      string  `json:"_id"`
	Author  string  `json:"author"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}
