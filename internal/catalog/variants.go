package catalog

import (
	"github.com/atelierline/storefront-gateway/pkg/upstream"
)

// SelectedOptions is the shopper's in-progress choice of attribute group to
// value, e.g. {"color": "red", "size": "M"}.
type SelectedOptions map[string]string

// AttributeGroup is one selectable axis across a product's variants, with the
// distinct values seen in first-appearance order.
type AttributeGroup struct {
	GroupName string   `json:"groupName"`
	Values    []string `json:"values"`
}

// Availability is the derived purchase state for a product under the current
// selection.
type Availability struct {
	Variant         *upstream.Variant `json:"variant,omitempty"`
	Price           float64           `json:"price"`
	DiscountedPrice float64           `json:"discountedPrice"`
	Stock           int               `json:"stock"`
	OutOfStock      bool              `json:"outOfStock"`
	Images          []upstream.Image  `json:"images"`
}

// ResolveVariant returns the first variant whose attribute set matches every
// chosen group/value pair, or nil when the selection is empty or unmatched.
func ResolveVariant(variants []upstream.Variant, selected SelectedOptions) *upstream.Variant {
	if len(selected) == 0 {
		return nil
	}
	for i := range variants {
		attrs := make(map[string]string, len(variants[i].Attributes))
		for _, attr := range variants[i].Attributes {
			attrs[attr.GroupName] = attr.Value
		}
		matched := true
		for group, value := range selected {
			if attrs[group] != value {
				matched = false
				break
			}
		}
		if matched {
			return &variants[i]
		}
	}
	return nil
}

// ResolveAvailability derives price, stock and images for the current
// selection. A non-empty selection that matches no variant reports the
// product out of stock even when the base product has stock: the shopper is
// forced to land on an explicit, purchasable combination.
func ResolveAvailability(product *upstream.Product, selected SelectedOptions) Availability {
	if product == nil {
		return Availability{OutOfStock: true, Images: []upstream.Image{}}
	}

	availability := Availability{
		Price:           product.Price,
		DiscountedPrice: product.DiscountedPrice,
		Stock:           product.Stock,
		Images:          product.Images,
	}

	if len(selected) == 0 {
		availability.OutOfStock = product.Stock <= 0
		return availability
	}

	variant := ResolveVariant(product.Variants, selected)
	if variant == nil {
		availability.Stock = 0
		availability.OutOfStock = true
		return availability
	}

	availability.Variant = variant
	availability.Price = variant.Price
	availability.DiscountedPrice = variant.DiscountedPrice
	availability.Stock = variant.Stock
	availability.OutOfStock = variant.Stock <= 0
	if len(variant.Images) > 0 {
		availability.Images = variant.Images
	}
	return availability
}

// AttributeGroups flattens a product's variants into selectable axes for the
// option picker.
func AttributeGroups(product *upstream.Product) []AttributeGroup {
	if product == nil {
		return []AttributeGroup{}
	}

	order := []string{}
	values := map[string][]string{}
	seen := map[string]map[string]bool{}

	for _, variant := range product.Variants {
		for _, attr := range variant.Attributes {
			if attr.GroupName == "" || attr.Value == "" {
				continue
			}
			if _, ok := seen[attr.GroupName]; !ok {
				seen[attr.GroupName] = map[string]bool{}
				order = append(order, attr.GroupName)
			}
			if !seen[attr.GroupName][attr.Value] {
				seen[attr.GroupName][attr.Value] = true
				values[attr.GroupName] = append(values[attr.GroupName], attr.Value)
			}
		}
	}

	groups := make([]AttributeGroup, 0, len(order))
	for _, name := range order {
		groups = append(groups, AttributeGroup{GroupName: name, Values: values[name]})
	}
	return groups
}
