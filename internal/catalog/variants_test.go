package catalog

import (
	"testing"

	"github.com/atelierline/storefront-gateway/pkg/upstream"
)

func sampleProduct() *upstream.Product {
	return &upstream.Product{
		ID:              "p1",
		Title:           "Leather Bag",
		Price:           1500,
		DiscountedPrice: 1200,
		Stock:           7,
		Variants: []upstream.Variant{
			{
				ID:    "v-red-s",
				Price: 1600,
				Stock: 2,
				Attributes: []upstream.VariantAttribute{
					{GroupName: "color", Value: "red"},
					{GroupName: "size", Value: "S"},
				},
			},
			{
				ID:              "v-red-m",
				Price:           1700,
				DiscountedPrice: 1400,
				Stock:           0,
				Attributes: []upstream.VariantAttribute{
					{GroupName: "color", Value: "red"},
					{GroupName: "size", Value: "M"},
				},
			},
			{
				ID:    "v-blue-m",
				Price: 1800,
				Stock: 5,
				Attributes: []upstream.VariantAttribute{
					{GroupName: "color", Value: "blue"},
					{GroupName: "size", Value: "M"},
				},
			},
		},
		Ratings: 4.5,
		Reviews: []upstream.Review{
			{ID: "r1", Name: "Asha", Rating: 5, Comment: "lovely"},
		},
	}
}

func TestResolveVariantExactMatch(t *testing.T) {
	product := sampleProduct()

	variant := ResolveVariant(product.Variants, SelectedOptions{"color": "red", "size": "M"})
	if variant == nil || variant.ID != "v-red-m" {
		t.Fatalf("expected v-red-m, got %+v", variant)
	}
}

func TestResolveVariantPartialSelectionMatchesFirstSuperset(t *testing.T) {
	product := sampleProduct()

	variant := ResolveVariant(product.Variants, SelectedOptions{"color": "red"})
	if variant == nil || variant.ID != "v-red-s" {
		t.Fatalf("expected first red variant, got %+v", variant)
	}
}

func TestResolveVariantEmptySelection(t *testing.T) {
	product := sampleProduct()

	if variant := ResolveVariant(product.Variants, SelectedOptions{}); variant != nil {
		t.Fatalf("expected nil variant for empty selection, got %+v", variant)
	}
	if variant := ResolveVariant(product.Variants, nil); variant != nil {
		t.Fatalf("expected nil variant for nil selection, got %+v", variant)
	}
}

func TestResolveAvailabilityUnmatchedSelectionForcesOutOfStock(t *testing.T) {
	product := sampleProduct()

	// Base product has stock, but the chosen combination does not exist.
	availability := ResolveAvailability(product, SelectedOptions{"color": "blue", "size": "S"})
	if !availability.OutOfStock {
		t.Fatal("expected out of stock for unmatched selection")
	}
	if availability.Stock != 0 {
		t.Fatalf("expected zero stock, got %d", availability.Stock)
	}
	if availability.Variant != nil {
		t.Fatalf("expected no variant, got %+v", availability.Variant)
	}
}

func TestResolveAvailabilityEmptySelectionUsesBaseProduct(t *testing.T) {
	product := sampleProduct()

	availability := ResolveAvailability(product, nil)
	if availability.OutOfStock {
		t.Fatal("expected in stock from base product")
	}
	if availability.Price != 1500 || availability.DiscountedPrice != 1200 {
		t.Fatalf("expected base pricing, got %+v", availability)
	}
	if availability.Stock != 7 {
		t.Fatalf("expected base stock, got %d", availability.Stock)
	}
}

func TestResolveAvailabilityMatchedVariantDrivesStock(t *testing.T) {
	product := sampleProduct()

	availability := ResolveAvailability(product, SelectedOptions{"color": "red", "size": "M"})
	if availability.Variant == nil || availability.Variant.ID != "v-red-m" {
		t.Fatalf("expected v-red-m, got %+v", availability.Variant)
	}
	if !availability.OutOfStock {
		t.Fatal("expected out of stock: matched variant has zero stock")
	}
	if availability.Price != 1700 || availability.DiscountedPrice != 1400 {
		t.Fatalf("expected variant pricing, got %+v", availability)
	}
}

func TestAttributeGroupsPreserveOrder(t *testing.T) {
	product := sampleProduct()

	groups := AttributeGroups(product)
	if len(groups) != 2 {
		t.Fatalf("expected two groups, got %+v", groups)
	}
	if groups[0].GroupName != "color" || groups[1].GroupName != "size" {
		t.Fatalf("unexpected group order %+v", groups)
	}
	if len(groups[0].Values) != 2 || groups[0].Values[0] != "red" || groups[0].Values[1] != "blue" {
		t.Fatalf("unexpected color values %+v", groups[0].Values)
	}
	if len(groups[1].Values) != 2 || groups[1].Values[0] != "S" || groups[1].Values[1] != "M" {
		t.Fatalf("unexpected size values %+v", groups[1].Values)
	}
}
