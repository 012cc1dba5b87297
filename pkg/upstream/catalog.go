package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	pkgerrors "github.com/atelierline/storefront-gateway/pkg/errors"
)

// ListProducts fetches the full storefront catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.callData(ctx, http.MethodGet, "list_products", "/fileUpload/getallproductforcategory", "", nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	for i := range products {
		products[i].normalize()
	}
	return products, nil
}

// GetProduct fetches a single product document by id.
func (c *Client) GetProduct(ctx context.Context, productID string) (*Product, error) {
	trimmed := strings.TrimSpace(productID)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	var product Product
	path := "/fileUpload/getSingleProductById/" + url.PathEscape(trimmed)
	if err := c.callData(ctx, http.MethodGet, "get_product", path, "", nil, &product); err != nil {
		return nil, err
	}
	if product.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	product.normalize()
	return &product, nil
}
