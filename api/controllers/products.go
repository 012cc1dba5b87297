package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atelierline/storefront-gateway/api/responses"
	"github.com/atelierline/storefront-gateway/api/validators"
	"github.com/atelierline/storefront-gateway/internal/catalog"
	pkgerrors "github.com/atelierline/storefront-gateway/pkg/errors"
	"github.com/atelierline/storefront-gateway/pkg/logger"
	"github.com/atelierline/storefront-gateway/pkg/upstream"
)

// maxProductPage caps how many products a single listing response carries.
const maxProductPage = 500

// ProductList serves the catalog, optionally filtered by category and
// sub-category query parameters and capped by an optional limit.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, maxProductPage)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category := r.URL.Query().Get("category")
		subCategory := r.URL.Query().Get("subCategory")

		var products []upstream.Product
		if category == "" && subCategory == "" {
			products, err = svc.List(r.Context())
		} else {
			products, err = svc.ListByCategory(r.Context(), category, subCategory)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, capProducts(products, limit))
	}
}

// ProductSearch filters the catalog by title substring.
func ProductSearch(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, maxProductPage)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, capProducts(products, limit))
	}
}

func capProducts(products []upstream.Product, limit int) []upstream.Product {
	if limit > 0 && len(products) > limit {
		return products[:limit]
	}
	return products
}

// ProductDetail serves a single product with its option groups and the
// availability derived from the submitted selection.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		selected, err := validators.ParseSelectedOptions(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Detail(r.Context(), chi.URLParam(r, "productId"), selected)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}
