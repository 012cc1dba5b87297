package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atelierline/storefront-gateway/api/middleware"
	"github.com/atelierline/storefront-gateway/api/responses"
	"github.com/atelierline/storefront-gateway/api/validators"
	"github.com/atelierline/storefront-gateway/internal/accounts"
	pkgerrors "github.com/atelierline/storefront-gateway/pkg/errors"
	"github.com/atelierline/storefront-gateway/pkg/logger"
	"github.com/atelierline/storefront-gateway/pkg/upstream"
)

type profileUpdateRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Country string `json:"country"`
}

type addressRequest struct {
	Name      string `json:"name" validate:"required"`
	Phone     string `json:"phone"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pin       string `json:"pin" validate:"required"`
	IsDefault bool   `json:"isDefault"`
}

func Profile(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "accounts service unavailable"))
			return
		}

		profile, err := svc.Profile(r.Context(), middleware.TokenFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

func ProfileUpdate(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "accounts service unavailable"))
			return
		}

		var payload profileUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updates := map[string]any{}
		if payload.Name != "" {
			updates["name"] = payload.Name
		}
		if payload.Phone != "" {
			updates["phone"] = payload.Phone
		}
		if payload.Country != "" {
			updates["country"] = payload.Country
		}

		profile, err := svc.UpdateProfile(r.Context(), middleware.TokenFromContext(r.Context()), updates)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

func AddressList(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "accounts service unavailable"))
			return
		}

		addresses, err := svc.Addresses(r.Context(), middleware.TokenFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, addresses)
	}
}

func AddressCreate(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "accounts service unavailable"))
			return
		}

		var payload addressRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateAddress(r.Context(), middleware.TokenFromContext(r.Context()), toAddressInput(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AddressUpdate(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "accounts service unavailable"))
			return
		}

		var payload addressRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateAddress(r.Context(), middleware.TokenFromContext(r.Context()), chi.URLParam(r, "addressId"), toAddressInput(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AddressDelete(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "accounts service unavailable"))
			return
		}

		if err := svc.DeleteAddress(r.Context(), middleware.TokenFromContext(r.Context()), chi.URLParam(r, "addressId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

func AddressSetDefault(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "accounts service unavailable"))
			return
		}

		if err := svc.SetDefaultAddress(r.Context(), middleware.TokenFromContext(r.Context()), chi.URLParam(r, "addressId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"default": true})
	}
}

func toAddressInput(payload addressRequest) upstream.AddressInput {
	return upstream.AddressInput{
		Name:      payload.Name,
		Phone:     payload.Phone,
		Address:   payload.Address,
		City:      payload.City,
		State:     payload.State,
		Pin:       payload.Pin,
		IsDefault: payload.IsDefault,
	}
}
