package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/atelierline/storefront-gateway/pkg/errors"
)

// ParseQueryInt reads an integer query parameter, returning defaultVal when
// absent and a validation error when non-numeric or out of range.
func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseSelectedOptions reads the variant selection from repeated "opt" query
// values shaped as group:value.
func ParseSelectedOptions(r *http.Request) (map[string]string, error) {
	raw := r.URL.Query()["opt"]
	if len(raw) == 0 {
		return nil, nil
	}
	selected := make(map[string]string, len(raw))
	for _, pair := range raw {
		group, value, ok := strings.Cut(pair, ":")
		group = strings.TrimSpace(group)
		value = strings.TrimSpace(value)
		if !ok || group == "" || value == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "opt must be group:value").WithDetails(map[string]any{"opt": pair})
		}
		selected[group] = value
	}
	return selected, nil
}
