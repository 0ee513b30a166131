package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/afrifa-micro/banking-core/internal/models"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

// statusFor maps domain errors to HTTP status codes; anything unrecognized is
// treated as a storage failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrCustomerNotFound), errors.Is(err, models.ErrNoAccount):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateCustomer), errors.Is(err, models.ErrAccountExists):
		return http.StatusConflict
	case errors.Is(err, models.ErrMissingField),
		errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrEmptyBatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
