package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpggio/fleetview/internal/domain/driver"
	"github.com/rpggio/fleetview/internal/domain/maintenance"
	"github.com/rpggio/fleetview/internal/domain/vehicle"
	"github.com/rpggio/fleetview/internal/listview"
	"github.com/rpggio/fleetview/internal/recordsource"
	"github.com/rpggio/fleetview/internal/repository"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	// FallbackPage is the page a client should retry with after a rejected configuration.
	FallbackPage int `json:"fallbackPage,omitempty"`
}

// StatusFor maps a service error to an HTTP status and error code.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, listview.ErrInvalidConfiguration):
		return http.StatusBadRequest, "invalid_configuration"
	case errors.Is(err, maintenance.ErrInvalidLimit):
		return http.StatusBadRequest, "invalid_limit"
	case errors.Is(err, vehicle.ErrVehicleNotFound),
		errors.Is(err, driver.ErrDriverNotFound),
		errors.Is(err, maintenance.ErrRecordNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, recordsource.ErrUnavailable):
		return http.StatusBadGateway, "source_unavailable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// WriteError writes err as an ErrorResponse.
func WriteError(w http.ResponseWriter, err error) {
	status, code := StatusFor(err)
	resp := ErrorResponse{Error: err.Error(), Code: code}
	if status == http.StatusBadRequest {
		resp.FallbackPage = 1
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
