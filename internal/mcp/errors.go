package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/fleetview/internal/domain/driver"
	"github.com/rpggio/fleetview/internal/domain/maintenance"
	"github.com/rpggio/fleetview/internal/domain/vehicle"
	"github.com/rpggio/fleetview/internal/listview"
	"github.com/rpggio/fleetview/internal/recordsource"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
	cause        error
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, listview.ErrInvalidConfiguration):
		return &APIError{Code: "INVALID_CONFIGURATION", Message: err.Error(), RecoveryHint: "Retry with page 1 and a positive pageSize", cause: err}
	case errors.Is(err, maintenance.ErrInvalidLimit):
		return &APIError{Code: "INVALID_LIMIT", Message: err.Error(), RecoveryHint: "Use a positive limit", cause: err}
	case errors.Is(err, vehicle.ErrVehicleNotFound),
		errors.Is(err, driver.ErrDriverNotFound),
		errors.Is(err, maintenance.ErrRecordNotFound):
		return &APIError{Code: "NOT_FOUND", Message: err.Error(), RecoveryHint: "Check ID spelling", cause: err}
	case errors.Is(err, recordsource.ErrUnavailable):
		return &APIError{Code: "SOURCE_UNAVAILABLE", Message: err.Error(), RecoveryHint: "Retry later", cause: err}
	default:
		return nil
	}
}

func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
