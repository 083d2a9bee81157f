package flight

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoOffersAvailable means the merge produced nothing, either because every provider
	// failed or because none of them had offers.
	ErrNoOffersAvailable = errors.New("no offers available")
	ErrUnknownProvider   = errors.New("unknown provider")
	ErrOfferNotFound     = errors.New("offer not found")
)

// ProviderError wraps a single adapter's failure. Code is ErrorCodeTimeout when the
// adapter ran out of time or was cancelled, ErrorCodeProviderFailure otherwise.
type ProviderError struct {
	ProviderID ProviderID
	Provider   string
	Code       ErrorCode
	Err        error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Code, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Timeout() bool {
	return e.Code == ErrorCodeTimeout
}

func newProviderError(p Provider, err error) *ProviderError {
	code := ErrorCodeProviderFailure
	if isContextErr(err) {
		code = ErrorCodeTimeout
	}
	return &ProviderError{
		ProviderID: p.ID(),
		Provider:   p.Name(),
		Code:       code,
		Err:        err,
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// AppError is what the HTTP layer renders.
type AppError struct {
	Status  int
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(err error) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    ErrorCodeValidation,
		Message: err.Error(),
		Err:     err,
	}
}

// toAppError translates core outcomes into transport status codes.
func toAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrNoOffersAvailable) && errors.Is(err, context.DeadlineExceeded):
		return &AppError{Status: http.StatusGatewayTimeout, Code: ErrorCodeTimeout, Message: "providers did not respond in time", Err: err}
	case errors.Is(err, ErrNoOffersAvailable):
		return &AppError{Status: http.StatusNotFound, Code: ErrorCodeNoOffers, Message: "no offers available", Err: err}
	case errors.Is(err, ErrUnknownProvider):
		return &AppError{Status: http.StatusNotFound, Code: ErrorCodeUnknownProvider, Message: err.Error(), Err: err}
	case errors.Is(err, ErrOfferNotFound):
		return &AppError{Status: http.StatusNotFound, Code: ErrorCodeOfferNotFound, Message: err.Error(), Err: err}
	case isContextErr(err):
		return &AppError{Status: http.StatusGatewayTimeout, Code: ErrorCodeTimeout, Message: "provider did not respond in time", Err: err}
	}

	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return &AppError{Status: http.StatusBadGateway, Code: ErrorCodeProviderFailure, Message: "provider request failed", Err: err}
	}

	return &AppError{Status: http.StatusInternalServerError, Code: ErrorCodeInternalFailure, Message: "Internal Server Error", Err: err}
}
