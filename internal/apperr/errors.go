// Package apperr defines the sentinel errors shared across the request
// workflows. Handlers pick the user-facing message with errors.Is.
package apperr

import "errors"

var (
	// ErrDuplicateUsername is returned when registering an already-taken
	// username.
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrAuthentication covers both unknown-user and wrong-password; the
	// two cases are never distinguished to callers.
	ErrAuthentication = errors.New("invalid username or password")

	// ErrEmptyMarketData is returned when the provider has no price series
	// for a symbol (unknown or delisted).
	ErrEmptyMarketData = errors.New("no market data for symbol")

	// ErrTransport covers network and provider-side failures.
	ErrTransport = errors.New("market data provider unreachable")

	// ErrValidation covers malformed form input.
	ErrValidation = errors.New("invalid form input")
)
