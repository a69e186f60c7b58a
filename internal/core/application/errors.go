package application

import "errors"

var (
	// ErrUnauthorized is returned when the caller is not allowed to run the
	// requested operation.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrFactoryStopped is returned when creating an auction while halted.
	ErrFactoryStopped = errors.New("the factory has been stopped")
	// ErrAuthenticationFailed is the only message surfaced on a failed query
	// authentication. It must not distinguish a wrong key from a missing one.
	ErrAuthenticationFailed = errors.New(
		"wrong viewing key for this address or viewing key not set",
	)
	// ErrMissingAddress ...
	ErrMissingAddress = errors.New("address must not be null")
	// ErrMissingViewingKey ...
	ErrMissingViewingKey = errors.New("viewing key must not be null")
	// ErrMissingEntropy ...
	ErrMissingEntropy = errors.New("entropy must not be null")
	// ErrInvalidFilter ...
	ErrInvalidFilter = errors.New("filter must be one of active, closed or all")
	// ErrSameToken is returned when creating an auction selling and bidding
	// the same token.
	ErrSameToken = errors.New("sell and bid tokens must differ")
	// ErrMissingTokenInfo ...
	ErrMissingTokenInfo = errors.New("token contract info must not be null")
	// ErrInvalidWebhookAction ...
	ErrInvalidWebhookAction = errors.New("webhook action is not supported")
	// ErrMissingWebhookEndpoint ...
	ErrMissingWebhookEndpoint = errors.New("webhook endpoint must not be null")
)
