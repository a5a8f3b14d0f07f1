package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidProfile     = errors.New("invalid profile")
	ErrForbidden          = errors.New("forbidden")

	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrOrderPersistence     = errors.New("order could not be created")
	ErrChannelUnavailable   = errors.New("channel unavailable")
	ErrSubmissionInProgress = errors.New("submission already in progress")
	ErrUnknownChannel       = errors.New("unknown channel")

	ErrInvalidStatus   = errors.New("invalid order status")
	ErrInvalidQuantity = errors.New("invalid quantity")
)
