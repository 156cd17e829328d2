package service

import "errors"

var (
	ErrValidation           = errors.New("validation failed")
	ErrAuthentication       = errors.New("authentication failed")
	ErrCartEmpty            = errors.New("cart is empty")
	ErrMissingRoutingNumber = errors.New("restaurant whatsapp number is not configured")
)
