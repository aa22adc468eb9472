package domain

import "errors"

// Common domain errors
var (
	ErrCardNotFound      = errors.New("card not found")
	ErrActiveCardExists  = errors.New("an active card already exists for this national id")
	ErrCardNumberTaken   = errors.New("generated card number already exists")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrInvalidStatus     = errors.New("invalid card status")
	ErrInvalidCardType   = errors.New("invalid card type")
	ErrInvalidInput      = errors.New("invalid input")
	ErrConcurrentUpdate  = errors.New("card was modified concurrently")
)
