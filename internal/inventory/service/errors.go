package service

import (
	"errors"
)

// Business-rule failures surfaced to the HTTP boundary. Handlers map these
// to stable machine-readable kinds; anything else is a persistence error.
var (
	ErrValidation           = errors.New("validation error")
	ErrMaterialNotFound     = errors.New("material not found")
	ErrLotNotFound          = errors.New("lot not found")
	ErrInsufficientQuantity = errors.New("insufficient quantity available")
	ErrInvalidStatus        = errors.New("invalid lot status")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrForbidden            = errors.New("insufficient permissions")
)
