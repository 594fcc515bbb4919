package domain

import "errors"

// Error taxonomy shared by all services. Handlers map these onto HTTP status
// codes with errors.Is, so service code wraps them via fmt.Errorf("%w: ...").
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)
