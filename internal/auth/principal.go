package auth

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Principal is the identity attached to a request once its bearer token
// has been verified and the user re-resolved from the store.
type Principal struct {
	UserID  string
	Email   string
	IsAdmin bool
}
