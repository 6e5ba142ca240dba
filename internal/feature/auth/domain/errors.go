// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// ErrInvalidCredentials indicates that the provided credentials are incorrect.
// Login returns it for both an unknown email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")
