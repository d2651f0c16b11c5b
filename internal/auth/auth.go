// Package auth defines the authentication capability consumed by the
// rest of the client. It is always injected as an interface and
// constructed once during command wiring; nothing in this repository
// reaches for a package-level auth singleton.
package auth

import (
	"context"
	"errors"
)

// ErrNotAuthenticated is returned when no user session exists.
var ErrNotAuthenticated = errors.New("not authenticated")

// User is the authenticated account as reported by the collaborator.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"` // "customer" or "retailer"
}

// Gateway is the auth collaborator: email OTP login plus session
// introspection. Protocol internals live behind this interface.
type Gateway interface {
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) (*User, error)
	CurrentUser(ctx context.Context) (*User, error)
	Logout(ctx context.Context) error
}
