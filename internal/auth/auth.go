// Package auth identifies the learner on whose behalf the engine runs. The
// engine consults identity only for the session's learner id; host systems
// supply implementations backed by their own auth flows.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// Provider is the identity provider a user authenticated with.
type Provider string

const (
	ProviderGoogle    Provider = "google"
	ProviderGitHub    Provider = "github"
	ProviderMicrosoft Provider = "microsoft"
)

// User is an authenticated learner.
type User struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     *string   `json:"name,omitempty"`
	Provider Provider  `json:"provider"`
}

// Identity resolves the user the current operation runs as.
type Identity interface {
	CurrentUser(ctx context.Context) (*User, error)
}

// Static is an Identity that always returns the same user. Useful for
// single-user hosts and tests.
type Static struct {
	User User
}

// NewStatic creates a Static identity for the given user.
func NewStatic(u User) *Static {
	return &Static{User: u}
}

// CurrentUser returns a copy of the fixed user.
func (s *Static) CurrentUser(ctx context.Context) (*User, error) {
	u := s.User
	return &u, nil
}
