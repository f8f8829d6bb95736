package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/pmlite/pmlite/internal/constants"
	pmerrors "github.com/pmlite/pmlite/internal/errors"
)

// Session holds the persisted login state.
type Session struct {
	Email         string
	Authenticated bool
}

// Login checks the credential pair and records the session. There is a
// single hardcoded demo account; this is a convenience gate, not a
// security boundary.
func (s *Store) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("email and password: %w", pmerrors.ErrEmptyValue)
	}
	if email != constants.DemoEmail || password != constants.DemoPassword {
		return pmerrors.ErrInvalidCredentials
	}
	if err := s.kv.Set(ctx, constants.KeyUserEmail, email); err != nil {
		return err
	}
	return s.kv.Set(ctx, constants.KeyIsAuthenticated, "true")
}

// Logout clears the session keys. Logging out while already logged out
// is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.kv.Remove(ctx, constants.KeyIsAuthenticated); err != nil {
		return err
	}
	return s.kv.Remove(ctx, constants.KeyUserEmail)
}

// Session returns the current login state. Absent keys mean logged out.
func (s *Store) Session(ctx context.Context) (Session, error) {
	var session Session

	auth, err := s.kv.Get(ctx, constants.KeyIsAuthenticated)
	if err != nil {
		if errors.Is(err, pmerrors.ErrKeyNotFound) {
			return session, nil
		}
		return session, err
	}
	session.Authenticated = auth == "true"

	email, err := s.kv.Get(ctx, constants.KeyUserEmail)
	if err != nil {
		if errors.Is(err, pmerrors.ErrKeyNotFound) {
			return session, nil
		}
		return session, err
	}
	session.Email = email
	return session, nil
}
