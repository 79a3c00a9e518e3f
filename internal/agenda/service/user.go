package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agendaapi/agenda/internal/agenda/denylist"
	"github.com/agendaapi/agenda/internal/agenda/domain"
	"github.com/agendaapi/agenda/internal/agenda/store"
	"github.com/agendaapi/agenda/pkg/cryptox"
	"github.com/agendaapi/agenda/pkg/jwtx"
)

var (
	// ErrInvalidCredentials covers both unknown username and wrong password,
	// so login responses never reveal which one it was.
	ErrInvalidCredentials = errors.New("service: invalid credentials")

	// ErrWrongPassword means the current password check failed during a
	// password change.
	ErrWrongPassword = errors.New("service: wrong password")
)

// UserService implements account registration, login, logout and password
// changes.
type UserService struct {
	Store    store.Store
	Codec    *jwtx.Codec
	Denylist denylist.Store

	// RevokeOnPasswordChange controls whether the token used to authorize
	// a password change is revoked once the change succeeds.
	RevokeOnPasswordChange bool
}

// Register creates a new account. The password is hashed before it ever
// reaches the store. A taken username surfaces as store.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, password string) (domain.User, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.Store.Users().CreateUser(ctx, username, hash)
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Login verifies the credentials and issues a fresh access token. Unknown
// usernames and wrong passwords both come back as ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return "", ErrInvalidCredentials
		}
		// Stored hash is unreadable. That is corruption, not a bad login.
		return "", fmt.Errorf("verify password: %w", err)
	}

	token, _, err := s.Codec.Issue(user.ID, user.Username, time.Now())
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Logout revokes the presented token for the remainder of its lifetime.
// A token that already expired needs no denylist entry.
func (s *UserService) Logout(ctx context.Context, token string, claims *jwtx.Claims) error {
	ttl := claims.TTLRemaining(time.Now())
	if err := s.Denylist.Revoke(ctx, denylist.Digest(token), ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// ChangePassword swaps the account's password after checking the current
// one. When RevokeOnPasswordChange is set, the authorizing token is revoked
// as well, forcing a fresh login.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword, token string, claims *jwtx.Claims) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := cryptox.VerifyPassword(oldPassword, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return ErrWrongPassword
		}
		return fmt.Errorf("verify password: %w", err)
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}

	if s.RevokeOnPasswordChange {
		ttl := claims.TTLRemaining(time.Now())
		if err := s.Denylist.Revoke(ctx, denylist.Digest(token), ttl); err != nil {
			return fmt.Errorf("revoke token: %w", err)
		}
	}
	return nil
}
