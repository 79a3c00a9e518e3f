package store

import (
	"context"
	"errors"

	"github.com/agendaapi/agenda/internal/agenda/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Contacts() Contacts

	ApplyMigrations() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	// Close releases the underlying connection pool.
	Close() error
}

type Users interface {
	// CreateUser inserts a new user and returns it with the generated id.
	// A username collision surfaces as ErrAlreadyExists.
	CreateUser(ctx context.Context, username, passwordHash string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByID fetches a user by id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// UpdatePasswordHash sets the password_hash (argon2id PHC string).
	UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error
}

type Contacts interface {
	// CreateContact inserts a contact owned by userID and returns it with
	// the generated id.
	CreateContact(ctx context.Context, userID int64, name, phone string) (domain.Contact, error)

	// ListContactsByUser returns the user's contacts, newest first.
	ListContactsByUser(ctx context.Context, userID int64) ([]domain.Contact, error)

	// DeleteContact removes a contact only when it belongs to userID.
	// A missing or foreign contact surfaces as ErrNotFound.
	DeleteContact(ctx context.Context, id, userID int64) error
}
