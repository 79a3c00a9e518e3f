package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agendaapi/agenda/internal/agenda/store"
)

// Store is the PostgreSQL implementation of store.Store, backed by a
// pgx connection pool shared by the sub-repositories.
type Store struct {
	pool *pgxpool.Pool
	dsn  string

	users    *usersRepo
	contacts *contactsRepo
}

var _ store.Store = (*Store)(nil)

// Open connects to the database and verifies the connection before
// returning. Migrations are not applied here, call ApplyMigrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{pool: pool, dsn: dsn}
	s.users = &usersRepo{pool: pool}
	s.contacts = &contactsRepo{pool: pool}
	return s, nil
}

func (s *Store) Users() store.Users       { return s.users }
func (s *Store) Contacts() store.Contacts { return s.contacts }

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
