package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agendaapi/agenda/internal/agenda/domain"
	"github.com/agendaapi/agenda/internal/agenda/store"
)

type contactsRepo struct {
	pool *pgxpool.Pool
}

var _ store.Contacts = (*contactsRepo)(nil)

func (r *contactsRepo) CreateContact(ctx context.Context, userID int64, name, phone string) (domain.Contact, error) {
	const q = `
		INSERT INTO contacts (user_id, name, phone)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, name, phone, created_at`

	var c domain.Contact
	err := r.pool.QueryRow(ctx, q, userID, name, phone).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.CreatedAt)
	if err != nil {
		return domain.Contact{}, fmt.Errorf("create contact: %w", err)
	}
	return c, nil
}

func (r *contactsRepo) ListContactsByUser(ctx context.Context, userID int64) ([]domain.Contact, error) {
	const q = `
		SELECT id, user_id, name, phone, created_at
		FROM contacts
		WHERE user_id = $1
		ORDER BY id DESC`

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]domain.Contact, 0)
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

func (r *contactsRepo) DeleteContact(ctx context.Context, id, userID int64) error {
	// Ownership is enforced in the predicate so a foreign contact looks
	// exactly like a missing one.
	const q = `DELETE FROM contacts WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, q, id, userID)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
