package service

import (
	"context"

	"github.com/agendaapi/agenda/internal/agenda/domain"
	"github.com/agendaapi/agenda/internal/agenda/store"
)

// ContactService manages a user's address book. Every operation is scoped
// to the owner taken from the verified token, never from the request body.
type ContactService struct {
	Store store.Store
}

func (s *ContactService) Create(ctx context.Context, userID int64, name, phone string) (domain.Contact, error) {
	return s.Store.Contacts().CreateContact(ctx, userID, name, phone)
}

func (s *ContactService) List(ctx context.Context, userID int64) ([]domain.Contact, error) {
	return s.Store.Contacts().ListContactsByUser(ctx, userID)
}

// Delete removes the contact when it exists and belongs to userID,
// otherwise store.ErrNotFound.
func (s *ContactService) Delete(ctx context.Context, id, userID int64) error {
	return s.Store.Contacts().DeleteContact(ctx, id, userID)
}
