package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/agendaapi/agenda/internal/agenda/domain"
	"github.com/agendaapi/agenda/internal/agenda/store"
)

// fakeStore is an in-memory store.Store good enough for service tests.
type fakeStore struct {
	mu sync.Mutex

	users      map[int64]domain.User
	contacts   map[int64]domain.Contact
	nextUserID int64
	nextID     int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[int64]domain.User),
		contacts:   make(map[int64]domain.Contact),
		nextUserID: 1,
		nextID:     1,
	}
}

func (f *fakeStore) Users() store.Users       { return (*fakeUsers)(f) }
func (f *fakeStore) Contacts() store.Contacts { return (*fakeContacts)(f) }
func (f *fakeStore) ApplyMigrations() error   { return nil }
func (f *fakeStore) Ping(context.Context) error {
	return nil
}
func (f *fakeStore) Close() error { return nil }

type fakeUsers fakeStore

func (f *fakeUsers) CreateUser(_ context.Context, username, passwordHash string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Username == username {
			return domain.User{}, store.ErrAlreadyExists
		}
	}
	u := domain.User{ID: f.nextUserID, Username: username, PasswordHash: passwordHash, CreatedAt: time.Now()}
	f.users[u.ID] = u
	f.nextUserID++
	return u, nil
}

func (f *fakeUsers) GetUserByUsername(_ context.Context, username string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, store.ErrNotFound
}

func (f *fakeUsers) GetUserByID(_ context.Context, id int64) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) UpdatePasswordHash(_ context.Context, userID int64, newHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.PasswordHash = newHash
	f.users[userID] = u
	return nil
}

type fakeContacts fakeStore

func (f *fakeContacts) CreateContact(_ context.Context, userID int64, name, phone string) (domain.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := domain.Contact{ID: f.nextID, UserID: userID, Name: name, Phone: phone, CreatedAt: time.Now()}
	f.contacts[c.ID] = c
	f.nextID++
	return c, nil
}

func (f *fakeContacts) ListContactsByUser(_ context.Context, userID int64) ([]domain.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.Contact, 0)
	for _, c := range f.contacts {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeContacts) DeleteContact(_ context.Context, id, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.contacts[id]
	if !ok || c.UserID != userID {
		return store.ErrNotFound
	}
	delete(f.contacts, id)
	return nil
}
