package domain

import "time"

// Contact is an address book entry owned by a single user. All access is
// scoped by UserID, so one user can never see or delete another's contacts.
type Contact struct {
	ID        int64
	UserID    int64
	Name      string
	Phone     string
	CreatedAt time.Time
}
