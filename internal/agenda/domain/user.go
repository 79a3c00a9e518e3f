package domain

import "time"

// User is a registered account. PasswordHash is the Argon2id PHC string,
// never the plaintext.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
