package domain

import "time"

type User struct {
	ID           string
	Username     string // unique, case-sensitive, immutable
	Email        string // unique
	PasswordHash string // argon2id encoded, never exposed
	Bio          string // optional profile text
	LastSeen     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
