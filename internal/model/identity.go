package model

import "time"

// IdentityID uniquely identifies a user account across the system
type IdentityID string

// Identity represents a registered user account usable for ownership checks
type Identity struct {
	ID        IdentityID
	Username  string // display handle, unique
	CreatedAt time.Time
}

// Credential holds the authentication secret for an identity
// Stored separately so the hash never travels with the identity
type Credential struct {
	IdentityID   IdentityID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash, salt embedded in the derivation
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
