package model

import "time"

// User represents a staff account as stored in the `users` table.
// Accounts are created out-of-band (see cmd/createuser); the service
// itself only reads them during login.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
}

// Token models a row in the `tokens` table. Every successful login
// inserts one; a user may hold many concurrently valid tokens. Expired
// tokens are never deleted, only rejected at validation time.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  Token     – the signed JWT string handed to the client.
//  ExpiresAt – UTC expiration timestamp.
//  CreatedAt – timestamp of issuance.
type Token struct {
	ID        uint64    // tokens.id
	UserID    uint64    // tokens.user_id
	Token     string    // tokens.token
	ExpiresAt time.Time // tokens.expires_at
	CreatedAt time.Time // tokens.created_at
}
