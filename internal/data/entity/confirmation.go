package entity

import (
	"time"

	"github.com/google/uuid"
)

// Confirmation is a single-use signup code. Only the bcrypt hash of the
// code is stored.
type Confirmation struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	CodeHash  string    `db:"code_hash"`
	ExpiresAt time.Time `db:"expires_at"`
	IsUsed    bool      `db:"is_used"`
}
