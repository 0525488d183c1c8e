package account

import (
	"time"

	"github.com/google/uuid"
)

// Account holds a user's identity, role, and credit balance. Accounts are
// created by the seed tooling or an external signup flow; the ledger only
// ever mutates the balance.
type Account struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Role      string
	Credits   int64
	Admin     bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}
