package lead

import (
	"time"

	"github.com/google/uuid"
)

// Lead is a sellable sales opportunity. Its buyer set grows monotonically:
// buyers are added on purchase and never removed, and a buyer appears at
// most once.
type Lead struct {
	ID           uuid.UUID
	Title        string
	Description  string
	ServiceName  string
	ContactEmail string
	ContactPhone string
	Cost         int64
	Buyers       []uuid.UUID
	CreatedAt    time.Time
}
