// Package catalog manages the two admin-maintained tables: the service
// providers and the services they can be booked for.
package catalog

import (
	"time"

	"github.com/google/uuid"
)

type Provider struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	Specialty string
	Active    bool
	CreatedAt time.Time
}

type Offering struct {
	ID          uuid.UUID
	Name        string
	Description string
	PriceCents  int64
	Category    string
	Active      bool
	CreatedAt   time.Time
}
