package request

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a service request. Transitions
// are one-directional: a pending request moves to exactly one of the
// terminal states and stays there.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusClosed   Status = "closed"
)

// autoCloseResponses is the number of provider responses after which a
// pending request is closed automatically.
const autoCloseResponses = 5

func (s Status) valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusClosed:
		return true
	}

	return false
}

// Terminal reports whether s is a sink state.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusClosed
}

// CanTransition reports whether the FSM permits moving from s to next.
func (s Status) CanTransition(next Status) bool {
	return s == StatusPending && next.Terminal()
}

// Request represents a customer's service request.
type Request struct {
	ID                uuid.UUID
	CustomerName      string
	CustomerEmail     string
	CustomerPhone     string
	ServiceName       string
	ProviderName      string
	ScheduledAt       time.Time
	Status            Status
	ProviderResponses int
	Review            string
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}
