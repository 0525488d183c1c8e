// Package ledger implements the credit ledger: the four guarded mutations
// (approve request, reject request, adjust credits, purchase lead) and the
// append-only audit log every one of them writes to.
package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Action identifies the kind of mutation an audit entry records.
type Action string

const (
	ActionApproveRequest Action = "approve_request"
	ActionRejectRequest  Action = "reject_request"
	ActionAdjustCredits  Action = "adjust_credits"
	ActionPurchaseLead   Action = "purchase_lead"
)

// Entry is one audit record. Entries are append-only; nothing in the
// system mutates or deletes them.
type Entry struct {
	ID        uuid.UUID
	ActorID   uuid.UUID
	Action    Action
	SubjectID uuid.UUID
	Amount    *int64
	CreatedAt time.Time
}

// DefaultLeadCost is charged for leads whose cost was never set.
const DefaultLeadCost int64 = 1
