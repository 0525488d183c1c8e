package ledger

import (
	"time"

	"github.com/iconnecthq/iconnect/internal/ledger"
)

type entryResponse struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actorId"`
	Action    string    `json:"action"`
	SubjectID string    `json:"subjectId"`
	Amount    *int64    `json:"amount,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toEntryList(entries []*ledger.Entry) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryResponse{
			ID:        e.ID.String(),
			ActorID:   e.ActorID.String(),
			Action:    string(e.Action),
			SubjectID: e.SubjectID.String(),
			Amount:    e.Amount,
			CreatedAt: e.CreatedAt,
		})
	}

	return out
}
