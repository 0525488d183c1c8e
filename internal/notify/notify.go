// Package notify reacts to service-request status changes. It fires
// at-most-once per write that changed the status; unchanged writes never
// reach it.
package notify

import (
	"context"
	"log/slog"

	"github.com/iconnecthq/iconnect/internal/request"
)

// Mailer sends the customer-facing notification.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Notifier struct {
	mailer Mailer
}

func New(mailer Mailer) *Notifier {
	return &Notifier{mailer: mailer}
}

// StatusChanged logs the transition and notifies the requester. Send
// failures are logged and swallowed; the status write has already happened
// and must not be reported as failed.
func (n *Notifier) StatusChanged(ctx context.Context, req *request.Request, old request.Status) {
	slog.Info("service request status changed",
		"request_id", req.ID,
		"old_status", old,
		"new_status", req.Status,
	)

	if req.CustomerEmail == "" {
		return
	}

	subject := "Your service request was updated"
	body := "Your request for " + req.ServiceName + " is now " + string(req.Status) + "."

	if err := n.mailer.Send(ctx, req.CustomerEmail, subject, body); err != nil {
		slog.Error("failed to send status notification",
			"request_id", req.ID,
			"error", err,
		)
	}
}

// LogMailer is the development mailer: it only records the send it would
// have performed.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, _ string) error {
	slog.Info("simulating email send", "to", to, "subject", subject)
	return nil
}
