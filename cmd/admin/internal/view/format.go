package view

import (
	"context"
	"time"

	"github.com/iconnecthq/iconnect/internal/auth"
)

const dbTimeout = 5 * time.Second

var operator auth.Identity

// SetOperator records the identity the TUI acts as. Every database
// context carries it, so the services see the same admin claim they
// would on an HTTP request.
func SetOperator(id auth.Identity) {
	operator = id
}

// DbCtx returns a context with a standard timeout for database operations,
// authenticated as the operator.
func DbCtx() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	return auth.WithIdentity(ctx, operator), cancel
}

// FormatTime formats a time.Time into YYYY-MM-DD HH:MM.
func FormatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// ShortID renders the first segment of a UUID, enough to tell rows apart.
func ShortID(s string) string {
	if len(s) > 8 {
		return s[:8]
	}

	return s
}
