package ports

import (
	"context"
	"time"
)

// AccountNotifier delivers account-lifecycle emails. Implementations are
// asynchronous: the user record is already persisted when these run, and a
// delivery failure must never unwind the request that queued it.
type AccountNotifier interface {
	SendVerification(email, token string, expires time.Time)
	SendPasswordReset(email, token string, expires time.Time)
}

// Mailer is the blocking transport underneath the notifier. Send must honor
// ctx for its timeout.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
