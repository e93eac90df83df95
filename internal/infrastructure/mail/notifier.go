package mail

import (
	"fmt"
	"time"

	"github.com/spar-shoe/storefront-api/internal/infrastructure/queue"
)

// Links carries the base URLs the emails embed. The verification link points
// back at this API; the reset link points at the storefront frontend, which
// collects the new password and posts it here.
type Links struct {
	APIBaseURL string
	AppBaseURL string
}

// Notifier composes account emails and hands them to the queue dispatcher.
// It implements ports.AccountNotifier; callers return to the client as soon
// as the job is enqueued.
type Notifier struct {
	dispatcher *queue.Dispatcher
	links      Links
}

func NewNotifier(dispatcher *queue.Dispatcher, links Links) *Notifier {
	return &Notifier{dispatcher: dispatcher, links: links}
}

func (n *Notifier) SendVerification(email, token string, _ time.Time) {
	link := fmt.Sprintf("%s/auth/verify-email/%s", n.links.APIBaseURL, token)
	n.dispatcher.Enqueue(queue.Notification{
		To:       email,
		Subject:  "Verify your email for Spar-Shoe",
		HTMLBody: verificationBody(link),
	})
}

func (n *Notifier) SendPasswordReset(email, token string, _ time.Time) {
	link := fmt.Sprintf("%s/reset-password/%s", n.links.AppBaseURL, token)
	n.dispatcher.Enqueue(queue.Notification{
		To:       email,
		Subject:  "Password reset request",
		HTMLBody: resetBody(link),
	})
}
