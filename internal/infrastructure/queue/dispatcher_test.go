package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordingMailer struct {
	mu       sync.Mutex
	sent     []string
	failures int
}

func (m *recordingMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failures > 0 {
		m.failures--
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, to)
	return nil
}

func (m *recordingMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

func TestDispatcher_Delivers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := &recordingMailer{}
	d := NewDispatcher(2, mailer, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(Notification{To: "a@x.com", Subject: "hi", HTMLBody: "<p>hi</p>"})
	d.Enqueue(Notification{To: "b@x.com", Subject: "hi", HTMLBody: "<p>hi</p>"})

	waitFor(t, func() bool { return mailer.sentCount() == 2 })
}

func TestDispatcher_RetriesUntilSuccess(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// First two attempts fail, the third succeeds within the attempt budget.
	mailer := &recordingMailer{failures: 2}
	d := NewDispatcher(1, mailer, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(Notification{To: "a@x.com", Subject: "hi", HTMLBody: "<p>hi</p>"})

	waitFor(t, func() bool { return mailer.sentCount() == 1 })
}

func TestDispatcher_GivesUpAfterMaxAttempts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := &recordingMailer{failures: maxAttempts}
	d := NewDispatcher(1, mailer, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(Notification{To: "a@x.com", Subject: "hi", HTMLBody: "<p>hi</p>"})

	// All attempts consumed, nothing delivered.
	waitFor(t, func() bool {
		mailer.mu.Lock()
		defer mailer.mu.Unlock()
		return mailer.failures == 0
	})
	time.Sleep(50 * time.Millisecond)
	if mailer.sentCount() != 0 {
		t.Fatalf("expected no delivery after exhausted retries, got %d", mailer.sentCount())
	}
}

func TestDispatcher_ShardIsStablePerRecipient(t *testing.T) {
	d := NewDispatcher(4, &recordingMailer{}, zerolog.Nop())
	first := d.shardIndex("a@x.com")
	for i := 0; i < 10; i++ {
		if d.shardIndex("a@x.com") != first {
			t.Fatalf("shard index not stable")
		}
	}
}
