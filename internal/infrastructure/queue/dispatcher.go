package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/spar-shoe/storefront-api/internal/api/metrics"
	"github.com/spar-shoe/storefront-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256

	maxAttempts    = 3
	initialBackoff = 500 * time.Millisecond
	sendTimeout    = 10 * time.Second
)

// Notification is one email waiting to be delivered.
type Notification struct {
	To       string
	Subject  string
	HTMLBody string
}

// Dispatcher delivers notifications asynchronously on a fixed set of
// workers, sharded by recipient so mails to the same address keep their
// order. Each delivery gets a bounded number of attempts with doubling
// backoff and a per-attempt timeout; terminal failures are logged and
// counted, never propagated to the request that queued the mail.
type Dispatcher struct {
	workers []chan Notification
	mailer  ports.Mailer
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan Notification, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a notification to the worker responsible for its recipient.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(n Notification) {
	idx := d.shardIndex(n.To)
	d.workers[idx] <- n
	metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			d.deliver(ctx, n)
			metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, n Notification) {
	backoff := initialBackoff
	start := time.Now()

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
		err := d.mailer.Send(sendCtx, n.To, n.Subject, n.HTMLBody)
		cancel()

		if err == nil {
			metrics.MailsSentTotal.Inc()
			metrics.MailSendDuration.Observe(time.Since(start).Seconds())
			return
		}

		d.log.Warn().Err(err).
			Str("subject", n.Subject).
			Int("attempt", attempt).
			Msg("mail delivery attempt failed")

		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	metrics.MailErrorsTotal.WithLabelValues("delivery_failed").Inc()
	d.log.Error().
		Str("subject", n.Subject).
		Msg("mail delivery abandoned after retries")
}
