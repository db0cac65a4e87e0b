package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/projectpulse/project-system/internal/api/metrics"
	"github.com/projectpulse/project-system/internal/core/domain"
	"github.com/projectpulse/project-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Publisher fans persisted notifications out to the realtime channel using a
// fixed set of workers sharded by recipient, guaranteeing per-recipient
// publish ordering. Enqueue never blocks: when a worker's buffer is full the
// notification is dropped — the persisted row remains the durable fallback.
type Publisher struct {
	workers []chan *domain.Notification
	sink    ports.RealtimePublisher
	log     zerolog.Logger
}

// NewPublisher creates a Publisher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewPublisher(numWorkers int, sink ports.RealtimePublisher, log zerolog.Logger) *Publisher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	p := &Publisher{
		workers: make([]chan *domain.Notification, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range p.workers {
		p.workers[i] = make(chan *domain.Notification, channelBuffer)
	}
	return p
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (p *Publisher) Start(ctx context.Context) {
	for i, ch := range p.workers {
		go p.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a notification to the worker responsible for its recipient.
// It reports false when the worker's buffer was full and the notification
// was dropped.
func (p *Publisher) Enqueue(n *domain.Notification) bool {
	i := p.shardIndex(n.RecipientID)
	select {
	case p.workers[i] <- n:
		metrics.PublishQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(p.workers[i])))
		return true
	default:
		return false
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (p *Publisher) shardIndex(recipientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipientID))
	return int(h.Sum32()) % len(p.workers)
}

func (p *Publisher) runWorker(ctx context.Context, id int, ch <-chan *domain.Notification) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			metrics.PublishQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := p.sink.Publish(ctx, n); err != nil {
				metrics.NotificationsDroppedTotal.Inc()
				p.log.Warn().Err(err).
					Str("notification_id", n.ID).
					Str("recipient_id", n.RecipientID).
					Int("worker_id", id).
					Msg("live publish failed, notification dropped")
				continue
			}
			metrics.NotificationsPublishedTotal.Inc()
		}
	}
}
