// Package scheduler runs the background sweep that converges scheduled mural
// posts to the published state once their time has come.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ayel/intranet/internal/api/metrics"
)

const defaultInterval = time.Minute

// DuePublisher is the part of the post service the sweeper drives.
type DuePublisher interface {
	PublishDue(ctx context.Context) (int, error)
}

// Publisher ticks at a fixed interval and publishes due posts. Reads never
// depend on it: visibility is computed at request time, the sweep only keeps
// stored status in step.
type Publisher struct {
	service  DuePublisher
	interval time.Duration
	log      zerolog.Logger
}

// NewPublisher creates a Publisher. If interval <= 0, defaultInterval is used.
func NewPublisher(service DuePublisher, interval time.Duration, log zerolog.Logger) *Publisher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Publisher{service: service, interval: interval, log: log}
}

// Start launches the sweep loop. It stops when ctx is cancelled; the returned
// channel is closed once the loop has exited.
func (p *Publisher) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.run(ctx)
	}()
	return done
}

func (p *Publisher) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.sweep(ctx)
		}
	}
}

// sweep runs one publication pass. Partial failures are logged; posts that
// did publish are still counted.
func (p *Publisher) sweep(ctx context.Context) {
	start := time.Now()
	n, err := p.service.PublishDue(ctx)

	result := "ok"
	if err != nil {
		result = "error"
		p.log.Error().Err(err).Int("published", n).Msg("publish sweep failed")
	}
	metrics.PublishSweepDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())

	if n > 0 {
		metrics.ScheduledPostsPublishedTotal.Add(float64(n))
		p.log.Info().Int("published", n).Msg("scheduled posts published")
	}
}
