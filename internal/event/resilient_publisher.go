package event

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"time"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries     int
	RetryDelay     time.Duration
	DeadLetterPath string
}

// DefaultResilientConfig returns sensible retry defaults
func DefaultResilientConfig() ResilientConfig {
	return ResilientConfig{
		MaxRetries:     5,
		RetryDelay:     2 * time.Second,
		DeadLetterPath: "deadletter.jsonl",
	}
}

// ResilientPublisher wraps an event bus with retry logic and a dead
// letter file. Publish returns immediately; failed events are retried
// in the background so callers are never coupled to subscriber errors.
type ResilientPublisher struct {
	inner  Bus
	config ResilientConfig
	wg     sync.WaitGroup
	mu     sync.Mutex // protects dead letter file writes
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) *ResilientPublisher {
	return &ResilientPublisher{inner: inner, config: config}
}

// PublishWithRetry attempts to publish an event, falling back to a
// background retry loop on failure. Always returns nil to the caller.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	if err := p.inner.Publish(ctx, event); err == nil {
		return
	} else {
		slog.Warn("Failed to publish event, initiating async retry",
			"event_type", event.Type,
			"error", err,
			"retries", p.config.MaxRetries)
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.retryLoop(event)
	}()
}

func (p *ResilientPublisher) retryLoop(event Event) {
	// Detached context: the originating request may already be done
	ctx := context.Background()

	for i := 1; i <= p.config.MaxRetries; i++ {
		time.Sleep(p.config.RetryDelay * time.Duration(i))

		if err := p.inner.Publish(ctx, event); err == nil {
			slog.Info("Successfully published event after retry",
				"event_type", event.Type,
				"attempt", i)
			return
		} else {
			slog.Warn("Event retry failed",
				"event_type", event.Type,
				"attempt", i,
				"error", err)
		}
	}

	p.writeToDeadLetter(event)
}

func (p *ResilientPublisher) writeToDeadLetter(event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := os.OpenFile(p.config.DeadLetterPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		slog.Error("Failed to open dead letter file", "error", err, "path", p.config.DeadLetterPath)
		return
	}
	defer f.Close()

	entry := struct {
		Timestamp time.Time `json:"timestamp"`
		Event     Event     `json:"event"`
	}{time.Now(), event}

	if err := json.NewEncoder(f).Encode(entry); err != nil {
		slog.Error("Failed to write to dead letter file", "error", err)
		return
	}
	slog.Info("Event written to dead letter queue", "event_type", event.Type)
}

// Shutdown waits for in-flight retries to drain or the context to end
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		slog.Warn("Resilient publisher shutdown timed out")
		return ctx.Err()
	}
}
