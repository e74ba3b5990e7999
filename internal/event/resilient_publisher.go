package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/futebadosparcas/matchday/internal/logger"
)

// ErrPublisherClosed is recorded for deliveries that were pending or requested
// after Shutdown.
var ErrPublisherClosed = errors.New(ErrMsgPublisherClosed)

// HandlerSource is a Bus that exposes its subscribers so each one can be
// delivered to and retried on its own.
type HandlerSource interface {
	Bus
	Handlers(eventType Type) []Handler
}

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries     int
	RetryDelay     time.Duration
	DeadLetterPath string
}

// ResilientPublisher dispatches events to the subscribers of a HandlerSource
// in the background. Every subscriber is delivered to independently: a failing
// one is retried with backoff and dead-lettered after its last attempt, and
// the ones that succeeded are never run again. Publish never blocks on
// subscribers and never reports delivery failures to the caller.
type ResilientPublisher struct {
	inner      HandlerSource
	config     ResilientConfig
	deadLetter *DeadLetterWriter

	mu     sync.Mutex
	closed bool
	stop   chan struct{}
	wg     sync.WaitGroup
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner HandlerSource, config ResilientConfig) *ResilientPublisher {
	if config.RetryDelay <= 0 {
		config.RetryDelay = DefaultRetryDelay
	}
	return &ResilientPublisher{
		inner:      inner,
		config:     config,
		deadLetter: NewDeadLetterWriter(config.DeadLetterPath),
		stop:       make(chan struct{}),
	}
}

// Publish schedules one delivery per subscriber of the event type and returns.
// The deliveries keep the values of ctx but not its cancellation.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	handlers := p.inner.Handlers(event.Type)
	if len(handlers) == 0 {
		return nil
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		logger.FromContext(ctx).Warn(LogMsgPublishAfterShutdown, "event_type", event.Type)
		p.writeDeadLetter(event, 0, ErrPublisherClosed)
		return nil
	}
	p.wg.Add(len(handlers))
	p.mu.Unlock()

	detached := context.WithoutCancel(ctx)
	for i, h := range handlers {
		go p.deliver(detached, event, i, h)
	}
	return nil
}

// deliver runs one subscriber until it succeeds, its retries run out or the
// publisher shuts down.
func (p *ResilientPublisher) deliver(ctx context.Context, event Event, index int, h Handler) {
	defer p.wg.Done()
	log := logger.FromContext(ctx).With("event_type", event.Type, "handler", index)

	err := h(ctx, event)
	if err == nil {
		return
	}
	log.Warn(LogMsgEventPublishFailed, "error", err, "retries", p.config.MaxRetries)

	attempts := 1
	for attempt := 1; attempt <= p.config.MaxRetries; attempt++ {
		timer := time.NewTimer(CalculateRetryDelay(p.config.RetryDelay, attempt))
		select {
		case <-timer.C:
		case <-p.stop:
			timer.Stop()
			log.Warn(LogMsgRetryAbandoned, "attempt", attempt)
			p.writeDeadLetter(event, attempts, errors.Join(err, ErrPublisherClosed))
			return
		}

		attempts++
		if err = h(ctx, event); err == nil {
			log.Info(LogMsgEventRetrySucceeded, "attempt", attempt)
			return
		}
		log.Warn(LogMsgEventRetryFailed, "attempt", attempt, "error", err)
	}

	log.Error(LogMsgEventRetryExhausted, "error", err)
	p.writeDeadLetter(event, attempts, err)
}

func (p *ResilientPublisher) writeDeadLetter(event Event, attempts int, cause error) {
	if err := p.deadLetter.Write(event, attempts, cause); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "error", err, "path", p.config.DeadLetterPath)
		return
	}
	logger.Info(LogMsgEventDeadLettered, "event_type", event.Type)
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Shutdown stops accepting events, abandons pending retry waits to the
// dead-letter file and waits for running deliveries.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.stop)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
