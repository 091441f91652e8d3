package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/firesafetykz/portal/internal/logger"
)

type retryEntry struct {
	event    Event
	attempt  int
	lastErr  error
	notAfter time.Time
}

// ResilientPublisher publishes through a Bus and retries failed events in the background
// with exponential backoff. Events that still fail are written to a dead-letter file.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewResilientPublisher starts the retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	rp.wg.Add(1)
	go rp.retryWorker()

	return rp, nil
}

// PublishWithRetry publishes once synchronously and queues a retry on failure. It never blocks on retries.
func (rp *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	err := rp.bus.Publish(ctx, evt)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
	rp.enqueue(retryEntry{event: evt, attempt: 1, lastErr: err})
}

// Publish satisfies Bus; failures are handed to the retry worker so the caller always gets nil
func (rp *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	rp.PublishWithRetry(ctx, evt)
	return nil
}

// Subscribe delegates to the inner bus
func (rp *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	rp.bus.Subscribe(eventType, handler)
}

func (rp *ResilientPublisher) enqueue(entry retryEntry) {
	entry.notAfter = time.Now().Add(CalculateRetryDelay(rp.retryDelay, entry.attempt))
	select {
	case rp.retryQueue <- entry:
	default:
		logger.Info(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		rp.writeDeadLetter(entry)
	}
}

func (rp *ResilientPublisher) retryWorker() {
	defer rp.wg.Done()

	for {
		select {
		case <-rp.shutdown:
			rp.drain()
			return
		case entry := <-rp.retryQueue:
			if wait := time.Until(entry.notAfter); wait > 0 {
				timer := time.NewTimer(wait)
				select {
				case <-timer.C:
				case <-rp.shutdown:
					timer.Stop()
					rp.attempt(entry, false)
					rp.drain()
					return
				}
			}
			rp.attempt(entry, true)
		}
	}
}

// attempt publishes entry once; with requeue false a failure goes straight to the dead letter
func (rp *ResilientPublisher) attempt(entry retryEntry, requeue bool) {
	err := rp.bus.Publish(context.Background(), entry.event)
	if err == nil {
		logger.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", entry.attempt)
		return
	}

	entry.lastErr = err
	if !requeue || entry.attempt >= rp.maxRetries {
		logger.Info(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempt", entry.attempt)
		rp.writeDeadLetter(entry)
		return
	}

	logger.Info(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", entry.attempt, "error", err)
	entry.attempt++
	rp.enqueue(entry)
}

func (rp *ResilientPublisher) drain() {
	n := 0
	for {
		select {
		case entry := <-rp.retryQueue:
			rp.attempt(entry, false)
			n++
		default:
			if n > 0 {
				logger.Info(LogMsgQueueDrainedShutdown, "count", n)
			}
			return
		}
	}
}

func (rp *ResilientPublisher) writeDeadLetter(entry retryEntry) {
	if err := rp.deadLetter.Write(entry.event, entry.attempt, entry.lastErr); err != nil {
		logger.Info(LogMsgDeadLetterWriteFail, "event_type", entry.event.Type, "error", err)
	}
}

// Shutdown stops the worker, gives queued events one last attempt and closes the dead-letter file
func (rp *ResilientPublisher) Shutdown(ctx context.Context) error {
	rp.closeOnce.Do(func() { close(rp.shutdown) })

	done := make(chan struct{})
	go func() {
		rp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return rp.deadLetter.Close()
	case <-ctx.Done():
		logger.Info(LogMsgShutdownTimeout)
		return errors.Join(ctx.Err(), rp.deadLetter.Close())
	}
}
