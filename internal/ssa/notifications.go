package ssa

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// JumpFiredEvent describes one accepted jump firing, published to every
// registered Notifier. U is a snapshot of the well-mixed state taken
// immediately after the jump's affect ran (nil for spatial runs; the
// event carries no per-site state).
type JumpFiredEvent struct {
	RunID     string    `json:"run_id"`
	JumpIndex int       `json:"jump_index"`
	JumpName  string    `json:"jump_name"`
	Timestamp int64     `json:"timestamp"`
	SimTime   float64   `json:"sim_time"`
	U         []int64   `json:"u,omitempty"`
	Site      int       `json:"site,omitempty"`
}

// Notifier is the interface every jump-event delivery channel implements.
type Notifier interface {
	ID() string
	Type() string
	Notify(ctx context.Context, event JumpFiredEvent) error
	Close() error
}

type notificationJob struct {
	Event       JumpFiredEvent
	NotifierIDs []string
}

// NotificationManager routes JumpFiredEvent deliveries to registered
// Notifiers through a bounded worker-pool queue, adapted from the
// teacher's NotificationManager: same registration/enqueue/retry shape,
// aimed at jump events instead of reaction events.
type NotificationManager struct {
	mu        sync.RWMutex
	notifiers map[string]Notifier
	jobs      chan notificationJob
	done      chan struct{}
	closed    bool
	logger    Logger
}

// NewNotificationManager creates a manager with one worker goroutine
// draining the job queue, matching the teacher's default concurrency.
func NewNotificationManager(logger Logger) *NotificationManager {
	if logger == nil {
		logger = NewNoOpLogger()
	}
	nm := &NotificationManager{
		notifiers: make(map[string]Notifier),
		jobs:      make(chan notificationJob, 1024),
		done:      make(chan struct{}),
		logger:    logger,
	}
	go nm.worker()
	return nm
}

func (nm *NotificationManager) RegisterNotifier(n Notifier) error {
	if n == nil {
		return fmt.Errorf("notifier cannot be nil")
	}
	id := n.ID()
	if id == "" {
		return fmt.Errorf("notifier ID cannot be empty")
	}
	nm.mu.Lock()
	defer nm.mu.Unlock()
	if _, exists := nm.notifiers[id]; exists {
		return fmt.Errorf("notifier with ID %s already exists", id)
	}
	nm.notifiers[id] = n
	return nil
}

func (nm *NotificationManager) UnregisterNotifier(id string) error {
	nm.mu.Lock()
	n, exists := nm.notifiers[id]
	nm.mu.Unlock()
	if !exists {
		return fmt.Errorf("notifier with ID %s not found", id)
	}
	if err := n.Close(); err != nil {
		return fmt.Errorf("error closing notifier %s: %w", id, err)
	}
	nm.mu.Lock()
	delete(nm.notifiers, id)
	nm.mu.Unlock()
	return nil
}

func (nm *NotificationManager) ListNotifiers() []string {
	nm.mu.RLock()
	defer nm.mu.RUnlock()
	ids := make([]string, 0, len(nm.notifiers))
	for id := range nm.notifiers {
		ids = append(ids, id)
	}
	return ids
}

// Enqueue publishes event to notifierIDs asynchronously, non-blocking:
// if the job queue is full the event is dropped and logged, since a
// slow notifier must never stall the simulation loop.
func (nm *NotificationManager) Enqueue(event JumpFiredEvent, notifierIDs []string) {
	if len(notifierIDs) == 0 {
		return
	}
	nm.mu.RLock()
	closed := nm.closed
	nm.mu.RUnlock()
	if closed {
		return
	}
	select {
	case nm.jobs <- notificationJob{Event: event, NotifierIDs: notifierIDs}:
	default:
		nm.logger.Warnf("notification queue full, dropping event for jump %q", event.JumpName)
	}
}

func (nm *NotificationManager) worker() {
	defer close(nm.done)
	for job := range nm.jobs {
		nm.dispatchJob(job)
	}
}

func (nm *NotificationManager) dispatchJob(job notificationJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, id := range job.NotifierIDs {
		nm.notifyWithRetry(ctx, id, job.Event)
	}
}

func (nm *NotificationManager) notifyWithRetry(ctx context.Context, notifierID string, event JumpFiredEvent) {
	nm.mu.RLock()
	n, ok := nm.notifiers[notifierID]
	nm.mu.RUnlock()
	if !ok {
		nm.logger.Errorf("notification failed: notifier=%s error=notifier not found", notifierID)
		return
	}

	const maxRetries = 3
	backoff := 100 * time.Millisecond
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := n.Notify(ctx, event); err == nil {
			return
		} else {
			nm.logger.Warnf("notification failed: notifier=%s attempt=%d error=%v", notifierID, attempt+1, err)
		}
		if attempt == maxRetries {
			nm.logger.Errorf("notification failed after %d attempts: notifier=%s", maxRetries+1, notifierID)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
			backoff *= 2
		}
	}
}

// Close shuts down the worker and every registered notifier.
func (nm *NotificationManager) Close() error {
	nm.mu.Lock()
	if nm.closed {
		nm.mu.Unlock()
		return nil
	}
	nm.closed = true
	close(nm.jobs)
	nm.mu.Unlock()

	<-nm.done

	nm.mu.Lock()
	defer nm.mu.Unlock()
	var errs []error
	for id, n := range nm.notifiers {
		if err := n.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing notifier %s: %w", id, err))
		}
	}
	nm.notifiers = make(map[string]Notifier)
	if len(errs) > 0 {
		return fmt.Errorf("errors closing notifiers: %v", errs)
	}
	return nil
}

// JSON returns event as JSON bytes, used by the websocket/webhook notifiers.
func (e JumpFiredEvent) JSON() ([]byte, error) {
	return json.Marshal(e)
}
