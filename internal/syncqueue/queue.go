package syncqueue

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/alumniconnect/client-go/internal/kvstore"
)

// offlineError is the exact diagnostic reported when a sync is requested
// while the device is offline.
const offlineError = "Device is offline"

// DefaultStabilization is how long Watch waits after an online transition
// before replaying, giving the connection time to settle.
const DefaultStabilization = 2 * time.Second

// Options configures a Queue.
type Options struct {
	// Stabilization overrides the post-reconnect wait. Zero means
	// DefaultStabilization; negative disables the wait.
	Stabilization time.Duration
	Notifier      Notifier
	Logger        *slog.Logger
}

// Queue is the durable RSVP sync queue. All state lives in the key-value
// store (pendingRsvps, userRsvps, syncStatus) so it survives restarts.
type Queue struct {
	kv            kvstore.Store
	sender        Sender
	conn          Connectivity
	notifier      Notifier
	stabilization time.Duration
	logger        *slog.Logger

	mu sync.Mutex
}

// New creates a queue over the given storage, sender, and connectivity probe.
func New(kv kvstore.Store, sender Sender, conn Connectivity, opts Options) *Queue {
	stabilization := opts.Stabilization
	if stabilization == 0 {
		stabilization = DefaultStabilization
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{
		kv:            kv,
		sender:        sender,
		conn:          conn,
		notifier:      opts.Notifier,
		stabilization: stabilization,
		logger:        logger,
	}
}

// Add upserts a pending operation. Any queued operation for the same
// (event, user) pair is replaced, preserving its queue position.
func (q *Queue) Add(ctx context.Context, op PendingOperation) error {
	if op.EventID == "" || op.UserID == "" {
		return fmt.Errorf("pending operation requires event and user ids")
	}
	if op.Timestamp.IsZero() {
		op.Timestamp = time.Now().UTC()
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	ops := q.load(ctx)
	replaced := false
	for i, existing := range ops {
		if existing.EventID == op.EventID && existing.UserID == op.UserID {
			ops[i] = op
			replaced = true
			break
		}
	}
	if !replaced {
		ops = append(ops, op)
	}
	return q.save(ctx, ops)
}

// Remove deletes the queued operation for the pair, if any.
func (q *Queue) Remove(ctx context.Context, eventID, userID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	ops := q.load(ctx)
	kept := slices.DeleteFunc(ops, func(op PendingOperation) bool {
		return op.EventID == eventID && op.UserID == userID
	})
	if len(kept) == len(ops) {
		return nil
	}
	return q.save(ctx, kept)
}

// Pending returns the queued operations in enqueue order.
func (q *Queue) Pending(ctx context.Context) []PendingOperation {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.load(ctx)
}

// UserStatus resolves the user's effective RSVP state for an event. A queued
// operation wins over committed state.
func (q *Queue) UserStatus(ctx context.Context, eventID, userID string) Status {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, op := range q.load(ctx) {
		if op.EventID == eventID && op.UserID == userID {
			return StatusPendingSync
		}
	}
	if slices.Contains(q.committed(ctx)[userID], eventID) {
		return StatusRegistered
	}
	return StatusNone
}

// Commit applies an operation's local state transition: register adds the
// event to the user's committed RSVP list, cancel removes it.
func (q *Queue) Commit(ctx context.Context, op PendingOperation) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.commit(ctx, op)
}

// Sync replays the queue in FIFO order. Offline invocations return
// immediately with an explanatory error and touch nothing. Per-operation
// failures are recorded and replay continues; an empty queue is a clean
// no-op.
func (q *Queue) Sync(ctx context.Context) Result {
	if !q.conn.Online() {
		return Result{Errors: []string{offlineError}}
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	ops := q.load(ctx)
	var result Result
	var remaining []PendingOperation

	for _, op := range ops {
		if err := q.sender.Send(ctx, op); err != nil {
			result.Failed++
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s %s for event %s: %v", op.Action, op.UserID, op.EventID, err))
			remaining = append(remaining, op)
			continue
		}
		if err := q.commit(ctx, op); err != nil {
			q.logger.Error("failed to commit synced operation", "event", op.EventID, "user", op.UserID, "error", err)
		}
		result.Successful++
	}

	if len(ops) > 0 {
		if err := q.save(ctx, remaining); err != nil {
			q.logger.Error("failed to persist sync queue", "error", err)
		}
	}
	q.recordStatus(ctx, result, len(remaining))

	if result.Successful > 0 || result.Failed > 0 {
		q.logger.Info("sync run finished", "successful", result.Successful, "failed", result.Failed)
	}
	return result
}

// Status returns the persisted sync bookkeeping snapshot.
func (q *Queue) Status(ctx context.Context) SyncStatus {
	return kvstore.GetJSONDefault(ctx, q.kv, kvstore.KeySyncStatus, SyncStatus{}, q.logger)
}

// Watch blocks on connectivity transitions until ctx is done. Each
// offline-to-online transition triggers exactly one replay after the
// stabilization wait; successes are surfaced through the notifier.
func (q *Queue) Watch(ctx context.Context) {
	changes := q.conn.Changes()
	if changes == nil {
		return
	}
	wasOnline := q.conn.Online()

	for {
		select {
		case <-ctx.Done():
			return
		case online, ok := <-changes:
			if !ok {
				return
			}
			if !online || wasOnline {
				wasOnline = online
				continue
			}
			wasOnline = true

			if q.stabilization > 0 {
				timer := time.NewTimer(q.stabilization)
				select {
				case <-ctx.Done():
					timer.Stop()
					return
				case <-timer.C:
				}
			}

			result := q.Sync(ctx)
			if result.Successful > 0 && q.notifier != nil {
				q.notifier.Notify(fmt.Sprintf("Synced %d pending RSVP(s)", result.Successful))
			}
		}
	}
}

// load reads the queue; corrupt or absent entries yield an empty queue.
// Callers hold q.mu.
func (q *Queue) load(ctx context.Context) []PendingOperation {
	return kvstore.GetJSONDefault(ctx, q.kv, kvstore.KeyPendingRSVPs, []PendingOperation(nil), q.logger)
}

func (q *Queue) save(ctx context.Context, ops []PendingOperation) error {
	if err := kvstore.SetJSON(ctx, q.kv, kvstore.KeyPendingRSVPs, ops); err != nil {
		return err
	}
	q.updatePendingCount(ctx, len(ops))
	return nil
}

func (q *Queue) committed(ctx context.Context) map[string][]string {
	return kvstore.GetJSONDefault(ctx, q.kv, kvstore.KeyUserRSVPs, map[string][]string{}, q.logger)
}

func (q *Queue) commit(ctx context.Context, op PendingOperation) error {
	rsvps := q.committed(ctx)
	events := rsvps[op.UserID]

	switch op.Action {
	case ActionRegister:
		if !slices.Contains(events, op.EventID) {
			rsvps[op.UserID] = append(events, op.EventID)
		}
	case ActionCancel:
		rsvps[op.UserID] = slices.DeleteFunc(events, func(id string) bool { return id == op.EventID })
	default:
		return fmt.Errorf("unknown action %q", op.Action)
	}
	return kvstore.SetJSON(ctx, q.kv, kvstore.KeyUserRSVPs, rsvps)
}

func (q *Queue) updatePendingCount(ctx context.Context, count int) {
	status := kvstore.GetJSONDefault(ctx, q.kv, kvstore.KeySyncStatus, SyncStatus{}, q.logger)
	status.PendingCount = count
	if err := kvstore.SetJSON(ctx, q.kv, kvstore.KeySyncStatus, status); err != nil {
		q.logger.Warn("failed to update sync status", "error", err)
	}
}

func (q *Queue) recordStatus(ctx context.Context, result Result, pending int) {
	status := kvstore.GetJSONDefault(ctx, q.kv, kvstore.KeySyncStatus, SyncStatus{}, q.logger)
	status.LastAttempt = time.Now().UTC()
	if result.Failed == 0 && result.Successful > 0 {
		status.LastSuccess = status.LastAttempt
	}
	status.PendingCount = pending
	if err := kvstore.SetJSON(ctx, q.kv, kvstore.KeySyncStatus, status); err != nil {
		q.logger.Warn("failed to update sync status", "error", err)
	}
}
