package syncqueue_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alumniconnect/client-go/internal/kvstore"
	"github.com/alumniconnect/client-go/internal/syncqueue"
	"github.com/stretchr/testify/require"
)

// stubSender records sent operations and fails for event ids listed in fail.
type stubSender struct {
	mu   sync.Mutex
	sent []syncqueue.PendingOperation
	fail map[string]error
}

func (s *stubSender) Send(_ context.Context, op syncqueue.PendingOperation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.fail[op.EventID]; ok {
		return err
	}
	s.sent = append(s.sent, op)
	return nil
}

func (s *stubSender) sentOps() []syncqueue.PendingOperation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]syncqueue.PendingOperation(nil), s.sent...)
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(message string) {
	n.mu.Lock()
	n.messages = append(n.messages, message)
	n.mu.Unlock()
}

func newQueue(t *testing.T, sender syncqueue.Sender, conn syncqueue.Connectivity) (*syncqueue.Queue, kvstore.Store) {
	t.Helper()
	kv := kvstore.NewMemory()
	q := syncqueue.New(kv, sender, conn, syncqueue.Options{Stabilization: -1})
	return q, kv
}

func register(eventID, userID string) syncqueue.PendingOperation {
	return syncqueue.PendingOperation{
		EventID:    eventID,
		UserID:     userID,
		Action:     syncqueue.ActionRegister,
		TicketType: "general",
	}
}

func TestAdd_AtMostOnePerPair(t *testing.T) {
	ctx := context.Background()
	q, _ := newQueue(t, &stubSender{}, syncqueue.NewManual(true))

	require.NoError(t, q.Add(ctx, register("e1", "u1")))
	cancel := register("e1", "u1")
	cancel.Action = syncqueue.ActionCancel
	require.NoError(t, q.Add(ctx, cancel))

	pending := q.Pending(ctx)
	require.Len(t, pending, 1)
	require.Equal(t, syncqueue.ActionCancel, pending[0].Action)
}

func TestAdd_DistinctPairsCoexist(t *testing.T) {
	ctx := context.Background()
	q, _ := newQueue(t, &stubSender{}, syncqueue.NewManual(true))

	require.NoError(t, q.Add(ctx, register("e1", "u1")))
	require.NoError(t, q.Add(ctx, register("e2", "u1")))
	require.NoError(t, q.Add(ctx, register("e1", "u2")))

	require.Len(t, q.Pending(ctx), 3)
}

func TestRemove_NoOpWhenAbsent(t *testing.T) {
	ctx := context.Background()
	q, _ := newQueue(t, &stubSender{}, syncqueue.NewManual(true))

	require.NoError(t, q.Remove(ctx, "e1", "u1"))

	require.NoError(t, q.Add(ctx, register("e1", "u1")))
	require.NoError(t, q.Remove(ctx, "e1", "u1"))
	require.Empty(t, q.Pending(ctx))
}

func TestUserStatus_PendingBeatsCommitted(t *testing.T) {
	ctx := context.Background()
	q, _ := newQueue(t, &stubSender{}, syncqueue.NewManual(true))

	require.Equal(t, syncqueue.StatusNone, q.UserStatus(ctx, "e1", "u1"))

	require.NoError(t, q.Commit(ctx, register("e1", "u1")))
	require.Equal(t, syncqueue.StatusRegistered, q.UserStatus(ctx, "e1", "u1"))

	cancel := register("e1", "u1")
	cancel.Action = syncqueue.ActionCancel
	require.NoError(t, q.Add(ctx, cancel))
	require.Equal(t, syncqueue.StatusPendingSync, q.UserStatus(ctx, "e1", "u1"))
}

func TestSync_Offline(t *testing.T) {
	ctx := context.Background()
	sender := &stubSender{}
	q, _ := newQueue(t, sender, syncqueue.NewManual(false))
	require.NoError(t, q.Add(ctx, register("e1", "u1")))

	result := q.Sync(ctx)
	require.Equal(t, 0, result.Successful)
	require.Equal(t, 0, result.Failed)
	require.Equal(t, []string{"Device is offline"}, result.Errors)
	require.Len(t, q.Pending(ctx), 1, "queue must be untouched")
	require.Empty(t, sender.sentOps())
}

func TestSync_ReplaysInOrderAndCommits(t *testing.T) {
	ctx := context.Background()
	sender := &stubSender{}
	q, _ := newQueue(t, sender, syncqueue.NewManual(true))

	require.NoError(t, q.Add(ctx, register("e1", "u1")))
	require.NoError(t, q.Add(ctx, register("e2", "u1")))

	result := q.Sync(ctx)
	require.Equal(t, 2, result.Successful)
	require.Equal(t, 0, result.Failed)
	require.Empty(t, result.Errors)
	require.Empty(t, q.Pending(ctx))

	sent := sender.sentOps()
	require.Len(t, sent, 2)
	require.Equal(t, "e1", sent[0].EventID)
	require.Equal(t, "e2", sent[1].EventID)

	require.Equal(t, syncqueue.StatusRegistered, q.UserStatus(ctx, "e1", "u1"))
	require.Equal(t, syncqueue.StatusRegistered, q.UserStatus(ctx, "e2", "u1"))
}

func TestSync_FailureDoesNotAbortBatch(t *testing.T) {
	ctx := context.Background()
	sender := &stubSender{fail: map[string]error{"e2": errors.New("server error")}}
	q, _ := newQueue(t, sender, syncqueue.NewManual(true))

	require.NoError(t, q.Add(ctx, register("e1", "u1")))
	require.NoError(t, q.Add(ctx, register("e2", "u1")))
	require.NoError(t, q.Add(ctx, register("e3", "u1")))

	result := q.Sync(ctx)
	require.Equal(t, 2, result.Successful)
	require.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	require.Contains(t, result.Errors[0], "e2")

	pending := q.Pending(ctx)
	require.Len(t, pending, 1)
	require.Equal(t, "e2", pending[0].EventID)
}

func TestSync_EmptyQueueIsNoOp(t *testing.T) {
	ctx := context.Background()
	q, _ := newQueue(t, &stubSender{}, syncqueue.NewManual(true))

	result := q.Sync(ctx)
	require.Equal(t, 0, result.Successful)
	require.Equal(t, 0, result.Failed)
	require.Empty(t, result.Errors)
}

func TestSync_CancelRemovesCommittedState(t *testing.T) {
	ctx := context.Background()
	sender := &stubSender{}
	q, _ := newQueue(t, sender, syncqueue.NewManual(true))

	require.NoError(t, q.Commit(ctx, register("e1", "u1")))
	cancel := register("e1", "u1")
	cancel.Action = syncqueue.ActionCancel
	require.NoError(t, q.Add(ctx, cancel))

	result := q.Sync(ctx)
	require.Equal(t, 1, result.Successful)
	require.Equal(t, syncqueue.StatusNone, q.UserStatus(ctx, "e1", "u1"))
}

func TestSync_UpdatesStatusSnapshot(t *testing.T) {
	ctx := context.Background()
	q, _ := newQueue(t, &stubSender{}, syncqueue.NewManual(true))
	require.NoError(t, q.Add(ctx, register("e1", "u1")))

	require.Equal(t, 1, q.Status(ctx).PendingCount)

	before := time.Now().Add(-time.Second)
	q.Sync(ctx)

	status := q.Status(ctx)
	require.Equal(t, 0, status.PendingCount)
	require.True(t, status.LastAttempt.After(before))
	require.True(t, status.LastSuccess.After(before))
}

func TestQueue_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()

	q := syncqueue.New(kv, &stubSender{}, syncqueue.NewManual(false), syncqueue.Options{})
	require.NoError(t, q.Add(ctx, register("e1", "u1")))

	// A fresh queue over the same storage sees the pending operation.
	q2 := syncqueue.New(kv, &stubSender{}, syncqueue.NewManual(false), syncqueue.Options{})
	require.Len(t, q2.Pending(ctx), 1)
}

func TestWatch_SyncsOnReconnect(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sender := &stubSender{}
	conn := syncqueue.NewManual(false)
	notifier := &recordingNotifier{}
	kv := kvstore.NewMemory()
	q := syncqueue.New(kv, sender, conn, syncqueue.Options{
		Stabilization: time.Millisecond,
		Notifier:      notifier,
	})

	require.NoError(t, q.Add(ctx, register("e1", "u1")))

	done := make(chan struct{})
	go func() {
		q.Watch(ctx)
		close(done)
	}()

	// Let Watch subscribe before toggling.
	time.Sleep(10 * time.Millisecond)
	conn.SetOnline(true)

	require.Eventually(t, func() bool {
		return len(q.Pending(ctx)) == 0
	}, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		notifier.mu.Lock()
		defer notifier.mu.Unlock()
		return len(notifier.messages) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}
