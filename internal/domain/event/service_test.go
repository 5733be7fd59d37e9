package event_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alumniconnect/client-go/internal/domain/event"
	"github.com/alumniconnect/client-go/internal/kvstore"
	"github.com/alumniconnect/client-go/internal/source"
	"github.com/alumniconnect/client-go/internal/source/memory"
	"github.com/alumniconnect/client-go/internal/syncqueue"
)

type failingTransport struct {
	err error
}

func (t *failingTransport) Register(context.Context, event.RSVPRequest) error { return t.err }
func (t *failingTransport) Cancel(context.Context, string, string) error      { return t.err }

func newEventSource() source.Source[event.Event] {
	seed := []event.Event{
		{ID: "e1", Title: "Annual Gala", Status: event.StatusActive, StartDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "e2", Title: "Workshop", Status: event.StatusDraft, StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
	}
	return memory.New(seed, event.SearchFields(), memory.WithExactKeys[event.Event](event.ExactKeys()...))
}

func newQueuedService(transport event.RSVPTransport, conn syncqueue.Connectivity) (*event.Service, *syncqueue.Queue) {
	kv := kvstore.NewMemory()
	queue := syncqueue.New(kv, event.NewQueueSender(transport), conn, syncqueue.Options{Stabilization: -1})
	return event.NewService(newEventSource(), transport, queue, conn, nil), queue
}

func TestCreateValidation(t *testing.T) {
	svc := event.NewService(newEventSource(), event.NewMemoryRSVP(), nil, nil, nil)

	_, err := svc.Create(context.Background(), event.Event{Title: "   "})
	require.ErrorIs(t, err, event.ErrInvalidInput)

	start := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.Create(context.Background(), event.Event{
		Title:     "Backwards",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, -1),
	})
	require.ErrorIs(t, err, event.ErrInvalidInput)

	created, err := svc.Create(context.Background(), event.Event{Title: "Mixer", StartDate: start})
	require.NoError(t, err)
	require.Equal(t, event.StatusDraft, created.Status)
	require.NotEmpty(t, created.ID)
}

func TestUpcomingListsActiveByStartDate(t *testing.T) {
	svc := event.NewService(newEventSource(), event.NewMemoryRSVP(), nil, nil, nil)

	page, err := svc.Upcoming(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, "e1", page.Items[0].ID)
}

func TestRSVPOnlineRegistersDirectly(t *testing.T) {
	transport := event.NewMemoryRSVP()
	svc, queue := newQueuedService(transport, syncqueue.AlwaysOnline{})

	status, err := svc.RSVP(context.Background(), event.RSVPRequest{EventID: "e1", UserID: "u1"})
	require.NoError(t, err)
	require.Equal(t, syncqueue.StatusRegistered, status)
	require.True(t, transport.Registered("e1", "u1"))
	require.Empty(t, queue.Pending(context.Background()))

	require.Equal(t, syncqueue.StatusRegistered, svc.RSVPStatus(context.Background(), "e1", "u1"))
}

func TestRSVPOfflineQueues(t *testing.T) {
	transport := event.NewMemoryRSVP()
	conn := syncqueue.NewManual(false)
	svc, queue := newQueuedService(transport, conn)

	status, err := svc.RSVP(context.Background(), event.RSVPRequest{EventID: "e1", UserID: "u1"})
	require.NoError(t, err)
	require.Equal(t, syncqueue.StatusPendingSync, status)
	require.False(t, transport.Registered("e1", "u1"))
	require.Len(t, queue.Pending(context.Background()), 1)

	require.Equal(t, syncqueue.StatusPendingSync, svc.RSVPStatus(context.Background(), "e1", "u1"))
}

func TestRSVPTransportFailureDegradesToQueue(t *testing.T) {
	transport := &failingTransport{err: errors.New("backend down")}
	svc, queue := newQueuedService(transport, syncqueue.AlwaysOnline{})

	status, err := svc.RSVP(context.Background(), event.RSVPRequest{EventID: "e1", UserID: "u1"})
	require.NoError(t, err)
	require.Equal(t, syncqueue.StatusPendingSync, status)
	require.Len(t, queue.Pending(context.Background()), 1)
}

func TestRSVPTransportFailureWithoutQueueFails(t *testing.T) {
	transport := &failingTransport{err: errors.New("backend down")}
	svc := event.NewService(newEventSource(), transport, nil, nil, nil)

	_, err := svc.RSVP(context.Background(), event.RSVPRequest{EventID: "e1", UserID: "u1"})
	require.Error(t, err)
}

func TestRSVPRequiresIDs(t *testing.T) {
	svc := event.NewService(newEventSource(), event.NewMemoryRSVP(), nil, nil, nil)

	_, err := svc.RSVP(context.Background(), event.RSVPRequest{UserID: "u1"})
	require.ErrorIs(t, err, event.ErrInvalidRSVP)

	_, err = svc.CancelRSVP(context.Background(), "", "u1")
	require.ErrorIs(t, err, event.ErrInvalidRSVP)
}

func TestCancelRSVPOnline(t *testing.T) {
	transport := event.NewMemoryRSVP()
	svc, _ := newQueuedService(transport, syncqueue.AlwaysOnline{})

	_, err := svc.RSVP(context.Background(), event.RSVPRequest{EventID: "e1", UserID: "u1"})
	require.NoError(t, err)

	status, err := svc.CancelRSVP(context.Background(), "e1", "u1")
	require.NoError(t, err)
	require.Equal(t, syncqueue.StatusNone, status)
	require.False(t, transport.Registered("e1", "u1"))
	require.Equal(t, syncqueue.StatusNone, svc.RSVPStatus(context.Background(), "e1", "u1"))
}

func TestQueuedRSVPReplaysAfterReconnect(t *testing.T) {
	transport := event.NewMemoryRSVP()
	conn := syncqueue.NewManual(false)
	svc, queue := newQueuedService(transport, conn)

	_, err := svc.RSVP(context.Background(), event.RSVPRequest{EventID: "e1", UserID: "u1", TicketType: "vip"})
	require.NoError(t, err)

	conn.SetOnline(true)
	result := queue.Sync(context.Background())
	require.Equal(t, 1, result.Successful)
	require.Zero(t, result.Failed)
	require.True(t, transport.Registered("e1", "u1"))
	require.Equal(t, syncqueue.StatusRegistered, svc.RSVPStatus(context.Background(), "e1", "u1"))
}
