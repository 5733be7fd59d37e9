package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alumniconnect/client-go/internal/collection"
	"github.com/alumniconnect/client-go/internal/config"
	"github.com/alumniconnect/client-go/internal/domain/event"
	"github.com/alumniconnect/client-go/internal/fetch"
	"github.com/alumniconnect/client-go/internal/kvstore"
	"github.com/alumniconnect/client-go/internal/session"
	"github.com/alumniconnect/client-go/internal/source"
	"github.com/alumniconnect/client-go/internal/store"
	"github.com/alumniconnect/client-go/internal/syncqueue"
)

const usage = `usage: alumnictl <command> [flags]

commands:
  events list    list events
  events rsvp    register for an event
  events cancel  withdraw a registration
  events bulk    apply a bulk action to event ids
  sync           replay queued RSVPs now
  watch          watch connectivity and sync on reconnect
  status         show sync queue status
  login          store the local user profile
  logout         clear the local user profile
  whoami         show the local user profile
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "alumnictl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("missing command")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	kv, err := openStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer kv.Close()

	ctx, cancel := signalContext()
	defer cancel()

	app := newApp(ctx, cfg, kv, logger)

	switch args[0] {
	case "events":
		return app.runEvents(ctx, args[1:])
	case "sync":
		return app.runSync(ctx)
	case "watch":
		return app.runWatch(ctx)
	case "status":
		return app.runStatus(ctx)
	case "login":
		return app.runLogin(ctx, args[1:])
	case "logout":
		return app.sessions.Clear(ctx)
	case "whoami":
		return app.runWhoami(ctx)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

type app struct {
	events   *event.Service
	queue    *syncqueue.Queue
	state    *store.Store
	fetcher  *fetch.Fetcher
	sessions *session.Manager
	logger   *slog.Logger
}

func newApp(ctx context.Context, cfg config.Config, kv kvstore.Store, logger *slog.Logger) *app {
	mock := source.UseMock(ctx, kv, cfg.API.UseMockAPI, logger)
	conn := connectivity()

	events, transport := buildEventSource(cfg, mock, logger)
	queue := syncqueue.New(kv, event.NewQueueSender(transport), conn, syncqueue.Options{
		Stabilization: cfg.Sync.Stabilization.Std(),
		Notifier:      stdoutNotifier{},
		Logger:        logger,
	})

	return &app{
		events: event.NewService(events, transport, queue, conn, logger),
		queue:  queue,
		state: store.New(store.Options{
			DebounceWindow: cfg.Store.DebounceWindow.Std(),
			Logger:         logger,
		}),
		fetcher: fetch.New(kv, fetch.Options{
			TTL:        cfg.Fetch.CacheTTL.Std(),
			RetryCount: cfg.Fetch.RetryCount,
			RetryDelay: cfg.Fetch.RetryDelay.Std(),
			Logger:     logger,
		}),
		sessions: session.NewManager(kv, logger),
		logger:   logger,
	}
}

func (a *app) runEvents(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: alumnictl events <list|rsvp|cancel> [flags]")
	}
	switch args[0] {
	case "list":
		return a.listEvents(ctx, args[1:])
	case "rsvp":
		return a.rsvp(ctx, args[1:])
	case "cancel":
		return a.cancelRSVP(ctx, args[1:])
	case "bulk":
		return a.bulkEvents(ctx, args[1:])
	default:
		return fmt.Errorf("unknown events command %q", args[0])
	}
}

func (a *app) listEvents(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("events list", flag.ContinueOnError)
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 20, "page size")
	status := fs.String("status", "", "filter by status")
	search := fs.String("search", "", "free-text search")
	sortBy := fs.String("sort", "startDate", "sort field")
	if err := fs.Parse(args); err != nil {
		return err
	}

	criteria := collection.Criteria{
		"status":         *status,
		"search":         *search,
		source.KeySortBy: *sortBy,
	}
	key := fmt.Sprintf("events:list:%d:%d:%s:%s:%s", *page, *limit, *status, *search, *sortBy)
	result, err := fetch.Get(ctx, a.fetcher, key, func(ctx context.Context) (collection.Page[event.Event], error) {
		return a.events.List(ctx, *page, *limit, criteria)
	})
	if err != nil {
		return err
	}

	for _, e := range result.Items {
		fmt.Printf("%-12s %-10s %-12s %s\n", e.ID, e.Status, e.StartDate.Format("2006-01-02"), e.Title)
	}
	fmt.Printf("page %d/%d, %d total\n", result.Page, result.TotalPages, result.Total)
	return nil
}

func (a *app) rsvp(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("events rsvp", flag.ContinueOnError)
	eventID := fs.String("event", "", "event id")
	userID := fs.String("user", "", "user id (defaults to signed-in user)")
	ticket := fs.String("ticket", "", "ticket type")
	if err := fs.Parse(args); err != nil {
		return err
	}
	user, err := a.resolveUser(ctx, *userID)
	if err != nil {
		return err
	}

	status, err := a.events.RSVP(ctx, event.RSVPRequest{
		EventID:    *eventID,
		UserID:     user,
		TicketType: *ticket,
	})
	if err != nil {
		return err
	}
	fmt.Printf("rsvp status: %s\n", status)
	return nil
}

func (a *app) cancelRSVP(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("events cancel", flag.ContinueOnError)
	eventID := fs.String("event", "", "event id")
	userID := fs.String("user", "", "user id (defaults to signed-in user)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	user, err := a.resolveUser(ctx, *userID)
	if err != nil {
		return err
	}

	status, err := a.events.CancelRSVP(ctx, *eventID, user)
	if err != nil {
		return err
	}
	fmt.Printf("rsvp status: %s\n", status)
	return nil
}

func (a *app) bulkEvents(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("events bulk", flag.ContinueOnError)
	action := fs.String("action", "", "bulk action: activate, deactivate, delete")
	ids := fs.String("ids", "", "comma-separated event ids")
	if err := fs.Parse(args); err != nil {
		return err
	}
	selected := strings.Split(*ids, ",")
	if *action == "" || len(selected) == 0 || selected[0] == "" {
		return fmt.Errorf("usage: alumnictl events bulk -action <name> -ids <id,...>")
	}

	a.state.SelectAll("events", selected)
	if err := a.state.PerformBulkAction(ctx, "events", *action, a.events.BulkAction); err != nil {
		return err
	}
	if err := a.fetcher.InvalidatePrefix(ctx, "events:list:"); err != nil {
		a.logger.Warn("failed to invalidate list cache", "error", err)
	}
	fmt.Printf("applied %s to %d event(s)\n", *action, len(selected))
	return nil
}

func (a *app) runSync(ctx context.Context) error {
	result := a.queue.Sync(ctx)
	fmt.Printf("synced %d, failed %d\n", result.Successful, result.Failed)
	for _, msg := range result.Errors {
		fmt.Printf("  error: %s\n", msg)
	}
	return nil
}

func (a *app) runWatch(ctx context.Context) error {
	a.logger.Info("watching connectivity")
	a.queue.Watch(ctx)
	return nil
}

func (a *app) runStatus(ctx context.Context) error {
	status := a.queue.Status(ctx)
	fmt.Printf("pending: %d\n", status.PendingCount)
	if !status.LastAttempt.IsZero() {
		fmt.Printf("last attempt: %s\n", status.LastAttempt.Format(time.RFC3339))
	}
	if !status.LastSuccess.IsZero() {
		fmt.Printf("last success: %s\n", status.LastSuccess.Format(time.RFC3339))
	}
	return nil
}

func (a *app) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	userID := fs.String("user", "", "user id")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	chapterID := fs.String("chapter", "", "home chapter id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return a.sessions.Save(ctx, session.Profile{
		UserID:    *userID,
		Name:      *name,
		Email:     *email,
		ChapterID: *chapterID,
	})
}

func (a *app) runWhoami(ctx context.Context) error {
	profile, err := a.sessions.Load(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> (id %s)\n", profile.Name, profile.Email, profile.UserID)
	return nil
}

func (a *app) resolveUser(ctx context.Context, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	profile, err := a.sessions.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("no user: pass -user or login first")
	}
	return profile.UserID, nil
}

// connectivity treats the device as offline when ALUMNI_OFFLINE is set,
// which forces RSVPs through the sync queue.
func connectivity() syncqueue.Connectivity {
	if os.Getenv("ALUMNI_OFFLINE") != "" {
		return syncqueue.NewManual(false)
	}
	return syncqueue.AlwaysOnline{}
}

type stdoutNotifier struct{}

func (stdoutNotifier) Notify(message string) {
	fmt.Println(message)
}

func openStore(cfg config.StorageConfig) (kvstore.Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return kvstore.NewMemory(), nil
	case "sqlite":
		if err := ensureDBDir(cfg.Path); err != nil {
			return nil, err
		}
		return kvstore.NewSQLite(cfg.Path)
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return kvstore.NewRedis(client, cfg.RedisPrefix, 0), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		cancel()
	}()
	return ctx, cancel
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
