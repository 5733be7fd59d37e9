// Package store holds the dashboard-wide UI state: active filter criteria and
// bulk selections, keyed by section ("events", "sponsors", ...). It replaces
// the reducer-backed global context of the web client with an injectable
// container so each composition (and each test) gets an isolated instance.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/alumniconnect/client-go/internal/collection"
	"github.com/alumniconnect/client-go/internal/debounce"
)

// DefaultDebounceWindow is the quiet period applied to search updates.
const DefaultDebounceWindow = 300 * time.Millisecond

// ErrNoSelection is returned by PerformBulkAction when nothing is selected.
var ErrNoSelection = errors.New("no items selected")

// BulkActionFunc applies a named bulk action to the selected ids.
type BulkActionFunc func(ctx context.Context, action string, ids []string) error

type section struct {
	filters        collection.Criteria
	selection      map[string]struct{}
	toolbarVisible bool
}

// Options configures a Store.
type Options struct {
	// DebounceWindow overrides the search debounce window. Zero means
	// DefaultDebounceWindow; negative disables debouncing (useful in tests).
	DebounceWindow time.Duration
	Logger         *slog.Logger
}

// Store is the central filter and selection state container. All mutations
// are serialized by one mutex, the moral equivalent of the single reducer
// queue in the web client.
type Store struct {
	window time.Duration
	logger *slog.Logger

	mu          sync.Mutex
	sections    map[string]*section
	debouncers  map[string]*debounce.Debouncer[string]
	subscribers []func(section string)
}

// New creates an empty store.
func New(opts Options) *Store {
	window := opts.DebounceWindow
	if window == 0 {
		window = DefaultDebounceWindow
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		window:     window,
		logger:     logger,
		sections:   make(map[string]*section),
		debouncers: make(map[string]*debounce.Debouncer[string]),
	}
}

// normalize maps accepted aliases onto canonical section names.
func normalize(name string) string {
	if name == "qa" {
		return "qaItems"
	}
	return name
}

// section returns the state for name, creating it on first access. Callers
// must hold s.mu.
func (s *Store) section(name string) *section {
	name = normalize(name)
	sec, ok := s.sections[name]
	if !ok {
		sec = &section{
			filters:   collection.Criteria{},
			selection: make(map[string]struct{}),
		}
		s.sections[name] = sec
	}
	return sec
}

// Subscribe registers a callback invoked after every applied state change
// with the canonical section name. Callbacks run outside the store lock.
func (s *Store) Subscribe(fn func(section string)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *Store) notify(name string) {
	s.mu.Lock()
	subs := make([]func(string), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(normalize(name))
	}
}

// UpdateFilters shallow-merges partial criteria into the section's filters.
// Keys present in partial overwrite; keys absent from partial persist.
func (s *Store) UpdateFilters(name string, partial collection.Criteria) {
	s.mu.Lock()
	sec := s.section(name)
	for key, value := range partial {
		sec.filters[key] = value
	}
	s.mu.Unlock()
	s.notify(name)
}

// ClearFilters resets the section's filters to an empty criteria set. Other
// sections are untouched.
func (s *Store) ClearFilters(name string) {
	s.mu.Lock()
	s.section(name).filters = collection.Criteria{}
	s.mu.Unlock()
	s.notify(name)
}

// Filters returns a copy of the section's active criteria.
func (s *Store) Filters(name string) collection.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.section(name).filters.Clone()
}

// UpdateSearch applies a debounced search criterion to the section. Rapid
// successive calls coalesce: only the last term within the quiet window is
// applied, exactly once.
func (s *Store) UpdateSearch(name, term string) {
	if s.window < 0 {
		s.UpdateFilters(name, collection.Criteria{collection.SearchKey: term})
		return
	}

	canonical := normalize(name)
	s.mu.Lock()
	d, ok := s.debouncers[canonical]
	if !ok {
		d = debounce.NewDebouncer(s.window, func(latest string) {
			s.UpdateFilters(canonical, collection.Criteria{collection.SearchKey: latest})
		})
		s.debouncers[canonical] = d
	}
	s.mu.Unlock()
	d.Call(term)
}

// ToggleSelection adds id to the section's selection if absent, removes it if
// present. The bulk toolbar is visible exactly while the selection is
// non-empty.
func (s *Store) ToggleSelection(name, id string) {
	s.mu.Lock()
	sec := s.section(name)
	if _, ok := sec.selection[id]; ok {
		delete(sec.selection, id)
	} else {
		sec.selection[id] = struct{}{}
	}
	sec.toolbarVisible = len(sec.selection) > 0
	s.mu.Unlock()
	s.notify(name)
}

// SelectAll replaces the section's selection with exactly ids, typically the
// current filtered view.
func (s *Store) SelectAll(name string, ids []string) {
	s.mu.Lock()
	sec := s.section(name)
	sec.selection = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		sec.selection[id] = struct{}{}
	}
	sec.toolbarVisible = len(sec.selection) > 0
	s.mu.Unlock()
	s.notify(name)
}

// ClearSelections empties the section's selection and hides the toolbar.
func (s *Store) ClearSelections(name string) {
	s.mu.Lock()
	sec := s.section(name)
	sec.selection = make(map[string]struct{})
	sec.toolbarVisible = false
	s.mu.Unlock()
	s.notify(name)
}

// Selected returns the section's selected ids in sorted order.
func (s *Store) Selected(name string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := s.section(name)
	ids := make([]string, 0, len(sec.selection))
	for id := range sec.selection {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ToolbarVisible reports whether the section's bulk action toolbar is shown.
func (s *Store) ToolbarVisible(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.section(name).toolbarVisible
}

// PerformBulkAction snapshots the current selection, applies fn to it, and
// clears the selection on success. On error the selection is kept so the user
// can retry.
func (s *Store) PerformBulkAction(ctx context.Context, name, action string, fn BulkActionFunc) error {
	ids := s.Selected(name)
	if len(ids) == 0 {
		return ErrNoSelection
	}

	if err := fn(ctx, action, ids); err != nil {
		s.logger.Error("bulk action failed", "section", normalize(name), "action", action, "count", len(ids), "error", err)
		return err
	}

	s.logger.Info("bulk action applied", "section", normalize(name), "action", action, "count", len(ids))
	s.ClearSelections(name)
	return nil
}

// Close stops all pending debounced updates.
func (s *Store) Close() {
	s.mu.Lock()
	debouncers := s.debouncers
	s.debouncers = make(map[string]*debounce.Debouncer[string])
	s.mu.Unlock()
	for _, d := range debouncers {
		d.Stop()
	}
}
