// Package app holds the slate application state: the session flag, the theme
// and the ordered set of boards, and mirrors every change to the remote store.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/dyluth/slate/pkg/board"
)

// DefaultMaxTabs bounds the number of open tabs when no limit is configured.
const DefaultMaxTabs = 10

// DefaultPersistTimeout bounds a single background write.
const DefaultPersistTimeout = 5 * time.Second

// Persister is the slice of the persistence gateway the store depends on.
// Implementations swallow their own failures; none of these calls can fail.
type Persister interface {
	GetTheme(ctx context.Context) board.Theme
	SaveTheme(ctx context.Context, theme board.Theme)
	GetTabs(ctx context.Context) []board.Tab
	SaveTabs(ctx context.Context, tabs []board.Tab)
	GetBlackboards(ctx context.Context) []board.Blackboard
	SaveBlackboards(ctx context.Context, blackboards []board.Blackboard)
}

// Store is the single shared application state. It is passed explicitly to
// whoever needs it. All methods are safe for concurrent use.
//
// Mutations update memory synchronously and hand persistence to a background
// writer; callers never wait for, or learn about, the remote write.
type Store struct {
	persister      Persister
	maxTabs        int
	credentials    Credentials
	now            func() time.Time
	persistTimeout time.Duration
	status         *StatusFeed
	writer         *writer

	mu           sync.RWMutex
	isLoggedIn   bool
	theme        board.Theme
	boards       []board.Board
	currentTabID *string
}

// Option configures a Store.
type Option func(*Store)

// WithMaxTabs sets the tab limit enforced by AddTab. Values below 1 are ignored.
func WithMaxTabs(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxTabs = n
		}
	}
}

// WithCredentials sets the credentials accepted by Login.
func WithCredentials(c Credentials) Option {
	return func(s *Store) {
		s.credentials = c
	}
}

// WithClock overrides the time source used for tab IDs.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithPersistTimeout bounds each background write.
func WithPersistTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.persistTimeout = d
		}
	}
}

// WithStatusFeed publishes persistence failures on feed instead of a private one.
// Share the feed with the gateway's error hook to surface remote failures.
func WithStatusFeed(feed *StatusFeed) Option {
	return func(s *Store) {
		s.status = feed
	}
}

// NewStore creates a store in its initial state: logged out, light theme, no tabs.
// Call Close when done to drain pending writes.
func NewStore(p Persister, opts ...Option) *Store {
	s := &Store{
		persister:      p,
		maxTabs:        DefaultMaxTabs,
		now:            time.Now,
		persistTimeout: DefaultPersistTimeout,
		theme:          board.ThemeLight,
		boards:         []board.Board{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.status == nil {
		s.status = NewStatusFeed(0)
	}
	s.writer = newWriter(s.persistTimeout)

	return s
}

// Close drains queued writes and stops the background writer.
func (s *Store) Close() error {
	s.writer.close()
	return nil
}

// Flush blocks until every write queued before the call has been attempted.
func (s *Store) Flush(ctx context.Context) error {
	return s.writer.flush(ctx)
}

// Status returns the feed of persistence failures.
func (s *Store) Status() <-chan WriteStatus {
	return s.status.C()
}

// MaxTabs returns the configured tab limit.
func (s *Store) MaxTabs() int {
	return s.maxTabs
}

// IsLoggedIn reports the session flag.
func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLoggedIn
}

// Theme returns the current theme.
func (s *Store) Theme() board.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// CurrentTabID returns the selected tab ID, or nil if none is selected.
func (s *Store) CurrentTabID() *string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyID(s.currentTabID)
}

// Tabs returns the open tabs in order.
func (s *Store) Tabs() []board.Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return tabsOf(s.boards)
}

// Blackboards returns the blackboards in tab order.
func (s *Store) Blackboards() []board.Blackboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return blackboardsOf(s.boards)
}

// CurrentTab returns the selected tab. ok is false if nothing is selected or
// the selection names a tab that does not exist.
func (s *Store) CurrentTab() (tab board.Tab, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.currentIndex(); i >= 0 {
		return s.boards[i].Tab, true
	}
	return board.Tab{}, false
}

// CurrentBlackboard returns the blackboard of the selected tab.
func (s *Store) CurrentBlackboard() (b board.Blackboard, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.currentIndex(); i >= 0 {
		return cloneBlackboard(s.boards[i].Blackboard), true
	}
	return board.Blackboard{}, false
}

// CanAddTab reports whether another tab fits under the limit.
func (s *Store) CanAddTab() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.boards) < s.maxTabs
}

// State returns a snapshot of the whole workspace.
func (s *Store) State() board.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return board.AppState{
		Theme:        s.theme,
		CurrentTabID: copyID(s.currentTabID),
		Tabs:         tabsOf(s.boards),
		Blackboards:  blackboardsOf(s.boards),
	}
}

// currentIndex returns the index of the selected board, or -1. Caller holds mu.
func (s *Store) currentIndex() int {
	if s.currentTabID == nil {
		return -1
	}
	return s.indexOf(*s.currentTabID)
}

// indexOf returns the index of the board with id, or -1. Caller holds mu.
func (s *Store) indexOf(id string) int {
	for i := range s.boards {
		if s.boards[i].ID() == id {
			return i
		}
	}
	return -1
}

func tabsOf(boards []board.Board) []board.Tab {
	tabs := make([]board.Tab, len(boards))
	for i := range boards {
		tabs[i] = boards[i].Tab
	}
	return tabs
}

func blackboardsOf(boards []board.Board) []board.Blackboard {
	blackboards := make([]board.Blackboard, len(boards))
	for i := range boards {
		blackboards[i] = cloneBlackboard(boards[i].Blackboard)
	}
	return blackboards
}

// cloneBlackboard deep-copies b so snapshots never alias live state.
func cloneBlackboard(b board.Blackboard) board.Blackboard {
	items := make([]board.BlackboardItem, len(b.Items))
	for i, item := range b.Items {
		if item.Content != nil {
			item.Content = append([]byte(nil), item.Content...)
		}
		if item.Size != nil {
			size := *item.Size
			item.Size = &size
		}
		items[i] = item
	}
	b.Items = items
	return b
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
