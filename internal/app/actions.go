package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dyluth/slate/pkg/board"
)

// Initialize replaces the in-memory theme, tabs and blackboards with whatever
// the persister holds and selects the first tab. Meant to be called once at startup.
func (s *Store) Initialize(ctx context.Context) {
	theme := s.persister.GetTheme(ctx)
	tabs := s.persister.GetTabs(ctx)
	blackboards := s.persister.GetBlackboards(ctx)

	boards := joinBoards(tabs, blackboards)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = theme
	s.boards = boards
	s.currentTabID = nil
	if len(boards) > 0 {
		id := boards[0].ID()
		s.currentTabID = &id
	}

	log.Printf("[Store] Initialized: theme=%s tabs=%d", theme, len(boards))
}

// Login sets the session flag if username and password match the configured credentials.
func (s *Store) Login(username, password string) bool {
	if !s.credentials.Match(username, password) {
		return false
	}

	s.mu.Lock()
	s.isLoggedIn = true
	s.mu.Unlock()

	return true
}

// Logout clears the session flag.
func (s *Store) Logout() {
	s.mu.Lock()
	s.isLoggedIn = false
	s.mu.Unlock()
}

// ToggleTheme flips between light and dark and persists the new theme.
func (s *Store) ToggleTheme() board.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = s.theme.Toggle()
	theme := s.theme
	s.enqueue("save theme", func(ctx context.Context) {
		s.persister.SaveTheme(ctx, theme)
	})

	return theme
}

// AddTab opens a new tab with an empty blackboard and selects it.
// Does nothing and returns ok=false when the tab limit is reached.
func (s *Store) AddTab() (tab board.Tab, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.boards) >= s.maxTabs {
		return board.Tab{}, false
	}

	id := s.nextTabID()
	tab = board.Tab{
		ID:      id,
		Title:   fmt.Sprintf("Tab %d", len(s.boards)+1),
		Content: "",
	}
	s.boards = append(s.boards, board.Board{
		Tab: tab,
		Blackboard: board.Blackboard{
			ID:    id,
			Title: tab.Title,
			Items: []board.BlackboardItem{},
		},
	})
	s.currentTabID = &id

	s.persistBoards()
	return tab, true
}

// RemoveTab closes the tab with id together with its blackboard.
// If it was selected, the first remaining tab (or nothing) becomes selected.
// Returns false if no such tab exists.
func (s *Store) RemoveTab(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	s.boards = append(s.boards[:i], s.boards[i+1:]...)

	if s.currentTabID != nil && *s.currentTabID == id {
		s.currentTabID = nil
		if len(s.boards) > 0 {
			first := s.boards[0].ID()
			s.currentTabID = &first
		}
	}

	s.persistBoards()
	return true
}

// SwitchTab selects id. The id is not checked; selecting an unknown tab
// makes CurrentTab report nothing.
func (s *Store) SwitchTab(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentTabID = &id
}

// UpdateBlackboard replaces the blackboard with the same ID and persists the
// blackboard list. Returns false if no such blackboard exists.
func (s *Store) UpdateBlackboard(b board.Blackboard) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(b.ID)
	if i < 0 {
		return false
	}

	if b.Items == nil {
		b.Items = []board.BlackboardItem{}
	}
	s.boards[i].Blackboard = cloneBlackboard(b)

	blackboards := blackboardsOf(s.boards)
	s.enqueue("save blackboards", func(ctx context.Context) {
		s.persister.SaveBlackboards(ctx, blackboards)
	})
	return true
}

// UpdateTab replaces the title and content of the tab with the same ID.
// The title is mirrored onto its blackboard. Returns false if no such tab exists.
func (s *Store) UpdateTab(t board.Tab) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(t.ID)
	if i < 0 {
		return false
	}

	s.boards[i].Tab = t
	s.boards[i].Blackboard.Title = t.Title

	s.persistBoards()
	return true
}

// AutoSave persists the current tabs and blackboards unconditionally.
func (s *Store) AutoSave() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.persistBoards()
}

// persistBoards queues a write of both lists. Caller holds mu.
// The two saves are independent; there is no transaction around them.
func (s *Store) persistBoards() {
	tabs := tabsOf(s.boards)
	blackboards := blackboardsOf(s.boards)

	s.enqueue("save boards", func(ctx context.Context) {
		s.persister.SaveTabs(ctx, tabs)
		s.persister.SaveBlackboards(ctx, blackboards)
	})
}

// enqueue hands a write to the background writer. Caller holds mu, which
// keeps queue order equal to mutation order.
func (s *Store) enqueue(name string, write func(ctx context.Context)) {
	if !s.writer.enqueue(write) {
		log.Printf("[Store] Dropped %s: store is closed", name)
		s.status.Report("enqueue", name, ErrStoreClosed)
	}
}

// nextTabID derives a tab ID from the clock, bumping it until it is unused. Caller holds mu.
func (s *Store) nextTabID() string {
	now := s.now()
	id := board.NewTabID(now)
	for s.indexOf(id) >= 0 {
		now = now.Add(time.Millisecond)
		id = board.NewTabID(now)
	}
	return id
}

// joinBoards pairs each tab with the blackboard of the same ID, in tab order.
// A tab without a blackboard gets an empty one; blackboards without a tab are dropped.
func joinBoards(tabs []board.Tab, blackboards []board.Blackboard) []board.Board {
	byID := make(map[string]board.Blackboard, len(blackboards))
	for _, b := range blackboards {
		if _, dup := byID[b.ID]; dup {
			log.Printf("[Store] Warning: duplicate blackboard %s, keeping the first", b.ID)
			continue
		}
		byID[b.ID] = b
	}

	boards := make([]board.Board, 0, len(tabs))
	seen := make(map[string]bool, len(tabs))
	for _, tab := range tabs {
		if seen[tab.ID] {
			log.Printf("[Store] Warning: duplicate tab %s, keeping the first", tab.ID)
			continue
		}
		seen[tab.ID] = true

		b, found := byID[tab.ID]
		if !found {
			log.Printf("[Store] Warning: tab %s has no blackboard, creating an empty one", tab.ID)
			b = board.Blackboard{ID: tab.ID, Title: tab.Title}
		}
		if b.Items == nil {
			b.Items = []board.BlackboardItem{}
		}
		boards = append(boards, board.Board{Tab: tab, Blackboard: b})
	}

	for id := range byID {
		if !seen[id] {
			log.Printf("[Store] Warning: dropping blackboard %s with no matching tab", id)
		}
	}

	return boards
}
