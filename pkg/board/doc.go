// Package board provides the Go definitions and Redis key schema for slate
// workspaces.
//
// # Overview
//
// A workspace is a set of tabs. Every tab owns exactly one blackboard: a named
// canvas holding positioned items (text blocks and lines). The tab and its
// blackboard share an ID of the form "tab-<unix-ms>".
//
// On the wire, and in Redis, tabs and blackboards are stored as two separate
// ordered lists. In memory they are held together as a Board so the two lists
// can never drift out of step.
//
// # Usage Example
//
//	import "github.com/dyluth/slate/pkg/board"
//
//	id := board.NewTabID(time.Now())
//	b := board.Board{
//		Tab:        board.Tab{ID: id, Title: "Tab 1"},
//		Blackboard: board.Blackboard{ID: id, Title: "Tab 1", Items: []board.BlackboardItem{}},
//	}
//
//	if err := b.Blackboard.Validate(); err != nil {
//		log.Fatal(err)
//	}
//
//	key := board.Key("default", board.EntityTabs)
//	// key = "slate:default:tabs"
//
// # Redis Schema
//
// Theme: slate:{instance_name}:theme        (JSON string "light" or "dark")
// Tabs: slate:{instance_name}:tabs          (JSON array of Tab)
// Blackboards: slate:{instance_name}:blackboards (JSON array of Blackboard)
//
// Pub/Sub channel: slate:{instance_name}:board_events
package board
