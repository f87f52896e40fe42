package listing

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dyluth/slate/internal/timespec"
	"github.com/dyluth/slate/pkg/board"
	"github.com/dyluth/slate/pkg/kv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t0 = time.Date(2025, 10, 29, 12, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
	t2 = t0.Add(2 * time.Hour)
)

func setupGateway(t *testing.T) *kv.Gateway {
	t.Helper()
	mr := miniredis.RunT(t)
	gw, err := kv.NewGateway(&redis.Options{Addr: mr.Addr()}, "test-instance")
	require.NoError(t, err)
	t.Cleanup(func() { gw.Close() })
	return gw
}

func seed(t *testing.T, gw *kv.Gateway) {
	t.Helper()
	ctx := context.Background()

	tabs := []board.Tab{
		{ID: board.NewTabID(t0), Title: "Meeting notes", Content: "# Agenda\n- budget"},
		{ID: board.NewTabID(t1), Title: "Sketch", Content: ""},
		{ID: board.NewTabID(t2), Title: "Meeting follow-up", Content: "\n\n  call Bob  "},
	}
	blackboards := []board.Blackboard{
		{ID: tabs[0].ID, Title: tabs[0].Title, Items: []board.BlackboardItem{
			{ID: "i1", Type: board.ItemTypeText, Content: json.RawMessage(`"hi"`)},
			{ID: "i2", Type: board.ItemTypeLine, Content: json.RawMessage(`[]`)},
		}},
		{ID: tabs[1].ID, Title: tabs[1].Title, Items: []board.BlackboardItem{}},
	}

	gw.SaveTabs(ctx, tabs)
	gw.SaveBlackboards(ctx, blackboards)
}

func TestLoad(t *testing.T) {
	gw := setupGateway(t)
	seed(t, gw)

	entries := Load(context.Background(), gw)
	require.Len(t, entries, 3)

	assert.Equal(t, "Meeting notes", entries[0].Tab.Title)
	assert.Len(t, entries[0].Blackboard.Items, 2)
	assert.Equal(t, t0.UnixMilli(), entries[0].CreatedAtMs)

	// Third tab has no stored blackboard
	assert.Equal(t, entries[2].Tab.ID, entries[2].Blackboard.ID)
	assert.NotNil(t, entries[2].Blackboard.Items)
	assert.Empty(t, entries[2].Blackboard.Items)
}

func TestCriteria_Matches(t *testing.T) {
	entry := Entry{Tab: board.Tab{ID: board.NewTabID(t1), Title: "Meeting notes"}, CreatedAtMs: t1.UnixMilli()}
	legacy := Entry{Tab: board.Tab{ID: "custom", Title: "Meeting notes"}}

	testCases := []struct {
		name     string
		criteria Criteria
		entry    Entry
		want     bool
	}{
		{"empty criteria", Criteria{}, entry, true},
		{"since before", Criteria{Created: timespec.Range{SinceMs: t0.UnixMilli()}}, entry, true},
		{"since after", Criteria{Created: timespec.Range{SinceMs: t2.UnixMilli()}}, entry, false},
		{"until after", Criteria{Created: timespec.Range{UntilMs: t2.UnixMilli()}}, entry, true},
		{"until before", Criteria{Created: timespec.Range{UntilMs: t0.UnixMilli()}}, entry, false},
		{"title glob", Criteria{TitleGlob: "meeting*"}, entry, true},
		{"title glob miss", Criteria{TitleGlob: "sketch*"}, entry, false},
		{"bad glob", Criteria{TitleGlob: "["}, entry, false},
		{"no timestamp without time filter", Criteria{TitleGlob: "*notes"}, legacy, true},
		{"no timestamp with time filter", Criteria{Created: timespec.Range{SinceMs: 1}}, legacy, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.criteria.Matches(tc.entry))
		})
	}
}

func TestListTabs_Table(t *testing.T) {
	gw := setupGateway(t)
	seed(t, gw)

	var buf bytes.Buffer
	require.NoError(t, ListTabs(context.Background(), gw, "test-instance", OutputFormatDefault, nil, &buf))

	out := buf.String()
	assert.Contains(t, out, "Tabs for instance 'test-instance'")
	assert.Contains(t, out, "# Agenda")
	assert.Contains(t, out, "call Bob")
	assert.Contains(t, out, "3 tabs found")
}

func TestListTabs_Filtered(t *testing.T) {
	gw := setupGateway(t)
	seed(t, gw)

	var buf bytes.Buffer
	filters := &Criteria{TitleGlob: "Meeting*", Created: timespec.Range{SinceMs: t1.UnixMilli()}}
	require.NoError(t, ListTabs(context.Background(), gw, "test-instance", OutputFormatJSONL, filters, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var e Entry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &e))
	assert.Equal(t, "Meeting follow-up", e.Tab.Title)
}

func TestListTabs_Empty(t *testing.T) {
	gw := setupGateway(t)

	var buf bytes.Buffer
	require.NoError(t, ListTabs(context.Background(), gw, "test-instance", OutputFormatDefault, nil, &buf))
	assert.Equal(t, "No tabs found for instance 'test-instance'\n", buf.String())
}

func TestListTabs_UnknownFormat(t *testing.T) {
	gw := setupGateway(t)

	err := ListTabs(context.Background(), gw, "test-instance", "xml", nil, &bytes.Buffer{})
	assert.EqualError(t, err, "unknown output format: xml")
}

func TestGetTab(t *testing.T) {
	gw := setupGateway(t)
	seed(t, gw)

	var buf bytes.Buffer
	require.NoError(t, GetTab(context.Background(), gw, board.NewTabID(t0), &buf))

	var e Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &e))
	assert.Equal(t, "Meeting notes", e.Tab.Title)
	assert.Len(t, e.Blackboard.Items, 2)
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))

	err := GetTab(context.Background(), gw, "tab-0", &buf)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.EqualError(t, err, "tab with ID 'tab-0' not found")
}
