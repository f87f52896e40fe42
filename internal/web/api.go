package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/dyluth/slate/internal/router"
	"github.com/dyluth/slate/pkg/board"
	"github.com/yuin/goldmark"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 4 << 20

type themeResponse struct {
	Theme board.Theme `json:"theme"`
}

type greetingResponse struct {
	Greeting string `json:"greeting"`
}

type flagResponse struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	user := board.User{IsLoggedIn: s.loggedIn(r)}
	if user.IsLoggedIn {
		user.Username, _ = s.sessions.FromRequest(r)
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.State())
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme := s.store.ToggleTheme()
	s.reply(w, r, http.StatusOK, themeResponse{Theme: theme})
}

func (s *Server) handleAddTab(w http.ResponseWriter, r *http.Request) {
	tab, ok := s.store.AddTab()
	if !ok {
		writeError(w, http.StatusConflict, fmt.Sprintf("tab limit reached (max %d)", s.store.MaxTabs()))
		return
	}
	s.reply(w, r, http.StatusCreated, tab)
}

// handleUpdateTab replaces the title and content of a tab. The id comes from
// the path; an id in the body must agree with it.
func (s *Server) handleUpdateTab(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var tab board.Tab
	if !decodeBody(w, r, &tab) {
		return
	}
	if tab.ID == "" {
		tab.ID = id
	}
	if tab.ID != id {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("body id %q does not match path id %q", tab.ID, id))
		return
	}

	if !s.store.UpdateTab(tab) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("tab %s not found", id))
		return
	}
	writeJSON(w, http.StatusOK, tab)
}

func (s *Server) handleRemoveTab(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.store.RemoveTab(id) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("tab %s not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSwitchTab selects a tab. Unknown ids are accepted, matching the store.
func (s *Server) handleSwitchTab(w http.ResponseWriter, r *http.Request) {
	s.store.SwitchTab(r.PathValue("id"))
	s.reply(w, r, http.StatusOK, s.store.State())
}

// handlePreview renders a tab's content as Markdown.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	for _, tab := range s.store.Tabs() {
		if tab.ID != id {
			continue
		}

		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(tab.Content), &buf); err != nil {
			log.Printf("[Web] Failed to convert markdown for %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "failed to render preview")
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
		return
	}

	writeError(w, http.StatusNotFound, fmt.Sprintf("tab %s not found", id))
}

// handleUpdateBlackboard replaces a blackboard. Items without an id are
// assigned one before validation.
func (s *Server) handleUpdateBlackboard(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var b board.Blackboard
	if !decodeBody(w, r, &b) {
		return
	}
	if b.ID == "" {
		b.ID = id
	}
	if b.ID != id {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("body id %q does not match path id %q", b.ID, id))
		return
	}
	for i := range b.Items {
		if b.Items[i].ID == "" {
			b.Items[i].ID = board.NewItemID()
		}
	}
	if err := b.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !s.store.UpdateBlackboard(b) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("blackboard %s not found", id))
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleAutoSave(w http.ResponseWriter, r *http.Request) {
	s.store.AutoSave()
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleGreeting(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, greetingResponse{Greeting: s.config.GetGreeting(r.Context())})
}

func (s *Server) handleFeatureFlag(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	writeJSON(w, http.StatusOK, flagResponse{
		Name:    name,
		Enabled: s.config.GetFeatureFlag(r.Context(), name),
	})
}

// reply answers API clients with JSON and browser form posts with a redirect
// back to the workspace.
func (s *Server) reply(w http.ResponseWriter, r *http.Request, status int, v any) {
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		http.Redirect(w, r, router.MainPath, http.StatusSeeOther)
		return
	}
	writeJSON(w, status, v)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
		return false
	}
	return true
}
