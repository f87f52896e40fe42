package web

import (
	"html/template"
	"log"
	"net/http"

	"github.com/dyluth/slate/internal/router"
	"github.com/dyluth/slate/pkg/board"
)

var (
	loginTemplate = template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/login.html"))
	mainTemplate  = template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/main.html"))
)

type loginData struct {
	Title string
	Theme board.Theme
	Error string
}

type mainData struct {
	Title        string
	Theme        board.Theme
	Greeting     string
	Tabs         []board.Tab
	CurrentTabID string
	Board        *board.Blackboard
	CanAddTab    bool
}

// handleLoginPage renders the login form, or skips it for a live session.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if s.loggedIn(r) {
		http.Redirect(w, r, router.MainPath, http.StatusSeeOther)
		return
	}
	s.renderLogin(w, http.StatusOK, "")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderLogin(w, http.StatusBadRequest, "Invalid form")
		return
	}

	username := r.FormValue("username")
	if !s.store.Login(username, r.FormValue("password")) {
		log.Printf("[Web] Failed login for %q", username)
		s.renderLogin(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := s.sessions.SetCookie(w, r, username); err != nil {
		log.Printf("[Web] Failed to issue session: %v", err)
		s.renderLogin(w, http.StatusInternalServerError, "Could not start a session")
		return
	}

	http.Redirect(w, r, router.MainPath, http.StatusSeeOther)
}

// handleLogout ends the workspace session only for a caller holding a valid
// session cookie. Anyone else just loses their own cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if username, ok := s.sessions.FromRequest(r); ok {
		s.store.Logout()
		log.Printf("[Web] %s logged out", username)
	}
	s.sessions.ClearCookie(w)
	http.Redirect(w, r, router.LoginPath, http.StatusSeeOther)
}

// handleMainPage renders the workspace. The guard has already checked the session.
func (s *Server) handleMainPage(w http.ResponseWriter, r *http.Request) {
	data := mainData{
		Title:     "Workspace",
		Theme:     s.store.Theme(),
		Greeting:  s.config.GetGreeting(r.Context()),
		Tabs:      s.store.Tabs(),
		CanAddTab: s.store.CanAddTab(),
	}
	if id := s.store.CurrentTabID(); id != nil {
		data.CurrentTabID = *id
	}
	if b, ok := s.store.CurrentBlackboard(); ok {
		data.Board = &b
	}

	render(w, http.StatusOK, mainTemplate, data)
}

func (s *Server) renderLogin(w http.ResponseWriter, status int, errMsg string) {
	render(w, status, loginTemplate, loginData{
		Title: "Login",
		Theme: s.store.Theme(),
		Error: errMsg,
	})
}

func render(w http.ResponseWriter, status int, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		log.Printf("[Web] Failed to render %s: %v", tmpl.Name(), err)
	}
}
