// Package web serves the activities board to browsers. Every browser gets
// its own board.Board, found through a session cookie; form posts drive the
// board operations and redirect back to the page.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Shivanand-hulikatti/activities-board/internal/board"
)

// SessionCookie names the cookie carrying the board session id.
const SessionCookie = "board_session"

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Server holds the board HTTP handlers.
type Server struct {
	sessions     *board.Sessions
	log          zerolog.Logger
	tmpl         *template.Template
	secureCookie bool
}

// NewServer parses the templates and constructs a Server.
func NewServer(sessions *board.Sessions, log zerolog.Logger, secureCookie bool) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{sessions: sessions, log: log, tmpl: tmpl, secureCookie: secureCookie}, nil
}

// Routes returns the board router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", s.Index)
	r.Post("/signup", s.Signup)
	r.Get("/remove", s.ConfirmRemove)
	r.Post("/remove", s.Remove)

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	return r
}

// ─── Session helpers ──────────────────────────────────────────────────────────

func (s *Server) board(w http.ResponseWriter, r *http.Request) *board.Board {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}
	b, newID := s.sessions.Get(id)
	if newID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    newID,
			Path:     "/",
			HttpOnly: true,
			Secure:   s.secureCookie,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return b
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.log.Error().Err(err).Str("template", name).Msg("render failed")
	}
}

func backToBoard(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

type indexData struct {
	Page            board.Page
	ListHTML        template.HTML
	HideAfterMillis int64
}

// Index handles GET /
// Every view fetches the catalog, except the redirect that follows a form post.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	b := s.board(w, r)
	// A failed load is rendered as the failure notice.
	_ = b.Refresh(r.Context())

	page := b.Page()
	s.render(w, "index.html", indexData{
		Page:            page,
		ListHTML:        template.HTML(page.ListHTML),
		HideAfterMillis: page.MessageRemaining.Milliseconds(),
	})
}

// Signup handles POST /signup
func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	b := s.board(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	b.Signup(r.Context(), r.PostForm.Get("email"), r.PostForm.Get("activity"))
	backToBoard(w, r)
}

type confirmData struct {
	Prompt   string
	Activity string
	Email    string
}

// ConfirmRemove handles GET /remove?activity=&email=
// It asks the user to confirm before anything is sent to the API.
func (s *Server) ConfirmRemove(w http.ResponseWriter, r *http.Request) {
	activity := r.URL.Query().Get("activity")
	email := r.URL.Query().Get("email")
	if activity == "" || email == "" {
		backToBoard(w, r)
		return
	}
	s.render(w, "confirm.html", confirmData{
		Prompt:   board.RemovalPrompt(email, activity),
		Activity: activity,
		Email:    email,
	})
}

// Remove handles POST /remove
// The confirm field carries the user's answer to the confirmation page.
func (s *Server) Remove(w http.ResponseWriter, r *http.Request) {
	b := s.board(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	answer := r.PostForm.Get("confirm")
	b.Remove(r.Context(), r.PostForm.Get("activity"), r.PostForm.Get("email"),
		board.ConfirmFunc(func(string) bool { return answer == "yes" }))
	backToBoard(w, r)
}
