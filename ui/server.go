// Package ui serves a browser palette: each session owns a search.Session
// and is queried on every keystroke.
package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/dhamidi/palette/format"
	"github.com/dhamidi/palette/model"
	"github.com/dhamidi/palette/search"
	"github.com/google/uuid"
	"github.com/tliron/commonlog"
)

//go:embed static templates
var embeddedFS embed.FS

var log = commonlog.GetLogger("palette.ui")

type session struct {
	search     *search.Session
	candidates []*search.Candidate
}

type Server struct {
	registry   *search.Registry
	env        search.Environment
	options    []search.Option
	staticFS   fs.FS
	templateFS fs.FS
	funcMap    template.FuncMap
	mux        *http.ServeMux

	mu       sync.Mutex
	sessions map[string]*session
}

// NewServer serves the embedded assets. When assetDir is not empty, files in
// its static/ and templates/ directories shadow the embedded ones and are
// re-read on every request, for editing the UI without rebuilding.
func NewServer(registry *search.Registry, env search.Environment, assetDir string, opts ...search.Option) (*Server, error) {
	staticFS := assets(assetDir, "static")
	templateFS := assets(assetDir, "templates")

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"score": func(f float64) string {
			return strconv.FormatFloat(f, 'f', 2, 64)
		},
		"targetNames": func(targets []model.Target) []string {
			names := make([]string, len(targets))
			for i, t := range targets {
				names[i] = t.Name
			}
			return names
		},
	}

	// Parse once up front so a broken template fails at startup.
	if _, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "*.html"); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		registry:   registry,
		env:        env,
		options:    opts,
		staticFS:   staticFS,
		templateFS: templateFS,
		funcMap:    funcMap,
		mux:        http.NewServeMux(),
		sessions:   make(map[string]*session),
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("POST /sessions", s.handleCreateSession)
	s.mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	s.mux.HandleFunc("GET /sessions/{id}/search", s.handleSearch)
	s.mux.HandleFunc("POST /sessions/{id}/edits", s.handleEdit)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.New("").Funcs(s.funcMap).ParseFS(s.templateFS, "*.html")
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Errorf("render %s: %s", name, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Targets []model.Target
	}{
		Targets: s.env.Targets,
	}
	s.render(w, "index.html", data)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &session{search: search.NewSession(s.registry, s.env, s.options...)}
	s.mu.Unlock()
	log.Infof("session %s created", id)

	w.Header().Set("Location", "/sessions/"+id)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	s.mu.Lock()
	sess, ok := s.sessions[r.PathValue("id")]
	var candidates []*search.Candidate
	if ok {
		candidates = sess.search.Update(query)
		sess.candidates = candidates
	}
	s.mu.Unlock()
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	if r.Header.Get("Accept") == "application/json" {
		writeJSON(w, http.StatusOK, format.Candidates(candidates))
		return
	}

	data := struct {
		Query      string
		Candidates []*search.Candidate
	}{
		Query:      query,
		Candidates: candidates,
	}
	s.render(w, "_candidates.html", data)
}

// EditRequest asks for the candidate with the given ID to be spliced into
// Document at the named target.
type EditRequest struct {
	Candidate int    `json:"candidate"`
	Target    string `json:"target"`
	Document  string `json:"document"`
}

type EditResponse struct {
	Text     string `json:"text"`
	Document string `json:"document"`
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	sess, ok := s.sessions[r.PathValue("id")]
	var candidate *search.Candidate
	if ok {
		for _, c := range sess.candidates {
			if c.ID == req.Candidate {
				candidate = c
				break
			}
		}
	}
	s.mu.Unlock()
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	if candidate == nil {
		http.Error(w, fmt.Sprintf("candidate %d not found", req.Candidate), http.StatusNotFound)
		return
	}

	var target *model.Target
	for i := range s.env.Targets {
		if s.env.Targets[i].Name == req.Target {
			target = &s.env.Targets[i]
			break
		}
	}
	if target == nil {
		http.Error(w, fmt.Sprintf("target %q not found", req.Target), http.StatusNotFound)
		return
	}

	edit, err := candidate.BuildEdit(*target)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	doc, err := edit.Apply(req.Document)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, EditResponse{Text: edit.Text, Document: doc})
}

func assets(dir, name string) fs.FS {
	embedded, err := fs.Sub(embeddedFS, name)
	if err != nil {
		panic(err)
	}
	if dir == "" {
		return embedded
	}
	log.Infof("serving %s from %s", name, filepath.Join(dir, name))
	return layeredFS{os.DirFS(filepath.Join(dir, name)), embedded}
}

// layeredFS looks files up in each layer in turn.
type layeredFS []fs.FS

func (l layeredFS) Open(name string) (fs.File, error) {
	var err error
	for _, layer := range l {
		var f fs.File
		if f, err = layer.Open(name); err == nil {
			return f, nil
		}
	}
	return nil, err
}

// ReadDir merges the listings of every layer; earlier layers win on name.
func (l layeredFS) ReadDir(name string) ([]fs.DirEntry, error) {
	seen := make(map[string]bool)
	var merged []fs.DirEntry
	found := false
	for _, layer := range l {
		list, err := fs.ReadDir(layer, name)
		if err != nil {
			continue
		}
		found = true
		for _, e := range list {
			if !seen[e.Name()] {
				seen[e.Name()] = true
				merged = append(merged, e)
			}
		}
	}
	if !found {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	slices.SortFunc(merged, func(a, b fs.DirEntry) int { return strings.Compare(a.Name(), b.Name()) })
	return merged, nil
}
