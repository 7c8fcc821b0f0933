package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Qween0fPandora/ai-summary-app/internal/services"
)

type Server struct {
	documents *services.DocumentService
	staticDir string
}

func NewServer(documents *services.DocumentService) *Server {
	return &Server{documents: documents, staticDir: "web/dist"}
}

// SetStaticDir overrides the directory the frontend is served from.
func (s *Server) SetStaticDir(dir string) {
	s.staticDir = dir
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))
	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", s.uploadDocument)
		r.Post("/extract", s.extractDocument)
		r.Post("/summarize", s.summarizeDocument)
		r.Route("/documents", func(r chi.Router) {
			r.Get("/", s.listDocuments)
			r.Get("/{id}", s.getDocument)
			r.Get("/{id}/file", s.serveDocumentFile)
		})
	})

	// Serve static files (frontend)
	r.Handle("/*", StaticHandler(s.staticDir))

	return r
}

// writeJSON writes v as the JSON response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an {"error": "..."} body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
