package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/xhad/docintel/internal/models"
	"github.com/xhad/docintel/internal/types"
)

// Ingestor runs one uploaded document through the ingestion pipeline.
type Ingestor interface {
	Analyse(ctx context.Context, document []byte, fileName string) error
}

// Answerer generates an answer grounded on retrieved chunks.
type Answerer interface {
	Answer(ctx context.Context, question string, chunks []models.Chunk) (string, error)
}

// Server is the HTTP API for uploading and querying documents.
type Server struct {
	router      chi.Router
	ingestor    Ingestor
	retriever   types.Retriever
	answerer    Answerer
	searchLimit int
	log         *slog.Logger
}

type Option func(*Server)

// WithRetrieval enables the search and ask endpoints.
func WithRetrieval(retriever types.Retriever, answerer Answerer, limit int) Option {
	return func(s *Server) {
		s.retriever = retriever
		s.answerer = answerer
		if limit > 0 {
			s.searchLimit = limit
		}
	}
}

func New(ingestor Ingestor, log *slog.Logger, opts ...Option) *Server {
	s := &Server{
		ingestor:    ingestor,
		searchLimit: 5,
		log:         log,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyse", s.handleAnalyse)
		if s.retriever != nil {
			r.Get("/search", s.handleSearch)
		}
		if s.retriever != nil && s.answerer != nil {
			r.Post("/ask", s.handleAsk)
		}
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
