package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/xhad/docintel/internal/models"
	"github.com/xhad/docintel/pkg/llm"
)

const (
	msgAnalysed      = "Document analysed successfully"
	msgAnalyseFailed = "Error analysing document"
)

func (s *Server) handleAnalyse(w http.ResponseWriter, r *http.Request) {
	data, fileName, err := readUpload(r)
	if err != nil {
		s.log.Error("error reading uploaded document", "error", err)
		http.Error(w, msgAnalyseFailed, http.StatusInternalServerError)
		return
	}

	s.log.Info("analysing document", "file_name", fileName)

	if err := s.ingestor.Analyse(r.Context(), data, fileName); err != nil {
		s.log.Error("error analysing document", "file_name", fileName, "error", err)
		http.Error(w, msgAnalyseFailed, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(msgAnalysed))
}

func readUpload(r *http.Request) ([]byte, string, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("read form file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, header.Filename, fmt.Errorf("read %s: %w", header.Filename, err)
	}
	return data, header.Filename, nil
}

type searchResult struct {
	Text       string  `json:"text"`
	PageNumber int     `json:"page_number"`
	FileName   string  `json:"file_name"`
	Score      float32 `json:"score"`
}

func toResults(chunks []models.Chunk) []searchResult {
	out := make([]searchResult, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, searchResult{
			Text:       c.Text,
			PageNumber: c.PageNumber,
			FileName:   c.FileName,
			Score:      c.Score,
		})
	}
	return out
}

func (s *Server) limit(raw string) int {
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return n
	}
	return s.searchLimit
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		jsonError(w, "q is required", http.StatusBadRequest)
		return
	}

	chunks, err := s.retriever.Search(r.Context(), query, s.limit(r.URL.Query().Get("k")))
	if err != nil {
		s.log.Error("search failed", "error", err)
		jsonError(w, "search failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toResults(chunks))
}

type askRequest struct {
	Question string `json:"question"`
	K        int    `json:"k"`
}

type askResponse struct {
	Answer  string         `json:"answer"`
	Sources []string       `json:"sources"`
	Chunks  []searchResult `json:"chunks"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		jsonError(w, "question is required", http.StatusBadRequest)
		return
	}

	limit := s.searchLimit
	if req.K > 0 {
		limit = req.K
	}

	chunks, err := s.retriever.Search(r.Context(), req.Question, limit)
	if err != nil {
		s.log.Error("search failed", "error", err)
		jsonError(w, "search failed", http.StatusInternalServerError)
		return
	}

	answer, err := s.answerer.Answer(r.Context(), req.Question, chunks)
	if err != nil {
		s.log.Error("answer failed", "error", err)
		jsonError(w, "answer failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, askResponse{
		Answer:  answer,
		Sources: llm.Sources(chunks),
		Chunks:  toResults(chunks),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
