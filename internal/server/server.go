package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"document-qa/internal/docstore"
	"document-qa/internal/models"
	"document-qa/internal/pipeline"
)

// Server is the HTTP surface over the document pipeline: upload a document,
// fetch its summary, ask questions against it. Everything else lives in the
// pipeline; handlers only validate input and translate errors.
type Server struct {
	pipeline  *pipeline.Pipeline
	store     docstore.Store
	uploadDir string
}

func New(p *pipeline.Pipeline, store docstore.Store, uploadDir string) *Server {
	return &Server{pipeline: p, store: store, uploadDir: uploadDir}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("GET /summary/{id}", s.handleSummary)
	mux.HandleFunc("POST /ask/{id}", s.handleAsk)
	mux.HandleFunc("GET /healthz", handleHealth)
	return mux
}

func (s *Server) ListenAndServe(addr string) error {
	log.Info().Str("addr", addr).Msg("Document QA server listening")
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No file uploaded"})
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No file selected"})
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !models.AllowedExtensions[ext] {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("File type not allowed: %s", ext)})
		return
	}

	path := filepath.Join(s.uploadDir, filepath.Base(header.Filename))
	if err := saveUpload(file, path); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Error saving upload")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to save the file"})
		return
	}
	log.Debug().Str("path", path).Msg("Saved uploaded file")

	rec, err := s.pipeline.Ingest(r.Context(), path, ext)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Error processing document")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to process the document"})
		return
	}

	id, err := s.store.Put(r.Context(), rec)
	if err != nil {
		log.Error().Err(err).Msg("Error storing document record")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to store the document"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "File uploaded and processed.",
		"doc_id":  id,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, docstore.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Document not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": rec.Summary})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, docstore.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Document not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	var req models.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if req.Question == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Question not provided"})
		return
	}

	answer, err := s.pipeline.Query(r.Context(), rec, req.Question, req.Model)
	if err != nil {
		log.Error().Err(err).Msg("Error answering question")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: fmt.Sprintf("Error processing question: %v", err)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func saveUpload(src io.Reader, path string) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return err
	}
	return dst.Close()
}
