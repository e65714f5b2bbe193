package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"document-qa/internal/docstore"
	"document-qa/internal/models"
	"document-qa/internal/pipeline"
	"document-qa/internal/strategy"
)

type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	return []float32{float32(len(text)), 1}, nil
}

type stubSummarizer struct{}

func (stubSummarizer) Summarize(_ context.Context, _ string) (string, error) {
	return "stub summary", nil
}

type stubStrategy struct{ name string }

func (s stubStrategy) Name() string { return s.name }

func (s stubStrategy) Answer(_ context.Context, contextText, _ string) (string, error) {
	return "answer from " + s.name, nil
}

func newTestServer(t *testing.T) (*Server, docstore.Store) {
	t.Helper()
	reg := strategy.NewRegistry(stubStrategy{name: "bart"}, stubStrategy{name: "gpt2"}, stubStrategy{name: "bert"})
	p := pipeline.New(stubEmbedder{}, stubSummarizer{}, reg, 300, 1)
	store := docstore.NewMemory()
	return New(p, store, t.TempDir()), store
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadAndAsk(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, uploadRequest(t, "doc.txt", "the quick brown fox jumps over the lazy dog"))
	if rr.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body %s", rr.Code, rr.Body.String())
	}
	var up struct {
		Message string `json:"message"`
		DocID   string `json:"doc_id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &up); err != nil {
		t.Fatalf("decoding upload response: %v", err)
	}
	if up.DocID == "" {
		t.Fatal("upload returned empty doc_id")
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/summary/"+up.DocID, nil)
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("summary status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "stub summary") {
		t.Errorf("summary body = %s", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	ask := `{"question": "what does the fox do", "model": "gpt2"}`
	req = httptest.NewRequest(http.MethodPost, "/ask/"+up.DocID, strings.NewReader(ask))
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("ask status = %d, body %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "answer from gpt2") {
		t.Errorf("ask body = %s", rr.Body.String())
	}
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	srv, _ := newTestServer(t)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, uploadRequest(t, "sheet.xlsx", "cells"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestUploadWithoutFile(t *testing.T) {
	srv, _ := newTestServer(t)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestAskUnknownDocument(t *testing.T) {
	srv, _ := newTestServer(t)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ask/unknown-id", strings.NewReader(`{"question": "hi"}`))
	srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestAskWithoutQuestion(t *testing.T) {
	srv, store := newTestServer(t)
	id, err := store.Put(context.Background(), &models.Record{Summary: "s"})
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ask/"+id, strings.NewReader(`{}`))
	srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}
