package models

// Record is the result of ingesting one document: its summary plus the
// retrieval chunks and their embeddings. Chunks and Embeddings are parallel
// slices; the embedding at index i belongs to the chunk at index i. A Record
// is written once at ingestion and never mutated afterwards.
type Record struct {
	Summary    string      `json:"summary"`
	Chunks     []string    `json:"chunks"`
	Embeddings [][]float32 `json:"embeddings"`
}

// AnswerRequest is a single question against a stored document.
type AnswerRequest struct {
	Question string `json:"question"`
	Model    string `json:"model"`
}
