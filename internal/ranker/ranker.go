package ranker

import (
	"errors"
	"math"
)

// ErrNoVectors is returned when ranking is attempted over an empty set.
// Callers are expected to guard zero-chunk records before calling Rank.
var ErrNoVectors = errors.New("no chunk vectors to rank")

// Cosine returns the cosine similarity of two vectors. Mismatched lengths
// and zero-norm vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank returns the index of the chunk vector most similar to the question
// vector. Ties resolve to the lowest index, so the result is deterministic.
func Rank(question []float32, chunks [][]float32) (int, error) {
	if len(chunks) == 0 {
		return 0, ErrNoVectors
	}
	best := 0
	bestScore := Cosine(question, chunks[0])
	for i := 1; i < len(chunks); i++ {
		if score := Cosine(question, chunks[i]); score > bestScore {
			best = i
			bestScore = score
		}
	}
	return best, nil
}
