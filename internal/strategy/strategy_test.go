package strategy

import (
	"context"
	"strings"
	"testing"

	"github.com/tmc/langchaingo/llms"
)

// fakeGenerator records prompts and returns a canned answer.
type fakeGenerator struct {
	prompts []string
	answer  string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, _ ...llms.CallOption) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, nil
}

// fakeEmbedder scores texts by keyword so tests can steer the ranking.
type fakeEmbedder struct {
	keyword string
	calls   int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if strings.Contains(strings.ToLower(text), f.keyword) {
		return []float32{1, 0}, nil
	}
	return []float32{0, 1}, nil
}

func newTestRegistry() (*Registry, *fakeGenerator, *fakeGenerator) {
	genA := &fakeGenerator{answer: "answer-a"}
	genB := &fakeGenerator{answer: "answer-b"}
	reg := NewRegistry(
		NewGenerativeA(genA, 100, 4),
		NewGenerativeB(genB, 200),
		NewExtractive(&fakeEmbedder{keyword: "grass"}),
	)
	return reg, genA, genB
}

func TestRegistryDispatch(t *testing.T) {
	reg, _, _ := newTestRegistry()
	tests := []struct {
		name string
		want string
	}{
		{"bart", "bart"},
		{"BART", "bart"},
		{"generative-a", "bart"},
		{"gpt2", "gpt2"},
		{"GPT2", "gpt2"},
		{"generative-b", "gpt2"},
		{"bert", "bert"},
		{"BERT", "bert"},
		{"Extractive", "bert"},
		{"nonexistent", "bart"},
		{"", "bart"},
	}
	for _, tt := range tests {
		if got := reg.ForName(tt.name).Name(); got != tt.want {
			t.Errorf("ForName(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestGenerativePrompts(t *testing.T) {
	reg, genA, genB := newTestRegistry()
	ctx := context.Background()

	answer, err := reg.ForName("bart").Answer(ctx, "some context", "some question")
	if err != nil {
		t.Fatalf("generative A failed: %v", err)
	}
	if answer != "answer-a" {
		t.Errorf("generative A answer = %q", answer)
	}
	if got, want := genA.prompts[0], "question: some question context: some context"; got != want {
		t.Errorf("generative A prompt = %q, want %q", got, want)
	}

	if _, err := reg.ForName("gpt2").Answer(ctx, "some context", "some question"); err != nil {
		t.Fatalf("generative B failed: %v", err)
	}
	if got, want := genB.prompts[0], "Context: some context\nQuestion: some question\nAnswer:"; got != want {
		t.Errorf("generative B prompt = %q, want %q", got, want)
	}
}

func TestExtractivePicksBestSentence(t *testing.T) {
	ex := NewExtractive(&fakeEmbedder{keyword: "grass"})
	contextText := "The sky is blue. Grass is green. Water is wet."
	answer, err := ex.Answer(context.Background(), contextText, "what color is grass")
	if err != nil {
		t.Fatalf("extractive failed: %v", err)
	}
	if answer != "Grass is green" {
		t.Errorf("answer = %q, want %q", answer, "Grass is green")
	}
}

func TestExtractiveKeepsTrailingSegment(t *testing.T) {
	// The last sentence has no trailing period and must still be a candidate.
	ex := NewExtractive(&fakeEmbedder{keyword: "grass"})
	contextText := "The sky is blue. Cows eat grass"
	answer, err := ex.Answer(context.Background(), contextText, "do cows eat grass")
	if err != nil {
		t.Fatalf("extractive failed: %v", err)
	}
	if answer != "Cows eat grass" {
		t.Errorf("answer = %q, want %q", answer, "Cows eat grass")
	}
}

func TestExtractiveTieReturnsFirstSentence(t *testing.T) {
	// No sentence matches the keyword, so every sentence scores identically.
	ex := NewExtractive(&fakeEmbedder{keyword: "zzz"})
	contextText := "First sentence. Second sentence. Third sentence."
	answer, err := ex.Answer(context.Background(), contextText, "anything")
	if err != nil {
		t.Fatalf("extractive failed: %v", err)
	}
	if answer != "First sentence" {
		t.Errorf("answer = %q, want first sentence", answer)
	}
}
