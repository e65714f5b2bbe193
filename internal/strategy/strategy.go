package strategy

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"document-qa/internal/models"
)

// Strategy answers a question from one retrieved context chunk. Each
// implementation is independently swappable; the orchestrator only sees this
// contract.
type Strategy interface {
	Name() string
	Answer(ctx context.Context, contextText, question string) (string, error)
}

// Registry resolves strategies by name. Lookup is case-insensitive and an
// unrecognized name silently resolves to the default strategy rather than
// erroring; callers rely on that fallback.
type Registry struct {
	byName map[string]Strategy
	def    Strategy
}

// NewRegistry builds a registry with def as the fallback. Both the model
// names ("bart", "gpt2", "bert") and their capability aliases resolve.
func NewRegistry(def Strategy, others ...Strategy) *Registry {
	r := &Registry{byName: make(map[string]Strategy), def: def}
	r.register(def)
	for _, s := range others {
		r.register(s)
	}
	return r
}

func (r *Registry) register(s Strategy) {
	r.byName[strings.ToLower(s.Name())] = s
	switch s.Name() {
	case models.StrategyGenerativeA:
		r.byName["generative-a"] = s
	case models.StrategyGenerativeB:
		r.byName["generative-b"] = s
	case models.StrategyExtractive:
		r.byName["extractive"] = s
	}
}

// ForName returns the strategy registered under name, or the default when
// the name is unknown.
func (r *Registry) ForName(name string) Strategy {
	if s, ok := r.byName[strings.ToLower(name)]; ok {
		return s
	}
	if name != "" {
		log.Debug().Str("strategy", name).Str("fallback", r.def.Name()).Msg("Unknown strategy name, using default")
	}
	return r.def
}
