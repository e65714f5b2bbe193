package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"document-qa/internal/models"
)

// LLMConfig points at one model endpoint. Provider selects the langchaingo
// backend ("ollama" or "openai"); Key is only required for openai-compatible
// endpoints.
type LLMConfig struct {
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	Key      string `yaml:"key"`
	Model    string `yaml:"model"`
}

type ServerConfig struct {
	Addr      string `yaml:"addr"`
	UploadDir string `yaml:"upload_dir"`
	Debug     bool   `yaml:"debug"`
}

type DatabaseConfig struct {
	URL   string `yaml:"url"`
	Key   string `yaml:"key"`
	Debug bool   `yaml:"debug"`
}

// StoreConfig selects where ingested document records live.
// Type is one of "memory", "chromem" or "postgres".
type StoreConfig struct {
	Type     string         `yaml:"type"`
	Path     string         `yaml:"path"`
	Database DatabaseConfig `yaml:"database"`
}

type RAGConfig struct {
	ChunkSize       int `yaml:"chunk_size"`
	EmbedMaxChars   int `yaml:"embed_max_chars"`
	SummaryMaxChars int `yaml:"summary_max_chars"`
	SummaryMinWords int `yaml:"summary_min_words"`
	SummaryMaxWords int `yaml:"summary_max_words"`
	AnswerMaxTokens int `yaml:"answer_max_tokens"`
	NumCandidates   int `yaml:"num_candidates"`
	MaxParallel     int `yaml:"max_parallel"`
}

type Config struct {
	Server      ServerConfig `yaml:"server"`
	Store       StoreConfig  `yaml:"store"`
	RAG         RAGConfig    `yaml:"rag"`
	EmbedLLM    LLMConfig    `yaml:"embed_llm"`
	SentenceLLM LLMConfig    `yaml:"sentence_llm"`
	SummaryLLM  LLMConfig    `yaml:"summary_llm"`
	GenerativeA LLMConfig    `yaml:"generative_a"`
	GenerativeB LLMConfig    `yaml:"generative_b"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// ApplyDefaults fills zero-valued fields so callers never see an unusable
// config. The sentence embedder falls back to the chunk embedder endpoint
// when not configured separately.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.UploadDir == "" {
		cfg.Server.UploadDir = "./uploads"
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = "memory"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "./docstore"
	}
	if cfg.RAG.ChunkSize <= 0 {
		cfg.RAG.ChunkSize = models.DefaultChunkSize
	}
	if cfg.RAG.EmbedMaxChars <= 0 {
		cfg.RAG.EmbedMaxChars = 4000
	}
	if cfg.RAG.SummaryMaxChars <= 0 {
		cfg.RAG.SummaryMaxChars = 6000
	}
	if cfg.RAG.SummaryMinWords <= 0 {
		cfg.RAG.SummaryMinWords = 40
	}
	if cfg.RAG.SummaryMaxWords <= 0 {
		cfg.RAG.SummaryMaxWords = 150
	}
	if cfg.RAG.AnswerMaxTokens <= 0 {
		cfg.RAG.AnswerMaxTokens = 200
	}
	if cfg.RAG.NumCandidates <= 0 {
		cfg.RAG.NumCandidates = 4
	}
	if cfg.RAG.MaxParallel <= 0 {
		cfg.RAG.MaxParallel = 1
	}
	if cfg.SentenceLLM.Model == "" {
		cfg.SentenceLLM = cfg.EmbedLLM
	}
}
