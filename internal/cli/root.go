package cli

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"document-qa/internal/config"
	"document-qa/internal/embedding"
	"document-qa/internal/llmservice"
	"document-qa/internal/pipeline"
	"document-qa/internal/strategy"
	"document-qa/internal/summarizer"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "document-qa",
	Short: "document-qa — upload documents, get summaries, ask questions",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if cfg.Server.Debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "./configs/config.yaml", "config file path")
}

// newPipeline assembles the model resource bundle once: embedders, the
// summarizer and the three answer strategies are constructed here and shared
// read-only by every request the pipeline serves.
func newPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM, cfg.RAG.EmbedMaxChars)
	if err != nil {
		return nil, err
	}
	sentenceEmbedder, err := embedding.NewEmbedder(&cfg.SentenceLLM, cfg.RAG.EmbedMaxChars)
	if err != nil {
		return nil, err
	}
	summaryClient, err := llmservice.NewClient(&cfg.SummaryLLM)
	if err != nil {
		return nil, err
	}
	genA, err := llmservice.NewClient(&cfg.GenerativeA)
	if err != nil {
		return nil, err
	}
	genB, err := llmservice.NewClient(&cfg.GenerativeB)
	if err != nil {
		return nil, err
	}

	summ := summarizer.New(summaryClient, cfg.RAG.SummaryMaxChars, cfg.RAG.SummaryMinWords, cfg.RAG.SummaryMaxWords)
	registry := strategy.NewRegistry(
		strategy.NewGenerativeA(genA, cfg.RAG.AnswerMaxTokens, cfg.RAG.NumCandidates),
		strategy.NewGenerativeB(genB, cfg.RAG.AnswerMaxTokens),
		strategy.NewExtractive(sentenceEmbedder),
	)
	return pipeline.New(embedder, summ, registry, cfg.RAG.ChunkSize, cfg.RAG.MaxParallel), nil
}
