package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"document-qa/internal/docstore"
)

var (
	askDocID    string
	askStrategy string
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question against a stored document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		question := args[0]

		store, err := docstore.Open(cmd.Context(), &cfg.Store)
		if err != nil {
			log.Fatal().Err(err).Msg("Error opening document store")
		}
		defer store.Close()

		rec, err := store.Get(cmd.Context(), askDocID)
		if err != nil {
			log.Fatal().Err(err).Str("doc_id", askDocID).Msg("Error loading document record")
		}

		p, err := newPipeline(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Error initializing pipeline")
		}

		answer, err := p.Query(cmd.Context(), rec, question, askStrategy)
		if err != nil {
			log.Fatal().Err(err).Msg("Error answering question")
		}

		log.Info().Msg("Query: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
		fmt.Printf("%s\n\n", question)

		log.Info().Msg("Assistant: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
		fmt.Printf("%s\n\n", answer)
	},
}

func init() {
	askCmd.Flags().StringVar(&askDocID, "doc", "", "Document id returned by ingest or upload")
	askCmd.Flags().StringVar(&askStrategy, "strategy", "", "Answer strategy (bart, gpt2, bert); default bart")
	_ = askCmd.MarkFlagRequired("doc")
	rootCmd.AddCommand(askCmd)
}
