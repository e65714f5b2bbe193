package cli

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"document-qa/internal/docstore"
	"document-qa/internal/helper"
)

var dryRun bool

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Ingest a document and store its record",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		p, err := newPipeline(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Error initializing pipeline")
		}

		rec, err := p.Ingest(cmd.Context(), path, filepath.Ext(path))
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("Error ingesting document")
		}
		log.Info().Int("chunks", len(rec.Chunks)).Msg("Ingested document")
		fmt.Printf("%s\n\n", rec.Summary)

		if dryRun {
			helper.PrettyPrint(rec.Chunks)
			return
		}

		store, err := docstore.Open(cmd.Context(), &cfg.Store)
		if err != nil {
			log.Fatal().Err(err).Msg("Error opening document store")
		}
		defer store.Close()

		id, err := store.Put(cmd.Context(), rec)
		if err != nil {
			log.Fatal().Err(err).Msg("Error storing document record")
		}
		fmt.Printf("doc_id: %s\n", id)
	},
}

func init() {
	ingestCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Dry run, do not save to the document store")
	rootCmd.AddCommand(ingestCmd)
}
