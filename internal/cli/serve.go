package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"document-qa/internal/docstore"
	"document-qa/internal/helper"
	"document-qa/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the document QA HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		if err := helper.CreateFolder(cfg.Server.UploadDir); err != nil {
			log.Fatal().Err(err).Msg("Error creating upload folder")
		}

		store, err := docstore.Open(cmd.Context(), &cfg.Store)
		if err != nil {
			log.Fatal().Err(err).Msg("Error opening document store")
		}
		defer store.Close()

		p, err := newPipeline(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Error initializing pipeline")
		}

		srv := server.New(p, store, cfg.Server.UploadDir)
		if err := srv.ListenAndServe(cfg.Server.Addr); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
