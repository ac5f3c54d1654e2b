package main

import (
	"fmt"

	"github.com/redonshkr/gov-content-hub/internal/repository"
	"github.com/redonshkr/gov-content-hub/internal/service"
	pkges "github.com/redonshkr/gov-content-hub/pkg/elasticsearch"
	"github.com/spf13/cobra"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the search index from published content",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.Elasticsearch.Enabled {
			return fmt.Errorf("elasticsearch is disabled in %s", configPath)
		}

		db, closeDB, err := openSchema()
		if err != nil {
			return err
		}
		defer closeDB()

		client, err := pkges.NewClient(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Username, cfg.Elasticsearch.Password, cfg.Elasticsearch.Index)
		if err != nil {
			return fmt.Errorf("connect elasticsearch: %w", err)
		}
		if err := client.EnsureIndex(cmd.Context()); err != nil {
			return fmt.Errorf("ensure index: %w", err)
		}

		n, err := service.NewSearchService(client, repository.NewStore(db)).Reindex(cmd.Context())
		if err != nil {
			return fmt.Errorf("reindex stopped after %d items: %w", n, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reindexed %d published items into %s\n", n, client.Index())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
