package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/certmatch/internal/corpus"
	"github.com/jonathan/certmatch/internal/embedding"
	"github.com/jonathan/certmatch/internal/retrieval"
)

var indexConfigPath string

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the standards vector index",
	Long:  `Load every standard from the database, compute missing embeddings and persist them.`,
	RunE:  runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(indexConfigPath)
	if err != nil {
		return err
	}
	if err := requireDatabase(cfg); err != nil {
		return err
	}
	if err := requireAPIKey(cfg); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	repo, err := corpus.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer repo.Close()

	embedder, err := embedding.NewGeminiEmbedder(ctx, cfg.Retrieval.EmbeddingModel, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	defer embedder.Close()

	indexer := retrieval.NewIndexer(repo, embedder)
	idx, err := indexer.Rebuild(ctx)
	if err != nil {
		return fmt.Errorf("index rebuild failed: %w", err)
	}

	fmt.Printf("Index version %d: %d standards, %d embedded\n", idx.Version(), idx.Size(), idx.Embedded())
	return nil
}
