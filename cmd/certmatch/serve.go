package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/certmatch/internal/corpus"
	"github.com/jonathan/certmatch/internal/embedding"
	"github.com/jonathan/certmatch/internal/llm"
	"github.com/jonathan/certmatch/internal/recommend"
	"github.com/jonathan/certmatch/internal/retrieval"
	"github.com/jonathan/certmatch/internal/server"
	"github.com/jonathan/certmatch/internal/session"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the chat and matching endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigPath)
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

	llmClient, err := llm.NewGeminiClient(ctx, cfg.Model, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer llmClient.Close()

	indexer := retrieval.NewIndexer(repo, embedder)
	if _, err := indexer.Rebuild(ctx); err != nil {
		// The server can start with an empty index; chat degrades to
		// lexical search until a rebuild succeeds.
		log.Printf("[SERVE] initial index build failed: %v", err)
	}

	sessions := session.NewPostgresStore(repo.Pool())
	orchestrator := recommend.New(cfg, indexer, embedder, llmClient, sessions, repo)

	srv, err := server.New(server.Config{
		Port:         servePort,
		Orchestrator: orchestrator,
		Indexer:      indexer,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
