package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/certmatch/internal/corpus"
	"github.com/jonathan/certmatch/internal/embedding"
	"github.com/jonathan/certmatch/internal/llm"
	"github.com/jonathan/certmatch/internal/recommend"
	"github.com/jonathan/certmatch/internal/retrieval"
	"github.com/jonathan/certmatch/internal/session"
)

var chatConfigPath string

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Chat against the standards corpus",
	Long: `Answer a single question, or start an interactive session when no
question is given. Answers are grounded on the standards corpus;
conversation history lives in memory for the life of the process.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(chatConfigPath)
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
		log.Printf("[CHAT] initial index build failed: %v", err)
	}

	orchestrator := recommend.New(cfg, indexer, embedder, llmClient, session.NewMemoryStore(), repo)

	if len(args) == 1 {
		resp, err := orchestrator.Chat(ctx, recommend.ChatRequest{Message: args[0]})
		if err != nil {
			return err
		}
		printChatResponse(resp)
		return nil
	}

	fmt.Println("Ask about competency standards. Empty line or Ctrl-D to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	var sessionID string
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			break
		}

		resp, err := orchestrator.Chat(ctx, recommend.ChatRequest{Message: message, SessionID: sessionID})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		sessionID = resp.SessionID
		printChatResponse(resp)
	}
	return scanner.Err()
}

func printChatResponse(resp *recommend.ChatResponse) {
	fmt.Printf("\n%s\n", resp.Message)
	if len(resp.RelevantStandards) > 0 {
		fmt.Println("\nRelevant standards:")
		for _, std := range resp.RelevantStandards {
			fmt.Printf("  [%s] %s\n", std.Code, std.Title)
		}
	}
	fmt.Println()
}
