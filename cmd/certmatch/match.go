package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/certmatch/internal/corpus"
	"github.com/jonathan/certmatch/internal/recommend"
	"github.com/jonathan/certmatch/internal/retrieval"
	"github.com/jonathan/certmatch/internal/schemas"
	"github.com/jonathan/certmatch/internal/types"
)

var (
	matchConfigPath     string
	matchCandidatesPath string
	matchLimit          int
)

var matchCmd = &cobra.Command{
	Use:   "match <criteria.json>",
	Short: "Rank candidates against matching criteria",
	Long: `Score every candidate in the pool against the criteria document and
print the ranked results as JSON. Candidates come from the database, or
from a local JSON file when --candidates is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchConfigPath, "config", "", "Path to JSON config file")
	matchCmd.Flags().StringVar(&matchCandidatesPath, "candidates", "", "Path to a JSON file with candidate profiles")
	matchCmd.Flags().IntVar(&matchLimit, "limit", 0, "Maximum results to return (0 = default)")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(matchConfigPath)
	if err != nil {
		return err
	}

	criteriaJSON, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read criteria file: %w", err)
	}
	if err := schemas.Validate(schemas.MatchCriteriaSchema, criteriaJSON); err != nil {
		return err
	}
	var criteria types.MatchCriteria
	if err := json.Unmarshal(criteriaJSON, &criteria); err != nil {
		return fmt.Errorf("failed to parse criteria: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pool, err := candidatePool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.close()

	indexer := retrieval.NewIndexer(pool.source, nil)
	orchestrator := recommend.New(cfg, indexer, nil, nil, nil, pool.candidates)

	resp, err := orchestrator.Match(ctx, recommend.MatchRequest{Criteria: criteria, Limit: matchLimit})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// matchPool bundles the candidate source behind a uniform cleanup hook.
type matchPool struct {
	candidates corpus.CandidatePool
	source     retrieval.StandardSource
	close      func()
}

func candidatePool(ctx context.Context, databaseURL string) (*matchPool, error) {
	if matchCandidatesPath != "" {
		data, err := os.ReadFile(matchCandidatesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read candidates file: %w", err)
		}
		var candidates []types.CandidateProfile
		if err := json.Unmarshal(data, &candidates); err != nil {
			return nil, fmt.Errorf("failed to parse candidates: %w", err)
		}
		repo := corpus.NewMemoryRepository(nil, candidates)
		return &matchPool{candidates: repo, source: repo, close: func() {}}, nil
	}

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required (or pass --candidates)")
	}
	repo, err := corpus.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &matchPool{candidates: repo, source: repo, close: repo.Close}, nil
}
