// Package config provides configuration loading and validation for the service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ScoringConfig holds the weights, caps and thresholds of the
// multi-criteria scorer. The defaults encode the production scoring
// policy; tests and tuning runs inject their own values.
type ScoringConfig struct {
	StandardsWeight     float64 `json:"standards_weight,omitempty"`      // max points for required-standard overlap, scaled by matched/required
	EducationPoints     float64 `json:"education_points,omitempty"`      // flat points when the education level is met
	ExperiencePoints    float64 `json:"experience_points,omitempty"`     // flat points for a keyword hit in any experience
	ObjectiveWeight     float64 `json:"objective_weight,omitempty"`      // max points for objective alignment, scaled by overlap ratio
	ObjectiveMinRatio   float64 `json:"objective_min_ratio,omitempty"`   // token-overlap ratio required before objective points apply
	HighCompletionBonus float64 `json:"high_completion_bonus,omitempty"` // completion rate > HighCompletionCut
	MidCompletionBonus  float64 `json:"mid_completion_bonus,omitempty"`  // completion rate > MidCompletionCut
	HighCompletionCut   float64 `json:"high_completion_cut,omitempty"`
	MidCompletionCut    float64 `json:"mid_completion_cut,omitempty"`
	MinScoreFloor       float64 `json:"min_score_floor,omitempty"` // candidates scoring at or below the floor are excluded
}

// RetrievalConfig holds the semantic search knobs.
type RetrievalConfig struct {
	SimilarityThreshold float64 `json:"similarity_threshold,omitempty"`
	TopK                int     `json:"top_k,omitempty"`
	EmbeddingModel      string  `json:"embedding_model,omitempty"`
}

// SessionConfig holds the conversational memory knobs.
type SessionConfig struct {
	TurnCap int `json:"turn_cap,omitempty"` // max turns retained per session, FIFO eviction
}

// Config is the full service configuration, loadable from a JSON file.
// Missing fields fall back to defaults.
type Config struct {
	DatabaseURL string `json:"database_url,omitempty"`
	APIKey      string `json:"api_key,omitempty"`
	Model       string `json:"model,omitempty"` // completion model name

	Scoring   ScoringConfig   `json:"scoring,omitempty"`
	Retrieval RetrievalConfig `json:"retrieval,omitempty"`
	Session   SessionConfig   `json:"session,omitempty"`
}

// Default returns the production configuration defaults.
func Default() *Config {
	return &Config{
		Model: "gemini-2.0-flash",
		Scoring: ScoringConfig{
			StandardsWeight:     50,
			EducationPoints:     15,
			ExperiencePoints:    20,
			ObjectiveWeight:     15,
			ObjectiveMinRatio:   0.3,
			HighCompletionBonus: 10,
			MidCompletionBonus:  5,
			HighCompletionCut:   70,
			MidCompletionCut:    50,
			MinScoreFloor:       10,
		},
		Retrieval: RetrievalConfig{
			SimilarityThreshold: 0.3,
			TopK:                5,
			EmbeddingModel:      "text-embedding-004",
		},
		Session: SessionConfig{
			TurnCap: 10,
		},
	}
}

// Load reads configuration from a JSON file and merges it over the
// defaults. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults fills zero-valued knobs from the defaults so a partial
// config file does not silently disable a scoring component.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Model == "" {
		c.Model = def.Model
	}
	if c.Scoring.StandardsWeight == 0 {
		c.Scoring.StandardsWeight = def.Scoring.StandardsWeight
	}
	if c.Scoring.EducationPoints == 0 {
		c.Scoring.EducationPoints = def.Scoring.EducationPoints
	}
	if c.Scoring.ExperiencePoints == 0 {
		c.Scoring.ExperiencePoints = def.Scoring.ExperiencePoints
	}
	if c.Scoring.ObjectiveWeight == 0 {
		c.Scoring.ObjectiveWeight = def.Scoring.ObjectiveWeight
	}
	if c.Scoring.ObjectiveMinRatio == 0 {
		c.Scoring.ObjectiveMinRatio = def.Scoring.ObjectiveMinRatio
	}
	if c.Scoring.HighCompletionBonus == 0 {
		c.Scoring.HighCompletionBonus = def.Scoring.HighCompletionBonus
	}
	if c.Scoring.MidCompletionBonus == 0 {
		c.Scoring.MidCompletionBonus = def.Scoring.MidCompletionBonus
	}
	if c.Scoring.HighCompletionCut == 0 {
		c.Scoring.HighCompletionCut = def.Scoring.HighCompletionCut
	}
	if c.Scoring.MidCompletionCut == 0 {
		c.Scoring.MidCompletionCut = def.Scoring.MidCompletionCut
	}
	if c.Scoring.MinScoreFloor == 0 {
		c.Scoring.MinScoreFloor = def.Scoring.MinScoreFloor
	}
	if c.Retrieval.SimilarityThreshold == 0 {
		c.Retrieval.SimilarityThreshold = def.Retrieval.SimilarityThreshold
	}
	if c.Retrieval.TopK == 0 {
		c.Retrieval.TopK = def.Retrieval.TopK
	}
	if c.Retrieval.EmbeddingModel == "" {
		c.Retrieval.EmbeddingModel = def.Retrieval.EmbeddingModel
	}
	if c.Session.TurnCap == 0 {
		c.Session.TurnCap = def.Session.TurnCap
	}
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Retrieval.SimilarityThreshold < 0 || c.Retrieval.SimilarityThreshold > 1 {
		return fmt.Errorf("config error: 'similarity_threshold' must be within [0,1]")
	}
	if c.Retrieval.TopK < 1 {
		return fmt.Errorf("config error: 'top_k' must be positive")
	}
	if c.Session.TurnCap < 1 {
		return fmt.Errorf("config error: 'turn_cap' must be positive")
	}
	if c.Scoring.MinScoreFloor < 0 {
		return fmt.Errorf("config error: 'min_score_floor' must be non-negative")
	}
	if c.Scoring.ObjectiveMinRatio < 0 || c.Scoring.ObjectiveMinRatio > 1 {
		return fmt.Errorf("config error: 'objective_min_ratio' must be within [0,1]")
	}
	return nil
}
