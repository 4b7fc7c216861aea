package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault_ScoringPolicy(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 50.0, cfg.Scoring.StandardsWeight)
	assert.Equal(t, 15.0, cfg.Scoring.EducationPoints)
	assert.Equal(t, 20.0, cfg.Scoring.ExperiencePoints)
	assert.Equal(t, 15.0, cfg.Scoring.ObjectiveWeight)
	assert.Equal(t, 0.3, cfg.Scoring.ObjectiveMinRatio)
	assert.Equal(t, 10.0, cfg.Scoring.MinScoreFloor)
	assert.Equal(t, 0.3, cfg.Retrieval.SimilarityThreshold)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.Equal(t, 10, cfg.Session.TurnCap)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := writeConfigFile(t, `{
		"model": "gemini-custom",
		"retrieval": {"top_k": 3},
		"session": {"turn_cap": 6}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini-custom", cfg.Model)
	assert.Equal(t, 3, cfg.Retrieval.TopK)
	assert.Equal(t, 6, cfg.Session.TurnCap)
	assert.Equal(t, 50.0, cfg.Scoring.StandardsWeight, "unset knobs keep their defaults")
	assert.Equal(t, 0.3, cfg.Retrieval.SimilarityThreshold)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeConfigFile(t, `{not json`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate_RejectsOutOfRangeThreshold(t *testing.T) {
	cfg := Default()
	cfg.Retrieval.SimilarityThreshold = 1.5
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsNonPositiveTopK(t *testing.T) {
	cfg := Default()
	cfg.Retrieval.TopK = -1
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsNonPositiveTurnCap(t *testing.T) {
	cfg := Default()
	cfg.Session.TurnCap = -5
	assert.Error(t, cfg.Validate())
}
