package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenOverlapRatio_RatioIsOverRequiredTokens(t *testing.T) {
	// Extra candidate tokens do not dilute the ratio.
	ratio := tokenOverlapRatio("energía solar", "quiero trabajar con energía solar en campo")
	assert.Equal(t, 1.0, ratio)
}

func TestTokenOverlapRatio_CaseInsensitive(t *testing.T) {
	ratio := tokenOverlapRatio("Energía Solar", "energía solar")
	assert.Equal(t, 1.0, ratio)
}

func TestTokenOverlapRatio_EmptyRequired(t *testing.T) {
	assert.Equal(t, 0.0, tokenOverlapRatio("", "algo"))
}

func TestLevelRank_SpanishAndEnglishSynonyms(t *testing.T) {
	spanish, ok := levelRank("Licenciatura")
	assert.True(t, ok)
	english, ok := levelRank("bachelor's")
	assert.True(t, ok)
	assert.Equal(t, spanish, english)

	_, ok = levelRank("Bootcamp")
	assert.False(t, ok)
}
