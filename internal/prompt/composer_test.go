package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/certmatch/internal/types"
)

func sampleRetrieval() *types.RetrievalResult {
	return &types.RetrievalResult{Hits: []types.RetrievedStandard{
		{Standard: types.Standard{
			Code:        "EC0217",
			Title:       "Impartición de cursos",
			Category:    "Educación",
			Description: "Impartir cursos de formación presenciales.",
		}, Similarity: 0.82},
	}}
}

func TestCompose_IncludesStandardsAndQuery(t *testing.T) {
	composer := NewComposer(10)
	payload := composer.Compose(sampleRetrieval(), nil, "¿Qué certificación necesito para dar cursos?")

	assert.Contains(t, payload, "[EC0217] Impartición de cursos (Educación)")
	assert.Contains(t, payload, "¿Qué certificación necesito para dar cursos?")
	assert.Contains(t, payload, "ONLY the certification standards listed below")
}

func TestCompose_EmptyRetrievalUsesNoContextTemplate(t *testing.T) {
	composer := NewComposer(10)
	payload := composer.Compose(&types.RetrievalResult{}, nil, "algo")

	assert.Contains(t, payload, "insufficient information")
	assert.NotContains(t, payload, "{{.StandardsBlock}}",
		"no unresolved placeholders may leak into the payload")
}

func TestCompose_NilRetrievalUsesNoContextTemplate(t *testing.T) {
	payload := NewComposer(10).Compose(nil, nil, "algo")
	assert.Contains(t, payload, "insufficient information")
}

func TestCompose_HistoryRenderedOldestFirst(t *testing.T) {
	history := []types.Turn{
		{Role: types.RoleUser, Content: "primera pregunta"},
		{Role: types.RoleAssistant, Content: "primera respuesta"},
	}
	payload := NewComposer(10).Compose(sampleRetrieval(), history, "siguiente")

	userIdx := strings.Index(payload, "User: primera pregunta")
	assistantIdx := strings.Index(payload, "Assistant: primera respuesta")
	assert.Greater(t, userIdx, -1)
	assert.Greater(t, assistantIdx, userIdx)
}

func TestCompose_HistoryCapped(t *testing.T) {
	history := []types.Turn{
		{Role: types.RoleUser, Content: "evicted"},
		{Role: types.RoleUser, Content: "kept-1"},
		{Role: types.RoleAssistant, Content: "kept-2"},
	}
	payload := NewComposer(2).Compose(sampleRetrieval(), history, "siguiente")

	assert.NotContains(t, payload, "evicted")
	assert.Contains(t, payload, "kept-1")
	assert.Contains(t, payload, "kept-2")
}

func TestCompose_NoHistoryOmitsHistoryBlock(t *testing.T) {
	payload := NewComposer(10).Compose(sampleRetrieval(), nil, "pregunta")
	assert.NotContains(t, payload, "Conversation so far:")
}
