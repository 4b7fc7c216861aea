// Package prompt composes the instruction payload sent to the language
// model on the chat path.
package prompt

import (
	"fmt"
	"strings"

	"github.com/jonathan/certmatch/internal/prompts"
	"github.com/jonathan/certmatch/internal/types"
)

// Composer renders retrieved standards, recent history and the new query
// into a single payload. The rendered standards block is the only
// permissible factual source for the model; the template says so
// explicitly, and the empty-retrieval template instructs the model to
// answer "insufficient information" rather than improvise.
type Composer struct {
	historyCap int
}

// NewComposer creates a composer that includes at most historyCap recent
// turns (the session cap).
func NewComposer(historyCap int) *Composer {
	return &Composer{historyCap: historyCap}
}

// Compose builds the payload for one chat turn.
func (c *Composer) Compose(retrieval *types.RetrievalResult, history []types.Turn, query string) string {
	data := map[string]string{
		"History": renderHistory(history, c.historyCap),
		"Query":   query,
	}

	if retrieval == nil || retrieval.Empty() {
		template := prompts.MustGet("chat.json", "chat-no-context")
		return prompts.Format(template, data)
	}

	data["StandardsBlock"] = renderStandards(retrieval.Hits)
	template := prompts.MustGet("chat.json", "chat-answer")
	return prompts.Format(template, data)
}

// renderStandards renders the retrieved standards as an enumerated,
// labeled block.
func renderStandards(hits []types.RetrievedStandard) string {
	var b strings.Builder
	for i, hit := range hits {
		std := hit.Standard
		fmt.Fprintf(&b, "%d. [%s] %s (%s)\n   %s\n", i+1, std.Code, std.Title, std.Category, std.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderHistory renders the most recent turns as alternating
// "User:"/"Assistant:" lines, oldest first, ending with a blank line so
// the new query reads as the next turn. Empty history renders nothing.
func renderHistory(history []types.Turn, cap int) string {
	if len(history) == 0 {
		return ""
	}
	if cap > 0 && len(history) > cap {
		history = history[len(history)-cap:]
	}

	var b strings.Builder
	b.WriteString("Conversation so far:\n")
	for _, turn := range history {
		label := "User"
		if turn.Role == types.RoleAssistant {
			label = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, turn.Content)
	}
	b.WriteString("\n")
	return b.String()
}
