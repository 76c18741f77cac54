// Package insight derives qualitative commentary about a niche from recent
// article titles.
package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tranv-IA/ContenAI/internal/genai"
	"github.com/Tranv-IA/ContenAI/internal/logger"
)

// Fixed messages for the degraded paths. Extraction never raises.
const (
	InsufficientData    = "Not enough recent coverage to extract qualitative insight for this niche."
	AnalysisUnavailable = "Qualitative analysis is currently unavailable; predictions rely on interest data alone."
)

// Extractor produces commentary via the text-generation capability.
type Extractor struct {
	gen genai.Generator
}

// New creates an extractor.
func New(gen genai.Generator) *Extractor {
	return &Extractor{gen: gen}
}

// Commentary summarizes patterns, recurring concerns and a directional
// prediction from the given titles. Empty input short-circuits to a fixed
// message without touching the external capability.
func (e *Extractor) Commentary(ctx context.Context, niche string, titles []string) string {
	if len(titles) == 0 {
		return InsufficientData
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Recent headlines about %q:\n", niche)
	for _, title := range titles {
		sb.WriteString("- ")
		sb.WriteString(title)
		sb.WriteString("\n")
	}
	sb.WriteString("\nIn 3-4 sentences, describe the patterns and recurring concerns these headlines show, ")
	sb.WriteString("and close with a short directional prediction for interest in this niche. Plain text only.")

	commentary, err := e.gen.Generate(ctx, "You are a market analyst writing brief qualitative notes.", sb.String())
	if err != nil {
		logger.Log.Warnf("insight generation failed [%s]: %v", niche, err)
		return AnalysisUnavailable
	}

	commentary = strings.TrimSpace(commentary)
	if commentary == "" {
		return AnalysisUnavailable
	}
	return commentary
}
