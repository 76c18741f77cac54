package synthesis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/Tranv-IA/ContenAI/internal/model"
)

// The generation capability answers in the niche's language, so the segment
// marker matches the English and Spanish spellings.
var (
	sectionMarker  = regexp.MustCompile(`(?i)\boportunidad(?:es)?\b|\bopportunit(?:y|ies)\b`)
	markerPrefix   = regexp.MustCompile(`(?i)^(?:oportunidad(?:es)?|opportunit(?:y|ies))\b\s*(?:#?\d+)?\s*[:.\-]*\s*`)
	bulletPattern  = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*(.+)$`)
	headingTrimmer = regexp.MustCompile(`^[\s#*>\d.):-]+|[\s#*:-]+$`)
)

// ParseLoose extracts opportunities from free text after the strict JSON
// parse failed. Segments are split on the section marker; each segment yields
// a title line and any bulleted suggestion list, with placeholders filling
// whatever is missing. No segment is ever discarded.
func ParseLoose(text string) []model.Opportunity {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	segments := splitSegments(text)
	opps := make([]model.Opportunity, 0, len(segments))

	for _, segment := range segments {
		n := len(opps) + 1
		title, body := extractTitle(segment)
		if title == "" {
			title = fmt.Sprintf("Opportunity %d", n)
		}

		suggested, rest := extractBullets(body)
		justification := strings.TrimSpace(rest)
		if justification == "" {
			// Structure fully absent: the raw segment text is still the best
			// justification available.
			justification = strings.TrimSpace(segment)
		}
		if justification == "" {
			justification = "Extracted from trend commentary."
		}

		if len(suggested) == 0 {
			suggested = placeholderTitles(title)
		}

		opps = append(opps, model.Opportunity{
			ID:              uuid.NewString(),
			Title:           title,
			Justification:   justification,
			SuggestedTitles: suggested,
		})
	}

	return opps
}

// splitSegments cuts the text at each section marker. Text before the first
// marker is dropped only when later segments exist; marker-free text is one
// whole segment.
func splitSegments(text string) []string {
	locs := sectionMarker.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}

	var segments []string
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		segment := strings.TrimSpace(text[loc[0]:end])
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	if len(segments) == 0 {
		return []string{text}
	}
	return segments
}

// extractTitle takes the first non-empty line as the title, minus any
// "Opportunity N:" style marker prefix, and returns the remainder as the
// body. Overlong first lines stay in the body; prose is not a title.
func extractTitle(segment string) (title, body string) {
	lines := strings.Split(segment, "\n")
	for i, line := range lines {
		candidate := strings.TrimSpace(headingTrimmer.ReplaceAllString(line, ""))
		if candidate == "" {
			continue
		}
		candidate = markerPrefix.ReplaceAllString(candidate, "")
		candidate = strings.TrimSpace(headingTrimmer.ReplaceAllString(candidate, ""))
		rest := strings.Join(lines[i+1:], "\n")
		if candidate == "" {
			// Marker-only heading: no usable title, body is what follows.
			return "", rest
		}
		if len(candidate) > 120 {
			return "", segment
		}
		return candidate, rest
	}
	return "", segment
}

// extractBullets pulls up to 3 bulleted/numbered lines as suggested titles
// and returns the non-bullet remainder.
func extractBullets(body string) (bullets []string, rest string) {
	var restLines []string
	for _, line := range strings.Split(body, "\n") {
		if m := bulletPattern.FindStringSubmatch(line); m != nil && len(bullets) < 3 {
			item := strings.TrimSpace(m[1])
			if item != "" {
				bullets = append(bullets, item)
				continue
			}
		}
		restLines = append(restLines, line)
	}
	return bullets, strings.Join(restLines, "\n")
}
