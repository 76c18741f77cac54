package engine

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"golang.org/x/sync/errgroup"

	"github.com/Tranv-IA/ContenAI/internal/collector"
	"github.com/Tranv-IA/ContenAI/internal/logger"
	"github.com/Tranv-IA/ContenAI/internal/model"
)

// maxCompetitorURLs caps how many URLs one request actually scrapes.
const maxCompetitorURLs = 3

var headingPattern = regexp.MustCompile(`(?is)<h[1-3][^>]*>(.*?)</h[1-3]>`)
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// AnalyzeCompetitors scrapes up to 3 competitor pages in parallel and
// extracts their headline structure. Each URL fails independently; a failed
// scrape yields an entry with its error string instead of aborting the batch.
func (e *Engine) AnalyzeCompetitors(ctx context.Context, urls []string) []model.CompetitorInsight {
	if len(urls) > maxCompetitorURLs {
		urls = urls[:maxCompetitorURLs]
	}

	insights := make([]model.CompetitorInsight, len(urls))

	g, _ := errgroup.WithContext(ctx)
	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			insights[i] = scrapeCompetitor(url)
			return nil
		})
	}
	g.Wait()

	return insights
}

func scrapeCompetitor(url string) model.CompetitorInsight {
	insight := model.CompetitorInsight{URL: url}

	article, err := readability.FromURL(url, 20*time.Second)
	if err != nil {
		logger.Log.Warnf("competitor scrape failed [%s]: %v", url, err)
		insight.Error = err.Error()
		return insight
	}

	titles := extractHeadings(article.Content)
	if len(titles) == 0 && article.Title != "" {
		titles = []string{article.Title}
	}
	if len(titles) == 0 {
		// Headline-free page: fall back to the first text line readability kept.
		if text, err := collector.ExtractContent(url); err == nil {
			for _, line := range strings.Split(text, "\n") {
				if line = strings.TrimSpace(line); line != "" {
					titles = []string{line}
					break
				}
			}
		}
	}

	insight.Titles = titles
	return insight
}

// extractHeadings pulls up to 10 h1-h3 texts from the readable content HTML.
func extractHeadings(contentHTML string) []string {
	matches := headingPattern.FindAllStringSubmatch(contentHTML, 10)
	titles := make([]string, 0, len(matches))
	for _, m := range matches {
		text := strings.TrimSpace(tagPattern.ReplaceAllString(m[1], ""))
		if text != "" {
			titles = append(titles, text)
		}
	}
	return titles
}
