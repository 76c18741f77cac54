// Package collector gathers the raw signals one analysis request needs: the
// interest timelines per keyword across time windows, and the recent text
// items for the niche. Every fetch is isolated; a failed source degrades to a
// fallback instead of failing the request.
package collector

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Tranv-IA/ContenAI/internal/genai"
	"github.com/Tranv-IA/ContenAI/internal/interest"
	"github.com/Tranv-IA/ContenAI/internal/logger"
	"github.com/Tranv-IA/ContenAI/internal/model"
	"github.com/Tranv-IA/ContenAI/internal/search"
)

// Windows are fetched for every keyword, most recent first.
var Windows = []model.Window{model.WindowWeek, model.WindowMonth, model.WindowQuarter}

// Collector fans out to the external sources.
type Collector struct {
	interest interest.Source
	searcher search.Searcher
	gen      genai.Generator
}

// New creates a collector over the given sources. gen may be nil, in which
// case text items are returned without summaries.
func New(src interest.Source, searcher search.Searcher, gen genai.Generator) *Collector {
	return &Collector{interest: src, searcher: searcher, gen: gen}
}

// CollectSeries fetches every (keyword, window) pair in parallel and joins
// before returning. A keyword whose windows all failed gets simulated series
// so downstream stages always have usable input.
func (c *Collector) CollectSeries(ctx context.Context, keywords []string) map[string][]model.SourceSeries {
	byKeyword := make(map[string][]model.SourceSeries, len(keywords))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, keyword := range keywords {
		for _, window := range Windows {
			keyword, window := keyword, window
			g.Go(func() error {
				points, err := c.interest.FetchSeries(gctx, keyword, window)
				if err != nil {
					logger.Log.Warnf("interest fetch failed [%s/%s]: %v", keyword, window, err)
					return nil // source unavailable, never fatal
				}
				mu.Lock()
				byKeyword[keyword] = append(byKeyword[keyword], model.SourceSeries{
					Keyword: keyword,
					Source:  "interest",
					Window:  window,
					Points:  points,
				})
				mu.Unlock()
				return nil
			})
		}
	}
	g.Wait()

	now := time.Now()
	for _, keyword := range keywords {
		if len(byKeyword[keyword]) > 0 {
			continue
		}
		logger.Log.Warnf("all windows failed for [%s], substituting simulated series", keyword)
		for _, window := range Windows {
			byKeyword[keyword] = append(byKeyword[keyword], interest.SimulateSeries(keyword, window, now))
		}
	}

	return byKeyword
}

// CollectTextItems fetches up to limit recent news/discussion items for the
// niche and enriches each with a short synthesized summary when content
// extraction succeeds. Enrichment failures keep the bare item.
func (c *Collector) CollectTextItems(ctx context.Context, niche string, limit int) []model.TextItem {
	if limit <= 0 {
		limit = 5
	}

	now := time.Now()
	req := &search.Request{
		Query:      niche,
		Topic:      "news",
		MaxResults: limit,
		StartDate:  now.AddDate(0, 0, -14).Format(time.DateOnly),
		EndDate:    now.Format(time.DateOnly),
	}

	resp, err := c.searcher.Search(ctx, req)
	if err != nil {
		logger.Log.Warnf("text item search failed [%s]: %v", niche, err)
		return nil
	}

	items := make([]model.TextItem, 0, limit)
	for _, result := range resp.Results {
		if len(items) >= limit {
			break
		}
		item := model.TextItem{
			Title:       result.Title,
			Link:        result.URL,
			PublishedAt: result.PublishedDate,
			Source:      niche,
		}

		// Summarization runs serially; the generation limiter owns the pace.
		content := result.Content
		if len(content) < 200 {
			if fetched, err := ExtractContent(result.URL); err == nil && len(fetched) > len(content) {
				content = fetched
			}
		}
		if summary := c.summarize(ctx, result.Title, content); summary != "" {
			item.Summary = summary
		}

		items = append(items, item)
	}

	return items
}

func (c *Collector) summarize(ctx context.Context, title, content string) string {
	if c.gen == nil || len(content) < 100 {
		return ""
	}
	if len(content) > 6000 {
		content = content[:6000]
	}

	user := fmt.Sprintf("Title: %s\n\nContent:\n%s\n\nWrite a 2-3 sentence summary of the key points. Plain text only.", title, content)
	summary, err := c.gen.Generate(ctx, "You summarize articles concisely.", user)
	if err != nil {
		logger.Log.Debugf("summary generation failed [%s]: %v", title, err)
		return ""
	}
	return strings.TrimSpace(summary)
}
