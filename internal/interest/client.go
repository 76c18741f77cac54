// Package interest talks to the search-interest data source: per keyword and
// time window it returns a bounded [0,100] interest timeline. The vendor
// response nests the series inside a widget-style payload, so the client
// flattens it into model.TimeSeriesPoint slices.
package interest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Tranv-IA/ContenAI/internal/model"
)

// Source is the interface the collector consumes, so tests can fake the vendor.
type Source interface {
	FetchSeries(ctx context.Context, keyword string, window model.Window) ([]model.TimeSeriesPoint, error)
}

// Client is the HTTP client for the interest vendor.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates an interest client. timeout is in seconds.
func NewClient(baseURL string, timeout int) *Client {
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 20 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: t},
	}
}

var _ Source = (*Client)(nil)

// windowParam maps internal windows onto the vendor's range syntax.
var windowParam = map[model.Window]string{
	model.WindowWeek:    "now 7-d",
	model.WindowMonth:   "today 1-m",
	model.WindowQuarter: "today 3-m",
}

type timelineEnvelope struct {
	Default struct {
		TimelineData []timelineEntry `json:"timelineData"`
	} `json:"default"`
}

type timelineEntry struct {
	Time  string    `json:"time"` // unix seconds as string
	Value []float64 `json:"value"`
}

// FetchSeries implements Source.
func (c *Client) FetchSeries(ctx context.Context, keyword string, window model.Window) ([]model.TimeSeriesPoint, error) {
	rangeParam, ok := windowParam[window]
	if !ok {
		return nil, fmt.Errorf("unknown window: %s", window)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	u.Path = "/api/widgetdata/multiline"

	q := u.Query()
	q.Set("keyword", keyword)
	q.Set("range", rangeParam)
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("interest api error (status %d): %s", res.StatusCode, string(body))
	}

	var envelope timelineEnvelope
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	points, err := flattenTimeline(envelope.Default.TimelineData)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("empty timeline for %q (%s)", keyword, window)
	}
	return points, nil
}

func flattenTimeline(entries []timelineEntry) ([]model.TimeSeriesPoint, error) {
	points := make([]model.TimeSeriesPoint, 0, len(entries))
	for _, e := range entries {
		if len(e.Value) == 0 {
			continue
		}
		sec, err := strconv.ParseInt(e.Time, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad timeline timestamp %q: %w", e.Time, err)
		}
		v := e.Value[0]
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		points = append(points, model.TimeSeriesPoint{
			Timestamp: time.Unix(sec, 0).UTC(),
			Value:     v,
		})
	}
	return points, nil
}
