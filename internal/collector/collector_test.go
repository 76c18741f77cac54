package collector

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Tranv-IA/ContenAI/internal/model"
	"github.com/Tranv-IA/ContenAI/internal/search"
)

// fakeInterest fails for keywords in the fail set and returns a short ramp
// otherwise.
type fakeInterest struct {
	mu    sync.Mutex
	fail  map[string]bool
	calls int
}

func (f *fakeInterest) FetchSeries(ctx context.Context, keyword string, window model.Window) ([]model.TimeSeriesPoint, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.fail[keyword] {
		return nil, errors.New("upstream 500")
	}
	return []model.TimeSeriesPoint{{Value: 10}, {Value: 20}, {Value: 30}}, nil
}

type fakeSearcher struct {
	resp *search.Response
	err  error
	req  *search.Request
}

func (f *fakeSearcher) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	f.req = req
	return f.resp, f.err
}

type fakeGen struct {
	text string
	err  error
}

func (f *fakeGen) Generate(ctx context.Context, system, user string) (string, error) {
	return f.text, f.err
}

func TestCollectSeries_FetchesEveryWindow(t *testing.T) {
	src := &fakeInterest{}
	c := New(src, &fakeSearcher{}, nil)

	byKeyword := c.CollectSeries(context.Background(), []string{"yoga", "pilates"})
	if src.calls != len(Windows)*2 {
		t.Errorf("FetchSeries called %d times, want %d", src.calls, len(Windows)*2)
	}
	for _, keyword := range []string{"yoga", "pilates"} {
		series := byKeyword[keyword]
		if len(series) != len(Windows) {
			t.Fatalf("[%s] got %d series, want %d", keyword, len(series), len(Windows))
		}
		for _, s := range series {
			if s.Simulated {
				t.Errorf("[%s] live fetches must not be marked simulated", keyword)
			}
			if len(s.Points) != 3 {
				t.Errorf("[%s/%s] got %d points, want 3", keyword, s.Window, len(s.Points))
			}
		}
	}
}

func TestCollectSeries_SubstitutesSimulatedOnTotalFailure(t *testing.T) {
	src := &fakeInterest{fail: map[string]bool{"yoga": true}}
	c := New(src, &fakeSearcher{}, nil)

	byKeyword := c.CollectSeries(context.Background(), []string{"yoga", "pilates"})

	yoga := byKeyword["yoga"]
	if len(yoga) != len(Windows) {
		t.Fatalf("failed keyword got %d series, want %d simulated ones", len(yoga), len(Windows))
	}
	for _, s := range yoga {
		if !s.Simulated {
			t.Errorf("[%s] series should be simulated after total failure", s.Window)
		}
		if len(s.Points) == 0 {
			t.Errorf("[%s] simulated series must carry points", s.Window)
		}
	}

	for _, s := range byKeyword["pilates"] {
		if s.Simulated {
			t.Error("healthy keyword must keep its live series")
		}
	}
}

func TestCollectTextItems_EnrichesWithSummaries(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	searcher := &fakeSearcher{resp: &search.Response{Results: []search.Result{
		{Title: "Yoga surges", URL: "https://example.com/a", Content: string(long), PublishedDate: "2025-05-01"},
		{Title: "Studio openings", URL: "https://example.com/b", Content: string(long)},
		{Title: "Third item", URL: "https://example.com/c", Content: string(long)},
	}}}
	c := New(&fakeInterest{}, searcher, &fakeGen{text: "  A concise summary.  "})

	items := c.CollectTextItems(context.Background(), "yoga", 2)
	if len(items) != 2 {
		t.Fatalf("CollectTextItems() returned %d items, want limit of 2", len(items))
	}
	if items[0].Title != "Yoga surges" || items[0].Link != "https://example.com/a" {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[0].Summary != "A concise summary." {
		t.Errorf("Summary = %q, want trimmed generation output", items[0].Summary)
	}
	if searcher.req.MaxResults != 2 || searcher.req.Topic != "news" {
		t.Errorf("search request = %+v", searcher.req)
	}
	if searcher.req.StartDate == "" || searcher.req.EndDate == "" {
		t.Errorf("search request should carry a date range, got %+v", searcher.req)
	}
}

func TestCollectTextItems_SummaryFailureKeepsItem(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	searcher := &fakeSearcher{resp: &search.Response{Results: []search.Result{
		{Title: "Yoga surges", URL: "https://example.com/a", Content: string(long)},
	}}}
	c := New(&fakeInterest{}, searcher, &fakeGen{err: errors.New("rate limited")})

	items := c.CollectTextItems(context.Background(), "yoga", 5)
	if len(items) != 1 {
		t.Fatalf("CollectTextItems() returned %d items, want 1", len(items))
	}
	if items[0].Summary != "" {
		t.Errorf("Summary = %q, want empty on generation failure", items[0].Summary)
	}
}

func TestCollectTextItems_SearchFailure(t *testing.T) {
	c := New(&fakeInterest{}, &fakeSearcher{err: errors.New("backend down")}, nil)
	if items := c.CollectTextItems(context.Background(), "yoga", 5); items != nil {
		t.Errorf("CollectTextItems() = %+v, want nil when search fails", items)
	}
}

func TestCollectTextItems_NilGenerator(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	searcher := &fakeSearcher{resp: &search.Response{Results: []search.Result{
		{Title: "Yoga surges", URL: "https://example.com/a", Content: string(long)},
	}}}
	c := New(&fakeInterest{}, searcher, nil)

	items := c.CollectTextItems(context.Background(), "yoga", 5)
	if len(items) != 1 {
		t.Fatalf("CollectTextItems() returned %d items, want 1", len(items))
	}
	if items[0].Summary != "" {
		t.Errorf("Summary = %q, want empty without a generator", items[0].Summary)
	}
}
