package insight

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeGen struct {
	text  string
	err   error
	calls int
}

func (f *fakeGen) Generate(ctx context.Context, system, user string) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestCommentary_NoTitlesShortCircuits(t *testing.T) {
	gen := &fakeGen{}
	got := New(gen).Commentary(context.Background(), "yoga", nil)
	if got != InsufficientData {
		t.Errorf("Commentary() = %q, want the fixed insufficient-data message", got)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times for empty input, want 0", gen.calls)
	}
}

func TestCommentary_ReturnsTrimmedText(t *testing.T) {
	gen := &fakeGen{text: "  Coverage clusters around beginner content. Interest should keep rising.  "}
	got := New(gen).Commentary(context.Background(), "yoga", []string{"Yoga surges", "Studios reopen"})
	if strings.HasPrefix(got, " ") || strings.HasSuffix(got, " ") {
		t.Errorf("Commentary() = %q, want trimmed output", got)
	}
	if !strings.Contains(got, "beginner content") {
		t.Errorf("Commentary() = %q", got)
	}
}

func TestCommentary_DegradedPaths(t *testing.T) {
	cases := []struct {
		name string
		gen  *fakeGen
	}{
		{"generation error", &fakeGen{err: errors.New("rate limited")}},
		{"blank output", &fakeGen{text: "   \n"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := New(tc.gen).Commentary(context.Background(), "yoga", []string{"Yoga surges"})
			if got != AnalysisUnavailable {
				t.Errorf("Commentary() = %q, want the fixed unavailable message", got)
			}
		})
	}
}
