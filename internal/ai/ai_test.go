package ai

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/julianstephens/lifetracks/internal/models"
)

type fakeGenerator struct {
	out  string
	err  error
	reqs []Request
}

func (f *fakeGenerator) Generate(_ context.Context, req Request) (string, error) {
	f.reqs = append(f.reqs, req)
	return f.out, f.err
}

func TestSuggestTags(t *testing.T) {
	tests := []struct {
		name string
		out  string
		err  error
		want []string
	}{
		{"clean", `["work", "plan"]`, nil, []string{"work", "plan"}},
		{"strips hash and caps", `["#a", "b", "a", "c", "d"]`, nil, []string{"a", "b", "c"}},
		{"drops multiword", `["two words", "ok"]`, nil, []string{"ok"}},
		{"malformed", `work, plan`, nil, []string{}},
		{"error", "", errors.New("quota"), []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{out: tt.out, err: tt.err}
			got := NewService(gen).SuggestTags(context.Background(), "meeting notes")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if len(gen.reqs) != 1 || !gen.reqs[0].StringList {
				t.Errorf("expected one string-list request, got %+v", gen.reqs)
			}
		})
	}
}

func TestSuggestTagsSkipsBlankText(t *testing.T) {
	gen := &fakeGenerator{out: `["x"]`}
	if got := NewService(gen).SuggestTags(context.Background(), "  "); len(got) != 0 {
		t.Errorf("expected no tags, got %v", got)
	}
	if len(gen.reqs) != 0 {
		t.Errorf("blank text should not call the model")
	}
}

func TestAnalyzeTrend(t *testing.T) {
	points := make([]models.DataPoint, 12)
	for i := range points {
		points[i] = models.DataPoint{Date: fmt.Sprintf("2024-01-%02d", i+1), Value: float64(i)}
	}

	gen := &fakeGenerator{out: " Steady progress. \n"}
	got := NewService(gen).AnalyzeTrend(context.Background(), "体重", "kg", points)
	if got != "Steady progress." {
		t.Errorf("unexpected analysis %q", got)
	}
	prompt := gen.reqs[0].Prompt
	if strings.Contains(prompt, `"2024-01-02"`) || !strings.Contains(prompt, `"2024-01-03"`) || !strings.Contains(prompt, `"2024-01-12"`) {
		t.Errorf("expected only the last 10 points in prompt: %s", prompt)
	}

	failing := &fakeGenerator{err: errors.New("boom")}
	if got := NewService(failing).AnalyzeTrend(context.Background(), "x", "", points); got != FailedText {
		t.Errorf("expected %q, got %q", FailedText, got)
	}
}

func TestDisabled(t *testing.T) {
	var c Collaborator = Disabled{}
	if got := c.SuggestTags(context.Background(), "anything"); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil tags, got %v", got)
	}
	if got := c.AnalyzeTrend(context.Background(), "x", "", nil); got != UnavailableText {
		t.Errorf("expected %q, got %q", UnavailableText, got)
	}
}

func TestNewWithoutProjectIsDisabled(t *testing.T) {
	c, closeFn := New(context.Background(), Config{})
	if _, ok := c.(Disabled); !ok {
		t.Errorf("expected Disabled collaborator, got %T", c)
	}
	if err := closeFn(); err != nil {
		t.Errorf("close should be a no-op, got %v", err)
	}
}
