// Package ai holds the optional note-tagging and trend-analysis collaborator.
// Every call fails soft: errors are logged and turned into an empty result or
// a placeholder sentence.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/logger"
	"github.com/julianstephens/lifetracks/internal/models"
)

const (
	// UnavailableText is returned by AnalyzeTrend when no model is configured.
	UnavailableText = "Unable to analyze."
	// FailedText is returned by AnalyzeTrend when the model call fails.
	FailedText = "Analysis failed."
)

// Collaborator suggests tags for note text and comments on a data series.
type Collaborator interface {
	SuggestTags(ctx context.Context, text string) []string
	AnalyzeTrend(ctx context.Context, label, unit string, points []models.DataPoint) string
}

// Disabled is the collaborator used when no credentials are configured.
type Disabled struct{}

func (Disabled) SuggestTags(context.Context, string) []string { return []string{} }

func (Disabled) AnalyzeTrend(context.Context, string, string, []models.DataPoint) string {
	return UnavailableText
}

// Request is a single-turn generation request.
type Request struct {
	Prompt string
	// StringList asks for a JSON array of strings as the response body.
	StringList bool
}

type generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Service implements Collaborator over a text generator.
type Service struct {
	gen generator
}

func NewService(gen generator) *Service {
	return &Service{gen: gen}
}

// SuggestTags returns up to three short tags for text, or none on failure.
func (s *Service) SuggestTags(ctx context.Context, text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}
	prompt := fmt.Sprintf("Analyze the following note and suggest up to %d relevant short tags "+
		"(single words, use Chinese if the content is Chinese). Return only the tags. Note: %q",
		constants.MaxSuggestedTags, text)

	out, err := s.gen.Generate(ctx, Request{Prompt: prompt, StringList: true})
	if err != nil {
		logger.Warn("Tag suggestion failed", "error", err)
		return []string{}
	}
	var raw []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &raw); err != nil {
		logger.Warn("Tag suggestion returned malformed output", "error", err)
		return []string{}
	}
	return cleanTags(raw)
}

func cleanTags(raw []string) []string {
	seen := map[string]bool{}
	tags := []string{}
	for _, t := range raw {
		t = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(t), "#"))
		if t == "" || strings.ContainsAny(t, " \t\n") || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
		if len(tags) == constants.MaxSuggestedTags {
			break
		}
	}
	return tags
}

// AnalyzeTrend returns a one-sentence comment on the last points of a series.
func (s *Service) AnalyzeTrend(ctx context.Context, label, unit string, points []models.DataPoint) string {
	if len(points) > constants.AnalyzePoints {
		points = points[len(points)-constants.AnalyzePoints:]
	}
	data, err := json.Marshal(points)
	if err != nil {
		logger.Warn("Trend analysis failed", "error", err)
		return FailedText
	}
	name := label
	if unit != "" {
		name = fmt.Sprintf("%s (%s)", label, unit)
	}
	prompt := fmt.Sprintf("Analyze the trend of %q: %s. Give one short sentence of insight or "+
		"encouragement, in Chinese if the label is Chinese.", name, data)

	out, err := s.gen.Generate(ctx, Request{Prompt: prompt})
	if err != nil {
		logger.Warn("Trend analysis failed", "error", err)
		return FailedText
	}
	return strings.TrimSpace(out)
}
