package ai

import (
	"context"
	"fmt"

	"cloud.google.com/go/vertexai/genai"

	"github.com/julianstephens/lifetracks/internal/logger"
)

// Config selects the Vertex AI project and model.
type Config struct {
	Project string
	Region  string
	Model   string
}

const (
	defaultRegion = "us-central1"
	defaultModel  = "gemini-2.0-flash"
)

// Adapter sends requests to a Vertex AI Gemini model.
type Adapter struct {
	client *genai.Client
	model  string
}

func NewAdapter(ctx context.Context, cfg Config) (*Adapter, error) {
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, cfg.Project, region)
	if err != nil {
		return nil, err
	}
	return &Adapter{client: client, model: model}, nil
}

func (a *Adapter) Close() error {
	err := a.client.Close()
	if err != nil {
		logger.Error("vertex adapter close failed", "error", err)
	}
	return err
}

// Generate runs req against the configured model and returns the response text.
func (a *Adapter) Generate(ctx context.Context, req Request) (string, error) {
	if req.Prompt == "" {
		return "", fmt.Errorf("vertex generate request has no content")
	}

	model := a.client.GenerativeModel(a.model)
	if req.StringList {
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = &genai.Schema{
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", err
	}
	return responseText(resp), nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	var text string
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text += string(t)
			}
		}
	}
	return text
}

// New returns a Vertex-backed collaborator, or Disabled when no project is
// configured or the client cannot be created. The returned close func is
// never nil.
func New(ctx context.Context, cfg Config) (Collaborator, func() error) {
	if cfg.Project == "" {
		return Disabled{}, func() error { return nil }
	}
	adapter, err := NewAdapter(ctx, cfg)
	if err != nil {
		logger.Warn("AI collaborator unavailable", "project", cfg.Project, "error", err)
		return Disabled{}, func() error { return nil }
	}
	return NewService(adapter), adapter.Close
}
