package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/slidesmith/slidesmith/internal/errs"
	"github.com/slidesmith/slidesmith/internal/model"
	"github.com/slidesmith/slidesmith/internal/ollama"
)

// Generator is the slice of the Ollama client the AI service depends on.
type Generator interface {
	Chat(ctx context.Context, model string, messages []ollama.Message) (string, error)
	ListModels(ctx context.Context) ([]string, error)
	Pull(ctx context.Context, model string) error
}

// DeckWriter persists a generated outline as a downloadable deck artifact.
type DeckWriter interface {
	WriteDeck(title string, slides []model.SlidePlan) (url string, err error)
}

// GenerateRequest is the payload of an AI slide generation call.
type GenerateRequest struct {
	Topic         string `json:"topic"`
	SlideCount    int    `json:"slideCount"`
	Tone          string `json:"tone"`
	Language      string `json:"language"`
	IncludeImages bool   `json:"includeImages"`
	ExportFormat  string `json:"exportFormat"`
}

// GenerateResult is the outcome of an AI slide generation call. FileURL is
// set only when a deck artifact was requested.
type GenerateResult struct {
	Slides  []model.SlidePlan `json:"slides"`
	FileURL string            `json:"fileUrl,omitempty"`
}

// SlideDraft is one entry of the legacy generation stub.
type SlideDraft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// HealthStatus reports whether the local model runner is reachable.
type HealthStatus struct {
	Status string   `json:"status"`
	Models []string `json:"models,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// AIService defines AI-assisted slide generation backed by a local model.
type AIService interface {
	// GenerateSlides asks the model for a deck outline and optionally writes
	// a downloadable artifact.
	GenerateSlides(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
	// GenerateLegacy is the old placeholder generator; it synthesizes drafts
	// without calling the model or persisting anything.
	GenerateLegacy(prompt string, count int, tone string) []SlideDraft
	// Health reports model runner reachability and available models.
	Health(ctx context.Context) HealthStatus
	// PullModel downloads a model to the runner.
	PullModel(ctx context.Context, name string) error
}

type AIServiceImpl struct {
	gen          Generator
	decks        DeckWriter
	defaultModel string
}

// NewAIService constructs AIService.
func NewAIService(gen Generator, decks DeckWriter, defaultModel string) *AIServiceImpl {
	return &AIServiceImpl{gen: gen, decks: decks, defaultModel: defaultModel}
}

type slidePlanEnvelope struct {
	Slides []model.SlidePlan `json:"slides"`
}

// GenerateSlides builds the outline prompt, calls the model and parses its
// JSON reply. With exportFormat "pptx" the outline is also written out as a
// deck artifact under the uploads directory.
func (s *AIServiceImpl) GenerateSlides(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if req.Topic == "" {
		return nil, errs.Validation("topic required")
	}
	if req.SlideCount <= 0 {
		req.SlideCount = 5
	}
	if req.Tone == "" {
		req.Tone = "professional"
	}

	reply, err := s.gen.Chat(ctx, s.defaultModel, []ollama.Message{
		{Role: "system", Content: "You are a professional presentation designer. Generate structured slide content in JSON format."},
		{Role: "user", Content: buildPrompt(req)},
	})
	if err != nil {
		return nil, fmt.Errorf("generate slides: %w", err)
	}

	var envelope slidePlanEnvelope
	if err := json.Unmarshal([]byte(reply), &envelope); err != nil {
		return nil, fmt.Errorf("generate slides: model returned invalid JSON: %w", err)
	}

	result := &GenerateResult{Slides: envelope.Slides}
	if req.ExportFormat == "pptx" && len(envelope.Slides) > 0 {
		url, err := s.decks.WriteDeck(req.Topic, envelope.Slides)
		if err != nil {
			return nil, fmt.Errorf("write deck artifact: %w", err)
		}
		result.FileURL = url
	}
	return result, nil
}

// buildPrompt renders the outline request the model answers with JSON.
func buildPrompt(req GenerateRequest) string {
	languageInstruction := "Respond in English."
	if req.Language == "vi" {
		languageInstruction = "Respond in Vietnamese."
	}
	imageInstruction := "Do not include image suggestions."
	if req.IncludeImages {
		imageInstruction = `For each slide, suggest a relevant image description in the "imageHint" field.`
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", languageInstruction)
	fmt.Fprintf(&b, "Create a presentation about: %q\n\n", req.Topic)
	fmt.Fprintf(&b, "Requirements:\n- Number of slides: %d\n- Tone: %s\n- %s\n\n", req.SlideCount, req.Tone, imageInstruction)
	b.WriteString(`Return ONLY valid JSON in this exact format:
{
  "slides": [
    {
      "slideNumber": 1,
      "title": "Slide Title",
      "bullets": ["Point 1", "Point 2", "Point 3"],
      "notes": "Speaker notes for this slide",
      "imageHint": "Description of relevant image (optional)"
    }
  ]
}

Rules:
1. First slide should be a title slide with the main topic
2. Last slide should be a conclusion or call-to-action
3. Middle slides should cover key points about the topic
4. Each slide should have 2-5 bullet points
5. Keep bullet points concise (max 15 words each)
6. Include helpful speaker notes
7. Make sure the JSON is valid and parseable`)
	return b.String()
}

// GenerateLegacy synthesizes placeholder drafts for the old endpoint.
func (s *AIServiceImpl) GenerateLegacy(prompt string, count int, tone string) []SlideDraft {
	if count <= 0 {
		count = 3
	}
	if tone == "" {
		tone = "neutral"
	}
	drafts := make([]SlideDraft, 0, count)
	for i := 1; i <= count; i++ {
		content, _ := json.Marshal(map[string]string{
			"text": fmt.Sprintf("Generated content (%s): %s - slide %d", tone, prompt, i),
		})
		drafts = append(drafts, SlideDraft{
			Title:   fmt.Sprintf("%s - Slide %d", prompt, i),
			Content: string(content),
		})
	}
	return drafts
}

// Health reports model runner reachability.
func (s *AIServiceImpl) Health(ctx context.Context) HealthStatus {
	models, err := s.gen.ListModels(ctx)
	if err != nil {
		return HealthStatus{Status: "unhealthy", Error: err.Error()}
	}
	return HealthStatus{Status: "healthy", Models: models}
}

// PullModel downloads a model, defaulting to the configured one.
func (s *AIServiceImpl) PullModel(ctx context.Context, name string) error {
	if name == "" {
		name = s.defaultModel
	}
	return s.gen.Pull(ctx, name)
}
