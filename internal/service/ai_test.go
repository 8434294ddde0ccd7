package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/slidesmith/slidesmith/internal/errs"
	"github.com/slidesmith/slidesmith/internal/model"
	"github.com/slidesmith/slidesmith/internal/ollama"
)

type fakeGenerator struct {
	reply    string
	chatErr  error
	models   []string
	tagsErr  error
	pulled   []string
	lastMsgs []ollama.Message
}

var _ Generator = (*fakeGenerator)(nil)

func (f *fakeGenerator) Chat(_ context.Context, _ string, messages []ollama.Message) (string, error) {
	f.lastMsgs = messages
	if f.chatErr != nil {
		return "", f.chatErr
	}
	return f.reply, nil
}

func (f *fakeGenerator) ListModels(_ context.Context) ([]string, error) {
	if f.tagsErr != nil {
		return nil, f.tagsErr
	}
	return f.models, nil
}

func (f *fakeGenerator) Pull(_ context.Context, model string) error {
	f.pulled = append(f.pulled, model)
	return nil
}

type fakeDeckWriter struct {
	url         string
	err         error
	lastOutline []model.SlidePlan
}

var _ DeckWriter = (*fakeDeckWriter)(nil)

func (f *fakeDeckWriter) WriteDeck(_ string, slides []model.SlidePlan) (string, error) {
	f.lastOutline = slides
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

const modelReply = `{"slides":[{"slideNumber":1,"title":"Go","bullets":["fast","simple"],"notes":"intro"}]}`

func TestGenerateSlides_OK(t *testing.T) {
	gen := &fakeGenerator{reply: modelReply}
	svc := NewAIService(gen, &fakeDeckWriter{}, "llama3.2")

	res, err := svc.GenerateSlides(context.Background(), GenerateRequest{Topic: "Go"})
	if err != nil {
		t.Fatalf("GenerateSlides: %v", err)
	}
	if len(res.Slides) != 1 || res.Slides[0].Title != "Go" {
		t.Fatalf("slides=%+v", res.Slides)
	}
	if res.FileURL != "" {
		t.Fatalf("fileUrl=%q, want empty without pptx export", res.FileURL)
	}

	// Prompt defaults applied.
	prompt := gen.lastMsgs[len(gen.lastMsgs)-1].Content
	if !strings.Contains(prompt, "Number of slides: 5") {
		t.Fatalf("slide count default missing from prompt")
	}
	if !strings.Contains(prompt, "Tone: professional") {
		t.Fatalf("tone default missing from prompt")
	}
}

func TestGenerateSlides_MissingTopic(t *testing.T) {
	svc := NewAIService(&fakeGenerator{}, &fakeDeckWriter{}, "llama3.2")

	_, err := svc.GenerateSlides(context.Background(), GenerateRequest{})
	if !errs.IsValidation(err) {
		t.Fatalf("err=%v, want validation error", err)
	}
}

func TestGenerateSlides_PptxExportWritesArtifact(t *testing.T) {
	writer := &fakeDeckWriter{url: "/uploads/presentations/presentation_1.pptx"}
	svc := NewAIService(&fakeGenerator{reply: modelReply}, writer, "llama3.2")

	res, err := svc.GenerateSlides(context.Background(), GenerateRequest{Topic: "Go", ExportFormat: "pptx"})
	if err != nil {
		t.Fatalf("GenerateSlides: %v", err)
	}
	if res.FileURL != writer.url {
		t.Fatalf("fileUrl=%q", res.FileURL)
	}
	if len(writer.lastOutline) != 1 {
		t.Fatalf("artifact outline=%+v", writer.lastOutline)
	}
}

func TestGenerateSlides_InvalidModelJSON(t *testing.T) {
	svc := NewAIService(&fakeGenerator{reply: "sure, here are your slides:"}, &fakeDeckWriter{}, "llama3.2")

	_, err := svc.GenerateSlides(context.Background(), GenerateRequest{Topic: "Go"})
	if err == nil || !strings.Contains(err.Error(), "invalid JSON") {
		t.Fatalf("err=%v, want invalid JSON error", err)
	}
}

func TestGenerateSlides_RunnerDown(t *testing.T) {
	svc := NewAIService(&fakeGenerator{chatErr: errors.New("connection refused")}, &fakeDeckWriter{}, "llama3.2")

	_, err := svc.GenerateSlides(context.Background(), GenerateRequest{Topic: "Go"})
	if err == nil {
		t.Fatalf("expected error when runner is down")
	}
}

func TestGenerateLegacy_Defaults(t *testing.T) {
	svc := NewAIService(&fakeGenerator{}, &fakeDeckWriter{}, "llama3.2")

	drafts := svc.GenerateLegacy("Quarterly results", 0, "")
	if len(drafts) != 3 {
		t.Fatalf("len=%d, want default 3", len(drafts))
	}
	if !strings.Contains(drafts[0].Title, "Quarterly results") {
		t.Fatalf("title=%q", drafts[0].Title)
	}
	if !strings.Contains(drafts[0].Content, "neutral") {
		t.Fatalf("content=%q", drafts[0].Content)
	}
}

func TestHealth(t *testing.T) {
	ctx := context.Background()

	up := NewAIService(&fakeGenerator{models: []string{"llama3.2"}}, &fakeDeckWriter{}, "llama3.2")
	status := up.Health(ctx)
	if status.Status != "healthy" || len(status.Models) != 1 {
		t.Fatalf("status=%+v", status)
	}

	down := NewAIService(&fakeGenerator{tagsErr: errors.New("refused")}, &fakeDeckWriter{}, "llama3.2")
	status = down.Health(ctx)
	if status.Status != "unhealthy" || status.Error == "" {
		t.Fatalf("status=%+v", status)
	}
}

func TestPullModel_DefaultsToConfigured(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewAIService(gen, &fakeDeckWriter{}, "llama3.2")
	ctx := context.Background()

	if err := svc.PullModel(ctx, ""); err != nil {
		t.Fatalf("PullModel: %v", err)
	}
	if err := svc.PullModel(ctx, "mistral"); err != nil {
		t.Fatalf("PullModel named: %v", err)
	}
	if len(gen.pulled) != 2 || gen.pulled[0] != "llama3.2" || gen.pulled[1] != "mistral" {
		t.Fatalf("pulled=%v", gen.pulled)
	}
}
