package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/fqhc-resume/internal/ai"
)

type stubGenerator struct {
	response    string
	err         error
	lastSystem  string
	lastMessage string
}

func (s *stubGenerator) GenerateContent(_ context.Context, system, message string) (string, error) {
	s.lastSystem = system
	s.lastMessage = message
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func TestSummarizerSummarize(t *testing.T) {
	stub := &stubGenerator{response: `{"headline": "Community Health Worker", "summary": "Bilingual outreach."}`}
	summarizer := NewSummarizer(stub, zap.NewNop(), 0)

	summary, err := summarizer.Summarize(context.Background(), ai.SummaryRequest{
		Role:     "chw",
		Language: "es",
		Bullets:  []string{"Visited patients at home.", "  Enrolled patients in programs.  "},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Headline != "Community Health Worker" || summary.Summary != "Bilingual outreach." {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Raw != stub.response {
		t.Fatalf("expected raw response to be kept")
	}

	if !strings.Contains(stub.lastSystem, "(es)") {
		t.Fatalf("expected language in system prompt: %s", stub.lastSystem)
	}
	if strings.Contains(stub.lastSystem, "{{") {
		t.Fatalf("unresolved placeholder in system prompt: %s", stub.lastSystem)
	}
	if !strings.Contains(stub.lastMessage, "Role: chw") {
		t.Fatalf("expected role in message: %s", stub.lastMessage)
	}
	if !strings.Contains(stub.lastMessage, "- Visited patients at home.\n- Enrolled patients in programs.") {
		t.Fatalf("expected bullet list in message: %s", stub.lastMessage)
	}
}

func TestSummarizerLogsTruncatedPreview(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	stub := &stubGenerator{response: `{"headline": "H", "summary": "` + strings.Repeat("s", 100) + `"}`}
	summarizer := NewSummarizer(stub, zap.New(core), 10)

	if _, err := summarizer.Summarize(context.Background(), ai.SummaryRequest{Role: "chw", Language: "en", Bullets: []string{"b"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := observed.FilterMessage("gemini generate content response").All()
	if len(entries) != 1 {
		t.Fatalf("expected one response log, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	preview, _ := ctx["response_preview"].(string)
	if len([]rune(preview)) != 13 || !strings.HasSuffix(preview, "...") {
		t.Fatalf("unexpected preview: %q", preview)
	}
	if ctx["ai_model"] != "stub-model" || ctx["ai_provider"] != Provider {
		t.Fatalf("expected common ai fields, got %v", ctx)
	}
}

func TestSummarizerErrors(t *testing.T) {
	t.Parallel()

	genErr := errors.New("boom")

	tests := []struct {
		name     string
		stub     *stubGenerator
		bullets  []string
		matchErr error
	}{
		{name: "no bullets", stub: &stubGenerator{}, bullets: nil},
		{name: "generator error", stub: &stubGenerator{err: genErr}, bullets: []string{"b"}, matchErr: genErr},
		{name: "not json", stub: &stubGenerator{response: "I cannot help"}, bullets: []string{"b"}},
		{name: "empty object", stub: &stubGenerator{response: `{}`}, bullets: []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewSummarizer(tt.stub, nil, 0).Summarize(context.Background(), ai.SummaryRequest{Role: "chw", Language: "en", Bullets: tt.bullets})
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.matchErr != nil && !errors.Is(err, tt.matchErr) {
				t.Fatalf("expected %v, got %v", tt.matchErr, err)
			}
		})
	}
}

func TestParseResponseHandlesFencedJSON(t *testing.T) {
	t.Parallel()

	raw := "```json\n{\"headline\": \" Medical Assistant \", \"summary\": 42}\n```"
	summary, err := parseResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Headline != "Medical Assistant" {
		t.Fatalf("unexpected headline: %q", summary.Headline)
	}
	if summary.Summary != "42" {
		t.Fatalf("expected coerced summary, got %q", summary.Summary)
	}
}
