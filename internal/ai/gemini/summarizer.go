package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/fqhc-resume/internal/ai"
	"github.com/spigell/fqhc-resume/internal/logger"
	"github.com/spigell/fqhc-resume/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

type Summarizer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var systemTemplate string

//go:embed message.md
var messageTemplate string

const defaultMaxLogLength = 200

func NewSummarizer(generator contentGenerator, log *zap.Logger, maxLogLength int) *Summarizer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Summarizer{
		generator: generator,
		logger:    logger.WithAI(log, Provider, generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (s *Summarizer) Summarize(ctx context.Context, req ai.SummaryRequest) (*ai.Summary, error) {
	if len(req.Bullets) == 0 {
		return nil, errors.New("at least one bullet is required")
	}

	system := strings.ReplaceAll(systemTemplate, "{{LANGUAGE}}", req.Language)
	message := buildMessage(req)

	s.logger.Debug("gemini generate content request",
		zap.String("role", req.Role),
		zap.Int("bullets", len(req.Bullets)),
		zap.Int("prompt_length", utf8.RuneCountInString(message)),
		zap.String("prompt_preview", utils.TruncateForLog(message, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, system, message)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini generate content response",
		zap.String("role", req.Role),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, s.maxLogLen)),
	)

	summary, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	summary.Raw = raw
	return summary, nil
}

func buildMessage(req ai.SummaryRequest) string {
	var bullets strings.Builder
	for i, b := range req.Bullets {
		if i > 0 {
			bullets.WriteString("\n")
		}
		bullets.WriteString("- ")
		bullets.WriteString(strings.TrimSpace(b))
	}

	template := messageTemplate
	if strings.TrimSpace(template) == "" {
		template = "Role: {{ROLE}}\nLanguage: {{LANGUAGE}}\n\n{{BULLETS}}\n\nJSON Response:"
	}
	message := strings.ReplaceAll(template, "{{ROLE}}", req.Role)
	message = strings.ReplaceAll(message, "{{LANGUAGE}}", req.Language)
	return strings.ReplaceAll(message, "{{BULLETS}}", bullets.String())
}

func parseResponse(raw string) (*ai.Summary, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	summary := &ai.Summary{
		Headline: coerceString(data["headline"]),
		Summary:  coerceString(data["summary"]),
	}
	if summary.Headline == "" && summary.Summary == "" {
		return nil, errors.New("gemini response has neither headline nor summary")
	}

	return summary, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
