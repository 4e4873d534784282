// Package resume turns one questionnaire submission into rendered resume bullets.
package resume

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/fqhc-resume/internal/ai"
	"github.com/spigell/fqhc-resume/internal/content"
	"github.com/spigell/fqhc-resume/internal/filtering"
	"github.com/spigell/fqhc-resume/internal/logger"
	"github.com/spigell/fqhc-resume/internal/recommend"
)

type Request struct {
	Role     string
	Answers  recommend.Answers
	Language content.Language
	// Explain adds the question/option source of every resolved block.
	Explain bool
}

type Result struct {
	ID       uuid.UUID         `json:"id"`
	Role     string            `json:"role"`
	Language content.Language  `json:"language"`
	Blocks   []string          `json:"blocks"`
	Matches  []recommend.Match `json:"matches,omitempty"`
	Bullets  []*content.Bullet `json:"bullets"`
	Missing  []string          `json:"missing,omitempty"`
	Summary  *ai.Summary       `json:"summary,omitempty"`
}

type Builder struct {
	resolver   *recommend.Resolver
	store      *content.Store
	filters    *filtering.Filtering
	summarizer ai.Summarizer
	logger     *zap.Logger
}

// NewBuilder wires the build steps. filters and summarizer may be nil.
func NewBuilder(resolver *recommend.Resolver, store *content.Store, filters *filtering.Filtering, summarizer ai.Summarizer, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	if filters == nil {
		filters = filtering.New(nil, log)
	}

	return &Builder{
		resolver:   resolver,
		store:      store,
		filters:    filters,
		summarizer: summarizer,
		logger:     log,
	}
}

// Build resolves the answers, renders the blocks and runs the filters.
// Unknown roles yield an empty result. Only filter failures are returned as errors.
func (b *Builder) Build(ctx context.Context, req Request) (*Result, error) {
	if req.Language == "" {
		req.Language = content.English
	}
	log := logger.WithRequest(b.logger, req.Role, string(req.Language))

	matches := b.resolver.Trace(req.Answers, req.Role)
	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, m.BlockID)
	}

	result := &Result{
		ID:       uuid.New(),
		Role:     req.Role,
		Language: req.Language,
		Blocks:   blocks,
		Missing:  b.store.Missing(blocks),
	}
	if req.Explain {
		result.Matches = matches
	}
	if len(result.Missing) > 0 {
		log.Warn("recommended blocks have no content", zap.Strings("missing", result.Missing))
	}

	bullets, err := b.filters.RunFilters(ctx, b.store.Render(blocks, req.Language))
	if err != nil {
		return nil, fmt.Errorf("filtering bullets: %w", err)
	}
	result.Bullets = bullets.Items
	if result.Bullets == nil {
		result.Bullets = []*content.Bullet{}
	}

	log.Info("recommendations resolved",
		zap.String("id", result.ID.String()),
		zap.Int("blocks", len(blocks)),
		zap.Int("bullets", len(result.Bullets)),
	)

	if b.summarizer != nil && len(result.Bullets) > 0 {
		summary, err := b.summarizer.Summarize(ctx, ai.SummaryRequest{
			Role:     req.Role,
			Language: string(req.Language),
			Bullets:  bullets.Texts(),
		})
		if err != nil {
			log.Warn("summary generation failed", zap.Error(err))
		} else {
			result.Summary = summary
		}
	}

	return result, nil
}
