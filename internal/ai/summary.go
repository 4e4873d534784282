package ai

import (
	"context"
)

type Summary struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Raw      string `json:"-"`
}

// SummaryRequest carries the rendered bullets a summary is written from.
type SummaryRequest struct {
	Role     string
	Language string
	Bullets  []string
}

type Summarizer interface {
	Summarize(ctx context.Context, req SummaryRequest) (*Summary, error)
}
