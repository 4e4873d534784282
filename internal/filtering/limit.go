package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/fqhc-resume/internal/content"
)

type limitFilter struct {
	maxBullets int
	logger     *zap.Logger
}

// NewLimit creates a filter that keeps the first maxBullets bullets. Zero means unlimited.
func NewLimit(maxBullets int, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &limitFilter{maxBullets: maxBullets, logger: logger}
}

func (f *limitFilter) Name() string { return "limit" }

func (f *limitFilter) Disable(string) {}

func (f *limitFilter) IsEnabled() bool { return true }

func (f *limitFilter) Validate() error {
	if f.maxBullets < 0 {
		return fmt.Errorf("max bullets must not be negative, got %d", f.maxBullets)
	}
	return nil
}

func (f *limitFilter) Apply(_ context.Context, b *content.Bullets) (*content.Bullets, Step, error) {
	initial := b.Len()
	cut := b.Limit(f.maxBullets)
	if len(cut) > 0 {
		f.logger.Info("limiting bullets",
			zap.Int("max_bullets", f.maxBullets),
			zap.Strings("cut_blocks", cut),
		)
	}

	return b, Step{Initial: initial, Dropped: len(cut), Left: b.Len()}, nil
}

func (f *limitFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: true, Details: map[string]string{
		"max_bullets": strconv.Itoa(f.maxBullets),
	}}
}
