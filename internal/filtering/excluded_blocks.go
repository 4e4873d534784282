package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/fqhc-resume/internal/content"
)

type excludedBlocksFilter struct {
	blocks []string
	logger *zap.Logger
}

// NewExcludedBlocks creates a filter that drops blocks listed in the config.
func NewExcludedBlocks(blocks []string, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &excludedBlocksFilter{
		blocks: blocks,
		logger: logger,
	}
}

func (f *excludedBlocksFilter) Name() string { return "excluded_blocks" }

func (f *excludedBlocksFilter) Disable(string) {}

func (f *excludedBlocksFilter) IsEnabled() bool { return true }

func (f *excludedBlocksFilter) Validate() error { return nil }

func (f *excludedBlocksFilter) Apply(_ context.Context, b *content.Bullets) (*content.Bullets, Step, error) {
	initial := b.Len()
	if len(f.blocks) == 0 {
		return b, Step{Initial: initial, Dropped: 0, Left: b.Len()}, nil
	}

	excluded := b.Exclude(f.blocks)
	if len(excluded) > 0 {
		f.logger.Info("excluding blocks by config",
			zap.Strings("excluded_blocks", excluded),
			zap.Int("bullets_left", b.Len()),
		)
	}

	return b, Step{Initial: initial, Dropped: len(excluded), Left: b.Len()}, nil
}

func (f *excludedBlocksFilter) Status() Status {
	details := map[string]string{}
	if len(f.blocks) > 0 {
		details["blocks"] = strings.Join(f.blocks, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
