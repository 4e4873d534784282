package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/fqhc-resume/internal/content"
)

type dismissedFileFilter struct {
	path     string
	logger   *zap.Logger
	disabled bool
	reason   string
}

// NewDismissedFile creates a filter that drops blocks recorded in a dismissed blocks file.
func NewDismissedFile(path string, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &dismissedFileFilter{
		path:   path,
		logger: logger,
	}
}

func (f *dismissedFileFilter) Name() string { return "dismissed_file" }

func (f *dismissedFileFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *dismissedFileFilter) IsEnabled() bool { return !f.disabled }

func (f *dismissedFileFilter) Validate() error { return nil }

func (f *dismissedFileFilter) Apply(_ context.Context, b *content.Bullets) (*content.Bullets, Step, error) {
	initial := b.Len()
	if f.path == "" {
		return b, Step{Initial: initial, Dropped: 0, Left: b.Len()}, nil
	}

	dismissed, err := content.LoadDismissed(f.path)
	if err != nil {
		return b, Step{}, fmt.Errorf("getting dismissed blocks from file: %w", err)
	}

	removed := b.Exclude(dismissed.IDs())
	if len(removed) > 0 {
		f.logger.Info("excluding blocks based on dismissed file",
			zap.String("path", f.path),
			zap.Strings("excluded_blocks", removed),
			zap.Int("bullets_left", b.Len()),
		)
	}

	return b, Step{Initial: initial, Dropped: len(removed), Left: b.Len()}, nil
}

func (f *dismissedFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
