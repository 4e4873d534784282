package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/fqhc-resume/internal/catalog"
	"github.com/spigell/fqhc-resume/internal/content"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that every recommended block has content and translations",
	Run: func(cmd *cobra.Command, _ []string) {
		e := setup()

		report := validateData(e.catalog, e.store)
		if err := report.print(cmd.OutOrStdout()); err != nil {
			e.logger.Fatal("printing report", zap.Error(err))
		}

		if !report.ok() {
			e.logger.Fatal("validation failed",
				zap.Int("missing", len(report.Missing)),
				zap.Int("untranslated", len(report.Untranslated)),
			)
		}
		e.logger.Info("catalog and content are consistent",
			zap.Int("questions", e.catalog.Len()),
			zap.Int("blocks", e.store.Len()),
		)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

type validationReport struct {
	// Missing lists blocks recommended by the catalog with no content.
	Missing []string
	// Untranslated lists blocks without Spanish text. They render in English.
	Untranslated []string
	// Unused lists blocks no option recommends.
	Unused []string
}

func validateData(c *catalog.Catalog, store *content.Store) validationReport {
	recommended := c.BlockIDs()

	referenced := make(map[string]struct{}, len(recommended))
	for _, id := range recommended {
		referenced[id] = struct{}{}
	}

	var unused []string
	for _, id := range store.IDs() {
		if _, ok := referenced[id]; !ok {
			unused = append(unused, id)
		}
	}

	return validationReport{
		Missing:      store.Missing(recommended),
		Untranslated: store.Untranslated(content.Spanish),
		Unused:       unused,
	}
}

// ok reports whether the data can serve every answer. Unused blocks are only reported.
func (r validationReport) ok() bool {
	return len(r.Missing) == 0 && len(r.Untranslated) == 0
}

func (r validationReport) print(w io.Writer) error {
	sections := []struct {
		title string
		ids   []string
	}{
		{"missing content", r.Missing},
		{"missing spanish translation", r.Untranslated},
		{"not recommended by any option", r.Unused},
	}
	for _, s := range sections {
		if len(s.ids) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s:\n", s.title); err != nil {
			return err
		}
		for _, id := range s.ids {
			if _, err := fmt.Fprintf(w, "  %s\n", id); err != nil {
				return err
			}
		}
	}
	return nil
}
