package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/fqhc-resume/internal/content"
)

var dismissCmd = &cobra.Command{
	Use:   "dismiss BLOCK_ID...",
	Short: "Record content blocks that should never be recommended again",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e := setup()

		path := e.config.DismissedFile
		if path == "" {
			e.logger.Fatal("dismissed file is not configured",
				zap.String("hint", "pass --dismissed-file or set dismissed-file in the config"),
			)
		}

		reason, _ := cmd.Flags().GetString("reason")

		added, unknown, err := dismissBlocks(path, e.store, reason, args)
		if err != nil {
			e.logger.Fatal("updating dismissed file", zap.String("path", path), zap.Error(err))
		}
		if len(unknown) > 0 {
			e.logger.Warn("skipping unknown blocks", zap.Strings("blocks", unknown))
		}

		e.logger.Info("dismissed blocks", zap.String("path", path), zap.Strings("added", added))
	},
}

func init() {
	rootCmd.AddCommand(dismissCmd)

	dismissCmd.Flags().String("reason", "", "why the blocks are dismissed")
	dismissCmd.Flags().StringP("dismissed-file", "e", "", "file with dismissed blocks")

	viper.BindPFlag("dismissed-file", dismissCmd.Flags().Lookup("dismissed-file"))
}

// dismissBlocks appends the known ids to the dismissed file and returns which were added and which are unknown.
func dismissBlocks(path string, store *content.Store, reason string, ids []string) ([]string, []string, error) {
	known := make([]string, 0, len(ids))
	var unknown []string
	for _, id := range ids {
		if _, ok := store.Block(id); !ok {
			unknown = append(unknown, id)
			continue
		}
		known = append(known, id)
	}

	dismissed, err := content.LoadDismissed(path)
	if err != nil {
		return nil, unknown, err
	}

	added := dismissed.Dismiss(reason, known...)
	if len(added) == 0 {
		return added, unknown, nil
	}

	return added, unknown, dismissed.ToFile(path)
}
