package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/fqhc-resume/internal/catalog"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the roles the questionnaire covers",
	Run: func(cmd *cobra.Command, _ []string) {
		e := setup()
		if err := printRoles(cmd.OutOrStdout(), e.catalog); err != nil {
			e.logger.Fatal("printing roles", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}

func printRoles(w io.Writer, c *catalog.Catalog) error {
	for _, role := range c.Roles() {
		if _, err := fmt.Fprintf(w, "%s\t%d questions\n", role, len(c.Questions(role))); err != nil {
			return err
		}
	}
	return nil
}
