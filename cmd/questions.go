package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/fqhc-resume/internal/catalog"
	"github.com/spigell/fqhc-resume/internal/content"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the questionnaire for a role with question and option IDs",
	Run: func(cmd *cobra.Command, _ []string) {
		e := setup()

		role, _ := cmd.Flags().GetString("role")
		langFlag, _ := cmd.Flags().GetString("lang")

		questions := e.catalog.Questions(role)
		if len(questions) == 0 {
			e.logger.Fatal("unknown role", zap.String("role", role), zap.Strings("roles", e.catalog.Roles()))
		}

		if err := printQuestions(cmd.OutOrStdout(), questions, e.language(langFlag)); err != nil {
			e.logger.Fatal("printing questions", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(questionsCmd)

	questionsCmd.Flags().StringP("role", "r", "", "role to print the questionnaire for")
	questionsCmd.Flags().StringP("lang", "l", "", "language: en or es (default from config)")

	_ = questionsCmd.MarkFlagRequired("role")
}

func printQuestions(w io.Writer, questions []*catalog.Question, lang content.Language) error {
	var b strings.Builder
	for i, q := range questions {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s (%s)\n  %s\n", q.ID, q.AnswerType, q.Prompt.In(string(lang)))
		for _, o := range q.Options {
			fmt.Fprintf(&b, "    %s: %s\n", o.ID, o.Label.In(string(lang)))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
