package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spigell/fqhc-resume/internal/recommend"
	"github.com/spigell/fqhc-resume/internal/resume"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Resolve questionnaire answers into recommended resume bullets",
	Example: `  fqhc-resume recommend --role chw --answer chw_outreach=chw_outreach_home,chw_outreach_community
  fqhc-resume recommend --role medical_assistant --answers-file answers.yaml --lang es --output json`,
	Run: func(cmd *cobra.Command, _ []string) {
		runRecommend(cmd)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringP("role", "r", "", "role to answer for (see the roles command)")
	recommendCmd.Flags().StringArrayP("answer", "a", nil, "answer in question=option[,option] form, repeatable")
	recommendCmd.Flags().StringP("answers-file", "f", "", "yaml file mapping question IDs to an option ID or a list of option IDs")
	recommendCmd.Flags().StringP("lang", "l", "", "output language: en or es (default from config)")
	recommendCmd.Flags().Bool("explain", false, "show which question and option produced each bullet")
	recommendCmd.Flags().StringP("output", "o", outputText, "output format: text or json")

	_ = recommendCmd.MarkFlagRequired("role")
}

func runRecommend(cmd *cobra.Command) {
	ctx := context.Background()
	e := setup()

	role, _ := cmd.Flags().GetString("role")
	flagAnswers, _ := cmd.Flags().GetStringArray("answer")
	answersFile, _ := cmd.Flags().GetString("answers-file")
	langFlag, _ := cmd.Flags().GetString("lang")
	explain, _ := cmd.Flags().GetBool("explain")
	output, _ := cmd.Flags().GetString("output")

	if output != outputText && output != outputJSON {
		e.logger.Fatal("invalid output format", zap.String("output", output))
	}

	answers := recommend.Answers{}
	if answersFile != "" {
		fromFile, err := loadAnswersFile(answersFile)
		if err != nil {
			e.logger.Fatal("reading answers file", zap.String("path", answersFile), zap.Error(err))
		}
		answers = fromFile
	}
	answers = mergeAnswers(answers, recommend.ParseAnswerFlags(flagAnswers))

	if len(e.catalog.Questions(role)) == 0 {
		e.logger.Warn("role has no questions in the catalog", zap.String("role", role), zap.Strings("roles", e.catalog.Roles()))
	}

	result, err := e.newBuilder(ctx).Build(ctx, resume.Request{
		Role:     role,
		Answers:  answers,
		Language: e.language(langFlag),
		Explain:  explain,
	})
	if err != nil {
		e.logger.Fatal("building recommendations", zap.Error(err))
	}

	if err := printResult(cmd.OutOrStdout(), result, output); err != nil {
		e.logger.Fatal("printing result", zap.Error(err))
	}
}

// loadAnswersFile reads a yaml mapping of question IDs to option IDs.
func loadAnswersFile(path string) (recommend.Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}

	return recommend.DecodeAnswers(raw), nil
}

// mergeAnswers returns base with every question in override replaced.
func mergeAnswers(base, override recommend.Answers) recommend.Answers {
	merged := make(recommend.Answers, len(base)+len(override))
	for q, sel := range base {
		merged[q] = sel
	}
	for q, sel := range override {
		merged[q] = sel
	}
	return merged
}

func printResult(w io.Writer, result *resume.Result, output string) error {
	if output == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if len(result.Bullets) == 0 {
		_, err := fmt.Fprintf(w, "No recommendations for role %q.\n", result.Role)
		return err
	}

	var b strings.Builder
	if result.Summary != nil {
		if result.Summary.Headline != "" {
			fmt.Fprintf(&b, "%s\n", result.Summary.Headline)
		}
		if result.Summary.Summary != "" {
			fmt.Fprintf(&b, "%s\n", result.Summary.Summary)
		}
		b.WriteString("\n")
	}

	sources := make(map[string]recommend.Match, len(result.Matches))
	for _, m := range result.Matches {
		sources[m.BlockID] = m
	}

	for _, bullet := range result.Bullets {
		fmt.Fprintf(&b, "- %s\n", bullet.Text)
		if m, ok := sources[bullet.ID]; ok {
			fmt.Fprintf(&b, "    [%s] from %s=%s\n", bullet.ID, m.QuestionID, m.OptionID)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
