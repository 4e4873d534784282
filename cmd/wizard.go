package cmd

import (
	"context"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/fqhc-resume/internal/catalog"
	"github.com/spigell/fqhc-resume/internal/content"
	"github.com/spigell/fqhc-resume/internal/recommend"
	"github.com/spigell/fqhc-resume/internal/resume"
)

const (
	PromptSkip = "Skip"
	PromptDone = "Done"
)

// selectFunc shows a list and returns the picked index and item.
type selectFunc func(label string, items []string) (int, string, error)

func promptSelect(label string, items []string) (int, string, error) {
	p := promptui.Select{
		Label: label,
		Items: items,
		Size:  len(items),
	}
	return p.Run()
}

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Answer the questionnaire interactively and print recommended bullets",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()
		e := setup()

		role, _ := cmd.Flags().GetString("role")
		langFlag, _ := cmd.Flags().GetString("lang")
		lang := e.language(langFlag)

		if role == "" {
			_, picked, err := promptSelect("Choose a role", e.catalog.Roles())
			if err != nil {
				e.logger.Fatal("exiting", zap.Error(err))
			}
			role = picked
		}

		questions := e.catalog.Questions(role)
		if len(questions) == 0 {
			e.logger.Fatal("unknown role", zap.String("role", role), zap.Strings("roles", e.catalog.Roles()))
		}

		answers, err := askQuestions(questions, lang, promptSelect)
		if err != nil {
			e.logger.Fatal("exiting", zap.Error(err))
		}

		result, err := e.newBuilder(ctx).Build(ctx, resume.Request{Role: role, Answers: answers, Language: lang})
		if err != nil {
			e.logger.Fatal("building recommendations", zap.Error(err))
		}

		if err := printResult(cmd.OutOrStdout(), result, outputText); err != nil {
			e.logger.Fatal("printing result", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(wizardCmd)

	wizardCmd.Flags().StringP("role", "r", "", "role to answer for (asked when empty)")
	wizardCmd.Flags().StringP("lang", "l", "", "language: en or es (default from config)")
}

// askQuestions walks the questions in order. Single-choice questions take one
// pick or a skip; multi-choice questions loop until Done.
func askQuestions(questions []*catalog.Question, lang content.Language, sel selectFunc) (recommend.Answers, error) {
	answers := recommend.Answers{}

	for _, q := range questions {
		prompt := q.Prompt.In(string(lang))

		if q.AnswerType != catalog.AnswerMulti {
			labels, ids := optionItems(q.Options, nil, lang)
			idx, _, err := sel(prompt, append(labels, PromptSkip))
			if err != nil {
				return nil, err
			}
			if idx < len(ids) {
				answers[q.ID] = recommend.Single(ids[idx])
			}
			continue
		}

		var picked []string
		for {
			labels, ids := optionItems(q.Options, picked, lang)
			if len(ids) == 0 {
				break
			}
			label := prompt
			if len(picked) > 0 {
				label = fmt.Sprintf("%s (%d selected)", prompt, len(picked))
			}
			idx, _, err := sel(label, append(labels, PromptDone))
			if err != nil {
				return nil, err
			}
			if idx >= len(ids) {
				break
			}
			picked = append(picked, ids[idx])
		}
		if len(picked) > 0 {
			answers[q.ID] = recommend.Multi(picked...)
		}
	}

	return answers, nil
}

// optionItems returns labels and IDs of options not yet picked.
func optionItems(options []catalog.Option, picked []string, lang content.Language) ([]string, []string) {
	taken := make(map[string]struct{}, len(picked))
	for _, id := range picked {
		taken[id] = struct{}{}
	}

	labels := make([]string, 0, len(options))
	ids := make([]string, 0, len(options))
	for _, o := range options {
		if _, ok := taken[o.ID]; ok {
			continue
		}
		labels = append(labels, o.Label.In(string(lang)))
		ids = append(ids, o.ID)
	}
	return labels, ids
}
