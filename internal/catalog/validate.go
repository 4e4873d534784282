package catalog

import (
	"fmt"
	"strings"
)

// Issue captures a single problem found in catalog data.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports every issue found while validating a catalog.
type ValidationError struct {
	Issues []Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("catalog validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// normalizeQuestions trims identifiers in place and validates the result.
func normalizeQuestions(questions []Question) error {
	collector := &issueCollector{}
	if len(questions) == 0 {
		collector.add("questions", "must include at least one entry")
	}

	seen := map[string]struct{}{}
	for i := range questions {
		q := &questions[i]
		prefix := fmt.Sprintf("questions[%d]", i)

		q.ID = strings.TrimSpace(q.ID)
		q.Role = strings.TrimSpace(q.Role)
		q.AnswerType = AnswerType(strings.ToLower(strings.TrimSpace(string(q.AnswerType))))

		if q.ID == "" {
			collector.add(prefix+".id", "is required")
		} else if _, dup := seen[q.ID]; dup {
			collector.add(prefix+".id", fmt.Sprintf("duplicate id %q", q.ID))
		} else {
			seen[q.ID] = struct{}{}
		}

		if q.Role == "" {
			collector.add(prefix+".role", "is required")
		}

		switch q.AnswerType {
		case AnswerSingle, AnswerMulti:
		case "":
			collector.add(prefix+".answer_type", "is required")
		default:
			collector.add(prefix+".answer_type", fmt.Sprintf("unsupported value %q", q.AnswerType))
		}

		if strings.TrimSpace(q.Prompt[LangEnglish]) == "" {
			collector.add(prefix+".prompt.en", "is required")
		}

		if len(q.Options) == 0 {
			collector.add(prefix+".options", "must include at least one entry")
		}

		optionIDs := map[string]struct{}{}
		for j := range q.Options {
			opt := &q.Options[j]
			optPrefix := fmt.Sprintf("%s.options[%d]", prefix, j)

			opt.ID = strings.TrimSpace(opt.ID)
			if opt.ID == "" {
				collector.add(optPrefix+".id", "is required")
			} else if _, dup := optionIDs[opt.ID]; dup {
				collector.add(optPrefix+".id", fmt.Sprintf("duplicate id %q", opt.ID))
			} else {
				optionIDs[opt.ID] = struct{}{}
			}

			if strings.TrimSpace(opt.Label[LangEnglish]) == "" {
				collector.add(optPrefix+".label.en", "is required")
			}

			for k, block := range opt.Recommends {
				block = strings.TrimSpace(block)
				if block == "" {
					collector.add(fmt.Sprintf("%s.recommends[%d]", optPrefix, k), "is required")
				}
				opt.Recommends[k] = block
			}
		}
	}

	return collector.result()
}
