// Package recommend maps questionnaire answers to resume content blocks.
//
// Resolution never fails. Unknown roles, unanswered questions, answers for
// questions outside the role and stale option IDs all contribute nothing.
package recommend

import (
	"github.com/spigell/fqhc-resume/internal/catalog"
)

// Resolver resolves answers against a fixed catalog. It keeps no state
// between calls and is safe for concurrent use.
type Resolver struct {
	catalog *catalog.Catalog
}

// Match records the first question/option pair that produced a block.
type Match struct {
	BlockID    string `json:"block_id"`
	QuestionID string `json:"question_id"`
	OptionID   string `json:"option_id"`
}

func NewResolver(c *catalog.Catalog) *Resolver {
	return &Resolver{catalog: c}
}

// Resolve resolves answers for role against the embedded catalog.
func Resolve(answers Answers, role string) []string {
	return NewResolver(catalog.Default()).Resolve(answers, role)
}

// Resolve returns the deduplicated content block IDs recommended by the
// answers for role's questions. Order follows catalog question order, then
// the order options appear in each selection.
func (r *Resolver) Resolve(answers Answers, role string) []string {
	matches := r.Trace(answers, role)
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.BlockID)
	}
	return ids
}

// Trace resolves like Resolve but also reports where each block came from.
func (r *Resolver) Trace(answers Answers, role string) []Match {
	matches := make([]Match, 0)
	if r == nil || len(answers) == 0 {
		return matches
	}

	seen := make(map[string]struct{})
	for _, question := range r.catalog.Questions(role) {
		selection, ok := answers[question.ID]
		if !ok {
			continue
		}

		for _, optionID := range selection {
			option, ok := question.Option(optionID)
			if !ok {
				continue
			}
			for _, blockID := range option.Recommends {
				if _, dup := seen[blockID]; dup {
					continue
				}
				seen[blockID] = struct{}{}
				matches = append(matches, Match{
					BlockID:    blockID,
					QuestionID: question.ID,
					OptionID:   option.ID,
				})
			}
		}
	}

	return matches
}
