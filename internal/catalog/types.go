package catalog

const (
	// LangEnglish is the language every text entry must provide.
	LangEnglish = "en"
	// LangSpanish is the secondary site language.
	LangSpanish = "es"
)

// AnswerType declares how many options a question expects.
type AnswerType string

const (
	AnswerSingle AnswerType = "single"
	AnswerMulti  AnswerType = "multi"
)

// Text holds a string per language code.
type Text map[string]string

// In returns the text for lang, falling back to English.
func (t Text) In(lang string) string {
	if v, ok := t[lang]; ok && v != "" {
		return v
	}
	return t[LangEnglish]
}

// Spec is the on-disk catalog schema.
type Spec struct {
	Version   int        `json:"version" yaml:"version"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Question is one experience question asked to a single role.
type Question struct {
	ID         string     `json:"id" yaml:"id"`
	Role       string     `json:"role" yaml:"role"`
	AnswerType AnswerType `json:"answer_type" yaml:"answer_type"`
	Prompt     Text       `json:"prompt" yaml:"prompt"`
	Options    []Option   `json:"options" yaml:"options"`
}

// Option is a selectable choice. Recommends lists content block IDs.
type Option struct {
	ID         string   `json:"id" yaml:"id"`
	Label      Text     `json:"label" yaml:"label"`
	Recommends []string `json:"recommends,omitempty" yaml:"recommends"`
}

// Option returns the option with the given ID. Lookup is scoped to q.
func (q *Question) Option(id string) (*Option, bool) {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i], true
		}
	}
	return nil, false
}

// OptionIDs returns option IDs in catalog order.
func (q *Question) OptionIDs() []string {
	ids := make([]string, 0, len(q.Options))
	for _, opt := range q.Options {
		ids = append(ids, opt.ID)
	}
	return ids
}
