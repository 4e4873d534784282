package recommend

import (
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Selection is the normalized form of one answer: the option IDs picked for
// a question. Single-choice answers are one-element selections.
type Selection []string

// Single wraps a bare option ID.
func Single(id string) Selection {
	return Selection{id}
}

// Multi builds a selection from several option IDs.
func Multi(ids ...string) Selection {
	return append(Selection(nil), ids...)
}

// Answers maps question IDs to selections.
type Answers map[string]Selection

// DecodeAnswers normalizes untyped answer values, e.g. decoded JSON or YAML.
// A bare value becomes a one-element selection and lists keep their order.
// Values that cannot be read as strings are dropped: a whole answer when it is
// a bare value, a single element when it sits in a list.
func DecodeAnswers(raw map[string]any) Answers {
	answers := make(Answers, len(raw))
	for questionID, value := range raw {
		selection, ok := decodeSelection(value)
		if !ok {
			continue
		}
		answers[questionID] = selection
	}
	return answers
}

// decodeSelection reads every list element on its own so one malformed entry
// does not take its neighbours with it.
func decodeSelection(value any) (Selection, bool) {
	if value == nil {
		return nil, false
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		id, ok := decodeOptionID(value)
		if !ok {
			return nil, false
		}
		return Single(id), true
	}

	ids := make(Selection, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		if id, ok := decodeOptionID(rv.Index(i).Interface()); ok {
			ids = append(ids, id)
		}
	}
	return ids, true
}

func decodeOptionID(value any) (string, bool) {
	if value == nil {
		return "", false
	}

	var id string
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &id,
	})
	if err != nil {
		return "", false
	}
	if err := decoder.Decode(value); err != nil {
		return "", false
	}
	return id, true
}

// ParseAnswerFlags reads answers in the "question=option[,option...]" form.
// Repeated questions accumulate. Entries without a question ID are dropped.
func ParseAnswerFlags(values []string) Answers {
	answers := make(Answers)
	for _, value := range values {
		questionID, options, found := strings.Cut(value, "=")
		questionID = strings.TrimSpace(questionID)
		if !found || questionID == "" {
			continue
		}
		for _, option := range strings.Split(options, ",") {
			option = strings.TrimSpace(option)
			if option == "" {
				continue
			}
			answers[questionID] = append(answers[questionID], option)
		}
	}
	return answers
}
