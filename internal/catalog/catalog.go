// Package catalog holds the static per-role experience questionnaire that
// drives resume bullet recommendations. A Catalog is immutable once built and
// safe for concurrent readers.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

const specVersion = 1

//go:embed data/questions.yaml
var defaultData []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Catalog indexes questions by role and by ID.
type Catalog struct {
	questions []*Question
	byRole    map[string][]*Question
	byID      map[string]*Question
	roles     []string
}

// New validates the questions and builds the indexes. The slice is copied.
func New(questions []Question) (*Catalog, error) {
	qs := make([]Question, len(questions))
	copy(qs, questions)
	for i := range qs {
		qs[i].Options = append([]Option(nil), qs[i].Options...)
		for j := range qs[i].Options {
			qs[i].Options[j].Recommends = append([]string(nil), qs[i].Options[j].Recommends...)
		}
	}

	if err := normalizeQuestions(qs); err != nil {
		return nil, err
	}

	c := &Catalog{
		questions: make([]*Question, 0, len(qs)),
		byRole:    make(map[string][]*Question),
		byID:      make(map[string]*Question, len(qs)),
	}
	for i := range qs {
		q := &qs[i]
		c.questions = append(c.questions, q)
		c.byID[q.ID] = q
		if _, ok := c.byRole[q.Role]; !ok {
			c.roles = append(c.roles, q.Role)
		}
		c.byRole[q.Role] = append(c.byRole[q.Role], q)
	}

	return c, nil
}

// Parse decodes a YAML catalog document and validates it.
func Parse(data []byte) (*Catalog, error) {
	var spec Spec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(new(yaml.Node)); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if spec.Version != specVersion {
		return nil, &ValidationError{Issues: []Issue{{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d", spec.Version),
		}}}
	}

	return New(spec.Questions)
}

// Load reads a catalog file from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultData)
		if err != nil {
			panic(fmt.Sprintf("embedded question catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Questions returns the role's questions in catalog order.
// Unknown roles yield nil.
func (c *Catalog) Questions(role string) []*Question {
	if c == nil {
		return nil
	}
	return c.byRole[role]
}

// Question looks a question up by its ID across all roles.
func (c *Catalog) Question(id string) (*Question, bool) {
	if c == nil {
		return nil, false
	}
	q, ok := c.byID[id]
	return q, ok
}

// Roles returns every role in order of first appearance.
func (c *Catalog) Roles() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.roles...)
}

// Len returns the total number of questions.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.questions)
}

// BlockIDs returns every content block ID referenced by any option,
// deduplicated, in catalog order.
func (c *Catalog) BlockIDs() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, q := range c.questions {
		for _, opt := range q.Options {
			for _, block := range opt.Recommends {
				if _, ok := seen[block]; ok {
					continue
				}
				seen[block] = struct{}{}
				ids = append(ids, block)
			}
		}
	}
	return ids
}
