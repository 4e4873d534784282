// Package content stores the bilingual resume bullet text keyed by content
// block ID and renders recommendation results into bullets.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/spigell/fqhc-resume/internal/catalog"
)

// Language is a supported site language.
type Language string

const (
	English Language = catalog.LangEnglish
	Spanish Language = catalog.LangSpanish
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

// ParseLanguage accepts "en" or "es" in any case. Empty input means English.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case "", English:
		return English, nil
	case Spanish:
		return Spanish, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
}

//go:embed data/blocks.yaml
var defaultData []byte

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Block is one resume bullet in every language it is written in.
type Block struct {
	ID   string       `yaml:"id"`
	Role string       `yaml:"role"`
	Text catalog.Text `yaml:"text"`
}

type storeFile struct {
	Blocks []Block `yaml:"blocks"`
}

// Store is a read-only set of blocks.
type Store struct {
	blocks []*Block
	byID   map[string]*Block
}

// NewStore validates the blocks and indexes them by ID.
func NewStore(blocks []Block) (*Store, error) {
	s := &Store{byID: make(map[string]*Block, len(blocks))}
	collector := &issueCollector{}
	for i := range blocks {
		b := blocks[i]
		b.ID = strings.TrimSpace(b.ID)
		b.Role = strings.TrimSpace(b.Role)
		field := fmt.Sprintf("blocks[%d]", i)
		switch {
		case b.ID == "":
			collector.add(field+".id", "is required")
			continue
		case s.byID[b.ID] != nil:
			collector.add(field+".id", fmt.Sprintf("duplicate id %q", b.ID))
			continue
		case strings.TrimSpace(b.Text[catalog.LangEnglish]) == "":
			collector.add(field+".text.en", "is required")
			continue
		}
		s.blocks = append(s.blocks, &b)
		s.byID[b.ID] = &b
	}

	if err := collector.result(); err != nil {
		return nil, err
	}
	return s, nil
}

// Parse decodes a YAML blocks document.
func Parse(data []byte) (*Store, error) {
	var file storeFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(new(yaml.Node)); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return NewStore(file.Blocks)
}

// Load reads a blocks file from disk.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content blocks: %w", err)
	}
	return Parse(data)
}

// Default returns the block store compiled into the binary.
func Default() *Store {
	defaultOnce.Do(func() {
		s, err := Parse(defaultData)
		if err != nil {
			panic(fmt.Sprintf("embedded content blocks: %v", err))
		}
		defaultStore = s
	})
	return defaultStore
}

// Block returns the block with the given ID.
func (s *Store) Block(id string) (*Block, bool) {
	b, ok := s.byID[id]
	return b, ok
}

func (s *Store) Len() int {
	return len(s.blocks)
}

// IDs returns block IDs in file order.
func (s *Store) IDs() []string {
	ids := make([]string, 0, len(s.blocks))
	for _, b := range s.blocks {
		ids = append(ids, b.ID)
	}
	return ids
}

// Render turns block IDs into bullets in the requested language, falling
// back to English. Unknown IDs are skipped.
func (s *Store) Render(ids []string, lang Language) *Bullets {
	bullets := &Bullets{Items: make([]*Bullet, 0, len(ids))}
	for _, id := range ids {
		block, ok := s.byID[id]
		if !ok {
			continue
		}
		translated := strings.TrimSpace(block.Text[string(lang)]) != ""
		bullets.Items = append(bullets.Items, &Bullet{
			ID:       block.ID,
			Text:     block.Text.In(string(lang)),
			Language: lang,
			Fallback: !translated,
		})
	}
	return bullets
}

// Missing returns the IDs that have no block in the store.
func (s *Store) Missing(ids []string) []string {
	var missing []string
	for _, id := range ids {
		if _, ok := s.byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// Untranslated returns IDs of blocks without text in lang.
func (s *Store) Untranslated(lang Language) []string {
	var ids []string
	for _, b := range s.blocks {
		if strings.TrimSpace(b.Text[string(lang)]) == "" {
			ids = append(ids, b.ID)
		}
	}
	return ids
}
