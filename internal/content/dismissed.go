package content

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"
)

// DismissedBlocks is the on-disk list of bullets a user never wants to see.
type DismissedBlocks struct {
	Items []*DismissedBlock
}

type DismissedBlock struct {
	ID          string
	Reason      string `json:",omitempty"`
	DismissedAt time.Time
}

// LoadDismissed reads a dismissed blocks file. A missing or empty file is an
// empty list.
func LoadDismissed(path string) (*DismissedBlocks, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &DismissedBlocks{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &DismissedBlocks{}, nil
	}

	var dismissed DismissedBlocks
	if err := json.NewDecoder(file).Decode(&dismissed); err != nil {
		return nil, err
	}
	return &dismissed, nil
}

// Dismiss records ids unless they are already present.
func (d *DismissedBlocks) Dismiss(reason string, ids ...string) []string {
	known := make(map[string]struct{}, len(d.Items))
	for _, item := range d.Items {
		known[item.ID] = struct{}{}
	}

	var added []string
	now := time.Now().UTC()
	for _, id := range ids {
		if _, ok := known[id]; ok || id == "" {
			continue
		}
		known[id] = struct{}{}
		d.Items = append(d.Items, &DismissedBlock{ID: id, Reason: reason, DismissedAt: now})
		added = append(added, id)
	}
	return added
}

func (d *DismissedBlocks) IDs() []string {
	ids := make([]string, 0, len(d.Items))
	for _, item := range d.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// ToFile overwrites path with the list.
func (d *DismissedBlocks) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
