package content

// Bullet is a rendered content block.
type Bullet struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Language Language `json:"language"`
	// Fallback is set when the text is English because no translation exists.
	Fallback bool `json:"fallback,omitempty"`
}

type Bullets struct {
	Items []*Bullet
}

func (b *Bullets) Len() int {
	return len(b.Items)
}

func (b *Bullets) IDs() []string {
	ids := make([]string, 0, len(b.Items))
	for _, item := range b.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

func (b *Bullets) Texts() []string {
	texts := make([]string, 0, len(b.Items))
	for _, item := range b.Items {
		texts = append(texts, item.Text)
	}
	return texts
}

// Exclude drops bullets whose ID is in targets, keeping the order of the
// rest, and returns the dropped IDs.
func (b *Bullets) Exclude(targets []string) []string {
	if len(targets) == 0 {
		return nil
	}

	drop := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		drop[t] = struct{}{}
	}

	var excluded []string
	kept := b.Items[:0]
	for _, item := range b.Items {
		if _, ok := drop[item.ID]; ok {
			excluded = append(excluded, item.ID)
			continue
		}
		kept = append(kept, item)
	}
	b.Items = kept

	return excluded
}

// Limit keeps the first n bullets and returns the IDs cut off.
// A non-positive n keeps everything.
func (b *Bullets) Limit(n int) []string {
	if n <= 0 || len(b.Items) <= n {
		return nil
	}

	var cut []string
	for _, item := range b.Items[n:] {
		cut = append(cut, item.ID)
	}
	b.Items = b.Items[:n]

	return cut
}
