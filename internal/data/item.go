package data

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/eqgo/server/internal/item"
	"gopkg.in/yaml.v3"
)

// ItemTable holds all item templates indexed by ID.
type ItemTable struct {
	items map[uint32]*item.Data
}

// NewItemTable builds a table from already loaded templates. Later entries
// replace earlier ones with the same ID.
func NewItemTable(templates []*item.Data) *ItemTable {
	t := &ItemTable{items: make(map[uint32]*item.Data, len(templates))}
	for _, d := range templates {
		t.items[d.ID] = d
	}
	return t
}

// Get returns a template by ID, or nil if not found.
func (t *ItemTable) Get(id uint32) *item.Data {
	return t.items[id]
}

// Count returns total loaded templates.
func (t *ItemTable) Count() int {
	return len(t.items)
}

// All returns every template ordered by ID.
func (t *ItemTable) All() []*item.Data {
	out := make([]*item.Data, 0, len(t.items))
	for _, d := range t.items {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type itemListFile struct {
	Items []item.Data `yaml:"items"`
}

// LoadItemTable loads item templates from a YAML file.
func LoadItemTable(path string) (*ItemTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	var f itemListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}
	templates := make([]*item.Data, 0, len(f.Items))
	for i := range f.Items {
		d := &f.Items[i]
		if d.ID == 0 {
			return nil, fmt.Errorf("parse items: entry %d has no id", i)
		}
		if field, ok := nulField(d); ok {
			return nil, fmt.Errorf("parse items: item %d: %s contains NUL", d.ID, field)
		}
		templates = append(templates, d)
	}
	return NewItemTable(templates), nil
}

// nulField reports the first client-visible string field holding a NUL.
func nulField(d *item.Data) (string, bool) {
	for _, f := range []struct{ name, v string }{
		{"name", d.Name},
		{"lore", d.Lore},
		{"idfile", d.IDFile},
		{"charm_file", d.CharmFile},
		{"filename", d.Filename},
		{"click name", d.Click.Name},
		{"proc name", d.Proc.Name},
		{"worn name", d.Worn.Name},
		{"focus name", d.Focus.Name},
		{"scroll name", d.Scroll.Name},
	} {
		if strings.ContainsRune(f.v, 0) {
			return f.name, true
		}
	}
	return "", false
}
