package data

import (
	"fmt"
	"os"

	"github.com/eqgo/server/internal/emu"
	"github.com/eqgo/server/internal/item"
	"gopkg.in/yaml.v3"
)

// instanceEntry describes one item instance in an inventory fixture.
type instanceEntry struct {
	Slot          uint32          `yaml:"slot"`
	Index         int             `yaml:"index"` // position inside the parent container
	Item          uint32          `yaml:"item"`
	Charges       int32           `yaml:"charges"`
	Price         uint32          `yaml:"price"`
	MerchantSlot  uint32          `yaml:"merchant_slot"`
	MerchantCount int32           `yaml:"merchant_count"`
	Attuned       bool            `yaml:"attuned"`
	Contents      []instanceEntry `yaml:"contents"`
}

type inventoryFile struct {
	Inventory []instanceEntry `yaml:"inventory"`
}

// LoadInventory reads an inventory fixture and instantiates every entry
// against the templates in t.
func LoadInventory(path string, t *ItemTable) ([]emu.InventoryEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}
	var f inventoryFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse inventory: %w", err)
	}

	entries := make([]emu.InventoryEntry, 0, len(f.Inventory))
	for i := range f.Inventory {
		e := &f.Inventory[i]
		inst, err := t.instantiate(e)
		if err != nil {
			return nil, fmt.Errorf("inventory slot %d: %w", e.Slot, err)
		}
		entries = append(entries, emu.InventoryEntry{Slot: e.Slot, Item: inst})
	}
	return entries, nil
}

func (t *ItemTable) instantiate(e *instanceEntry) (*item.Instance, error) {
	d := t.Get(e.Item)
	if d == nil {
		return nil, fmt.Errorf("unknown item %d", e.Item)
	}
	inst := item.NewInstance(d, e.Charges)
	inst.Price = e.Price
	inst.MerchantSlot = e.MerchantSlot
	inst.MerchantCount = e.MerchantCount
	inst.Attuned = e.Attuned

	for i := range e.Contents {
		c := &e.Contents[i]
		sub, err := t.instantiate(c)
		if err != nil {
			return nil, err
		}
		if err := inst.Put(c.Index, sub); err != nil {
			return nil, err
		}
	}
	return inst, nil
}
