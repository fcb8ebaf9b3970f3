package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eqgo/server/internal/emu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var yamlDir = filepath.Join("..", "..", "data", "yaml")

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadItemTable_Shipped(t *testing.T) {
	tbl, err := LoadItemTable(filepath.Join(yamlDir, "items.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 5, tbl.Count())

	ration := tbl.Get(13005)
	require.NotNil(t, ration)
	assert.Equal(t, "Iron Ration", ration.Name)
	assert.True(t, ration.Stackable)
	assert.True(t, tbl.Get(17005).IsContainer())
	assert.Nil(t, tbl.Get(1))

	all := tbl.All()
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
}

func TestLoadItemTable_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"missing id", "items:\n  - name: Nameless\n", "has no id"},
		{"bad yaml", "items: [\n", "parse items"},
		{"nul in name", "items:\n  - id: 7\n    name: \"Rusty\\0Dagger\"\n", "item 7: name contains NUL"},
		{"nul in lore", "items:\n  - id: 8\n    name: Dagger\n    lore: \"a\\x00b\"\n", "item 8: lore contains NUL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadItemTable(writeFile(t, tt.body))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	_, err := LoadItemTable(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInventory_Shipped(t *testing.T) {
	tbl, err := LoadItemTable(filepath.Join(yamlDir, "items.yaml"))
	require.NoError(t, err)
	entries, err := LoadInventory(filepath.Join(yamlDir, "inventory.yaml"), tbl)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	var bag *emu.InventoryEntry
	for i := range entries {
		if entries[i].Slot == 23 {
			bag = &entries[i]
		}
	}
	require.NotNil(t, bag)
	assert.Equal(t, uint32(17005), bag.Item.Item.ID)
	assert.Equal(t, 2, bag.Item.Count())
	require.NotNil(t, bag.Item.Get(0))
	assert.Equal(t, int32(20), bag.Item.Get(0).Charges)
	require.NotNil(t, bag.Item.Get(3))
	assert.Equal(t, uint32(10032), bag.Item.Get(3).Item.ID)
}

func TestLoadInventory_Errors(t *testing.T) {
	tbl, err := LoadItemTable(filepath.Join(yamlDir, "items.yaml"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"unknown item", "inventory:\n  - slot: 2\n    item: 99999\n", "unknown item 99999"},
		{"unknown nested item", "inventory:\n  - slot: 23\n    item: 17005\n    contents:\n      - index: 1\n        item: 4\n", "unknown item 4"},
		{"index out of range", "inventory:\n  - slot: 23\n    item: 17005\n    contents:\n      - index: 10\n        item: 13005\n", "out of range"},
		{"bad yaml", "inventory: {\n", "parse inventory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadInventory(writeFile(t, tt.body), tbl)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNewItemTable_LaterWins(t *testing.T) {
	tbl, err := LoadItemTable(writeFile(t, "items:\n  - id: 7\n    name: First\n  - id: 7\n    name: Second\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Count())
	assert.Equal(t, "Second", tbl.Get(7).Name)
}
