package persist

import (
	"path/filepath"
	"testing"

	"github.com/eqgo/server/internal/data"
	"github.com/eqgo/server/internal/item"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullTemplate() *item.Data {
	return &item.Data{
		ID: 32601, Name: "Runed Bracer", Lore: "*Runed Bracer", IDFile: "IT10747",
		Filename: "rb", ItemClass: item.ClassCommon,
		Weight: 12, NoRent: 1, Attuneable: 1, Size: 2,
		Slots: 1 << 9, Price: 12000, Icon: 678, BenefitFlag: 3, Tradeskills: true,
		CR: 5, DR: -3, PR: 7, MR: 9, FR: 11, SVCorruption: 2,
		AStr: 4, ASta: 5, AAgi: 6, ADex: 7, ACha: -1, AInt: 8, AWis: 9,
		HP: 45, Mana: 30, Endur: 25, AC: 12, Regen: 1, ManaRegen: 2, EnduranceRegen: 3,
		Classes: 0xffff, Races: 0x3fff, Deity: 0x1,
		Magic: true, ReqLevel: 40, RecLevel: 50, Light: -2,
		Color: 0xff336699, Material: 7, EliteMaterial: 3, HerosForgeModel: 11,
		SellRate: 1.25, Shielding: 2, Avoidance: 5, Accuracy: 6,
		Factions: [4]item.FactionMod{{Mod: 262, Amt: 5}, {Mod: 281, Amt: -10}},
		AugType:  8,

		AugSlotType:    [6]uint8{7, 7, 0, 0, 0, 21},
		AugSlotVisible: [6]uint8{1, 1, 0, 0, 0, 1},

		BagWR: 4, LoreGroup: -1, ArtifactFlag: true, Favor: 15, Attack: 10, Haste: 22,
		PotionBeltSlots: 2, ExpendableArrow: 1,

		Click:      item.Effect{Effect: 2345, Level2: 50, Type: 1, Level: 45, Name: "Runic Ward"},
		MaxCharges: 3, CastTime: 3000, RecastDelay: 60, RecastType: 9,
		Proc:       item.Effect{Effect: 112, Level: 40, Name: "Flame Lick"},
		ProcRate:   15,
		Worn:       item.Effect{Effect: 998, Type: 2, Name: "Haste"},
		Focus:      item.Effect{Effect: 2011, Type: 6, Name: "Affliction Haste"},
		Scroll:     item.Effect{Effect: 300, Type: 7},
		Bard:       item.Effect{Effect: 5, Type: 8, Level: 20},

		Purity:    90,
		HeroicStr: 3, HeroicInt: 4, HeroicWis: 5, HeroicAgi: 6, HeroicDex: 7,
		HeroicSta: 8, HeroicCha: 9, HeroicMR: 10, HeroicFR: 11, HeroicCR: 12,
		HeroicDR: 13, HeroicPR: 14, HeroicSVCorrup: 15,
		HealAmt: 20, SpellDmg: 25, Clairvoyance: 2,

		EvolvingLevel: 2,
	}
}

func TestTemplateRow_RoundTrip(t *testing.T) {
	tbl, err := data.LoadItemTable(filepath.Join("..", "..", "data", "yaml", "items.yaml"))
	require.NoError(t, err)

	tests := []struct {
		name string
		d    *item.Data
	}{
		{"every field set", fullTemplate()},
		{"zero template", &item.Data{ID: 1, Name: "Blank"}},
	}
	for _, d := range tbl.All() {
		tests = append(tests, struct {
			name string
			d    *item.Data
		}{d.Name, d})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := newTemplateRow(tt.d)
			require.NoError(t, err)
			assert.Len(t, row.args(), len(row.dest()))
			assert.Equal(t, int32(tt.d.ID), row.ID)
			assert.Equal(t, tt.d.Name, row.Name)

			got, err := row.data()
			require.NoError(t, err)
			assert.Equal(t, tt.d, got)
		})
	}
}

func TestTemplateRow_FlatColumnsOnly(t *testing.T) {
	full := fullTemplate()
	row, err := newTemplateRow(full)
	require.NoError(t, err)

	for _, def := range [][]byte{nil, []byte("{}"), []byte(" {} ")} {
		row.Definition = def
		got, err := row.data()
		require.NoError(t, err)
		assert.Equal(t, full.ID, got.ID)
		assert.Equal(t, full.Name, got.Name)
		assert.Equal(t, full.Click.Effect, got.Click.Effect)
		assert.Equal(t, full.EvolvingLevel, got.EvolvingLevel)
		assert.Empty(t, got.Click.Name, "names live only in the definition")
		assert.Zero(t, got.HeroicStr)
	}
}

func TestTemplateRow_BadDefinition(t *testing.T) {
	tests := []struct {
		name    string
		def     string
		wantErr string
	}{
		{"not json", "{", "decode item template 7"},
		{"id mismatch", `{"ID": 8, "Name": "Other"}`, "definition has id 8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := templateRow{ID: 7, Name: "Dagger", Definition: []byte(tt.def)}
			_, err := row.data()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestTemplateColumns_MatchRow(t *testing.T) {
	var row templateRow
	n := 1
	for _, c := range templateColumns {
		if c == ',' {
			n++
		}
	}
	assert.Equal(t, len(row.dest()), n)
}
