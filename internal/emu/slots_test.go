package emu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBagSlot(t *testing.T) {
	tests := []struct {
		name   string
		parent uint32
		sub    int
		want   uint32
	}{
		{"first general bag", GeneralBegin, 0, GeneralBagsBegin},
		{"last general bag", GeneralEnd, 9, GeneralBagsEnd},
		{"cursor bag", SlotCursor, 0, CursorBagBegin},
		{"cursor bag end", SlotCursor, 9, CursorBagEnd},
		{"first bank bag", BankBegin, 0, BankBagsBegin},
		{"last bank bag", BankEnd, 9, BankBagsEnd},
		{"shared bank", SharedBankEnd, 9, SharedBankBagsEnd},
		{"trade", TradeBegin, 0, TradeBagsBegin},
		{"worn slot has no contents", SlotHead, 3, SlotHead},
		{"world container keeps parent", WorldBegin, 2, WorldBegin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BagSlot(tt.parent, tt.sub))
		})
	}
}

func TestRegionsAreOrderedAndDisjoint(t *testing.T) {
	for i := 1; i < len(Regions); i++ {
		prev, cur := Regions[i-1], Regions[i]
		assert.LessOrEqual(t, prev.Begin, prev.End, prev.Name)
		assert.Greater(t, cur.Begin, prev.End, "%s overlaps %s", cur.Name, prev.Name)
	}
}

func TestRegionOf(t *testing.T) {
	r, ok := RegionOf(262)
	assert.True(t, ok)
	assert.Equal(t, "general_bags", r.Name)

	r, ok = RegionOf(SlotCursor)
	assert.True(t, ok)
	assert.Equal(t, "cursor", r.Name)

	_, ok = RegionOf(SlotTradeskill)
	assert.False(t, ok)
	_, ok = RegionOf(InvalidSlot)
	assert.False(t, ok)
}

func TestMaterialFromSlot(t *testing.T) {
	assert.Equal(t, MaterialHead, MaterialFromSlot(SlotHead))
	assert.Equal(t, MaterialWrist, MaterialFromSlot(SlotWrist2))
	assert.Equal(t, MaterialSecondary, MaterialFromSlot(SlotSecondary))
	assert.Equal(t, MaterialInvalid, MaterialFromSlot(SlotEar1))
	assert.Equal(t, MaterialInvalid, MaterialFromSlot(GeneralBegin))
}
