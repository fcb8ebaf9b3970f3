package tds

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/eqgo/server/internal/emu"
	"github.com/eqgo/server/internal/item"
	"github.com/eqgo/server/internal/net/packet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	clothCap = &item.Data{ID: 1001, Name: "Cloth Cap", IDFile: "IT63", Slots: 4, Price: 300}
	ration   = &item.Data{ID: 13005, Name: "Iron Ration", IDFile: "IT62", Stackable: true, StackSize: 1000}
	backpack = &item.Data{ID: 17005, Name: "Backpack", IDFile: "IT64", ItemClass: item.ClassContainer, BagSlots: 8}
)

func decodeAt[T any](t *testing.T, rec []byte, off int) T {
	t.Helper()
	var v T
	n := binary.Size(&v)
	require.GreaterOrEqual(t, len(rec), off+n)
	require.NoError(t, binary.Read(bytes.NewReader(rec[off:off+n]), binary.LittleEndian, &v))
	return v
}

func serialize(t *testing.T, inst *item.Instance, slot uint32, purpose emu.ItemPacketType) []byte {
	t.Helper()
	rec, err := SerializeItem(inst, slot, purpose)
	require.NoError(t, err)
	return rec
}

// bodyOffset is where itemBody starts in a record without evolving data
// or ornament names.
func bodyOffset(d *item.Data) int {
	return sizeOf[itemHeader]() + 2 + sizeOf[itemHeaderFinish]() +
		len(d.Name) + 1 + len(d.Lore) + 1 + len(d.IDFile) + 1 + 1
}

func TestSerialize_Deterministic(t *testing.T) {
	inst := item.NewInstance(clothCap, 0)
	a := serialize(t, inst, emu.SlotHead, emu.ItemPacketCharInventory)
	b := serialize(t, inst, emu.SlotHead, emu.ItemPacketCharInventory)
	assert.Equal(t, a, b)
}

func TestSerialize_Header(t *testing.T) {
	inst := item.NewInstance(clothCap, 0)
	inst.Price = 77
	inst.Attuned = true
	rec := serialize(t, inst, emu.SlotCursor, emu.ItemPacketCharInventory)

	h := decodeAt[itemHeader](t, rec, 0)
	assert.Equal(t, "0000000000001001", string(h.ItemID[:16]))
	assert.Zero(t, h.ItemID[16])
	assert.Equal(t, uint8(TypePossessions), h.SlotType)
	assert.Equal(t, uint16(SlotCursor), h.MainSlot)
	assert.Equal(t, uint16(0xffff), h.SubSlot)
	assert.Equal(t, uint32(77), h.Price)
	assert.Equal(t, uint32(1), h.MerchantSlot)
	assert.Equal(t, uint32(inst.SerialNumber), h.InstanceID)
	assert.Equal(t, uint32(1), h.InstNoDrop)
	assert.Equal(t, uint32(1), h.StackSize)
	assert.Zero(t, h.IsEvolving)

	fin := decodeAt[itemHeaderFinish](t, rec, sizeOf[itemHeader]()+2)
	assert.Equal(t, int32(-1), fin.Unknowna1)
	assert.Equal(t, int32(-1), fin.Unknowna4)
	assert.Equal(t, clothCap.ItemClass, fin.ItemClass)
}

func TestSerialize_Charges(t *testing.T) {
	tests := []struct {
		name        string
		data        *item.Data
		charges     int32
		wantStack   uint32
		wantCharges uint32
	}{
		{"unlimited above 254", clothCap, 300, 1, chargesUnlimited},
		{"254 kept", clothCap, 254, 1, 254},
		{"stack count", ration, 20, 20, 0},
		{"stack never clamped", ration, 500, 500, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serialize(t, item.NewInstance(tt.data, tt.charges), emu.GeneralBegin, emu.ItemPacketCharInventory)
			h := decodeAt[itemHeader](t, rec, 0)
			assert.Equal(t, tt.wantStack, h.StackSize)
			assert.Equal(t, tt.wantCharges, h.Charges)
		})
	}
}

func TestSerialize_LootContext(t *testing.T) {
	rec := serialize(t, item.NewInstance(clothCap, 0), emu.CorpseBegin, emu.ItemPacketLoot)
	h := decodeAt[itemHeader](t, rec, 0)
	assert.Equal(t, uint8(TypeCorpse), h.SlotType)
	assert.Equal(t, uint16(1), h.MainSlot)
}

func TestSerialize_MerchantOverride(t *testing.T) {
	inst := item.NewInstance(clothCap, 0)
	inst.MerchantSlot = 5
	inst.MerchantCount = 20
	rec := serialize(t, inst, 5, emu.ItemPacketMerchant)

	h := decodeAt[itemHeader](t, rec, 0)
	assert.Equal(t, uint8(TypeMerchant), h.SlotType)
	assert.Equal(t, uint16(5), h.MainSlot)
	assert.Equal(t, uint16(0xffff), h.SubSlot)
	assert.Equal(t, uint16(0xffff), h.AugSlot)
	assert.Equal(t, uint32(20), h.MerchantSlot)
	assert.Equal(t, uint32(5), h.InstanceID)
}

func TestSerialize_LevelClamp(t *testing.T) {
	d := *clothCap
	d.ReqLevel = 255
	d.RecLevel = 65
	rec := serialize(t, item.NewInstance(&d, 0), emu.SlotHead, emu.ItemPacketCharInventory)

	body := decodeAt[itemBody](t, rec, bodyOffset(&d))
	assert.Equal(t, d.ID, body.ID)
	assert.Equal(t, uint32(maxClientLevel), body.ReqLevel)
	assert.Equal(t, uint32(65), body.RecLevel)
	assert.Equal(t, uint32(0xffffffff), body.SkillModMax)
}

func TestSerialize_Evolving(t *testing.T) {
	plain := serialize(t, item.NewInstance(clothCap, 0), emu.SlotHead, emu.ItemPacketCharInventory)

	d := *clothCap
	d.EvolvingLevel = 3
	rec := serialize(t, item.NewInstance(&d, 0), emu.SlotHead, emu.ItemPacketCharInventory)

	assert.Len(t, rec, len(plain)+sizeOf[evolvingItem]())
	h := decodeAt[itemHeader](t, rec, 0)
	assert.Equal(t, uint8(1), h.IsEvolving)
	evo := decodeAt[evolvingItem](t, rec, sizeOf[itemHeader]())
	assert.Equal(t, int32(3), evo.EvoLevel)
	assert.Equal(t, int32(evolveMaxLevel), evo.EvoMaxLevel)
}

func TestSerialize_Ornament(t *testing.T) {
	inst := item.NewInstance(clothCap, 0)
	inst.OrnamentationIDFile = 5
	inst.OrnamentationIcon = 9
	inst.OrnamentHeroModel = 12
	rec := serialize(t, inst, emu.SlotHead, emu.ItemPacketCharInventory)

	off := sizeOf[itemHeader]()
	assert.Equal(t, []byte("IT5\x00IT5\x00"), rec[off:off+8])
	fin := decodeAt[itemHeaderFinish](t, rec, off+8)
	assert.Equal(t, uint32(9), fin.OrnamentIcon)
	assert.Equal(t, uint32(1200), fin.OrnamentHeroModel)
}

func TestSerialize_SubItems(t *testing.T) {
	bag := item.NewInstance(backpack, 0)
	food := item.NewInstance(ration, 12)
	capInst := item.NewInstance(clothCap, 0)
	require.NoError(t, bag.Put(0, food))
	require.NoError(t, bag.Put(3, capInst))

	rec := serialize(t, bag, emu.GeneralBegin, emu.ItemPacketCharInventory)
	foodRec := serialize(t, food, emu.BagSlot(emu.GeneralBegin, 0), emu.ItemPacketCharInventory)
	capRec := serialize(t, capInst, emu.BagSlot(emu.GeneralBegin, 3), emu.ItemPacketCharInventory)

	parentLen := len(rec) - (4 + len(foodRec)) - (4 + len(capRec))
	require.Positive(t, parentLen)

	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(rec[parentLen-4:]), "sub-item count")
	off := parentLen
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(rec[off:]))
	off += 4
	assert.Equal(t, foodRec, rec[off:off+len(foodRec)])
	off += len(foodRec)
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(rec[off:]))
	off += 4
	assert.Equal(t, capRec, rec[off:])

	h := decodeAt[itemHeader](t, capRec, 0)
	assert.Equal(t, uint16(SlotGeneral1), h.MainSlot)
	assert.Equal(t, uint16(3), h.SubSlot)
}

func TestSerialize_SubItemsOutsideInventory(t *testing.T) {
	tests := []struct {
		name    string
		purpose emu.ItemPacketType
		merch   uint32
	}{
		{"loot window", emu.ItemPacketLoot, 0},
		{"merchant window", emu.ItemPacketMerchant, 23},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := item.NewInstance(backpack, 0)
			bag.MerchantSlot = tt.merch
			capInst := item.NewInstance(clothCap, 0)
			require.NoError(t, bag.Put(5, capInst))

			rec := serialize(t, bag, emu.CorpseBegin, tt.purpose)
			capRec := serialize(t, capInst, emu.BagSlot(emu.CorpseBegin, 5), emu.ItemPacketCharInventory)
			require.Greater(t, len(rec), len(capRec))
			assert.Equal(t, capRec, rec[len(rec)-len(capRec):])

			h := decodeAt[itemHeader](t, rec, len(rec)-len(capRec))
			assert.Equal(t, uint8(TypePossessions), h.SlotType)
			assert.Equal(t, uint16(SlotGeneral1), h.MainSlot)
			assert.Equal(t, uint16(5), h.SubSlot)
			assert.Equal(t, uint16(0xffff), h.AugSlot)
		})
	}
}

func TestSerialize_EmptyBagCount(t *testing.T) {
	rec := serialize(t, item.NewInstance(backpack, 0), emu.GeneralBegin, emu.ItemPacketCharInventory)
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(rec[len(rec)-4:]))
}

func TestSerialize_Errors(t *testing.T) {
	_, err := SerializeItem(nil, 0, emu.ItemPacketCharInventory)
	assert.ErrorIs(t, err, ErrNilItem)
	_, err = SerializeItem(&item.Instance{}, 0, emu.ItemPacketCharInventory)
	assert.ErrorIs(t, err, ErrNilItem)
}

func TestSerialize_FailedSubItemWritesNothing(t *testing.T) {
	bag := item.NewInstance(backpack, 0)
	require.NoError(t, bag.Put(0, item.NewInstance(ration, 1)))
	bag.Contents[2] = &item.Instance{}

	w := packet.NewWriter()
	w.WriteDU(42)
	err := Serialize(w, bag, emu.GeneralBegin, 0, emu.ItemPacketCharInventory)
	assert.ErrorIs(t, err, ErrNilItem)
	assert.Equal(t, 4, w.Len())
}

func nested(levels int) *item.Instance {
	root := item.NewInstance(backpack, 0)
	cur := root
	for i := 0; i < levels-1; i++ {
		next := item.NewInstance(backpack, 0)
		cur.Contents[0] = next
		cur = next
	}
	return root
}

func TestSerialize_Depth(t *testing.T) {
	_, err := SerializeItem(nested(MaxItemDepth+1), emu.GeneralBegin, emu.ItemPacketCharInventory)
	assert.NoError(t, err)

	_, err = SerializeItem(nested(MaxItemDepth+2), emu.GeneralBegin, emu.ItemPacketCharInventory)
	assert.ErrorIs(t, err, ErrItemTooDeep)
}
