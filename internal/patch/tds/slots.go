package tds

import "github.com/eqgo/server/internal/emu"

// ItemSlot is the client's structured inventory coordinate.
type ItemSlot struct {
	Type      int16
	Unknown02 int16
	Main      int16
	Sub       int16
	Aug       int16
	Unknown01 int16
}

// MainInvSlot is the typeless coordinate some packets use for the
// character's own possessions.
type MainInvSlot struct {
	Main      int16
	Sub       int16
	Aug       int16
	Unknown01 int16
}

var (
	InvalidItemSlot    = ItemSlot{invalid, invalid, invalid, invalid, invalid, invalid}
	InvalidMainInvSlot = MainInvSlot{invalid, invalid, invalid, invalid}
)

func (s ItemSlot) Valid() bool    { return s != InvalidItemSlot }
func (s MainInvSlot) Valid() bool { return s != InvalidMainInvSlot }

// SlotContext selects which client window a server slot number refers to.
// The corpse and merchant windows reuse low server numbers.
type SlotContext int

const (
	ContextInventory SlotContext = iota
	ContextLoot
	ContextMerchant
)

func (c SlotContext) String() string {
	switch c {
	case ContextLoot:
		return "loot"
	case ContextMerchant:
		return "merchant"
	default:
		return "inventory"
	}
}

// ContextFor returns the slot context an item packet purpose implies.
func ContextFor(t emu.ItemPacketType) SlotContext {
	switch t {
	case emu.ItemPacketLoot:
		return ContextLoot
	case emu.ItemPacketMerchant:
		return ContextMerchant
	}
	return ContextInventory
}

func itemSlot(typ, main, sub int16) ItemSlot {
	return ItemSlot{Type: typ, Main: main, Sub: sub, Aug: invalid}
}

// ToClientSlot converts a server slot into a client coordinate. Slots with
// no client analogue come back as InvalidItemSlot.
func ToClientSlot(serverSlot uint32, ctx SlotContext) ItemSlot {
	switch ctx {
	case ContextLoot:
		if serverSlot < emu.CorpseBegin || serverSlot > emu.CorpseEnd {
			return InvalidItemSlot
		}
		return itemSlot(TypeCorpse, int16(serverSlot-emu.CorpseBegin)+CorpseMainBegin, invalid)
	case ContextMerchant:
		if serverSlot > emu.MerchantEnd {
			return InvalidItemSlot
		}
		return itemSlot(TypeMerchant, int16(serverSlot), invalid)
	}

	if m := ToClientMainInvSlot(serverSlot); m.Valid() {
		return ItemSlot{Type: TypePossessions, Main: m.Main, Sub: m.Sub, Aug: m.Aug}
	}

	s := serverSlot
	switch {
	case s >= emu.TributeBegin && s <= emu.TributeEnd:
		return itemSlot(TypeTribute, int16(s-emu.TributeBegin), invalid)
	case s >= emu.BankBegin && s <= emu.BankEnd:
		return itemSlot(TypeBank, int16(s-emu.BankBegin), invalid)
	case s >= emu.BankBagsBegin && s <= emu.BankBagsEnd:
		main, sub := bagCoords(s, emu.BankBegin)
		return itemSlot(TypeBank, main, sub)
	case s >= emu.SharedBankBegin && s <= emu.SharedBankEnd:
		return itemSlot(TypeSharedBank, int16(s-emu.SharedBankBegin), invalid)
	case s >= emu.SharedBankBagsBegin && s <= emu.SharedBankBagsEnd:
		main, sub := bagCoords(s, emu.SharedBankBegin)
		return itemSlot(TypeSharedBank, main, sub)
	case s >= emu.TradeBegin && s <= emu.TradeEnd:
		return itemSlot(TypeTrade, int16(s-emu.TradeBegin), invalid)
	case s >= emu.TradeBagsBegin && s <= emu.TradeBagsEnd:
		main, sub := bagCoords(s, emu.TradeBegin)
		return itemSlot(TypeTrade, main, sub)
	case s >= emu.WorldBegin && s <= emu.WorldEnd:
		return itemSlot(TypeWorld, int16(s-emu.WorldBegin), invalid)
	}
	// Guild tribute and anything unmapped.
	return InvalidItemSlot
}

// ToServerSlot converts a client coordinate back into a server slot,
// returning emu.InvalidSlot for anything the server cannot address.
// Server slots carry no augment socket, so a coordinate naming one is
// rejected. Unknown01 and Unknown02 are ignored.
func ToServerSlot(c ItemSlot, ctx SlotContext) uint32 {
	if c.Aug != invalid {
		return emu.InvalidSlot
	}
	switch ctx {
	case ContextLoot:
		if c.Type != TypeCorpse || c.Sub != invalid {
			return emu.InvalidSlot
		}
		return ToServerCorpseSlot(uint32(uint16(c.Main)))
	case ContextMerchant:
		if c.Type != TypeMerchant || c.Sub != invalid || c.Main < 0 || int(c.Main) > emu.MerchantEnd {
			return emu.InvalidSlot
		}
		return uint32(c.Main)
	}

	switch c.Type {
	case TypePossessions:
		return ToServerMainInvSlot(MainInvSlot{Main: c.Main, Sub: c.Sub, Aug: c.Aug})
	case TypeBank:
		return containerToServer(c, emu.BankBegin, BankCount)
	case TypeSharedBank:
		return containerToServer(c, emu.SharedBankBegin, SharedBankCount)
	case TypeTrade:
		return containerToServer(c, emu.TradeBegin, TradeCount)
	case TypeWorld:
		if c.Sub != invalid || c.Main < 0 || c.Main >= WorldCount {
			return emu.InvalidSlot
		}
		return emu.WorldBegin + uint32(c.Main)
	case TypeTribute:
		if c.Sub != invalid || c.Main < 0 || c.Main >= TributeCount {
			return emu.InvalidSlot
		}
		return emu.TributeBegin + uint32(c.Main)
	}
	// Guild tribute, limbo, corpse outside a loot window and the rest.
	return emu.InvalidSlot
}

// ToClientMainInvSlot converts a possessions or possessions-bag server slot.
func ToClientMainInvSlot(serverSlot uint32) MainInvSlot {
	s := serverSlot
	switch {
	case s <= emu.PossessionsEnd:
		return MainInvSlot{Main: clientMain(s), Sub: invalid, Aug: invalid}
	case s >= emu.GeneralBagsBegin && s <= emu.CursorBagEnd:
		main, sub := bagCoords(s, 0)
		return MainInvSlot{Main: clientMain(uint32(main)), Sub: sub, Aug: invalid}
	}
	return InvalidMainInvSlot
}

// ToServerMainInvSlot converts a typeless possessions coordinate. As with
// ToServerSlot, a coordinate naming an augment socket is rejected.
func ToServerMainInvSlot(c MainInvSlot) uint32 {
	if c.Aug != invalid {
		return emu.InvalidSlot
	}
	var parent uint32
	switch {
	case c.Main >= 0 && c.Main <= SlotGeneral10:
		parent = uint32(c.Main)
	case c.Main == SlotCursor:
		parent = emu.SlotCursor
	default:
		// Includes the client-only general 11/12 and cursor buffer slots.
		return emu.InvalidSlot
	}
	if c.Sub == invalid {
		return parent
	}
	if c.Sub < 0 || c.Sub >= BagSlotCount || parent < emu.GeneralBegin {
		return emu.InvalidSlot
	}
	return emu.BagSlot(parent, int(c.Sub))
}

// ToClientCorpseSlot converts the bare corpse slot carried by loot packets.
func ToClientCorpseSlot(serverSlot uint32) uint32 {
	if serverSlot < emu.CorpseBegin || serverSlot > emu.CorpseEnd {
		return emu.InvalidSlot
	}
	return serverSlot - emu.CorpseBegin + CorpseMainBegin
}

// ToServerCorpseSlot is the inverse of ToClientCorpseSlot.
func ToServerCorpseSlot(clientSlot uint32) uint32 {
	last := uint32(emu.CorpseEnd-emu.CorpseBegin) + CorpseMainBegin
	if clientSlot < CorpseMainBegin || clientSlot > last {
		return emu.InvalidSlot
	}
	return clientSlot - CorpseMainBegin + emu.CorpseBegin
}

func clientMain(serverMain uint32) int16 {
	if serverMain == emu.SlotCursor {
		return SlotCursor
	}
	return int16(serverMain)
}

// bagCoords splits a bag-content slot into its parent's index within the
// region and the sub-slot. base is the region's first plain slot.
func bagCoords(s, base uint32) (main, sub int16) {
	rel := int(s-base) - 1
	m := rel/emu.BagSlotCount - 3
	return int16(m), int16(rel - (m+3)*emu.BagSlotCount)
}

func containerToServer(c ItemSlot, begin uint32, count int16) uint32 {
	if c.Main < 0 || c.Main >= count {
		return emu.InvalidSlot
	}
	parent := begin + uint32(c.Main)
	if c.Sub == invalid {
		return parent
	}
	if c.Sub < 0 || c.Sub >= BagSlotCount {
		return emu.InvalidSlot
	}
	return emu.BagSlot(parent, int(c.Sub))
}
