package emu

// Server inventory slot space. Every patch translates against these values,
// so any change here is a protocol version bump for all of them.
const (
	InvalidSlot uint32 = 0xFFFFFFFF

	SlotCharm       = 0
	SlotEar1        = 1
	SlotHead        = 2
	SlotFace        = 3
	SlotEar2        = 4
	SlotNeck        = 5
	SlotShoulders   = 6
	SlotArms        = 7
	SlotBack        = 8
	SlotWrist1      = 9
	SlotWrist2      = 10
	SlotRange       = 11
	SlotHands       = 12
	SlotPrimary     = 13
	SlotSecondary   = 14
	SlotFinger1     = 15
	SlotFinger2     = 16
	SlotChest       = 17
	SlotLegs        = 18
	SlotFeet        = 19
	SlotWaist       = 20
	SlotPowerSource = 21
	SlotAmmo        = 22
	SlotCursor      = 33

	WornBegin = 0
	WornEnd   = 20

	GeneralBegin = 23
	GeneralEnd   = 32
	GeneralCount = GeneralEnd - GeneralBegin + 1

	PossessionsBegin = 0
	PossessionsEnd   = SlotCursor

	// BagSlotCount is the container stride: every bag exposes this many sub-slots.
	BagSlotCount = 10

	GeneralBagsBegin = (GeneralBegin+3)*BagSlotCount + 1
	GeneralBagsEnd   = (GeneralEnd+3)*BagSlotCount + BagSlotCount
	CursorBagBegin   = (SlotCursor+3)*BagSlotCount + 1
	CursorBagEnd     = CursorBagBegin + BagSlotCount - 1

	TributeBegin = 400
	TributeEnd   = 404

	GuildTributeBegin = 450
	GuildTributeEnd   = 451

	SlotTradeskill = 1000

	BankBegin     = 2000
	BankEnd       = 2023
	BankCount     = BankEnd - BankBegin + 1
	BankBagsBegin = BankBegin + 3*BagSlotCount + 1
	BankBagsEnd   = BankBegin + (BankCount+2)*BagSlotCount + BagSlotCount

	SharedBankBegin     = 2500
	SharedBankEnd       = 2501
	SharedBankCount     = SharedBankEnd - SharedBankBegin + 1
	SharedBankBagsBegin = SharedBankBegin + 3*BagSlotCount + 1
	SharedBankBagsEnd   = SharedBankBegin + (SharedBankCount+2)*BagSlotCount + BagSlotCount

	TradeBegin     = 3000
	TradeEnd       = 3007
	TradeCount     = TradeEnd - TradeBegin + 1
	TradeBagsBegin = TradeBegin + 3*BagSlotCount + 1
	TradeBagsEnd   = TradeBegin + (TradeCount+2)*BagSlotCount + BagSlotCount

	WorldBegin = 4000
	WorldEnd   = 4009

	// Corpse loot windows reuse the possessions numbers from the first
	// general slot onward; the packet context tells them apart.
	CorpseBegin = GeneralBegin
	CorpseEnd   = 56

	MerchantBegin = 0
	MerchantEnd   = 199
)

// Region names a contiguous range of the server slot space.
type Region struct {
	Name  string
	Begin uint32
	End   uint32
}

func (r Region) Contains(slot uint32) bool {
	return slot >= r.Begin && slot <= r.End
}

// Regions lists every region reachable in inventory context, in ascending order.
var Regions = []Region{
	{"worn", WornBegin, WornEnd},
	{"power_source", SlotPowerSource, SlotPowerSource},
	{"ammo", SlotAmmo, SlotAmmo},
	{"general", GeneralBegin, GeneralEnd},
	{"cursor", SlotCursor, SlotCursor},
	{"general_bags", GeneralBagsBegin, GeneralBagsEnd},
	{"cursor_bag", CursorBagBegin, CursorBagEnd},
	{"tribute", TributeBegin, TributeEnd},
	{"guild_tribute", GuildTributeBegin, GuildTributeEnd},
	{"bank", BankBegin, BankEnd},
	{"bank_bags", BankBagsBegin, BankBagsEnd},
	{"shared_bank", SharedBankBegin, SharedBankEnd},
	{"shared_bank_bags", SharedBankBagsBegin, SharedBankBagsEnd},
	{"trade", TradeBegin, TradeEnd},
	{"trade_bags", TradeBagsBegin, TradeBagsEnd},
	{"world", WorldBegin, WorldEnd},
}

// RegionOf returns the region holding slot, or false when none does.
func RegionOf(slot uint32) (Region, bool) {
	for _, r := range Regions {
		if r.Contains(slot) {
			return r, true
		}
	}
	return Region{}, false
}

// BagSlot returns the server slot of sub-slot sub inside the container at
// parent. Parents outside general, cursor, bank, shared bank and trade have
// no addressable contents and keep the parent slot.
func BagSlot(parent uint32, sub int) uint32 {
	switch {
	case parent >= GeneralBegin && parent <= SlotCursor:
		return (parent+3)*BagSlotCount + uint32(sub) + 1
	case parent >= BankBegin && parent <= BankEnd:
		return BankBegin + (parent-BankBegin+3)*BagSlotCount + uint32(sub) + 1
	case parent >= SharedBankBegin && parent <= SharedBankEnd:
		return SharedBankBegin + (parent-SharedBankBegin+3)*BagSlotCount + uint32(sub) + 1
	case parent >= TradeBegin && parent <= TradeEnd:
		return TradeBegin + (parent-TradeBegin+3)*BagSlotCount + uint32(sub) + 1
	}
	return parent
}

// Material slots used by equipment appearance.
const (
	MaterialInvalid   = -1
	MaterialHead      = 0
	MaterialChest     = 1
	MaterialArms      = 2
	MaterialWrist     = 3
	MaterialHands     = 4
	MaterialLegs      = 5
	MaterialFeet      = 6
	MaterialPrimary   = 7
	MaterialSecondary = 8
)

// MaterialFromSlot maps a worn slot to the appearance material slot it drives.
func MaterialFromSlot(slot uint32) int {
	switch slot {
	case SlotHead:
		return MaterialHead
	case SlotChest:
		return MaterialChest
	case SlotArms:
		return MaterialArms
	case SlotWrist1, SlotWrist2:
		return MaterialWrist
	case SlotHands:
		return MaterialHands
	case SlotLegs:
		return MaterialLegs
	case SlotFeet:
		return MaterialFeet
	case SlotPrimary:
		return MaterialPrimary
	case SlotSecondary:
		return MaterialSecondary
	}
	return MaterialInvalid
}
