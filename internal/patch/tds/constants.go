package tds

// Name is the patch name used for the opcode file and in logs.
const Name = "TDS"

// Client inventory region types.
const (
	TypePossessions int16 = iota
	TypeBank
	TypeSharedBank
	TypeTrade
	TypeWorld
	TypeLimbo
	TypeTribute
	TypeTrophyTribute
	TypeGuildTribute
	TypeMerchant
	TypeDeleted
	TypeCorpse
	TypeBazaar
	TypeInspect
	TypeRealEstate
	TypeViewMODPC
	TypeViewMODBank
	TypeViewMODSharedBank
	TypeViewMODLimbo
	TypeAltStorage
	TypeArchived
	TypeMail
	TypeGuildTrophyTribute
	TypeKrono
	TypeOther
)

// Client possessions layout. The client keeps two extra general slots and
// a cursor buffer the server does not have, which pushes the cursor up by 3.
const (
	SlotPowerSource int16 = 21
	SlotAmmo        int16 = 22
	SlotGeneral1    int16 = 23
	SlotGeneral10   int16 = 32
	SlotGeneral11   int16 = 33
	SlotGeneral12   int16 = 34
	SlotCursorBuf   int16 = 35
	SlotCursor      int16 = 36

	CursorShift = SlotCursor - 33

	PossessionsEnd = SlotCursor
)

// Region sizes as the client sees them.
const (
	BankCount       = 24
	SharedBankCount = 2
	TradeCount      = 8
	WorldCount      = 10
	TributeCount    = 5
	BagSlotCount    = 10

	// CorpseMainBegin is the first client corpse slot; loot windows are 1-based.
	CorpseMainBegin = 1
)

// SayLinkBodySize is the width of the hex body inside a client text link.
const SayLinkBodySize = 56

// SpellGemCount is the number of spell gems the client exposes.
const SpellGemCount = 12

// BuffSlotShift moves short-duration buff slots back onto the server's numbering.
const (
	ShortBuffClientBegin = 42
	BuffSlotShift        = 17
)

// Item clicks are cast from slot 13 on the client and slot 10 on the server.
const (
	CastSlotItemClient = 13
	CastSlotItemServer = 10
)

// emptySpellGem is how the server marks a gem with no spell memorized.
const emptySpellGem = 0xFFFFFFFF

// invalid is the value of every field of an invalid client slot.
const invalid int16 = -1

// Fixed values observed on live clients.
const (
	stunUnknown005      = 163
	stunUnknown006      = 67
	deleteSpawnObserved = 1
	shopRequestUnknown1 = 3
	shopRequestUnknown2 = 2592000
	traderClickCode     = 28
	evolveProgress      = 95.512
	evolveMaxLevel      = 7
)
