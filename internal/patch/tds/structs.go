package tds

// Client wire layouts. Every struct here is packed little-endian with no
// implicit padding; field order and width must match the client exactly.

// ── Item record ────────────────────────────────────────────────────

type itemHeader struct {
	ItemID       [17]byte
	StackSize    uint32
	Unknown004   uint32
	SlotType     uint8
	MainSlot     uint16
	SubSlot      uint16
	AugSlot      uint16
	Price        uint32
	MerchantSlot uint32
	ScaledValue  uint32
	InstanceID   uint32
	Unknown028   uint32
	LastCastTime uint32
	Charges      uint32
	InstNoDrop   uint32
	Unknown044   uint32
	Unknown048   uint32
	Unknown052   uint32
	IsEvolving   uint8
}

type evolvingItem struct {
	Unknown001  [4]uint8
	EvoLevel    int32
	Progress    float64
	Activated   uint8
	EvoMaxLevel int32
	Unknown008  [4]uint8
}

type itemHeaderFinish struct {
	OrnamentIcon      uint32
	Unknowna1         int32
	OrnamentHeroModel uint32
	Unknown063        int32
	Copied            uint8
	Unknowna4         int32
	Unknowna5         int32
	ItemClass         uint8
}

type itemBody struct {
	ID               uint32
	Weight           int32
	NoRent           uint8
	NoDrop           uint8
	Attune           uint8
	Size             uint8
	Slots            uint32
	Price            uint32
	Icon             uint32
	Unknown1         uint8
	Unknown2         uint8
	BenefitFlag      int32
	Tradeskills      uint8
	CR               int8
	DR               int8
	PR               int8
	MR               int8
	FR               int8
	SVCorruption     int8
	AStr             int8
	ASta             int8
	AAgi             int8
	ADex             int8
	ACha             int8
	AInt             int8
	AWis             int8
	HP               int32
	Mana             int32
	Endur            int32
	AC               int32
	Regen            int32
	ManaRegen        int32
	EndRegen         int32
	Classes          uint32
	Races            uint32
	Deity            uint32
	SkillModValue    int32
	SkillModMax      uint32
	SkillModType     uint32
	SkillModExtra    uint32
	BaneDmgRace      uint32
	BaneDmgBody      uint32
	BaneDmgRaceAmt   uint32
	BaneDmgAmt       int32
	Magic            uint8
	CastTime_        int32
	ReqLevel         uint32
	RecLevel         uint32
	RecSkill         uint32
	BardType         uint32
	BardValue        int32
	Light            int8
	Delay            uint8
	ElemDmgType      uint8
	ElemDmgAmt       uint8
	Range            uint8
	Damage           uint32
	Color            uint32
	Prestige         uint32
	ItemType         uint8
	Material         uint32
	MaterialUnknown1 uint32
	EliteMaterial    uint32
	HerosForgeModel  uint32
	MaterialUnknown2 uint32
	SellRate         float32
	CombatEffects    int32
	Shielding        int32
	StunResist       int32
	StrikeThrough    int32
	ExtraDmgSkill    uint32
	ExtraDmgAmt      uint32
	SpellShield      int32
	Avoidance        int32
	Accuracy         int32
	CharmFileID      uint32
	FactionMod1      int32
	FactionMod2      int32
	FactionMod3      int32
	FactionMod4      int32
	FactionAmt1      int32
	FactionAmt2      int32
	FactionAmt3      int32
	FactionAmt4      int32
}

type augSlotDesc struct {
	Type    uint32
	Visible uint8
	Unknown uint8
}

type itemSecondaryBody struct {
	AugType          uint32
	AugRestrict2     int32
	AugRestrict      uint32
	AugSlots         [6]augSlotDesc
	LDoNPointType    uint32
	LDoNTheme        uint32
	LDoNPrice        uint32
	LDoNSellBackRate uint32
	LDoNSold         uint32
	BagType          uint8
	BagSlots         uint8
	BagSize          uint8
	WReduction       uint8
	Book             uint8
	BookType         uint8
}

type itemTertiaryBody struct {
	LoreGroup         int32
	Artifact          uint8
	SummonedFlag      uint8
	Favor             uint32
	FVNoDrop          uint8
	DotShield         int32
	Atk               int32
	Haste             int32
	DamageShield      int32
	GuildFavor        uint32
	AugDistil         uint32
	Unknown3          int32
	Unknown4          uint32
	NoPet             uint8
	Unknown5          uint8
	PotionBeltEnabled uint8
	PotionBeltSlots   uint32
	StackSize         uint32
	NoTransfer        uint8
	ExpendableArrow   uint16
	Unknown8          uint32
	Unknown9          uint32
	Unknown10         uint32
	Unknown11         uint32
	Unknown12         uint8
	Unknown13         uint8
	Unknown14         uint8
}

type clickEffect struct {
	Effect     int32
	Level2     uint8
	Type       uint8
	Level      uint8
	MaxCharges int32
	CastTime   int32
	Recast     int32
	RecastType int32
}

type procEffect struct {
	Effect   int32
	Level2   uint8
	Type     uint8
	Level    uint8
	Unknown1 uint32
	Unknown2 uint32
	Unknown3 uint32
	Unknown4 uint32
	ProcRate int32
}

type wornEffect struct {
	Effect   int32
	Level2   uint8
	Type     uint8
	Level    uint8
	Unknown1 uint32
	Unknown2 uint32
	Unknown3 uint32
	Unknown4 uint32
	Unknown5 uint32
}

type itemQuaternaryBody struct {
	ScriptFileID   uint32
	QuestItem      uint8
	Power          uint32
	Purity         uint32
	Unknown16      uint8
	BackstabDmg    uint32
	DSMitigation   uint32
	HeroicStr      int32
	HeroicInt      int32
	HeroicWis      int32
	HeroicAgi      int32
	HeroicDex      int32
	HeroicSta      int32
	HeroicCha      int32
	HeroicMR       int32
	HeroicFR       int32
	HeroicCR       int32
	HeroicDR       int32
	HeroicPR       int32
	HeroicSVCorrup int32
	HealAmt        int32
	SpellDmg       int32
	Clairvoyance   int32
	Unknown18      uint8
	Unknown19      uint32
	Unknown20      uint32
	Unknown21      uint32
	Unknown22      uint32
	Heirloom       uint8
	Placeable      uint8
	Unknown23      [5]uint8
	Unknown28      int32
	Unknown29      uint32
	Unknown30      int32
	Unknown31      uint32
	NoZone         uint8
	NoGround       uint8
	Unknown37a     uint8
	Unknown38      uint8
	Unknown39      uint8
	SubitemCount   uint32
}

// ── Inventory packets ──────────────────────────────────────────────

type MoveItem struct {
	FromSlot      ItemSlot
	ToSlot        ItemSlot
	NumberInStack uint32
}

type DeleteItem struct {
	FromSlot      ItemSlot
	ToSlot        ItemSlot
	NumberInStack uint32
}

type LootingItem struct {
	Lootee   uint32
	Looter   uint32
	SlotID   uint16
	Unknown3 [2]uint8
	AutoLoot int32
	Unknown4 uint32
}

type ItemVerifyRequest struct {
	Slot   ItemSlot
	Target uint32
}

type ItemVerifyReply struct {
	Slot   ItemSlot
	Spell  uint32
	Target uint32
}

type Consume struct {
	Slot         ItemSlot
	AutoConsumed uint32
	Type         uint8
	Unknown013   [3]uint8
}

type TributeItem struct {
	Slot            ItemSlot
	Quantity        uint32
	TributeMasterID uint32
	TributePoints   int32
}

type AugmentItem struct {
	ContainerSlot  ItemSlot
	AugmentSlot    ItemSlot
	ContainerIndex uint32
	AugmentIndex   int32
	DestInstID     uint32
	AugmentAction  int32
}

type ApplyPoison struct {
	InventorySlot MainInvSlot
	Success       uint32
}

type NewCombine struct {
	ContainerSlot    ItemSlot
	GuildTributeSlot ItemSlot
}

type RecipeAutoCombine struct {
	ObjectType    uint32
	SomeID        uint32
	ContainerSlot ItemSlot
	UnknownSlot   ItemSlot
	RecipeID      uint32
	ReplyCode     uint32
}

// ── Merchants ──────────────────────────────────────────────────────

type MerchantClick struct {
	NPCID     uint32
	PlayerID  uint32
	Command   uint32
	Rate      float32
	Unknown01 int32
	Unknown02 int32
}

type MerchantSell struct {
	NPCID     uint32
	PlayerID  uint32
	ItemSlot  uint32
	Unknown12 uint32
	Quantity  uint32
	Unknown20 uint32
	Price     uint32
}

type MerchantPurchase struct {
	NPCID    uint32
	ItemSlot MainInvSlot
	Quantity uint32
	Price    uint32
}

type AdventureSell struct {
	Unknown000 uint32
	NPCID      uint32
	Slot       MainInvSlot
	Charges    uint32
	SellPrice  uint32
}

type AltCurrencySellItem struct {
	MerchantEntityID uint32
	SlotID           MainInvSlot
	Charges          uint32
	Cost             uint32
}

type AltCurrencySelectItem struct {
	MerchantEntityID uint32
	SlotID           MainInvSlot
}

type TraderClick struct {
	Code       uint32
	TraderID   uint32
	Approval   uint32
	Unknown012 uint32
}

type BazaarWelcome struct {
	Code     uint32
	EntityID uint32
	Traders  uint32
	Items    uint32
	Traders2 uint32
	Items2   uint32
}

type TraderBuy struct {
	Action       uint32
	Unknown004   uint32
	Unknown008   uint32
	Unknown012   uint32
	TraderID     uint32
	BuyerName    [64]byte
	SellerName   [64]byte
	Unknown148   [4]byte
	ItemName     [64]byte
	SerialNumber [17]byte
	Unknown233   [3]byte
	ItemID       uint32
	Price        uint32
	AlreadySold  uint32
	Unknown248   uint32
	Quantity     uint32
}

// ── Spawns and combat ──────────────────────────────────────────────

type ChangeSize struct {
	EntityID  uint32
	Size      float32
	Unknown08 uint32
	Unknown12 float32
}

type Animation struct {
	SpawnID uint16
	Action  uint8
	Speed   uint8
}

type SpawnHPUpdate struct {
	SpawnID uint16
	Pad     [2]uint8
	CurHP   uint32
	MaxHP   int32
}

type ManaChange struct {
	NewMana     uint32
	Stamina     uint32
	SpellID     uint32
	KeepCasting uint8
	Pad         [3]uint8
	Unknown16   int32
}

type CombatDamage struct {
	Target     uint16
	Source     uint16
	Type       uint8
	SpellID    uint32
	Damage     int32
	Force      float32
	HitHeading float32
	HitPitch   float32
	Special    uint8
	Unknown26  [4]uint8
}

type Consider struct {
	PlayerID uint32
	TargetID uint32
	Faction  uint32
	Level    uint32
	PVPCon   uint8
	Pad      [3]uint8
}

type DeleteSpawn struct {
	SpawnID   uint32
	Unknown04 uint8
}

type Stun struct {
	Duration   uint32
	Unknown005 uint8
	Unknown006 uint8
}

type SkillUpdate struct {
	SkillID   uint32
	Value     uint32
	Unknown08 uint8
	Unknown09 uint8
	Unknown10 uint8
	Unknown11 uint8
}

// ── Spells ─────────────────────────────────────────────────────────

type CastSpell struct {
	Slot          uint32
	SpellID       uint32
	InventorySlot ItemSlot
	TargetID      uint32
	Unknown24     [4]uint8
	Y             float32
	X             float32
	Z             float32
}

type BuffRemoveRequest struct {
	SlotID   uint32
	EntityID uint32
}

type LoadSpellSet struct {
	Spell [SpellGemCount]uint32
}

// ── Stream identification ──────────────────────────────────────────

// LoginInfo is the first packet a client sends to world.
type LoginInfo struct {
	LoginInfo  [64]byte
	Unknown064 [124]uint8
	Zoning     uint8
	Unknown189 [275]uint8
}

// ClientZoneEntry is the first packet a client sends to a zone.
type ClientZoneEntry struct {
	Unknown00 uint32
	CharName  [64]byte
	Unknown68 [8]uint8
}
