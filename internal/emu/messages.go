package emu

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/eqgo/server/internal/item"
)

// SayLinkBodySize is the width of the fixed hex body inside a server text link.
const SayLinkBodySize = 56

// SpellGemCount is the number of memorized spell gems a character has.
const SpellGemCount = 12

// AppearanceSize is the SpawnAppearance type that carries a new model size.
const AppearanceSize = 29

// ErrNotFixed is returned by Marshal for messages with variable-length content.
var ErrNotFixed = errors.New("message has no fixed wire layout")

// Message is one canonical client/server event.
type Message interface {
	Opcode() Opcode
}

// Raw is a message carried as opaque canonical bytes.
type Raw struct {
	Op   Opcode
	Data []byte
}

func (m Raw) Opcode() Opcode { return m.Op }

// Marshal returns the canonical bytes of a fixed-layout message.
func Marshal(m Message) ([]byte, error) {
	switch v := m.(type) {
	case Raw:
		return v.Data, nil
	case *Raw:
		return v.Data, nil
	}
	if binary.Size(m) < 0 {
		return nil, fmt.Errorf("marshal %s: %w", m.Opcode(), ErrNotFixed)
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, m); err != nil {
		return nil, fmt.Errorf("marshal %s: %w", m.Opcode(), err)
	}
	return buf.Bytes(), nil
}

// ── Inventory ──────────────────────────────────────────────────────

// InventoryEntry is one top-level item and the server slot it occupies.
type InventoryEntry struct {
	Slot uint32
	Item *item.Instance
}

type CharInventory struct {
	Items []InventoryEntry
}

func (CharInventory) Opcode() Opcode { return OpCharInventory }

// ItemPacket carries a single item tree. Op overrides the opcode for
// messages that share this layout, such as item link responses.
type ItemPacket struct {
	Op         Opcode
	PacketType ItemPacketType
	Slot       uint32
	Item       *item.Instance
}

func (m ItemPacket) Opcode() Opcode {
	if m.Op != OpUnknown {
		return m.Op
	}
	return OpItemPacket
}

type MoveItem struct {
	FromSlot      uint32
	ToSlot        uint32
	NumberInStack uint32
}

func (MoveItem) Opcode() Opcode { return OpMoveItem }

type DeleteItem struct {
	FromSlot      uint32
	ToSlot        uint32
	NumberInStack uint32
}

func (DeleteItem) Opcode() Opcode { return OpDeleteItem }

// DeleteCharge shares the MoveItem layout.
type DeleteCharge struct {
	FromSlot      uint32
	ToSlot        uint32
	NumberInStack uint32
}

func (DeleteCharge) Opcode() Opcode { return OpDeleteCharge }

type LootingItem struct {
	Lootee   uint32
	Looter   uint32
	SlotID   uint32
	AutoLoot int32
}

func (LootingItem) Opcode() Opcode { return OpLootItem }

type ItemVerifyRequest struct {
	Slot   uint32
	Target uint32
}

func (ItemVerifyRequest) Opcode() Opcode { return OpItemVerifyRequest }

type ItemVerifyReply struct {
	Slot   uint32
	Spell  uint32
	Target uint32
}

func (ItemVerifyReply) Opcode() Opcode { return OpItemVerifyReply }

type Consume struct {
	Slot         uint32
	AutoConsumed uint32
	Type         uint8
	Unknown013   [3]uint8
}

func (Consume) Opcode() Opcode { return OpConsume }

type TributeItem struct {
	Slot            uint32
	Quantity        uint32
	TributeMasterID uint32
	TributePoints   int32
}

func (TributeItem) Opcode() Opcode { return OpTributeItem }

type AugmentItem struct {
	ContainerSlot  uint32
	AugmentSlot    uint32
	ContainerIndex uint32
	AugmentIndex   int32
	DestInstID     uint32
	AugmentAction  int32
}

func (AugmentItem) Opcode() Opcode { return OpAugmentItem }

type ApplyPoison struct {
	InventorySlot uint32
	Success       uint32
}

func (ApplyPoison) Opcode() Opcode { return OpApplyPoison }

// NewCombine asks the server to combine the contents of a tradeskill container.
type NewCombine struct {
	ContainerSlot    uint32
	GuildTributeSlot uint32
}

func (NewCombine) Opcode() Opcode { return OpTradeSkillCombine }

type RecipeAutoCombine struct {
	ObjectType    uint32
	SomeID        uint32
	ContainerSlot uint32
	RecipeID      uint32
	ReplyCode     uint32
}

func (RecipeAutoCombine) Opcode() Opcode { return OpRecipeAutoCombine }

// ── Merchants ──────────────────────────────────────────────────────

type MerchantClick struct {
	NPCID    uint32
	PlayerID uint32
	Command  uint32
	Rate     float32
}

func (MerchantClick) Opcode() Opcode { return OpShopRequest }

// MerchantSell is the player buying from a merchant.
type MerchantSell struct {
	NPCID    uint32
	PlayerID uint32
	ItemSlot uint32
	Quantity uint32
	Price    uint32
}

func (MerchantSell) Opcode() Opcode { return OpShopPlayerBuy }

// MerchantPurchase is the player selling to a merchant.
type MerchantPurchase struct {
	NPCID    uint32
	ItemSlot uint32
	Quantity uint32
	Price    uint32
}

func (MerchantPurchase) Opcode() Opcode { return OpShopPlayerSell }

type AdventureSell struct {
	Unknown000 uint32
	NPCID      uint32
	Slot       uint32
	Charges    uint32
	SellPrice  uint32
}

func (AdventureSell) Opcode() Opcode { return OpAdventureMerchantSell }

type AltCurrencySellItem struct {
	MerchantEntityID uint32
	SlotID           uint32
	Charges          uint32
	Cost             uint32
}

func (AltCurrencySellItem) Opcode() Opcode { return OpAltCurrencySell }

type AltCurrencySelectItem struct {
	MerchantEntityID uint32
	SlotID           uint32
}

func (AltCurrencySelectItem) Opcode() Opcode { return OpAltCurrencySellSelection }

// Trader shop actions share one opcode and are told apart by size.
type TraderClick struct {
	Code     uint32
	TraderID uint32
	Approval uint32
}

func (TraderClick) Opcode() Opcode { return OpTraderShop }

type BazaarWelcome struct {
	Action   uint32
	EntityID uint32
	Traders  uint32
	Items    uint32
}

func (BazaarWelcome) Opcode() Opcode { return OpTraderShop }

type TraderBuy struct {
	Action      uint32
	Price       uint32
	TraderID    uint32
	ItemName    [64]byte
	ItemID      uint32
	AlreadySold uint32
	Quantity    uint32
}

func (TraderBuy) Opcode() Opcode { return OpTraderShop }

// ── Chat ───────────────────────────────────────────────────────────

type ChannelMessage struct {
	Sender          string
	Target          string
	Language        uint32
	ChanNum         uint32
	SkillInLanguage uint32
	Message         string
}

func (ChannelMessage) Opcode() Opcode { return OpChannelMessage }

type SpecialMesg struct {
	Header        [3]byte
	MsgType       uint32
	TargetSpawnID uint32
	Sayer         string
	Message       string
}

func (SpecialMesg) Opcode() Opcode { return OpSpecialMesg }

// FormattedMessage references a client string table entry plus its arguments.
type FormattedMessage struct {
	Unknown0 uint32
	StringID uint32
	Type     uint32
	Args     []string
}

func (FormattedMessage) Opcode() Opcode { return OpFormattedMessage }

// ── Spawns and combat ──────────────────────────────────────────────

type SpawnAppearance struct {
	SpawnID   uint16
	Type      uint16
	Parameter uint32
}

func (SpawnAppearance) Opcode() Opcode { return OpSpawnAppearance }

type Animation struct {
	SpawnID uint16
	Speed   uint8
	Action  uint8
}

func (Animation) Opcode() Opcode { return OpAnimation }

type SpawnHPUpdate struct {
	CurHP   uint32
	MaxHP   int32
	SpawnID uint16
	Pad     [2]uint8
}

func (SpawnHPUpdate) Opcode() Opcode { return OpHPUpdate }

type ManaChange struct {
	NewMana     uint32
	Stamina     uint32
	SpellID     uint32
	KeepCasting uint8
	Pad         [3]uint8
}

func (ManaChange) Opcode() Opcode { return OpManaChange }

type CombatDamage struct {
	Target     uint16
	Source     uint16
	Type       uint8
	Pad        uint8
	SpellID    uint16
	Damage     int32
	Force      float32
	HitHeading float32
	HitPitch   float32
}

func (CombatDamage) Opcode() Opcode { return OpDamage }

type Consider struct {
	PlayerID uint32
	TargetID uint32
	Faction  uint32
	Level    uint32
	CurHP    int32
	MaxHP    int32
	PVPCon   uint8
	Pad      [3]uint8
}

func (Consider) Opcode() Opcode { return OpConsider }

type DeleteSpawn struct {
	SpawnID uint32
}

func (DeleteSpawn) Opcode() Opcode { return OpDeleteSpawn }

type Stun struct {
	Duration uint32
}

func (Stun) Opcode() Opcode { return OpStun }

type SkillUpdate struct {
	SkillID uint32
	Value   uint32
}

func (SkillUpdate) Opcode() Opcode { return OpSkillUpdate }

// ── Spells ─────────────────────────────────────────────────────────

type CastSpell struct {
	Slot          uint32
	SpellID       uint32
	InventorySlot uint32
	TargetID      uint32
	Y             float32
	X             float32
	Z             float32
}

func (CastSpell) Opcode() Opcode { return OpCastSpell }

type BuffRemoveRequest struct {
	SlotID   uint32
	EntityID uint32
}

func (BuffRemoveRequest) Opcode() Opcode { return OpBuffRemoveRequest }

type LoadSpellSet struct {
	Spell [SpellGemCount]uint32
}

func (LoadSpellSet) Opcode() Opcode { return OpLoadSpellSet }
