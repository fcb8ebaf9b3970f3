package emu

import "fmt"

// Opcode is the version-independent message type. Each client patch binds
// these to its own numeric wire opcodes through an opcode file.
type Opcode uint16

const (
	OpUnknown Opcode = iota

	// Session handshake (used for stream identification only).
	OpAckPacket
	OpSendLoginInfo
	OpZoneEntry

	// Inventory
	OpCharInventory
	OpItemPacket
	OpItemLinkResponse
	OpMoveItem
	OpDeleteItem
	OpDeleteCharge
	OpLootItem
	OpItemVerifyRequest
	OpItemVerifyReply
	OpConsume
	OpTributeItem
	OpAugmentItem
	OpApplyPoison
	OpTradeSkillCombine
	OpRecipeAutoCombine

	// Merchants
	OpShopRequest
	OpShopPlayerBuy
	OpShopPlayerSell
	OpAdventureMerchantSell
	OpAltCurrencySell
	OpAltCurrencySellSelection
	OpTraderShop

	// Chat
	OpChannelMessage
	OpSpecialMesg
	OpFormattedMessage

	// Spawns and combat
	OpSpawnAppearance
	OpChangeSize
	OpAnimation
	OpHPUpdate
	OpManaChange
	OpDamage
	OpConsider
	OpConsiderCorpse
	OpDeleteSpawn
	OpStun
	OpSkillUpdate

	// Spells
	OpCastSpell
	OpBuffRemoveRequest
	OpLoadSpellSet

	// Carried verbatim by every patch.
	OpClientUpdate
	OpCamp
	OpTargetMouse

	opcodeCount
)

var opcodeNames = [...]string{
	OpUnknown:                  "OP_Unknown",
	OpAckPacket:                "OP_AckPacket",
	OpSendLoginInfo:            "OP_SendLoginInfo",
	OpZoneEntry:                "OP_ZoneEntry",
	OpCharInventory:            "OP_CharInventory",
	OpItemPacket:               "OP_ItemPacket",
	OpItemLinkResponse:         "OP_ItemLinkResponse",
	OpMoveItem:                 "OP_MoveItem",
	OpDeleteItem:               "OP_DeleteItem",
	OpDeleteCharge:             "OP_DeleteCharge",
	OpLootItem:                 "OP_LootItem",
	OpItemVerifyRequest:        "OP_ItemVerifyRequest",
	OpItemVerifyReply:          "OP_ItemVerifyReply",
	OpConsume:                  "OP_Consume",
	OpTributeItem:              "OP_TributeItem",
	OpAugmentItem:              "OP_AugmentItem",
	OpApplyPoison:              "OP_ApplyPoison",
	OpTradeSkillCombine:        "OP_TradeSkillCombine",
	OpRecipeAutoCombine:        "OP_RecipeAutoCombine",
	OpShopRequest:              "OP_ShopRequest",
	OpShopPlayerBuy:            "OP_ShopPlayerBuy",
	OpShopPlayerSell:           "OP_ShopPlayerSell",
	OpAdventureMerchantSell:    "OP_AdventureMerchantSell",
	OpAltCurrencySell:          "OP_AltCurrencySell",
	OpAltCurrencySellSelection: "OP_AltCurrencySellSelection",
	OpTraderShop:               "OP_TraderShop",
	OpChannelMessage:           "OP_ChannelMessage",
	OpSpecialMesg:              "OP_SpecialMesg",
	OpFormattedMessage:         "OP_FormattedMessage",
	OpSpawnAppearance:          "OP_SpawnAppearance",
	OpChangeSize:               "OP_ChangeSize",
	OpAnimation:                "OP_Animation",
	OpHPUpdate:                 "OP_HPUpdate",
	OpManaChange:               "OP_ManaChange",
	OpDamage:                   "OP_Damage",
	OpConsider:                 "OP_Consider",
	OpConsiderCorpse:           "OP_ConsiderCorpse",
	OpDeleteSpawn:              "OP_DeleteSpawn",
	OpStun:                     "OP_Stun",
	OpSkillUpdate:              "OP_SkillUpdate",
	OpCastSpell:                "OP_CastSpell",
	OpBuffRemoveRequest:        "OP_BuffRemoveRequest",
	OpLoadSpellSet:             "OP_LoadSpellSet",
	OpClientUpdate:             "OP_ClientUpdate",
	OpCamp:                     "OP_Camp",
	OpTargetMouse:              "OP_TargetMouse",
}

var opcodeByName = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeNames))
	for op, name := range opcodeNames {
		m[name] = Opcode(op)
	}
	return m
}()

func (op Opcode) String() string {
	if op < opcodeCount {
		return opcodeNames[op]
	}
	return fmt.Sprintf("Opcode(%d)", uint16(op))
}

// OpcodeByName resolves an "OP_Name" identifier as written in opcode files.
func OpcodeByName(name string) (Opcode, bool) {
	op, ok := opcodeByName[name]
	if !ok || op == OpUnknown {
		return OpUnknown, false
	}
	return op, true
}

// Opcodes returns every known logical opcode except OpUnknown.
func Opcodes() []Opcode {
	ops := make([]Opcode, 0, opcodeCount-1)
	for op := OpUnknown + 1; op < opcodeCount; op++ {
		ops = append(ops, op)
	}
	return ops
}
