// Package tds translates between the server's canonical messages and the
// "The Darkened Sea" client. It owns the client's slot layout, its item
// record format and the per-opcode translators.
package tds

import (
	"fmt"
	"path/filepath"

	"github.com/eqgo/server/internal/emu"
	"github.com/eqgo/server/internal/patch"
	"github.com/eqgo/server/internal/saylink"
	"go.uber.org/zap"
)

// translator holds what the stateful translators share.
type translator struct {
	log   *zap.Logger
	links *saylink.Reformatter
}

// Build creates the translator table for this client.
func Build(log *zap.Logger) *patch.Table {
	t := &translator{
		log:   log,
		links: saylink.NewReformatter(emu.SayLinkBodySize, SayLinkBodySize, log),
	}
	tbl := patch.NewTable()

	// Items
	tbl.Encoder(emu.OpCharInventory, t.encodeCharInventory)
	tbl.Encoder(emu.OpItemPacket, t.encodeItemPacket)
	tbl.ForwardEncode(emu.OpItemLinkResponse, emu.OpItemPacket)
	tbl.Encoder(emu.OpMoveItem, encodeMoveItem)
	tbl.Decoder(emu.OpMoveItem, t.decodeMoveItem)
	tbl.ForwardEncode(emu.OpDeleteCharge, emu.OpMoveItem)
	tbl.Encoder(emu.OpDeleteItem, encodeDeleteItem)
	tbl.Decoder(emu.OpDeleteItem, decodeDeleteItem)
	tbl.Encoder(emu.OpLootItem, encodeLootItem)
	tbl.Decoder(emu.OpLootItem, decodeLootItem)
	tbl.Decoder(emu.OpItemVerifyRequest, decodeItemVerifyRequest)
	tbl.Encoder(emu.OpItemVerifyReply, encodeItemVerifyReply)
	tbl.Decoder(emu.OpConsume, decodeConsume)
	tbl.Encoder(emu.OpTributeItem, encodeTributeItem)
	tbl.Decoder(emu.OpTributeItem, decodeTributeItem)
	tbl.Decoder(emu.OpAugmentItem, decodeAugmentItem)
	tbl.Encoder(emu.OpApplyPoison, encodeApplyPoison)
	tbl.Decoder(emu.OpApplyPoison, decodeApplyPoison)
	tbl.Decoder(emu.OpTradeSkillCombine, decodeTradeSkillCombine)
	tbl.Encoder(emu.OpRecipeAutoCombine, encodeRecipeAutoCombine)
	tbl.Decoder(emu.OpRecipeAutoCombine, decodeRecipeAutoCombine)

	// Merchants and traders
	tbl.Encoder(emu.OpShopRequest, encodeShopRequest)
	tbl.Decoder(emu.OpShopRequest, decodeShopRequest)
	tbl.Encoder(emu.OpShopPlayerBuy, encodeShopPlayerBuy)
	tbl.Decoder(emu.OpShopPlayerBuy, decodeShopPlayerBuy)
	tbl.Encoder(emu.OpShopPlayerSell, encodeShopPlayerSell)
	tbl.Decoder(emu.OpShopPlayerSell, decodeShopPlayerSell)
	tbl.Encoder(emu.OpAdventureMerchantSell, encodeAdventureMerchantSell)
	tbl.Decoder(emu.OpAdventureMerchantSell, decodeAdventureMerchantSell)
	tbl.Encoder(emu.OpAltCurrencySell, encodeAltCurrencySell)
	tbl.Decoder(emu.OpAltCurrencySell, decodeAltCurrencySell)
	tbl.Decoder(emu.OpAltCurrencySellSelection, decodeAltCurrencySellSelection)
	tbl.Encoder(emu.OpTraderShop, t.encodeTraderShop)
	tbl.Decoder(emu.OpTraderShop, t.decodeTraderShop)

	// Chat
	tbl.Encoder(emu.OpChannelMessage, t.encodeChannelMessage)
	tbl.Decoder(emu.OpChannelMessage, t.decodeChannelMessage)
	tbl.Encoder(emu.OpSpecialMesg, t.encodeSpecialMesg)
	tbl.Encoder(emu.OpFormattedMessage, t.encodeFormattedMessage)

	// Spawns and combat
	tbl.Encoder(emu.OpSpawnAppearance, encodeSpawnAppearance)
	tbl.Encoder(emu.OpAnimation, encodeAnimation)
	tbl.Decoder(emu.OpAnimation, decodeAnimation)
	tbl.Encoder(emu.OpHPUpdate, encodeHPUpdate)
	tbl.Encoder(emu.OpManaChange, encodeManaChange)
	tbl.Encoder(emu.OpDamage, encodeDamage)
	tbl.Decoder(emu.OpDamage, decodeDamage)
	tbl.Encoder(emu.OpConsider, encodeConsider)
	tbl.Decoder(emu.OpConsider, decodeConsider)
	tbl.ForwardDecode(emu.OpConsiderCorpse, emu.OpConsider)
	tbl.Encoder(emu.OpDeleteSpawn, encodeDeleteSpawn)
	tbl.Encoder(emu.OpStun, encodeStun)
	tbl.Encoder(emu.OpSkillUpdate, encodeSkillUpdate)

	// Spells
	tbl.Encoder(emu.OpCastSpell, encodeCastSpell)
	tbl.Decoder(emu.OpCastSpell, decodeCastSpell)
	tbl.Decoder(emu.OpBuffRemoveRequest, decodeBuffRemoveRequest)
	tbl.Decoder(emu.OpLoadSpellSet, decodeLoadSpellSet)

	return tbl
}

// OpcodeFile returns the opcode file for this client inside dir.
func OpcodeFile(dir string) string {
	return filepath.Join(dir, fmt.Sprintf("patch_%s.conf", Name))
}

// New loads the opcode file from dir and returns the ready translation
// layer. A client whose opcodes cannot be loaded is not served at all.
func New(dir string, log *zap.Logger) (*patch.Strategy, error) {
	ops := patch.NewOpcodeManager(log)
	if err := ops.Load(OpcodeFile(dir)); err != nil {
		return nil, fmt.Errorf("load %s opcodes: %w", Name, err)
	}
	return patch.NewStrategy(Name, Build, ops, log), nil
}

// Signatures are the first packets this client sends to world and zone.
func Signatures() []patch.Signature {
	return []patch.Signature{
		{
			Name:        Name + " world",
			FirstOpcode: emu.OpSendLoginInfo,
			FirstLength: sizeOf[LoginInfo](),
		},
		{
			Name:         Name + " zone",
			FirstOpcode:  emu.OpZoneEntry,
			FirstLength:  sizeOf[ClientZoneEntry](),
			IgnoreOpcode: emu.OpAckPacket,
		},
	}
}

// Register loads this client and adds it to id. The client is skipped with
// an error log when its opcode file is unusable.
func Register(id *patch.Identifier, dir string, log *zap.Logger) (*patch.Strategy, error) {
	s, err := New(dir, log)
	if err != nil {
		log.Error("patch not registered", zap.String("patch", Name), zap.Error(err))
		return nil, err
	}
	id.Register(s, Signatures()...)
	return s, nil
}
