package tds

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/eqgo/server/internal/emu"
	"github.com/eqgo/server/internal/net/packet"
	"github.com/eqgo/server/internal/patch"
	"go.uber.org/zap"
)

// traderShopAck is the size of the bare acknowledgement the client sends on
// the trader shop opcode. It is forwarded without translation.
const traderShopAck = 4

func sizeOf[T any]() int {
	var v T
	return binary.Size(&v)
}

func serverSlot(c ItemSlot) uint32 { return ToServerSlot(c, ContextInventory) }

// ── Items ──────────────────────────────────────────────────────────

func (t *translator) decodeMoveItem(op emu.Opcode, data []byte) (emu.Message, error) {
	var w MoveItem
	if err := patch.DecodeExact(op, data, &w); err != nil {
		return nil, err
	}
	m := emu.MoveItem{
		FromSlot:      serverSlot(w.FromSlot),
		ToSlot:        serverSlot(w.ToSlot),
		NumberInStack: w.NumberInStack,
	}
	t.log.Debug("move item",
		zap.Int16("from_type", w.FromSlot.Type),
		zap.Int16("from_main", w.FromSlot.Main),
		zap.Int16("from_sub", w.FromSlot.Sub),
		zap.Uint32("from", m.FromSlot),
		zap.Uint32("to", m.ToSlot),
	)
	return m, nil
}

var (
	decodeDeleteItem = patch.DirectDecode(func(w DeleteItem) emu.DeleteItem {
		return emu.DeleteItem{
			FromSlot:      serverSlot(w.FromSlot),
			ToSlot:        serverSlot(w.ToSlot),
			NumberInStack: w.NumberInStack,
		}
	})

	decodeLootItem = patch.DirectDecode(func(w LootingItem) emu.LootingItem {
		return emu.LootingItem{
			Lootee:   w.Lootee,
			Looter:   w.Looter,
			SlotID:   ToServerCorpseSlot(uint32(w.SlotID)),
			AutoLoot: w.AutoLoot,
		}
	})

	decodeItemVerifyRequest = patch.DirectDecode(func(w ItemVerifyRequest) emu.ItemVerifyRequest {
		return emu.ItemVerifyRequest{Slot: serverSlot(w.Slot), Target: w.Target}
	})

	decodeConsume = patch.DirectDecode(func(w Consume) emu.Consume {
		return emu.Consume{Slot: serverSlot(w.Slot), AutoConsumed: w.AutoConsumed, Type: w.Type}
	})

	decodeTributeItem = patch.DirectDecode(func(w TributeItem) emu.TributeItem {
		return emu.TributeItem{
			Slot:            serverSlot(w.Slot),
			Quantity:        w.Quantity,
			TributeMasterID: w.TributeMasterID,
			TributePoints:   w.TributePoints,
		}
	})

	decodeApplyPoison = patch.DirectDecode(func(w ApplyPoison) emu.ApplyPoison {
		return emu.ApplyPoison{InventorySlot: ToServerMainInvSlot(w.InventorySlot), Success: w.Success}
	})

	decodeAugmentItem = patch.DirectDecode(func(w AugmentItem) emu.AugmentItem {
		return emu.AugmentItem{
			ContainerSlot:  serverSlot(w.ContainerSlot),
			AugmentSlot:    serverSlot(w.AugmentSlot),
			ContainerIndex: w.ContainerIndex,
			AugmentIndex:   w.AugmentIndex,
			DestInstID:     w.DestInstID,
			AugmentAction:  w.AugmentAction,
		}
	})

	decodeRecipeAutoCombine = patch.DirectDecode(func(w RecipeAutoCombine) emu.RecipeAutoCombine {
		return emu.RecipeAutoCombine{
			ObjectType:    w.ObjectType,
			SomeID:        w.SomeID,
			ContainerSlot: serverSlot(w.ContainerSlot),
			RecipeID:      w.RecipeID,
			ReplyCode:     w.ReplyCode,
		}
	})

	// Combines in a world container are reported against the server's
	// single tradeskill slot.
	decodeTradeSkillCombine = patch.DirectDecode(func(w NewCombine) emu.NewCombine {
		slot := serverSlot(w.ContainerSlot)
		if slot == emu.WorldBegin {
			slot = emu.SlotTradeskill
		}
		return emu.NewCombine{
			ContainerSlot:    slot,
			GuildTributeSlot: serverSlot(w.GuildTributeSlot),
		}
	})
)

// ── Merchants ──────────────────────────────────────────────────────

var (
	decodeShopRequest = patch.DirectDecode(func(w MerchantClick) emu.MerchantClick {
		return emu.MerchantClick{NPCID: w.NPCID, PlayerID: w.PlayerID, Command: w.Command, Rate: w.Rate}
	})

	decodeShopPlayerBuy = patch.DirectDecode(func(w MerchantSell) emu.MerchantSell {
		return emu.MerchantSell{
			NPCID:    w.NPCID,
			PlayerID: w.PlayerID,
			ItemSlot: w.ItemSlot,
			Quantity: w.Quantity,
			Price:    w.Price,
		}
	})

	decodeShopPlayerSell = patch.DirectDecode(func(w MerchantPurchase) emu.MerchantPurchase {
		return emu.MerchantPurchase{
			NPCID:    w.NPCID,
			ItemSlot: ToServerMainInvSlot(w.ItemSlot),
			Quantity: w.Quantity,
			Price:    w.Price,
		}
	})

	decodeAdventureMerchantSell = patch.DirectDecode(func(w AdventureSell) emu.AdventureSell {
		return emu.AdventureSell{
			NPCID:     w.NPCID,
			Slot:      ToServerMainInvSlot(w.Slot),
			Charges:   w.Charges,
			SellPrice: w.SellPrice,
		}
	})

	decodeAltCurrencySell = patch.DirectDecode(func(w AltCurrencySellItem) emu.AltCurrencySellItem {
		return emu.AltCurrencySellItem{
			MerchantEntityID: w.MerchantEntityID,
			SlotID:           ToServerMainInvSlot(w.SlotID),
			Charges:          w.Charges,
			Cost:             w.Cost,
		}
	})

	decodeAltCurrencySellSelection = patch.DirectDecode(func(w AltCurrencySelectItem) emu.AltCurrencySelectItem {
		return emu.AltCurrencySelectItem{
			MerchantEntityID: w.MerchantEntityID,
			SlotID:           ToServerMainInvSlot(w.SlotID),
		}
	})
)

// decodeTraderShop picks the layout by wire size.
func (t *translator) decodeTraderShop(op emu.Opcode, data []byte) (emu.Message, error) {
	switch len(data) {
	case sizeOf[TraderClick]():
		var w TraderClick
		if err := patch.DecodeExact(op, data, &w); err != nil {
			return nil, err
		}
		t.log.Debug("trader shop click",
			zap.Uint32("code", w.Code),
			zap.Uint32("trader", w.TraderID),
			zap.Uint32("approval", w.Approval),
		)
		return emu.TraderClick{Code: w.Code, TraderID: w.TraderID, Approval: w.Approval}, nil

	case sizeOf[BazaarWelcome]():
		var w BazaarWelcome
		if err := patch.DecodeExact(op, data, &w); err != nil {
			return nil, err
		}
		return emu.BazaarWelcome{Action: w.Code, Traders: w.Traders, Items: w.Items}, nil

	case sizeOf[TraderBuy]():
		var w TraderBuy
		if err := patch.DecodeExact(op, data, &w); err != nil {
			return nil, err
		}
		t.log.Debug("trader shop buy",
			zap.Uint32("action", w.Action),
			zap.Uint32("trader", w.TraderID),
			zap.Uint32("item", w.ItemID),
			zap.Uint32("quantity", w.Quantity),
		)
		return emu.TraderBuy{
			Action:   w.Action,
			Price:    w.Price,
			TraderID: w.TraderID,
			ItemName: w.ItemName,
			ItemID:   w.ItemID,
			Quantity: w.Quantity,
		}, nil

	case traderShopAck:
		return emu.Raw{Op: op, Data: data}, nil
	}
	return nil, fmt.Errorf("%s: %w (%d bytes)", op, patch.ErrUnknownSize, len(data))
}

// ── Chat ───────────────────────────────────────────────────────────

func (t *translator) decodeChannelMessage(op emu.Opcode, data []byte) (emu.Message, error) {
	r := packet.NewReader(data)
	sender := r.ReadS()
	target := r.ReadS()
	r.Skip(4)
	language := r.ReadDU()
	channel := r.ReadDU()
	r.Skip(5)
	skill := r.ReadDU()
	text := r.ReadS()
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	text = t.links.ToServer(text)
	// Client command prefix.
	if strings.HasPrefix(text, ".") {
		text = "#" + text[1:]
	}
	return emu.ChannelMessage{
		Sender:          sender,
		Target:          target,
		Language:        language,
		ChanNum:         channel,
		SkillInLanguage: skill,
		Message:         text,
	}, nil
}

// ── Spawns and combat ──────────────────────────────────────────────

var (
	decodeAnimation = patch.DirectDecode(func(w Animation) emu.Animation {
		return emu.Animation{SpawnID: w.SpawnID, Action: w.Action, Speed: w.Speed}
	})

	decodeDamage = patch.DirectDecode(func(w CombatDamage) emu.CombatDamage {
		return emu.CombatDamage{
			Target:  w.Target,
			Source:  w.Source,
			Type:    w.Type,
			SpellID: uint16(w.SpellID),
			Damage:  w.Damage,
		}
	})

	decodeConsider = patch.DirectDecode(func(w Consider) emu.Consider {
		return emu.Consider{
			PlayerID: w.PlayerID,
			TargetID: w.TargetID,
			Faction:  w.Faction,
			Level:    w.Level,
		}
	})
)

// ── Spells ─────────────────────────────────────────────────────────

var (
	decodeCastSpell = patch.DirectDecode(func(w CastSpell) emu.CastSpell {
		slot := w.Slot
		if slot == CastSlotItemClient {
			slot = CastSlotItemServer
		}
		return emu.CastSpell{
			Slot:          slot,
			SpellID:       w.SpellID,
			InventorySlot: serverSlot(w.InventorySlot),
			TargetID:      w.TargetID,
			Y:             w.Y,
			X:             w.X,
			Z:             w.Z,
		}
	})

	// Short buffs start at a higher slot on this client.
	decodeBuffRemoveRequest = patch.DirectDecode(func(w BuffRemoveRequest) emu.BuffRemoveRequest {
		slot := w.SlotID
		if slot >= ShortBuffClientBegin {
			slot -= BuffSlotShift
		}
		return emu.BuffRemoveRequest{SlotID: slot, EntityID: w.EntityID}
	})

	decodeLoadSpellSet = patch.DirectDecode(func(w LoadSpellSet) emu.LoadSpellSet {
		var m emu.LoadSpellSet
		for i, spell := range w.Spell {
			if spell == 0 {
				spell = emptySpellGem
			}
			m.Spell[i] = spell
		}
		return m
	})
)
