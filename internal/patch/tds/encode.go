package tds

import (
	"fmt"

	"github.com/eqgo/server/internal/emu"
	"github.com/eqgo/server/internal/net/packet"
	"github.com/eqgo/server/internal/patch"
	"go.uber.org/zap"
)

// formattedMessageArgs is the most arguments the client reads.
const formattedMessageArgs = 9

func one(op emu.Opcode, data []byte) []patch.Outgoing {
	return []patch.Outgoing{{Op: op, Data: data}}
}

// expect returns msg as T. Used by variable-length translators that cannot
// reinterpret canonical bytes.
func expect[T emu.Message](op emu.Opcode, msg emu.Message) (T, error) {
	v, ok := msg.(T)
	if !ok {
		var zero T
		return zero, patch.WrongMessage(op, msg)
	}
	return v, nil
}

func clientSlot(s uint32) ItemSlot { return ToClientSlot(s, ContextInventory) }

// ── Items ──────────────────────────────────────────────────────────

func (t *translator) encodeCharInventory(op emu.Opcode, msg emu.Message) ([]patch.Outgoing, error) {
	inv, err := expect[emu.CharInventory](op, msg)
	if err != nil {
		return nil, err
	}

	w := packet.NewWriter()
	if len(inv.Items) == 0 {
		w.WriteDU(0)
		return one(op, w.Bytes()), nil
	}

	records := packet.NewWriter()
	var count uint32
	for _, e := range inv.Items {
		if err := Serialize(records, e.Item, e.Slot, 0, emu.ItemPacketCharInventory); err != nil {
			t.log.Warn("inventory item skipped",
				zap.Uint32("slot", e.Slot),
				zap.Error(err),
			)
			continue
		}
		count++
	}
	w.WriteDU(count)
	w.WriteBytes(records.Bytes())
	return one(op, w.Bytes()), nil
}

func (t *translator) encodeItemPacket(op emu.Opcode, msg emu.Message) ([]patch.Outgoing, error) {
	p, err := expect[emu.ItemPacket](op, msg)
	if err != nil {
		return nil, err
	}
	w := packet.NewWriter()
	w.WriteDU(uint32(p.PacketType))
	if err := Serialize(w, p.Item, p.Slot, 0, p.PacketType); err != nil {
		return nil, fmt.Errorf("%s slot %d: %w", op, p.Slot, err)
	}
	return one(op, w.Bytes()), nil
}

var (
	encodeMoveItem = patch.DirectEncode(func(m emu.MoveItem) MoveItem {
		return MoveItem{
			FromSlot:      clientSlot(m.FromSlot),
			ToSlot:        clientSlot(m.ToSlot),
			NumberInStack: m.NumberInStack,
		}
	})

	encodeDeleteItem = patch.DirectEncode(func(m emu.DeleteItem) DeleteItem {
		return DeleteItem{
			FromSlot:      clientSlot(m.FromSlot),
			ToSlot:        clientSlot(m.ToSlot),
			NumberInStack: m.NumberInStack,
		}
	})

	encodeLootItem = patch.DirectEncode(func(m emu.LootingItem) LootingItem {
		return LootingItem{
			Lootee:   m.Lootee,
			Looter:   m.Looter,
			SlotID:   uint16(ToClientCorpseSlot(m.SlotID)),
			AutoLoot: m.AutoLoot,
		}
	})

	encodeItemVerifyReply = patch.DirectEncode(func(m emu.ItemVerifyReply) ItemVerifyReply {
		return ItemVerifyReply{Slot: clientSlot(m.Slot), Spell: m.Spell, Target: m.Target}
	})

	encodeTributeItem = patch.DirectEncode(func(m emu.TributeItem) TributeItem {
		return TributeItem{
			Slot:            clientSlot(m.Slot),
			Quantity:        m.Quantity,
			TributeMasterID: m.TributeMasterID,
			TributePoints:   m.TributePoints,
		}
	})

	encodeApplyPoison = patch.DirectEncode(func(m emu.ApplyPoison) ApplyPoison {
		return ApplyPoison{InventorySlot: ToClientMainInvSlot(m.InventorySlot), Success: m.Success}
	})

	encodeRecipeAutoCombine = patch.DirectEncode(func(m emu.RecipeAutoCombine) RecipeAutoCombine {
		return RecipeAutoCombine{
			ObjectType:    m.ObjectType,
			SomeID:        m.SomeID,
			ContainerSlot: clientSlot(m.ContainerSlot),
			UnknownSlot:   ItemSlot{Type: TypeGuildTribute, Main: invalid, Sub: invalid, Aug: invalid},
			RecipeID:      m.RecipeID,
			ReplyCode:     m.ReplyCode,
		}
	})
)

// ── Merchants ──────────────────────────────────────────────────────

var (
	encodeShopRequest = patch.DirectEncode(func(m emu.MerchantClick) MerchantClick {
		return MerchantClick{
			NPCID:     m.NPCID,
			PlayerID:  m.PlayerID,
			Command:   m.Command,
			Rate:      m.Rate,
			Unknown01: shopRequestUnknown1,
			Unknown02: shopRequestUnknown2,
		}
	})

	encodeShopPlayerBuy = patch.DirectEncode(func(m emu.MerchantSell) MerchantSell {
		return MerchantSell{
			NPCID:    m.NPCID,
			PlayerID: m.PlayerID,
			ItemSlot: m.ItemSlot,
			Quantity: m.Quantity,
			Price:    m.Price,
		}
	})

	encodeShopPlayerSell = patch.DirectEncode(func(m emu.MerchantPurchase) MerchantPurchase {
		return MerchantPurchase{
			NPCID:    m.NPCID,
			ItemSlot: ToClientMainInvSlot(m.ItemSlot),
			Quantity: m.Quantity,
			Price:    m.Price,
		}
	})

	encodeAdventureMerchantSell = patch.DirectEncode(func(m emu.AdventureSell) AdventureSell {
		return AdventureSell{
			Unknown000: 1,
			NPCID:      m.NPCID,
			Slot:       ToClientMainInvSlot(m.Slot),
			Charges:    m.Charges,
			SellPrice:  m.SellPrice,
		}
	})

	encodeAltCurrencySell = patch.DirectEncode(func(m emu.AltCurrencySellItem) AltCurrencySellItem {
		return AltCurrencySellItem{
			MerchantEntityID: m.MerchantEntityID,
			SlotID:           ToClientMainInvSlot(m.SlotID),
			Charges:          m.Charges,
			Cost:             m.Cost,
		}
	})
)

// encodeTraderShop handles the three trader shop layouts that share one
// opcode. Raw messages are told apart by their canonical size.
func (t *translator) encodeTraderShop(op emu.Opcode, msg emu.Message) ([]patch.Outgoing, error) {
	var out any
	switch m := msg.(type) {
	case emu.TraderClick:
		out = &TraderClick{Code: traderClickCode, TraderID: m.TraderID, Approval: m.Approval}
	case emu.BazaarWelcome:
		out = &BazaarWelcome{
			Code:     m.Action,
			EntityID: m.EntityID,
			Traders:  m.Traders,
			Items:    m.Items,
			Traders2: m.Traders,
			Items2:   m.Items,
		}
		t.log.Debug("trader shop welcome",
			zap.Uint32("code", m.Action),
			zap.Uint32("traders", m.Traders),
			zap.Uint32("items", m.Items),
		)
	case emu.TraderBuy:
		b := &TraderBuy{
			Action:      m.Action,
			TraderID:    m.TraderID,
			ItemName:    m.ItemName,
			ItemID:      m.ItemID,
			AlreadySold: m.AlreadySold,
			Price:       m.Price,
			Quantity:    m.Quantity,
		}
		copy(b.SerialNumber[:], fmt.Sprintf("%016d", m.ItemID))
		out = b
		t.log.Debug("trader shop buy",
			zap.Uint32("action", m.Action),
			zap.Uint32("trader", m.TraderID),
			zap.Uint32("item", m.ItemID),
			zap.Uint32("quantity", m.Quantity),
		)
	case emu.Raw:
		typed, err := traderShopFromRaw(op, m.Data)
		if err != nil {
			return nil, err
		}
		return t.encodeTraderShop(op, typed)
	default:
		return nil, patch.WrongMessage(op, msg)
	}

	data, err := patch.EncodeFixed(out)
	if err != nil {
		return nil, err
	}
	return one(op, data), nil
}

func traderShopFromRaw(op emu.Opcode, data []byte) (emu.Message, error) {
	switch len(data) {
	case sizeOf[emu.TraderClick]():
		return patch.As[emu.TraderClick](op, emu.Raw{Op: op, Data: data})
	case sizeOf[emu.BazaarWelcome]():
		return patch.As[emu.BazaarWelcome](op, emu.Raw{Op: op, Data: data})
	case sizeOf[emu.TraderBuy]():
		return patch.As[emu.TraderBuy](op, emu.Raw{Op: op, Data: data})
	}
	return nil, fmt.Errorf("%s: %w (%d bytes)", op, patch.ErrUnknownSize, len(data))
}

// ── Chat ───────────────────────────────────────────────────────────

func (t *translator) encodeChannelMessage(op emu.Opcode, msg emu.Message) ([]patch.Outgoing, error) {
	m, err := expect[emu.ChannelMessage](op, msg)
	if err != nil {
		return nil, err
	}
	w := packet.NewWriter()
	w.WriteS(m.Sender)
	w.WriteS(m.Target)
	w.WriteDU(0)
	w.WriteDU(m.Language)
	w.WriteDU(m.ChanNum)
	w.WriteDU(0)
	w.WriteC(0)
	w.WriteDU(m.SkillInLanguage)
	w.WriteS(t.links.ToClient(m.Message))
	w.WriteDU(0)
	w.WriteDU(0)
	w.WriteDU(0)
	w.WriteH(0)
	w.WriteC(0)
	return one(op, w.Bytes()), nil
}

func (t *translator) encodeSpecialMesg(op emu.Opcode, msg emu.Message) ([]patch.Outgoing, error) {
	m, err := expect[emu.SpecialMesg](op, msg)
	if err != nil {
		return nil, err
	}
	w := packet.NewWriter()
	w.WriteBytes(m.Header[:])
	w.WriteDU(m.MsgType)
	w.WriteDU(m.TargetSpawnID)
	w.WriteS(m.Sayer)
	w.WriteBytes(make([]byte, 12))
	w.WriteS(t.links.ToClient(m.Message))
	return one(op, w.Bytes()), nil
}

func (t *translator) encodeFormattedMessage(op emu.Opcode, msg emu.Message) ([]patch.Outgoing, error) {
	m, err := expect[emu.FormattedMessage](op, msg)
	if err != nil {
		return nil, err
	}
	w := packet.NewWriter()
	w.WriteDU(m.Unknown0)
	w.WriteDU(m.StringID)
	w.WriteDU(m.Type)
	for i, arg := range m.Args {
		// The argument list ends at the first empty string.
		if i == formattedMessageArgs || arg == "" {
			break
		}
		w.WriteS(t.links.ToClient(arg))
	}
	w.WriteC(0)
	return one(op, w.Bytes()), nil
}

// ── Spawns and combat ──────────────────────────────────────────────

// encodeSpawnAppearance sends size changes as OP_ChangeSize; every other
// appearance goes out unchanged.
func encodeSpawnAppearance(op emu.Opcode, msg emu.Message) ([]patch.Outgoing, error) {
	m, err := patch.As[emu.SpawnAppearance](op, msg)
	if err != nil {
		return nil, err
	}
	if m.Type != emu.AppearanceSize {
		data, err := patch.EncodeFixed(&m)
		if err != nil {
			return nil, err
		}
		return one(op, data), nil
	}
	cs := ChangeSize{
		EntityID:  uint32(m.SpawnID),
		Size:      float32(m.Parameter),
		Unknown12: 1.0,
	}
	data, err := patch.EncodeFixed(&cs)
	if err != nil {
		return nil, err
	}
	return one(emu.OpChangeSize, data), nil
}

var (
	encodeAnimation = patch.DirectEncode(func(m emu.Animation) Animation {
		return Animation{SpawnID: m.SpawnID, Action: m.Action, Speed: m.Speed}
	})

	encodeHPUpdate = patch.DirectEncode(func(m emu.SpawnHPUpdate) SpawnHPUpdate {
		return SpawnHPUpdate{SpawnID: m.SpawnID, CurHP: m.CurHP, MaxHP: m.MaxHP}
	})

	encodeManaChange = patch.DirectEncode(func(m emu.ManaChange) ManaChange {
		return ManaChange{
			NewMana:   m.NewMana,
			Stamina:   m.Stamina,
			SpellID:   m.SpellID,
			Unknown16: -1,
		}
	})

	encodeDamage = patch.DirectEncode(func(m emu.CombatDamage) CombatDamage {
		return CombatDamage{
			Target:  m.Target,
			Source:  m.Source,
			Type:    m.Type,
			SpellID: uint32(m.SpellID),
			Damage:  m.Damage,
			Force:   m.Force,
		}
	})

	encodeConsider = patch.DirectEncode(func(m emu.Consider) Consider {
		return Consider{
			PlayerID: m.PlayerID,
			TargetID: m.TargetID,
			Faction:  m.Faction,
			Level:    m.Level,
			PVPCon:   m.PVPCon,
		}
	})

	encodeDeleteSpawn = patch.DirectEncode(func(m emu.DeleteSpawn) DeleteSpawn {
		return DeleteSpawn{SpawnID: m.SpawnID, Unknown04: deleteSpawnObserved}
	})

	encodeStun = patch.DirectEncode(func(m emu.Stun) Stun {
		return Stun{Duration: m.Duration, Unknown005: stunUnknown005, Unknown006: stunUnknown006}
	})

	encodeSkillUpdate = patch.DirectEncode(func(m emu.SkillUpdate) SkillUpdate {
		return SkillUpdate{
			SkillID:   m.SkillID,
			Value:     m.Value,
			Unknown08: 1,
			Unknown09: 80,
			Unknown10: 136,
			Unknown11: 54,
		}
	})
)

// ── Spells ─────────────────────────────────────────────────────────

var encodeCastSpell = patch.DirectEncode(func(m emu.CastSpell) CastSpell {
	slot := m.Slot
	if slot == CastSlotItemServer {
		slot = CastSlotItemClient
	}
	return CastSpell{
		Slot:          slot,
		SpellID:       m.SpellID,
		InventorySlot: clientSlot(m.InventorySlot),
		TargetID:      m.TargetID,
	}
})
