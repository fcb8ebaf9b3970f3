package tds

import (
	"errors"
	"fmt"

	"github.com/eqgo/server/internal/emu"
	"github.com/eqgo/server/internal/item"
	"github.com/eqgo/server/internal/net/packet"
)

// MaxItemDepth bounds container nesting in a serialized item.
const MaxItemDepth = 8

var (
	ErrNilItem     = errors.New("nil item instance")
	ErrItemTooDeep = errors.New("item nesting too deep")
)

const (
	chargesUnlimited = 0xFFFFFFFF
	chargesClampFrom = 254
	maxClientLevel   = 100
	ornamentPrefix   = "IT"
)

// SerializeItem returns the client record for inst placed at slot.
func SerializeItem(inst *item.Instance, slot uint32, purpose emu.ItemPacketType) ([]byte, error) {
	w := packet.NewWriter()
	if err := Serialize(w, inst, slot, 0, purpose); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Serialize appends the record for inst and all of its sub-items to w.
// Nothing is appended when any part of the tree fails.
func Serialize(w *packet.Writer, inst *item.Instance, slot uint32, depth uint8, purpose emu.ItemPacketType) error {
	if inst == nil || inst.Item == nil {
		return ErrNilItem
	}
	if depth > MaxItemDepth {
		return fmt.Errorf("serialize item %d: %w", inst.Item.ID, ErrItemTooDeep)
	}

	rec := packet.NewWriter()
	d := inst.Item
	stackable := inst.IsStackable()

	ctx := ContextFor(purpose)
	if depth > 0 {
		// Bag contents always live in possessions coordinates, whatever
		// window the bag itself is shown in.
		ctx = ContextInventory
	}
	hdr := header(inst, slot, ctx)
	if err := rec.WriteStruct(&hdr); err != nil {
		return err
	}
	if d.EvolvingLevel > 0 {
		evo := evolvingItem{
			EvoLevel:    int32(d.EvolvingLevel),
			Progress:    evolveProgress,
			Activated:   1,
			EvoMaxLevel: evolveMaxLevel,
		}
		if err := rec.WriteStruct(&evo); err != nil {
			return err
		}
	}

	var ornIcon, heroModel uint32
	if inst.OrnamentationIDFile != 0 && inst.OrnamentationIcon != 0 {
		name := fmt.Sprintf("%s%d", ornamentPrefix, inst.OrnamentationIDFile)
		rec.WriteS(name) // main hand
		rec.WriteS(name) // off hand
		ornIcon = inst.OrnamentationIcon
		heroModel = inst.HeroModel(emu.MaterialFromSlot(slot))
	} else {
		rec.WriteS("")
		rec.WriteS("")
	}

	fin := itemHeaderFinish{
		OrnamentIcon:      ornIcon,
		Unknowna1:         -1,
		OrnamentHeroModel: heroModel,
		Unknowna4:         -1,
		ItemClass:         d.ItemClass,
	}
	if err := rec.WriteStruct(&fin); err != nil {
		return err
	}

	rec.WriteS(d.Name)
	rec.WriteS(d.Lore)
	rec.WriteS(d.IDFile)
	rec.WriteC(0)

	body := itemBodyOf(d)
	if err := rec.WriteStruct(&body); err != nil {
		return err
	}
	rec.WriteS(d.CharmFile)

	sec := secondaryBodyOf(d)
	if err := rec.WriteStruct(&sec); err != nil {
		return err
	}
	rec.WriteS(d.Filename)

	ter := tertiaryBodyOf(d, stackable)
	if err := rec.WriteStruct(&ter); err != nil {
		return err
	}

	if err := writeEffects(rec, d); err != nil {
		return err
	}

	quat := quaternaryBodyOf(d)
	quat.SubitemCount = uint32(inst.Count())
	if err := rec.WriteStruct(&quat); err != nil {
		return err
	}

	for x, sub := range inst.Contents {
		if sub == nil {
			continue
		}
		rec.WriteDU(uint32(x))
		if err := Serialize(rec, sub, emu.BagSlot(slot, x), depth+1, purpose); err != nil {
			return fmt.Errorf("sub-item %d of %d: %w", x, d.ID, err)
		}
	}

	w.WriteBytes(rec.Bytes())
	return nil
}

func header(inst *item.Instance, slot uint32, ctx SlotContext) itemHeader {
	d := inst.Item
	stackable := inst.IsStackable()

	charges := uint32(inst.Charges)
	if !stackable && inst.Charges > chargesClampFrom {
		charges = chargesUnlimited
	}

	h := itemHeader{
		Price:        inst.Price,
		LastCastTime: inst.RecastTimestamp,
	}
	copy(h.ItemID[:], fmt.Sprintf("%016d", d.ID))

	if stackable {
		h.StackSize = charges
		if d.MaxCharges != 0 {
			h.Charges = 1
		}
	} else {
		h.StackSize = 1
		h.Charges = charges
	}

	if inst.MerchantSlot != 0 {
		// Merchant listings are keyed by the merchant's own slot.
		h.SlotType = uint8(TypeMerchant)
		h.MainSlot = uint16(inst.MerchantSlot)
		h.SubSlot = 0xffff
		h.AugSlot = 0xffff
		h.MerchantSlot = uint32(inst.MerchantCount)
		h.InstanceID = inst.MerchantSlot
	} else {
		c := ToClientSlot(slot, ctx)
		h.SlotType = uint8(c.Type)
		h.MainSlot = uint16(c.Main)
		h.SubSlot = uint16(c.Sub)
		h.AugSlot = uint16(c.Aug)
		h.MerchantSlot = 1
		h.InstanceID = uint32(inst.SerialNumber)
	}

	if inst.Scaling {
		h.ScaledValue = inst.Exp / 100
	}
	if inst.Attuned {
		h.InstNoDrop = 1
	}
	if d.EvolvingLevel > 0 {
		h.IsEvolving = 1
	}
	return h
}

func itemBodyOf(d *item.Data) itemBody {
	b := itemBody{
		ID:              d.ID,
		Weight:          d.Weight,
		NoRent:          d.NoRent,
		NoDrop:          d.NoDrop,
		Attune:          d.Attuneable,
		Size:            d.Size,
		Slots:           d.Slots,
		Price:           d.Price,
		Icon:            d.Icon,
		Unknown1:        1,
		Unknown2:        1,
		BenefitFlag:     d.BenefitFlag,
		Tradeskills:     boolByte(d.Tradeskills),
		CR:              d.CR,
		DR:              d.DR,
		PR:              d.PR,
		MR:              d.MR,
		FR:              d.FR,
		SVCorruption:    d.SVCorruption,
		AStr:            d.AStr,
		ASta:            d.ASta,
		AAgi:            d.AAgi,
		ADex:            d.ADex,
		ACha:            d.ACha,
		AInt:            d.AInt,
		AWis:            d.AWis,
		HP:              d.HP,
		Mana:            d.Mana,
		Endur:           d.Endur,
		AC:              d.AC,
		Regen:           d.Regen,
		ManaRegen:       d.ManaRegen,
		EndRegen:        d.EnduranceRegen,
		Classes:         d.Classes,
		Races:           d.Races,
		Deity:           d.Deity,
		SkillModValue:   d.SkillModValue,
		SkillModMax:     0xffffffff,
		SkillModType:    d.SkillModType,
		BaneDmgRace:     d.BaneDmgRace,
		BaneDmgBody:     d.BaneDmgBody,
		BaneDmgRaceAmt:  d.BaneDmgRaceAmt,
		BaneDmgAmt:      d.BaneDmgAmt,
		Magic:           boolByte(d.Magic),
		CastTime_:       d.CastTime_,
		ReqLevel:        uint32(min(d.ReqLevel, maxClientLevel)),
		RecLevel:        uint32(min(d.RecLevel, maxClientLevel)),
		RecSkill:        d.RecSkill,
		BardType:        d.BardType,
		BardValue:       d.BardValue,
		Light:           d.Light,
		Delay:           d.Delay,
		ElemDmgType:     d.ElemDmgType,
		ElemDmgAmt:      d.ElemDmgAmt,
		Range:           d.Range,
		Damage:          d.Damage,
		Color:           d.Color,
		ItemType:        d.ItemType,
		Material:        d.Material,
		EliteMaterial:   d.EliteMaterial,
		HerosForgeModel: d.HerosForgeModel,
		SellRate:        d.SellRate,
		CombatEffects:   d.CombatEffects,
		Shielding:       d.Shielding,
		StunResist:      d.StunResist,
		StrikeThrough:   d.StrikeThrough,
		ExtraDmgSkill:   d.ExtraDmgSkill,
		ExtraDmgAmt:     d.ExtraDmgAmt,
		SpellShield:     d.SpellShield,
		Avoidance:       d.Avoidance,
		Accuracy:        d.Accuracy,
		CharmFileID:     d.CharmFileID,
		FactionMod1:     d.Factions[0].Mod,
		FactionMod2:     d.Factions[1].Mod,
		FactionMod3:     d.Factions[2].Mod,
		FactionMod4:     d.Factions[3].Mod,
		FactionAmt1:     d.Factions[0].Amt,
		FactionAmt2:     d.Factions[1].Amt,
		FactionAmt3:     d.Factions[2].Amt,
		FactionAmt4:     d.Factions[3].Amt,
	}
	return b
}

func secondaryBodyOf(d *item.Data) itemSecondaryBody {
	s := itemSecondaryBody{
		AugType:          d.AugType,
		AugRestrict2:     -1,
		AugRestrict:      d.AugRestrict,
		LDoNPointType:    d.PointType,
		LDoNTheme:        d.LDoNTheme,
		LDoNPrice:        d.LDoNPrice,
		LDoNSellBackRate: d.LDoNSellBackRate,
		LDoNSold:         d.LDoNSold,
		BagType:          d.BagType,
		BagSlots:         d.BagSlots,
		BagSize:          d.BagSize,
		WReduction:       d.BagWR,
		Book:             d.Book,
		BookType:         uint8(d.BookType),
	}
	for i := range s.AugSlots {
		s.AugSlots[i] = augSlotDesc{
			Type:    uint32(d.AugSlotType[i]),
			Visible: d.AugSlotVisible[i],
			Unknown: d.AugSlotUnk2[i],
		}
	}
	return s
}

func tertiaryBodyOf(d *item.Data, stackable bool) itemTertiaryBody {
	t := itemTertiaryBody{
		LoreGroup:         d.LoreGroup,
		Artifact:          boolByte(d.ArtifactFlag),
		SummonedFlag:      boolByte(d.SummonedFlag),
		Favor:             d.Favor,
		FVNoDrop:          boolByte(d.FVNoDrop),
		DotShield:         d.DotShielding,
		Atk:               d.Attack,
		Haste:             d.Haste,
		DamageShield:      d.DamageShield,
		GuildFavor:        d.GuildFavor,
		AugDistil:         d.AugDistiller,
		Unknown3:          -1,
		NoPet:             boolByte(d.NoPet),
		PotionBeltEnabled: boolByte(d.PotionBelt),
		PotionBeltSlots:   d.PotionBeltSlots,
		NoTransfer:        boolByte(d.NoTransfer),
		ExpendableArrow:   d.ExpendableArrow,
	}
	if stackable {
		t.StackSize = uint32(d.StackSize)
	}
	return t
}

// writeEffects writes the six effect blocks, each followed by its name and
// an unknown int32.
func writeEffects(w *packet.Writer, d *item.Data) error {
	click := clickEffect{
		Effect:     d.Click.Effect,
		Level2:     d.Click.Level2,
		Type:       d.Click.Type,
		Level:      d.Click.Level,
		MaxCharges: int32(d.MaxCharges),
		CastTime:   d.CastTime,
		Recast:     d.RecastDelay,
		RecastType: d.RecastType,
	}
	proc := procEffect{
		Effect:   d.Proc.Effect,
		Level2:   d.Proc.Level2,
		Type:     d.Proc.Type,
		Level:    d.Proc.Level,
		ProcRate: d.ProcRate,
	}
	blocks := []struct {
		v    any
		name string
	}{
		{&click, d.Click.Name},
		{&proc, d.Proc.Name},
		{wornOf(d.Worn), d.Worn.Name},
		{wornOf(d.Focus), d.Focus.Name},
		{wornOf(d.Scroll), d.Scroll.Name},
		// The client rejects a bard effect name.
		{wornOf(d.Bard), ""},
	}
	for _, b := range blocks {
		if err := w.WriteStruct(b.v); err != nil {
			return err
		}
		w.WriteS(b.name)
		w.WriteD(0)
	}
	return nil
}

func wornOf(e item.Effect) *wornEffect {
	return &wornEffect{Effect: e.Effect, Level2: e.Level2, Type: e.Type, Level: e.Level}
}

func quaternaryBodyOf(d *item.Data) itemQuaternaryBody {
	return itemQuaternaryBody{
		ScriptFileID:   d.ScriptFileID,
		QuestItem:      boolByte(d.QuestItemFlag),
		Purity:         d.Purity,
		BackstabDmg:    d.BackstabDmg,
		DSMitigation:   d.DSMitigation,
		HeroicStr:      d.HeroicStr,
		HeroicInt:      d.HeroicInt,
		HeroicWis:      d.HeroicWis,
		HeroicAgi:      d.HeroicAgi,
		HeroicDex:      d.HeroicDex,
		HeroicSta:      d.HeroicSta,
		HeroicCha:      d.HeroicCha,
		HeroicMR:       d.HeroicMR,
		HeroicFR:       d.HeroicFR,
		HeroicCR:       d.HeroicCR,
		HeroicDR:       d.HeroicDR,
		HeroicPR:       d.HeroicPR,
		HeroicSVCorrup: d.HeroicSVCorrup,
		HealAmt:        d.HealAmt,
		SpellDmg:       d.SpellDmg,
		Clairvoyance:   d.Clairvoyance,
		Unknown28:      -1,
		Unknown30:      -1,
		Unknown39:      1,
	}
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
