package item

// Item classes.
const (
	ClassCommon    uint8 = 0
	ClassContainer uint8 = 1
	ClassBook      uint8 = 2
)

// Effect is one of the spell effects an item can carry.
type Effect struct {
	Effect int32  `yaml:"effect"`
	Level2 uint8  `yaml:"level2"`
	Type   uint8  `yaml:"type"`
	Level  uint8  `yaml:"level"`
	Name   string `yaml:"name"`
}

// FactionMod is a faction adjustment granted while the item is worn.
type FactionMod struct {
	Mod int32 `yaml:"mod"`
	Amt int32 `yaml:"amt"`
}

// Data is an immutable item template. Field names follow the item database
// columns so templates can be loaded from YAML or SQL without remapping.
type Data struct {
	ID        uint32 `yaml:"id"`
	Name      string `yaml:"name"`
	Lore      string `yaml:"lore"`
	IDFile    string `yaml:"idfile"`
	CharmFile string `yaml:"charm_file"`
	Filename  string `yaml:"filename"`
	ItemClass uint8  `yaml:"item_class"`
	Stackable bool   `yaml:"stackable"`
	StackSize int32  `yaml:"stack_size"`

	Weight      int32  `yaml:"weight"`
	NoRent      uint8  `yaml:"no_rent"`
	NoDrop      uint8  `yaml:"no_drop"`
	Attuneable  uint8  `yaml:"attuneable"`
	Size        uint8  `yaml:"size"`
	Slots       uint32 `yaml:"slots"`
	Price       uint32 `yaml:"price"`
	Icon        uint32 `yaml:"icon"`
	BenefitFlag int32  `yaml:"benefit_flag"`
	Tradeskills bool   `yaml:"tradeskills"`

	CR           int8 `yaml:"cr"`
	DR           int8 `yaml:"dr"`
	PR           int8 `yaml:"pr"`
	MR           int8 `yaml:"mr"`
	FR           int8 `yaml:"fr"`
	SVCorruption int8 `yaml:"sv_corruption"`
	AStr         int8 `yaml:"astr"`
	ASta         int8 `yaml:"asta"`
	AAgi         int8 `yaml:"aagi"`
	ADex         int8 `yaml:"adex"`
	ACha         int8 `yaml:"acha"`
	AInt         int8 `yaml:"aint"`
	AWis         int8 `yaml:"awis"`

	HP              int32         `yaml:"hp"`
	Mana            int32         `yaml:"mana"`
	Endur           int32         `yaml:"endur"`
	AC              int32         `yaml:"ac"`
	Regen           int32         `yaml:"regen"`
	ManaRegen       int32         `yaml:"mana_regen"`
	EnduranceRegen  int32         `yaml:"endurance_regen"`
	Classes         uint32        `yaml:"classes"`
	Races           uint32        `yaml:"races"`
	Deity           uint32        `yaml:"deity"`
	SkillModValue   int32         `yaml:"skill_mod_value"`
	SkillModType    uint32        `yaml:"skill_mod_type"`
	BaneDmgRace     uint32        `yaml:"bane_dmg_race"`
	BaneDmgBody     uint32        `yaml:"bane_dmg_body"`
	BaneDmgRaceAmt  uint32        `yaml:"bane_dmg_race_amt"`
	BaneDmgAmt      int32         `yaml:"bane_dmg_amt"`
	Magic           bool          `yaml:"magic"`
	CastTime_       int32         `yaml:"casttime_"`
	ReqLevel        uint8         `yaml:"req_level"`
	RecLevel        uint8         `yaml:"rec_level"`
	RecSkill        uint32        `yaml:"rec_skill"`
	BardType        uint32        `yaml:"bard_type"`
	BardValue       int32         `yaml:"bard_value"`
	Light           int8          `yaml:"light"`
	Delay           uint8         `yaml:"delay"`
	ElemDmgType     uint8         `yaml:"elem_dmg_type"`
	ElemDmgAmt      uint8         `yaml:"elem_dmg_amt"`
	Range           uint8         `yaml:"range"`
	Damage          uint32        `yaml:"damage"`
	Color           uint32        `yaml:"color"`
	ItemType        uint8         `yaml:"item_type"`
	Material        uint32        `yaml:"material"`
	EliteMaterial   uint32        `yaml:"elite_material"`
	HerosForgeModel uint32        `yaml:"heros_forge_model"`
	SellRate        float32       `yaml:"sell_rate"`
	CombatEffects   int32         `yaml:"combat_effects"`
	Shielding       int32         `yaml:"shielding"`
	StunResist      int32         `yaml:"stun_resist"`
	StrikeThrough   int32         `yaml:"strike_through"`
	ExtraDmgSkill   uint32        `yaml:"extra_dmg_skill"`
	ExtraDmgAmt     uint32        `yaml:"extra_dmg_amt"`
	SpellShield     int32         `yaml:"spell_shield"`
	Avoidance       int32         `yaml:"avoidance"`
	Accuracy        int32         `yaml:"accuracy"`
	CharmFileID     uint32        `yaml:"charm_file_id"`
	Factions        [4]FactionMod `yaml:"factions"`

	AugType          uint32   `yaml:"aug_type"`
	AugRestrict      uint32   `yaml:"aug_restrict"`
	AugSlotType      [6]uint8 `yaml:"aug_slot_type"`
	AugSlotVisible   [6]uint8 `yaml:"aug_slot_visible"`
	AugSlotUnk2      [6]uint8 `yaml:"aug_slot_unk2"`
	PointType        uint32   `yaml:"point_type"`
	LDoNTheme        uint32   `yaml:"ldon_theme"`
	LDoNPrice        uint32   `yaml:"ldon_price"`
	LDoNSellBackRate uint32   `yaml:"ldon_sellback_rate"`
	LDoNSold         uint32   `yaml:"ldon_sold"`
	BagType          uint8    `yaml:"bag_type"`
	BagSlots         uint8    `yaml:"bag_slots"`
	BagSize          uint8    `yaml:"bag_size"`
	BagWR            uint8    `yaml:"bag_wr"`
	Book             uint8    `yaml:"book"`
	BookType         uint32   `yaml:"book_type"`

	LoreGroup       int32  `yaml:"lore_group"`
	ArtifactFlag    bool   `yaml:"artifact_flag"`
	SummonedFlag    bool   `yaml:"summoned_flag"`
	Favor           uint32 `yaml:"favor"`
	FVNoDrop        bool   `yaml:"fv_no_drop"`
	DotShielding    int32  `yaml:"dot_shielding"`
	Attack          int32  `yaml:"attack"`
	Haste           int32  `yaml:"haste"`
	DamageShield    int32  `yaml:"damage_shield"`
	GuildFavor      uint32 `yaml:"guild_favor"`
	AugDistiller    uint32 `yaml:"aug_distiller"`
	NoPet           bool   `yaml:"no_pet"`
	PotionBelt      bool   `yaml:"potion_belt"`
	PotionBeltSlots uint32 `yaml:"potion_belt_slots"`
	NoTransfer      bool   `yaml:"no_transfer"`
	ExpendableArrow uint16 `yaml:"expendable_arrow"`

	Click       Effect `yaml:"click"`
	MaxCharges  int16  `yaml:"max_charges"`
	CastTime    int32  `yaml:"cast_time"`
	RecastDelay int32  `yaml:"recast_delay"`
	RecastType  int32  `yaml:"recast_type"`
	Proc        Effect `yaml:"proc"`
	ProcRate    int32  `yaml:"proc_rate"`
	Worn        Effect `yaml:"worn"`
	Focus       Effect `yaml:"focus"`
	Scroll      Effect `yaml:"scroll"`
	Bard        Effect `yaml:"bard"`

	ScriptFileID   uint32 `yaml:"script_file_id"`
	QuestItemFlag  bool   `yaml:"quest_item_flag"`
	Purity         uint32 `yaml:"purity"`
	BackstabDmg    uint32 `yaml:"backstab_dmg"`
	DSMitigation   uint32 `yaml:"ds_mitigation"`
	HeroicStr      int32  `yaml:"heroic_str"`
	HeroicInt      int32  `yaml:"heroic_int"`
	HeroicWis      int32  `yaml:"heroic_wis"`
	HeroicAgi      int32  `yaml:"heroic_agi"`
	HeroicDex      int32  `yaml:"heroic_dex"`
	HeroicSta      int32  `yaml:"heroic_sta"`
	HeroicCha      int32  `yaml:"heroic_cha"`
	HeroicMR       int32  `yaml:"heroic_mr"`
	HeroicFR       int32  `yaml:"heroic_fr"`
	HeroicCR       int32  `yaml:"heroic_cr"`
	HeroicDR       int32  `yaml:"heroic_dr"`
	HeroicPR       int32  `yaml:"heroic_pr"`
	HeroicSVCorrup int32  `yaml:"heroic_sv_corrup"`
	HealAmt        int32  `yaml:"heal_amt"`
	SpellDmg       int32  `yaml:"spell_dmg"`
	Clairvoyance   int32  `yaml:"clairvoyance"`

	EvolvingLevel uint8 `yaml:"evolving_level"`
}

// IsContainer reports whether the template is a bag.
func (d *Data) IsContainer() bool {
	return d.ItemClass == ClassContainer
}
