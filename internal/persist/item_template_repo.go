package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/eqgo/server/internal/item"
	"github.com/jackc/pgx/v5"
)

const templateColumns = `id, name, lore, idfile, charm_file, filename, item_class, stackable,
	stack_size, weight, no_rent, no_drop, size, slots, price, icon, classes, races,
	hp, mana, ac, damage, delay, item_type, material, req_level, rec_level,
	bag_type, bag_slots, bag_size, max_charges, click_effect, proc_effect,
	worn_effect, evolving_level, definition`

// ItemTemplateRepo reads and writes item templates.
type ItemTemplateRepo struct {
	db *DB
}

func NewItemTemplateRepo(db *DB) *ItemTemplateRepo {
	return &ItemTemplateRepo{db: db}
}

// templateRow mirrors the column types of item_templates.
type templateRow struct {
	ID, StackSize, Weight, HP, Mana, AC     int32
	Name, Lore, IDFile, CharmFile, Filename string
	Stackable                               bool
	ItemClass, NoRent, NoDrop, Size, Delay  int16
	ItemType, ReqLevel, RecLevel            int16
	BagType, BagSlots, BagSize, MaxCharges  int16
	EvolvingLevel                           int16
	Slots, Price, Icon, Classes, Races      int64
	Damage, Material                        int64
	ClickEffect, ProcEffect, WornEffect     int32
	// Definition is the full template. The flat columns above only index it.
	Definition []byte
}

func newTemplateRow(d *item.Data) (templateRow, error) {
	def, err := json.Marshal(d)
	if err != nil {
		return templateRow{}, fmt.Errorf("encode item template %d: %w", d.ID, err)
	}
	return templateRow{
		ID: int32(d.ID), Name: d.Name, Lore: d.Lore, IDFile: d.IDFile,
		CharmFile: d.CharmFile, Filename: d.Filename,
		ItemClass: int16(d.ItemClass), Stackable: d.Stackable,
		StackSize: d.StackSize, Weight: d.Weight,
		NoRent: int16(d.NoRent), NoDrop: int16(d.NoDrop), Size: int16(d.Size),
		Slots: int64(d.Slots), Price: int64(d.Price), Icon: int64(d.Icon),
		Classes: int64(d.Classes), Races: int64(d.Races),
		HP: d.HP, Mana: d.Mana, AC: d.AC,
		Damage: int64(d.Damage), Delay: int16(d.Delay), ItemType: int16(d.ItemType),
		Material: int64(d.Material), ReqLevel: int16(d.ReqLevel), RecLevel: int16(d.RecLevel),
		BagType: int16(d.BagType), BagSlots: int16(d.BagSlots), BagSize: int16(d.BagSize),
		MaxCharges: d.MaxCharges, EvolvingLevel: int16(d.EvolvingLevel),
		ClickEffect: d.Click.Effect, ProcEffect: d.Proc.Effect, WornEffect: d.Worn.Effect,
		Definition: def,
	}, nil
}

// args returns the row's values in templateColumns order.
func (r *templateRow) args() []any {
	return []any{
		r.ID, r.Name, r.Lore, r.IDFile, r.CharmFile, r.Filename, r.ItemClass, r.Stackable,
		r.StackSize, r.Weight, r.NoRent, r.NoDrop, r.Size, r.Slots, r.Price, r.Icon, r.Classes, r.Races,
		r.HP, r.Mana, r.AC, r.Damage, r.Delay, r.ItemType, r.Material, r.ReqLevel, r.RecLevel,
		r.BagType, r.BagSlots, r.BagSize, r.MaxCharges, r.ClickEffect, r.ProcEffect,
		r.WornEffect, r.EvolvingLevel, r.Definition,
	}
}

func (r *templateRow) dest() []any {
	return []any{
		&r.ID, &r.Name, &r.Lore, &r.IDFile, &r.CharmFile, &r.Filename, &r.ItemClass, &r.Stackable,
		&r.StackSize, &r.Weight, &r.NoRent, &r.NoDrop, &r.Size, &r.Slots, &r.Price, &r.Icon, &r.Classes, &r.Races,
		&r.HP, &r.Mana, &r.AC, &r.Damage, &r.Delay, &r.ItemType, &r.Material, &r.ReqLevel, &r.RecLevel,
		&r.BagType, &r.BagSlots, &r.BagSize, &r.MaxCharges, &r.ClickEffect, &r.ProcEffect,
		&r.WornEffect, &r.EvolvingLevel, &r.Definition,
	}
}

// data rebuilds the template. Rows imported before the definition column
// existed fall back to the flat columns.
func (r *templateRow) data() (*item.Data, error) {
	if def := bytes.TrimSpace(r.Definition); len(def) > 0 && !bytes.Equal(def, []byte("{}")) {
		d := &item.Data{}
		if err := json.Unmarshal(def, d); err != nil {
			return nil, fmt.Errorf("decode item template %d: %w", r.ID, err)
		}
		if d.ID != uint32(r.ID) {
			return nil, fmt.Errorf("decode item template %d: definition has id %d", r.ID, d.ID)
		}
		return d, nil
	}

	d := &item.Data{
		ID:            uint32(r.ID),
		Name:          r.Name,
		Lore:          r.Lore,
		IDFile:        r.IDFile,
		CharmFile:     r.CharmFile,
		Filename:      r.Filename,
		ItemClass:     uint8(r.ItemClass),
		Stackable:     r.Stackable,
		StackSize:     r.StackSize,
		Weight:        r.Weight,
		NoRent:        uint8(r.NoRent),
		NoDrop:        uint8(r.NoDrop),
		Size:          uint8(r.Size),
		Slots:         uint32(r.Slots),
		Price:         uint32(r.Price),
		Icon:          uint32(r.Icon),
		Classes:       uint32(r.Classes),
		Races:         uint32(r.Races),
		HP:            r.HP,
		Mana:          r.Mana,
		AC:            r.AC,
		Damage:        uint32(r.Damage),
		Delay:         uint8(r.Delay),
		ItemType:      uint8(r.ItemType),
		Material:      uint32(r.Material),
		ReqLevel:      uint8(r.ReqLevel),
		RecLevel:      uint8(r.RecLevel),
		BagType:       uint8(r.BagType),
		BagSlots:      uint8(r.BagSlots),
		BagSize:       uint8(r.BagSize),
		MaxCharges:    r.MaxCharges,
		EvolvingLevel: uint8(r.EvolvingLevel),
	}
	d.Click.Effect = r.ClickEffect
	d.Proc.Effect = r.ProcEffect
	d.Worn.Effect = r.WornEffect
	return d, nil
}

// LoadAll returns every template ordered by id.
func (r *ItemTemplateRepo) LoadAll(ctx context.Context) ([]*item.Data, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+templateColumns+` FROM item_templates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query item templates: %w", err)
	}
	defer rows.Close()

	var result []*item.Data
	for rows.Next() {
		var row templateRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("scan item template: %w", err)
		}
		d, err := row.data()
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// Import upserts templates in a single transaction.
func (r *ItemTemplateRepo) Import(ctx context.Context, templates []*item.Data) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, d := range templates {
		row, err := newTemplateRow(d)
		if err != nil {
			return err
		}
		batch.Queue(`INSERT INTO item_templates (`+templateColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			        $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34, $35, $36)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name, lore = EXCLUDED.lore, idfile = EXCLUDED.idfile,
				charm_file = EXCLUDED.charm_file, filename = EXCLUDED.filename,
				item_class = EXCLUDED.item_class, stackable = EXCLUDED.stackable,
				stack_size = EXCLUDED.stack_size, weight = EXCLUDED.weight,
				no_rent = EXCLUDED.no_rent, no_drop = EXCLUDED.no_drop, size = EXCLUDED.size,
				slots = EXCLUDED.slots, price = EXCLUDED.price, icon = EXCLUDED.icon,
				classes = EXCLUDED.classes, races = EXCLUDED.races, hp = EXCLUDED.hp,
				mana = EXCLUDED.mana, ac = EXCLUDED.ac, damage = EXCLUDED.damage,
				delay = EXCLUDED.delay, item_type = EXCLUDED.item_type,
				material = EXCLUDED.material, req_level = EXCLUDED.req_level,
				rec_level = EXCLUDED.rec_level, bag_type = EXCLUDED.bag_type,
				bag_slots = EXCLUDED.bag_slots, bag_size = EXCLUDED.bag_size,
				max_charges = EXCLUDED.max_charges, click_effect = EXCLUDED.click_effect,
				proc_effect = EXCLUDED.proc_effect, worn_effect = EXCLUDED.worn_effect,
				evolving_level = EXCLUDED.evolving_level, definition = EXCLUDED.definition`,
			row.args()...,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("import item templates: %w", err)
	}
	return tx.Commit(ctx)
}
