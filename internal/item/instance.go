package item

import "fmt"

// ContainerSize is the number of sub-slots any instance can hold.
const ContainerSize = 10

// Instance is one concrete item, possibly holding further instances.
type Instance struct {
	Item *Data

	Charges         int32
	Price           uint32
	MerchantSlot    uint32
	MerchantCount   int32
	Scaling         bool
	Exp             uint32
	SerialNumber    int32
	RecastTimestamp uint32
	Attuned         bool

	OrnamentationIDFile uint32
	OrnamentationIcon   uint32
	OrnamentHeroModel   uint32

	Contents [ContainerSize]*Instance
}

// NewInstance creates an instance of d with a fresh serial number.
func NewInstance(d *Data, charges int32) *Instance {
	return &Instance{
		Item:         d,
		Charges:      charges,
		SerialNumber: NextSerial(),
	}
}

// IsStackable reports whether the instance's template stacks.
func (in *Instance) IsStackable() bool {
	return in.Item != nil && in.Item.Stackable
}

// Get returns the sub-item at idx, or nil.
func (in *Instance) Get(idx int) *Instance {
	if idx < 0 || idx >= ContainerSize {
		return nil
	}
	return in.Contents[idx]
}

// Put places sub at idx inside the instance.
func (in *Instance) Put(idx int, sub *Instance) error {
	if idx < 0 || idx >= ContainerSize {
		return fmt.Errorf("put item: index %d out of range", idx)
	}
	if sub == in {
		return fmt.Errorf("put item: instance cannot contain itself")
	}
	in.Contents[idx] = sub
	return nil
}

// Count returns how many sub-slots are populated.
func (in *Instance) Count() int {
	n := 0
	for _, sub := range in.Contents {
		if sub != nil {
			n++
		}
	}
	return n
}

// HeroModel returns the hero forge model id shown for the given material
// slot, or 0 when the instance has no ornament model.
func (in *Instance) HeroModel(material int) uint32 {
	if in.OrnamentHeroModel == 0 || material < 0 {
		return 0
	}
	// Weapons carry the bare model id; armor appends the material slot.
	if material == 7 || material == 8 {
		return in.OrnamentHeroModel
	}
	return in.OrnamentHeroModel*100 + uint32(material)
}
