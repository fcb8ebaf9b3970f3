package emu

import "fmt"

// ItemPacketType tells the client which window an item record belongs to.
type ItemPacketType uint32

const (
	ItemPacketViewLink       ItemPacketType = 0x00
	ItemPacketMerchant       ItemPacketType = 0x64
	ItemPacketTradeView      ItemPacketType = 0x65
	ItemPacketLoot           ItemPacketType = 0x66
	ItemPacketTrade          ItemPacketType = 0x67
	ItemPacketCharInventory  ItemPacketType = 0x69
	ItemPacketLimbo          ItemPacketType = 0x6A
	ItemPacketWorldContainer ItemPacketType = 0x6B
	ItemPacketTributeItem    ItemPacketType = 0x6C
	ItemPacketGuildTribute   ItemPacketType = 0x6D
	ItemPacketCharmUpdate    ItemPacketType = 0x6E
	ItemPacketInvalid        ItemPacketType = 0xFF
)

func (t ItemPacketType) String() string {
	switch t {
	case ItemPacketViewLink:
		return "ViewLink"
	case ItemPacketMerchant:
		return "Merchant"
	case ItemPacketTradeView:
		return "TradeView"
	case ItemPacketLoot:
		return "Loot"
	case ItemPacketTrade:
		return "Trade"
	case ItemPacketCharInventory:
		return "CharInventory"
	case ItemPacketLimbo:
		return "Limbo"
	case ItemPacketWorldContainer:
		return "WorldContainer"
	case ItemPacketTributeItem:
		return "TributeItem"
	case ItemPacketGuildTribute:
		return "GuildTribute"
	case ItemPacketCharmUpdate:
		return "CharmUpdate"
	case ItemPacketInvalid:
		return "Invalid"
	default:
		return fmt.Sprintf("ItemPacketType(%#x)", uint32(t))
	}
}
