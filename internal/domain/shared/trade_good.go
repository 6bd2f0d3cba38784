package shared

// TradeGood identifies a tradable good by its market symbol
type TradeGood string

const (
	TradeGoodFuel      TradeGood = "FUEL"
	TradeGoodIronOre   TradeGood = "IRON_ORE"
	TradeGoodCopperOre TradeGood = "COPPER_ORE"
	TradeGoodAluminum  TradeGood = "ALUMINUM_ORE"
	TradeGoodIce       TradeGood = "ICE_WATER"
	TradeGoodSilicon   TradeGood = "SILICON_CRYSTALS"
	TradeGoodQuartz    TradeGood = "QUARTZ_SAND"
)

func (t TradeGood) String() string {
	return string(t)
}
