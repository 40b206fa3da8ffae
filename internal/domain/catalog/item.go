package catalog

// Item is a unit of reference data: anything that can be produced, consumed,
// pulled through the global pool, or sold. Items are immutable during a solve.
type Item struct {
	ID            string
	Name          string
	Price         float64 // selling price per unit; 0 means not sellable
	IsRawResource bool

	// BaseProductionRate caps how fast a raw resource can be extracted, in
	// units per minute. 0 means unlimited.
	BaseProductionRate float64
}

// Sellable reports whether the item has a positive sale price.
func (i *Item) Sellable() bool {
	return i.Price > 0
}

// Machine is the hardware a recipe runs on. Area is the optional footprint
// used for zone area limits (0 = unknown, exempt from area accounting).
type Machine struct {
	ID          string
	Name        string
	Description string
	Area        float64
}
