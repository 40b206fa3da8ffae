package solver

import "fmt"

// VarKind enumerates the variable families of the planning MILP. Variables are
// identified by typed keys instead of encoded name strings, so consumers never
// have to parse identity back out of a name.
type VarKind int

const (
	// VarRecipeAssignment is the machine count running a recipe in a zone.
	VarRecipeAssignment VarKind = iota

	// VarTransfer is the continuous rate of an item pulled from the global
	// pool into a zone.
	VarTransfer

	// VarSend is the continuous rate of an item pushed from a zone into the
	// pool (or sold, when the item has a price).
	VarSend

	// VarLine is the integer count of logistics lines backing a transfer or
	// send. Direction tells which side it caps.
	VarLine

	// VarTargetConsume buys surplus of a targeted sellable item back out of
	// the income account, up to the target rate.
	VarTargetConsume

	// VarTargetSlack absorbs target shortfall at an enormous penalty.
	VarTargetSlack

	// VarPoolRecipe is the zoneless recipe variable of the single-pool
	// theoretical-max baseline model.
	VarPoolRecipe
)

// LineDirection distinguishes the two line families. LineOut lines back
// transfer variables and draw from the zone's output-port budget; LineIn lines
// back send variables and draw from the input-port budget. The pairing is
// deliberate (see planning.Zone) and pinned by tests.
type LineDirection int

const (
	LineOut LineDirection = iota
	LineIn
)

// VarKey identifies one model variable. Unused dimensions stay empty.
type VarKey struct {
	Kind     VarKind
	RecipeID string
	ItemID   string
	ZoneID   string
	Dir      LineDirection
}

func RecipeAssignmentVar(recipeID, zoneID string) VarKey {
	return VarKey{Kind: VarRecipeAssignment, RecipeID: recipeID, ZoneID: zoneID}
}

func TransferVar(itemID, zoneID string) VarKey {
	return VarKey{Kind: VarTransfer, ItemID: itemID, ZoneID: zoneID}
}

func SendVar(itemID, zoneID string) VarKey {
	return VarKey{Kind: VarSend, ItemID: itemID, ZoneID: zoneID}
}

func LineVar(itemID, zoneID string, dir LineDirection) VarKey {
	return VarKey{Kind: VarLine, ItemID: itemID, ZoneID: zoneID, Dir: dir}
}

func TargetConsumeVar(itemID string) VarKey {
	return VarKey{Kind: VarTargetConsume, ItemID: itemID}
}

func TargetSlackVar(itemID string) VarKey {
	return VarKey{Kind: VarTargetSlack, ItemID: itemID}
}

func PoolRecipeVar(recipeID string) VarKey {
	return VarKey{Kind: VarPoolRecipe, RecipeID: recipeID}
}

// Less imposes a total order on variable keys: kind, then recipe, item, zone,
// direction. The solver adapter and the pipeline's greedy passes both iterate
// in this order, which makes solves reproducible for a fixed input.
func (k VarKey) Less(other VarKey) bool {
	if k.Kind != other.Kind {
		return k.Kind < other.Kind
	}
	if k.RecipeID != other.RecipeID {
		return k.RecipeID < other.RecipeID
	}
	if k.ItemID != other.ItemID {
		return k.ItemID < other.ItemID
	}
	if k.ZoneID != other.ZoneID {
		return k.ZoneID < other.ZoneID
	}
	return k.Dir < other.Dir
}

func (k VarKey) String() string {
	switch k.Kind {
	case VarRecipeAssignment:
		return fmt.Sprintf("machines(%s@%s)", k.RecipeID, k.ZoneID)
	case VarTransfer:
		return fmt.Sprintf("transfer(%s->%s)", k.ItemID, k.ZoneID)
	case VarSend:
		return fmt.Sprintf("send(%s<-%s)", k.ItemID, k.ZoneID)
	case VarLine:
		if k.Dir == LineOut {
			return fmt.Sprintf("linesOut(%s@%s)", k.ItemID, k.ZoneID)
		}
		return fmt.Sprintf("linesIn(%s@%s)", k.ItemID, k.ZoneID)
	case VarTargetConsume:
		return fmt.Sprintf("targetConsume(%s)", k.ItemID)
	case VarTargetSlack:
		return fmt.Sprintf("targetSlack(%s)", k.ItemID)
	case VarPoolRecipe:
		return fmt.Sprintf("poolRecipe(%s)", k.RecipeID)
	default:
		return fmt.Sprintf("var(%d,%s,%s,%s)", k.Kind, k.RecipeID, k.ItemID, k.ZoneID)
	}
}

// ConKind enumerates constraint families.
type ConKind int

const (
	// ConBalance is the per-item per-zone mass balance (net >= 0).
	ConBalance ConKind = iota

	// ConGlobalPool zeroes the pool: transfers of an item cannot exceed sends.
	ConGlobalPool

	// ConRawResource caps global extraction of a raw resource.
	ConRawResource

	// ConMachines caps total machines installed in a zone (relaxation only).
	ConMachines

	// ConArea caps total machine footprint in a zone (relaxation only).
	ConArea

	// ConOutputLines caps a zone's total transfer-side lines.
	ConOutputLines

	// ConInputLines caps a zone's total send-side lines.
	ConInputLines

	// ConLinkOut links a transfer rate to its integer line count.
	ConLinkOut

	// ConLinkIn links a send rate to its integer line count.
	ConLinkIn

	// ConMachineCap bounds a recipe-zone variable by its fixed machine count.
	ConMachineCap

	// ConSurplus accumulates net sellable surplus of a targeted item.
	ConSurplus

	// ConTargetCap bounds target consumption by the target rate.
	ConTargetCap

	// ConTarget enforces the minimum net export of a targeted item.
	ConTarget

	// ConLock pins a recipe-zone machine count to an exact value.
	ConLock

	// ConObjectiveFloor keeps profit above a floor during waste minimization.
	ConObjectiveFloor

	// ConPoolItem is the per-item balance of the theoretical-max model.
	ConPoolItem
)

// ConKey identifies one model constraint.
type ConKey struct {
	Kind     ConKind
	ItemID   string
	ZoneID   string
	RecipeID string
}

func BalanceCon(itemID, zoneID string) ConKey    { return ConKey{Kind: ConBalance, ItemID: itemID, ZoneID: zoneID} }
func GlobalPoolCon(itemID string) ConKey         { return ConKey{Kind: ConGlobalPool, ItemID: itemID} }
func RawResourceCon(itemID string) ConKey        { return ConKey{Kind: ConRawResource, ItemID: itemID} }
func MachinesCon(zoneID string) ConKey           { return ConKey{Kind: ConMachines, ZoneID: zoneID} }
func AreaCon(zoneID string) ConKey               { return ConKey{Kind: ConArea, ZoneID: zoneID} }
func OutputLinesCon(zoneID string) ConKey        { return ConKey{Kind: ConOutputLines, ZoneID: zoneID} }
func InputLinesCon(zoneID string) ConKey         { return ConKey{Kind: ConInputLines, ZoneID: zoneID} }
func LinkOutCon(itemID, zoneID string) ConKey    { return ConKey{Kind: ConLinkOut, ItemID: itemID, ZoneID: zoneID} }
func LinkInCon(itemID, zoneID string) ConKey     { return ConKey{Kind: ConLinkIn, ItemID: itemID, ZoneID: zoneID} }
func MachineCapCon(recipeID, zoneID string) ConKey {
	return ConKey{Kind: ConMachineCap, RecipeID: recipeID, ZoneID: zoneID}
}
func SurplusCon(itemID string) ConKey        { return ConKey{Kind: ConSurplus, ItemID: itemID} }
func TargetCapCon(itemID string) ConKey      { return ConKey{Kind: ConTargetCap, ItemID: itemID} }
func TargetCon(itemID string) ConKey         { return ConKey{Kind: ConTarget, ItemID: itemID} }
func LockCon(recipeID, zoneID string) ConKey { return ConKey{Kind: ConLock, RecipeID: recipeID, ZoneID: zoneID} }
func ObjectiveFloorCon() ConKey              { return ConKey{Kind: ConObjectiveFloor} }
func PoolItemCon(itemID string) ConKey       { return ConKey{Kind: ConPoolItem, ItemID: itemID} }

// Less imposes a total order on constraint keys, mirroring VarKey.Less.
func (k ConKey) Less(other ConKey) bool {
	if k.Kind != other.Kind {
		return k.Kind < other.Kind
	}
	if k.ItemID != other.ItemID {
		return k.ItemID < other.ItemID
	}
	if k.ZoneID != other.ZoneID {
		return k.ZoneID < other.ZoneID
	}
	return k.RecipeID < other.RecipeID
}
