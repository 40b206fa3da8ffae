package planning

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/andrescamacho/zoneplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
)

// localBeltThroughput is the in-zone belt capacity used to express local
// flows in lanes. Pool-facing edges use the zone's port throughput instead.
const localBeltThroughput = 30.0

// FlowNodeType classifies a node of the per-zone flow map.
type FlowNodeType string

const (
	NodePool    FlowNodeType = "pool"
	NodeRecipe  FlowNodeType = "recipe"
	NodeSold    FlowNodeType = "sold"
	NodeZoneIn  FlowNodeType = "zoneIn"
	NodeZoneOut FlowNodeType = "zoneOut"
)

// FlowEdgeKind classifies an edge of the per-zone flow map.
type FlowEdgeKind string

const (
	EdgeLocal     FlowEdgeKind = "local"
	EdgeFromPool  FlowEdgeKind = "fromPool"
	EdgeToPool    FlowEdgeKind = "toPool"
	EdgeSold      FlowEdgeKind = "sold"
	EdgeInterzone FlowEdgeKind = "interzone"
)

// FlowNode is one box of the flow map.
type FlowNode struct {
	ID       string
	Type     FlowNodeType
	ZoneID   string // empty for pool nodes
	Label    string
	Sublabel string
}

// FlowEdge is one directed item flow between two nodes.
type FlowEdge struct {
	ID       string
	From     string
	To       string
	ItemID   string
	ItemName string
	Rate     float64 // units/min
	Kind     FlowEdgeKind
	Explain  string
	Lanes    float64
}

// ZoneFlowGraph is the visualizable decomposition of one zone's solved flows.
type ZoneFlowGraph struct {
	ZoneID string
	Nodes  []FlowNode
	Edges  []FlowEdge
	Notes  []string
}

func stableID(parts ...string) string {
	return strings.Join(parts, "::")
}

// BuildZoneFlowGraph decomposes one zone's solved rates into an explainable
// producer/consumer graph. The decomposition is greedy and deterministic:
// same-zone demand is satisfied from same-zone producers first, remaining
// demand pulls from the pool up to the solved transfer rate, and remaining
// surplus goes to sales or the pool. It is bookkeeping over the solver's
// rates, not a second simulation.
//
// Returns nil when the result has no entry for zoneID.
func BuildZoneFlowGraph(cat *catalog.Catalog, result *planning.CalculatorResult, zoneID string) *ZoneFlowGraph {
	var zr *planning.ZoneResult
	for _, candidate := range result.ZoneResults {
		if candidate.Zone.ID == zoneID {
			zr = candidate
			break
		}
	}
	if zr == nil {
		return nil
	}

	g := &ZoneFlowGraph{
		ZoneID: zr.Zone.ID,
		Notes: []string{
			"Flow map is a transparent decomposition, not a hidden simulation.",
			"Algorithm: satisfy same-zone demands from same-zone producers first; remaining demand is fed from pool (limited by the solver transfer rate); remaining surplus is sent to pool or sold.",
		},
	}

	const poolSourceID = "poolSource"
	const poolSinkID = "poolSink"
	soldID := stableID("sold", zr.Zone.ID)
	zoneInID := stableID("zoneIn", zr.Zone.ID)
	zoneOutID := stableID("zoneOut", zr.Zone.ID)

	hasImports := len(zr.ItemsFromPool) > 0
	hasExports := len(zr.ItemsToPool) > 0
	hasSales := len(zr.ItemsSold) > 0

	if hasImports {
		g.Nodes = append(g.Nodes,
			FlowNode{ID: poolSourceID, Type: NodePool, Label: "GLOBAL POOL", Sublabel: "Supply"},
			FlowNode{
				ID:       zoneInID,
				Type:     NodeZoneIn,
				ZoneID:   zr.Zone.ID,
				Label:    "ZONE IMPORTS",
				Sublabel: fmt.Sprintf("%d/%d Output Ports", zr.OutputPortsUsed, zr.Zone.OutputPorts),
			})
	}
	if hasExports {
		g.Nodes = append(g.Nodes,
			FlowNode{ID: poolSinkID, Type: NodePool, Label: "GLOBAL POOL", Sublabel: "Demand"},
			FlowNode{
				ID:       zoneOutID,
				Type:     NodeZoneOut,
				ZoneID:   zr.Zone.ID,
				Label:    "ZONE EXPORTS",
				Sublabel: fmt.Sprintf("%d/%d Input Ports (Storage)", zr.InputPortsUsed, zr.Zone.InputPorts),
			})
	}
	if hasSales {
		g.Nodes = append(g.Nodes, FlowNode{ID: soldID, Type: NodeSold, ZoneID: zr.Zone.ID, Label: "SALES", Sublabel: "Revenue Sink"})
	}

	type endpoint struct {
		nodeID    string
		remaining float64
	}
	supplyByItem := make(map[string][]*endpoint)
	demandByItem := make(map[string][]*endpoint)

	for _, a := range zr.Assignments {
		recipe, ok := cat.RecipeByID(a.RecipeID)
		if !ok {
			continue
		}
		nodeID := stableID("recipe", zr.Zone.ID, a.RecipeID)
		machineName := "Unknown Machine"
		if m, mok := cat.MachineByID(recipe.MachineID); mok {
			machineName = m.Name
		}
		g.Nodes = append(g.Nodes, FlowNode{
			ID:       nodeID,
			Type:     NodeRecipe,
			ZoneID:   zr.Zone.ID,
			Label:    fmt.Sprintf("%s x%d", machineName, a.MachineCount),
			Sublabel: fmt.Sprintf("%s (%.1f/m) | util %.2f/%d", recipe.Name, a.ActualRate, a.Utilization, a.MachineCount),
		})

		if a.ActualRate > 0.0001 {
			supplyByItem[recipe.OutputItemID] = append(supplyByItem[recipe.OutputItemID], &endpoint{nodeID, a.ActualRate})
		}
		for _, in := range recipe.Inputs {
			// Consumption follows actual utilization, not installed machines;
			// installed counts would exaggerate internal demand and make
			// self-feeding loops look starved.
			rate := a.Utilization * recipe.InputRatePerMinute(in.ItemID)
			if rate <= 0.0001 {
				continue
			}
			demandByItem[in.ItemID] = append(demandByItem[in.ItemID], &endpoint{nodeID, rate})
		}
	}

	poolSupply := make(map[string]float64)
	for _, f := range zr.ItemsFromPool {
		poolSupply[f.ItemID] += f.Rate
	}
	poolDemand := make(map[string]float64)
	for _, f := range zr.ItemsToPool {
		poolDemand[f.ItemID] += f.Rate
	}
	soldDemand := make(map[string]float64)
	for _, f := range zr.ItemsSold {
		soldDemand[f.ItemID] += f.Rate
	}

	itemSet := make(map[string]bool)
	for id := range supplyByItem {
		itemSet[id] = true
	}
	for id := range demandByItem {
		itemSet[id] = true
	}
	for id := range poolSupply {
		itemSet[id] = true
	}
	for id := range poolDemand {
		itemSet[id] = true
	}
	for id := range soldDemand {
		itemSet[id] = true
	}
	itemIDs := make([]string, 0, len(itemSet))
	for id := range itemSet {
		itemIDs = append(itemIDs, id)
	}
	sort.Strings(itemIDs)

	addEdge := func(tag, from, to, itemID string, rate, lanes float64, kind FlowEdgeKind, explain string) {
		g.Edges = append(g.Edges, FlowEdge{
			ID:       stableID("edge", tag, zr.Zone.ID, itemID, from, to, fmt.Sprint(len(g.Edges))),
			From:     from,
			To:       to,
			ItemID:   itemID,
			ItemName: fmt.Sprintf("%s x%.1f", cat.ItemName(itemID), lanes),
			Rate:     rate,
			Kind:     kind,
			Explain:  explain,
			Lanes:    lanes,
		})
	}

	for _, itemID := range itemIDs {
		producers := supplyByItem[itemID]
		consumers := demandByItem[itemID]
		sort.Slice(producers, func(i, j int) bool { return producers[i].nodeID < producers[j].nodeID })
		sort.Slice(consumers, func(i, j int) bool { return consumers[i].nodeID < consumers[j].nodeID })

		// 1) Local producer to local consumer.
		pi := 0
		for _, c := range consumers {
			for c.remaining > 0.0001 && pi < len(producers) {
				p := producers[pi]
				if p.remaining <= 0.0001 {
					pi++
					continue
				}
				flow := math.Min(c.remaining, p.remaining)
				addEdge("local", p.nodeID, c.nodeID, itemID, flow, flow/localBeltThroughput, EdgeLocal,
					"Local flow: produced and consumed within the same zone.")
				p.remaining -= flow
				c.remaining -= flow
			}
		}

		// 2) Pool to local consumer, through the zone import node.
		poolAvail := poolSupply[itemID]
		if hasImports && poolAvail > 0.0001 {
			addEdge("fromPool", poolSourceID, zoneInID, itemID, poolAvail, poolAvail/zr.Zone.PortThroughput, EdgeFromPool,
				"From pool: items entering this zone.")
			for _, c := range consumers {
				if c.remaining <= 0.0001 {
					continue
				}
				flow := math.Min(c.remaining, poolAvail)
				if flow > 0.0001 {
					addEdge("fromPoolToRecipe", zoneInID, c.nodeID, itemID, flow, flow/zr.Zone.PortThroughput, EdgeFromPool,
						"Pool supply allocated to recipe.")
					poolAvail -= flow
					c.remaining -= flow
				}
			}
		}

		// 3) Producer surplus to sales, through a per-item allocator node.
		soldNeed := soldDemand[itemID]
		if hasSales && soldNeed > 0.0001 {
			soldAggID := stableID("soldAgg", zr.Zone.ID, itemID)
			g.Nodes = append(g.Nodes, FlowNode{
				ID:       soldAggID,
				Type:     NodeZoneOut,
				ZoneID:   zr.Zone.ID,
				Label:    fmt.Sprintf("SELL: %s", cat.ItemName(itemID)),
				Sublabel: "allocator",
			})
			remainingSell := soldNeed
			for _, p := range producers {
				if remainingSell <= 0.0001 {
					break
				}
				if p.remaining <= 0.0001 {
					continue
				}
				flow := math.Min(p.remaining, remainingSell)
				addEdge("toSold", p.nodeID, soldAggID, itemID, flow, flow/zr.Zone.PortThroughput, EdgeSold,
					"Surplus allocated to sales.")
				p.remaining -= flow
				remainingSell -= flow
			}
			addEdge("soldToSink", soldAggID, soldID, itemID, soldNeed, soldNeed/zr.Zone.PortThroughput, EdgeSold,
				"Items sold.")
		}

		// 4) Producer surplus to the pool.
		toPool := poolDemand[itemID]
		if hasExports && toPool > 0.0001 {
			remainingSend := toPool
			for _, p := range producers {
				if remainingSend <= 0.0001 {
					break
				}
				if p.remaining <= 0.0001 {
					continue
				}
				flow := math.Min(p.remaining, remainingSend)
				addEdge("producerToZoneOut", p.nodeID, zoneOutID, itemID, flow, flow/zr.Zone.PortThroughput, EdgeToPool,
					"Surplus sent to global pool.")
				p.remaining -= flow
				remainingSend -= flow
			}
			addEdge("toPoolAgg", zoneOutID, poolSinkID, itemID, toPool, toPool/zr.Zone.PortThroughput, EdgeToPool,
				"Items leaving this zone to pool.")
		}

		unmet := 0.0
		for _, c := range consumers {
			if c.remaining > 0 {
				unmet += c.remaining
			}
		}
		if unmet > 0.01 {
			g.Notes = append(g.Notes, fmt.Sprintf("Unmet in-zone demand for %s: %.2f/min.", cat.ItemName(itemID), unmet))
		}
	}

	return g
}
