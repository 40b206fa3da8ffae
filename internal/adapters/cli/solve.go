package cli

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/zoneplanner-go/internal/application/common"
	appPlanning "github.com/andrescamacho/zoneplanner-go/internal/application/planning"
	"github.com/andrescamacho/zoneplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
	"github.com/andrescamacho/zoneplanner-go/internal/infrastructure/logging"
)

// NewSolveCommand creates the solve command
func NewSolveCommand() *cobra.Command {
	var (
		targets        []string
		limits         []string
		locks          []string
		mode           string
		transferKnob   float64
		consolidation  float64
		machineWeight  float64
		theoreticalMax bool
		saveName       string
		flowZone       string
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Compute an optimal production plan across all zones",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			input := &planning.CalculatorInput{
				OptimizationMode: planning.OptimizationMode(mode),
			}
			for _, t := range targets {
				itemID, rate, err := parseItemRate(t)
				if err != nil {
					return err
				}
				input.Targets = append(input.Targets, planning.ProductionTarget{ItemID: itemID, TargetRate: rate})
			}
			for _, l := range limits {
				itemID, rate, err := parseItemRate(l)
				if err != nil {
					return err
				}
				input.ResourceConstraints = append(input.ResourceConstraints, planning.ResourceConstraint{ItemID: itemID, MaxRate: rate})
			}
			for _, l := range locks {
				lock, err := parseLock(l)
				if err != nil {
					return err
				}
				input.LockedAssignments = append(input.LockedAssignments, lock)
			}
			if cmd.Flags().Changed("transfer-penalty") {
				input.TransferPenalty = &transferKnob
			}
			if cmd.Flags().Changed("consolidation-weight") {
				input.ConsolidationWeight = &consolidation
			}
			if cmd.Flags().Changed("machine-weight") {
				input.MachineWeight = &machineWeight
			}

			zones, err := a.zoneRepo.ListZones(cmd.Context())
			if err != nil {
				return err
			}
			input.Zones = zones

			ctx := cmd.Context()
			if a.cfg.Solver.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, a.cfg.Solver.Timeout)
				defer cancel()
			}

			logCfg := a.cfg.Logging
			if verbose {
				logCfg.Level = "debug"
			}
			ctx = common.WithLogger(ctx, logging.New(&logCfg))

			var onProgress planning.ProgressFunc
			if verbose {
				onProgress = func(e planning.OptimizerEvent) {
					fmt.Fprintf(os.Stderr, "[%s] %s\n", e.Stage, e.Message)
				}
			}

			response, err := a.mediator.Send(ctx, &commands.SolvePlanCommand{
				Input:                 input,
				IncludeTheoreticalMax: theoreticalMax,
				OnProgress:            onProgress,
			})
			if err != nil {
				return err
			}
			result := response.(*commands.SolvePlanResponse).Result

			printResult(result)

			if flowZone != "" {
				cat, err := a.catalogRepo.LoadCatalog(ctx)
				if err != nil {
					return err
				}
				printFlowGraph(appPlanning.BuildZoneFlowGraph(cat, result, flowZone))
			}

			if saveName != "" {
				if _, err := a.mediator.Send(ctx, &commands.SaveLayoutCommand{Name: saveName, Result: result}); err != nil {
					return err
				}
				fmt.Printf("\nLayout saved as %q\n", saveName)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&targets, "target", nil, "Production target as item=rate (units/min, repeatable)")
	cmd.Flags().StringArrayVar(&limits, "limit", nil, "Raw resource cap as item=rate (repeatable)")
	cmd.Flags().StringArrayVar(&locks, "lock", nil, "Pin machines as recipe:zone=count (repeatable)")
	cmd.Flags().StringVar(&mode, "mode", string(planning.ModeBalanced), "Optimization mode: maxIncome, minTransfers, balanced")
	cmd.Flags().Float64Var(&transferKnob, "transfer-penalty", planning.DefaultTransferPenalty, "Transfer cost knob, 0..1 (balanced mode)")
	cmd.Flags().Float64Var(&consolidation, "consolidation-weight", planning.DefaultConsolidationWeight, "Recipe activation penalty knob, 0..1")
	cmd.Flags().Float64Var(&machineWeight, "machine-weight", planning.DefaultMachineWeight, "Per-machine penalty knob, 0..1")
	cmd.Flags().BoolVar(&theoreticalMax, "theoretical-max", false, "Also compute the zoneless income upper bound")
	cmd.Flags().StringVar(&saveName, "save", "", "Save the resulting layout under this name")
	cmd.Flags().StringVar(&flowZone, "flow", "", "Print the flow decomposition of this zone")

	return cmd
}

func printResult(result *planning.CalculatorResult) {
	if result.Feasible {
		fmt.Println("Status: FEASIBLE")
	} else {
		fmt.Printf("Status: INFEASIBLE (%s)\n", result.InfeasibleReason)
	}
	fmt.Printf("Total income: %.2f/min\n", result.TotalIncome)
	fmt.Printf("Output ports used: %d\n", result.TotalOutputPortsUsed)
	if result.TransferOverhead > 0 {
		fmt.Printf("Transfer overhead: %d lines\n", result.TransferOverhead)
	}
	if result.TheoreticalMaxIncome != nil {
		if math.IsInf(*result.TheoreticalMaxIncome, 1) {
			fmt.Println("Theoretical max income: unbounded")
		} else {
			fmt.Printf("Theoretical max income: %.2f/min\n", *result.TheoreticalMaxIncome)
		}
	}

	for _, zr := range result.ZoneResults {
		fmt.Printf("\nZone %s (%s): %d machines, ports out %d/%d in %d/%d\n",
			zr.Zone.ID, zr.Zone.Name, zr.TotalMachines,
			zr.OutputPortsUsed, zr.Zone.OutputPorts,
			zr.InputPortsUsed, zr.Zone.InputPorts)
		for _, a := range zr.Assignments {
			lock := ""
			if a.Locked {
				lock = " [locked]"
			}
			fmt.Printf("  %s: %d machines, util %.2f, %.1f/min%s\n",
				a.RecipeID, a.MachineCount, a.Utilization, a.ActualRate, lock)
		}
		for _, f := range zr.ItemsFromPool {
			fmt.Printf("  <- pool %s %.1f/min\n", f.ItemID, f.Rate)
		}
		for _, f := range zr.ItemsToPool {
			fmt.Printf("  -> pool %s %.1f/min\n", f.ItemID, f.Rate)
		}
		for _, f := range zr.ItemsSold {
			fmt.Printf("  $ sell %s %.1f/min\n", f.ItemID, f.Rate)
		}
	}

	if len(result.GlobalResourceUsage) > 0 {
		fmt.Println("\nRaw resource usage:")
		for _, r := range result.GlobalResourceUsage {
			fmt.Printf("  %s: %.1f/min\n", r.ItemID, r.Rate)
		}
	}
	if len(result.UnmetTargets) > 0 {
		fmt.Println("\nUnmet targets:")
		for _, u := range result.UnmetTargets {
			fmt.Printf("  %s: short by %.1f/min\n", u.ItemID, u.Shortfall)
		}
	}
	for _, w := range result.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}
}

func printFlowGraph(g *appPlanning.ZoneFlowGraph) {
	if g == nil {
		fmt.Println("\nNo flow graph: zone not found in result")
		return
	}
	fmt.Printf("\nFlow graph for zone %s:\n", g.ZoneID)
	for _, e := range g.Edges {
		fmt.Printf("  %s -> %s: %s %.1f/min (%.1f lanes, %s)\n", e.From, e.To, e.ItemID, e.Rate, e.Lanes, e.Kind)
	}
	for _, n := range g.Notes {
		fmt.Printf("  note: %s\n", n)
	}
}
