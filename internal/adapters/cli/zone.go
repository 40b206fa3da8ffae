package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
)

// NewZoneCommand creates the zone command group
func NewZoneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zone",
		Short: "Manage factory zones",
	}
	cmd.AddCommand(newZoneListCommand())
	cmd.AddCommand(newZoneAddCommand())
	cmd.AddCommand(newZoneRemoveCommand())
	return cmd
}

func newZoneListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all zones",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			zones, err := a.zoneRepo.ListZones(cmd.Context())
			if err != nil {
				return err
			}
			if len(zones) == 0 {
				fmt.Println("No zones defined.")
				return nil
			}
			for _, z := range zones {
				fmt.Printf("%s (%s): out=%d in=%d throughput=%.1f", z.ID, z.Name, z.OutputPorts, z.InputPorts, z.PortThroughput)
				if z.MachineSlots > 0 {
					fmt.Printf(" slots=%d", z.MachineSlots)
				}
				if z.AreaLimit > 0 {
					fmt.Printf(" area=%.1f", z.AreaLimit)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func newZoneAddCommand() *cobra.Command {
	zone := &planning.Zone{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or update a zone",
		RunE: func(cmd *cobra.Command, args []string) error {
			if zone.ID == "" {
				return fmt.Errorf("--id is required")
			}
			if zone.Name == "" {
				zone.Name = zone.ID
			}
			if zone.PortThroughput <= 0 {
				return fmt.Errorf("--throughput must be positive")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.zoneRepo.SaveZone(cmd.Context(), zone); err != nil {
				return err
			}
			fmt.Printf("Saved zone %s\n", zone.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&zone.ID, "id", "", "Zone id")
	cmd.Flags().StringVar(&zone.Name, "name", "", "Display name (defaults to id)")
	cmd.Flags().IntVar(&zone.OutputPorts, "output-ports", 0, "Lines available to pull from the pool")
	cmd.Flags().IntVar(&zone.InputPorts, "input-ports", 0, "Lines available to push to the pool")
	cmd.Flags().Float64Var(&zone.PortThroughput, "throughput", 30, "Units/min per line")
	cmd.Flags().IntVar(&zone.MachineSlots, "slots", 0, "Machine slot limit (0 = unlimited)")
	cmd.Flags().Float64Var(&zone.AreaLimit, "area", 0, "Area limit (0 = unlimited)")
	return cmd
}

func newZoneRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <zone-id>",
		Short: "Remove a zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.zoneRepo.DeleteZone(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed zone %s\n", args[0])
			return nil
		},
	}
}
