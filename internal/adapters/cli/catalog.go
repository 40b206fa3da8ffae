package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/zoneplanner-go/internal/domain/catalog"
)

// catalogFile is the JSON shape of a catalogue seed file.
type catalogFile struct {
	Items []struct {
		ID                 string  `json:"id"`
		Name               string  `json:"name"`
		Price              float64 `json:"price"`
		IsRawResource      bool    `json:"isRawResource"`
		BaseProductionRate float64 `json:"baseProductionRate"`
	} `json:"items"`
	Machines []struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Area        float64 `json:"area"`
	} `json:"machines"`
	Recipes []struct {
		ID           string  `json:"id"`
		MachineID    string  `json:"machineId"`
		Name         string  `json:"name"`
		OutputItemID string  `json:"outputItemId"`
		OutputAmount float64 `json:"outputAmount"`
		CraftingTime float64 `json:"craftingTime"`
		Inputs       []struct {
			ItemID string  `json:"itemId"`
			Amount float64 `json:"amount"`
		} `json:"inputs"`
	} `json:"recipes"`
}

// NewCatalogCommand creates the catalog command group
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the item, recipe and machine catalogue",
	}
	cmd.AddCommand(newCatalogSeedCommand())
	cmd.AddCommand(newCatalogShowCommand())
	return cmd
}

func newCatalogSeedCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the stored catalogue from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			var parsed catalogFile
			if err := json.Unmarshal(data, &parsed); err != nil {
				return fmt.Errorf("failed to parse %s: %w", file, err)
			}

			items := make([]*catalog.Item, 0, len(parsed.Items))
			for _, it := range parsed.Items {
				items = append(items, &catalog.Item{
					ID:                 it.ID,
					Name:               it.Name,
					Price:              it.Price,
					IsRawResource:      it.IsRawResource,
					BaseProductionRate: it.BaseProductionRate,
				})
			}
			machines := make([]*catalog.Machine, 0, len(parsed.Machines))
			for _, m := range parsed.Machines {
				machines = append(machines, &catalog.Machine{ID: m.ID, Name: m.Name, Description: m.Description, Area: m.Area})
			}
			recipes := make([]*catalog.Recipe, 0, len(parsed.Recipes))
			for _, r := range parsed.Recipes {
				recipe := &catalog.Recipe{
					ID:           r.ID,
					MachineID:    r.MachineID,
					Name:         r.Name,
					OutputItemID: r.OutputItemID,
					OutputAmount: r.OutputAmount,
					CraftingTime: r.CraftingTime,
				}
				for _, in := range r.Inputs {
					recipe.Inputs = append(recipe.Inputs, catalog.RecipeInput{ItemID: in.ItemID, Amount: in.Amount})
				}
				recipes = append(recipes, recipe)
			}

			cat := catalog.NewCatalog(items, recipes, machines)
			if err := cat.Validate(); err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.catalogRepo.SaveCatalog(cmd.Context(), cat); err != nil {
				return err
			}
			fmt.Printf("Seeded %d items, %d recipes, %d machines\n", len(items), len(recipes), len(machines))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to catalogue JSON file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newCatalogShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			cat, err := a.catalogRepo.LoadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println("Items:")
			for _, it := range cat.Items() {
				kind := "crafted"
				if it.IsRawResource {
					kind = "raw"
				}
				fmt.Printf("  %s (%s, %s) price=%.2f", it.ID, it.Name, kind, it.Price)
				if it.BaseProductionRate > 0 {
					fmt.Printf(" base=%.1f/min", it.BaseProductionRate)
				}
				fmt.Println()
			}
			fmt.Println("Machines:")
			for _, m := range cat.Machines() {
				fmt.Printf("  %s (%s) area=%.1f\n", m.ID, m.Name, m.Area)
			}
			fmt.Println("Recipes:")
			for _, r := range cat.Recipes() {
				fmt.Printf("  %s (%s): %.1fx %s / %.1fs on %s\n",
					r.ID, r.Name, r.OutputAmount, r.OutputItemID, r.CraftingTime, r.MachineID)
				for _, in := range r.Inputs {
					fmt.Printf("    needs %.1fx %s\n", in.Amount, in.ItemID)
				}
			}
			return nil
		},
	}
}
