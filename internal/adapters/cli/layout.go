package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/zoneplanner-go/internal/application/planning/queries"
)

// NewLayoutCommand creates the layout command group
func NewLayoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Manage saved production layouts",
	}
	cmd.AddCommand(newLayoutListCommand())
	cmd.AddCommand(newLayoutShowCommand())
	cmd.AddCommand(newLayoutDeleteCommand())
	return cmd
}

func newLayoutListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			response, err := a.mediator.Send(cmd.Context(), &queries.ListLayoutsQuery{})
			if err != nil {
				return err
			}
			layouts := response.(*queries.ListLayoutsResponse).Layouts
			if len(layouts) == 0 {
				fmt.Println("No layouts saved.")
				return nil
			}
			for _, l := range layouts {
				fmt.Printf("%s (%d assignments, saved %s)\n", l.Name, len(l.Assignments), l.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func newLayoutShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print one saved layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			response, err := a.mediator.Send(cmd.Context(), &queries.GetLayoutQuery{Name: args[0]})
			if err != nil {
				return err
			}
			layout := response.(*queries.GetLayoutResponse).Layout
			fmt.Printf("Layout %s (saved %s):\n", layout.Name, layout.CreatedAt.Format("2006-01-02 15:04"))
			for _, asg := range layout.Assignments {
				fmt.Printf("  zone %s: %s x%d (%.1f/min)\n", asg.ZoneID, asg.RecipeID, asg.MachineCount, asg.ActualRate)
			}
			return nil
		},
	}
}

func newLayoutDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.layoutRepo.DeleteLayout(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted layout %s\n", args[0])
			return nil
		},
	}
}
