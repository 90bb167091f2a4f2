package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"GolfPassport/internal/bank"
	"GolfPassport/internal/model"
	"GolfPassport/internal/report"
)

func newPackagesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "packages",
		Short: "Compare membership packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := report.FormatPackages(app.Catalog, app.Config.Membership.PackageID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newBanksCommand(app *App) *cobra.Command {
	var credits int
	cmd := &cobra.Command{
		Use:   "banks",
		Short: "Show how a credit balance splits into category banks",
		RunE: func(cmd *cobra.Command, args []string) error {
			banks, err := bank.PartitionBanks(credits)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d credits\n", credits)
			fmt.Fprint(cmd.OutOrStdout(), report.FormatBanks(banks, model.CategoryCredits{}, banks))
			return nil
		},
	}
	cmd.Flags().IntVar(&credits, "credits", 50, "total credits")
	return cmd
}
