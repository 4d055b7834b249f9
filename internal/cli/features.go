package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"tradebook/internal/access"
)

// addFeatureCommands adds the plan/feature inspection commands.
func addFeatureCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "features",
		Short: "Show feature availability for the configured plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			registry, ok := app.Access.(*access.Registry)
			if !ok {
				return nil
			}
			features := registry.Features()

			if output.IsJSON() {
				type row struct {
					FeatureID    string   `json:"feature_id"`
					AllowedPlans []string `json:"allowed_plans"`
					Available    bool     `json:"available"`
				}
				rows := make([]row, 0, len(features))
				for _, f := range features {
					rows = append(rows, row{
						FeatureID:    f.FeatureID,
						AllowedPlans: f.AllowedPlans,
						Available:    app.Access.CanUse(f.FeatureID, app.Plan()),
					})
				}
				return output.JSON(rows)
			}

			output.Bold("Plan: %s", app.Plan())
			table := NewTable(output, "FEATURE", "PLANS", "AVAILABLE")
			for _, f := range features {
				available := output.Red("locked")
				if app.Access.CanUse(f.FeatureID, app.Plan()) {
					available = output.Green("yes")
				}
				table.AddRow(f.FeatureID, strings.Join(f.AllowedPlans, ","), available)
			}
			table.Render()
			return nil
		},
	}

	rootCmd.AddCommand(cmd)
}
