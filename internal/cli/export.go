package cli

import (
	"time"

	"github.com/spf13/cobra"

	"tradebook/internal/access"
	"tradebook/internal/errors"
	"tradebook/internal/export"
	"tradebook/internal/logging"
	"tradebook/internal/store"
)

// addExportCommands adds the CSV export and import commands.
func addExportCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newExportCmd(app))
	rootCmd.AddCommand(newImportCmd(app))
}

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export journal trades to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return errors.ErrDatabaseError
			}
			if !app.Access.CanUse(access.FeatureExport, app.Plan()) {
				return errors.NewFeatureError(access.FeatureExport, app.Plan())
			}

			tradeType, err := resolveTradeType(cmd, app)
			if err != nil {
				return err
			}

			trades, err := app.Store.GetTrades(cmd.Context(), app.UserID(), store.TradeQuery{Type: tradeType})
			if err != nil {
				return err
			}

			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				dir = app.Config.Journal.ExportDir
			}

			start := time.Now()
			path, err := export.ExportFile(dir, tradeType, trades)
			if err != nil {
				return err
			}
			logging.LogExport(app.Logger, path, len(trades), time.Since(start))

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"path": path, "trades": len(trades)})
			}
			output.Success("✓ Exported %d trades to %s", len(trades), path)
			return nil
		},
	}

	cmd.Flags().String("type", "", "trade type (default from config)")
	cmd.Flags().String("dir", "", "export directory (default from config)")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import journal trades from CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return errors.ErrDatabaseError
			}

			tradeType, err := resolveTradeType(cmd, app)
			if err != nil {
				return err
			}

			trades, err := export.ImportFile(args[0])
			if err != nil {
				return err
			}

			imported := 0
			for i := range trades {
				if trades[i].TradeType == "" {
					trades[i].TradeType = tradeType
				}
				if err := app.Store.SaveTrade(cmd.Context(), app.UserID(), &trades[i]); err != nil {
					output.Warning("skipping trade %s: %v", trades[i].ID, err)
					continue
				}
				imported++
			}

			if output.IsJSON() {
				return output.JSON(map[string]int{"imported": imported, "total": len(trades)})
			}
			output.Success("✓ Imported %d of %d trades", imported, len(trades))
			return nil
		},
	}

	cmd.Flags().String("type", "", "trade type for rows missing one (default from config)")
	return cmd
}
