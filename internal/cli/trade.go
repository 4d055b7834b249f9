package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tradebook/internal/errors"
	"tradebook/internal/logging"
	"tradebook/internal/models"
	"tradebook/internal/store"
)

// addTradeCommands adds the journal CRUD commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Journal trade management",
		Long:  "Add, list, edit and delete journal trades.",
	}

	cmd.AddCommand(newTradeAddCmd(app))
	cmd.AddCommand(newTradeListCmd(app))
	cmd.AddCommand(newTradeShowCmd(app))
	cmd.AddCommand(newTradeEditCmd(app))
	cmd.AddCommand(newTradeDeleteCmd(app))

	rootCmd.AddCommand(cmd)
}

// tradeFlags registers the journal field flags shared by add and edit.
func tradeFlags(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "trade date (YYYY-MM-DD)")
	cmd.Flags().String("entry-date", "", "entry date for positional trades")
	cmd.Flags().String("exit-date", "", "exit date for positional trades")
	cmd.Flags().String("entry", "", "entry price")
	cmd.Flags().String("exit", "", "exit price")
	cmd.Flags().String("sl", "", "stop loss")
	cmd.Flags().String("target", "", "target price")
	cmd.Flags().String("qty", "", "quantity")
	cmd.Flags().String("charges", "", "brokerage and charges")
	cmd.Flags().String("position", "", "LONG or SHORT")
	cmd.Flags().String("strategy", "", "strategy tag")
	cmd.Flags().String("reason", "", "entry reason")
	cmd.Flags().String("exit-reason", "", "exit reason")
	cmd.Flags().String("confidence", "", "confidence tag")
	cmd.Flags().String("broker", "", "broker tag")
	cmd.Flags().String("timeframe", "", "chart timeframe")
	cmd.Flags().String("time-range", "", "session time range")
	cmd.Flags().String("underlying", "", "underlying (options/futures)")
	cmd.Flags().String("symbol", "", "symbol (equity/swing)")
	cmd.Flags().String("expiry", "", "expiry (options)")
	cmd.Flags().String("strike", "", "strike (options)")
	cmd.Flags().String("option-type", "", "CALL or PUT")
	cmd.Flags().String("remarks", "", "free-form remarks")
}

// applyTradeFlags copies every flag the user set onto the record. Values are
// stored exactly as typed; the dashboard normalizer owns numeric coercion.
func applyTradeFlags(cmd *cobra.Command, t *models.TradeRecord) {
	set := func(name string, dst *string) {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetString(name)
			*dst = v
		}
	}

	set("date", &t.Date)
	set("entry-date", &t.EntryDate)
	set("exit-date", &t.ExitDate)
	set("entry", &t.Entry)
	set("exit", &t.ExitPrice)
	set("sl", &t.SL)
	set("target", &t.Target)
	set("qty", &t.Qty)
	set("charges", &t.Charges)
	set("strategy", &t.Strategy)
	set("reason", &t.Reason)
	set("exit-reason", &t.ExitReason)
	set("confidence", &t.Confidence)
	set("broker", &t.Broker)
	set("timeframe", &t.Timeframe)
	set("time-range", &t.TimeRange)
	set("underlying", &t.Underlying)
	set("symbol", &t.Symbol)
	set("expiry", &t.Expiry)
	set("strike", &t.Strike)
	set("remarks", &t.Remarks)

	if cmd.Flags().Changed("position") {
		v, _ := cmd.Flags().GetString("position")
		t.Position = models.Position(v)
	}
	if cmd.Flags().Changed("option-type") {
		v, _ := cmd.Flags().GetString("option-type")
		t.OptionType = models.OptionType(v)
	}
}

func resolveTradeType(cmd *cobra.Command, app *App) (models.TradeType, error) {
	v, _ := cmd.Flags().GetString("type")
	if v == "" {
		return app.Config.DefaultTradeType(), nil
	}
	tt := models.TradeType(v)
	if !tt.Valid() {
		return "", errors.Wrapf(errors.ErrInvalidTradeType, "%q", v)
	}
	return tt, nil
}

func newTradeAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a trade to the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return errors.ErrDatabaseError
			}

			tradeType, err := resolveTradeType(cmd, app)
			if err != nil {
				return err
			}

			now := time.Now()
			trade := &models.TradeRecord{
				ID:        models.NewTradeID(),
				TradeType: tradeType,
				CreatedAt: now,
				UpdatedAt: now,
			}
			applyTradeFlags(cmd, trade)

			if err := app.Store.SaveTrade(cmd.Context(), app.UserID(), trade); err != nil {
				return err
			}

			logging.LogTradeSaved(app.Logger, trade.ID, string(trade.TradeType), trade.SymbolValue())

			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("✓ Trade %s added", trade.ID)
			return nil
		},
	}

	cmd.Flags().String("type", "", "trade type (default from config)")
	tradeFlags(cmd)
	return cmd
}

func newTradeListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return errors.ErrDatabaseError
			}

			tradeType, err := resolveTradeType(cmd, app)
			if err != nil {
				return err
			}
			symbol, _ := cmd.Flags().GetString("symbol")
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			limit, _ := cmd.Flags().GetInt("limit")

			trades, err := app.Store.GetTrades(cmd.Context(), app.UserID(), store.TradeQuery{
				Type:   tradeType,
				Symbol: symbol,
				From:   from,
				To:     to,
				Limit:  limit,
			})
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}
			if len(trades) == 0 {
				output.Dim("No trades recorded for %s", tradeType)
				return nil
			}

			table := NewTable(output, "ID", "DATE", "SYMBOL", "POS", "ENTRY", "EXIT", "QTY", "STRATEGY")
			for _, t := range trades {
				table.AddRow(
					TruncateString(t.ID, 10),
					t.DateValue(),
					t.SymbolValue(),
					string(t.Position),
					t.Entry,
					t.ExitPrice,
					t.Qty,
					TruncateString(t.Strategy, 20),
				)
			}
			table.Render()
			output.Dim("%d trades", len(trades))
			return nil
		},
	}

	cmd.Flags().String("type", "", "trade type (default from config)")
	cmd.Flags().String("symbol", "", "filter by symbol/underlying")
	cmd.Flags().String("from", "", "from date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "to date (YYYY-MM-DD)")
	cmd.Flags().Int("limit", 0, "maximum trades to list")
	return cmd
}

func newTradeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a trade in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return errors.ErrDatabaseError
			}

			trade, err := app.Store.GetTrade(cmd.Context(), app.UserID(), args[0])
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trade)
			}
			printTrade(output, trade)
			return nil
		},
	}
}

func printTrade(output *Output, t *models.TradeRecord) {
	output.Bold("%s  %s", t.ID, t.TradeType)
	output.Printf("  Date:       %s\n", t.DateValue())
	output.Printf("  Symbol:     %s\n", t.SymbolValue())
	if t.Expiry != "" || t.Strike != "" || t.OptionType != "" {
		output.Printf("  Contract:   %s %s %s\n", t.Expiry, t.Strike, t.OptionType)
	}
	output.Printf("  Position:   %s\n", t.Position)
	output.Printf("  Entry/Exit: %s / %s\n", t.Entry, t.ExitPrice)
	output.Printf("  SL/Target:  %s / %s\n", t.SL, t.Target)
	output.Printf("  Qty:        %s\n", t.Qty)
	if t.Charges != "" {
		output.Printf("  Charges:    %s\n", t.Charges)
	}
	if t.Strategy != "" {
		output.Printf("  Strategy:   %s (%s)\n", t.Strategy, t.Timeframe)
	}
	if t.Reason != "" {
		output.Printf("  Reason:     %s\n", t.Reason)
	}
	if t.ExitReason != "" {
		output.Printf("  Exit:       %s\n", t.ExitReason)
	}
	if t.Remarks != "" {
		output.Printf("  Remarks:    %s\n", t.Remarks)
	}
	output.Dim("  created %s, updated %s", FormatDate(t.CreatedAt), FormatDate(t.UpdatedAt))
}

func newTradeEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return errors.ErrDatabaseError
			}

			trade, err := app.Store.GetTrade(cmd.Context(), app.UserID(), args[0])
			if err != nil {
				return err
			}

			applyTradeFlags(cmd, trade)
			if err := app.Store.UpdateTrade(cmd.Context(), app.UserID(), trade); err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("✓ Trade %s updated", trade.ID)
			return nil
		},
	}

	tradeFlags(cmd)
	return cmd
}

func newTradeDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return errors.ErrDatabaseError
			}

			force, _ := cmd.Flags().GetBool("force")
			if !force {
				return fmt.Errorf("refusing to delete without --force")
			}

			if err := app.Store.DeleteTrade(cmd.Context(), app.UserID(), args[0]); err != nil {
				return err
			}
			output.Success("✓ Trade %s deleted", args[0])
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "confirm deletion")
	return cmd
}
