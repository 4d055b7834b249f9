package cli

import (
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"tradebook/internal/access"
	"tradebook/internal/analytics"
	"tradebook/internal/errors"
	"tradebook/internal/models"
	"tradebook/internal/store"
)

// dashboardSection ties a renderable dashboard section to its gating feature.
type dashboardSection struct {
	name      string
	featureID string
	render    func(o *Output, cfg analytics.TypeConfig, trades []models.TradeRecord)
}

var dashboardSections = []dashboardSection{
	{"overview", access.FeatureOverview, renderOverview},
	{"days", access.FeatureWinLossDays, renderWinLossDays},
	{"strategy", access.FeatureStrategy, renderRiskStrategy},
	{"entryexit", access.FeatureEntryExit, renderEntryExit},
	{"timing", access.FeatureTiming, renderTiming},
	{"quality", access.FeatureQuality, renderQuality},
	{"underlying", access.FeatureUnderlying, renderUnderlying},
}

// addDashboardCommands adds the KPI dashboard commands.
func addDashboardCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the KPI dashboard",
		Long: `Compute and display journal KPIs for a trade type.

Sections locked on the current plan are listed but not rendered. Use the
filter flags to narrow the trade set; every KPI is recomputed over the
filtered trades.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, app)
		},
	}

	cmd.Flags().String("type", "", "trade type (default from config)")
	cmd.Flags().String("section", "", "render a single section")
	cmd.Flags().String("from", "", "from date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "to date (YYYY-MM-DD)")
	for _, field := range analytics.FilterFields {
		cmd.Flags().StringSlice(field, nil, "filter by "+field)
	}

	rootCmd.AddCommand(cmd)
	rootCmd.AddCommand(newFilterOptionsCmd(app))
}

// loadFilteredTrades fetches the type's trades and applies the flag filters.
func loadFilteredTrades(cmd *cobra.Command, app *App) (models.TradeType, []models.TradeRecord, error) {
	if app.Store == nil {
		return "", nil, errors.ErrDatabaseError
	}

	tradeType, err := resolveTradeType(cmd, app)
	if err != nil {
		return "", nil, err
	}

	trades, err := app.Store.GetTrades(cmd.Context(), app.UserID(), store.TradeQuery{Type: tradeType})
	if err != nil {
		return "", nil, err
	}

	state := analytics.FilterState{Selections: map[string][]string{}}
	state.From, _ = cmd.Flags().GetString("from")
	state.To, _ = cmd.Flags().GetString("to")
	for _, field := range analytics.FilterFields {
		if values, _ := cmd.Flags().GetStringSlice(field); len(values) > 0 {
			state.Selections[field] = values
		}
	}

	return tradeType, analytics.Apply(trades, state), nil
}

func runDashboard(cmd *cobra.Command, app *App) error {
	output := NewOutput(cmd)

	tradeType, trades, err := loadFilteredTrades(cmd, app)
	if err != nil {
		return err
	}
	cfg := analytics.ConfigFor(tradeType)

	only, _ := cmd.Flags().GetString("section")

	if output.IsJSON() {
		return output.JSON(dashboardJSON(app, cfg, trades, only))
	}

	output.Bold("%s dashboard — %d trades", tradeType, len(trades))
	output.Println()

	for _, section := range dashboardSections {
		if only != "" && section.name != only {
			continue
		}
		if !app.Access.CanUse(section.featureID, app.Plan()) {
			output.Dim("[%s] locked on plan %q", section.name, app.Plan())
			continue
		}
		section.render(output, cfg, trades)
		output.Println()
	}
	return nil
}

// dashboardJSON assembles the unlocked sections for JSON output.
func dashboardJSON(app *App, cfg analytics.TypeConfig, trades []models.TradeRecord, only string) map[string]interface{} {
	out := map[string]interface{}{}
	compute := map[string]func() interface{}{
		"overview":   func() interface{} { return cfg.Overview(trades) },
		"days":       func() interface{} { return cfg.WinLossDays(trades) },
		"strategy":   func() interface{} { return cfg.RiskStrategy(trades) },
		"entryexit":  func() interface{} { return cfg.EntryExit(trades) },
		"timing":     func() interface{} { return cfg.Timing(trades) },
		"quality":    func() interface{} { return cfg.Quality(trades) },
		"underlying": func() interface{} { return cfg.Underlying(trades) },
	}
	for _, section := range dashboardSections {
		if only != "" && section.name != only {
			continue
		}
		if !app.Access.CanUse(section.featureID, app.Plan()) {
			continue
		}
		out[section.name] = compute[section.name]()
	}
	return out
}

func renderOverview(o *Output, cfg analytics.TypeConfig, trades []models.TradeRecord) {
	v := cfg.Overview(trades)
	o.Bold("Overview")
	o.Printf("  Trades:        %d\n", v.TotalTrades)
	o.Printf("  Net P&L:       %s\n", o.FormatPnL(v.NetPNL))
	o.Printf("  Win rate:      %s%%  (loss %s%%)\n", v.WinRate, v.LossRate)
	o.Printf("  Avg P&L:       %s\n", o.FormatPnL(v.AvgPNL))
	o.Printf("  Profit factor: %s\n", v.ProfitFactor)
	o.Printf("  Expectancy:    %s\n", o.FormatPnL(v.Expectancy))
	o.Printf("  Max drawdown:  %s (%s%%)\n", FormatIndianCurrency(v.MaxDrawdown), v.MaxDDPercent)
}

func renderWinLossDays(o *Output, cfg analytics.TypeConfig, trades []models.TradeRecord) {
	v := cfg.WinLossDays(trades)
	o.Bold("Win/Loss Days")
	o.Printf("  Win days:   %d (avg %s, max %s)\n",
		v.WinDays, FormatIndianCurrency(v.AvgWinDay), FormatIndianCurrency(v.MaxWinDay))
	o.Printf("  Loss days:  %d (avg %s, max %s)\n",
		v.LossDays, FormatIndianCurrency(v.AvgLossDay), FormatIndianCurrency(v.MaxLossDay))
	o.Printf("  Streaks:    %d win days / %d loss days\n", v.ConsecutiveWinDays, v.ConsecutiveLossDays)
	o.Printf("  Trades:     %d win streak / %d loss streak\n", v.ConsecutiveWinTrades, v.ConsecutiveLossTrades)
}

func renderRiskStrategy(o *Output, cfg analytics.TypeConfig, trades []models.TradeRecord) {
	v := cfg.RiskStrategy(trades)
	o.Bold("Risk & Strategy")
	o.Printf("  Avg risk:        %s\n", FormatIndianCurrency(v.AvgRisk))
	o.Printf("  Max risk:        %s\n", FormatIndianCurrency(v.MaxRisk))
	o.Printf("  Max drawdown:    %s\n", FormatIndianCurrency(v.MaxDrawdown))
	o.Printf("  Recovery factor: %s (%d days)\n", v.RecoveryFactor, v.RecoveryDays)
	if v.BestStrategy != "" {
		o.Printf("  Best:            %s\n", v.BestStrategy)
		o.Printf("  Worst:           %s\n", v.WorstStrategy)
		o.Printf("  Most consistent: %s\n", v.ConsistentStrategy)
	}

	if len(v.Strategies) > 0 {
		table := NewTable(o, "STRATEGY", "TRADES", "WIN%", "P&L", "AVG RR", "MAX DD")
		for _, name := range sortedKeys(v.Strategies) {
			s := v.Strategies[name]
			table.AddRow(name,
				itoa(s.Wins+s.Losses),
				s.WinPct()+"%",
				o.FormatPnL(s.PnL),
				s.AvgRR(),
				FormatIndianCurrency(s.MaxDrawdown))
		}
		table.Render()
	}
}

func renderEntryExit(o *Output, cfg analytics.TypeConfig, trades []models.TradeRecord) {
	v := cfg.EntryExit(trades)
	o.Bold("Entry/Exit")
	if v.BestEntry != "" {
		o.Printf("  Best entry reason:  %s\n", v.BestEntry)
		o.Printf("  Worst entry reason: %s\n", v.WorstEntry)
	}
	if v.BestExit != "" {
		o.Printf("  Best exit reason:   %s\n", v.BestExit)
		o.Printf("  Worst exit reason:  %s\n", v.WorstExit)
	}
	o.Printf("  Premature exits:    %s%%\n", v.PrematureExitPct)
	o.Printf("  Exits before SL:    %s%%\n", v.SLBeforeExitPct)
	o.Printf("  SL jumps:           %s%%\n", v.SLJumpExitPct)

	if len(v.Confidence) > 0 {
		table := NewTable(o, "CONFIDENCE", "TRADES", "SHARE", "WIN%", "P&L", "AVG RR")
		for _, name := range sortedKeys(v.Confidence) {
			s := v.Confidence[name]
			table.AddRow(name,
				itoa(s.Trades),
				s.TradePct(v.TotalTrades)+"%",
				s.WinPct()+"%",
				o.FormatPnL(s.PnL),
				s.AvgRR())
		}
		table.Render()
	}
}

func renderTiming(o *Output, cfg analytics.TypeConfig, trades []models.TradeRecord) {
	v := cfg.Timing(trades)
	o.Bold("Timing")
	if v.BestTimeRange != "" {
		o.Printf("  Time range: best %s / worst %s\n", v.BestTimeRange, v.WorstTimeRange)
	}
	if v.BestTimeframe != "" {
		o.Printf("  Timeframe:  best %s / worst %s\n", v.BestTimeframe, v.WorstTimeframe)
	}
	if v.BestWeekday != "" {
		o.Printf("  Weekday:    best %s / worst %s\n", v.BestWeekday, v.WorstWeekday)
	}
	if v.BestStrike != "" {
		o.Printf("  Strike:     best %s / worst %s\n", v.BestStrike, v.WorstStrike)
	}
	o.Printf("  Trades/day: avg %s, max %d\n", v.AvgTradesPerDay, v.MaxTradesPerDay)
	o.Printf("  Long:       %s (%s%% win)\n", o.FormatPnL(v.LongPNL), v.LongWinPct)
	o.Printf("  Short:      %s (%s%% win)\n", o.FormatPnL(v.ShortPNL), v.ShortWinPct)
	if v.WeeklyPNL != 0 || v.MonthlyPNL != 0 {
		o.Printf("  Expiry:     weekly %s / monthly %s\n", o.FormatPnL(v.WeeklyPNL), o.FormatPnL(v.MonthlyPNL))
	}
}

func renderQuality(o *Output, cfg analytics.TypeConfig, trades []models.TradeRecord) {
	v := cfg.Quality(trades)
	o.Bold("Trade Quality")
	o.Printf("  Planned RR:  %s  actual %s  slippage %s\n", v.AvgPlannedRR, v.AvgActualRR, v.AvgRRSlippage)
	o.Printf("  RR >= 1/2/3: %s%% / %s%% / %s%%\n", v.RR1Pct, v.RR2Pct, v.RR3Pct)
	o.Printf("  Target hit:  %s%%  SL hit: %s%%\n", v.TargetHitPct, v.SLHitPct)
	if v.CallTrades > 0 || v.PutTrades > 0 {
		o.Printf("  CALL: %d trades, %s, %s%% win\n", v.CallTrades, o.FormatPnL(v.CallPNL), v.CallWinRate)
		o.Printf("  PUT:  %d trades, %s, %s%% win\n", v.PutTrades, o.FormatPnL(v.PutPNL), v.PutWinRate)
	}
}

func renderUnderlying(o *Output, cfg analytics.TypeConfig, trades []models.TradeRecord) {
	v := cfg.Underlying(trades)
	o.Bold("Underlying")
	if len(v) == 0 {
		o.Dim("  no tagged trades")
		return
	}
	table := NewTable(o, "UNDERLYING", "TRADES", "WIN%", "P&L", "AVG RR")
	for _, name := range sortedKeys(v) {
		s := v[name]
		table.AddRow(name, itoa(s.Trades), s.WinPct()+"%", o.FormatPnL(s.PnL), s.AvgRR())
	}
	table.Render()
}

func newFilterOptionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filters",
		Short: "List selectable filter values per field",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return errors.ErrDatabaseError
			}

			tradeType, err := resolveTradeType(cmd, app)
			if err != nil {
				return err
			}
			trades, err := app.Store.GetTrades(cmd.Context(), app.UserID(), store.TradeQuery{Type: tradeType})
			if err != nil {
				return err
			}

			options := analytics.Options(trades)
			if output.IsJSON() {
				return output.JSON(options)
			}

			for _, field := range analytics.FilterFields {
				values := options[field]
				if len(values) == 0 {
					continue
				}
				output.Bold(field)
				for _, v := range values {
					output.Printf("  %s\n", v)
				}
			}
			return nil
		},
	}

	cmd.Flags().String("type", "", "trade type (default from config)")
	return cmd
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
