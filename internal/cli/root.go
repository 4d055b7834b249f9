// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tradebook/internal/access"
	"tradebook/internal/config"
	"tradebook/internal/logging"
	"tradebook/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-08-29"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.TradeStore
	Access access.Resolver
}

// UserID returns the journal owner the commands operate on.
func (a *App) UserID() string {
	return a.Config.Journal.UserID
}

// Plan returns the configured subscription plan.
func (a *App) Plan() string {
	return a.Config.Access.Plan
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logging.WithUser(logger, cfg.Journal.UserID),
		Access: access.NewRegistry(access.DefaultFeatures()),
	}

	tradeStore, err := store.NewSQLiteStore(cfg.Journal.DatabasePath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, journal commands will be unavailable")
	} else {
		app.Store = tradeStore
		logger.Debug().Str("path", cfg.Journal.DatabasePath).Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "tradebook",
		Short: "Tradebook - trading journal and KPI dashboard CLI",
		Long: `Tradebook is a trading journal for Indian market traders.

It records trades across options, equity, futures and swing segments and
computes dashboard KPIs: win/loss analysis, drawdown, strategy breakdowns,
entry/exit quality, timing and risk-reward metrics.

Use 'tradebook help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/tradebook)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addTradeCommands(rootCmd, app)
	addDashboardCommands(rootCmd, app)
	addExportCommands(rootCmd, app)
	addFeatureCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Tradebook v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Journal Configuration")
	output.Printf("  Database:     %s\n", cfg.Journal.DatabasePath)
	output.Printf("  Default Type: %s\n", cfg.Journal.DefaultType)
	output.Printf("  User:         %s\n", cfg.Journal.UserID)
	output.Printf("  Export Dir:   %s\n", cfg.Journal.ExportDir)
	output.Println()

	output.Bold("Access")
	output.Printf("  Plan:         %s\n", cfg.Access.Plan)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:        %s\n", cfg.Logging.Level)
	output.Printf("  Console:      %v\n", cfg.Logging.Console)
	output.Printf("  File:         %v\n", cfg.Logging.File)

	return nil
}
