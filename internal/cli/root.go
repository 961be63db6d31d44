package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/tidytask/internal/alert"
	"github.com/existflow/tidytask/internal/config"
	"github.com/existflow/tidytask/internal/logger"
	"github.com/existflow/tidytask/internal/refresh"
	"github.com/existflow/tidytask/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// app carries what every command needs once the root command has run
type app struct {
	cfg *config.Config
}

// NewRootCmd builds the tidy command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	var (
		logLevel   string
		logFile    string
		logConsole bool
		apiURL     string
	)

	rootCmd := &cobra.Command{
		Use:   "tidy",
		Short: "tidy - todo list client with a trash bin",
		Long: `tidy keeps a to-do list on a remote task service.

Deleted tasks go to the trash, where they can be restored or purged.
Run 'tidy' without arguments to launch the interactive TUI.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				logger.Warn("Failed to load config, using defaults", logger.F("error", err))
				cfg = config.DefaultConfig()
			}

			// Flags override the file and are persisted
			configChanged := false
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
				configChanged = true
			}
			if cmd.Flags().Changed("log-file") {
				cfg.LogFile = logFile
				configChanged = true
			}
			if cmd.Flags().Changed("log-console") {
				cfg.LogConsole = logConsole
				configChanged = true
			}
			if cmd.Flags().Changed("api-url") {
				cfg.APIBaseURL = apiURL
				configChanged = true
			}
			if configChanged {
				if err := cfg.Save(); err != nil {
					logger.Warn("Failed to save config", logger.F("error", err))
				}
			}

			logConfig := logger.DefaultConfig()
			logConfig.Level = logger.ParseLevel(cfg.LogLevel)
			logConfig.FilePath = cfg.LogFile
			logConfig.Console = cfg.LogConsole
			if err := logger.Init(logConfig); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			a.cfg = cfg
			logger.Info("tidy started", logger.F("command", cmd.Name()), logger.F("api", cfg.APIBaseURL))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return a.runList(cmd, listOptions{})
			}

			logger.Info("Launching TUI")
			s := a.newStore()
			refresher := refresh.New(s, a.cfg.RefreshInterval)
			defer refresher.Stop()

			m := tui.NewModel(s, alert.NewHelper(), refresher)
			p := tea.NewProgram(m, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				logger.Error("TUI error", logger.F("error", err))
				return fmt.Errorf("failed to run TUI: %w", err)
			}

			logger.Info("TUI exited normally")
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Info("tidy exiting", logger.F("command", cmd.Name()))
			logger.Close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Base URL of the task service")

	rootCmd.AddCommand(a.newAddCmd())
	rootCmd.AddCommand(a.newListCmd())
	rootCmd.AddCommand(a.newDoneCmd())
	rootCmd.AddCommand(a.newStartCmd())
	rootCmd.AddCommand(a.newEditCmd())
	rootCmd.AddCommand(a.newDeleteCmd())
	rootCmd.AddCommand(a.newTrashCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
