package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wareki/cmd/wareki/ui"
	"wareki/internal/config"
	"wareki/internal/logging"
	"wareki/internal/wareki"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

var (
	// Global flags
	verbose    bool
	configPath string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wareki [query]",
	Short: "wareki - convert between 西暦 and 和暦 years",
	Long: `wareki converts a Gregorian year (西暦) to every Japanese era year (和暦)
it falls in, and parses era years such as 令和5, H30 or s64 back to Gregorian.

Run without a subcommand to open the interactive search list. Any arguments
are concatenated into the initial query.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", configPath, err)
		}

		// The search UI owns the terminal; it only logs to a file
		if isInteractive(cmd) {
			logger, err = logging.NewFileOnly(cfg.Logging, verbose)
		} else {
			logger, err = logging.New(cfg.Logging, verbose)
		}
		if err != nil {
			return err
		}

		logging.For(logger, logging.CategoryBoot).Debug("Config loaded",
			zap.String("path", configPath),
			zap.String("command", cmd.Name()),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runSearch,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Config file path")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(erasCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// versionCmd prints the build version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the wareki version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "wareki %s\n", Version)
	},
}

// isInteractive reports whether cmd runs the search UI.
func isInteractive(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "search"
}

// searchCmd opens the interactive list
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Open the interactive search list",
	Long: `Opens a search box over the conversion results. Every keystroke re-runs the
conversion. Press enter to copy the selected row, tab to move focus to the
list, esc to quit.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	log := logging.For(logger, logging.CategoryUI)
	log.Info("Starting search UI", zap.String("theme", cfg.UI.Theme))

	return ui.RunSearch(ui.SearchOptions{
		Table:       wareki.Default,
		Styles:      ui.NewStyles(ui.ThemeByName(cfg.UI.Theme)),
		Placeholder: cfg.UI.Placeholder,
		Normalize:   cfg.NormalizeInput,
		Query:       joinArgs(args),
		Logger:      log,
	})
}

// joinArgs concatenates args so "wareki 令和 5" seeds the query "令和5".
func joinArgs(args []string) string {
	return strings.Join(args, "")
}
