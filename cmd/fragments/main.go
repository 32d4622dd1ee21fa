package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-fragments/internal/logging"
	"github.com/goliatone/go-fragments/pkg/config"
)

var (
	// Global flags
	verbose     bool
	configPath  string
	logEncoding string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fragments",
	Short: "Compose static HTML pages from shared fragments",
	Long: `fragments fills host pages the way the browser-side loader does: every
element carrying data-include receives its fragment, the body container gets
the fragment chosen by the page's template code, and #{key} placeholders are
replaced with values from the page query string.

Failures never abort a page; the affected container shows a notice instead.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Log.Level, verbose, logEncoding)
		if err != nil {
			return err
		}
		logger.Debug("configuration loaded", zap.String("path", configPath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "fragments.yaml", "Configuration file (missing file means built-in defaults)")
	rootCmd.PersistentFlags().StringVar(&logEncoding, "log-format", "console", "Log encoding: console or json")

	composeCmd.Flags().StringVar(&composeURL, "url", "", "Page location, or just a query string such as '?name=Alice'")
	composeCmd.Flags().StringVar(&composeRoot, "root", "", "Site root fragment paths resolve in (default: server.root)")
	composeCmd.Flags().StringVarP(&composeOut, "out", "o", "", "Write the composed page to this file instead of stdout")
	composeCmd.Flags().BoolVar(&composeSimple, "simple", false, "Insert include fragments raw, without placeholders or body loading")
	composeCmd.Flags().BoolVarP(&composeInteractive, "interactive", "i", false, "Prompt for placeholders left unresolved and compose again")

	inspectCmd.Flags().StringVar(&inspectURL, "url", "", "Page location, or just a query string")
	inspectCmd.Flags().StringVar(&inspectRoot, "root", "", "Site root the page lives in (default: server.root)")

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: server.addr)")
	serveCmd.Flags().StringVar(&serveRoot, "root", "", "Site directory to serve (default: server.root)")
	serveCmd.Flags().BoolVar(&serveDemo, "demo", false, "Serve the bundled example site")

	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
