package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rileyhilliard/cfx/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var (
	configFlag  string
	noColorFlag bool
	verboseFlag bool
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "cfx",
	Short: "Look up and watch FiveM servers from the terminal",
	Long: `cfx looks up FiveM servers by join code or cfx.re link, searches and
browses the public server directory, and watches a server's player count
in a live dashboard.

Favorites and recent searches are kept between runs.

Examples:
  cfx lookup abc123
  cfx watch cfx.re/join/abc123
  cfx search "los santos"
  cfx favorites list`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag || os.Getenv("NO_COLOR") != "" || machineMode {
			ui.DisableColors()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default $XDG_CONFIG_HOME/cfx/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&machineMode, "json", false, "machine-readable JSON output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "debug logging to the log file")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// reportError prints err as JSON in machine mode, or in the human format.
func reportError(err error) {
	if machineMode {
		_ = WriteJSONFromError(os.Stdout, err)
		return
	}

	if isUnknownCommandError(err) {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.SymbolFail, err)
		if name := extractUnknownCommand(err); name != "" {
			if suggestions := rootCmd.SuggestionsFor(name); len(suggestions) > 0 {
				fmt.Fprintf(os.Stderr, "\n  Did you mean: %s?\n", strings.Join(suggestions, ", "))
			}
		}
		fmt.Fprintln(os.Stderr, "\n  Run 'cfx --help' to see available commands.")
		return
	}

	fmt.Fprint(os.Stderr, ui.ErrorStyle().Render(err.Error()))
	if !strings.HasSuffix(err.Error(), "\n") {
		fmt.Fprintln(os.Stderr)
	}
}

// isUnknownCommandError checks whether cobra rejected the command line itself.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "cfx"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
