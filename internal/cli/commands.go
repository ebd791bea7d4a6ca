package cli

import (
	"os"
	"strings"

	"github.com/rileyhilliard/cfx/internal/errors"
	"github.com/rileyhilliard/cfx/internal/monitor"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	limitFlag     int
	yesFlag       bool
	initForceFlag bool
	initPathFlag  string
	versionShort  bool
)

// defaultResults caps search and browse output unless --limit is given.
const defaultResults = 25

// withSession runs fn with a session that publishes nowhere. One-shot
// commands print their own results.
func withSession(fn func(*session) error) error {
	sess, err := newSession(monitor.NopPublisher{})
	if err != nil {
		return err
	}
	defer sess.Close()
	return fn(sess)
}

// lookupCmd fetches a server once
var lookupCmd = &cobra.Command{
	Use:   "lookup <code|link>",
	Short: "Show a server's current players and details",
	Long: `Look up a server by its join code or cfx.re link and print its
current player count, ping, game mode, map and online players.

The code is added to your recent searches.

Examples:
  cfx lookup abc123
  cfx lookup https://cfx.re/join/abc123
  cfx lookup abc123 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			return lookupCommand(cmd.Context(), cmd.OutOrStdout(), s.app, args[0])
		})
	},
}

// watchCmd opens the live dashboard
var watchCmd = &cobra.Command{
	Use:   "watch [code|link]",
	Short: "Watch a server's player count live",
	Long: `Open a live dashboard that refreshes the watched server on an interval
(poll.interval, 30s by default) and charts its player count.

From the dashboard you can look up other servers, search and browse the
directory, and manage favorites. Press ? for keyboard shortcuts.

When stdout is not a terminal, one line is printed per refresh instead.
With --json, each refresh is a JSON object on its own line.

Examples:
  cfx watch
  cfx watch abc123
  cfx watch abc123 | tee players.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := ""
		if len(args) == 1 {
			input = args[0]
		}
		return watchCommand(cmd.Context(), cmd.OutOrStdout(), input)
	},
}

// searchCmd searches the directory
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the server directory",
	Long: `Search the public server directory by free text.

Examples:
  cfx search roleplay
  cfx search "los santos" --limit 10`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			return searchCommand(cmd.Context(), cmd.OutOrStdout(), s.app, strings.Join(args, " "))
		})
	},
}

// browseCmd lists the directory
var browseCmd = &cobra.Command{
	Use:   "browse [filter]",
	Short: "Browse the full server directory",
	Long: `List servers from the full directory, optionally filtered by name or
game mode (case-insensitive).

Examples:
  cfx browse
  cfx browse freeroam
  cfx browse --limit 0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			return browseCommand(cmd.Context(), cmd.OutOrStdout(), s.app, strings.Join(args, " "))
		})
	},
}

// favoritesCmd groups the favorites subcommands
var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "Manage favorite servers",
	Long: `List, add and remove favorite servers. Favorites keep the snapshot
taken when they were saved and can be opened from the dashboard with F.

Examples:
  cfx favorites
  cfx favorites add abc123
  cfx favorites remove abc123
  cfx favorites clear --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			return favoritesList(cmd.OutOrStdout(), s.app)
		})
	},
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite servers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			return favoritesList(cmd.OutOrStdout(), s.app)
		})
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <code|link>",
	Short: "Look up a server and add it to favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			return favoritesAdd(cmd.Context(), cmd.OutOrStdout(), s.app, args[0])
		})
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a favorite (pick from a list when no id is given)",
	Args:  cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var ids []string
		_ = withSession(func(s *session) error {
			for _, f := range s.app.Lists().Favorites {
				ids = append(ids, f.ID+"\t"+f.Name)
			}
			return nil
		})
		return ids, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		return withSession(func(s *session) error {
			return favoritesRemove(cmd.OutOrStdout(), s.app, id)
		})
	},
}

var favoritesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every favorite",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			return favoritesClear(cmd.OutOrStdout(), s.app, yesFlag)
		})
	},
}

// recentCmd groups the recent-search subcommands
var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show recent searches",
	Long: `Show the most recently looked-up server codes, newest first.

Examples:
  cfx recent
  cfx recent clear`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			return recentList(cmd.OutOrStdout(), s.app)
		})
	},
}

var recentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget recent searches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			return recentClear(cmd.OutOrStdout(), s.app, yesFlag)
		})
	},
}

// configCmd groups the config subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create, inspect and edit the config file",
	Long: `Manage the cfx config file.

Settings are read from --config, $XDG_CONFIG_HOME/cfx/config.yaml or
~/.config/cfx/config.yaml, in that order. Any key can be overridden with an
environment variable such as CFX_POLL_INTERVAL=1m, also read from a .env
file in the working directory.

Examples:
  cfx config init
  cfx config show
  cfx config set poll.interval 1m`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShow(cmd.OutOrStdout())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := initPathFlag
		if path == "" {
			path = configFlag
		}
		return configInit(cmd.OutOrStdout(), path, initForceFlag)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShow(cmd.OutOrStdout())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting in the config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return configSet(cmd.OutOrStdout(), args[0], args[1])
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configPath(cmd.OutOrStdout())
	},
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of cfx.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return versionCommand(cmd.OutOrStdout(), versionShort)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for cfx.

Examples:
  # Bash
  cfx completion bash > /etc/bash_completion.d/cfx

  # Zsh
  cfx completion zsh > "${fpath[1]}/_cfx"

  # Fish
  cfx completion fish > ~/.config/fish/completions/cfx.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrMalformedInput,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// search and browse flags
	searchCmd.Flags().IntVarP(&limitFlag, "limit", "n", defaultResults, "maximum results to print (0 for all)")
	browseCmd.Flags().IntVarP(&limitFlag, "limit", "n", defaultResults, "maximum results to print (0 for all)")

	// clear confirmations
	favoritesClearCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "skip the confirmation prompt")
	recentClearCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "skip the confirmation prompt")

	// config init flags
	configInitCmd.Flags().BoolVarP(&initForceFlag, "force", "f", false, "overwrite existing config")
	configInitCmd.Flags().StringVar(&initPathFlag, "path", "", "where to write the file (default $XDG_CONFIG_HOME/cfx/config.yaml)")

	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")

	favoritesCmd.AddCommand(favoritesListCmd, favoritesAddCmd, favoritesRemoveCmd, favoritesClearCmd)
	recentCmd.AddCommand(recentClearCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd, configSetCmd, configPathCmd)

	// Register all commands
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}
