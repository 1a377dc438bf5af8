package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/guiyumin/linkparse/internal/config"
	"github.com/guiyumin/linkparse/internal/linkparser"
	"github.com/guiyumin/linkparse/internal/logging"
	"github.com/guiyumin/linkparse/internal/output"
	"github.com/guiyumin/linkparse/internal/scan"
	"github.com/guiyumin/linkparse/internal/version"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	format     string
	strict     bool
	verbose    bool
	configFile string

	// cfg is loaded before any command runs
	cfg = config.DefaultConfig()
)

var errUnrecognized = errors.New("unrecognized links")

var warnStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF9500", Dark: "#FFAA33"})

var rootCmd = &cobra.Command{
	Use:   "linkparse [url...]",
	Short: "Classify GitHub and StackOverflow links",
	Long: `linkparse recognizes links to known services and extracts their identifiers:

  https://github.com/alice/my-repo                      -> github        alice/my-repo
  https://stackoverflow.com/questions/12345/how-to-foo  -> stackoverflow 12345

Anything else is reported as unrecognized.`,
	Example: `  linkparse https://github.com/alice/my-repo
  linkparse -f json https://stackoverflow.com/questions/12345/how-to-foo
  linkparse scan bookmarks.html --summary`,
	Args:              cobra.ArbitraryArgs,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runClassify(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default "+config.SavePath()+")")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "output format: text, table, json, id")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "exit with an error if any link is unrecognized")
}

// Execute runs the root command, cancelling work when ctx is done
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadConfig reads the config file and installs the logger
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if configFile != "" {
		cfg, err = config.LoadFrom(configFile)
		if err != nil {
			return err
		}
	} else {
		cfg, err = config.Load()
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render(fmt.Sprintf("Ignoring config: %v", err)))
			cfg = config.DefaultConfig()
		}
	}

	log.Logger = logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Verbose: verbose,
	})
	log.Debug().Str("config", config.SavePath()).Bool("exists", config.Exists()).Msg("configuration loaded")

	if format != "" && !slices.Contains(config.Formats, format) {
		return fmt.Errorf("%w: %q (want one of %v)", config.ErrInvalidFormat, format, config.Formats)
	}
	return nil
}

// outputFormat returns the --format flag or the configured default
func outputFormat() string {
	if format != "" {
		return format
	}
	return cfg.Format
}

func runClassify(cmd *cobra.Command, urls []string) error {
	parser := linkparser.Default()

	results := make([]scan.Result, len(urls))
	for i, u := range urls {
		link, ok := parser.Resolve(u)
		results[i] = scan.Result{Index: i, URL: u, Link: link, OK: ok}
		log.Debug().Str("url", u).Bool("recognized", ok).Str("service", link.Service).Msg("classified")
	}

	if err := output.Render(cmd.OutOrStdout(), outputFormat(), results); err != nil {
		return err
	}
	return checkStrict(results)
}

// checkStrict fails when --strict is set and some result is unrecognized
func checkStrict(results []scan.Result) error {
	if !strict {
		return nil
	}
	summary := scan.Summarize(results)
	if summary.Unrecognized > 0 {
		return fmt.Errorf("%d of %d: %w", summary.Unrecognized, summary.Total, errUnrecognized)
	}
	return nil
}
