package cli

import (
	"os"

	"github.com/guiyumin/linkparse/internal/linkparser"
	"github.com/guiyumin/linkparse/internal/output"
	"github.com/guiyumin/linkparse/internal/scan"
	"github.com/guiyumin/linkparse/internal/source"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Below this many URLs the progress bar would only flicker
const progressThreshold = 200

var (
	scanHTML       bool
	scanWorkers    int
	scanSummary    bool
	scanNoProgress bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <file|-|remote:path>",
	Short: "Classify every URL in a file, stdin or WebDAV remote",
	Long: `Read URLs and classify them in parallel.

Plain files hold one URL per line; blank lines and lines starting with # are
skipped. HTML files (.html, .htm or --html) contribute the href of every link.

Inputs:
  links.txt            local file
  -                    stdin
  nas:/lists/x.txt     file on a configured WebDAV remote
  webdav://host/x.txt  file on an ad-hoc WebDAV server`,
	Example: `  linkparse scan links.txt
  cat links.txt | linkparse scan - -f id
  linkparse scan nas:/exports/bookmarks.html --summary`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanHTML, "html", false, "treat input as HTML regardless of extension")
	scanCmd.Flags().IntVarP(&scanWorkers, "workers", "w", 0, "parallel workers (default from config)")
	scanCmd.Flags().BoolVar(&scanSummary, "summary", false, "print per-service counts to stderr")
	scanCmd.Flags().BoolVar(&scanNoProgress, "no-progress", false, "disable the progress bar")
	scanCmd.ValidArgsFunction = completeSource

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := args[0]

	opener := source.NewOpener(cfg, log.Logger)
	opener.Stdin = cmd.InOrStdin()

	inputFormat := source.FormatAuto
	if scanHTML {
		inputFormat = source.FormatHTML
	}

	urls, err := opener.ReadURLs(ctx, name, inputFormat)
	if err != nil {
		return err
	}

	workers := cfg.Workers
	if scanWorkers > 0 {
		workers = scanWorkers
	}
	scanner := scan.New(linkparser.Default(), scan.Options{
		Workers: workers,
		Logger:  log.Logger,
	})

	var results []scan.Result
	if showProgress(len(urls)) {
		results, err = scan.RunWithProgress(ctx, scanner, "Scanning", urls, os.Stderr)
	} else {
		results, err = scanner.Scan(ctx, urls, nil)
	}
	if err != nil {
		return err
	}

	if err := output.Render(cmd.OutOrStdout(), outputFormat(), results); err != nil {
		return err
	}

	if scanSummary {
		if err := output.RenderSummary(cmd.ErrOrStderr(), scan.Summarize(results)); err != nil {
			return err
		}
	}

	log.Debug().Str("input", name).Int("urls", len(urls)).Int("workers", workers).Msg("scan finished")
	return checkStrict(results)
}

func showProgress(n int) bool {
	return !scanNoProgress &&
		n >= progressThreshold &&
		term.IsTerminal(int(os.Stderr.Fd()))
}
