package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/choirscrape/internal/config"
	"github.com/brogergvhs/choirscrape/internal/csvout"
	"github.com/brogergvhs/choirscrape/internal/providers"
	"github.com/brogergvhs/choirscrape/internal/providers/carus"
	"github.com/brogergvhs/choirscrape/internal/ui"
	"github.com/brogergvhs/choirscrape/internal/util"
)

var (
	flagCarusURL         string
	flagCarusErrorLog    string
	flagCarusShowBrowser bool
	flagCarusBrowserBin  string
)

func init() {
	carusCmd := &cobra.Command{
		Use:   "carus [output.csv]",
		Short: "Append the works of a Carus choir book page to CSV (Komponist;Titel;Tonart;Besetzung;Textquelle;Dichter)",
		Long: `Opens the choir book page in Chromium, expands every work entry and
appends one row per work. Rows already present in the output file are not
written again, so an interrupted run can simply be restarted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCarus,
	}

	carusCmd.Flags().StringVar(&flagCarusURL, "url", "", "choir book page URL (default Chorbuch Advent)")
	carusCmd.Flags().StringVar(&flagCarusErrorLog, "error-log", "", "file listing entries that failed (default errors.log)")
	carusCmd.Flags().BoolVar(&flagCarusShowBrowser, "show-browser", false, "run the browser with a visible window")
	carusCmd.Flags().StringVar(&flagCarusBrowserBin, "browser-bin", "", "Chromium binary to use instead of the one rod manages")

	rootCmd.AddCommand(carusCmd)
}

func runCarus(_ *cobra.Command, args []string) error {
	output := ""
	if len(args) == 1 {
		output = args[0]
	}

	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig:     flagIgnoreConfig,
		Debug:            flagDebug,
		CarusURL:         flagCarusURL,
		CarusOutput:      output,
		CarusErrorLog:    flagCarusErrorLog,
		CarusShowBrowser: flagCarusShowBrowser,
		CarusBrowserBin:  flagCarusBrowserBin,
	})
	if err != nil {
		return err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	logSvc.Debugf("config: %s", usedPath)

	seen, err := csvout.LoadKeys(cfg.Carus.Output, providers.WorkHeader)
	if err != nil {
		logSvc.Warnf("could not read existing CSV: %v", err)
		seen = map[string]bool{}
	} else if len(seen) > 0 {
		logSvc.Infof("%d existing entries loaded from %s", len(seen), cfg.Carus.Output)
	}

	out, err := csvout.Open(cfg.Carus.Output, providers.WorkHeader, csvout.Options{Append: true, Sync: true})
	if err != nil {
		return err
	}
	defer func() {
		if err := out.Close(); err != nil {
			logSvc.Errorf("closing %s: %v", cfg.Carus.Output, err)
		}
	}()

	ctx, cancel := util.InterruptContext(context.Background())
	defer cancel()

	start := time.Now()

	logSvc.Infof("starting browser and loading %s", cfg.Carus.URL)
	sess, err := carus.OpenSession(ctx, cfg.Carus.URL, carus.BrowserOptions{
		Show: cfg.Carus.ShowBrowser,
		Bin:  cfg.Carus.BrowserBin,
	}, logSvc)
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			logSvc.Debugf("closing browser: %v", err)
		}
		logSvc.Infof("browser closed")
	}()

	entries, err := sess.Entries()
	if err != nil {
		return err
	}
	logSvc.Infof("found %d entries, processing in order", len(entries))

	scr := carus.NewScraper(logSvc, carus.DefaultTiming(), cfg.Carus.MaxConsecutiveEmpty)
	res, runErr := scr.Run(ctx, entries, seen, out)

	logSvc.Infof("processing finished, CSV is in %s", cfg.Carus.Output)

	if len(res.Errors) > 0 {
		logSvc.Warnf("%d entries failed, writing %s", len(res.Errors), cfg.Carus.ErrorLog)
		if err := util.WriteLines(cfg.Carus.ErrorLog, res.Errors); err != nil {
			logSvc.Errorf("%v", err)
		}
	} else {
		logSvc.Infof("no entry errors")
	}

	scr.Stats.Print(os.Stdout, "Carus", time.Since(start))
	printOutput(cfg.Carus.Output)

	if res.Aborted {
		logSvc.Warnf("stopped early after %d consecutive entries without data", cfg.Carus.MaxConsecutiveEmpty)
	}

	return runErr
}
