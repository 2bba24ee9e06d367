package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/brogergvhs/choirscrape/internal/config"
	"github.com/brogergvhs/choirscrape/internal/csvout"
	"github.com/brogergvhs/choirscrape/internal/hymns"
	"github.com/brogergvhs/choirscrape/internal/providers"
	"github.com/brogergvhs/choirscrape/internal/providers/eg"
	"github.com/brogergvhs/choirscrape/internal/ui"
	"github.com/brogergvhs/choirscrape/internal/util"
)

var (
	flagEGOutput     string
	flagEGVerify     string
	flagEGVerifyPath string
	flagEGDelay      time.Duration
	flagEGRange      string
	flagEGList       string
	flagEGDryRun     bool
	flagEGCloudflare bool
)

func init() {
	egCmd := &cobra.Command{
		Use:   "eg",
		Short: "Write Nr;Titel;Rubrik;Komponist;Dichter of the Evangelisches Gesangbuch (Nr 1-535) to CSV",
		Args:  cobra.NoArgs,
		RunE:  runEG,
	}

	egCmd.Flags().StringVar(&flagEGOutput, "out", "", "output CSV file (default EG_1-535.csv)")
	egCmd.Flags().StringVar(&flagEGVerify, "verify", "", "TLS verification: system|certifi|none (none is insecure)")
	egCmd.Flags().StringVar(&flagEGVerifyPath, "verify-path", "", "path to a PEM CA bundle, overrides --verify")
	egCmd.Flags().DurationVar(&flagEGDelay, "delay", 150*time.Millisecond, "minimum time between song page requests")
	egCmd.Flags().StringVar(&flagEGRange, "range", "", "only hymns in this number range (e.g. 1-50)")
	egCmd.Flags().StringVar(&flagEGList, "list", "", "only these hymn numbers (e.g. 1,23,70)")
	egCmd.Flags().BoolVar(&flagEGDryRun, "dry-run", false, "list the selected hymns, don't fetch authors or write CSV")
	egCmd.Flags().BoolVar(&flagEGCloudflare, "cloudflare-bypass", false, "use a browser-like TLS transport")

	egCmd.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	egCmd.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	egCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")

	rootCmd.AddCommand(egCmd)
}

// applyEGOverrides applies the flags that config.Options can't carry:
// --delay 0 is a valid value, so only an explicitly set flag wins.
func applyEGOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("delay") {
		cfg.EG.Delay = max(0, flagEGDelay)
	}
	if flagEGCloudflare {
		cfg.EG.CloudflareBypass = true
	}
}

func runEG(cmd *cobra.Command, _ []string) error {
	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		UserAgent:    flagUserAgent,
		Cookie:       flagCookie,
		CookieFile:   flagCookieFile,
		EGOutput:     flagEGOutput,
		EGVerify:     flagEGVerify,
		EGVerifyPath: flagEGVerifyPath,
		EGRange:      flagEGRange,
		EGList:       flagEGList,
	})
	if err != nil {
		return err
	}

	applyEGOverrides(cmd, cfg)

	logSvc := ui.NewLogger(cfg.Debug)
	logSvc.Debugf("config: %s", usedPath)

	if cfg.EG.Verify == util.VerifyNone && cfg.EG.VerifyPath == "" {
		logSvc.Warnf("TLS certificate verification is disabled")
	}
	logSvc.Infof("TLS verify: %s", util.VerifyLabel(cfg.EG.Verify, cfg.EG.VerifyPath))

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:          cfg.EG.Timeout,
		UserAgent:        util.PickUserAgent(cfg.UserAgent),
		Cookie:           cfg.Cookie,
		CookieFile:       cfg.CookieFile,
		Verify:           cfg.EG.Verify,
		CAFile:           cfg.EG.VerifyPath,
		CloudflareBypass: cfg.EG.CloudflareBypass,
		DebugLogger:      logSvc,
	})
	if err != nil {
		return err
	}

	ctx, cancel := util.InterruptContext(context.Background())
	defer cancel()

	scr := eg.NewScraper(client, logSvc, eg.Sources{
		WikiURL:     cfg.EG.WikiURL,
		SongbookURL: cfg.EG.SongbookURL,
		SongBaseURL: cfg.EG.SongBaseURL,
	}, cfg.EG.Delay)

	logSvc.Infof("1/3: rubrics (Wikipedia)")
	rubrics, err := scr.Rubrics(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logSvc.Warnf("%v", err)
		logSvc.Warnf("rubrics stay empty; try --verify-path <pem> or --verify none if this is a TLS error")
	}

	logSvc.Infof("2/3: titles and links (Liederdatenbank)")
	songs, err := scr.Songs(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logSvc.Errorf("%v", err)
	}
	if len(songs) < cfg.EG.MinExpected {
		logSvc.Warnf("only %d songs found, expected at least %d; check network or page layout. The CSV is written anyway", len(songs), cfg.EG.MinExpected)
	}

	selected, err := hymns.Filter(songs, cfg.EG.Range, cfg.EG.List)
	if err != nil {
		return err
	}

	if flagEGDryRun {
		printSongTable(selected, rubrics)
		return nil
	}

	out, err := csvout.Open(cfg.EG.Output, providers.HymnHeader, csvout.Options{BOM: true})
	if err != nil {
		return err
	}

	stats, err := fetchHymns(ctx, scr, selected, rubrics, out, logSvc)
	if cerr := out.Close(); cerr != nil && err == nil {
		err = cerr
	}

	stats.Print(os.Stdout, "EG", time.Since(stats.start))
	printOutput(cfg.EG.Output)

	if len(rubrics) == 0 {
		logSvc.Infof("rubrics are empty (Wikipedia unreachable?); they can be filled in later")
	}

	return err
}

type runStats struct {
	ui.Stats
	start time.Time
}

func fetchHymns(ctx context.Context, scr *eg.Scraper, songs []providers.Song, rubrics map[int]string, out *csvout.Writer, logSvc *ui.Logger) (*runStats, error) {
	stats := &runStats{start: time.Now()}

	logSvc.Infof("3/3: melody and text authors for %d songs", len(songs))

	pm := ui.NewProgressManager(os.Stdout)
	handle := pm.Register("Authors", "songs", len(songs))
	defer pm.Close()

	for _, s := range songs {
		composer, lyricist, err := scr.Authors(ctx, s.URL)
		if err != nil {
			if ctx.Err() != nil {
				handle.Abort()
				return stats, ctx.Err()
			}

			logSvc.Debugf("Nr %d (%s): %v", s.Nr, s.URL, err)
			stats.Failed.Add(1)
		}

		h := providers.Hymn{Song: s, Rubric: rubrics[s.Nr], Composer: composer, Lyricist: lyricist}
		if err := out.Write(h.Record()); err != nil {
			handle.Abort()
			return stats, fmt.Errorf("writing Nr %d: %w", s.Nr, err)
		}

		stats.Written.Add(1)
		if composer == "" && lyricist == "" {
			stats.Empty.Add(1)
		}
		handle.Increment()
	}

	handle.MarkDone()
	return stats, nil
}

func printSongTable(songs []providers.Song, rubrics map[int]string) {
	fmt.Printf("Dry-run: %d hymns selected.\n\n", len(songs))

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Nr", "Titel", "Rubrik", "URL"})
	for _, s := range songs {
		t.AppendRow(table.Row{strconv.Itoa(s.Nr), s.Title, rubrics[s.Nr], s.URL})
	}
	t.Render()
}

func printOutput(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}

	fmt.Printf("Output:     %s (%s)\n", path, util.Human(info.Size()))
}
