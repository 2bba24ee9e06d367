package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/choirscrape/internal/config"
	"github.com/brogergvhs/choirscrape/internal/icons"
	"github.com/brogergvhs/choirscrape/internal/ui"
	"github.com/brogergvhs/choirscrape/internal/util"
)

var (
	flagIconsDir string
	flagIconsSVG bool
)

func init() {
	iconsCmd := &cobra.Command{
		Use:   "icons",
		Short: "Generate the PWA icons, shortcut icons and screenshots of the choir front-end",
		Args:  cobra.NoArgs,
		RunE:  runIcons,
	}

	iconsCmd.Flags().StringVar(&flagIconsDir, "dir", "", "output directory (default choir-app-frontend/public/assets/icons)")
	iconsCmd.Flags().BoolVar(&flagIconsSVG, "svg", false, "also write SVG versions")

	rootCmd.AddCommand(iconsCmd)
}

func runIcons(_ *cobra.Command, _ []string) error {
	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		IconsDir:     flagIconsDir,
		IconsSVG:     flagIconsSVG,
	})
	if err != nil {
		return err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	logSvc.Debugf("config: %s", usedPath)

	written, err := icons.Generate(cfg.Icons.Dir, icons.Options{SVG: cfg.Icons.SVG}, logSvc)
	if err != nil {
		return err
	}

	var total int64
	for _, p := range written {
		if info, err := os.Stat(p); err == nil {
			total += info.Size()
		}
	}

	fmt.Println()
	fmt.Println("Icons Summary:")
	fmt.Printf("Files: %d\n", len(written))
	fmt.Printf("Data:  %s\n", util.Human(total))
	fmt.Printf("Dir:   %s\n", cfg.Icons.Dir)

	return nil
}
