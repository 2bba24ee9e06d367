package cmd

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/choirscrape/internal/config"
)

func delayCommand() *cobra.Command {
	c := &cobra.Command{Use: "eg"}
	c.Flags().DurationVar(&flagEGDelay, "delay", 150*time.Millisecond, "")

	return c
}

func TestApplyEGOverridesDelay(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.EG.Delay = 2 * time.Second

	applyEGOverrides(delayCommand(), cfg)
	require.Equal(t, 2*time.Second, cfg.EG.Delay, "unset flag keeps the profile value")

	c := delayCommand()
	require.NoError(t, c.Flags().Set("delay", "0s"))
	applyEGOverrides(c, cfg)
	require.Zero(t, cfg.EG.Delay)

	c = delayCommand()
	require.NoError(t, c.Flags().Set("delay", "-1s"))
	cfg.EG.Delay = time.Second
	applyEGOverrides(c, cfg)
	require.Zero(t, cfg.EG.Delay)
}
