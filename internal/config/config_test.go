package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", dir)

	return filepath.Join(dir, "choirscrape")
}

func TestLoadMergedWithoutConfig(t *testing.T) {
	isolate(t)

	cfg, used, err := LoadMerged(Options{EGRange: "1-20", CarusOutput: "out.csv"})
	require.NoError(t, err)
	require.Contains(t, used, "default config in memory")

	require.Equal(t, "1-20", cfg.EG.Range)
	require.Equal(t, 150*time.Millisecond, cfg.EG.Delay)
	require.Equal(t, "out.csv", cfg.Carus.Output)
	require.Equal(t, "EG_1-535.csv", cfg.EG.Output)
	require.Equal(t, "errors.log", cfg.Carus.ErrorLog)
	require.Equal(t, 3, cfg.Carus.MaxConsecutiveEmpty)
}

func TestLoadMergedFromActiveProfile(t *testing.T) {
	root := isolate(t)

	path, err := CreateConfig(DefaultLabel)
	require.NoError(t, err)
	require.NoError(t, SwitchConfig(DefaultLabel))
	require.Equal(t, filepath.Join(root, "configs", "Default.yaml"), path)

	yml := "debug: true\n" +
		"eg:\n" +
		"  delay: 500ms\n" +
		"  verify: none\n" +
		"carus:\n" +
		"  output: advent.csv\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	cfg, used, err := LoadMerged(Options{CarusOutput: "override.csv"})
	require.NoError(t, err)
	require.Equal(t, path, used)

	require.True(t, cfg.Debug)
	require.Equal(t, 500*time.Millisecond, cfg.EG.Delay)
	require.Equal(t, "none", cfg.EG.Verify)
	require.Equal(t, DefaultSongbookURL, cfg.EG.SongbookURL)
	require.Equal(t, "override.csv", cfg.Carus.Output)
}

func TestIgnoreConfig(t *testing.T) {
	isolate(t)

	_, err := CreateConfig("Choir")
	require.NoError(t, err)
	require.NoError(t, SwitchConfig("Choir"))

	cfg, used, err := LoadMerged(Options{IgnoreConfig: true, IconsSVG: true})
	require.NoError(t, err)
	require.Equal(t, "(ignored config)", used)
	require.True(t, cfg.Icons.SVG)
}

func TestSaveYAMLRoundTripsDurations(t *testing.T) {
	isolate(t)

	path, err := CreateConfig("Durations")
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "delay: 150ms")

	cfg, err := loadYAML(path)
	require.NoError(t, err)
	require.Equal(t, 150*time.Millisecond, cfg.EG.Delay)
}

func TestProfileLifecycle(t *testing.T) {
	isolate(t)

	_, err := CurrentLabel()
	require.ErrorIs(t, err, ErrNoConfig)

	_, err = CreateConfig(DefaultLabel)
	require.NoError(t, err)
	_, err = CreateConfig("Advent")
	require.NoError(t, err)
	_, err = CreateConfig("Advent")
	require.Error(t, err)
	_, err = CreateConfig("../escape")
	require.Error(t, err)

	require.NoError(t, SwitchConfig("Advent"))
	require.NoError(t, RenameConfig("Advent", "Weihnachten"))

	label, err := CurrentLabel()
	require.NoError(t, err)
	require.Equal(t, "Weihnachten", label)

	list, err := ListConfigs()
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Default", list[0].Label)
	require.Equal(t, "Weihnachten", list[1].Label)
	require.True(t, list[1].Active)

	_, err = RemoveConfig(DefaultLabel)
	require.Error(t, err)

	switched, err := RemoveConfig("Weihnachten")
	require.NoError(t, err)
	require.True(t, switched)

	label, err = CurrentLabel()
	require.NoError(t, err)
	require.Equal(t, DefaultLabel, label)

	_, err = ConfigPathByLabel("Weihnachten")
	require.Error(t, err)
}
