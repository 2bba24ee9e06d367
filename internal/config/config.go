package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWikiURL     = "https://de.wikipedia.org/wiki/Liste_der_Kirchenlieder_im_Evangelischen_Gesangbuch"
	DefaultSongbookURL = "https://liederdatenbank.strehle.de/songbook/8984"
	DefaultSongBaseURL = "https://liederdatenbank.strehle.de"
	DefaultCarusURL    = "https://www.carus-verlag.com/musiknoten-und-aufnahmen/chorbuch-advent-208200.html"
)

type Config struct {
	Debug      bool   `yaml:"debug"`
	UserAgent  string `yaml:"user_agent"`
	Cookie     string `yaml:"cookie"`
	CookieFile string `yaml:"cookie_file"`

	EG    EGConfig    `yaml:"eg"`
	Carus CarusConfig `yaml:"carus"`
	Icons IconsConfig `yaml:"icons"`
}

type EGConfig struct {
	Output      string `yaml:"output"`
	WikiURL     string `yaml:"wiki_url"`
	SongbookURL string `yaml:"songbook_url"`
	SongBaseURL string `yaml:"song_base_url"`

	// Verify is "system" or "none"; VerifyPath points at a PEM bundle and wins over Verify.
	Verify     string `yaml:"verify"`
	VerifyPath string `yaml:"verify_path"`

	Delay            time.Duration `yaml:"delay"`
	Timeout          time.Duration `yaml:"timeout"`
	Range            string        `yaml:"range"`
	List             string        `yaml:"list"`
	MinExpected      int           `yaml:"min_expected"`
	CloudflareBypass bool          `yaml:"cloudflare_bypass"`
}

type CarusConfig struct {
	URL                 string `yaml:"url"`
	Output              string `yaml:"output"`
	ErrorLog            string `yaml:"error_log"`
	ShowBrowser         bool   `yaml:"show_browser"`
	BrowserBin          string `yaml:"browser_bin"`
	MaxConsecutiveEmpty int    `yaml:"max_consecutive_empty"`
}

type IconsConfig struct {
	Dir string `yaml:"dir"`
	SVG bool   `yaml:"svg"`
}

type Options struct {
	IgnoreConfig bool
	Debug        bool
	UserAgent    string
	Cookie       string
	CookieFile   string

	EGOutput     string
	EGVerify     string
	EGVerifyPath string
	EGRange      string
	EGList       string

	CarusURL         string
	CarusOutput      string
	CarusErrorLog    string
	CarusShowBrowser bool
	CarusBrowserBin  string

	IconsDir string
	IconsSVG bool
}

func DefaultConfig() *Config {
	return &Config{
		EG: EGConfig{
			Output:      "EG_1-535.csv",
			WikiURL:     DefaultWikiURL,
			SongbookURL: DefaultSongbookURL,
			SongBaseURL: DefaultSongBaseURL,
			Verify:      "system",
			Delay:       150 * time.Millisecond,
			Timeout:     60 * time.Second,
			MinExpected: 400,
		},
		Carus: CarusConfig{
			URL:                 DefaultCarusURL,
			Output:              "chorbuch_advent.csv",
			ErrorLog:            "errors.log",
			MaxConsecutiveEmpty: 3,
		},
		Icons: IconsConfig{
			Dir: "choir-app-frontend/public/assets/icons",
		},
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `choirscrape config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Debug {
		c.Debug = true
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}

	if o.EGOutput != "" {
		c.EG.Output = o.EGOutput
	}
	if o.EGVerify != "" {
		c.EG.Verify = o.EGVerify
	}
	if o.EGVerifyPath != "" {
		c.EG.VerifyPath = o.EGVerifyPath
	}
	if o.EGRange != "" {
		c.EG.Range = o.EGRange
	}
	if o.EGList != "" {
		c.EG.List = o.EGList
	}

	if o.CarusURL != "" {
		c.Carus.URL = o.CarusURL
	}
	if o.CarusOutput != "" {
		c.Carus.Output = o.CarusOutput
	}
	if o.CarusErrorLog != "" {
		c.Carus.ErrorLog = o.CarusErrorLog
	}
	if o.CarusShowBrowser {
		c.Carus.ShowBrowser = true
	}
	if o.CarusBrowserBin != "" {
		c.Carus.BrowserBin = o.CarusBrowserBin
	}

	if o.IconsDir != "" {
		c.Icons.Dir = o.IconsDir
	}
	if o.IconsSVG {
		c.Icons.SVG = true
	}
}

func normalizeDefaults(c *Config) {
	def := DefaultConfig()

	if c.EG.Output == "" {
		c.EG.Output = def.EG.Output
	}
	if c.EG.WikiURL == "" {
		c.EG.WikiURL = def.EG.WikiURL
	}
	if c.EG.SongbookURL == "" {
		c.EG.SongbookURL = def.EG.SongbookURL
	}
	if c.EG.SongBaseURL == "" {
		c.EG.SongBaseURL = def.EG.SongBaseURL
	}
	if c.EG.Verify == "" {
		c.EG.Verify = def.EG.Verify
	}
	if c.EG.Delay < 0 {
		c.EG.Delay = 0
	}
	if c.EG.Timeout <= 0 {
		c.EG.Timeout = def.EG.Timeout
	}

	if c.Carus.URL == "" {
		c.Carus.URL = def.Carus.URL
	}
	if c.Carus.Output == "" {
		c.Carus.Output = def.Carus.Output
	}
	if c.Carus.ErrorLog == "" {
		c.Carus.ErrorLog = def.Carus.ErrorLog
	}
	if c.Carus.MaxConsecutiveEmpty <= 0 {
		c.Carus.MaxConsecutiveEmpty = def.Carus.MaxConsecutiveEmpty
	}

	if c.Icons.Dir == "" {
		c.Icons.Dir = def.Icons.Dir
	}
}

func (c *Config) Print() {
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	if c.CookieFile != "" {
		fmt.Printf(" -cookie_file: %s\n", c.CookieFile)
	}

	fmt.Println(" eg:")
	fmt.Printf("   -output: %s\n", c.EG.Output)
	fmt.Printf("   -verify: %s\n", c.EG.Verify)
	if c.EG.VerifyPath != "" {
		fmt.Printf("   -verify_path: %s\n", c.EG.VerifyPath)
	}
	fmt.Printf("   -delay: %s\n", c.EG.Delay)
	if c.EG.Range != "" {
		fmt.Printf("   -range: %s\n", c.EG.Range)
	}
	if c.EG.List != "" {
		fmt.Printf("   -list: %s\n", c.EG.List)
	}
	if c.EG.CloudflareBypass {
		fmt.Printf("   -cloudflare_bypass: %t\n", c.EG.CloudflareBypass)
	}

	fmt.Println(" carus:")
	fmt.Printf("   -url: %s\n", c.Carus.URL)
	fmt.Printf("   -output: %s\n", c.Carus.Output)
	fmt.Printf("   -error_log: %s\n", c.Carus.ErrorLog)
	if c.Carus.ShowBrowser {
		fmt.Printf("   -show_browser: %t\n", c.Carus.ShowBrowser)
	}
	if c.Carus.BrowserBin != "" {
		fmt.Printf("   -browser_bin: %s\n", c.Carus.BrowserBin)
	}

	fmt.Println(" icons:")
	fmt.Printf("   -dir: %s\n", c.Icons.Dir)
	if c.Icons.SVG {
		fmt.Printf("   -svg: %t\n", c.Icons.SVG)
	}
}
