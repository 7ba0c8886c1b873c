package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Parsing
	HeadRows    int      `mapstructure:"head_rows" yaml:"head_rows"`
	NAValues    []string `mapstructure:"na_values" yaml:"na_values"`
	Delimiter   string   `mapstructure:"delimiter" yaml:"delimiter"`
	MaxUploadMB int      `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`

	// Plots
	PlotsDir   string `mapstructure:"plots_dir" yaml:"plots_dir"`
	PlotWidth  int    `mapstructure:"plot_width" yaml:"plot_width"`
	PlotHeight int    `mapstructure:"plot_height" yaml:"plot_height"`

	// Profiling
	OutlierThreshold float64 `mapstructure:"outlier_threshold" yaml:"outlier_threshold"`

	// Display
	ServerAddr     string `mapstructure:"server_addr" yaml:"server_addr"`
	ClearScreen    bool   `mapstructure:"clear_screen" yaml:"clear_screen"`
	MaxDisplayRows int    `mapstructure:"max_display_rows" yaml:"max_display_rows"`
}

// MaxUploadBytes converts MaxUploadMB to bytes, falling back to 50 MiB.
func (c *Global) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 50 << 20
	}
	return int64(c.MaxUploadMB) << 20
}

// DelimiterRune returns the configured delimiter, or 0 to sniff it.
func (c *Global) DelimiterRune() rune {
	switch c.Delimiter {
	case "":
		return 0
	case `\t`, "tab":
		return '\t'
	}
	return []rune(c.Delimiter)[0]
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".csvexplore"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.csvexplore/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CSVEXPLORE")
	v.AutomaticEnv()

	v.SetDefault("head_rows", 5)
	v.SetDefault("na_values", []string{})
	v.SetDefault("delimiter", "")
	v.SetDefault("max_upload_mb", 50)
	v.SetDefault("plots_dir", "")
	v.SetDefault("plot_width", 800)
	v.SetDefault("plot_height", 600)
	v.SetDefault("outlier_threshold", 3.5)
	v.SetDefault("server_addr", "127.0.0.1:8050")
	v.SetDefault("clear_screen", true)
	v.SetDefault("max_display_rows", 60)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.HeadRows <= 0 {
		c.HeadRows = 5
	}
	// Resolve plots_dir default: ~/.csvexplore/plots
	if c.PlotsDir == "" {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		c.PlotsDir = filepath.Join(dir, "plots")
	}
	return &c, nil
}
