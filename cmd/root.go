package cmd

import (
	"errors"
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/csvexplore-cli/internal/config"
	"github.com/KaramelBytes/csvexplore-cli/internal/session"
	"github.com/KaramelBytes/csvexplore-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "csvexplore",
	Short: "csvexplore: interactive exploration of a single CSV file",
	Long: `csvexplore loads one CSV file and runs exploration commands against it:
first and last rows, data types, summary statistics, missing values,
correlations, value counts, unique values, histograms and boxplots.

Use "explore" for the terminal UI, "serve" for the browser widget, or "run"
for a single command.`,
	// Execute prints errors once, skipping ones the display already showed
	SilenceErrors: true,
}

// reportedError marks a failure the display surface has already shown.
type reportedError struct{ error }

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		var shown reportedError
		if !errors.As(err, &shown) {
			fmt.Fprintln(os.Stderr, "✗ Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.csvexplore/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// effectiveConfig returns the loaded config, loading it on first use.
func effectiveConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	if c, err := cfgpkg.Load(cfgFile); err == nil {
		cfg = c
		return cfg
	}
	return &cfgpkg.Global{
		HeadRows:         5,
		MaxUploadMB:      50,
		PlotsDir:         "~/.csvexplore/plots",
		PlotWidth:        800,
		PlotHeight:       600,
		OutlierThreshold: 3.5,
		ServerAddr:       "127.0.0.1:8050",
		ClearScreen:      true,
		MaxDisplayRows:   60,
	}
}

func debugf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
}

// sessionOptions maps configuration onto session options.
func sessionOptions(c *cfgpkg.Global) session.Options {
	opt := session.DefaultOptions()
	if c.HeadRows > 0 {
		opt.HeadRows = c.HeadRows
	}
	if len(c.NAValues) > 0 {
		opt.Parse.NAValues = c.NAValues
	}
	opt.Parse.Delimiter = c.DelimiterRune()
	if c.PlotWidth > 0 {
		opt.Plot.Width = c.PlotWidth
	}
	if c.PlotHeight > 0 {
		opt.Plot.Height = c.PlotHeight
	}
	if c.OutlierThreshold > 0 {
		opt.Profile.OutlierThreshold = c.OutlierThreshold
	}
	if debug {
		opt.Debugf = debugf
	}
	return opt
}

// parseDelimiter validates a --delimiter flag value. Empty means sniff.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case ";":
		return ';', nil
	case "\t", `\t`, "tab":
		return '\t', nil
	case "|":
		return '|', nil
	}
	return 0, fmt.Errorf("unsupported --delimiter: %s (use ',' | ';' | 'tab' | '|')", s)
}

// readCSV applies the same filter as the upload controls: one .csv file
// within the size limit.
func readCSV(path string, limit int64) ([]byte, error) {
	if !utils.HasExtension(path, ".csv") {
		return nil, fmt.Errorf("only .csv files are accepted: %s", path)
	}
	return utils.ReadFileLimited(utils.ExpandHome(path), limit)
}
