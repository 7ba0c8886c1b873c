package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/csvexplore-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set csvexplore configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "head_rows: %d\n", c.HeadRows)
		if len(c.NAValues) > 0 {
			fmt.Fprintf(w, "na_values: %s\n", strings.Join(c.NAValues, ","))
		}
		if c.Delimiter != "" {
			fmt.Fprintf(w, "delimiter: %q\n", c.Delimiter)
		} else {
			fmt.Fprintln(w, "delimiter: (auto)")
		}
		fmt.Fprintf(w, "max_upload_mb: %d\n", c.MaxUploadMB)
		fmt.Fprintf(w, "plots_dir: %s\n", c.PlotsDir)
		fmt.Fprintf(w, "plot_width: %d\n", c.PlotWidth)
		fmt.Fprintf(w, "plot_height: %d\n", c.PlotHeight)
		fmt.Fprintf(w, "outlier_threshold: %.2f\n", c.OutlierThreshold)
		fmt.Fprintf(w, "server_addr: %s\n", c.ServerAddr)
		fmt.Fprintf(w, "clear_screen: %t\n", c.ClearScreen)
		fmt.Fprintf(w, "max_display_rows: %d\n", c.MaxDisplayRows)
		return nil
	},
}

func positiveInt(key, val string) (int, error) {
	i, err := strconv.Atoi(val)
	if err != nil || i <= 0 {
		return 0, fmt.Errorf("invalid positive int for %s: %v", key, val)
	}
	return i, nil
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		var err error
		switch key {
		case "head_rows":
			cfg.HeadRows, err = positiveInt(key, val)
		case "na_values":
			cfg.NAValues = nil
			for _, v := range strings.Split(val, ",") {
				cfg.NAValues = append(cfg.NAValues, strings.TrimSpace(v))
			}
		case "delimiter":
			if _, err = parseDelimiter(val); err == nil {
				cfg.Delimiter = val
			}
		case "max_upload_mb":
			cfg.MaxUploadMB, err = positiveInt(key, val)
		case "plots_dir":
			cfg.PlotsDir = val
		case "plot_width":
			cfg.PlotWidth, err = positiveInt(key, val)
		case "plot_height":
			cfg.PlotHeight, err = positiveInt(key, val)
		case "outlier_threshold":
			f, perr := strconv.ParseFloat(val, 64)
			if perr != nil || f <= 0 {
				return fmt.Errorf("invalid float for outlier_threshold: %v", val)
			}
			cfg.OutlierThreshold = f
		case "server_addr":
			cfg.ServerAddr = val
		case "clear_screen":
			b, perr := strconv.ParseBool(val)
			if perr != nil {
				return fmt.Errorf("invalid bool for clear_screen: %w", perr)
			}
			cfg.ClearScreen = b
		case "max_display_rows":
			i, perr := strconv.Atoi(val)
			if perr != nil || i < 0 {
				return fmt.Errorf("invalid int for max_display_rows: %v", val)
			}
			cfg.MaxDisplayRows = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
