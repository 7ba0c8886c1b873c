package cmd

import (
	"fmt"
	"path/filepath"

	cfgpkg "github.com/KaramelBytes/csvexplore-cli/internal/config"
	"github.com/KaramelBytes/csvexplore-cli/internal/display"
	"github.com/KaramelBytes/csvexplore-cli/internal/session"
	"github.com/spf13/cobra"
)

var (
	runPlotsDir  string
	runMaxRows   int
	runDelimiter string
)

var runCmd = &cobra.Command{
	Use:   "run <file.csv> <command> [column]",
	Short: "Load a CSV file and run one exploration command",
	Long: `Load a CSV file and run one exploration command against it.

Plots are written as PNG files to the plots directory. Run "csvexplore commands"
for the list of commands.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		command, err := session.ParseCommand(args[1])
		if err != nil {
			return err
		}
		column := ""
		if len(args) == 3 {
			column = args[2]
		}
		opt := sessionOptions(c)
		if cmd.Flags().Changed("delimiter") {
			if opt.Parse.Delimiter, err = parseDelimiter(runDelimiter); err != nil {
				return err
			}
		}
		raw, err := readCSV(args[0], c.MaxUploadBytes())
		if err != nil {
			return err
		}

		plotsDir := c.PlotsDir
		if runPlotsDir != "" {
			plotsDir = runPlotsDir
		}
		maxRows := c.MaxDisplayRows
		if cmd.Flags().Changed("max-rows") {
			maxRows = runMaxRows
		}
		term := display.NewTerminal(cmd.OutOrStdout(), terminalOptions(c, plotsDir, maxRows))
		sess := session.New(opt, term)
		if _, err := sess.Upload(filepath.Base(args[0]), raw); err != nil {
			return reportedError{err}
		}
		out, err := sess.Run(command, column)
		if err != nil {
			return err
		}
		if out.Err != nil {
			return reportedError{fmt.Errorf("%s: %w", command, out.Err)}
		}
		return nil
	},
}

func terminalOptions(c *cfgpkg.Global, plotsDir string, maxRows int) display.TerminalOptions {
	return display.TerminalOptions{
		PlotsDir:    plotsDir,
		ClearScreen: c.ClearScreen,
		MaxRows:     maxRows,
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runPlotsDir, "plots-dir", "", "directory for plot PNGs (overrides config)")
	runCmd.Flags().IntVar(&runMaxRows, "max-rows", 60, "truncate long tables to this many rows (0 = no limit)")
	runCmd.Flags().StringVar(&runDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | '|' (sniffed if omitted)")
}
