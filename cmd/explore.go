package cmd

import (
	"github.com/KaramelBytes/csvexplore-cli/internal/tui"
	"github.com/spf13/cobra"
)

var exploreCmd = &cobra.Command{
	Use:   "explore [file.csv]",
	Short: "Explore a CSV file in the terminal UI",
	Long: `Open the terminal UI. Press u to upload a CSV file, tab to pick a column,
and the command keys shown at the top to explore it. An optional file
argument is uploaded on start.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		opt := tui.Options{
			Session:        sessionOptions(c),
			PlotsDir:       c.PlotsDir,
			MaxRows:        c.MaxDisplayRows,
			MaxUploadBytes: c.MaxUploadBytes(),
		}
		if len(args) == 1 {
			opt.InitialPath = args[0]
		}
		return tui.Run(opt)
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}
