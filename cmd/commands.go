package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/KaramelBytes/csvexplore-cli/internal/session"
	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List exploration commands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "COMMAND\tCOLUMN\tDESCRIPTION")
		for _, info := range session.Commands() {
			col := ""
			if info.NeedsColumn {
				col = "yes"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Command, col, info.Description)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
