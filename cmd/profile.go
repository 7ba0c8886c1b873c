package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/csvexplore-cli/internal/analysis"
	"github.com/KaramelBytes/csvexplore-cli/internal/dataset"
	"github.com/KaramelBytes/csvexplore-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	profOutputPath string
	profDelimiter  string
	profSampleRows int
	profCorr       bool
	profOutliers   bool
	profOutlierThr float64
	profQuiet      bool
)

var profileCmd = &cobra.Command{
	Use:   "profile <files...>",
	Short: "Write a markdown profile of one or more CSV files",
	Long: `Profile CSV files: schema, numeric statistics, robust outlier counts,
top categories, correlations and sample rows.

Arguments may be glob patterns. With one file, --output names the report file;
with several, --output is a directory that receives <name>.profile.md per file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
		c := effectiveConfig()
		parseOpt := sessionOptions(c).Parse
		if cmd.Flags().Changed("delimiter") {
			if parseOpt.Delimiter, err = parseDelimiter(profDelimiter); err != nil {
				return err
			}
		}
		opt := analysis.DefaultProfileOptions()
		opt.SampleRows = profSampleRows
		opt.Correlations = profCorr
		opt.Outliers = profOutliers
		opt.OutlierThreshold = c.OutlierThreshold
		if cmd.Flags().Changed("outlier-threshold") {
			opt.OutlierThreshold = profOutlierThr
		}

		w := cmd.OutOrStdout()
		batch := len(files) > 1
		for i, path := range files {
			if batch && !profQuiet {
				fmt.Fprintf(w, "[%d/%d] Processing %s...\n", i+1, len(files), filepath.Base(path))
			}
			raw, err := readCSV(path, c.MaxUploadBytes())
			if err != nil {
				return err
			}
			ds, err := dataset.Parse(filepath.Base(path), raw, parseOpt)
			if err != nil {
				return err
			}
			md := analysis.Profile(ds, opt).Markdown()

			if profOutputPath == "" {
				fmt.Fprintln(w, md)
				continue
			}
			out := profOutputPath
			if batch {
				base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				out = filepath.Join(profOutputPath, base+".profile.md")
			}
			if err := utils.SafeWriteFile(out, []byte(md)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			if !profQuiet {
				fmt.Fprintf(w, "✓ Wrote profile to %s\n", out)
			}
		}
		return nil
	},
}

// expandInputs resolves glob patterns and literal paths, dropping duplicates.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		sort.Strings(matches)
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched")
	}
	return files, nil
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVarP(&profOutputPath, "output", "o", "", "write the profile here instead of stdout (a directory for several files)")
	profileCmd.Flags().StringVar(&profDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | '|' (sniffed if omitted)")
	profileCmd.Flags().IntVar(&profSampleRows, "sample-rows", 5, "number of sample rows to include")
	profileCmd.Flags().BoolVar(&profCorr, "correlations", true, "compute Pearson correlations among numeric columns")
	profileCmd.Flags().BoolVar(&profOutliers, "outliers", true, "compute robust outlier counts (MAD)")
	profileCmd.Flags().Float64Var(&profOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for outliers (MAD-based)")
	profileCmd.Flags().BoolVarP(&profQuiet, "quiet", "q", false, "suppress progress and non-essential output")
}
