package cmd

import (
	"fmt"

	"github.com/MeKo-Tech/gs1scan/internal/batch"
	"github.com/spf13/cobra"
)

// batchCmd represents the batch command.
var batchCmd = &cobra.Command{
	Use:   "batch [files or directories...]",
	Short: "Decode scan log files in bulk",
	Long: `Decode scan log files containing one GS1 element string per line.

Files are discovered from the given paths (directories are searched for
*.txt and *.log files by default) and decoded on a worker pool. Blank
lines and lines starting with '#' are skipped.

Examples:
  gs1scan batch scans.txt
  gs1scan batch --recursive --workers 8 /var/log/scanners
  gs1scan batch --format csv --output results.csv scans/`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		batchCfg := batch.DefaultConfig()
		if cmd.Flags().Changed("workers") {
			batchCfg.Workers, _ = cmd.Flags().GetInt("workers")
		}
		batchCfg.Recursive, _ = cmd.Flags().GetBool("recursive")
		if cmd.Flags().Changed("include") {
			batchCfg.IncludePatterns, _ = cmd.Flags().GetStringSlice("include")
		}
		batchCfg.ExcludePatterns, _ = cmd.Flags().GetStringSlice("exclude")

		batchCfg.Format = cfg.Output.Format
		if cmd.Flags().Changed("format") {
			batchCfg.Format, _ = cmd.Flags().GetString("format")
		}
		batchCfg.OutputFile = cfg.Output.File
		if cmd.Flags().Changed("output") {
			batchCfg.OutputFile, _ = cmd.Flags().GetString("output")
		}
		batchCfg.Quiet, _ = cmd.Flags().GetBool("quiet")
		batchCfg.ShowStats, _ = cmd.Flags().GetBool("stats")

		scanner, err := buildScanner(cfg, cmd)
		if err != nil {
			return err
		}

		result, err := batch.ProcessBatch(args, scanner, batchCfg)
		if err != nil {
			return err
		}

		if err := result.SaveResults(batchCfg.Format, batchCfg.OutputFile, batchCfg.Quiet); err != nil {
			return err
		}
		if batchCfg.ShowStats {
			result.PrintStats(batchCfg.Quiet)
		}

		if result.Failed > 0 {
			return fmt.Errorf("%d of %d barcode(s) failed to decode", result.Failed, len(result.Items))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntP("workers", "w", 0, "number of decode workers (default: number of CPUs)")
	batchCmd.Flags().BoolP("recursive", "r", false, "search directories recursively")
	batchCmd.Flags().StringSlice("include", nil, "file name patterns to include (default: *.txt, *.log)")
	batchCmd.Flags().StringSlice("exclude", nil, "file name patterns to exclude")
	batchCmd.Flags().StringP("format", "f", "text", "output format (text, json, csv)")
	batchCmd.Flags().StringP("output", "o", "", "write output to file instead of stdout")
	batchCmd.Flags().BoolP("quiet", "q", false, "suppress non-result output")
	batchCmd.Flags().Bool("stats", false, "print processing statistics")
	batchCmd.Flags().String("fnc1", "", "override the FNC1 symbology prefix")
	batchCmd.Flags().String("separator", "", "override the group separator")
}
