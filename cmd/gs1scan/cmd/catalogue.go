package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/MeKo-Tech/gs1scan/internal/gs1"
	"github.com/spf13/cobra"
)

// catalogueCmd represents the catalogue command.
var catalogueCmd = &cobra.Command{
	Use:   "catalogue",
	Short: "List the loaded AI definition table",
	Long: `List the Application Identifier definitions the decoder resolves against.

By default the embedded standard GS1 table is shown; use the global
--catalogue flag to inspect a custom table.

Examples:
  gs1scan catalogue
  gs1scan catalogue --code 01
  gs1scan catalogue --format json`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		cat, err := loadCatalogue(cfg)
		if err != nil {
			return err
		}

		defs := cat.Definitions()
		if code, _ := cmd.Flags().GetString("code"); code != "" {
			def, ok := cat.Find(code)
			if !ok {
				return fmt.Errorf("unknown AI code: %s", code)
			}
			defs = []gs1.Definition{def}
		}

		if format, _ := cmd.Flags().GetString("format"); format == outputFormatJSON {
			data, err := json.MarshalIndent(defs, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding catalogue: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-6s %-6s %-4s %-4s %s\n", "AI", "LEN", "VAR", "DEC", "TITLE")
		for _, d := range defs {
			variable := "no"
			if d.Variable {
				variable = "yes"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-6s %-6d %-4s %-4d %s\n",
				d.Code, d.MaxLength, variable, d.Decimals, d.Title)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d definition(s)\n", len(defs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogueCmd)
	catalogueCmd.Flags().String("code", "", "show only the definition with this AI code")
	catalogueCmd.Flags().StringP("format", "f", "text", "output format (text, json)")
}
