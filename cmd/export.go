package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the activity buckets as JSON",
	Long: `Write the full bucket mapping to stdout (or a file with -o) as JSON.
The output is deterministic: buckets are sorted by duration, so two
exports of the same data are byte-identical.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text := activitySvc.Export()

		if exportOutput == "" {
			fmt.Print(text)
			return nil
		}

		if err := os.WriteFile(exportOutput, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Printf("Exported to %s\n", exportOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
}
