package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/mvidal/spur/internal/domain"
)

var importYes bool

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace all activity buckets from a JSON export",
	Long: `Read a bucket mapping from the given file (or stdin) and replace the
current data with it. The input is validated before anything is
touched: it must be a JSON object mapping minute counts to non-empty
activity lists, and it must contain the default buckets (1, 5, 10, 20
and 40 minutes). On any validation error the current data is left
unchanged.

This is destructive; a confirmation prompt guards it unless --yes is
passed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var text []byte
		var err error
		if len(args) == 1 {
			text, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read import file: %w", err)
			}
		} else {
			text, err = io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
		}

		buckets, err := activitySvc.ParseImport(string(text))
		if err != nil {
			var formatErr *domain.FormatError
			var schemaErr *domain.SchemaError
			switch {
			case errors.As(err, &formatErr):
				return fmt.Errorf("not valid JSON: %w", formatErr.Err)
			case errors.As(err, &schemaErr):
				return fmt.Errorf("invalid bucket data: %s", schemaErr.Reason)
			default:
				return err
			}
		}

		if !importYes {
			total := 0
			for _, minutes := range buckets.Keys() {
				total += len(buckets[minutes])
			}
			fmt.Printf("This will replace all current buckets with %d buckets (%d activities).\n",
				len(buckets), total)
			if !confirm("Are you sure?") {
				fmt.Println("Aborted.")
				return nil
			}
		}

		activitySvc.Replace(ctx, buckets)
		fmt.Println("Import complete.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Skip confirmation prompt")
}
