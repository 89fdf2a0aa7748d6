package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the built-in default buckets",
	Long: `Replace all buckets and activities with the built-in defaults.
Pick history is kept. This cannot be undone; use --force to skip the
confirmation prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if !resetForce {
			fmt.Println("This will replace all your buckets with the built-in defaults.")
			if !confirm("Are you sure?") {
				fmt.Println("Aborted.")
				return nil
			}
		}

		activitySvc.Reset(ctx)
		fmt.Println("Buckets restored to defaults.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip confirmation prompt")
}
