package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// pickCmd represents the pick command
var pickCmd = &cobra.Command{
	Use:   "pick <minutes>",
	Short: "Suggest a random activity for the given number of minutes",
	Long: `Pick one activity at random from the bucket matching the given duration.
The minutes must name an existing bucket; use "spur list" to see them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		minutes, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("minutes must be a number, got %q", args[0])
		}

		pick, err := activitySvc.Pick(ctx, minutes)
		if err != nil {
			return err
		}

		if jsonOutput {
			data := map[string]interface{}{
				"minutes":  pick.Minutes,
				"activity": pick.Activity,
			}
			jsonData, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal pick: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		fmt.Printf("%s %s (%d min)\n", appConfig.Theme.IconApp, pick.Activity, pick.Minutes)
		return nil
	},
}
