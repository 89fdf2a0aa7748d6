package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/mvidal/spur/internal/domain"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <minutes> [activity...]",
	Short: "Add a bucket or an activity",
	Long: `With only a duration, creates a new bucket seeded with a placeholder
activity. With an activity label, appends it to the bucket, creating
the bucket first if needed.

Examples:
  spur add 15
  spur add 5 Water the plants`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		minutes, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("minutes must be a number, got %q", args[0])
		}

		label := strings.TrimSpace(strings.Join(args[1:], " "))

		if label == "" {
			if err := activitySvc.AddBucket(ctx, minutes); err != nil {
				return err
			}
			fmt.Printf("Added a %d min bucket.\n", minutes)
			return nil
		}

		if err := activitySvc.AddActivityLabel(ctx, minutes, label); err != nil {
			if err == domain.ErrBucketNotFound {
				if err := activitySvc.AddBucket(ctx, minutes); err != nil {
					return err
				}
				// New buckets come with a placeholder; replace it.
				activitySvc.UpdateActivity(ctx, minutes, 0, label)
				fmt.Printf("Added a %d min bucket with %q.\n", minutes, label)
				return nil
			}
			return err
		}

		fmt.Printf("Added %q to the %d min bucket.\n", label, minutes)
		return nil
	},
}
