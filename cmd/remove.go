package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/mvidal/spur/internal/domain"
)

var removeYes bool

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove <minutes> [index]",
	Short: "Remove a bucket or a single activity",
	Long: `With only a duration, deletes the whole bucket and every activity in it
after a confirmation prompt. With an activity index (1-based, as shown
by "spur list"), deletes just that activity.

The last bucket and the last activity of a bucket cannot be removed.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		minutes, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("minutes must be a number, got %q", args[0])
		}

		if len(args) == 2 {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("index must be a number, got %q", args[1])
			}
			if err := activitySvc.DeleteActivity(ctx, minutes, index-1); err != nil {
				return err
			}
			fmt.Printf("Removed activity %d from the %d min bucket.\n", index, minutes)
			return nil
		}

		activities, ok := activitySvc.Buckets()[minutes]
		if !ok {
			return domain.ErrBucketNotFound
		}

		count := len(activities)
		if !removeYes {
			fmt.Printf("This will delete the %d min bucket and its %d activities.\n", minutes, count)
			if !confirm("Are you sure?") {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := activitySvc.DeleteBucket(ctx, minutes); err != nil {
			return err
		}
		fmt.Printf("Removed the %d min bucket.\n", minutes)
		return nil
	},
}

func init() {
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "Skip confirmation prompt")
}

// confirm asks a yes/no question on stdin. Anything but "yes" declines.
func confirm(question string) bool {
	fmt.Printf("%s Type 'yes' to confirm: ", question)
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(strings.ToLower(input)) == "yes"
}
