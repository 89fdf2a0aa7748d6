package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/mvidal/spur/internal/domain"
)

var (
	historyLimit  int
	historyFilter string
	historySince  string
	historyStats  bool
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent activity picks",
	Long: `Show the most recent activity picks, newest first. Picks whose
countdown ran to the end are marked as completed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if historyStats {
			return runHistoryStats(ctx)
		}

		var picks []*domain.Pick
		var err error
		switch {
		case historyFilter != "":
			picks, err = activitySvc.SearchHistory(ctx, historyFilter, historyLimit)
		case historySince != "":
			var since time.Time
			switch historySince {
			case "today":
				now := time.Now()
				since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			case "week":
				since = time.Now().AddDate(0, 0, -7)
			case "month":
				since = time.Now().AddDate(0, -1, 0)
			default:
				return fmt.Errorf("invalid period %q: use today, week, or month", historySince)
			}
			picks, err = activitySvc.HistorySince(ctx, since)
		default:
			picks, err = activitySvc.History(ctx, historyLimit)
		}
		if err != nil {
			return err
		}

		if jsonOutput {
			var pickList []map[string]interface{}
			for _, p := range picks {
				pickList = append(pickList, map[string]interface{}{
					"id":        p.ID,
					"minutes":   p.Minutes,
					"activity":  p.Activity,
					"picked_at": p.PickedAt.Format("2006-01-02T15:04:05"),
					"completed": p.Completed,
				})
			}
			data := map[string]interface{}{
				"picks": pickList,
				"count": len(pickList),
			}
			jsonData, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal history: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		if len(picks) == 0 {
			fmt.Println("No picks yet.")
			return nil
		}

		for _, p := range picks {
			mark := " "
			if p.Completed {
				mark = "✓"
			}
			fmt.Printf("%s %s  %s (%d min)\n",
				mark, p.PickedAt.Format("2006-01-02 15:04"), p.Activity, p.Minutes)
		}

		return nil
	},
}

func runHistoryStats(ctx context.Context) error {
	total, completed, err := activitySvc.HistoryStats(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		data := map[string]interface{}{
			"total":     total,
			"completed": completed,
		}
		jsonData, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		fmt.Println(string(jsonData))
		return nil
	}

	fmt.Printf("Picks: %d total, %d completed\n", total, completed)
	return nil
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of picks to show")
	historyCmd.Flags().StringVarP(&historyFilter, "filter", "f", "", "Fuzzy-filter picks by activity label")
	historyCmd.Flags().StringVar(&historySince, "since", "", "Time period: today, week, or month")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "Show total and completed pick counts")
}
