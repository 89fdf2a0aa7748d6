package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List duration buckets and their activities",
	RunE: func(cmd *cobra.Command, args []string) error {
		buckets := activitySvc.Buckets()

		if jsonOutput {
			var bucketList []map[string]interface{}
			for _, minutes := range buckets.Keys() {
				bucketList = append(bucketList, map[string]interface{}{
					"minutes":    minutes,
					"activities": buckets[minutes],
				})
			}
			data := map[string]interface{}{
				"buckets": bucketList,
				"count":   len(bucketList),
			}
			jsonData, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal buckets: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		for _, minutes := range buckets.Keys() {
			fmt.Printf("%d min:\n", minutes)
			for _, activity := range buckets[minutes] {
				fmt.Printf("  - %s\n", activity)
			}
		}

		return nil
	},
}
