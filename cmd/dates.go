package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hancao97/hanai-wealth/pkg/snapshot"
)

// datesCmd rebuilds dates.json from the snapshot files on disk. The index
// is derived, so this is always safe to rerun.
var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "Rebuild and print the snapshot date index",
	RunE: func(cmd *cobra.Command, args []string) error {
		dates, err := snapshot.RebuildDateIndex(dataDir(cmd))
		if err != nil {
			return err
		}
		for _, date := range dates {
			fmt.Println(date)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(datesCmd)
}
