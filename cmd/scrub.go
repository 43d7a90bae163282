package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hancao97/hanai-wealth/pkg/snapshot"
)

// scrubCmd strips named keys from every snapshot file in place, for
// retiring fields that old crawls still carry. Files that fail to parse
// are logged and skipped so one bad file never blocks the batch.
var scrubCmd = &cobra.Command{
	Use:   "scrub",
	Short: "Remove named keys from all snapshot files",
	RunE: func(cmd *cobra.Command, args []string) error {
		keys, _ := cmd.Flags().GetStringSlice("keys")
		if len(keys) == 0 {
			return fmt.Errorf("nothing to scrub: pass --keys")
		}

		processed, err := snapshot.Scrub(dataDir(cmd), keys)
		if err != nil {
			return err
		}
		fmt.Printf("Processed %d snapshot files\n", processed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scrubCmd)
	scrubCmd.Flags().StringSlice("keys", []string{"sma_20", "sma_50", "sma_200"}, "Keys to remove from each record")
}
