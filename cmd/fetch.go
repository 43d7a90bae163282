package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hancao97/hanai-wealth/internal/utils"
	"github.com/hancao97/hanai-wealth/pkg/asset"
	"github.com/hancao97/hanai-wealth/pkg/board"
	"github.com/hancao97/hanai-wealth/pkg/gurufocus"
	"github.com/hancao97/hanai-wealth/pkg/screener"
	"github.com/hancao97/hanai-wealth/pkg/snapshot"
	"github.com/hancao97/hanai-wealth/pkg/storage"
)

// fetchCmd crawls the screener, normalizes the dataset, writes the dated
// snapshot and rebuilds the date index. A single failed page kills the
// whole run: rerun later instead of trusting a partial dataset.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Crawl the screener into today's snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := dataDir(cmd)
		date, _ := cmd.Flags().GetString("date")
		if date == "" {
			date = snapshot.Today()
		}

		client := gurufocus.NewClient(
			viper.GetString("gurufocus.endpoint"),
			viper.GetInt("gurufocus.per_page"),
		)

		utils.Log.Info("Fetching start...")
		raws, err := client.FetchAll()
		if err != nil {
			// Batch context: first transport failure ends the run.
			utils.Log.Fatal("Fetch failed: ", err)
		}

		records := asset.NormalizeAll(raws)

		boards := screener.BoardStats(records)
		fmt.Println("板块分布统计:")
		var names []string
		for b := range boards {
			names = append(names, string(b))
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %d 只股票\n", name, boards[board.Board(name)])
		}

		if err := snapshot.Write(dir, date, records); err != nil {
			return err
		}
		if _, err := snapshot.RebuildDateIndex(dir); err != nil {
			return err
		}

		if noDB, _ := cmd.Flags().GetBool("no-db"); !noDB {
			recordRun(cmd, date, len(records), boards)
		}

		return nil
	},
}

// recordRun appends the crawl to the run ledger. Ledger trouble never
// fails a crawl that already produced its snapshot.
func recordRun(cmd *cobra.Command, date string, count int, boards map[board.Board]int) {
	dbPath, _ := cmd.Flags().GetString("dbpath")
	if dbPath == "" {
		dbPath = viper.GetString("db.path")
	}
	absPath, err := utils.GetAbsDBPath(dbPath)
	if err != nil {
		utils.Log.Warnf("Could not resolve run ledger path: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		utils.Log.Warnf("Could not create run ledger dir: %v", err)
		return
	}

	lock, err := utils.NewDBLock(dbPath)
	if err != nil {
		utils.Log.Warnf("Could not create ledger lock: %v", err)
		return
	}
	if err := lock.Lock(); err != nil {
		utils.Log.Warnf("Could not lock run ledger: %v", err)
		return
	}
	defer lock.Unlock()

	db, err := storage.Open(absPath)
	if err != nil {
		utils.Log.Warnf("Could not open run ledger: %v", err)
		return
	}
	defer db.Close()

	if err := db.RecordRun(context.Background(), date, count, boards); err != nil {
		utils.Log.Warnf("Could not record run: %v", err)
	}
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().String("date", "", "Snapshot date (default: today, YYYY-MM-DD)")
	fetchCmd.Flags().String("dbpath", "", "Path to the run-ledger SQLite file")
	fetchCmd.Flags().Bool("no-db", false, "Skip recording the crawl in the run ledger")
}
