package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hancao97/hanai-wealth/internal/utils"
	"github.com/hancao97/hanai-wealth/pkg/asset"
	"github.com/hancao97/hanai-wealth/pkg/board"
	"github.com/hancao97/hanai-wealth/pkg/screener"
	"github.com/hancao97/hanai-wealth/pkg/snapshot"
	"github.com/hancao97/hanai-wealth/pkg/storage"
)

// statsCmd prints the crawl-run history from the ledger, or the
// distribution stats of one snapshot when --date is given.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print crawl history or one snapshot's distributions",
	RunE: func(cmd *cobra.Command, args []string) error {
		if date, _ := cmd.Flags().GetString("date"); date != "" {
			return printSnapshotStats(dataDir(cmd), date)
		}
		return printRunHistory(cmd)
	},
}

func printRunHistory(cmd *cobra.Command) error {
	dbPath, _ := cmd.Flags().GetString("dbpath")
	if dbPath == "" {
		dbPath = viper.GetString("db.path")
	}
	absPath, err := utils.GetAbsDBPath(dbPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("run ledger not found: %s", absPath)
	}

	db, err := storage.Open(absPath)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns(context.Background())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No crawls recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "DATE\tRECORDS\tFETCHED AT\t")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%d\t%s\t\n", r.RunDate, r.RecordCount, r.FetchedAt.Format("2006-01-02 15:04:05"))
	}
	w.Flush()
	return nil
}

func printSnapshotStats(dir, date string) error {
	records, err := snapshot.Load(dir, date)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d records\n\n", date, len(records))

	fmt.Println("板块分布:")
	boards := screener.BoardStats(records)
	var boardNames []string
	for b := range boards {
		boardNames = append(boardNames, string(b))
	}
	sort.Strings(boardNames)
	for _, name := range boardNames {
		fmt.Printf("  %s: %d\n", name, boards[board.Board(name)])
	}

	fmt.Println("\n估值分布:")
	valuations := screener.ValuationStats(records)
	for v := asset.ValuationInsufficientData; v <= asset.ValuationSeverelyOvervalued; v++ {
		if s, ok := valuations[v]; ok {
			fmt.Printf("  %d %s: %d\n", v, s.Label, s.Count)
		}
	}

	fmt.Println("\n股息分布:")
	dividends := screener.DividendStats(records)
	for _, b := range []screener.DividendBucket{
		screener.DividendNoData, screener.DividendLow, screener.DividendMedium,
		screener.DividendHigh, screener.DividendSuperHigh, screener.DividendAbnormal,
	} {
		fmt.Printf("  %s: %d\n", b, dividends[b])
	}

	ov := screener.MarketOverview(records)
	fmt.Printf("\n市场概览: 平均股价 %.2f (%s %s), 平均市盈率 %.2f (%s %s)\n",
		ov.AvgPrice, ov.PriceLevel.Icon, ov.PriceLevel.Text,
		ov.AvgPE, ov.PELevel.Icon, ov.PELevel.Text)

	return nil
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().String("date", "", "Print distributions for this snapshot date instead of crawl history")
	statsCmd.Flags().String("dbpath", "", "Path to the run-ledger SQLite file")
}
