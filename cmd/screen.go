package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hancao97/hanai-wealth/pkg/asset"
	"github.com/hancao97/hanai-wealth/pkg/board"
	"github.com/hancao97/hanai-wealth/pkg/screener"
)

// screenCmd runs the filter pipeline over a loaded snapshot and prints
// one page. Filter state and the page cursor persist across invocations
// for the duration of a session, like the dashboard does in the browser.
var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Filter and page through a snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := screener.NewSession(dataDir(cmd))
		s.StatePath = screener.DefaultStatePath()
		if perPage, _ := cmd.Flags().GetInt("per-page"); perPage > 0 {
			s.PageSize = perPage
		}

		if reset, _ := cmd.Flags().GetBool("reset"); reset {
			s.ClearFilters()
		}

		if err := s.LoadDateIndex(); err != nil {
			return err
		}
		if len(s.Dates()) == 0 {
			fmt.Println("No snapshots yet. Run 'hanai-wealth fetch' first.")
			return nil
		}

		if date, _ := cmd.Flags().GetString("date"); date != "" && date != s.CurrentDate() {
			if err := s.LoadSnapshot(date); err != nil {
				return err
			}
		}

		filters, changed, err := filtersFromFlags(cmd, s.ActiveFilters())
		if err != nil {
			return err
		}
		if changed {
			s.UpdateFilters(filters)
		}

		if page, _ := cmd.Flags().GetInt("page"); page > 0 {
			s.GoToPage(page)
		}

		printPage(s)
		return nil
	},
}

// filtersFromFlags overlays set flags onto the session's current filters.
func filtersFromFlags(cmd *cobra.Command, current screener.Filters) (screener.Filters, bool, error) {
	changed := false

	if cmd.Flags().Changed("company") {
		current.Company, _ = cmd.Flags().GetString("company")
		changed = true
	}
	if cmd.Flags().Changed("valuation") {
		n, _ := cmd.Flags().GetInt("valuation")
		if n < 0 {
			current.Valuation = nil
		} else {
			v := asset.Valuation(n)
			if !v.Valid() {
				return current, false, fmt.Errorf("valuation must be 0-7, got %d", n)
			}
			current.Valuation = &v
		}
		changed = true
	}
	if cmd.Flags().Changed("industry") {
		current.Industry, _ = cmd.Flags().GetString("industry")
		changed = true
	}
	if cmd.Flags().Changed("board") {
		raw, _ := cmd.Flags().GetString("board")
		if raw != "" && !board.Valid(board.Board(raw)) {
			return current, false, fmt.Errorf("unknown board %q", raw)
		}
		current.Board = board.Board(raw)
		changed = true
	}
	if cmd.Flags().Changed("dividend") {
		raw, _ := cmd.Flags().GetString("dividend")
		current.Dividend = screener.DividendBucket(raw)
		changed = true
	}

	return current, changed, nil
}

func printPage(s *screener.Session) {
	fmt.Printf("%s | %d matched | page %d/%d\n", s.CurrentDate(), len(s.Filtered()), s.CurrentPage(), s.TotalPages())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tCOMPANY\tBOARD\tPRICE\tYIELD\tVALUATION\t")
	for _, r := range s.Page() {
		valuation := "-"
		if r.GFValuation != nil {
			valuation = r.GFValuation.Label()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Symbol, r.Company, r.Board, fmtNum(r.Price), fmtNum(r.Yield), valuation)
	}
	w.Flush()
}

func fmtNum(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

func init() {
	rootCmd.AddCommand(screenCmd)
	screenCmd.Flags().String("date", "", "Snapshot date to screen (default: last viewed, else newest)")
	screenCmd.Flags().String("company", "", "Company name substring (case-insensitive)")
	screenCmd.Flags().Int("valuation", -1, "Valuation verdict 0-7 (-1 clears)")
	screenCmd.Flags().String("industry", "", "Exact industry name")
	screenCmd.Flags().String("board", "", "Board (主板, 创业板, 科创板, 北证)")
	screenCmd.Flags().String("dividend", "", "Dividend bucket (no-data, low, medium, high, super-high, abnormal)")
	screenCmd.Flags().Int("page", 0, "Jump to page (1-based)")
	screenCmd.Flags().Int("per-page", 0, "Page size (default 100)")
	screenCmd.Flags().Bool("reset", false, "Clear saved filters and session state first")
}
