package screener

import (
	"math"
	"strings"

	"github.com/hancao97/hanai-wealth/pkg/asset"
	"github.com/hancao97/hanai-wealth/pkg/board"
)

// DividendBucket classifies a dividend yield into fixed ranges.
type DividendBucket string

const (
	DividendNoData    DividendBucket = "no-data"
	DividendLow       DividendBucket = "low"        // < 1%
	DividendMedium    DividendBucket = "medium"     // 1% - 3%
	DividendHigh      DividendBucket = "high"       // 3% - 5%
	DividendSuperHigh DividendBucket = "super-high" // 5% - 8%
	DividendAbnormal  DividendBucket = "abnormal"   // > 8%
)

// BucketYield maps a yield value to its bucket. Absent, zero and negative
// yields all count as no-data.
func BucketYield(yield *float64) DividendBucket {
	if yield == nil {
		return DividendNoData
	}
	v := *yield

	switch {
	case math.IsNaN(v) || v <= 0:
		return DividendNoData
	case v < 1:
		return DividendLow
	case v < 3:
		return DividendMedium
	case v < 5:
		return DividendHigh
	case v <= 8:
		return DividendSuperHigh
	default:
		return DividendAbnormal
	}
}

// Filters holds the active predicates. Zero values mean "no constraint";
// all set predicates are combined with AND.
type Filters struct {
	Company   string           `json:"company"`
	Valuation *asset.Valuation `json:"valuation,omitempty"`
	Industry  string           `json:"industry"`
	Board     board.Board      `json:"board"`
	Dividend  DividendBucket   `json:"dividend"`
}

// IsZero reports whether no predicate is set.
func (f Filters) IsZero() bool {
	return f.Company == "" && f.Valuation == nil && f.Industry == "" && f.Board == "" && f.Dividend == ""
}

// Apply runs the filter conjunction over a snapshot, preserving record
// order. The input slice is never mutated.
func Apply(records []asset.Record, f Filters) []asset.Record {
	filtered := make([]asset.Record, len(records))
	copy(filtered, records)

	if query := strings.ToLower(strings.TrimSpace(f.Company)); query != "" {
		filtered = keep(filtered, func(r asset.Record) bool {
			return r.Company != "" && strings.Contains(strings.ToLower(r.Company), query)
		})
	}

	if f.Valuation != nil {
		filtered = keep(filtered, func(r asset.Record) bool {
			return r.GFValuation != nil && *r.GFValuation == *f.Valuation
		})
	}

	if f.Industry != "" {
		filtered = keep(filtered, func(r asset.Record) bool {
			return r.Industry == f.Industry
		})
	}

	if f.Board != "" {
		filtered = keep(filtered, func(r asset.Record) bool {
			// Old snapshots may predate the derived board field.
			b := r.Board
			if b == "" {
				b = board.Detect(r.Symbol)
			}
			return b == f.Board
		})
	}

	if f.Dividend != "" {
		filtered = keep(filtered, func(r asset.Record) bool {
			return BucketYield(r.Yield) == f.Dividend
		})
	}

	return filtered
}

func keep(records []asset.Record, pred func(asset.Record) bool) []asset.Record {
	out := records[:0]
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// Paginate returns the 1-based page slice for a fixed page size. Out of
// range pages come back empty.
func Paginate(records []asset.Record, page, pageSize int) []asset.Record {
	if page < 1 || pageSize < 1 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(records) {
		return nil
	}
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

// PageCount returns the number of pages a record set spans.
func PageCount(total, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
