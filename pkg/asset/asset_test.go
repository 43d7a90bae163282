package asset

import (
	"testing"

	"github.com/tidwall/gjson"

	"github.com/hancao97/hanai-wealth/pkg/board"
)

const sampleRaw = `{
	"symbol": "600519",
	"company": "贵州茅台",
	"price": 1500.5,
	"p_change": -12.3,
	"p_pct_change": -0.81,
	"mktcap_norm_currency": 1885000,
	"industry": "酿酒行业",
	"yield": 2.1,
	"pettm": 22.4,
	"gf_valuation": 5,
	"gf_score": 92,
	"total_free_cash_flow": 5,
	"rank_gf_value": {"value": 7, "updated_at": "2024-01-01"},
	"rank_growth": {"value": 9},
	"rank_momentum": {},
	"rank_profitability": 10,
	"rank_balancesheet": null
}`

func TestNormalizeSample(t *testing.T) {
	rec := Normalize(gjson.Parse(sampleRaw))

	if rec.Symbol != "600519" || rec.Company != "贵州茅台" {
		t.Fatalf("identity fields wrong: %+v", rec)
	}
	if rec.Board != board.MainBoard {
		t.Fatalf("board = %s, want %s", rec.Board, board.MainBoard)
	}
	if rec.Price == nil || *rec.Price != 1500.5 {
		t.Fatalf("price = %v, want 1500.5", rec.Price)
	}
	if rec.GFValuation == nil || *rec.GFValuation != ValuationFairRange {
		t.Fatalf("gf_valuation = %v, want %d", rec.GFValuation, ValuationFairRange)
	}
}

func TestNormalizeFreeCashFlowConversion(t *testing.T) {
	rec := Normalize(gjson.Parse(sampleRaw))
	if rec.TotalFreeCashFlow != 5_000_000 {
		t.Fatalf("total_free_cash_flow = %v, want 5000000", rec.TotalFreeCashFlow)
	}

	rec = Normalize(gjson.Parse(`{"symbol": "000001"}`))
	if rec.TotalFreeCashFlow != 0 {
		t.Fatalf("missing total_free_cash_flow = %v, want 0", rec.TotalFreeCashFlow)
	}
}

func TestNormalizeRatings(t *testing.T) {
	rec := Normalize(gjson.Parse(sampleRaw))

	if rec.RankGFValue != 7 {
		t.Fatalf("rank_gf_value = %v, want 7 (wrapped)", rec.RankGFValue)
	}
	if rec.RankGrowth != 9 {
		t.Fatalf("rank_growth = %v, want 9 (wrapped)", rec.RankGrowth)
	}
	if rec.RankMomentum != 0 {
		t.Fatalf("rank_momentum = %v, want 0 (wrapper without value)", rec.RankMomentum)
	}
	if rec.RankProfitability != 0 {
		t.Fatalf("rank_profitability = %v, want 0 (bare scalar)", rec.RankProfitability)
	}
	if rec.RankBalanceSheet != 0 {
		t.Fatalf("rank_balancesheet = %v, want 0 (null)", rec.RankBalanceSheet)
	}
}

// Re-normalizing normalized output zeroes every rank; the scalar shape is
// deliberately not treated as a score.
func TestNormalizeNotIdempotentOnRatings(t *testing.T) {
	renormalized := Normalize(gjson.Parse(`{
		"symbol": "300750",
		"rank_gf_value": 7,
		"rank_growth": 9,
		"rank_momentum": 3,
		"rank_profitability": 10,
		"rank_balancesheet": 6
	}`))

	for name, got := range map[string]float64{
		"rank_gf_value":      renormalized.RankGFValue,
		"rank_growth":        renormalized.RankGrowth,
		"rank_momentum":      renormalized.RankMomentum,
		"rank_profitability": renormalized.RankProfitability,
		"rank_balancesheet":  renormalized.RankBalanceSheet,
	} {
		if got != 0 {
			t.Fatalf("%s = %v after re-normalize, want 0", name, got)
		}
	}
}

func TestNormalizeMissingStaysMissing(t *testing.T) {
	rec := Normalize(gjson.Parse(`{"symbol": "688981"}`))

	if rec.Price != nil || rec.Yield != nil || rec.MktCap != nil || rec.GFValuation != nil {
		t.Fatalf("absent vendor fields must stay nil: %+v", rec)
	}
	if rec.Board != board.STARMarket {
		t.Fatalf("board = %s, want %s", rec.Board, board.STARMarket)
	}
}

func TestNormalizeIgnoresVendorBoard(t *testing.T) {
	// A board-shaped vendor field must never leak through.
	rec := Normalize(gjson.Parse(`{"symbol": "430047", "board": "主板"}`))
	if rec.Board != board.BeijingExchange {
		t.Fatalf("board = %s, want derived %s", rec.Board, board.BeijingExchange)
	}
}

func TestNormalizeAllPreservesOrder(t *testing.T) {
	raws := gjson.Parse(`[{"symbol":"600519"},{"symbol":"000001"},{"symbol":"300750"}]`).Array()
	records := NormalizeAll(raws)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	want := []string{"600519", "000001", "300750"}
	for i, w := range want {
		if records[i].Symbol != w {
			t.Fatalf("records[%d].Symbol = %s, want %s", i, records[i].Symbol, w)
		}
	}
}

func TestParseRatingKinds(t *testing.T) {
	if r := ParseRating(gjson.Parse(`{"value": 8}`)); r.Kind != RatingWrapped || r.Score() != 8 {
		t.Fatalf("wrapped rating = %+v", r)
	}
	if r := ParseRating(gjson.Parse(`8`)); r.Kind != RatingScalar || r.Score() != 0 {
		t.Fatalf("scalar rating = %+v, score %v", r, r.Score())
	}
	if r := ParseRating(gjson.Result{}); r.Kind != RatingAbsent || r.Score() != 0 {
		t.Fatalf("absent rating = %+v", r)
	}
}

func TestValuationLabels(t *testing.T) {
	cases := map[Valuation]string{
		ValuationInsufficientData:    "数据不足",
		ValuationStaleData:           "数据长久未更新",
		ValuationSuspectedTrap:       "价值陷阱嫌疑",
		ValuationSeverelyUndervalued: "严重低估",
		ValuationUndervalued:         "低估",
		ValuationFairRange:           "合理范围",
		ValuationOvervalued:          "高估",
		ValuationSeverelyOvervalued:  "严重高估",
	}
	for v, want := range cases {
		if got := v.Label(); got != want {
			t.Fatalf("Valuation(%d).Label() = %s, want %s", v, got, want)
		}
	}
	if Valuation(42).Label() != "未知" {
		t.Fatal("out-of-enum label should be 未知")
	}
	if Valuation(8).Valid() || Valuation(-1).Valid() {
		t.Fatal("Valid accepted out-of-enum value")
	}
}
