package screener

import (
	"testing"

	"github.com/hancao97/hanai-wealth/pkg/asset"
	"github.com/hancao97/hanai-wealth/pkg/board"
)

func fp(v float64) *float64 { return &v }

func vp(v asset.Valuation) *asset.Valuation { return &v }

func sampleRecords() []asset.Record {
	return []asset.Record{
		{Symbol: "600519", Company: "贵州茅台", Industry: "酿酒行业", Board: board.MainBoard, GFValuation: vp(asset.ValuationFairRange), Yield: fp(2)},
		{Symbol: "000858", Company: "五粮液", Industry: "酿酒行业", Board: board.MainBoard, GFValuation: vp(asset.ValuationSeverelyUndervalued), Yield: fp(4)},
		{Symbol: "300750", Company: "宁德时代", Industry: "电池", Board: board.ChiNext, GFValuation: vp(asset.ValuationSeverelyUndervalued), Yield: fp(0.5)},
		{Symbol: "688981", Company: "中芯国际", Industry: "半导体", Board: board.STARMarket},
		{Symbol: "430047", Industry: "软件", Board: board.BeijingExchange, Yield: fp(9)},
	}
}

func TestApplyEmptyFiltersReturnsAllInOrder(t *testing.T) {
	records := sampleRecords()
	got := Apply(records, Filters{})
	if len(got) != len(records) {
		t.Fatalf("got %d records, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i].Symbol != records[i].Symbol {
			t.Fatalf("order changed at %d: %s != %s", i, got[i].Symbol, records[i].Symbol)
		}
	}
}

func TestApplyCompanySubstring(t *testing.T) {
	got := Apply(sampleRecords(), Filters{Company: "茅台"})
	if len(got) != 1 || got[0].Symbol != "600519" {
		t.Fatalf("company filter = %+v", got)
	}

	// A record with no company name never matches a non-empty query.
	got = Apply(sampleRecords(), Filters{Company: "软件"})
	if len(got) != 0 {
		t.Fatalf("company filter must skip nameless records, got %+v", got)
	}
}

func TestApplyCompanyCaseInsensitive(t *testing.T) {
	records := []asset.Record{{Symbol: "600000", Company: "SPD Bank"}}
	if got := Apply(records, Filters{Company: "  spd "}); len(got) != 1 {
		t.Fatalf("case-insensitive trimmed match failed: %+v", got)
	}
}

func TestApplyConjunction(t *testing.T) {
	got := Apply(sampleRecords(), Filters{Industry: "酿酒行业", Valuation: vp(asset.ValuationSeverelyUndervalued)})
	if len(got) != 1 || got[0].Symbol != "000858" {
		t.Fatalf("conjunction = %+v", got)
	}
}

func TestApplyValuationMissingNeverMatches(t *testing.T) {
	got := Apply(sampleRecords(), Filters{Valuation: vp(asset.ValuationInsufficientData)})
	if len(got) != 0 {
		t.Fatalf("records without a verdict must not match valuation 0: %+v", got)
	}
}

func TestApplyBoardWithFallback(t *testing.T) {
	got := Apply(sampleRecords(), Filters{Board: board.ChiNext})
	if len(got) != 1 || got[0].Symbol != "300750" {
		t.Fatalf("board filter = %+v", got)
	}

	// Pre-board snapshots re-classify from the symbol.
	old := []asset.Record{{Symbol: "688111"}}
	if got := Apply(old, Filters{Board: board.STARMarket}); len(got) != 1 {
		t.Fatalf("board fallback classification failed: %+v", got)
	}
}

func TestApplyDividendBucket(t *testing.T) {
	got := Apply(sampleRecords(), Filters{Dividend: DividendAbnormal})
	if len(got) != 1 || got[0].Symbol != "430047" {
		t.Fatalf("dividend filter = %+v", got)
	}
	got = Apply(sampleRecords(), Filters{Dividend: DividendNoData})
	if len(got) != 1 || got[0].Symbol != "688981" {
		t.Fatalf("no-data dividend filter = %+v", got)
	}
}

func TestBucketYield(t *testing.T) {
	cases := []struct {
		yield *float64
		want  DividendBucket
	}{
		{fp(0.5), DividendLow},
		{fp(2), DividendMedium},
		{fp(4), DividendHigh},
		{fp(7), DividendSuperHigh},
		{fp(8), DividendSuperHigh},
		{fp(9), DividendAbnormal},
		{fp(0), DividendNoData},
		{fp(-1), DividendNoData},
		{nil, DividendNoData},
		{fp(1), DividendMedium},
		{fp(3), DividendHigh},
		{fp(5), DividendSuperHigh},
	}
	for _, c := range cases {
		if got := BucketYield(c.yield); got != c.want {
			t.Fatalf("BucketYield(%v) = %s, want %s", c.yield, got, c.want)
		}
	}
}

func TestPaginate(t *testing.T) {
	records := sampleRecords()

	page := Paginate(records, 1, 2)
	if len(page) != 2 || page[0].Symbol != "600519" {
		t.Fatalf("page 1 = %+v", page)
	}
	page = Paginate(records, 3, 2)
	if len(page) != 1 || page[0].Symbol != "430047" {
		t.Fatalf("page 3 = %+v", page)
	}
	if got := Paginate(records, 4, 2); got != nil {
		t.Fatalf("out-of-range page = %+v, want nil", got)
	}
	if got := Paginate(records, 0, 2); got != nil {
		t.Fatalf("page 0 = %+v, want nil", got)
	}
}

func TestPageCount(t *testing.T) {
	if got := PageCount(250, 100); got != 3 {
		t.Fatalf("PageCount(250,100) = %d, want 3", got)
	}
	if got := PageCount(0, 100); got != 0 {
		t.Fatalf("PageCount(0,100) = %d, want 0", got)
	}
	if got := PageCount(100, 100); got != 1 {
		t.Fatalf("PageCount(100,100) = %d, want 1", got)
	}
}
