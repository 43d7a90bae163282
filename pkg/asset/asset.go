package asset

import (
	"github.com/tidwall/gjson"

	"github.com/hancao97/hanai-wealth/pkg/board"
)

// Record is the internal schema for one listed instrument. JSON tags keep
// the vendor field names so snapshots stay readable next to raw API dumps.
// Optional numerics are pointers: a field missing from the vendor payload
// stays missing in the snapshot instead of collapsing to zero.
type Record struct {
	Symbol     string   `json:"symbol"`
	Company    string   `json:"company,omitempty"`
	Price      *float64 `json:"price,omitempty"`
	PChange    *float64 `json:"p_change,omitempty"`
	PPctChange *float64 `json:"p_pct_change,omitempty"`
	MktCap     *float64 `json:"mktcap_norm_currency,omitempty"`

	Industry     string `json:"industry,omitempty"`
	IndustryCode string `json:"industrycode,omitempty"`
	Sector       string `json:"sector,omitempty"`
	SectorCode   string `json:"sectorcode,omitempty"`
	Group        string `json:"group,omitempty"`
	GroupCode    string `json:"groupcode,omitempty"`

	RevenueGrowth10Y  *float64 `json:"revenue_growth_10y,omitempty"`
	AnnualReturn10Y   *float64 `json:"total_annual_return_10y,omitempty"`
	TotalFreeCashFlow float64  `json:"total_free_cash_flow"`

	SMA20  *float64 `json:"sma_20,omitempty"`
	SMA50  *float64 `json:"sma_50,omitempty"`
	SMA200 *float64 `json:"sma_200,omitempty"`

	Yield       *float64 `json:"yield,omitempty"`
	GrossMargin *float64 `json:"gross_margin,omitempty"`
	NetMargin   *float64 `json:"net_margin,omitempty"`

	PETTM      *float64 `json:"pettm,omitempty"`
	PERangeLow *float64 `json:"pe_range_low,omitempty"`
	PERangeHi  *float64 `json:"pe_range_high,omitempty"`
	PB         *float64 `json:"pb,omitempty"`

	GFValuation *Valuation `json:"gf_valuation,omitempty"`
	GFScore     *float64   `json:"gf_score,omitempty"`

	RankGFValue       float64 `json:"rank_gf_value"`
	RankGrowth        float64 `json:"rank_growth"`
	RankMomentum      float64 `json:"rank_momentum"`
	RankProfitability float64 `json:"rank_profitability"`
	RankBalanceSheet  float64 `json:"rank_balancesheet"`

	Board board.Board `json:"board"`
}

// fcfScale converts the vendor's millions-denominated free cash flow
// into base currency units.
const fcfScale = 1_000_000

// Normalize maps one raw vendor record into the internal schema. It never
// fails: absent or malformed fields degrade to the defaults below.
//
//   - board is always recomputed from the symbol, never trusted from
//     vendor data.
//   - total_free_cash_flow defaults to 0 before the millions conversion.
//   - the five rank_* fields are resolved from their rating wrapper; see
//     Rating.Score for the exact rules.
//
// Everything else is a verbatim copy, missing stays missing.
func Normalize(raw gjson.Result) Record {
	symbol := raw.Get("symbol").String()

	return Record{
		Symbol:     symbol,
		Company:    raw.Get("company").String(),
		Price:      numField(raw, "price"),
		PChange:    numField(raw, "p_change"),
		PPctChange: numField(raw, "p_pct_change"),
		MktCap:     numField(raw, "mktcap_norm_currency"),

		Industry:     raw.Get("industry").String(),
		IndustryCode: raw.Get("industrycode").String(),
		Sector:       raw.Get("sector").String(),
		SectorCode:   raw.Get("sectorcode").String(),
		Group:        raw.Get("group").String(),
		GroupCode:    raw.Get("groupcode").String(),

		RevenueGrowth10Y:  numField(raw, "revenue_growth_10y"),
		AnnualReturn10Y:   numField(raw, "total_annual_return_10y"),
		TotalFreeCashFlow: raw.Get("total_free_cash_flow").Float() * fcfScale,

		SMA20:  numField(raw, "sma_20"),
		SMA50:  numField(raw, "sma_50"),
		SMA200: numField(raw, "sma_200"),

		Yield:       numField(raw, "yield"),
		GrossMargin: numField(raw, "gross_margin"),
		NetMargin:   numField(raw, "net_margin"),

		PETTM:      numField(raw, "pettm"),
		PERangeLow: numField(raw, "pe_range_low"),
		PERangeHi:  numField(raw, "pe_range_high"),
		PB:         numField(raw, "pb"),

		GFValuation: valuationField(raw, "gf_valuation"),
		GFScore:     numField(raw, "gf_score"),

		RankGFValue:       ParseRating(raw.Get("rank_gf_value")).Score(),
		RankGrowth:        ParseRating(raw.Get("rank_growth")).Score(),
		RankMomentum:      ParseRating(raw.Get("rank_momentum")).Score(),
		RankProfitability: ParseRating(raw.Get("rank_profitability")).Score(),
		RankBalanceSheet:  ParseRating(raw.Get("rank_balancesheet")).Score(),

		Board: board.Detect(symbol),
	}
}

// NormalizeAll maps a raw page-accumulated dataset into the internal
// schema, preserving vendor order.
func NormalizeAll(raws []gjson.Result) []Record {
	records := make([]Record, 0, len(raws))
	for _, raw := range raws {
		records = append(records, Normalize(raw))
	}
	return records
}

func numField(raw gjson.Result, key string) *float64 {
	v := raw.Get(key)
	if v.Type != gjson.Number {
		return nil
	}
	f := v.Float()
	return &f
}

func valuationField(raw gjson.Result, key string) *Valuation {
	v := raw.Get(key)
	if v.Type != gjson.Number {
		return nil
	}
	val := Valuation(v.Int())
	return &val
}
