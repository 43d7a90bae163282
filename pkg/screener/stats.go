package screener

import (
	"sort"

	"github.com/hancao97/hanai-wealth/pkg/asset"
	"github.com/hancao97/hanai-wealth/pkg/board"
)

// Industries returns the sorted unique industry names in a snapshot.
func Industries(records []asset.Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		if r.Industry == "" || seen[r.Industry] {
			continue
		}
		seen[r.Industry] = true
		out = append(out, r.Industry)
	}
	sort.Strings(out)
	return out
}

// BoardStats counts records per board; the crawl prints this distribution
// after every run.
func BoardStats(records []asset.Record) map[board.Board]int {
	stats := make(map[board.Board]int)
	for _, r := range records {
		stats[r.Board]++
	}
	return stats
}

type ValuationStat struct {
	Count int    `json:"count"`
	Label string `json:"label"`
}

// ValuationStats counts records per valuation verdict. Records without a
// verdict are not counted.
func ValuationStats(records []asset.Record) map[asset.Valuation]ValuationStat {
	stats := make(map[asset.Valuation]ValuationStat)
	for _, r := range records {
		if r.GFValuation == nil {
			continue
		}
		v := *r.GFValuation
		s := stats[v]
		s.Count++
		s.Label = v.Label()
		stats[v] = s
	}
	return stats
}

// DividendStats counts records per dividend bucket, no-data included.
func DividendStats(records []asset.Record) map[DividendBucket]int {
	stats := map[DividendBucket]int{
		DividendNoData:    0,
		DividendLow:       0,
		DividendMedium:    0,
		DividendHigh:      0,
		DividendSuperHigh: 0,
		DividendAbnormal:  0,
	}
	for _, r := range records {
		stats[BucketYield(r.Yield)]++
	}
	return stats
}

type Level struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

type Overview struct {
	AvgPrice   float64 `json:"avgPrice"`
	AvgPE      float64 `json:"avgPE"`
	PriceLevel Level   `json:"priceLevel"`
	PELevel    Level   `json:"peLevel"`
}

// MarketOverview averages price and TTM P/E over the records carrying a
// positive value for them.
func MarketOverview(records []asset.Record) Overview {
	if len(records) == 0 {
		return Overview{
			PriceLevel: Level{Icon: "📊", Text: "暂无数据"},
			PELevel:    Level{Icon: "⚖️", Text: "暂无数据"},
		}
	}

	var totalPrice, totalPE float64
	var priceCount, peCount int
	for _, r := range records {
		if r.Price != nil && *r.Price > 0 {
			totalPrice += *r.Price
			priceCount++
		}
		if r.PETTM != nil && *r.PETTM > 0 {
			totalPE += *r.PETTM
			peCount++
		}
	}

	var avgPrice, avgPE float64
	if priceCount > 0 {
		avgPrice = totalPrice / float64(priceCount)
	}
	if peCount > 0 {
		avgPE = totalPE / float64(peCount)
	}

	return Overview{
		AvgPrice:   avgPrice,
		AvgPE:      avgPE,
		PriceLevel: priceLevel(avgPrice),
		PELevel:    peLevel(avgPE),
	}
}

func priceLevel(price float64) Level {
	switch {
	case price < 10:
		return Level{Icon: "📉", Text: "较低价位"}
	case price < 30:
		return Level{Icon: "📊", Text: "中等价位"}
	case price < 100:
		return Level{Icon: "📈", Text: "较高价位"}
	default:
		return Level{Icon: "💎", Text: "超高价位"}
	}
}

func peLevel(pe float64) Level {
	switch {
	case pe < 15:
		return Level{Icon: "💰", Text: "低估值"}
	case pe < 25:
		return Level{Icon: "⚖️", Text: "合理估值"}
	case pe < 50:
		return Level{Icon: "⚡", Text: "较高估值"}
	default:
		return Level{Icon: "🔥", Text: "高估值"}
	}
}
