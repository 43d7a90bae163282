package asset

// Valuation is the vendor's 0-7 valuation verdict.
type Valuation int

const (
	ValuationInsufficientData Valuation = iota
	ValuationStaleData
	ValuationSuspectedTrap
	ValuationSeverelyUndervalued
	ValuationUndervalued
	ValuationFairRange
	ValuationOvervalued
	ValuationSeverelyOvervalued
)

var valuationLabels = map[Valuation]string{
	ValuationInsufficientData:    "数据不足",
	ValuationStaleData:           "数据长久未更新",
	ValuationSuspectedTrap:       "价值陷阱嫌疑",
	ValuationSeverelyUndervalued: "严重低估",
	ValuationUndervalued:         "低估",
	ValuationFairRange:           "合理范围",
	ValuationOvervalued:          "高估",
	ValuationSeverelyOvervalued:  "严重高估",
}

// Label returns the canonical display label for v, or 未知 for values
// outside the enum.
func (v Valuation) Label() string {
	if label, ok := valuationLabels[v]; ok {
		return label
	}
	return "未知"
}

// Valid reports whether v is inside the 0-7 enum.
func (v Valuation) Valid() bool {
	return v >= ValuationInsufficientData && v <= ValuationSeverelyOvervalued
}
