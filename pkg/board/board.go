package board

import (
	"regexp"
	"strings"

	"github.com/hancao97/hanai-wealth/internal/utils"
)

// Board is one of the four A-share exchange boards, inferred from the
// instrument code prefix. The canonical values are the vendor-locale
// labels that end up in snapshot files.
type Board string

const (
	MainBoard       Board = "主板"
	ChiNext         Board = "创业板"
	STARMarket      Board = "科创板"
	BeijingExchange Board = "北证"
)

// Ordered prefix rules, first match wins.
var (
	mainBoardRe = regexp.MustCompile(`^(000|001|002|003|600|601|603|605)`)
	chiNextRe   = regexp.MustCompile(`^(300|301)`)
	starRe      = regexp.MustCompile(`^68`)
	bseRe       = regexp.MustCompile(`^(43|83|87|92)`)
)

// Detect maps an instrument code to its board. It is total: codes that
// match no rule, and empty codes, are counted as main board with a
// warning, never an error.
func Detect(symbol string) Board {
	code := strings.TrimSpace(symbol)
	if code == "" {
		utils.Log.Warnf("unknown stock code format: %q, counting as main board", symbol)
		return MainBoard
	}

	switch {
	case mainBoardRe.MatchString(code):
		return MainBoard
	case chiNextRe.MatchString(code):
		return ChiNext
	case starRe.MatchString(code):
		return STARMarket
	case bseRe.MatchString(code):
		return BeijingExchange
	}

	utils.Log.Warnf("unknown stock code rule: %s, counting as main board", code)
	return MainBoard
}

// Valid reports whether b is one of the four known boards.
func Valid(b Board) bool {
	switch b {
	case MainBoard, ChiNext, STARMarket, BeijingExchange:
		return true
	}
	return false
}
