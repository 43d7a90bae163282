package storage

import (
	"time"

	"github.com/hancao97/hanai-wealth/pkg/board"
)

// Run is one completed crawl: the snapshot date it produced, when it
// finished, and how many records it fetched.
type Run struct {
	RunDate     string
	FetchedAt   time.Time
	RecordCount int
}

// BoardCount is the per-board record distribution of one run.
type BoardCount struct {
	RunDate string
	Board   board.Board
	Count   int
}
