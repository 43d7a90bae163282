package screener

import (
	"fmt"
	"sort"

	"github.com/hancao97/hanai-wealth/pkg/asset"
	"github.com/hancao97/hanai-wealth/pkg/snapshot"
)

const DefaultPageSize = 100

// Session is the presentation-read context: one loaded snapshot, the
// active filters and the pagination cursor, bundled instead of living in
// package globals. It is not safe for concurrent use; each consumer gets
// its own session.
type Session struct {
	Dir       string
	PageSize  int
	StatePath string // session-state file; empty disables persistence

	dates       []string
	currentDate string
	all         []asset.Record
	filtered    []asset.Record
	filters     Filters
	currentPage int
}

func NewSession(dir string) *Session {
	return &Session{
		Dir:         dir,
		PageSize:    DefaultPageSize,
		currentPage: 1,
	}
}

// LoadDateIndex reads the available snapshot dates (newest first) and
// loads the initial snapshot: the session-saved date if still available,
// otherwise the most recent one.
func (s *Session) LoadDateIndex() error {
	dates, err := snapshot.LoadDateIndex(s.Dir)
	if err != nil {
		return err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	s.dates = dates

	if len(dates) == 0 {
		return nil
	}

	// Hold the saved state before LoadSnapshot rewrites the state file.
	saved := s.loadState()

	selected := dates[0]
	if saved != nil {
		if containsDate(dates, saved.Date) {
			selected = saved.Date
		}
		s.filters = saved.Filters
	}

	if err := s.LoadSnapshot(selected); err != nil {
		return err
	}

	// Restore the page cursor only after the snapshot defines the range.
	if saved != nil && saved.Page > 1 {
		s.GoToPage(saved.Page)
	}
	return nil
}

// LoadSnapshot switches the session to the snapshot for date. On failure
// the previously loaded snapshot and all view state stay untouched.
func (s *Session) LoadSnapshot(date string) error {
	records, err := snapshot.Load(s.Dir, date)
	if err != nil {
		return fmt.Errorf("load %s: %w", date, err)
	}

	s.all = records
	s.currentDate = date
	s.applyFilters()
	s.saveState()
	return nil
}

func (s *Session) applyFilters() {
	s.filtered = Apply(s.all, s.filters)
	s.currentPage = 1
}

// UpdateFilters replaces the active predicates, re-filters, and resets
// the cursor to page 1.
func (s *Session) UpdateFilters(f Filters) {
	s.filters = f
	s.applyFilters()
	s.saveState()
}

// ClearFilters drops every predicate and the persisted session state.
func (s *Session) ClearFilters() {
	s.filters = Filters{}
	s.applyFilters()
	s.clearState()
}

// GoToPage moves the cursor. Requests outside [1, TotalPages] and
// requests for the current page are no-ops.
func (s *Session) GoToPage(page int) {
	if page < 1 || page > s.TotalPages() || page == s.currentPage {
		return
	}
	s.currentPage = page
	s.saveState()
}

// Page returns the current page slice of the filtered view.
func (s *Session) Page() []asset.Record {
	return Paginate(s.filtered, s.currentPage, s.pageSize())
}

func (s *Session) TotalPages() int {
	return PageCount(len(s.filtered), s.pageSize())
}

func (s *Session) CurrentPage() int { return s.currentPage }

func (s *Session) CurrentDate() string { return s.currentDate }

func (s *Session) Dates() []string { return s.dates }

func (s *Session) ActiveFilters() Filters { return s.filters }

func (s *Session) All() []asset.Record { return s.all }

func (s *Session) Filtered() []asset.Record { return s.filtered }

func (s *Session) pageSize() int {
	if s.PageSize < 1 {
		return DefaultPageSize
	}
	return s.PageSize
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}
