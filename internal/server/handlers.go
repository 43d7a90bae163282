package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hancao97/hanai-wealth/pkg/asset"
	"github.com/hancao97/hanai-wealth/pkg/board"
	"github.com/hancao97/hanai-wealth/pkg/screener"
	"github.com/hancao97/hanai-wealth/pkg/snapshot"
)

func (s *Server) handleDates(w http.ResponseWriter, r *http.Request) {
	dates, err := snapshot.LoadDateIndex(s.DataDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, dates)
}

// resolveDate picks the requested date, or the newest available one when
// the request leaves it out.
func (s *Server) resolveDate(r *http.Request) (string, error) {
	if date := r.URL.Query().Get("date"); date != "" {
		return date, nil
	}
	dates, err := snapshot.LoadDateIndex(s.DataDir)
	if err != nil {
		return "", err
	}
	if len(dates) == 0 {
		return "", nil
	}
	return dates[len(dates)-1], nil
}

func (s *Server) loadForRequest(w http.ResponseWriter, r *http.Request) ([]asset.Record, string, bool) {
	date, err := s.resolveDate(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, "", false
	}
	if date == "" {
		http.Error(w, "no snapshots available", http.StatusNotFound)
		return nil, "", false
	}
	records, err := snapshot.Load(s.DataDir, date)
	if err != nil {
		// A bad file only fails this date; other dates keep serving.
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, "", false
	}
	return records, date, true
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	records, _, ok := s.loadForRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, records)
}

type screenResponse struct {
	Date       string         `json:"date"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalPages int            `json:"total_pages"`
	Data       []asset.Record `json:"data"`
}

func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	records, date, ok := s.loadForRequest(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filters := screener.Filters{
		Company:  q.Get("company"),
		Industry: q.Get("industry"),
		Board:    board.Board(q.Get("board")),
		Dividend: screener.DividendBucket(q.Get("dividend")),
	}
	if raw := q.Get("valuation"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || !asset.Valuation(n).Valid() {
			http.Error(w, "invalid valuation", http.StatusBadRequest)
			return
		}
		v := asset.Valuation(n)
		filters.Valuation = &v
	}

	page := 1
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "invalid page", http.StatusBadRequest)
			return
		}
		page = n
	}
	perPage := screener.DefaultPageSize
	if raw := q.Get("per_page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "invalid per_page", http.StatusBadRequest)
			return
		}
		perPage = n
	}

	filtered := screener.Apply(records, filters)
	data := screener.Paginate(filtered, page, perPage)
	if data == nil {
		data = []asset.Record{}
	}

	writeJSON(w, screenResponse{
		Date:       date,
		Total:      len(filtered),
		Page:       page,
		PerPage:    perPage,
		TotalPages: screener.PageCount(len(filtered), perPage),
		Data:       data,
	})
}

type statsResponse struct {
	Date       string                                     `json:"date"`
	Total      int                                        `json:"total"`
	Industries []string                                   `json:"industries"`
	Boards     map[board.Board]int                        `json:"boards"`
	Valuation  map[asset.Valuation]screener.ValuationStat `json:"valuation"`
	Dividend   map[screener.DividendBucket]int            `json:"dividend"`
	Overview   screener.Overview                          `json:"overview"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	records, date, ok := s.loadForRequest(w, r)
	if !ok {
		return
	}

	industries := screener.Industries(records)
	if industries == nil {
		industries = []string{}
	}

	writeJSON(w, statsResponse{
		Date:       date,
		Total:      len(records),
		Industries: industries,
		Boards:     screener.BoardStats(records),
		Valuation:  screener.ValuationStats(records),
		Dividend:   screener.DividendStats(records),
		Overview:   screener.MarketOverview(records),
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
