package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/hancao97/hanai-wealth/internal/utils"
	"github.com/hancao97/hanai-wealth/pkg/asset"
)

// IndexFileName is the derived date index, regenerated in full on every
// write cycle, never appended to or hand-edited.
const IndexFileName = "dates.json"

var dateFileRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.json$`)

// Today returns the calendar date snapshots are keyed by.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// Path returns the snapshot file path for a date.
func Path(dir, date string) string {
	return filepath.Join(dir, date+".json")
}

// Write serializes the records to {date}.json under dir, overwriting any
// snapshot already present for that date. Records keep vendor sort order.
func Write(dir, date string, records []asset.Record) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(Path(dir, date), data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", date, err)
	}

	utils.Log.Infof("Saved %d records to %s", len(records), Path(dir, date))
	return nil
}

// Load reads one dated snapshot back into the internal schema.
func Load(dir, date string) ([]asset.Record, error) {
	data, err := os.ReadFile(Path(dir, date))
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", date, err)
	}

	var records []asset.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", date, err)
	}
	return records, nil
}

// RebuildDateIndex scans dir for YYYY-MM-DD.json snapshot files, writes
// the ascending-sorted date list to dates.json, and returns it. The index
// is a derived view: it is recomputed from scratch, not updated.
func RebuildDateIndex(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list snapshot dir: %w", err)
	}

	var dates []string
	for _, e := range entries {
		if e.IsDir() || !dateFileRe.MatchString(e.Name()) {
			continue
		}
		dates = append(dates, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(dates)

	if dates == nil {
		dates = []string{}
	}

	data, err := json.MarshalIndent(dates, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal date index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, IndexFileName), data, 0o644); err != nil {
		return nil, fmt.Errorf("write date index: %w", err)
	}

	utils.Log.Infof("Rebuilt %s with %d dates", IndexFileName, len(dates))
	return dates, nil
}

// LoadDateIndex reads the persisted date index.
func LoadDateIndex(dir string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(dir, IndexFileName))
	if err != nil {
		return nil, fmt.Errorf("read date index: %w", err)
	}
	var dates []string
	if err := json.Unmarshal(data, &dates); err != nil {
		return nil, fmt.Errorf("parse date index: %w", err)
	}
	return dates, nil
}

// Scrub removes the named keys from every snapshot file in dir. A file
// that fails to parse is logged and skipped; the rest keep processing.
// Returns the number of files rewritten.
func Scrub(dir string, keys []string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("list snapshot dir: %w", err)
	}

	processed := 0
	for _, e := range entries {
		if e.IsDir() || !dateFileRe.MatchString(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			utils.Log.Errorf("Reading %s failed: %v", e.Name(), err)
			continue
		}

		var items []map[string]json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			utils.Log.Errorf("Parsing %s failed: %v", e.Name(), err)
			continue
		}

		for _, item := range items {
			for _, key := range keys {
				delete(item, key)
			}
		}

		out, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			utils.Log.Errorf("Re-encoding %s failed: %v", e.Name(), err)
			continue
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			utils.Log.Errorf("Writing %s failed: %v", e.Name(), err)
			continue
		}

		utils.Log.Infof("Processed: %s", e.Name())
		processed++
	}

	return processed, nil
}
