package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/wonny/macrosig/internal/contracts"
	"github.com/wonny/macrosig/pkg/logger"
)

// Timestamp layout of the signal row (UTC)
const signalTimeLayout = "2006-01-02 15:04:05"

// SignalStore persists the single-row macro signal file
// ⭐ SSOT: macro_signal.csv 읽기/쓰기는 여기서만
//
// Schema v2 (fixed): timestamp,total_score,<instrument columns>,high_impact
// Exactly one data row exists at any time; every write replaces the file.
type SignalStore struct {
	path   string
	keys   []string // instrument column order
	logger *logger.Logger
}

// NewSignalStore creates a signal store with a fixed column set
func NewSignalStore(path string, keys []string, log *logger.Logger) *SignalStore {
	return &SignalStore{
		path:   path,
		keys:   keys,
		logger: log,
	}
}

// Header returns the full column list
func (s *SignalStore) Header() []string {
	header := []string{"timestamp", "total_score"}
	header = append(header, s.keys...)
	return append(header, "high_impact")
}

// Write replaces the file with one header line and one data row.
// Instruments absent from the snapshot (omit fallback) render as 0.
// A write failure here is fatal to the run: downstream consumers would
// otherwise observe nothing at all.
func (s *SignalStore) Write(snapshot *contracts.MacroSnapshot) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(s.Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := []string{
		snapshot.Timestamp.UTC().Format(signalTimeLayout),
		strconv.Itoa(snapshot.TotalScore),
	}
	for _, key := range s.keys {
		sig, _ := snapshot.Get(key) // missing → 0
		row = append(row, strconv.Itoa(int(sig)))
	}
	row = append(row, boolToFlag(snapshot.HighImpact))

	if err := w.Write(row); err != nil {
		return fmt.Errorf("write row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", s.path, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"path":        s.path,
		"total_score": snapshot.TotalScore,
		"high_impact": snapshot.HighImpact,
	}).Info("Wrote macro signal")

	return nil
}

// Read loads the current snapshot back from disk (status command)
func (s *SignalStore) Read() (*contracts.MacroSnapshot, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s has no data row", s.path)
	}

	header, row := records[0], records[1]
	if len(header) != len(row) {
		return nil, fmt.Errorf("%s: header/row column mismatch", s.path)
	}

	snapshot := &contracts.MacroSnapshot{
		Signals: make(map[string]contracts.Signal),
	}

	for i, col := range header {
		switch col {
		case "timestamp":
			ts, err := time.Parse(signalTimeLayout, row[i])
			if err != nil {
				return nil, fmt.Errorf("parse timestamp: %w", err)
			}
			snapshot.Timestamp = ts.UTC()
		case "total_score":
			score, err := strconv.Atoi(row[i])
			if err != nil {
				return nil, fmt.Errorf("parse total_score: %w", err)
			}
			snapshot.TotalScore = score
		case "high_impact":
			snapshot.HighImpact = row[i] == "1"
		default:
			v, err := strconv.Atoi(row[i])
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", col, err)
			}
			snapshot.Signals[col] = contracts.Signal(v)
		}
	}

	return snapshot, nil
}

func boolToFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
