package contracts

import (
	"fmt"
	"time"
)

// Candle represents one daily closing price observation
type Candle struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is an ordered sequence of daily closes for one instrument
// ⭐ SSOT: 시세 스냅샷 → 스코어러 데이터 전달
type PriceSeries struct {
	Instrument string   `json:"instrument"`
	Ticker     string   `json:"ticker"`
	Candles    []Candle `json:"candles"`
}

// Len returns the number of observations in the series
func (s *PriceSeries) Len() int {
	return len(s.Candles)
}

// Last returns the most recent close
func (s *PriceSeries) Last() (float64, error) {
	if len(s.Candles) == 0 {
		return 0, fmt.Errorf("empty series for %s", s.Instrument)
	}
	return s.Candles[len(s.Candles)-1].Close, nil
}

// ChangeRatio returns (last - first) / first over the series window.
// A series needs at least 2 points and a non-zero first close; anything
// less means the instrument has no usable signal this run.
func (s *PriceSeries) ChangeRatio() (float64, error) {
	if len(s.Candles) < 2 {
		return 0, fmt.Errorf("series for %s has %d points, need at least 2", s.Instrument, len(s.Candles))
	}

	first := s.Candles[0].Close
	last := s.Candles[len(s.Candles)-1].Close

	if first == 0 {
		return 0, fmt.Errorf("series for %s starts at zero", s.Instrument)
	}

	return (last - first) / first, nil
}

// Signal is a discrete per-instrument trading signal
type Signal int

const (
	SignalBearish Signal = -1
	SignalNeutral Signal = 0
	SignalBullish Signal = 1
)

// MacroSnapshot represents one complete scoring run
// ⭐ SSOT: 스코어러 → 출력 데이터 전달
type MacroSnapshot struct {
	Timestamp  time.Time         `json:"timestamp"`
	Signals    map[string]Signal `json:"signals"` // key: instrument
	TotalScore int               `json:"total_score"`
	HighImpact bool              `json:"high_impact"`
	Degraded   bool              `json:"degraded"` // true when the neutral fallback was used
}

// NeutralSnapshot returns the all-zero fallback snapshot.
// 수집 실패 시 부분 데이터 대신 전체 중립값 사용 (whole-or-nothing)
func NeutralSnapshot(ts time.Time, instruments []string) *MacroSnapshot {
	signals := make(map[string]Signal, len(instruments))
	for _, inst := range instruments {
		signals[inst] = SignalNeutral
	}
	return &MacroSnapshot{
		Timestamp: ts.UTC(),
		Signals:   signals,
		Degraded:  true,
	}
}

// Get returns the signal for an instrument
func (m *MacroSnapshot) Get(instrument string) (Signal, bool) {
	sig, exists := m.Signals[instrument]
	return sig, exists
}
