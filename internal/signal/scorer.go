package signal

import (
	"time"

	"github.com/wonny/macrosig/internal/contracts"
	"github.com/wonny/macrosig/internal/signalconfig"
	"github.com/wonny/macrosig/pkg/logger"
)

// Scorer converts a basket of price series into discrete signals
// ⭐ SSOT: 시그널 분류는 이 스코어러에서만 수행
type Scorer struct {
	rules  *signalconfig.Config
	logger *logger.Logger
}

// NewScorer creates a new scorer from a rules table
func NewScorer(rules *signalconfig.Config, log *logger.Logger) *Scorer {
	return &Scorer{
		rules:  rules,
		logger: log,
	}
}

// Score classifies every configured instrument and sums the total.
//
// Instruments whose series is missing or degenerate (fewer than 2 points,
// or a zero first close) are handled by the configured fallback policy:
// "zero" records a neutral signal and keeps the instrument in the output,
// "omit" drops the instrument from the snapshot for this run.
func (s *Scorer) Score(now time.Time, series map[string]*contracts.PriceSeries) *contracts.MacroSnapshot {
	snapshot := &contracts.MacroSnapshot{
		Timestamp: now.UTC(),
		Signals:   make(map[string]contracts.Signal, len(s.rules.Instruments)),
	}

	for _, rule := range s.rules.Instruments {
		ps := series[rule.Key]

		sig, ok := s.classify(rule, ps)
		if !ok {
			s.logger.WithField("instrument", rule.Key).Warn("Signal unavailable, applying fallback")
			if s.rules.Fallback == signalconfig.FallbackOmit {
				continue
			}
			sig = contracts.SignalNeutral
		}

		snapshot.Signals[rule.Key] = sig
		snapshot.TotalScore += int(sig)
	}

	s.logger.WithFields(map[string]interface{}{
		"total_score": snapshot.TotalScore,
		"signals":     snapshot.Signals,
	}).Debug("Scored basket")

	return snapshot
}

// classify applies one rule to one series.
// Returns ok=false when the series cannot produce a signal.
func (s *Scorer) classify(rule signalconfig.Instrument, ps *contracts.PriceSeries) (contracts.Signal, bool) {
	if ps == nil {
		return contracts.SignalNeutral, false
	}

	switch rule.Mode {
	case signalconfig.ModeLevel:
		last, err := ps.Last()
		if err != nil {
			return contracts.SignalNeutral, false
		}
		return classifyLevel(last, rule.Level), true

	default: // ModeChange (validated at load time)
		ratio, err := ps.ChangeRatio()
		if err != nil {
			return contracts.SignalNeutral, false
		}
		return classifyChange(ratio, rule), true
	}
}

// classifyChange maps a change ratio onto {-1, 0, +1}.
// Thresholds are inclusive: a ratio exactly at a boundary triggers it.
func classifyChange(ratio float64, rule signalconfig.Instrument) contracts.Signal {
	var sig contracts.Signal
	switch {
	case ratio >= rule.Up:
		sig = contracts.SignalBullish
	case ratio <= rule.Down:
		sig = contracts.SignalBearish
	default:
		return contracts.SignalNeutral
	}

	if rule.Polarity == signalconfig.PolarityInverse {
		sig = -sig
	}
	return sig
}

// classifyLevel maps an absolute level onto {0, +1}.
// One-sided: there is no bearish branch. Boundary is inclusive.
func classifyLevel(value, level float64) contracts.Signal {
	if value >= level {
		return contracts.SignalBullish
	}
	return contracts.SignalNeutral
}
