package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/macrosig/internal/contracts"
	"github.com/wonny/macrosig/internal/external/yahoo"
	"github.com/wonny/macrosig/internal/signal"
	"github.com/wonny/macrosig/internal/signalconfig"
	"github.com/wonny/macrosig/internal/store"
	"github.com/wonny/macrosig/internal/window"
	"github.com/wonny/macrosig/pkg/logger"
)

// MacroSignal runs the full snapshot pipeline:
// fetch basket -> score -> impact window flag -> write CSV.
// ⭐ SSOT: 매크로 시그널 파이프라인 실행은 여기서만
type MacroSignal struct {
	market     *yahoo.Client
	scorer     *signal.Scorer
	classifier *window.Classifier
	signals    *store.SignalStore
	calendar   *store.CalendarStore
	rules      *signalconfig.Config
	lookback   int
	logger     *logger.Logger
}

// NewMacroSignal creates the macro signal job
func NewMacroSignal(
	market *yahoo.Client,
	scorer *signal.Scorer,
	classifier *window.Classifier,
	signals *store.SignalStore,
	calendar *store.CalendarStore,
	rules *signalconfig.Config,
	lookback int,
	log *logger.Logger,
) *MacroSignal {
	return &MacroSignal{
		market:     market,
		scorer:     scorer,
		classifier: classifier,
		signals:    signals,
		calendar:   calendar,
		rules:      rules,
		lookback:   lookback,
		logger:     log,
	}
}

// Name returns the job name
func (j *MacroSignal) Name() string {
	return "macro_signal"
}

// Schedule runs every 10 minutes
func (j *MacroSignal) Schedule() string {
	return "0 */10 * * * *"
}

// Run executes the pipeline once
func (j *MacroSignal) Run(ctx context.Context) error {
	_, err := j.Execute(ctx, time.Now().UTC())
	return err
}

// Execute runs the pipeline for the given reference time and returns
// the snapshot that was written.
//
// A basket fetch failure does not abort the run: the whole snapshot
// degrades to neutral zeros so downstream readers always see a fresh
// row. Only a write failure is returned as an error.
func (j *MacroSignal) Execute(ctx context.Context, now time.Time) (*contracts.MacroSnapshot, error) {
	snapshot := j.buildSnapshot(ctx, now)

	if err := j.signals.Write(snapshot); err != nil {
		return nil, fmt.Errorf("failed to write signal snapshot: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"total_score": snapshot.TotalScore,
		"high_impact": snapshot.HighImpact,
		"degraded":    snapshot.Degraded,
	}).Info("Macro signal snapshot written")

	return snapshot, nil
}

func (j *MacroSignal) buildSnapshot(ctx context.Context, now time.Time) *contracts.MacroSnapshot {
	basket, err := j.market.FetchBasket(ctx, j.rules, j.lookback)
	if err != nil {
		// 바스켓 전체 실패 -> 중립 스냅샷으로 대체
		j.logger.WithError(err).Error("Basket fetch failed, writing neutral snapshot")
		return contracts.NeutralSnapshot(now, j.rules.Keys())
	}

	snapshot := j.scorer.Score(now, basket)

	events, err := j.calendar.Read()
	if err != nil {
		j.logger.WithError(err).Warn("Calendar file unreadable, window check uses hours only")
		events = nil
	}
	snapshot.HighImpact = j.classifier.Flag(now, events)

	return snapshot
}
