package commands

import (
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/wonny/macrosig/internal/calendar"
	"github.com/wonny/macrosig/internal/external/feeds"
	"github.com/wonny/macrosig/internal/external/yahoo"
	"github.com/wonny/macrosig/internal/scheduler"
	"github.com/wonny/macrosig/internal/scheduler/jobs"
	"github.com/wonny/macrosig/internal/signal"
	"github.com/wonny/macrosig/internal/signalconfig"
	"github.com/wonny/macrosig/internal/store"
	"github.com/wonny/macrosig/internal/window"
	"github.com/wonny/macrosig/pkg/config"
	"github.com/wonny/macrosig/pkg/httputil"
	"github.com/wonny/macrosig/pkg/logger"
)

// app holds the wired pipeline components shared by all commands
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	rules *signalconfig.Config

	signals  *store.SignalStore
	calendar *store.CalendarStore

	signalJob   *jobs.MacroSignal
	calendarJob *jobs.CalendarUpdate
}

// initApp wires the full dependency graph
// ⭐ SSOT: 의존성 조립은 여기서만
func initApp() (*app, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Load scoring rules
	rules, err := signalconfig.Load(cfg.Market.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("load scoring rules: %w", err)
	}

	// 4. Create HTTP clients (market provider throttles aggressive callers)
	marketHTTP := httputil.New(log, cfg.Market.Timeout).
		WithRetry(2, 2*time.Second).
		WithRateLimiter(rate.NewLimiter(rate.Every(500*time.Millisecond), 1))
	feedHTTP := httputil.New(log, cfg.Calendar.Timeout)

	// 5. Create external clients
	market := yahoo.NewClient(marketHTTP, log, cfg.Market.BaseURL)
	feedsClient, err := feeds.NewClient(feedHTTP, log, cfg.Calendar)
	if err != nil {
		return nil, fmt.Errorf("create feeds client: %w", err)
	}

	// 6. Create stores
	signals := store.NewSignalStore(cfg.SignalPath, rules.Keys(), log)
	calendarStore := store.NewCalendarStore(cfg.CalendarPath, log)

	// 7. Create pipeline components
	scorer := signal.NewScorer(rules, log)
	classifier := window.New(cfg.Window, log)
	builder := calendar.NewBuilder(calendar.Options{
		Currency:      cfg.Window.Currency,
		Impacts:       cfg.Window.Impacts,
		EventBuffer:   cfg.Calendar.EventBuffer,
		MergeHolidays: cfg.Calendar.MergeHolidays,
	}, log)

	// 8. Create jobs
	signalJob := jobs.NewMacroSignal(market, scorer, classifier, signals, calendarStore, rules, cfg.Market.LookbackDays, log)
	calendarJob := jobs.NewCalendarUpdate(feedsClient, builder, calendarStore, log)

	return &app{
		cfg:         cfg,
		log:         log,
		rules:       rules,
		signals:     signals,
		calendar:    calendarStore,
		signalJob:   signalJob,
		calendarJob: calendarJob,
	}, nil
}

// initScheduler wires the app and registers both jobs
func initScheduler() (*scheduler.Scheduler, error) {
	a, err := initApp()
	if err != nil {
		return nil, err
	}

	sched := scheduler.New(a.log)

	if err := sched.AddJob(a.signalJob); err != nil {
		return nil, fmt.Errorf("register signal job: %w", err)
	}
	if err := sched.AddJob(a.calendarJob); err != nil {
		return nil, fmt.Errorf("register calendar job: %w", err)
	}

	return sched, nil
}
