package calendar

import (
	"sort"
	"time"

	"github.com/wonny/macrosig/internal/contracts"
	"github.com/wonny/macrosig/pkg/logger"
)

// Options controls how fetched events are filtered and persisted
type Options struct {
	Currency      string
	Impacts       []string
	EventBuffer   time.Duration // grace period after an event starts
	MergeHolidays bool
}

// Builder turns raw feed events into the persisted calendar set
// ⭐ SSOT: 캘린더 필터/중복 제거/정렬은 여기서만
type Builder struct {
	opts   Options
	logger *logger.Logger
}

// NewBuilder creates a calendar builder
func NewBuilder(opts Options, log *logger.Logger) *Builder {
	return &Builder{
		opts:   opts,
		logger: log,
	}
}

// Build filters, deduplicates and sorts events for persistence.
// The result fully replaces any previously persisted set.
func (b *Builder) Build(now time.Time, fetched []contracts.CalendarEvent) []contracts.CalendarEvent {
	now = now.UTC()

	events := fetched
	if b.opts.MergeHolidays {
		events = append(events, holidayEvents(b.opts.Currency, now.Year(), now.Year()+1)...)
	}

	kept := make([]contracts.CalendarEvent, 0, len(events))
	seen := make(map[string]bool, len(events))

	dropped := struct{ currency, impact, expired, dup int }{}

	for _, e := range events {
		if e.Currency != b.opts.Currency {
			dropped.currency++
			continue
		}
		if !b.impactAccepted(e.Impact) {
			dropped.impact++
			continue
		}
		if e.Expired(now, b.opts.EventBuffer) {
			dropped.expired++
			continue
		}

		key := e.Key()
		if seen[key] {
			dropped.dup++
			continue
		}
		seen[key] = true

		kept = append(kept, e)
	}

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Time.Before(kept[j].Time)
	})

	b.logger.WithFields(map[string]interface{}{
		"kept":             len(kept),
		"dropped_currency": dropped.currency,
		"dropped_impact":   dropped.impact,
		"dropped_expired":  dropped.expired,
		"dropped_dup":      dropped.dup,
	}).Debug("Built calendar set")

	return kept
}

func (b *Builder) impactAccepted(impact string) bool {
	for _, accepted := range b.opts.Impacts {
		if impact == accepted {
			return true
		}
		if accepted == contracts.ImpactMedium && impact == contracts.ImpactModerate {
			return true
		}
	}
	return false
}
