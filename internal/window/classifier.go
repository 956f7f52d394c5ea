package window

import (
	"time"

	"github.com/wonny/macrosig/internal/contracts"
	"github.com/wonny/macrosig/pkg/config"
	"github.com/wonny/macrosig/pkg/logger"
)

// Classifier flags elevated event risk for a given instant
// ⭐ SSOT: 임팩트 윈도우 판정은 이 분류기에서만
//
// Two independent rules, OR-combined:
//   - a fixed daily UTC hour range (the US session morning)
//   - an upcoming filtered calendar event within the forward horizon
//
// Known limitation: the hour range is a static UTC window and does not
// follow daylight-saving shifts of the underlying market session.
type Classifier struct {
	cfg    config.WindowConfig
	logger *logger.Logger
}

// New creates a new impact-window classifier
func New(cfg config.WindowConfig, log *logger.Logger) *Classifier {
	return &Classifier{
		cfg:    cfg,
		logger: log,
	}
}

// Flag evaluates both rules for now against the given events.
// A nil or empty event list degrades the calendar rule to false, never an error.
func (c *Classifier) Flag(now time.Time, events []contracts.CalendarEvent) bool {
	if c.InHourWindow(now) {
		c.logger.WithField("hour_utc", now.UTC().Hour()).Debug("Inside impact hour window")
		return true
	}

	if hit, event := c.UpcomingEvent(now, events); hit {
		c.logger.WithFields(map[string]interface{}{
			"event": event.Title,
			"time":  event.Time,
		}).Debug("Upcoming high-impact event")
		return true
	}

	return false
}

// InHourWindow reports whether now falls inside the daily UTC hour range.
// Both edges are inclusive: a 12-15 window covers 12:00:00 through 15:59:59.
func (c *Classifier) InHourWindow(now time.Time) bool {
	hour := now.UTC().Hour()
	return hour >= c.cfg.StartHourUTC && hour <= c.cfg.EndHourUTC
}

// UpcomingEvent reports whether any matching event starts within
// [now, now+horizon]. Events are expected in UTC; anything naive was
// already normalized at parse time.
func (c *Classifier) UpcomingEvent(now time.Time, events []contracts.CalendarEvent) (bool, contracts.CalendarEvent) {
	now = now.UTC()
	horizon := now.Add(time.Duration(c.cfg.HorizonHours) * time.Hour)

	for _, event := range events {
		if event.Currency != c.cfg.Currency {
			continue
		}
		if !c.impactAccepted(event.Impact) {
			continue
		}

		t := event.Time.UTC()
		if t.Before(now) || t.After(horizon) {
			continue
		}

		return true, event
	}

	return false, contracts.CalendarEvent{}
}

func (c *Classifier) impactAccepted(impact string) bool {
	for _, accepted := range c.cfg.Impacts {
		if impact == accepted {
			return true
		}
		// 피드에 따라 Medium/Moderate 표기가 섞여 들어옴
		if accepted == contracts.ImpactMedium && impact == contracts.ImpactModerate {
			return true
		}
	}
	return false
}
