package contracts

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
}

func TestPriceSeries_ChangeRatio(t *testing.T) {
	tests := []struct {
		name    string
		candles []Candle
		want    float64
		wantErr bool
	}{
		{
			name: "rising series",
			candles: []Candle{
				{Date: day(1), Close: 100},
				{Date: day(2), Close: 101},
				{Date: day(3), Close: 102},
			},
			want: 0.02,
		},
		{
			name: "falling series",
			candles: []Candle{
				{Date: day(1), Close: 200},
				{Date: day(2), Close: 190},
			},
			want: -0.05,
		},
		{
			name: "flat series",
			candles: []Candle{
				{Date: day(1), Close: 50},
				{Date: day(2), Close: 50},
			},
			want: 0,
		},
		{
			name:    "single point",
			candles: []Candle{{Date: day(1), Close: 100}},
			wantErr: true,
		},
		{
			name:    "empty series",
			candles: nil,
			wantErr: true,
		},
		{
			name: "zero first close",
			candles: []Candle{
				{Date: day(1), Close: 0},
				{Date: day(2), Close: 10},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &PriceSeries{Instrument: "GOLD", Candles: tt.candles}
			got, err := s.ChangeRatio()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ChangeRatio() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			epsilon := 1e-9
			if diff := got - tt.want; diff > epsilon || diff < -epsilon {
				t.Errorf("ChangeRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPriceSeries_Last(t *testing.T) {
	s := &PriceSeries{
		Instrument: "VIX",
		Candles: []Candle{
			{Date: day(1), Close: 15.2},
			{Date: day(2), Close: 19.4},
		},
	}

	last, err := s.Last()
	if err != nil {
		t.Fatalf("Last() failed: %v", err)
	}
	if last != 19.4 {
		t.Errorf("Last() = %v, want 19.4", last)
	}

	empty := &PriceSeries{Instrument: "VIX"}
	if _, err := empty.Last(); err == nil {
		t.Error("Last() on empty series should fail")
	}
}

func TestNeutralSnapshot(t *testing.T) {
	ts := time.Date(2026, 8, 31, 13, 0, 0, 0, time.UTC)
	instruments := []string{"gold_bias", "yield_pressure", "dxy_signal", "vix_signal"}

	snap := NeutralSnapshot(ts, instruments)

	if !snap.Degraded {
		t.Error("NeutralSnapshot should be marked degraded")
	}
	if snap.TotalScore != 0 {
		t.Errorf("TotalScore = %d, want 0", snap.TotalScore)
	}
	if len(snap.Signals) != 4 {
		t.Fatalf("Signals count = %d, want 4", len(snap.Signals))
	}
	for inst, sig := range snap.Signals {
		if sig != SignalNeutral {
			t.Errorf("Signal for %s = %d, want 0", inst, sig)
		}
	}
}

func TestCalendarEvent_Key(t *testing.T) {
	a := CalendarEvent{
		Time:     time.Date(2026, 9, 1, 12, 30, 0, 0, time.UTC),
		Impact:   ImpactHigh,
		Currency: "USD",
		Title:    "Non-Farm Payrolls",
	}
	b := CalendarEvent{
		Time:     time.Date(2026, 9, 1, 12, 30, 0, 0, time.UTC),
		Impact:   ImpactMedium, // key ignores impact
		Currency: "USD",
		Title:    "Non-Farm Payrolls",
	}
	c := CalendarEvent{
		Time:     time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC),
		Impact:   ImpactHigh,
		Currency: "USD",
		Title:    "Non-Farm Payrolls",
	}

	if a.Key() != b.Key() {
		t.Error("events with same (time, title) should share a key")
	}
	if a.Key() == c.Key() {
		t.Error("events at different times should not share a key")
	}
}

func TestCalendarEvent_Expired(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	buffer := 30 * time.Minute

	tests := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{"future event", now.Add(time.Hour), false},
		{"just started", now.Add(-10 * time.Minute), false},
		{"inside buffer", now.Add(-29 * time.Minute), false},
		{"past buffer", now.Add(-31 * time.Minute), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := CalendarEvent{Time: tt.start, Title: "CPI"}
			if got := e.Expired(now, buffer); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}
