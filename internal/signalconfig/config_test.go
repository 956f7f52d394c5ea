package signalconfig

import (
	"os"
	"strings"
	"testing"
)

func TestLoadShippedRules(t *testing.T) {
	// 배포 YAML 경로
	path := "../../config/macro_gold_v2.yaml"

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skip("config file not found")
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Meta.StrategyID != "macro_gold" {
		t.Errorf("expected strategy_id=macro_gold, got %s", cfg.Meta.StrategyID)
	}
	if cfg.Fallback != FallbackZero {
		t.Errorf("expected fallback=zero, got %s", cfg.Fallback)
	}

	// 컬럼 순서 보장
	wantKeys := []string{"gold_bias", "yield_pressure", "dxy_signal", "vix_signal"}
	keys := cfg.Keys()
	if len(keys) != len(wantKeys) {
		t.Fatalf("expected %d instruments, got %d", len(wantKeys), len(keys))
	}
	for i, k := range wantKeys {
		if keys[i] != k {
			t.Errorf("keys[%d] = %s, want %s", i, keys[i], k)
		}
	}

	// VIX는 레벨 모드
	vix, ok := cfg.Get("vix_signal")
	if !ok {
		t.Fatal("vix_signal rule missing")
	}
	if vix.Mode != ModeLevel || vix.Level != 18 {
		t.Errorf("vix rule = %+v, want level mode at 18", vix)
	}

	// 해시 생성 + 결정성
	hash, err := Hash(cfg)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if len(hash) != 64 {
		t.Errorf("expected 64 char hash, got %d", len(hash))
	}
	hash2, _ := Hash(cfg)
	if hash != hash2 {
		t.Error("hash not deterministic")
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	yaml := `
meta:
  strategy_id: test
  version: "1"
fallback: zero
instruments:
  - key: gold_bias
    ticker: "GC=F"
    mode: change
    polarity: direct
    up: 0.002
    down: -0.002
    typo_field: true
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Error("expected error for unknown field, got nil")
	}
}

func TestParseDefaultsFallback(t *testing.T) {
	yaml := `
meta:
  strategy_id: test
  version: "1"
instruments:
  - key: vix_signal
    ticker: "^VIX"
    mode: level
    level: 18
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Fallback != FallbackZero {
		t.Errorf("fallback = %s, want zero default", cfg.Fallback)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Meta:     Meta{StrategyID: "test", Version: "1"},
			Fallback: FallbackZero,
			Instruments: []Instrument{
				{Key: "gold_bias", Ticker: "GC=F", Mode: ModeChange, Polarity: PolarityDirect, Up: 0.002, Down: -0.002},
				{Key: "vix_signal", Ticker: "^VIX", Mode: ModeLevel, Level: 18},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing strategy id", func(c *Config) { c.Meta.StrategyID = "" }, "meta.strategy_id"},
		{"bad fallback", func(c *Config) { c.Fallback = "ignore" }, "fallback"},
		{"no instruments", func(c *Config) { c.Instruments = nil }, "instruments"},
		{"duplicate key", func(c *Config) { c.Instruments[1].Key = "gold_bias" }, "duplicate key"},
		{"duplicate ticker", func(c *Config) { c.Instruments[1].Ticker = "GC=F" }, "duplicate ticker"},
		{"bad mode", func(c *Config) { c.Instruments[0].Mode = "delta" }, ".mode"},
		{"change without polarity", func(c *Config) { c.Instruments[0].Polarity = "" }, ".polarity"},
		{"inverted thresholds", func(c *Config) { c.Instruments[0].Up = -0.01; c.Instruments[0].Down = 0.01 }, "up threshold"},
		{"level in change mode", func(c *Config) { c.Instruments[0].Level = 18 }, ".level"},
		{"level mode without level", func(c *Config) { c.Instruments[1].Level = 0 }, ".level"},
		{"polarity in level mode", func(c *Config) { c.Instruments[1].Polarity = PolarityDirect }, ".polarity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
