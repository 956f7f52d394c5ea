package signalconfig

import (
	"fmt"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all required constraints
// 실패 시 error 반환 (프로그램 중단)
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.StrategyID == "" {
		return ValidationError{"meta.strategy_id", "required"}
	}
	if cfg.Meta.Version == "" {
		return ValidationError{"meta.version", "required"}
	}

	// === Fallback ===
	if cfg.Fallback != FallbackZero && cfg.Fallback != FallbackOmit {
		return ValidationError{"fallback", fmt.Sprintf("must be '%s' or '%s'", FallbackZero, FallbackOmit)}
	}

	// === Instruments ===
	if len(cfg.Instruments) == 0 {
		return ValidationError{"instruments", "at least one instrument required"}
	}

	seenKeys := make(map[string]bool)
	seenTickers := make(map[string]bool)

	for i, inst := range cfg.Instruments {
		field := fmt.Sprintf("instruments[%d]", i)

		if inst.Key == "" {
			return ValidationError{field + ".key", "required"}
		}
		if inst.Ticker == "" {
			return ValidationError{field + ".ticker", "required"}
		}

		if seenKeys[inst.Key] {
			return ValidationError{field + ".key", fmt.Sprintf("duplicate key '%s'", inst.Key)}
		}
		seenKeys[inst.Key] = true

		if seenTickers[inst.Ticker] {
			return ValidationError{field + ".ticker", fmt.Sprintf("duplicate ticker '%s'", inst.Ticker)}
		}
		seenTickers[inst.Ticker] = true

		switch inst.Mode {
		case ModeChange:
			if inst.Polarity != PolarityDirect && inst.Polarity != PolarityInverse {
				return ValidationError{field + ".polarity",
					fmt.Sprintf("change mode requires '%s' or '%s'", PolarityDirect, PolarityInverse)}
			}
			if inst.Up <= inst.Down {
				return ValidationError{field, "up threshold must be greater than down threshold"}
			}
			if inst.Level != 0 {
				return ValidationError{field + ".level", "not allowed in change mode"}
			}
		case ModeLevel:
			if inst.Level <= 0 {
				return ValidationError{field + ".level", "level mode requires a positive level"}
			}
			if inst.Polarity != "" {
				return ValidationError{field + ".polarity", "not allowed in level mode"}
			}
			if inst.Up != 0 || inst.Down != 0 {
				return ValidationError{field, "up/down thresholds not allowed in level mode"}
			}
		default:
			return ValidationError{field + ".mode",
				fmt.Sprintf("must be '%s' or '%s'", ModeChange, ModeLevel)}
		}
	}

	return nil
}
