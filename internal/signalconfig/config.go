package signalconfig

// Config는 매크로 시그널 스코어링 전략의 전체 설정
type Config struct {
	Meta        Meta         `yaml:"meta" json:"meta"`
	Fallback    string       `yaml:"fallback" json:"fallback"` // zero | omit
	Instruments []Instrument `yaml:"instruments" json:"instruments"`
}

// Meta 메타 정보
type Meta struct {
	StrategyID  string `yaml:"strategy_id" json:"strategy_id"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description" json:"description"`
}

// Classification modes
const (
	// ModeChange scores the signed change ratio over the lookback window
	// against two thresholds (two-sided).
	ModeChange = "change"
	// ModeLevel scores the latest close against a fixed absolute level
	// (one-sided, no negative branch).
	ModeLevel = "level"
)

// Polarity values for change mode
const (
	// PolarityDirect: rising value is bullish for the target asset.
	PolarityDirect = "direct"
	// PolarityInverse: rising value is bearish for the target asset
	// (dollar strength and yields vs. gold).
	PolarityInverse = "inverse"
)

// Fallback policies for instruments with unusable series
const (
	// FallbackZero treats a missing signal as 0 and keeps it in the total.
	FallbackZero = "zero"
	// FallbackOmit drops the instrument from the total for this run.
	FallbackOmit = "omit"
)

// Instrument is one scoring rule. Declaration order defines the
// output column order.
type Instrument struct {
	Key      string  `yaml:"key" json:"key"`       // output field, e.g. gold_bias
	Ticker   string  `yaml:"ticker" json:"ticker"` // provider symbol, e.g. GC=F
	Mode     string  `yaml:"mode" json:"mode"`
	Polarity string  `yaml:"polarity,omitempty" json:"polarity,omitempty"` // change mode only
	Up       float64 `yaml:"up,omitempty" json:"up,omitempty"`             // change mode, inclusive
	Down     float64 `yaml:"down,omitempty" json:"down,omitempty"`         // change mode, inclusive
	Level    float64 `yaml:"level,omitempty" json:"level,omitempty"`       // level mode, inclusive
}

// Keys returns instrument keys in declaration order
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.Instruments))
	for _, inst := range c.Instruments {
		keys = append(keys, inst.Key)
	}
	return keys
}

// Tickers returns provider symbols in declaration order
func (c *Config) Tickers() []string {
	tickers := make([]string, 0, len(c.Instruments))
	for _, inst := range c.Instruments {
		tickers = append(tickers, inst.Ticker)
	}
	return tickers
}

// Get returns the rule for an instrument key
func (c *Config) Get(key string) (Instrument, bool) {
	for _, inst := range c.Instruments {
		if inst.Key == key {
			return inst, true
		}
	}
	return Instrument{}, false
}
