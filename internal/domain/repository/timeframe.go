package repository

// Timeframe selects the lookback window of a workload analysis.
type Timeframe string

const (
	TF7d  Timeframe = "7d"
	TF14d Timeframe = "14d"
	TF4w  Timeframe = "4w"
	TF3m  Timeframe = "3m"
	TF12m Timeframe = "12m"
)

// IsValidTimeframe returns true if tf is a supported timeframe.
func IsValidTimeframe(tf Timeframe) bool {
	switch tf {
	case TF7d, TF14d, TF4w, TF3m, TF12m:
		return true
	default:
		return false
	}
}

// DefaultTimeframe returns the default timeframe.
func DefaultTimeframe() Timeframe { return TF4w }

// NormalizeTimeframe converts raw string to a valid timeframe (or default).
func NormalizeTimeframe(s string) Timeframe {
	if s == "" {
		return DefaultTimeframe()
	}
	tf := Timeframe(s)
	if IsValidTimeframe(tf) {
		return tf
	}
	return DefaultTimeframe()
}

// LookbackWeeks returns how many weekly metrics the timeframe reads. ACWR needs
// four chronic weeks even for the shortest display windows.
func (tf Timeframe) LookbackWeeks() int {
	switch tf {
	case TF7d, TF14d:
		return 6
	case TF4w:
		return 8
	case TF3m:
		return 13
	case TF12m:
		return 52
	default:
		return 8
	}
}

// WeeksShown returns the display granularity of the timeframe.
func (tf Timeframe) WeeksShown() int {
	switch tf {
	case TF7d:
		return 1
	case TF14d:
		return 2
	case TF4w:
		return 4
	case TF3m:
		return 13
	case TF12m:
		return 52
	default:
		return 4
	}
}
