package perf

// Classification labels the magnitude of a latency change.
type Classification string

const (
	Improving     Classification = "IMPROVING"
	Stable        Classification = "STABLE"
	SlightDecline Classification = "SLIGHT_DECLINE"
	Degrading     Classification = "DEGRADING"
)

// Direction labels a bucket-to-bucket change.
type Direction string

const (
	DirectionNone    Direction = "NONE" // first bucket, or no data on one side
	DirectionRising  Direction = "RISING"
	DirectionFalling Direction = "FALLING"
	DirectionFlat    Direction = "FLAT"
)

// Thresholds, in percent.
const (
	degradingPct     = 50.0
	slightDeclinePct = 20.0
	improvingPct     = -20.0
	trendBandPct     = 20.0
)

// ClassifyChange maps a signed percent change to a Classification:
// above 50 degrading, above 20 slight decline, below -20 improving, otherwise stable.
func ClassifyChange(pct float64) Classification {
	switch {
	case pct > degradingPct:
		return Degrading
	case pct > slightDeclinePct:
		return SlightDecline
	case pct < improvingPct:
		return Improving
	default:
		return Stable
	}
}

// directionOf applies the ±20% band.
func directionOf(pct float64) Direction {
	switch {
	case pct > trendBandPct:
		return DirectionRising
	case pct < -trendBandPct:
		return DirectionFalling
	default:
		return DirectionFlat
	}
}

// Severity flags how far a bucket has drifted from the lowest-load bucket.
type Severity string

const (
	SeverityOK      Severity = "OK"
	SeverityWarning Severity = "WARNING"
	SeveritySevere  Severity = "SEVERE"
)

func severityOf(pct float64) Severity {
	switch {
	case pct > 100:
		return SeveritySevere
	case pct > 50:
		return SeverityWarning
	default:
		return SeverityOK
	}
}
