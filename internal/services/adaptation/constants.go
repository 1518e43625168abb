package adaptation

// All fallback constants and thresholds of the learners live in this one
// table. Learners must not carry their own magic numbers.
const (
	// Minimum sample counts below which a learner returns its neutral
	// default profile with confidence 0.
	MinSamplesHeat       = 10
	MinSamplesAltitude   = 10
	MinSamplesTimeOfDay  = 20
	MinSamplesPerDaypart = 3

	// Bucket widths of the response curves.
	HeatBucketWidthC     = 5.0
	AltitudeBucketWidthM = 500.0

	// Comfortable condition ranges used for the baseline pace.
	ComfortTempMinC     = 10.0
	ComfortTempMaxC     = 20.0
	ComfortAltitudeMaxM = 200.0

	// Neutral anchors returned below the sample thresholds.
	DefaultOptimalTempC        = 15.0
	DefaultHeatThresholdC      = 25.0
	DefaultHeatTolerance       = 50.0
	DefaultPaceMinPerKm        = 6.0
	DefaultBestDaypart         = "morning"
	DefaultAltitudeSensitivity = 3.0 // pct slowdown per 1000 m

	// Heat threshold detection: first bucket exceeding this adjustment.
	HeatThresholdAdjustmentPct = 5.0

	// Empty-curve extrapolation rules.
	HeatExtrapolationPctPerC  = 1.5    // per degC above ComfortTempMaxC
	AltitudeEffectFloorM      = 1000.0 // no penalty below this altitude
	AltitudePctPer1000M       = 3.0    // per 1000 m above the floor

	// Altitude acclimatization-duration estimate.
	HighAltitudeSessionM       = 1500.0
	AcclimatizationPairMaxDays = 30
	MinAcclimatizationDays     = 7
	MaxAcclimatizationDays     = 21
	DefaultAcclimatizationDays = 14

	// Confidence scoring: weighted combination of a capped sample-count
	// score and a condition-spread score, capped at 100.
	ConfidenceSampleWeight   = 0.6
	ConfidenceRangeWeight    = 0.4
	ConfidencePerSample      = 2.0
	HeatConfidenceRangeC     = 30.0
	AltitudeConfidenceRangeM = 3000.0

	// Daypart ranking weights.
	DaypartPaceWeight       = 0.6
	DaypartCompletionWeight = 0.4
)
