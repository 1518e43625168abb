package adaptation

import (
	"RunSight/internal/domain/models"
)

// PredictAdjustment estimates the pace adjustment percentage at an arbitrary
// condition value. In-range queries interpolate linearly between the two
// bracketing curve points; out-of-range queries clamp to the nearest
// endpoint's value. An empty curve falls back to a fixed linear extrapolation
// rule per adaptation type, so sparse data still yields a usable estimate.
func PredictAdjustment(t models.AdaptationType, curve models.ResponseCurve, value float64) float64 {
	if len(curve) == 0 {
		return fallbackAdjustment(t, value)
	}
	if value <= curve[0].BucketValue {
		return curve[0].AdjustmentPct
	}
	last := curve[len(curve)-1]
	if value >= last.BucketValue {
		return last.AdjustmentPct
	}
	for i := 1; i < len(curve); i++ {
		lo, hi := curve[i-1], curve[i]
		if value > hi.BucketValue {
			continue
		}
		span := hi.BucketValue - lo.BucketValue
		if span == 0 {
			return lo.AdjustmentPct
		}
		frac := (value - lo.BucketValue) / span
		return lo.AdjustmentPct + frac*(hi.AdjustmentPct-lo.AdjustmentPct)
	}
	return last.AdjustmentPct
}

func fallbackAdjustment(t models.AdaptationType, value float64) float64 {
	switch t {
	case models.AdaptationHeat:
		if value <= ComfortTempMaxC {
			return 0
		}
		return (value - ComfortTempMaxC) * HeatExtrapolationPctPerC
	case models.AdaptationAltitude:
		if value <= AltitudeEffectFloorM {
			return 0
		}
		return (value - AltitudeEffectFloorM) / 1000.0 * AltitudePctPer1000M
	default:
		return 0
	}
}
