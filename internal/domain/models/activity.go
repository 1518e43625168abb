package models

import "time"

// ActivityRecord is the raw ingest unit produced by device streams and file
// imports. Samples used by the learners are projected from it.
type ActivityRecord struct {
	ID            string
	UserID        string
	DistanceKm    float64
	DurationMin   float64
	AvgPaceMinKm  float64
	AvgHeartRate  float64
	TemperatureC  float64
	AltitudeM     float64
	ElevationGain float64
	StartedAt     time.Time
	Completed     bool
}

// PerformanceSample is a single immutable (condition, performance) observation.
// ConditionValue is temperature in degC, altitude in meters, or hour of day
// depending on the adaptation type it is fed to.
type PerformanceSample struct {
	ConditionValue float64
	PaceMinPerKm   float64
	HeartRate      *float64
	Date           time.Time
	Completed      bool
}

// Valid reports whether the sample carries both a condition and a pace.
// Malformed samples are filtered out before any computation.
func (s PerformanceSample) Valid() bool {
	return s.PaceMinPerKm > 0
}

// HeatSample projects an activity onto the temperature axis.
func (a ActivityRecord) HeatSample() PerformanceSample {
	return PerformanceSample{
		ConditionValue: a.TemperatureC,
		PaceMinPerKm:   a.AvgPaceMinKm,
		HeartRate:      hrPtr(a.AvgHeartRate),
		Date:           a.StartedAt,
		Completed:      a.Completed,
	}
}

// AltitudeSample projects an activity onto the altitude axis.
func (a ActivityRecord) AltitudeSample() PerformanceSample {
	return PerformanceSample{
		ConditionValue: a.AltitudeM,
		PaceMinPerKm:   a.AvgPaceMinKm,
		HeartRate:      hrPtr(a.AvgHeartRate),
		Date:           a.StartedAt,
		Completed:      a.Completed,
	}
}

// TimeOfDaySample projects an activity onto the clock-hour axis.
func (a ActivityRecord) TimeOfDaySample() PerformanceSample {
	return PerformanceSample{
		ConditionValue: float64(a.StartedAt.Hour()),
		PaceMinPerKm:   a.AvgPaceMinKm,
		HeartRate:      hrPtr(a.AvgHeartRate),
		Date:           a.StartedAt,
		Completed:      a.Completed,
	}
}

func hrPtr(hr float64) *float64 {
	if hr <= 0 {
		return nil
	}
	return &hr
}
