package fitimport

import (
	"fmt"
	"io"
	"math"

	"github.com/google/uuid"
	"github.com/tormoder/fit"

	"RunSight/internal/domain/models"
)

// Importer converts uploaded FIT activity files into activity records.
type Importer struct{}

func NewImporter() *Importer { return &Importer{} }

// Import decodes one FIT file and maps its first session onto an
// ActivityRecord. Fields the device did not record stay zero; the learners
// filter unusable samples downstream.
func (i *Importer) Import(r io.Reader, userID string) (*models.ActivityRecord, error) {
	decoded, err := fit.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode fit file: %w", err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("activity fit expected: %w", err)
	}
	if len(activity.Sessions) == 0 {
		return nil, fmt.Errorf("fit file has no session message")
	}
	session := activity.Sessions[0]

	distanceM := safePositive(session.GetTotalDistanceScaled())
	durationSec := safePositive(session.GetTotalTimerTimeScaled())
	if durationSec == 0 {
		durationSec = safePositive(session.GetTotalElapsedTimeScaled())
	}

	a := &models.ActivityRecord{
		ID:          uuid.NewString(),
		UserID:      userID,
		DistanceKm:  distanceM / 1000,
		DurationMin: durationSec / 60,
		StartedAt:   session.StartTime.UTC(),
		Completed:   true,
	}

	if a.DistanceKm > 0 && a.DurationMin > 0 {
		a.AvgPaceMinKm = a.DurationMin / a.DistanceKm
	}
	if hr := session.AvgHeartRate; hr != 0xFF && hr > 0 {
		a.AvgHeartRate = float64(hr)
	}
	if temp := session.AvgTemperature; temp != 0x7F {
		a.TemperatureC = float64(temp)
	}
	if alt := safePositive(session.GetAvgAltitudeScaled()); alt > 0 {
		a.AltitudeM = alt
	}
	if ascent := session.TotalAscent; ascent != 0xFFFF {
		a.ElevationGain = float64(ascent)
	}

	if a.UserID == "" {
		return nil, fmt.Errorf("user id required")
	}
	if a.StartedAt.IsZero() {
		return nil, fmt.Errorf("fit session has no start time")
	}
	return a, nil
}

func safePositive(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
