package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"RunSight/internal/domain/models"
	domrepo "RunSight/internal/domain/repository"
	"RunSight/internal/services/regress"
	pkgch "RunSight/pkg/clickhouse"
	applogger "RunSight/pkg/logger"
)

const (
	// chronic load is the rolling mean over this many weeks including the
	// current one; ACWR is undefined before a full window exists
	chronicWindowWeeks = 4

	// baseline quality saturates after this many defined ACWR weeks
	baselineFullWeeks = 12
)

// CHSampleStore implements SampleStore backed by ClickHouse.
type CHSampleStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewCHSampleStore(ch *pkgch.Client, table string) *CHSampleStore {
	return &CHSampleStore{db: ch.DB(), table: table}
}

// SetLogger injects a structured logger.
func (s *CHSampleStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHSampleStore) ListActivities(ctx context.Context, userID string, from, to time.Time) ([]models.ActivityRecord, error) {
	start := time.Now()
	q := fmt.Sprintf(`
        SELECT id, user_id, distance_km, duration_min, avg_pace_min_km, avg_heart_rate,
               temperature_c, altitude_m, elevation_gain, started_at, completed
        FROM %s
        WHERE user_id = ? AND started_at >= ? AND started_at <= ?
        ORDER BY started_at ASC
    `, s.table)
	rows, err := s.db.QueryContext(ctx, q, userID, from, to)
	if err != nil {
		s.logErr("list_activities", userID, err)
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	out := make([]models.ActivityRecord, 0, 256)
	for rows.Next() {
		var a models.ActivityRecord
		var completed uint8
		if err := rows.Scan(&a.ID, &a.UserID, &a.DistanceKm, &a.DurationMin, &a.AvgPaceMinKm,
			&a.AvgHeartRate, &a.TemperatureC, &a.AltitudeM, &a.ElevationGain, &a.StartedAt, &completed); err != nil {
			s.logErr("list_activities_scan", userID, err)
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Completed = completed != 0
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		s.logErr("list_activities_rows", userID, err)
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse list_activities ok",
			applogger.String("user_id", userID),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)))
	}
	return out, nil
}

// ListSamples projects stored activities onto the condition axis of the given
// adaptation type, oldest first.
func (s *CHSampleStore) ListSamples(ctx context.Context, userID string, t models.AdaptationType, limit int) ([]models.PerformanceSample, error) {
	cond, err := conditionExprFor(t)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`
        SELECT %s AS cond, avg_pace_min_km, avg_heart_rate, started_at, completed
        FROM %s
        WHERE user_id = ? AND avg_pace_min_km > 0
        ORDER BY started_at DESC
        LIMIT ?
    `, cond, s.table)
	rows, err := s.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		s.logErr("list_samples", userID, err)
		return nil, fmt.Errorf("list samples: %w", err)
	}
	defer rows.Close()

	tmp := make([]models.PerformanceSample, 0, limit)
	for rows.Next() {
		var sm models.PerformanceSample
		var hr float64
		var completed uint8
		if err := rows.Scan(&sm.ConditionValue, &sm.PaceMinPerKm, &hr, &sm.Date, &completed); err != nil {
			s.logErr("list_samples_scan", userID, err)
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		if hr > 0 {
			sm.HeartRate = &hr
		}
		sm.Completed = completed != 0
		tmp = append(tmp, sm)
	}
	if err := rows.Err(); err != nil {
		s.logErr("list_samples_rows", userID, err)
		return nil, fmt.Errorf("rows: %w", err)
	}
	// reverse to ASC
	for i, j := 0, len(tmp)-1; i < j; i, j = i+1, j-1 {
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}
	return tmp, nil
}

func conditionExprFor(t models.AdaptationType) (string, error) {
	switch t {
	case models.AdaptationHeat:
		return "temperature_c", nil
	case models.AdaptationAltitude:
		return "altitude_m", nil
	case models.AdaptationTimeOfDay:
		return "toFloat64(toHour(started_at))", nil
	default:
		return "", fmt.Errorf("unsupported adaptation type: %s", t)
	}
}

// WeeklyLoads aggregates per-week distance and derives acute/chronic load and
// the ACWR series in-process. Weeks without a full chronic window carry a nil
// ratio.
func (s *CHSampleStore) WeeklyLoads(ctx context.Context, userID string, weeks int) ([]models.WeeklyLoadMetric, error) {
	q := fmt.Sprintf(`
        SELECT toStartOfWeek(started_at, 1) AS wk, sum(distance_km) AS dist
        FROM %s
        WHERE user_id = ?
        GROUP BY wk
        ORDER BY wk DESC
        LIMIT ?
    `, s.table)
	rows, err := s.db.QueryContext(ctx, q, userID, weeks)
	if err != nil {
		s.logErr("weekly_loads", userID, err)
		return nil, fmt.Errorf("weekly loads: %w", err)
	}
	defer rows.Close()

	tmp := make([]models.WeeklyLoadMetric, 0, weeks)
	for rows.Next() {
		var m models.WeeklyLoadMetric
		if err := rows.Scan(&m.WeekStart, &m.TotalDistanceKm); err != nil {
			s.logErr("weekly_loads_scan", userID, err)
			return nil, fmt.Errorf("scan weekly load: %w", err)
		}
		tmp = append(tmp, m)
	}
	if err := rows.Err(); err != nil {
		s.logErr("weekly_loads_rows", userID, err)
		return nil, fmt.Errorf("rows: %w", err)
	}
	// reverse to ASC
	for i, j := 0, len(tmp)-1; i < j; i, j = i+1, j-1 {
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}

	deriveLoadSeries(tmp)
	return tmp, nil
}

// deriveLoadSeries fills acute load, chronic load and ACWR for an ascending
// weekly series.
func deriveLoadSeries(weeks []models.WeeklyLoadMetric) {
	for i := range weeks {
		weeks[i].AcuteLoad = weeks[i].TotalDistanceKm
		if i < chronicWindowWeeks-1 {
			continue
		}
		var sum float64
		for j := i - chronicWindowWeeks + 1; j <= i; j++ {
			sum += weeks[j].TotalDistanceKm
		}
		chronic := sum / chronicWindowWeeks
		weeks[i].ChronicLoad = chronic
		if chronic > 0 {
			ratio := weeks[i].AcuteLoad / chronic
			weeks[i].ACWR = &ratio
		}
	}
}

// Baselines derives the personalized ACWR statistics from the athlete's full
// defined ratio history. Returns (nil, nil) when no ratio is defined yet.
func (s *CHSampleStore) Baselines(ctx context.Context, userID string) (*models.AthleteBaselines, error) {
	weeks, err := s.WeeklyLoads(ctx, userID, 52)
	if err != nil {
		return nil, err
	}
	ratios := make([]float64, 0, len(weeks))
	for _, w := range weeks {
		if w.ACWR != nil {
			ratios = append(ratios, *w.ACWR)
		}
	}
	if len(ratios) == 0 {
		return nil, nil
	}
	quality := float64(len(ratios)) / baselineFullWeeks
	if quality > 1 {
		quality = 1
	}
	return &models.AthleteBaselines{
		ACWRMean:         regress.Mean(ratios),
		ACWRStdDev:       regress.StdDev(ratios),
		DataQualityScore: quality,
	}, nil
}

func (s *CHSampleStore) ActiveUsers(ctx context.Context, since time.Time) ([]string, error) {
	q := fmt.Sprintf(`
        SELECT DISTINCT user_id
        FROM %s
        WHERE started_at >= ?
    `, s.table)
	rows, err := s.db.QueryContext(ctx, q, since)
	if err != nil {
		s.logErr("active_users", "", err)
		return nil, fmt.Errorf("active users: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0, 128)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			s.logErr("active_users_scan", "", err)
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *CHSampleStore) logErr(op, userID string, err error) {
	if s.l == nil {
		return
	}
	s.l.Error("clickhouse "+op+" error",
		applogger.String("user_id", userID),
		applogger.Error(err))
}

var _ domrepo.SampleStore = (*CHSampleStore)(nil)
