package models

// Requests for insight HTTP endpoints. Defined in domain for consistency and reuse.

type AdaptationRequest struct {
	UserID string `query:"user_id" json:"user_id" validate:"required"`
	Type   string `query:"type" json:"type" default:"heat" validate:"oneof=heat altitude time_of_day"`
}

type RelearnRequest struct {
	UserID string `query:"user_id" json:"user_id" validate:"required"`
	Type   string `query:"type" json:"type" default:"" validate:"omitempty,oneof=heat altitude time_of_day"`
}

type WorkloadRequest struct {
	UserID    string `query:"user_id" json:"user_id" validate:"required"`
	Timeframe string `query:"timeframe" json:"timeframe" default:"4w" validate:"oneof=7d 14d 4w 3m 12m"`
}

type ProjectionRequest struct {
	UserID           string  `query:"user_id" json:"user_id" validate:"required"`
	BaselineDistance float64 `query:"baseline_distance" json:"baseline_distance" validate:"required,gt=0"`
	BaselineTime     float64 `query:"baseline_time" json:"baseline_time" validate:"required,gt=0"`
	RaceTempC        float64 `query:"race_temp_c" json:"race_temp_c" default:"15"`
	RaceAltitudeM    float64 `query:"race_altitude_m" json:"race_altitude_m" default:"0" validate:"gte=0"`
}

type EnergyRequest struct {
	UserID        string  `query:"user_id" json:"user_id" validate:"required"`
	DistanceKm    float64 `query:"distance_km" json:"distance_km" validate:"required,gt=0,lte=500"`
	FuelingGPerHr float64 `query:"fueling_g_per_hr" json:"fueling_g_per_hr" default:"60" validate:"gte=0,lte=200"`
	FluidMlPerHr  float64 `query:"fluid_ml_per_hr" json:"fluid_ml_per_hr" default:"500" validate:"gte=0,lte=2000"`
	SodiumMgPerHr float64 `query:"sodium_mg_per_hr" json:"sodium_mg_per_hr" default:"300" validate:"gte=0,lte=2000"`
	HeatIndex     float64 `query:"heat_index" json:"heat_index" default:"20"`
	ElevationGain float64 `query:"elevation_gain" json:"elevation_gain" default:"0" validate:"gte=0"`
}

type HeatProtocolRequest struct {
	UserID        string  `query:"user_id" json:"user_id" validate:"required"`
	DaysUntilRace int     `query:"days_until_race" json:"days_until_race" validate:"required,gte=0,lte=365"`
	RaceHeatIndex float64 `query:"race_heat_index" json:"race_heat_index" validate:"required,gte=0,lte=60"`
}

type ReportRequest struct {
	UserID           string  `query:"user_id" json:"user_id" validate:"required"`
	Timeframe        string  `query:"timeframe" json:"timeframe" default:"4w" validate:"oneof=7d 14d 4w 3m 12m"`
	BaselineDistance float64 `query:"baseline_distance" json:"baseline_distance" validate:"required,gt=0"`
	BaselineTime     float64 `query:"baseline_time" json:"baseline_time" validate:"required,gt=0"`
	RaceDistance     float64 `query:"race_distance" json:"race_distance" default:"0" validate:"gte=0"`
	DaysUntilRace    int     `query:"days_until_race" json:"days_until_race" default:"0" validate:"gte=0,lte=365"`
	RaceTempC        float64 `query:"race_temp_c" json:"race_temp_c" default:"15"`
	RaceHumidity     float64 `query:"race_humidity" json:"race_humidity" default:"50" validate:"gte=0,lte=100"`
	RaceAltitudeM    float64 `query:"race_altitude_m" json:"race_altitude_m" default:"0" validate:"gte=0"`
	FuelingGPerHr    float64 `query:"fueling_g_per_hr" json:"fueling_g_per_hr" default:"60" validate:"gte=0,lte=200"`
	FluidMlPerHr     float64 `query:"fluid_ml_per_hr" json:"fluid_ml_per_hr" default:"500" validate:"gte=0,lte=2000"`
}

type ConditionsRequest struct {
	Lat float64 `query:"lat" json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `query:"lon" json:"lon" validate:"gte=-180,lte=180"`
}

type ActivitiesRequest struct {
	UserID string `query:"user_id" json:"user_id" validate:"required"`
	From   string `query:"from" json:"from"`
	To     string `query:"to" json:"to"`
	Limit  int    `query:"limit" json:"limit" default:"1000" validate:"gte=0,lte=10000"`
}
