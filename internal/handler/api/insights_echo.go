package api

import (
	"fmt"
	"net/http"
	"time"

	models "RunSight/internal/domain/models"
	domrepo "RunSight/internal/domain/repository"
	"RunSight/internal/service/fitimport"
	"RunSight/internal/service/weather"
	"RunSight/internal/usecase"
	xhttp "RunSight/pkg/http"
	xlogger "RunSight/pkg/logger"

	"github.com/labstack/echo/v4"
)

// InsightsEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type InsightsEchoHandler struct {
	logger   *xlogger.Logger
	agg      *usecase.InsightAggregator
	report   *usecase.InsightsAggregateUseCase
	acts     *usecase.ActivitiesUseCase
	learning *usecase.LearningUseCase
	importer *fitimport.Importer
	proc     *usecase.ActivityProcessor
}

func NewInsightsEchoHandler(
	logger *xlogger.Logger,
	agg *usecase.InsightAggregator,
	report *usecase.InsightsAggregateUseCase,
	acts *usecase.ActivitiesUseCase,
	learning *usecase.LearningUseCase,
	importer *fitimport.Importer,
	proc *usecase.ActivityProcessor,
) *InsightsEchoHandler {
	return &InsightsEchoHandler{
		logger:   logger,
		agg:      agg,
		report:   report,
		acts:     acts,
		learning: learning,
		importer: importer,
		proc:     proc,
	}
}

func (h *InsightsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/adaptation", h.Adaptation)
	g.POST("/adaptation/relearn", h.Relearn)
	g.GET("/workload", h.Workload)
	g.GET("/projection", h.Projection)
	g.GET("/energy", h.Energy)
	g.GET("/heat-protocol", h.HeatProtocol)
	g.GET("/report", h.Report)
	g.GET("/conditions", h.Conditions)
	g.GET("/activities", h.Activities)
	g.POST("/activities/import", h.ImportFit)
}

func (h *InsightsEchoHandler) Adaptation(c echo.Context) error {
	req := &models.AdaptationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.agg.Adaptation(c.Request().Context(), req.UserID, models.AdaptationType(req.Type))
	if err != nil {
		h.logger.Error("adaptation usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, res)
}

func (h *InsightsEchoHandler) Relearn(c echo.Context) error {
	req := &models.RelearnRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ctx := c.Request().Context()
	if req.Type == "" {
		res := h.learning.RelearnAll(ctx, req.UserID)
		return xhttp.SuccessResponse(c, res)
	}
	res, err := h.learning.Relearn(ctx, req.UserID, models.AdaptationType(req.Type))
	if err != nil {
		h.logger.Error("relearn usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *InsightsEchoHandler) Workload(c echo.Context) error {
	req := &models.WorkloadRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	tf := domrepo.NormalizeTimeframe(req.Timeframe)

	res, err := h.agg.Workload(c.Request().Context(), req.UserID, tf)
	if err != nil {
		h.logger.Error("workload usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *InsightsEchoHandler) Projection(c echo.Context) error {
	req := &models.ProjectionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	baseline := models.BaselineRace{DistanceKm: req.BaselineDistance, TimeMin: req.BaselineTime}
	conditions := &models.RaceConditions{
		TemperatureC: req.RaceTempC,
		AltitudeM:    req.RaceAltitudeM,
	}
	res, err := h.agg.Projection(c.Request().Context(), req.UserID, baseline, conditions)
	if err != nil {
		h.logger.Error("projection usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *InsightsEchoHandler) Energy(c echo.Context) error {
	req := &models.EnergyRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	plan := models.NutritionPlan{
		FuelingGPerHr: req.FuelingGPerHr,
		FluidMlPerHr:  req.FluidMlPerHr,
		SodiumMgPerHr: req.SodiumMgPerHr,
	}
	conditions := models.RaceConditions{
		HeatIndex:     req.HeatIndex,
		ElevationGain: req.ElevationGain,
	}
	res, err := h.agg.Energy(c.Request().Context(), req.DistanceKm, plan, conditions)
	if err != nil {
		h.logger.Error("energy usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *InsightsEchoHandler) HeatProtocol(c echo.Context) error {
	req := &models.HeatProtocolRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.agg.HeatProtocol(c.Request().Context(), req.UserID, req.DaysUntilRace, req.RaceHeatIndex)
	if err != nil {
		h.logger.Error("heat protocol usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *InsightsEchoHandler) Report(c echo.Context) error {
	req := &models.ReportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.report.GetReport(c.Request().Context(), usecase.GetReportParams{
		UserID:    req.UserID,
		Timeframe: domrepo.NormalizeTimeframe(req.Timeframe),
		Baseline:  models.BaselineRace{DistanceKm: req.BaselineDistance, TimeMin: req.BaselineTime},
		Conditions: models.RaceConditions{
			TemperatureC: req.RaceTempC,
			Humidity:     req.RaceHumidity,
			HeatIndex:    weather.HeatIndex(req.RaceTempC, req.RaceHumidity),
			AltitudeM:    req.RaceAltitudeM,
		},
		Plan: models.NutritionPlan{
			FuelingGPerHr: req.FuelingGPerHr,
			FluidMlPerHr:  req.FluidMlPerHr,
		},
		RaceDistance:  req.RaceDistance,
		DaysUntilRace: req.DaysUntilRace,
	})
	if err != nil {
		h.logger.Error("report usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Conditions resolves current race-day conditions for a location.
func (h *InsightsEchoHandler) Conditions(c echo.Context) error {
	req := &models.ConditionsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res := h.agg.Conditions(c.Request().Context(), req.Lat, req.Lon)
	if res == nil {
		return xhttp.AppErrorResponse(c, fmt.Errorf("conditions unavailable"))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *InsightsEchoHandler) Activities(c echo.Context) error {
	req := &models.ActivitiesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	now := time.Now().UTC()
	res, err := h.acts.GetActivities(c.Request().Context(), usecase.GetActivitiesParams{
		UserID: req.UserID,
		From:   xhttp.ParseTimeDefault(req.From, now.AddDate(-1, 0, 0)),
		To:     xhttp.ParseTimeDefault(req.To, now),
		Limit:  req.Limit,
	})
	if err != nil {
		h.logger.Error("activities usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// ImportFit accepts one FIT file upload and routes the decoded activity
// through the ingest path.
func (h *InsightsEchoHandler) ImportFit(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		userID = c.FormValue("user_id")
	}
	if userID == "" {
		return xhttp.BadRequestResponse(c, "user_id required")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return xhttp.BadRequestResponse(c, "fit file required")
	}
	f, err := fh.Open()
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	defer f.Close()

	rec, err := h.importer.Import(f, userID)
	if err != nil {
		h.logger.Error("fit import error", xlogger.Error(err))
		return xhttp.BadRequestResponse(c, err.Error())
	}
	if err := h.proc.Process(c.Request().Context(), rec); err != nil {
		h.logger.Error("fit import process error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, rec)
}

// Ensure HTTP status is OK on DataResponse
func init() { _ = http.StatusOK }
