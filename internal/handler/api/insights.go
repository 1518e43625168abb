package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"RunSight/internal/domain/models"
	domrepo "RunSight/internal/domain/repository"
	icache "RunSight/internal/service/cache"
	"RunSight/internal/service/metrics"
	"RunSight/internal/service/ratelimit"
	"RunSight/internal/usecase"
	applogger "RunSight/pkg/logger"
)

// InsightsHandler serves the cacheable insight GETs over plain net/http. Used
// by the internal ops mux where Echo middleware is not wanted.
type InsightsHandler struct {
	agg   *usecase.InsightAggregator
	cache icache.BytesCache
	rl    *ratelimit.Limiter
	l     *applogger.Logger
}

func NewInsightsHandler(agg *usecase.InsightAggregator) *InsightsHandler {
	metrics.Register()
	return &InsightsHandler{agg: agg, rl: ratelimit.New()}
}

func (h *InsightsHandler) SetCache(c icache.BytesCache) { h.cache = c }

// SetLogger injects a structured logger.
func (h *InsightsHandler) SetLogger(l *applogger.Logger) { h.l = l }

func (h *InsightsHandler) Adaptation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		endpoint := "adaptation"
		defer func() { metrics.InsightLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			if h.l != nil {
				h.l.Warn("insights.adaptation missing user_id")
			}
			http.Error(w, "user_id required", http.StatusBadRequest)
			return
		}
		t := models.AdaptationType(r.URL.Query().Get("type"))
		if t == "" {
			t = models.AdaptationHeat
		}
		if !models.IsValidAdaptationType(t) {
			http.Error(w, "unknown adaptation type", http.StatusBadRequest)
			return
		}
		if !h.rl.Allow(r.RemoteAddr+":adaptation", 5, 2) {
			if h.l != nil {
				h.l.Warn("insights.adaptation rate_limited", applogger.String("remote", r.RemoteAddr))
			}
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		cacheKey := "adaptation:" + userID + ":" + string(t)
		if h.cache != nil {
			if b, ok, err := h.cache.GetBytes(cacheKey); err != nil {
				if h.l != nil {
					h.l.Warn("insights.adaptation cache_get_error", applogger.Error(err))
				}
			} else if ok {
				w.Header().Set("Content-Type", "application/json")
				if h.l != nil {
					h.l.Debug("insights.adaptation cache_hit", applogger.String("key", cacheKey))
				}
				if _, err := w.Write(b); err != nil && h.l != nil {
					h.l.Warn("insights.adaptation write_error", applogger.Error(err))
				}
				return
			}
			if h.l != nil {
				h.l.Debug("insights.adaptation cache_miss", applogger.String("key", cacheKey))
			}
		}
		res, err := h.agg.Adaptation(r.Context(), userID, t)
		if err != nil {
			metrics.InsightErrors.WithLabelValues(endpoint).Inc()
			if h.l != nil {
				h.l.Error("insights.adaptation error", applogger.Error(err))
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, endpoint, cacheKey, res, 60*time.Second)
	}
}

func (h *InsightsHandler) Workload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		endpoint := "workload"
		defer func() { metrics.InsightLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			if h.l != nil {
				h.l.Warn("insights.workload missing user_id")
			}
			http.Error(w, "user_id required", http.StatusBadRequest)
			return
		}
		tf := domrepo.NormalizeTimeframe(r.URL.Query().Get("timeframe"))
		if !h.rl.Allow(r.RemoteAddr+":workload", 5, 2) {
			if h.l != nil {
				h.l.Warn("insights.workload rate_limited", applogger.String("remote", r.RemoteAddr))
			}
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		cacheKey := "workload:" + userID + ":" + string(tf)
		if h.cache != nil {
			if b, ok, err := h.cache.GetBytes(cacheKey); err != nil {
				if h.l != nil {
					h.l.Warn("insights.workload cache_get_error", applogger.Error(err))
				}
			} else if ok {
				w.Header().Set("Content-Type", "application/json")
				if h.l != nil {
					h.l.Debug("insights.workload cache_hit", applogger.String("key", cacheKey))
				}
				if _, err := w.Write(b); err != nil && h.l != nil {
					h.l.Warn("insights.workload write_error", applogger.Error(err))
				}
				return
			}
			if h.l != nil {
				h.l.Debug("insights.workload cache_miss", applogger.String("key", cacheKey))
			}
		}
		res, err := h.agg.Workload(r.Context(), userID, tf)
		if err != nil {
			metrics.InsightErrors.WithLabelValues(endpoint).Inc()
			if h.l != nil {
				h.l.Error("insights.workload error", applogger.Error(err))
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, endpoint, cacheKey, res, 30*time.Second)
	}
}

func (h *InsightsHandler) HeatProtocol() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		endpoint := "heat_protocol"
		defer func() { metrics.InsightLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			if h.l != nil {
				h.l.Warn("insights.heat_protocol missing user_id")
			}
			http.Error(w, "user_id required", http.StatusBadRequest)
			return
		}
		days := parseInt(r.URL.Query().Get("days_until_race"), 0)
		raceHI := parseFloat(r.URL.Query().Get("race_heat_index"), 0)
		if days <= 0 || raceHI <= 0 {
			http.Error(w, "days_until_race and race_heat_index required", http.StatusBadRequest)
			return
		}
		if !h.rl.Allow(r.RemoteAddr+":heatproto", 3, 1) {
			if h.l != nil {
				h.l.Warn("insights.heat_protocol rate_limited", applogger.String("remote", r.RemoteAddr))
			}
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		res, err := h.agg.HeatProtocol(r.Context(), userID, days, raceHI)
		if err != nil {
			metrics.InsightErrors.WithLabelValues(endpoint).Inc()
			if h.l != nil {
				h.l.Error("insights.heat_protocol error", applogger.Error(err))
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, endpoint, "", res, 0)
	}
}

func (h *InsightsHandler) writeJSON(w http.ResponseWriter, endpoint, cacheKey string, res interface{}, ttl time.Duration) {
	w.Header().Set("Content-Type", "application/json")
	b, err := json.Marshal(res)
	if err != nil {
		if h.l != nil {
			h.l.Error("insights."+endpoint+" marshal_error", applogger.Error(err))
		}
		http.Error(w, "encode error", http.StatusInternalServerError)
		return
	}
	if h.cache != nil && cacheKey != "" && ttl > 0 {
		if err := h.cache.SetBytes(cacheKey, b, ttl); err != nil && h.l != nil {
			h.l.Warn("insights."+endpoint+" cache_set_error", applogger.Error(err))
		}
	}
	if _, err := w.Write(b); err != nil && h.l != nil {
		h.l.Warn("insights."+endpoint+" write_error", applogger.Error(err))
	}
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func parseFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}
