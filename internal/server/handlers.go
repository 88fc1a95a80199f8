package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sells-group/outbound-metrics/internal/metrics"
	"github.com/sells-group/outbound-metrics/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCoverage(w http.ResponseWriter, r *http.Request) {
	idx, ok := s.loadIndex(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Coverage(idx))
}

func (s *Server) handleEngagement(w http.ResponseWriter, r *http.Request) {
	idx, ok := s.loadIndex(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.engine.EngagementCoverage(idx))
}

func (s *Server) handleEmployeeARR(w http.ResponseWriter, r *http.Request) {
	idx, ok := s.loadIndex(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.engine.EmployeeBucketARR(idx))
}

func (s *Server) handleTouchTiming(w http.ResponseWriter, r *http.Request) {
	idx, ok := s.loadIndex(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.engine.TouchTiming(idx))
}

func (s *Server) handleARRDistribution(w http.ResponseWriter, r *http.Request) {
	idx, ok := s.loadIndex(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.engine.ARRDistribution(idx))
}

func (s *Server) handleIndustry(w http.ResponseWriter, r *http.Request) {
	idx, ok := s.loadIndex(w, r)
	if !ok {
		return
	}
	filter := metrics.IndustryFilter{
		Region:         r.URL.Query().Get("region"),
		EmployeeBucket: r.URL.Query().Get("empBucket"),
	}
	writeJSON(w, http.StatusOK, s.engine.Industry(idx, filter))
}

func (s *Server) handleAll(w http.ResponseWriter, r *http.Request) {
	idx, ok := s.loadIndex(w, r)
	if !ok {
		return
	}
	bundle, err := s.engine.Bundle(r.Context(), idx)
	if err != nil {
		zap.L().Error("server: compute bundle", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "metric computation failed")
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

// loadIndex loads the latest snapshot and builds the joined index. On
// failure it writes the error response and reports false.
func (s *Server) loadIndex(w http.ResponseWriter, r *http.Request) (*metrics.Index, bool) {
	accounts, events, _, err := s.store.LoadLatest(r.Context())
	if errors.Is(err, store.ErrNoSnapshot) {
		writeError(w, http.StatusServiceUnavailable, "no snapshot available; run process first")
		return nil, false
	}
	if err != nil {
		zap.L().Error("server: load snapshot", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "snapshot load failed")
		return nil, false
	}
	return metrics.BuildIndex(accounts, events), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
