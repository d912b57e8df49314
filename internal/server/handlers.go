package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/inferloop/perfintel/internal/intelligence"
	"github.com/inferloop/perfintel/pkg/errors"
)

// Build information, overridden at link time by the server binary.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// ingestRequest is the body of POST /api/v1/metrics. The timestamp is
// optional RFC3339; absent means the server's receive time.
type ingestRequest struct {
	Metrics   map[string]float64 `json:"metrics"`
	Timestamp string             `json:"timestamp,omitempty"`
}

type ingestResponse struct {
	Accepted  int       `json:"accepted"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleIngestMetrics(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.WrapError(err, errors.ErrorTypeValidation, errors.CodeInvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	if len(req.Metrics) == 0 {
		s.writeError(w, r, errors.NewIngestionError(errors.CodeMissingField, "metric batch is empty").WithCause(errors.ErrEmptyBatch))
		return
	}
	for name := range req.Metrics {
		if name == "" {
			s.writeError(w, r, errors.NewIngestionError(errors.CodeInvalidInput, "metric name must not be empty").WithCause(errors.ErrInvalidMetricName))
			return
		}
	}

	ts := time.Now()
	if req.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			s.writeError(w, r, errors.NewValidationError(errors.CodeInvalidTimestamp, "timestamp must be RFC3339").WithCause(errors.ErrInvalidTimestamp).WithDetails(err.Error()))
			return
		}
		ts = parsed
	}

	s.engine.AddMetrics(req.Metrics, ts)

	s.writeJSON(w, http.StatusAccepted, ingestResponse{
		Accepted:  len(req.Metrics),
		Timestamp: ts,
	})
}

func (s *Server) handleGetAnomalies(w http.ResponseWriter, r *http.Request) {
	filter := intelligence.AnomalyFilter{
		Metric: r.URL.Query().Get("metric"),
	}

	if severity := r.URL.Query().Get("severity"); severity != "" {
		switch intelligence.Severity(severity) {
		case intelligence.SeverityLow, intelligence.SeverityMedium,
			intelligence.SeverityHigh, intelligence.SeverityCritical:
			filter.Severity = intelligence.Severity(severity)
		default:
			s.writeError(w, r, errors.NewValidationError(errors.CodeInvalidFilter, "unknown severity").WithCause(errors.ErrInvalidSeverity).WithDetails(severity))
			return
		}
	}

	if hours := r.URL.Query().Get("hours"); hours != "" {
		parsed, err := strconv.Atoi(hours)
		if err != nil || parsed <= 0 {
			s.writeError(w, r, errors.NewValidationError(errors.CodeInvalidFilter, "hours must be a positive integer").WithCause(errors.ErrInvalidTimeRange).WithDetails(hours))
			return
		}
		filter.TimeRangeHours = parsed
	}

	anomalies := s.engine.GetAnomalies(filter)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"anomalies": anomalies,
		"count":     len(anomalies),
	})
}

func (s *Server) handleGetPredictions(w http.ResponseWriter, r *http.Request) {
	predictions := s.engine.GetAllPredictions()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"predictions": predictions,
		"count":       len(predictions),
	})
}

func (s *Server) handleGetPrediction(w http.ResponseWriter, r *http.Request) {
	metric := mux.Vars(r)["metric"]

	prediction, ok := s.engine.GetPrediction(metric)
	if !ok {
		s.writeError(w, r, errors.NewQueryError(errors.CodePredictionNotFound, "no prediction for metric").WithCause(errors.ErrMetricNotFound).WithContext("metric", metric))
		return
	}

	s.writeJSON(w, http.StatusOK, prediction)
}

func (s *Server) handleGetPatterns(w http.ResponseWriter, r *http.Request) {
	filter := intelligence.PatternFilter{
		Metric: r.URL.Query().Get("metric"),
	}

	if patternType := r.URL.Query().Get("type"); patternType != "" {
		switch intelligence.PatternType(patternType) {
		case intelligence.PatternTypeSeasonal, intelligence.PatternTypeCyclical:
			filter.Type = intelligence.PatternType(patternType)
		default:
			s.writeError(w, r, errors.NewValidationError(errors.CodeInvalidFilter, "unknown pattern type").WithCause(errors.ErrInvalidPatternType).WithDetails(patternType))
			return
		}
	}

	patterns := s.engine.GetPatterns(filter)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"patterns": patterns,
		"count":    len(patterns),
	})
}

func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.engine.GetIntelligenceSummary())
}

func (s *Server) handleClearData(w http.ResponseWriter, r *http.Request) {
	s.engine.ClearData()
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "cleared",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	summary := s.engine.GetIntelligenceSummary()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    summary.Health.Status,
		"score":     summary.Health.Score,
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"version":    Version,
		"git_commit": GitCommit,
		"build_date": BuildDate,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, appErr *errors.AppError) {
	response := errors.ErrorResponse{
		Error:     appErr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      r.URL.Path,
	}

	s.logger.WithFields(map[string]interface{}{
		"type": appErr.Type,
		"code": appErr.Code,
		"path": r.URL.Path,
	}).Warn(appErr.Message)

	s.writeJSON(w, appErr.HTTPStatus, response)
}
