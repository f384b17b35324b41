package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/clipsmith/clipsmith-go/internal/adapter"
	"github.com/clipsmith/clipsmith-go/internal/constants"
	"github.com/clipsmith/clipsmith-go/internal/domain"
	"github.com/clipsmith/clipsmith-go/internal/service"
	"github.com/clipsmith/clipsmith-go/internal/service/cache"
	apperrors "github.com/clipsmith/clipsmith-go/pkg/errors"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Analyzer is the slice of the analysis pipeline the HTTP surface needs.
type Analyzer interface {
	Analyze(ctx context.Context, transcript string, settings domain.AnalysisSettings) (*service.AnalysisOutcome, error)
}

// History is the optional run-history capability.
type History interface {
	SaveRun(ctx context.Context, settings domain.AnalysisSettings, outcome *service.AnalysisOutcome) (int64, error)
	ListRuns(ctx context.Context, limit int) ([]*domain.AnalysisRun, error)
	GetRun(ctx context.Context, id int64) (*domain.AnalysisRun, error)
}

type Server struct {
	router   *mux.Router
	analyzer Analyzer
	cache    *cache.CacheService
	history  History
	logger   *zap.Logger
}

func New(analyzer Analyzer, cacheSvc *cache.CacheService, history History, logger *zap.Logger) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		analyzer: analyzer,
		cache:    cacheSvc,
		history:  history,
		logger:   logger,
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/api/analyze", s.handleAnalyze).Methods(http.MethodPost)
	s.router.HandleFunc("/api/runs", s.handleListRuns).Methods(http.MethodGet)
	s.router.HandleFunc("/api/runs/{id:[0-9]+}", s.handleGetRun).Methods(http.MethodGet)
}

type analyzeRequest struct {
	Transcript string                  `json:"transcript"`
	Settings   domain.AnalysisSettings `json:"settings"`
}

type analyzeResponse struct {
	RunID            int64                   `json:"run_id,omitempty"`
	Result           *domain.AnalysisResult  `json:"result"`
	Flags            []domain.QualityFlag    `json:"flags,omitempty"`
	Chart            []domain.ChartDataPoint `json:"chart"`
	DownloadCommands map[string]string       `json:"download_commands,omitempty"`
	Provider         string                  `json:"provider"`
	Model            string                  `json:"model"`
	Cached           bool                    `json:"cached"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.HTTPConfig.MaxBodyBytes)

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.NewValidationError("request body is not valid JSON", "body", nil))
		return
	}

	// Blank transcripts are rejected here, at the caller boundary; the core
	// pipeline does not re-validate non-emptiness.
	if strings.TrimSpace(req.Transcript) == "" {
		s.writeError(w, apperrors.NewValidationError("transcript must not be empty", "transcript", ""))
		return
	}
	req.Settings = applySettingsDefaults(req.Settings)
	if !req.Settings.Platform.IsValid() {
		s.writeError(w, apperrors.NewValidationError("unknown platform", "settings.platform", req.Settings.Platform))
		return
	}
	if !req.Settings.ClipLength.IsValid() {
		s.writeError(w, apperrors.NewValidationError("unknown clip length", "settings.clip_length", req.Settings.ClipLength))
		return
	}

	ctx := r.Context()

	var cacheKey string
	if s.cache != nil {
		cacheKey = cache.OutcomeKey(req.Transcript, req.Settings)
		var cached service.AnalysisOutcome
		if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
			s.logger.Info("Serving cached analysis", zap.String("key", cacheKey))
			s.writeOutcome(w, &cached, req.Settings, 0, true)
			return
		}
	}

	outcome, err := s.analyzer.Analyze(ctx, req.Transcript, req.Settings)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, outcome, constants.CacheTTL.AnalysisResult); err != nil {
			s.logger.Warn("Failed to cache analysis outcome", zap.Error(err))
		}
	}

	var runID int64
	if s.history != nil {
		id, err := s.history.SaveRun(ctx, req.Settings, outcome)
		if err != nil {
			s.logger.Warn("Failed to persist analysis run", zap.Error(err))
		} else {
			runID = id
		}
	}

	s.writeOutcome(w, outcome, req.Settings, runID, false)
}

func (s *Server) writeOutcome(w http.ResponseWriter, outcome *service.AnalysisOutcome, settings domain.AnalysisSettings, runID int64, cached bool) {
	s.writeJSON(w, http.StatusOK, analyzeResponse{
		RunID:            runID,
		Result:           outcome.Result,
		Flags:            outcome.Flags,
		Chart:            adapter.ChartPoints(outcome.Result),
		DownloadCommands: adapter.DownloadCommands(outcome.Result, settings.SourceURL),
		Provider:         outcome.Provider,
		Model:            outcome.Model,
		Cached:           cached,
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeJSON(w, http.StatusNotImplemented, errorResponse{
			Error: "run history is not configured",
			Code:  apperrors.CodeService,
		})
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	runs, err := s.history.ListRuns(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if runs == nil {
		runs = []*domain.AnalysisRun{}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeJSON(w, http.StatusNotImplemented, errorResponse{
			Error: "run history is not configured",
			Code:  apperrors.CodeService,
		})
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.writeError(w, apperrors.NewValidationError("invalid run id", "id", mux.Vars(r)["id"]))
		return
	}

	run, err := s.history.GetRun(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if run == nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{
			Error: fmt.Sprintf("run %d not found", id),
			Code:  apperrors.CodeValidation,
		})
		return
	}

	s.writeJSON(w, http.StatusOK, run)
}

// writeError maps the error taxonomy onto HTTP statuses distinctly enough
// that "try again" and "fix your input" are distinguishable client-side.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := apperrors.Code(err)

	status := http.StatusInternalServerError
	switch code {
	case apperrors.CodeValidation:
		status = http.StatusBadRequest
	case apperrors.CodeTransport, apperrors.CodeEmptyResponse, apperrors.CodeMalformedResult:
		status = http.StatusBadGateway
	}

	s.logger.Warn("Request failed",
		zap.String("code", code),
		zap.Int("status", status),
		zap.Error(err),
	)

	s.writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func applySettingsDefaults(settings domain.AnalysisSettings) domain.AnalysisSettings {
	defaults := domain.DefaultSettings()
	if settings.Platform == "" {
		settings.Platform = defaults.Platform
	}
	if settings.ClipLength == "" {
		settings.ClipLength = defaults.ClipLength
	}
	if settings.Niche == "" {
		settings.Niche = defaults.Niche
	}
	if settings.Language == "" {
		settings.Language = defaults.Language
	}
	return settings
}
