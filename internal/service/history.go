package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/clipsmith/clipsmith-go/internal/domain"
	"github.com/clipsmith/clipsmith-go/internal/service/database"
	apperrors "github.com/clipsmith/clipsmith-go/pkg/errors"
	"go.uber.org/zap"
)

const runSchemaSQL = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id          BIGSERIAL PRIMARY KEY,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	platform    TEXT NOT NULL,
	clip_length TEXT NOT NULL,
	niche       TEXT NOT NULL,
	language    TEXT NOT NULL,
	source_url  TEXT NOT NULL DEFAULT '',
	provider    TEXT NOT NULL,
	model       TEXT NOT NULL,
	summary     TEXT NOT NULL,
	clip_count  INT NOT NULL,
	result      JSONB NOT NULL,
	flags       JSONB NOT NULL DEFAULT '[]'
)`

// RunRepository persists completed analysis runs. History is a serving-layer
// convenience; the pipeline itself stays stateless whether or not this
// repository is wired.
type RunRepository struct {
	pg     *database.PostgresService
	logger *zap.Logger
}

func NewRunRepository(ctx context.Context, pg *database.PostgresService, logger *zap.Logger) (*RunRepository, error) {
	if _, err := pg.GetDB().ExecContext(ctx, runSchemaSQL); err != nil {
		return nil, apperrors.NewServiceError("failed to ensure analysis_runs schema", "history", "init", err)
	}

	return &RunRepository{pg: pg, logger: logger}, nil
}

// SaveRun records one completed run and returns its assigned ID.
func (r *RunRepository) SaveRun(ctx context.Context, settings domain.AnalysisSettings, outcome *AnalysisOutcome) (int64, error) {
	resultJSON, err := json.Marshal(outcome.Result)
	if err != nil {
		return 0, apperrors.NewServiceError("failed to marshal result", "history", "save", err)
	}

	flags := outcome.Flags
	if flags == nil {
		flags = []domain.QualityFlag{}
	}
	flagsJSON, err := json.Marshal(flags)
	if err != nil {
		return 0, apperrors.NewServiceError("failed to marshal flags", "history", "save", err)
	}

	var id int64
	err = r.pg.GetDB().QueryRowContext(ctx, `
		INSERT INTO analysis_runs
			(platform, clip_length, niche, language, source_url, provider, model, summary, clip_count, result, flags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		settings.Platform.String(),
		settings.ClipLength.String(),
		settings.Niche,
		settings.Language,
		settings.SourceURL,
		outcome.Provider,
		outcome.Model,
		outcome.Result.Summary,
		len(outcome.Result.Clips),
		resultJSON,
		flagsJSON,
	).Scan(&id)
	if err != nil {
		return 0, apperrors.NewServiceError("failed to insert run", "history", "save", err)
	}

	r.logger.Info("Analysis run persisted",
		zap.Int64("run_id", id),
		zap.Int("clips", len(outcome.Result.Clips)),
	)

	return id, nil
}

// ListRuns returns the most recent runs, newest first, without the full
// result payload.
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]*domain.AnalysisRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.pg.GetDB().QueryContext(ctx, `
		SELECT id, created_at, platform, clip_length, niche, language, source_url,
		       provider, model, summary, clip_count
		FROM analysis_runs
		ORDER BY id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, apperrors.NewServiceError("failed to list runs", "history", "list", err)
	}
	defer rows.Close()

	var runs []*domain.AnalysisRun
	for rows.Next() {
		run, err := scanRun(rows, false)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewServiceError("failed to iterate runs", "history", "list", err)
	}

	return runs, nil
}

// GetRun returns one run including its full result and flags, or nil when
// no such run exists.
func (r *RunRepository) GetRun(ctx context.Context, id int64) (*domain.AnalysisRun, error) {
	row := r.pg.GetDB().QueryRowContext(ctx, `
		SELECT id, created_at, platform, clip_length, niche, language, source_url,
		       provider, model, summary, clip_count, result, flags
		FROM analysis_runs
		WHERE id = $1`, id)

	run, err := scanRun(row, true)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return run, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner, full bool) (*domain.AnalysisRun, error) {
	var (
		run        domain.AnalysisRun
		createdAt  time.Time
		platform   string
		clipLength string
		resultJSON []byte
		flagsJSON  []byte
	)

	dest := []any{
		&run.ID, &createdAt, &platform, &clipLength,
		&run.Settings.Niche, &run.Settings.Language, &run.Settings.SourceURL,
		&run.Provider, &run.Model, &run.Summary, &run.ClipCount,
	}
	if full {
		dest = append(dest, &resultJSON, &flagsJSON)
	}

	if err := row.Scan(dest...); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, apperrors.NewServiceError("failed to scan run", "history", "scan", err)
	}

	run.CreatedAt = createdAt
	run.Settings.Platform = domain.Platform(platform)
	run.Settings.ClipLength = domain.ClipLength(clipLength)

	if full {
		var result domain.AnalysisResult
		if err := json.Unmarshal(resultJSON, &result); err != nil {
			return nil, apperrors.NewServiceError("failed to decode stored result", "history", "scan", err)
		}
		run.Result = &result

		if len(flagsJSON) > 0 {
			if err := json.Unmarshal(flagsJSON, &run.Flags); err != nil {
				return nil, apperrors.NewServiceError("failed to decode stored flags", "history", "scan", err)
			}
		}
	}

	return &run, nil
}
