package query

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BananaScripts/insights-engine/pkg/database"
	"github.com/BananaScripts/insights-engine/pkg/logging"
	"github.com/BananaScripts/insights-engine/pkg/models"
	"github.com/BananaScripts/insights-engine/pkg/nlp"
)

// Executor turns resolved components into an executed query and response
// lines. Stateless per call; a single executor is shared across concurrent
// questions, with connection pooling handled by the underlying Querier.
type Executor struct {
	db     database.Querier
	logger *zap.Logger
}

// NewExecutor creates an executor over the given store.
func NewExecutor(db database.Querier, logger *zap.Logger) *Executor {
	return &Executor{db: db, logger: logger.Named("executor")}
}

// Execute compiles, runs and renders one question's components. It always
// returns at least one line and never propagates an error to the caller:
// every failure mode maps to a fixed user-facing message.
func (e *Executor) Execute(ctx context.Context, comps models.QueryComponents) []string {
	switch comps.Intent {
	case models.IntentUnknown:
		return []string{MsgUnknown}
	case models.IntentOutOfScope:
		return []string{MsgOutOfScope}
	}

	tpl, ok := TemplateFor(comps.Intent)
	if !ok {
		// Configuration gap: the intent taxonomy grew past the template
		// table. Startup validation should prevent this.
		e.logger.Error("intent recognized but has no query template",
			zap.String("intent", string(comps.Intent)))
		return []string{MsgNotImplemented}
	}

	res, err := e.runOnce(ctx, tpl, comps)
	if err != nil {
		return []string{MsgTechnicalError}
	}

	if res.empty {
		// One accent-insensitive retry: stored values may carry diacritics
		// the extracted value lacks, or vice versa.
		stripped, qualified := StripFilterAccents(comps, nlp.StripDiacritics)
		if qualified {
			e.logger.Debug("empty result, retrying with accent-stripped filter values")
			res, err = e.runOnce(ctx, tpl, stripped)
			if err != nil {
				return []string{MsgTechnicalError}
			}
		}
	}

	// Answers are rendered from the original components so the user sees the
	// values as asked, even when the retry matched on stripped ones.
	if res.empty {
		return []string{formatNoData(comps.Filters)}
	}
	if res.grouped {
		return formatGrouped(tpl, comps, res.rows)
	}
	return []string{formatScalar(tpl, comps, res.value)}
}

// runResult carries the raw outcome of one execution attempt. empty means
// the retry logic may try again; the caller decides how to render the rest.
type runResult struct {
	grouped bool
	rows    []groupedRow
	value   float64
	empty   bool
}

// runOnce compiles and executes a single attempt.
func (e *Executor) runOnce(ctx context.Context, tpl Template, comps models.QueryComponents) (runResult, error) {
	compiled, err := Compile(tpl, comps)
	if err != nil {
		e.logger.Error("query compilation failed",
			zap.String("intent", string(comps.Intent)),
			zap.Error(err))
		return runResult{}, err
	}

	e.logger.Debug("executing query",
		zap.String("sql", compiled.SQL),
		zap.Int("args", len(compiled.Args)))

	if compiled.Grouped {
		rows, err := e.queryGrouped(ctx, compiled)
		if err != nil {
			e.logger.Error("query execution failed",
				zap.String("intent", string(comps.Intent)),
				zap.String("cause", logging.SanitizeError(err)))
			return runResult{}, err
		}
		return runResult{grouped: true, rows: rows, empty: len(rows) == 0}, nil
	}

	value, err := e.queryScalar(ctx, compiled)
	if err != nil {
		e.logger.Error("query execution failed",
			zap.String("intent", string(comps.Intent)),
			zap.String("cause", logging.SanitizeError(err)))
		return runResult{}, err
	}
	if value == nil || *value == 0 {
		return runResult{empty: true}, nil
	}
	return runResult{value: *value}, nil
}

func (e *Executor) queryGrouped(ctx context.Context, q *CompiledQuery) ([]groupedRow, error) {
	rows, err := e.db.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []groupedRow
	for rows.Next() {
		var (
			label string
			total *float64
		)
		if err := rows.Scan(&label, &total); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row := groupedRow{Label: label}
		if total != nil {
			row.Total = *total
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

func (e *Executor) queryScalar(ctx context.Context, q *CompiledQuery) (*float64, error) {
	rows, err := e.db.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate rows: %w", err)
		}
		// An aggregate without GROUP BY always yields one row; treat a
		// missing row like a null aggregate.
		return nil, nil
	}
	var value *float64
	if err := rows.Scan(&value); err != nil {
		return nil, fmt.Errorf("scan value: %w", err)
	}
	return value, nil
}
