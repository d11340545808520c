package importer

import (
	"context"
	"runtime"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"tabularium/internal/core/apperror"
	"tabularium/internal/domain/schema"
)

var tracer = otel.Tracer("tabularium/importer")

// CellIssue is one rejected cell of a batch.
type CellIssue struct {
	Row      int            `json:"row"`
	ColumnID string         `json:"columnId"`
	Header   string         `json:"header"`
	Raw      string         `json:"raw"`
	Failure  schema.Failure `json:"failure"`
}

// RowResult holds the coerced values of one row keyed by column ID, plus
// every issue found in that row. Rows validate independently, so a row with
// issues still carries the cells that did coerce.
type RowResult struct {
	Index  int                     `json:"index"`
	Values map[string]schema.Value `json:"values"`
	Issues []CellIssue             `json:"issues,omitempty"`
}

// OK reports whether every cell of the row validated.
func (r RowResult) OK() bool {
	return len(r.Issues) == 0
}

// Report is the aggregated outcome of validating a batch of rows. All
// failures are collected; nothing aborts on the first bad cell.
type Report struct {
	DepartmentID string      `json:"departmentId"`
	TableID      string      `json:"tableId"`
	TotalRows    int         `json:"totalRows"`
	ValidRows    int         `json:"validRows"`
	FailedRows   int         `json:"failedRows"`
	Rows         []RowResult `json:"rows"`

	// MissingRequired repeats the plan's uncovered required columns so a
	// stored report is self-contained.
	MissingRequired []string `json:"missingRequired,omitempty"`
}

// Issues flattens every cell issue of the batch in row order.
func (r *Report) Issues() []CellIssue {
	var out []CellIssue
	for _, row := range r.Rows {
		out = append(out, row.Issues...)
	}
	return out
}

// Engine validates row batches against a mapping plan. It holds the shared
// validator and the worker bound; both are read-only after construction.
type Engine struct {
	validator *schema.Validator
	workers   int
}

// EngineOptions tunes batch validation.
type EngineOptions struct {
	// Workers bounds the validation pool; defaults to GOMAXPROCS.
	Workers int
}

// NewEngine creates a batch validation engine around a validator, normally
// the hub's so column checks are active.
func NewEngine(validator *schema.Validator, opts EngineOptions) *Engine {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Engine{validator: validator, workers: workers}
}

// ValidateRows validates every row of a batch against the plan.
//
// Rows are independent, so they fan out across the worker pool; results
// land in a slice indexed by row, which keeps the report in input order
// regardless of scheduling. Cells under unmatched or ambiguous headers are
// skipped (the plan already reports those headers), and a cell position
// past the end of a short row counts as empty input for its column.
func (e *Engine) ValidateRows(ctx context.Context, plan *Plan, rows [][]string) (*Report, error) {
	if plan == nil || plan.table == nil {
		return nil, apperror.NewInvalidInput("plan is required")
	}

	ctx, span := tracer.Start(ctx, "importer.validate_rows",
		trace.WithAttributes(
			attribute.String("table.id", plan.TableID),
			attribute.Int("rows.count", len(rows)),
			attribute.Int("workers", e.workers),
		))
	defer span.End()

	report := &Report{
		DepartmentID:    plan.DepartmentID,
		TableID:         plan.TableID,
		TotalRows:       len(rows),
		Rows:            make([]RowResult, len(rows)),
		MissingRequired: plan.MissingRequired,
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				report.Rows[i] = e.validateRow(plan, i, rows[i])
			}
		}()
	}

feed:
	for i := range rows {
		select {
		case indexes <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(indexes)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, apperror.NewTimeout("batch validation").WithCause(err)
	}

	for i := range report.Rows {
		if report.Rows[i].OK() {
			report.ValidRows++
		} else {
			report.FailedRows++
		}
	}
	span.SetAttributes(attribute.Int("rows.failed", report.FailedRows))
	return report, nil
}

// validateRow validates one row against every mapped header of the plan.
func (e *Engine) validateRow(plan *Plan, index int, cells []string) RowResult {
	result := RowResult{Index: index, Values: make(map[string]schema.Value)}

	for pos, a := range plan.Assignments {
		if !a.Match.Matched() {
			continue
		}
		col := a.Match.Column

		raw := ""
		if pos < len(cells) {
			raw = cells[pos]
		}

		res := e.validator.Validate(col, raw)
		if res.Failure != nil {
			result.Issues = append(result.Issues, CellIssue{
				Row:      index,
				ColumnID: col.ID,
				Header:   a.Header,
				Raw:      raw,
				Failure:  *res.Failure,
			})
			continue
		}
		result.Values[col.ID] = res.Value
	}

	return result
}
