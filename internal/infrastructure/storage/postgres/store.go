// Package postgres persists import mapping decisions and run reports. It
// stores diagnostics only; validated row data never touches the database.
package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"tabularium/internal/core/apperror"
	"tabularium/internal/domain/importer"
)

var tracer = otel.Tracer("tabularium/postgres")

// HeaderMapping is one human-confirmed header-to-column decision. Future
// mapping plans for the same table apply it before the resolver runs.
type HeaderMapping struct {
	DepartmentID     string    `db:"department_id" json:"departmentId"`
	TableID          string    `db:"table_id" json:"tableId"`
	NormalizedHeader string    `db:"normalized_header" json:"normalizedHeader"`
	ColumnID         string    `db:"column_id" json:"columnId"`
	DecidedBy        string    `db:"decided_by" json:"decidedBy,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// ImportRun records one validation batch: counters plus the full report.
type ImportRun struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	DepartmentID     string          `db:"department_id" json:"departmentId"`
	TableID          string          `db:"table_id" json:"tableId"`
	FileName         string          `db:"file_name" json:"fileName,omitempty"`
	TotalRows        int             `db:"total_rows" json:"totalRows"`
	FailedRows       int             `db:"failed_rows" json:"failedRows"`
	Report           json.RawMessage `db:"report" json:"report,omitempty"`
	ReportCompressed []byte          `db:"report_compressed" json:"-"`
	CompressionAlgo  CompressionAlgo `db:"compression_algo" json:"-"`
	CreatedAt        time.Time       `db:"created_at" json:"createdAt"`
}

// Store is the mapping-memory persistence layer.
type Store struct {
	pool  *Pool
	codec *reportCodec
}

// NewStore creates a store over an established pool.
func NewStore(pool *Pool) (*Store, error) {
	codec, err := newReportCodec(defaultCompressThreshold)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool, codec: codec}, nil
}

// builder returns a squirrel builder with PostgreSQL placeholders.
func (s *Store) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// EnsureSchema creates the store tables when they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS header_mappings (
			department_id     TEXT NOT NULL,
			table_id          TEXT NOT NULL,
			normalized_header TEXT NOT NULL,
			column_id         TEXT NOT NULL,
			decided_by        TEXT NOT NULL DEFAULT '',
			created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (department_id, table_id, normalized_header)
		)`,
		`CREATE TABLE IF NOT EXISTS import_runs (
			id                UUID PRIMARY KEY,
			department_id     TEXT NOT NULL,
			table_id          TEXT NOT NULL,
			file_name         TEXT NOT NULL DEFAULT '',
			total_rows        INT NOT NULL,
			failed_rows       INT NOT NULL,
			report            JSONB,
			report_compressed BYTEA,
			compression_algo  TEXT NOT NULL DEFAULT 'none',
			created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_import_runs_table
			ON import_runs (department_id, table_id, created_at DESC)`,
	}
	for _, stmt := range ddl {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return apperror.NewDatabase("ensure schema", err)
		}
	}
	return nil
}

// SaveMapping upserts a confirmed header mapping. A later decision for the
// same header replaces the earlier one.
func (s *Store) SaveMapping(ctx context.Context, m HeaderMapping) error {
	ctx, span := tracer.Start(ctx, "store.save_mapping",
		trace.WithAttributes(attribute.String("table.id", m.TableID)))
	defer span.End()

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	sql, args, err := s.builder().
		Insert("header_mappings").
		Columns("department_id", "table_id", "normalized_header", "column_id", "decided_by", "created_at").
		Values(m.DepartmentID, m.TableID, m.NormalizedHeader, m.ColumnID, m.DecidedBy, m.CreatedAt).
		Suffix(`ON CONFLICT (department_id, table_id, normalized_header)
			DO UPDATE SET column_id = EXCLUDED.column_id,
			              decided_by = EXCLUDED.decided_by,
			              created_at = EXCLUDED.created_at`).
		ToSql()
	if err != nil {
		return apperror.NewDatabase("build mapping upsert", err)
	}

	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase("save header mapping", err)
	}
	return nil
}

// ListMappings returns every confirmed mapping of a table.
func (s *Store) ListMappings(ctx context.Context, departmentID, tableID string) ([]HeaderMapping, error) {
	sql, args, err := s.builder().
		Select("department_id", "table_id", "normalized_header", "column_id", "decided_by", "created_at").
		From("header_mappings").
		Where(squirrel.Eq{"department_id": departmentID, "table_id": tableID}).
		OrderBy("normalized_header").
		ToSql()
	if err != nil {
		return nil, apperror.NewDatabase("build mapping query", err)
	}

	var out []HeaderMapping
	if err := pgxscan.Select(ctx, s.pool, &out, sql, args...); err != nil {
		return nil, apperror.NewDatabase("list header mappings", err)
	}
	return out, nil
}

// MappingOverrides returns a table's confirmed mappings in the override
// form the plan builder consumes.
func (s *Store) MappingOverrides(ctx context.Context, departmentID, tableID string) (map[string]string, error) {
	mappings, err := s.ListMappings(ctx, departmentID, tableID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(mappings))
	for _, m := range mappings {
		out[m.NormalizedHeader] = m.ColumnID
	}
	return out, nil
}

// DeleteMapping removes a confirmed mapping.
func (s *Store) DeleteMapping(ctx context.Context, departmentID, tableID, normalizedHeader string) error {
	sql, args, err := s.builder().
		Delete("header_mappings").
		Where(squirrel.Eq{
			"department_id":     departmentID,
			"table_id":          tableID,
			"normalized_header": normalizedHeader,
		}).
		ToSql()
	if err != nil {
		return apperror.NewDatabase("build mapping delete", err)
	}

	res, err := s.pool.Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase("delete header mapping", err)
	}
	if res.RowsAffected() == 0 {
		return apperror.NewNotFound("header mapping", normalizedHeader)
	}
	return nil
}

// SaveRun persists a validation report. Large reports go in compressed;
// the codec picks the representation.
func (s *Store) SaveRun(ctx context.Context, departmentID, tableID, fileName string, report *importer.Report) (*ImportRun, error) {
	ctx, span := tracer.Start(ctx, "store.save_run",
		trace.WithAttributes(
			attribute.String("table.id", tableID),
			attribute.Int("rows.total", report.TotalRows),
		))
	defer span.End()

	raw, compressed, algo, err := s.codec.encode(report)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	run := &ImportRun{
		ID:               uuid.New(),
		DepartmentID:     departmentID,
		TableID:          tableID,
		FileName:         fileName,
		TotalRows:        report.TotalRows,
		FailedRows:       report.FailedRows,
		Report:           json.RawMessage(raw),
		ReportCompressed: compressed,
		CompressionAlgo:  algo,
		CreatedAt:        time.Now().UTC(),
	}

	sql, args, err := s.builder().
		Insert("import_runs").
		Columns("id", "department_id", "table_id", "file_name", "total_rows", "failed_rows",
			"report", "report_compressed", "compression_algo", "created_at").
		Values(run.ID, run.DepartmentID, run.TableID, run.FileName, run.TotalRows, run.FailedRows,
			run.Report, run.ReportCompressed, run.CompressionAlgo, run.CreatedAt).
		ToSql()
	if err != nil {
		return nil, apperror.NewDatabase("build run insert", err)
	}

	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return nil, apperror.NewDatabase("save import run", err)
	}
	return run, nil
}

// GetRun fetches one run with its report decompressed.
func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (*ImportRun, error) {
	sql, args, err := s.builder().
		Select("id", "department_id", "table_id", "file_name", "total_rows", "failed_rows",
			"report", "report_compressed", "compression_algo", "created_at").
		From("import_runs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, apperror.NewDatabase("build run query", err)
	}

	var run ImportRun
	if err := pgxscan.Get(ctx, s.pool, &run, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("import run", id.String())
		}
		return nil, apperror.NewDatabase("get import run", err)
	}

	report, err := s.codec.decode(run.Report, run.ReportCompressed, run.CompressionAlgo)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	run.Report = json.RawMessage(report)
	run.ReportCompressed = nil
	run.CompressionAlgo = CompressionNone
	return &run, nil
}

// ListRuns returns recent runs of a table, newest first, without reports.
func (s *Store) ListRuns(ctx context.Context, departmentID, tableID string, limit int) ([]ImportRun, error) {
	if limit <= 0 {
		limit = 20
	}
	sql, args, err := s.builder().
		Select("id", "department_id", "table_id", "file_name", "total_rows", "failed_rows",
			"compression_algo", "created_at").
		From("import_runs").
		Where(squirrel.Eq{"department_id": departmentID, "table_id": tableID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, apperror.NewDatabase("build runs query", err)
	}

	var out []ImportRun
	if err := pgxscan.Select(ctx, s.pool, &out, sql, args...); err != nil {
		return nil, apperror.NewDatabase("list import runs", err)
	}
	return out, nil
}
