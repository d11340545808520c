package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tabularium/internal/core/apperror"
	"tabularium/internal/domain/importer"
	"tabularium/internal/domain/schema"
	"tabularium/internal/infrastructure/http/v1/dto"
	"tabularium/internal/infrastructure/storage/postgres"
	"tabularium/pkg/logger"
)

// ImportHandler serves mapping plans, batch validation and mapping memory.
// The store is optional: plan and validate run without it, mapping-memory
// endpoints return STORE_DISABLED.
type ImportHandler struct {
	*BaseHandler
	hub    *schema.Hub
	engine *importer.Engine
	opts   schema.ResolverOptions
	store  *postgres.Store
}

// NewImportHandler creates a new import handler.
func NewImportHandler(base *BaseHandler, hub *schema.Hub, engine *importer.Engine, opts schema.ResolverOptions, store *postgres.Store) *ImportHandler {
	return &ImportHandler{BaseHandler: base, hub: hub, engine: engine, opts: opts, store: store}
}

// table fetches the target table, following linked tables to the
// authoritative owner schema: a linked projection may hide columns the
// owner requires, and validation must see the owner's full definition.
func (h *ImportHandler) table(c *gin.Context) (*schema.TableSchema, bool) {
	table, err := h.hub.Table(c.Param("dept"), c.Param("table"))
	if err != nil {
		h.Error(c, err)
		return nil, false
	}
	if table.IsLinked {
		source, err := h.hub.ResolveLinked(table)
		if err != nil {
			h.Error(c, err)
			return nil, false
		}
		table = source
	}
	return table, true
}

// overrides loads confirmed mappings when the store is available. Store
// failures degrade to resolver-only planning rather than failing the
// request.
func (h *ImportHandler) overrides(c *gin.Context, departmentID, tableID string) map[string]string {
	if h.store == nil {
		return nil
	}
	out, err := h.store.MappingOverrides(c.Request.Context(), departmentID, tableID)
	if err != nil {
		logger.Warn(c.Request.Context(), "mapping overrides unavailable",
			"department", departmentID, "table", tableID, "error", err)
		return nil
	}
	return out
}

// BuildPlan resolves a header row against the table.
// POST /api/v1/import/:dept/:table/plan
func (h *ImportHandler) BuildPlan(c *gin.Context) {
	var req dto.PlanRequest
	if !h.BindJSON(c, &req) {
		return
	}

	table, ok := h.table(c)
	if !ok {
		return
	}

	dept := c.Param("dept")
	plan, err := importer.BuildPlan(table, dept, req.Headers, h.overrides(c, dept, table.ID), h.opts)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromPlan(plan))
}

// ValidateRows plans the headers, validates every row and returns the
// aggregated report. When the store is configured the report is persisted
// as an import run.
// POST /api/v1/import/:dept/:table/validate
func (h *ImportHandler) ValidateRows(c *gin.Context) {
	var req dto.ValidateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	table, ok := h.table(c)
	if !ok {
		return
	}

	dept := c.Param("dept")
	plan, err := importer.BuildPlan(table, dept, req.Headers, h.overrides(c, dept, table.ID), h.opts)
	if err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.engine.ValidateRows(c.Request.Context(), plan, req.Rows)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.ValidateResponse{Report: report}
	if h.store != nil {
		run, err := h.store.SaveRun(c.Request.Context(), dept, table.ID, req.FileName, report)
		if err != nil {
			// The report is still useful without the stored run.
			logger.Warn(c.Request.Context(), "import run not persisted",
				"department", dept, "table", table.ID, "error", err)
		} else {
			resp.RunID = run.ID.String()
		}
	}
	h.OK(c, resp)
}

// ConfirmMapping stores a human header-to-column decision.
// POST /api/v1/import/:dept/:table/mappings
func (h *ImportHandler) ConfirmMapping(c *gin.Context) {
	if h.store == nil {
		h.Error(c, apperror.NewStoreDisabled())
		return
	}

	var req dto.ConfirmMappingRequest
	if !h.BindJSON(c, &req) {
		return
	}

	table, ok := h.table(c)
	if !ok {
		return
	}
	if _, found := table.Column(req.ColumnID); !found {
		h.Error(c, apperror.NewValidation(fmt.Sprintf("table %q has no column %q", table.ID, req.ColumnID)).
			WithDetail("column_id", req.ColumnID))
		return
	}

	normalized := schema.Normalize(req.Header)
	if normalized == "" {
		h.Error(c, apperror.NewValidation("header normalizes to an empty string"))
		return
	}

	m := postgres.HeaderMapping{
		DepartmentID:     c.Param("dept"),
		TableID:          table.ID,
		NormalizedHeader: normalized,
		ColumnID:         req.ColumnID,
		DecidedBy:        req.DecidedBy,
	}
	if err := h.store.SaveMapping(c.Request.Context(), m); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.MappingResponse{
		DepartmentID:     m.DepartmentID,
		TableID:          m.TableID,
		NormalizedHeader: m.NormalizedHeader,
		ColumnID:         m.ColumnID,
		DecidedBy:        m.DecidedBy,
		CreatedAt:        m.CreatedAt,
	})
}

// ListMappings returns the learned mappings of a table.
// GET /api/v1/import/:dept/:table/mappings
func (h *ImportHandler) ListMappings(c *gin.Context) {
	if h.store == nil {
		h.Error(c, apperror.NewStoreDisabled())
		return
	}

	table, ok := h.table(c)
	if !ok {
		return
	}

	mappings, err := h.store.ListMappings(c.Request.Context(), c.Param("dept"), table.ID)
	if err != nil {
		h.Error(c, err)
		return
	}
	out := make([]dto.MappingResponse, 0, len(mappings))
	for _, m := range mappings {
		out = append(out, dto.MappingResponse{
			DepartmentID:     m.DepartmentID,
			TableID:          m.TableID,
			NormalizedHeader: m.NormalizedHeader,
			ColumnID:         m.ColumnID,
			DecidedBy:        m.DecidedBy,
			CreatedAt:        m.CreatedAt,
		})
	}
	h.OK(c, out)
}

// DeleteMapping removes a learned mapping.
// DELETE /api/v1/import/:dept/:table/mappings/:header
func (h *ImportHandler) DeleteMapping(c *gin.Context) {
	if h.store == nil {
		h.Error(c, apperror.NewStoreDisabled())
		return
	}

	table, ok := h.table(c)
	if !ok {
		return
	}

	normalized := schema.Normalize(c.Param("header"))
	if err := h.store.DeleteMapping(c.Request.Context(), c.Param("dept"), table.ID, normalized); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// ListRuns returns recent import runs of a table, newest first.
// GET /api/v1/import/:dept/:table/runs
func (h *ImportHandler) ListRuns(c *gin.Context) {
	if h.store == nil {
		h.Error(c, apperror.NewStoreDisabled())
		return
	}

	table, ok := h.table(c)
	if !ok {
		return
	}

	limit := h.ParseIntQuery(c, "limit", 20)
	runs, err := h.store.ListRuns(c.Request.Context(), c.Param("dept"), table.ID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, runs)
}

// GetRun returns one import run with its full report.
// GET /api/v1/import/:dept/:table/runs/:id
func (h *ImportHandler) GetRun(c *gin.Context) {
	if h.store == nil {
		h.Error(c, apperror.NewStoreDisabled())
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewInvalidInput("run id must be a UUID"))
		return
	}

	run, err := h.store.GetRun(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, run)
}
