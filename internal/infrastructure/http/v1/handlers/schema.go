package handlers

import (
	"github.com/gin-gonic/gin"

	"tabularium/internal/domain/schema"
	"tabularium/internal/infrastructure/http/v1/dto"
)

// SchemaHandler serves registry and table metadata to the department
// dashboards and the mapping UI. All reads, no mutation.
type SchemaHandler struct {
	*BaseHandler
	hub *schema.Hub
}

// NewSchemaHandler creates a new schema handler.
func NewSchemaHandler(base *BaseHandler, hub *schema.Hub) *SchemaHandler {
	return &SchemaHandler{BaseHandler: base, hub: hub}
}

// ListDepartments returns a summary of every department registry.
// GET /api/v1/schema/departments
func (h *SchemaHandler) ListDepartments(c *gin.Context) {
	locale := h.Locale(c)
	out := make([]dto.DepartmentSummary, 0)
	for _, reg := range h.hub.Departments() {
		out = append(out, dto.FromRegistrySummary(reg, locale))
	}
	h.OK(c, out)
}

// GetDepartment returns one full registry.
// GET /api/v1/schema/departments/:dept
func (h *SchemaHandler) GetDepartment(c *gin.Context) {
	reg, err := h.hub.Registry(c.Param("dept"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromRegistry(reg, h.Locale(c)))
}

// ListTables returns owned tables followed by linked tables.
// GET /api/v1/schema/departments/:dept/tables
func (h *SchemaHandler) ListTables(c *gin.Context) {
	reg, err := h.hub.Registry(c.Param("dept"))
	if err != nil {
		h.Error(c, err)
		return
	}
	locale := h.Locale(c)
	tables := reg.Tables()
	out := make([]dto.TableResponse, 0, len(tables))
	for i := range tables {
		out = append(out, dto.FromTable(&tables[i], locale))
	}
	h.OK(c, out)
}

// GetTable returns one table schema. With ?resolved=true a linked table is
// followed to the authoritative schema of its owning department.
// GET /api/v1/schema/departments/:dept/tables/:table
func (h *SchemaHandler) GetTable(c *gin.Context) {
	table, err := h.hub.Table(c.Param("dept"), c.Param("table"))
	if err != nil {
		h.Error(c, err)
		return
	}

	if table.IsLinked && c.Query("resolved") == "true" {
		source, err := h.hub.ResolveLinked(table)
		if err != nil {
			h.Error(c, err)
			return
		}
		table = source
	}

	h.OK(c, dto.FromTable(table, h.Locale(c)))
}
