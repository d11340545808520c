package schema

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"tabularium/internal/core/apperror"
)

// Hub is the composed, immutable set of all department registries. It is
// built once at startup; composition failures are authoring defects and
// abort the build.
type Hub struct {
	registries map[string]*SchemaRegistry
	order      []string
	checks     map[string]cel.Program
	validator  *Validator
}

// NewHub validates and composes department registries.
//
// Beyond per-registry validation it enforces cross-department integrity:
// department IDs are unique, every linked table names an existing
// department that owns a table with the same ID, and every linked column
// exists on the owning table with the same type. All column check
// expressions are compiled here, so an expression typo fails the process
// at startup instead of the first import.
func NewHub(registries ...SchemaRegistry) (*Hub, error) {
	h := &Hub{
		registries: make(map[string]*SchemaRegistry, len(registries)),
		order:      make([]string, 0, len(registries)),
		checks:     make(map[string]cel.Program),
	}

	for i := range registries {
		reg := &registries[i]
		if err := reg.Validate(); err != nil {
			return nil, err
		}
		if _, dup := h.registries[reg.DepartmentID]; dup {
			return nil, apperror.NewValidation(fmt.Sprintf("department %q registered twice", reg.DepartmentID)).
				WithDetail("department_id", reg.DepartmentID)
		}
		h.registries[reg.DepartmentID] = reg
		h.order = append(h.order, reg.DepartmentID)
	}

	for _, id := range h.order {
		reg := h.registries[id]
		for i := range reg.LinkedTables {
			if err := h.checkLink(reg, &reg.LinkedTables[i]); err != nil {
				return nil, err
			}
		}
		for _, t := range reg.Tables() {
			if err := h.compileChecks(reg.DepartmentID, &t); err != nil {
				return nil, err
			}
		}
	}

	h.validator = NewValidator(ValidatorOptions{Checks: h.checks})
	return h, nil
}

// checkLink verifies that a linked table resolves to an owned table of an
// existing department and projects only columns that table has.
func (h *Hub) checkLink(reg *SchemaRegistry, linked *TableSchema) error {
	owner, ok := h.registries[linked.LinkedDepartmentID]
	if !ok {
		return apperror.NewDanglingLink(linked.ID, linked.LinkedDepartmentID).
			WithDetail("linking_department", reg.DepartmentID)
	}
	source, ok := owner.OwnedTable(linked.ID)
	if !ok {
		return apperror.NewDanglingLink(linked.ID, linked.LinkedDepartmentID).
			WithDetail("linking_department", reg.DepartmentID)
	}
	for i := range linked.Columns {
		col := &linked.Columns[i]
		src, ok := source.Column(col.ID)
		if !ok {
			return apperror.NewValidation(fmt.Sprintf("linked table %q projects column %q that department %q does not define",
				linked.ID, col.ID, linked.LinkedDepartmentID)).
				WithDetail("table_id", linked.ID).
				WithDetail("column_id", col.ID)
		}
		if src.Type != col.Type {
			return apperror.NewValidation(fmt.Sprintf("linked column %q of table %q has type %q but the owning department declares %q",
				col.ID, linked.ID, col.Type, src.Type)).
				WithDetail("table_id", linked.ID).
				WithDetail("column_id", col.ID)
		}
	}
	return nil
}

// compileChecks compiles every distinct check expression of a table.
func (h *Hub) compileChecks(departmentID string, t *TableSchema) error {
	for i := range t.Columns {
		col := &t.Columns[i]
		if col.Check == "" {
			continue
		}
		if _, done := h.checks[col.Check]; done {
			continue
		}
		prg, err := CompileCheck(col.Check)
		if err != nil {
			return apperror.NewValidation(fmt.Sprintf("check expression of column %q in table %q does not compile",
				col.ID, t.ID)).
				WithDetail("department_id", departmentID).
				WithDetail("table_id", t.ID).
				WithDetail("column_id", col.ID).
				WithCause(err)
		}
		h.checks[col.Check] = prg
	}
	return nil
}

// Registry returns the registry of the given department.
func (h *Hub) Registry(departmentID string) (*SchemaRegistry, error) {
	reg, ok := h.registries[departmentID]
	if !ok {
		return nil, apperror.NewNotFound("department", departmentID)
	}
	return reg, nil
}

// Departments returns all registries in registration order.
func (h *Hub) Departments() []*SchemaRegistry {
	out := make([]*SchemaRegistry, 0, len(h.order))
	for _, id := range h.order {
		out = append(out, h.registries[id])
	}
	return out
}

// Table returns a table of the given department, owned or linked.
func (h *Hub) Table(departmentID, tableID string) (*TableSchema, error) {
	reg, err := h.Registry(departmentID)
	if err != nil {
		return nil, err
	}
	t, ok := reg.Table(tableID)
	if !ok {
		return nil, apperror.NewNotFound("table", tableID).
			WithDetail("department_id", departmentID)
	}
	return t, nil
}

// ResolveLinked follows a linked table to the authoritative schema owned by
// the source department. Hub composition already guarantees integrity for
// registered tables, so the dangling-link errors here fire only for table
// values constructed outside the hub.
func (h *Hub) ResolveLinked(linked *TableSchema) (*TableSchema, error) {
	if linked == nil || !linked.IsLinked {
		return nil, apperror.NewInvalidInput("table is not a linked table")
	}
	owner, ok := h.registries[linked.LinkedDepartmentID]
	if !ok {
		return nil, apperror.NewDanglingLink(linked.ID, linked.LinkedDepartmentID)
	}
	source, ok := owner.OwnedTable(linked.ID)
	if !ok {
		return nil, apperror.NewDanglingLink(linked.ID, linked.LinkedDepartmentID)
	}
	return source, nil
}

// Validator returns a validator wired with every check expression compiled
// during composition.
func (h *Hub) Validator() *Validator {
	return h.validator
}
