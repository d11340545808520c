package schema

import (
	"fmt"

	"tabularium/internal/core/apperror"
)

// SchemaRegistry is the complete schema catalog of one department: the
// tables it owns plus read-only projections of tables linked in from other
// departments.
type SchemaRegistry struct {
	DepartmentID string `json:"departmentId"`

	// DepartmentName is the primary display name.
	DepartmentName string `json:"departmentName"`

	// LocalizedDepartmentName is the secondary-locale display name.
	LocalizedDepartmentName string `json:"localizedDepartmentName,omitempty"`

	OwnedTables  []TableSchema `json:"ownedTables"`
	LinkedTables []TableSchema `json:"linkedTables"`
}

// Validate checks structural invariants of the registry and all its tables.
func (r *SchemaRegistry) Validate() error {
	if r.DepartmentID == "" {
		return apperror.NewValidation("department id must not be empty")
	}
	if r.DepartmentName == "" {
		return apperror.NewValidation(fmt.Sprintf("department %q must have a name", r.DepartmentID))
	}

	seen := make(map[string]struct{}, len(r.OwnedTables)+len(r.LinkedTables))
	check := func(t *TableSchema, wantLinked bool) error {
		if err := t.Validate(); err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return appErr.WithDetail("department_id", r.DepartmentID)
			}
			return err
		}
		if t.IsLinked != wantLinked {
			kind := "ownedTables"
			if wantLinked {
				kind = "linkedTables"
			}
			return apperror.NewValidation(fmt.Sprintf("table %q is misplaced in %s of department %q", t.ID, kind, r.DepartmentID)).
				WithDetail("table_id", t.ID).
				WithDetail("department_id", r.DepartmentID)
		}
		if t.IsLinked && t.LinkedDepartmentID == r.DepartmentID {
			return apperror.NewValidation(fmt.Sprintf("table %q cannot be linked from its own department %q", t.ID, r.DepartmentID)).
				WithDetail("table_id", t.ID)
		}
		if _, dup := seen[t.ID]; dup {
			return apperror.NewValidation(fmt.Sprintf("department %q declares table %q twice", r.DepartmentID, t.ID)).
				WithDetail("table_id", t.ID).
				WithDetail("department_id", r.DepartmentID)
		}
		seen[t.ID] = struct{}{}
		return nil
	}

	for i := range r.OwnedTables {
		if err := check(&r.OwnedTables[i], false); err != nil {
			return err
		}
	}
	for i := range r.LinkedTables {
		if err := check(&r.LinkedTables[i], true); err != nil {
			return err
		}
	}
	return nil
}

// Tables returns owned tables followed by linked tables, in declaration
// order. The slice is freshly allocated, the table values are shared.
func (r *SchemaRegistry) Tables() []TableSchema {
	out := make([]TableSchema, 0, len(r.OwnedTables)+len(r.LinkedTables))
	out = append(out, r.OwnedTables...)
	out = append(out, r.LinkedTables...)
	return out
}

// Table returns the table with the given ID, searching owned tables first.
func (r *SchemaRegistry) Table(id string) (*TableSchema, bool) {
	for i := range r.OwnedTables {
		if r.OwnedTables[i].ID == id {
			return &r.OwnedTables[i], true
		}
	}
	for i := range r.LinkedTables {
		if r.LinkedTables[i].ID == id {
			return &r.LinkedTables[i], true
		}
	}
	return nil, false
}

// OwnedTable returns the owned table with the given ID.
func (r *SchemaRegistry) OwnedTable(id string) (*TableSchema, bool) {
	for i := range r.OwnedTables {
		if r.OwnedTables[i].ID == id {
			return &r.OwnedTables[i], true
		}
	}
	return nil, false
}
