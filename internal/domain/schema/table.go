package schema

import (
	"fmt"

	"tabularium/internal/core/apperror"
)

// TableSchema describes one table owned by, or linked into, a department.
//
// A linked table is a projection of a table owned by another department: it
// carries the owner's table ID and a subset of the owner's columns, possibly
// under a department-local display name.
type TableSchema struct {
	// ID is the canonical table identifier. For linked tables it equals
	// the ID of the source table in the owning department.
	ID string `json:"id"`

	// Name is the primary display name.
	Name string `json:"name"`

	// LocalizedName is the secondary-locale display name.
	LocalizedName string `json:"localizedName,omitempty"`

	Description          string `json:"description,omitempty"`
	LocalizedDescription string `json:"localizedDescription,omitempty"`

	Columns []ColumnDefinition `json:"columns"`

	// IsLinked marks a projection of another department's table.
	IsLinked bool `json:"isLinked"`

	// LinkedDepartmentID names the owning department. Set exactly when
	// IsLinked is true.
	LinkedDepartmentID string `json:"linkedDepartmentId,omitempty"`
}

// Validate checks structural invariants of the table and all its columns.
func (t *TableSchema) Validate() error {
	if t.ID == "" {
		return apperror.NewValidation("table id must not be empty")
	}
	if t.Name == "" {
		return apperror.NewValidation(fmt.Sprintf("table %q must have a name", t.ID))
	}
	if len(t.Columns) == 0 {
		return apperror.NewValidation(fmt.Sprintf("table %q must define at least one column", t.ID)).
			WithDetail("table_id", t.ID)
	}
	if t.IsLinked && t.LinkedDepartmentID == "" {
		return apperror.NewValidation(fmt.Sprintf("linked table %q must name its owning department", t.ID)).
			WithDetail("table_id", t.ID)
	}
	if !t.IsLinked && t.LinkedDepartmentID != "" {
		return apperror.NewValidation(fmt.Sprintf("owned table %q must not reference department %q", t.ID, t.LinkedDepartmentID)).
			WithDetail("table_id", t.ID)
	}

	seen := make(map[string]struct{}, len(t.Columns))
	for i := range t.Columns {
		col := &t.Columns[i]
		if err := col.Validate(); err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return appErr.WithDetail("table_id", t.ID)
			}
			return err
		}
		if _, dup := seen[col.ID]; dup {
			return apperror.NewValidation(fmt.Sprintf("table %q declares column %q twice", t.ID, col.ID)).
				WithDetail("table_id", t.ID).
				WithDetail("column_id", col.ID)
		}
		seen[col.ID] = struct{}{}
	}
	return nil
}

// Column returns the column with the given canonical ID.
func (t *TableSchema) Column(id string) (*ColumnDefinition, bool) {
	for i := range t.Columns {
		if t.Columns[i].ID == id {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// RequiredColumns returns the columns an import must populate.
func (t *TableSchema) RequiredColumns() []*ColumnDefinition {
	var out []*ColumnDefinition
	for i := range t.Columns {
		if t.Columns[i].Required {
			out = append(out, &t.Columns[i])
		}
	}
	return out
}
