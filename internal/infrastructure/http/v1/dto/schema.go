package dto

import "tabularium/internal/domain/schema"

// DepartmentSummary is the list view of one department registry.
type DepartmentSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	OwnedTables int    `json:"ownedTables"`
	LinkedTables int   `json:"linkedTables"`
}

// FromRegistrySummary builds the list entry for a registry.
func FromRegistrySummary(r *schema.SchemaRegistry, locale Locale) DepartmentSummary {
	return DepartmentSummary{
		ID:           r.DepartmentID,
		Name:         r.DepartmentName,
		DisplayName:  pick(locale, r.DepartmentName, r.LocalizedDepartmentName),
		OwnedTables:  len(r.OwnedTables),
		LinkedTables: len(r.LinkedTables),
	}
}

// RegistryResponse is the full registry of one department.
type RegistryResponse struct {
	DepartmentID string          `json:"departmentId"`
	Name         string          `json:"name"`
	DisplayName  string          `json:"displayName"`
	OwnedTables  []TableResponse `json:"ownedTables"`
	LinkedTables []TableResponse `json:"linkedTables"`
}

// FromRegistry builds the full registry response.
func FromRegistry(r *schema.SchemaRegistry, locale Locale) RegistryResponse {
	out := RegistryResponse{
		DepartmentID: r.DepartmentID,
		Name:         r.DepartmentName,
		DisplayName:  pick(locale, r.DepartmentName, r.LocalizedDepartmentName),
		OwnedTables:  make([]TableResponse, 0, len(r.OwnedTables)),
		LinkedTables: make([]TableResponse, 0, len(r.LinkedTables)),
	}
	for i := range r.OwnedTables {
		out.OwnedTables = append(out.OwnedTables, FromTable(&r.OwnedTables[i], locale))
	}
	for i := range r.LinkedTables {
		out.LinkedTables = append(out.LinkedTables, FromTable(&r.LinkedTables[i], locale))
	}
	return out
}

// TableResponse carries one table schema with locale-resolved display
// strings alongside the raw bilingual pair.
type TableResponse struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	DisplayName        string           `json:"displayName"`
	Description        string           `json:"description,omitempty"`
	DisplayDescription string           `json:"displayDescription,omitempty"`
	IsLinked           bool             `json:"isLinked"`
	LinkedDepartmentID string           `json:"linkedDepartmentId,omitempty"`
	Columns            []ColumnResponse `json:"columns"`
}

// FromTable builds the table response.
func FromTable(t *schema.TableSchema, locale Locale) TableResponse {
	out := TableResponse{
		ID:                 t.ID,
		Name:               t.Name,
		DisplayName:        pick(locale, t.Name, t.LocalizedName),
		Description:        t.Description,
		DisplayDescription: pick(locale, t.Description, t.LocalizedDescription),
		IsLinked:           t.IsLinked,
		LinkedDepartmentID: t.LinkedDepartmentID,
		Columns:            make([]ColumnResponse, 0, len(t.Columns)),
	}
	for i := range t.Columns {
		out.Columns = append(out.Columns, FromColumn(&t.Columns[i], locale))
	}
	return out
}

// ColumnResponse carries one column definition.
type ColumnResponse struct {
	ID               string              `json:"id"`
	Label            string              `json:"label"`
	DisplayLabel     string              `json:"displayLabel"`
	Type             schema.ColumnType   `json:"type"`
	Required         bool                `json:"required"`
	Description      string              `json:"description,omitempty"`
	Alternatives     []string            `json:"alternatives,omitempty"`
	EnumValues       []EnumValueResponse `json:"enumValues,omitempty"`
	DisplayWidthHint int                 `json:"displayWidthHint,omitempty"`
	Check            string              `json:"check,omitempty"`
}

// EnumValueResponse carries one enum member.
type EnumValueResponse struct {
	Value        string `json:"value"`
	Label        string `json:"label"`
	DisplayLabel string `json:"displayLabel"`
}

// FromColumn builds the column response.
func FromColumn(c *schema.ColumnDefinition, locale Locale) ColumnResponse {
	out := ColumnResponse{
		ID:               c.ID,
		Label:            c.Label,
		DisplayLabel:     pick(locale, c.Label, c.LocalizedLabel),
		Type:             c.Type,
		Required:         c.Required,
		Description:      c.Description,
		Alternatives:     c.Alternatives,
		DisplayWidthHint: c.DisplayWidthHint,
		Check:            c.Check,
	}
	for _, ev := range c.EnumValues {
		out.EnumValues = append(out.EnumValues, EnumValueResponse{
			Value:        ev.Value,
			Label:        ev.Label,
			DisplayLabel: pick(locale, ev.Label, ev.LocalizedLabel),
		})
	}
	return out
}
