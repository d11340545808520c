// Package importer builds header-mapping plans and runs batch row
// validation on top of the schema engine. It never stores row data; its
// outputs are mapping decisions and per-cell diagnostics for the
// import/mapping UI.
package importer

import (
	"tabularium/internal/core/apperror"
	"tabularium/internal/domain/schema"
)

// Assignment is the resolution outcome for one incoming header.
type Assignment struct {
	// Header is the raw header as it appeared in the file.
	Header string `json:"header"`

	// Match is the resolver outcome. For overridden headers it is a
	// synthetic exact match on the confirmed column.
	Match schema.Match `json:"match"`

	// Overridden marks a mapping applied from mapping memory instead of
	// the resolver.
	Overridden bool `json:"overridden,omitempty"`

	// Ambiguous marks a header matching alternatives of several columns.
	// The UI must ask a human; AmbiguousColumns lists the candidates.
	Ambiguous        bool     `json:"ambiguous,omitempty"`
	AmbiguousColumns []string `json:"ambiguousColumns,omitempty"`
}

// Plan maps a header row onto a table schema.
type Plan struct {
	DepartmentID string       `json:"departmentId"`
	TableID      string       `json:"tableId"`
	Assignments  []Assignment `json:"assignments"`

	// MissingRequired lists required column IDs no header resolved to.
	// Validating rows against such a plan fails every row on those
	// columns, so the UI surfaces this before validation starts.
	MissingRequired []string `json:"missingRequired,omitempty"`

	table *schema.TableSchema
}

// MappedHeaders returns the headers that resolved to a column.
func (p *Plan) MappedHeaders() []string {
	var out []string
	for _, a := range p.Assignments {
		if a.Match.Matched() {
			out = append(out, a.Header)
		}
	}
	return out
}

// UnmatchedHeaders returns the headers with no confident resolution.
func (p *Plan) UnmatchedHeaders() []string {
	var out []string
	for _, a := range p.Assignments {
		if !a.Match.Matched() && !a.Ambiguous {
			out = append(out, a.Header)
		}
	}
	return out
}

// AmbiguousHeaders returns the headers needing a human decision.
func (p *Plan) AmbiguousHeaders() []string {
	var out []string
	for _, a := range p.Assignments {
		if a.Ambiguous {
			out = append(out, a.Header)
		}
	}
	return out
}

// Complete reports whether every required column is covered and no header
// is ambiguous.
func (p *Plan) Complete() bool {
	return len(p.MissingRequired) == 0 && len(p.AmbiguousHeaders()) == 0
}

// BuildPlan resolves every header of an incoming file against the table.
//
// Overrides map normalized headers to column IDs; they are mapping-memory
// decisions a human already confirmed and take precedence over the
// resolver. An override naming a column the table does not have is stale
// and falls through to normal resolution. Ambiguous headers become plan
// entries instead of failing the whole plan, because the UI needs the
// complete picture in one pass.
func BuildPlan(table *schema.TableSchema, departmentID string, headers []string, overrides map[string]string, opts schema.ResolverOptions) (*Plan, error) {
	if table == nil {
		return nil, apperror.NewInvalidInput("table is required")
	}
	if len(headers) == 0 {
		return nil, apperror.NewInvalidInput("at least one header is required")
	}

	resolver := schema.NewResolver(opts)
	plan := &Plan{
		DepartmentID: departmentID,
		TableID:      table.ID,
		Assignments:  make([]Assignment, 0, len(headers)),
		table:        table,
	}

	covered := make(map[string]struct{}, len(headers))
	for _, header := range headers {
		a := Assignment{Header: header}

		if columnID, ok := overrides[schema.Normalize(header)]; ok {
			if col, found := table.Column(columnID); found {
				a.Match = schema.Match{Input: header, Column: col, Tier: schema.TierExact, Score: 1}
				a.Overridden = true
				covered[col.ID] = struct{}{}
				plan.Assignments = append(plan.Assignments, a)
				continue
			}
		}

		m, err := resolver.Resolve(table, header)
		if err != nil {
			appErr, ok := apperror.AsAppError(err)
			if !ok || appErr.Code != apperror.CodeAmbiguousMatch {
				return nil, err
			}
			a.Ambiguous = true
			a.Match = schema.Match{Input: header, Tier: schema.TierUnmatched}
			if ids, ok := appErr.Details["column_ids"].([]string); ok {
				a.AmbiguousColumns = ids
			}
			plan.Assignments = append(plan.Assignments, a)
			continue
		}

		a.Match = m
		if m.Matched() {
			covered[m.Column.ID] = struct{}{}
		}
		plan.Assignments = append(plan.Assignments, a)
	}

	for _, col := range table.RequiredColumns() {
		if _, ok := covered[col.ID]; !ok {
			plan.MissingRequired = append(plan.MissingRequired, col.ID)
		}
	}

	return plan, nil
}
