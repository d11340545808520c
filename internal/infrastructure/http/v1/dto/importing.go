package dto

import (
	"time"

	"tabularium/internal/domain/importer"
)

// PlanRequest asks for a header-mapping plan.
type PlanRequest struct {
	Headers []string `json:"headers" binding:"required,min=1"`
}

// ValidateRequest asks for batch validation of rows against a header set.
type ValidateRequest struct {
	Headers  []string   `json:"headers" binding:"required,min=1"`
	Rows     [][]string `json:"rows" binding:"required"`
	FileName string     `json:"fileName"`
}

// PlanResponse wraps a plan with its derived views so the mapping UI does
// not recompute them.
type PlanResponse struct {
	Plan             *importer.Plan `json:"plan"`
	MappedHeaders    []string       `json:"mappedHeaders"`
	UnmatchedHeaders []string       `json:"unmatchedHeaders"`
	AmbiguousHeaders []string       `json:"ambiguousHeaders"`
	Complete         bool           `json:"complete"`
}

// FromPlan builds the plan response.
func FromPlan(p *importer.Plan) PlanResponse {
	return PlanResponse{
		Plan:             p,
		MappedHeaders:    p.MappedHeaders(),
		UnmatchedHeaders: p.UnmatchedHeaders(),
		AmbiguousHeaders: p.AmbiguousHeaders(),
		Complete:         p.Complete(),
	}
}

// ValidateResponse carries the validation report and, when the run was
// persisted, its stored identifier.
type ValidateResponse struct {
	Report *importer.Report `json:"report"`
	RunID  string           `json:"runId,omitempty"`
}

// ConfirmMappingRequest records a human header-to-column decision.
type ConfirmMappingRequest struct {
	Header    string `json:"header" binding:"required"`
	ColumnID  string `json:"columnId" binding:"required"`
	DecidedBy string `json:"decidedBy"`
}

// MappingResponse is one stored mapping decision.
type MappingResponse struct {
	DepartmentID     string    `json:"departmentId"`
	TableID          string    `json:"tableId"`
	NormalizedHeader string    `json:"normalizedHeader"`
	ColumnID         string    `json:"columnId"`
	DecidedBy        string    `json:"decidedBy,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}
