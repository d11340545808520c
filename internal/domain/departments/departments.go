// Package departments composes the per-department schema registries into
// the process-wide hub.
package departments

import (
	"tabularium/internal/domain/departments/inventory"
	"tabularium/internal/domain/departments/sales"
	"tabularium/internal/domain/departments/suppliers"
	"tabularium/internal/domain/schema"
)

// NewHub builds the hub over every department registry. Composition
// validates cross-department links, so an error here is an authoring defect
// in the static definitions and should abort startup.
func NewHub() (*schema.Hub, error) {
	return schema.NewHub(
		inventory.Registry(),
		sales.Registry(),
		suppliers.Registry(),
	)
}
