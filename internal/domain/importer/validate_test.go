package importer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabularium/internal/domain/schema"
)

func newTestEngine(workers int) *Engine {
	return NewEngine(schema.NewValidator(schema.ValidatorOptions{}), EngineOptions{Workers: workers})
}

func TestValidateRowsCollectsAllIssues(t *testing.T) {
	plan, err := BuildPlan(planTable(), "inventory",
		[]string{"SKU", "Item Name", "Price", "Qty"}, nil, schema.ResolverOptions{})
	require.NoError(t, err)

	rows := [][]string{
		{"A-100", "Widget", "19.99", "5"},
		{"", "Gadget", "not-a-price", "2"},
		{"A-102", "Sprocket", "3.50", "many"},
	}

	report, err := newTestEngine(2).ValidateRows(context.Background(), plan, rows)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalRows)
	assert.Equal(t, 1, report.ValidRows)
	assert.Equal(t, 2, report.FailedRows)

	require.True(t, report.Rows[0].OK())
	assert.Equal(t, "A-100", report.Rows[0].Values["item_id"].Text())
	assert.Equal(t, int64(5), report.Rows[0].Values["quantity"].Number())

	// Row 1 accumulates both the missing required cell and the bad price.
	issues := report.Rows[1].Issues
	require.Len(t, issues, 2)
	assert.Equal(t, schema.FailMissingRequired, issues[0].Failure.Code)
	assert.Equal(t, "item_id", issues[0].ColumnID)
	assert.Equal(t, schema.FailTypeMismatch, issues[1].Failure.Code)
	assert.Equal(t, "unit_price", issues[1].ColumnID)

	// And its valid cells still coerced.
	assert.Equal(t, "Gadget", report.Rows[1].Values["name"].Text())

	require.Len(t, report.Rows[2].Issues, 1)
	assert.Equal(t, "quantity", report.Rows[2].Issues[0].ColumnID)

	assert.Len(t, report.Issues(), 3)
}

func TestValidateRowsPreservesOrder(t *testing.T) {
	plan, err := BuildPlan(planTable(), "inventory",
		[]string{"SKU", "Item Name"}, nil, schema.ResolverOptions{})
	require.NoError(t, err)

	const n = 500
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{fmt.Sprintf("ID-%04d", i), fmt.Sprintf("Item %d", i)}
	}

	report, err := newTestEngine(8).ValidateRows(context.Background(), plan, rows)
	require.NoError(t, err)

	require.Len(t, report.Rows, n)
	for i, row := range report.Rows {
		assert.Equal(t, i, row.Index)
		assert.Equal(t, fmt.Sprintf("ID-%04d", i), row.Values["item_id"].Text())
	}
	assert.Equal(t, n, report.ValidRows)
}

func TestValidateRowsShortRow(t *testing.T) {
	plan, err := BuildPlan(planTable(), "inventory",
		[]string{"SKU", "Item Name", "Price"}, nil, schema.ResolverOptions{})
	require.NoError(t, err)

	// A row shorter than the header set: absent trailing cells fail only
	// for required columns.
	rows := [][]string{{"A-100"}}
	report, err := newTestEngine(1).ValidateRows(context.Background(), plan, rows)
	require.NoError(t, err)

	row := report.Rows[0]
	require.Len(t, row.Issues, 1)
	assert.Equal(t, "name", row.Issues[0].ColumnID)
	assert.Equal(t, schema.FailMissingRequired, row.Issues[0].Failure.Code)
	assert.True(t, row.Values["unit_price"].IsAbsent())
}

func TestValidateRowsSkipsUnmatchedColumns(t *testing.T) {
	plan, err := BuildPlan(planTable(), "inventory",
		[]string{"SKU", "Item Name", "Color"}, nil, schema.ResolverOptions{})
	require.NoError(t, err)

	rows := [][]string{{"A-100", "Widget", "red"}}
	report, err := newTestEngine(1).ValidateRows(context.Background(), plan, rows)
	require.NoError(t, err)

	// "Color" never resolved, so its cells are neither validated nor
	// reported as issues.
	require.True(t, report.Rows[0].OK())
	assert.Len(t, report.Rows[0].Values, 2)
}

func TestValidateRowsCancelledContext(t *testing.T) {
	plan, err := BuildPlan(planTable(), "inventory",
		[]string{"SKU", "Item Name"}, nil, schema.ResolverOptions{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows := make([][]string, 1000)
	for i := range rows {
		rows[i] = []string{"A", "B"}
	}
	_, err = newTestEngine(2).ValidateRows(ctx, plan, rows)
	assert.Error(t, err)
}
