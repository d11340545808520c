package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabularium/internal/domain/schema"
)

func planTable() *schema.TableSchema {
	return &schema.TableSchema{
		ID:   "items",
		Name: "Items",
		Columns: []schema.ColumnDefinition{
			{
				ID: "item_id", Label: "Item ID", Type: schema.TypeText, Required: true,
				Alternatives: []string{"SKU", "Part Number"},
			},
			{
				ID: "name", Label: "Item Name", Type: schema.TypeText, Required: true,
				Alternatives: []string{"Description"},
			},
			{
				ID: "unit_price", Label: "Unit Price", Type: schema.TypeDecimal,
				Alternatives: []string{"Price"},
			},
			{
				ID: "quantity", Label: "Quantity", Type: schema.TypeNumber,
				Alternatives: []string{"Qty"},
			},
		},
	}
}

func TestBuildPlanMapsHeaders(t *testing.T) {
	plan, err := BuildPlan(planTable(), "inventory", []string{"SKU", "Item Name", "Price", "Color"}, nil, schema.ResolverOptions{})
	require.NoError(t, err)

	require.Len(t, plan.Assignments, 4)
	assert.Equal(t, "item_id", plan.Assignments[0].Match.Column.ID)
	assert.Equal(t, schema.TierAlternative, plan.Assignments[0].Match.Tier)
	assert.Equal(t, "name", plan.Assignments[1].Match.Column.ID)
	assert.Equal(t, schema.TierExact, plan.Assignments[1].Match.Tier)
	assert.Equal(t, "unit_price", plan.Assignments[2].Match.Column.ID)

	assert.Equal(t, []string{"SKU", "Item Name", "Price"}, plan.MappedHeaders())
	assert.Equal(t, []string{"Color"}, plan.UnmatchedHeaders())
	assert.Empty(t, plan.MissingRequired)
	assert.True(t, plan.Complete())
}

func TestBuildPlanMarksMissingRequired(t *testing.T) {
	plan, err := BuildPlan(planTable(), "inventory", []string{"Price", "Qty"}, nil, schema.ResolverOptions{})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"item_id", "name"}, plan.MissingRequired)
	assert.False(t, plan.Complete())
}

func TestBuildPlanAppliesOverrides(t *testing.T) {
	// "Color" never resolves on its own; a confirmed mapping forces it.
	overrides := map[string]string{"color": "name"}
	plan, err := BuildPlan(planTable(), "inventory", []string{"SKU", "Color"}, overrides, schema.ResolverOptions{})
	require.NoError(t, err)

	require.Len(t, plan.Assignments, 2)
	a := plan.Assignments[1]
	assert.True(t, a.Overridden)
	assert.Equal(t, "name", a.Match.Column.ID)
	assert.Equal(t, schema.TierExact, a.Match.Tier)
	assert.Empty(t, plan.MissingRequired)
}

func TestBuildPlanIgnoresStaleOverride(t *testing.T) {
	// An override naming a column the table no longer has falls through to
	// the resolver.
	overrides := map[string]string{"sku": "deleted_column"}
	plan, err := BuildPlan(planTable(), "inventory", []string{"SKU"}, overrides, schema.ResolverOptions{})
	require.NoError(t, err)

	a := plan.Assignments[0]
	assert.False(t, a.Overridden)
	assert.Equal(t, "item_id", a.Match.Column.ID)
	assert.Equal(t, schema.TierAlternative, a.Match.Tier)
}

func TestBuildPlanSurfacesAmbiguousHeaders(t *testing.T) {
	table := &schema.TableSchema{
		ID:   "t",
		Name: "T",
		Columns: []schema.ColumnDefinition{
			{ID: "a", Label: "A", Type: schema.TypeText, Alternatives: []string{"Ref"}},
			{ID: "b", Label: "B", Type: schema.TypeText, Alternatives: []string{"Ref"}},
		},
	}

	plan, err := BuildPlan(table, "x", []string{"Ref"}, nil, schema.ResolverOptions{})
	require.NoError(t, err)

	require.Len(t, plan.Assignments, 1)
	a := plan.Assignments[0]
	assert.True(t, a.Ambiguous)
	assert.ElementsMatch(t, []string{"a", "b"}, a.AmbiguousColumns)
	assert.Equal(t, []string{"Ref"}, plan.AmbiguousHeaders())
	assert.False(t, plan.Complete())
}

func TestBuildPlanRejectsEmptyInput(t *testing.T) {
	_, err := BuildPlan(nil, "x", []string{"a"}, nil, schema.ResolverOptions{})
	assert.Error(t, err)

	_, err = BuildPlan(planTable(), "inventory", nil, nil, schema.ResolverOptions{})
	assert.Error(t, err)
}
