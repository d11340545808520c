package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabularium/internal/core/apperror"
)

// resolverTable mirrors the shape of a real inventory items table: required
// identifiers with alternative spellings, an enum, a decimal.
func resolverTable() *TableSchema {
	return &TableSchema{
		ID:   "items",
		Name: "Items",
		Columns: []ColumnDefinition{
			{
				ID: "item_id", Label: "Item ID", Type: TypeText, Required: true,
				Alternatives: []string{"SKU", "Item Number", "Part Number", "Article"},
			},
			{
				ID: "name", Label: "Item Name", Type: TypeText, Required: true,
				Alternatives: []string{"Description", "Product Name", "Title"},
			},
			{
				ID: "unit_price", Label: "Unit Price", Type: TypeDecimal,
				Alternatives: []string{"Price", "Cost", "Unit Cost"},
			},
			{
				ID: "quantity", Label: "Quantity", Type: TypeNumber,
				Alternatives: []string{"Qty", "On Hand", "Stock"},
			},
			{
				ID: "status", Label: "Status", Type: TypeEnum,
				EnumValues: []EnumValue{
					{Value: "active", Label: "Active"},
					{Value: "discontinued", Label: "Discontinued"},
				},
			},
		},
	}
}

func TestResolveExactTier(t *testing.T) {
	r := NewResolver(ResolverOptions{})
	table := resolverTable()

	// Every column ID round-trips at the exact tier.
	for i := range table.Columns {
		col := &table.Columns[i]
		m, err := r.Resolve(table, col.ID)
		require.NoError(t, err)
		require.True(t, m.Matched(), "column %s did not round-trip", col.ID)
		assert.Equal(t, TierExact, m.Tier)
		assert.Equal(t, col.ID, m.Column.ID)
		assert.Equal(t, 1.0, m.Score)
	}

	// Labels hit the exact tier too, independent of casing and separators.
	m, err := r.Resolve(table, "UNIT-PRICE")
	require.NoError(t, err)
	assert.Equal(t, TierExact, m.Tier)
	assert.Equal(t, "unit_price", m.Column.ID)
}

func TestResolveAlternativeTier(t *testing.T) {
	r := NewResolver(ResolverOptions{})
	table := resolverTable()

	m, err := r.Resolve(table, "sku")
	require.NoError(t, err)
	require.True(t, m.Matched())
	assert.Equal(t, TierAlternative, m.Tier)
	assert.Equal(t, "item_id", m.Column.ID)

	m, err = r.Resolve(table, "Part Number")
	require.NoError(t, err)
	assert.Equal(t, TierAlternative, m.Tier)
	assert.Equal(t, "item_id", m.Column.ID)

	m, err = r.Resolve(table, "on-hand")
	require.NoError(t, err)
	assert.Equal(t, TierAlternative, m.Tier)
	assert.Equal(t, "quantity", m.Column.ID)
}

func TestResolveFuzzyTier(t *testing.T) {
	r := NewResolver(ResolverOptions{})
	table := resolverTable()

	// One typo away from "quantity".
	m, err := r.Resolve(table, "Quantiti")
	require.NoError(t, err)
	require.True(t, m.Matched())
	assert.Equal(t, TierFuzzy, m.Tier)
	assert.Equal(t, "quantity", m.Column.ID)
	assert.Less(t, m.Score, 1.0)
	assert.GreaterOrEqual(t, m.Score, DefaultFuzzyThreshold)
}

func TestResolveUnmatched(t *testing.T) {
	r := NewResolver(ResolverOptions{})
	table := resolverTable()

	for _, header := range []string{"xyz-nonexistent-header", "zzzzzz", ""} {
		m, err := r.Resolve(table, header)
		require.NoError(t, err)
		assert.False(t, m.Matched())
		assert.Equal(t, TierUnmatched, m.Tier)
		assert.Nil(t, m.Column)
		assert.Equal(t, header, m.Input)
	}
}

func TestResolveThresholdConfigurable(t *testing.T) {
	table := resolverTable()

	strict := NewResolver(ResolverOptions{FuzzyThreshold: 0.95})
	m, err := strict.Resolve(table, "Quantiti")
	require.NoError(t, err)
	assert.Equal(t, TierUnmatched, m.Tier)

	lax := NewResolver(ResolverOptions{FuzzyThreshold: 0.5})
	m, err = lax.Resolve(table, "Quanty")
	require.NoError(t, err)
	assert.Equal(t, TierFuzzy, m.Tier)
	assert.Equal(t, "quantity", m.Column.ID)
}

func TestResolveAmbiguousAlternatives(t *testing.T) {
	// Two different columns claiming the same alternative is an authoring
	// defect and must surface instead of being tie-broken away.
	table := &TableSchema{
		ID:   "orders",
		Name: "Orders",
		Columns: []ColumnDefinition{
			{ID: "order_no", Label: "Order No", Type: TypeText, Alternatives: []string{"Reference"}},
			{ID: "customer_ref", Label: "Customer Ref", Type: TypeText, Alternatives: []string{"Reference"}},
		},
	}

	r := NewResolver(ResolverOptions{})
	_, err := r.Resolve(table, "reference")
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeAmbiguousMatch, appErr.Code)
	assert.ElementsMatch(t, []string{"order_no", "customer_ref"}, appErr.Details["column_ids"])
}

func TestResolveTieBreak(t *testing.T) {
	r := NewResolver(ResolverOptions{FuzzyThreshold: 0.6})

	// Both columns miss "statsu" by the same two edits; the required one
	// wins the tie.
	table := &TableSchema{
		ID:   "t",
		Name: "T",
		Columns: []ColumnDefinition{
			{ID: "status", Label: "Status", Type: TypeText},
			{ID: "statur", Label: "Statur", Type: TypeText, Required: true},
		},
	}
	m, err := r.Resolve(table, "statsu")
	require.NoError(t, err)
	require.True(t, m.Matched())
	assert.Equal(t, "statur", m.Column.ID)

	// With equal required flags the shorter ID wins.
	table = &TableSchema{
		ID:   "t",
		Name: "T",
		Columns: []ColumnDefinition{
			{ID: "code_long", Label: "Code Long", Type: TypeText, Alternatives: []string{"identical label"}},
			{ID: "code", Label: "Code", Type: TypeText, Alternatives: []string{"identical label"}},
		},
	}
	m, err = r.Resolve(table, "identical labex")
	require.NoError(t, err)
	require.True(t, m.Matched())
	assert.Equal(t, TierFuzzy, m.Tier)
	assert.Equal(t, "code", m.Column.ID)
}

func TestResolveLocalizedLabelFuzzy(t *testing.T) {
	table := &TableSchema{
		ID:   "t",
		Name: "T",
		Columns: []ColumnDefinition{
			{ID: "item_name", Label: "Item Name", LocalizedLabel: "اسم الصنف", Type: TypeText},
		},
	}
	r := NewResolver(ResolverOptions{})

	// A localized label is not an exact-tier candidate but matches at the
	// fuzzy tier with full score.
	m, err := r.Resolve(table, "اسم الصنف")
	require.NoError(t, err)
	require.True(t, m.Matched())
	assert.Equal(t, TierFuzzy, m.Tier)
	assert.Equal(t, 1.0, m.Score)
	assert.Equal(t, "item_name", m.Column.ID)
}
