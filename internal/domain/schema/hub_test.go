package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabularium/internal/core/apperror"
)

func stockRegistry() SchemaRegistry {
	return SchemaRegistry{
		DepartmentID:   "stock",
		DepartmentName: "Stock",
		OwnedTables: []TableSchema{
			{
				ID:   "items",
				Name: "Items",
				Columns: []ColumnDefinition{
					{ID: "item_id", Label: "Item ID", Type: TypeText, Required: true},
					{ID: "name", Label: "Name", Type: TypeText, Required: true},
					{ID: "unit_price", Label: "Unit Price", Type: TypeDecimal, Check: "value >= 0.0"},
				},
			},
		},
	}
}

func salesRegistryLinkedTo(departmentID string) SchemaRegistry {
	return SchemaRegistry{
		DepartmentID:   "sales",
		DepartmentName: "Sales",
		OwnedTables: []TableSchema{
			{
				ID:   "orders",
				Name: "Orders",
				Columns: []ColumnDefinition{
					{ID: "order_id", Label: "Order ID", Type: TypeText, Required: true},
				},
			},
		},
		LinkedTables: []TableSchema{
			{
				ID:                 "items",
				Name:               "Products",
				IsLinked:           true,
				LinkedDepartmentID: departmentID,
				Columns: []ColumnDefinition{
					{ID: "item_id", Label: "Item ID", Type: TypeText, Required: true},
				},
			},
		},
	}
}

func TestNewHubComposesRegistries(t *testing.T) {
	hub, err := NewHub(stockRegistry(), salesRegistryLinkedTo("stock"))
	require.NoError(t, err)

	reg, err := hub.Registry("sales")
	require.NoError(t, err)
	assert.Equal(t, "sales", reg.DepartmentID)

	_, err = hub.Registry("finance")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestNewHubRejectsDanglingLink(t *testing.T) {
	_, err := NewHub(salesRegistryLinkedTo("stock"))
	require.Error(t, err)
	assert.True(t, apperror.IsDanglingLink(err))

	_, err = NewHub(stockRegistry(), salesRegistryLinkedTo("warehouse"))
	require.Error(t, err)
	assert.True(t, apperror.IsDanglingLink(err))
}

func TestNewHubRejectsLinkedColumnMismatch(t *testing.T) {
	sales := salesRegistryLinkedTo("stock")
	sales.LinkedTables[0].Columns = []ColumnDefinition{
		{ID: "not_a_real_column", Label: "Ghost", Type: TypeText},
	}
	_, err := NewHub(stockRegistry(), sales)
	require.Error(t, err)

	sales = salesRegistryLinkedTo("stock")
	sales.LinkedTables[0].Columns[0].Type = TypeNumber
	_, err = NewHub(stockRegistry(), sales)
	require.Error(t, err)
}

func TestNewHubRejectsDuplicateEnumValues(t *testing.T) {
	reg := stockRegistry()
	reg.OwnedTables[0].Columns = append(reg.OwnedTables[0].Columns, ColumnDefinition{
		ID: "status", Label: "Status", Type: TypeEnum,
		EnumValues: []EnumValue{
			{Value: "active", Label: "Active"},
			{Value: "active", Label: "Also Active"},
		},
	})
	_, err := NewHub(reg)
	require.Error(t, err)
}

func TestNewHubRejectsBadCheckExpression(t *testing.T) {
	reg := stockRegistry()
	reg.OwnedTables[0].Columns[2].Check = "value >="
	_, err := NewHub(reg)
	require.Error(t, err)
}

func TestRegistryTablesOrder(t *testing.T) {
	hub, err := NewHub(stockRegistry(), salesRegistryLinkedTo("stock"))
	require.NoError(t, err)

	reg, err := hub.Registry("sales")
	require.NoError(t, err)

	tables := reg.Tables()
	require.Len(t, tables, 2)
	assert.Equal(t, "orders", tables[0].ID)
	assert.False(t, tables[0].IsLinked)
	assert.Equal(t, "items", tables[1].ID)
	assert.True(t, tables[1].IsLinked)
}

func TestResolveLinkedReturnsOwnerSchema(t *testing.T) {
	hub, err := NewHub(stockRegistry(), salesRegistryLinkedTo("stock"))
	require.NoError(t, err)

	sales, err := hub.Registry("sales")
	require.NoError(t, err)
	linked, ok := sales.Table("items")
	require.True(t, ok)

	// The projection carries one column; the authoritative schema has all
	// three.
	source, err := hub.ResolveLinked(linked)
	require.NoError(t, err)
	assert.False(t, source.IsLinked)
	assert.Len(t, source.Columns, 3)

	// Non-linked tables are invalid input.
	owned, ok := sales.Table("orders")
	require.True(t, ok)
	_, err = hub.ResolveLinked(owned)
	require.Error(t, err)

	// A hand-built linked table pointing nowhere is a dangling link.
	stray := &TableSchema{ID: "ghost", Name: "Ghost", IsLinked: true, LinkedDepartmentID: "nowhere",
		Columns: []ColumnDefinition{{ID: "x", Label: "X", Type: TypeText}}}
	_, err = hub.ResolveLinked(stray)
	require.Error(t, err)
	assert.True(t, apperror.IsDanglingLink(err))
}

func TestHubValidatorRunsCompiledChecks(t *testing.T) {
	hub, err := NewHub(stockRegistry())
	require.NoError(t, err)

	reg, err := hub.Registry("stock")
	require.NoError(t, err)
	table, ok := reg.Table("items")
	require.True(t, ok)
	col, ok := table.Column("unit_price")
	require.True(t, ok)

	res := hub.Validator().Validate(col, "(5.00)")
	require.False(t, res.OK())
	assert.Equal(t, FailCheckViolation, res.Failure.Code)

	res = hub.Validator().Validate(col, "5.00")
	assert.True(t, res.OK())
}
