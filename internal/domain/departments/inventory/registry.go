// Package inventory defines the schema registry of the inventory department.
package inventory

import "tabularium/internal/domain/schema"

// DepartmentID is the canonical identifier of this department.
const DepartmentID = "inventory"

// Registry returns the inventory department's schema registry. The result
// is freshly built on every call; the hub owns the composed copy.
func Registry() schema.SchemaRegistry {
	return schema.SchemaRegistry{
		DepartmentID:            DepartmentID,
		DepartmentName:          "Inventory",
		LocalizedDepartmentName: "المخزون",
		OwnedTables: []schema.TableSchema{
			itemsTable(),
			warehousesTable(),
			stockMovementsTable(),
		},
		LinkedTables: []schema.TableSchema{
			{
				ID:                   "suppliers",
				Name:                 "Suppliers",
				LocalizedName:        "الموردون",
				Description:          "Suppliers providing inventory items, owned by the suppliers department",
				LocalizedDescription: "الموردون الذين يوفرون أصناف المخزون",
				IsLinked:             true,
				LinkedDepartmentID:   "suppliers",
				Columns: []schema.ColumnDefinition{
					{
						ID: "supplier_id", Label: "Supplier ID", LocalizedLabel: "معرف المورد",
						Type: schema.TypeText, Required: true,
						Alternatives: []string{"Vendor ID", "Vendor Number", "Supplier Code"},
					},
					{
						ID: "name", Label: "Supplier Name", LocalizedLabel: "اسم المورد",
						Type: schema.TypeText, Required: true,
						Alternatives: []string{"Vendor", "Vendor Name", "Company"},
					},
				},
			},
		},
	}
}

func itemsTable() schema.TableSchema {
	return schema.TableSchema{
		ID:                   "items",
		Name:                 "Items",
		LocalizedName:        "الأصناف",
		Description:          "Master list of stocked items",
		LocalizedDescription: "القائمة الرئيسية للأصناف المخزنة",
		Columns: []schema.ColumnDefinition{
			{
				ID: "item_id", Label: "Item ID", LocalizedLabel: "معرف الصنف",
				Type: schema.TypeText, Required: true,
				Description: "Canonical item identifier",
				Alternatives: []string{
					"SKU", "Item Number", "Part Number", "Article", "Article Number",
					"Product Code", "Item Code", "Stock Code",
				},
				DisplayWidthHint: 120,
			},
			{
				ID: "name", Label: "Item Name", LocalizedLabel: "اسم الصنف",
				Type: schema.TypeText, Required: true,
				Alternatives:     []string{"Description", "Product Name", "Item Description", "Title"},
				DisplayWidthHint: 240,
			},
			{
				ID: "category", Label: "Category", LocalizedLabel: "الفئة",
				Type:         schema.TypeEnum,
				Alternatives: []string{"Group", "Item Group", "Product Category", "Class"},
				EnumValues: []schema.EnumValue{
					{Value: "raw_material", Label: "Raw Material", LocalizedLabel: "مواد خام"},
					{Value: "finished_good", Label: "Finished Good", LocalizedLabel: "منتج نهائي"},
					{Value: "consumable", Label: "Consumable", LocalizedLabel: "مستهلكات"},
					{Value: "spare_part", Label: "Spare Part", LocalizedLabel: "قطع غيار"},
				},
				DisplayWidthHint: 140,
			},
			{
				ID: "unit", Label: "Unit of Measure", LocalizedLabel: "وحدة القياس",
				Type:         schema.TypeEnum,
				Alternatives: []string{"UoM", "Unit", "Measure", "Units"},
				EnumValues: []schema.EnumValue{
					{Value: "pcs", Label: "Pieces", LocalizedLabel: "قطعة"},
					{Value: "kg", Label: "Kilograms", LocalizedLabel: "كيلوغرام"},
					{Value: "l", Label: "Liters", LocalizedLabel: "لتر"},
					{Value: "m", Label: "Meters", LocalizedLabel: "متر"},
					{Value: "box", Label: "Boxes", LocalizedLabel: "صندوق"},
				},
				DisplayWidthHint: 100,
			},
			{
				ID: "unit_price", Label: "Unit Price", LocalizedLabel: "سعر الوحدة",
				Type:         schema.TypeDecimal,
				Alternatives: []string{"Price", "Cost", "Unit Cost", "Price per Unit"},
				Check:        "value >= 0.0",
			},
			{
				ID: "quantity_on_hand", Label: "Quantity on Hand", LocalizedLabel: "الكمية المتوفرة",
				Type:         schema.TypeNumber,
				Alternatives: []string{"Qty", "Quantity", "On Hand", "Stock", "Stock Level", "Available"},
				Check:        "value >= 0",
			},
			{
				ID: "reorder_level", Label: "Reorder Level", LocalizedLabel: "حد إعادة الطلب",
				Type:         schema.TypeNumber,
				Alternatives: []string{"Reorder Point", "Min Stock", "Minimum Quantity"},
				Check:        "value >= 0",
			},
			{
				ID: "active", Label: "Active", LocalizedLabel: "نشط",
				Type:         schema.TypeBoolean,
				Alternatives: []string{"Is Active", "Enabled", "In Use"},
			},
			{
				ID: "added_on", Label: "Added On", LocalizedLabel: "تاريخ الإضافة",
				Type:         schema.TypeDate,
				Alternatives: []string{"Created", "Date Added", "Creation Date"},
			},
		},
	}
}

func warehousesTable() schema.TableSchema {
	return schema.TableSchema{
		ID:                   "warehouses",
		Name:                 "Warehouses",
		LocalizedName:        "المستودعات",
		Description:          "Storage locations",
		LocalizedDescription: "مواقع التخزين",
		Columns: []schema.ColumnDefinition{
			{
				ID: "warehouse_id", Label: "Warehouse ID", LocalizedLabel: "معرف المستودع",
				Type: schema.TypeText, Required: true,
				Alternatives: []string{"Warehouse Code", "Location ID", "Site Code"},
			},
			{
				ID: "name", Label: "Warehouse Name", LocalizedLabel: "اسم المستودع",
				Type: schema.TypeText, Required: true,
				Alternatives: []string{"Location", "Site", "Location Name"},
			},
			{
				ID: "city", Label: "City", LocalizedLabel: "المدينة",
				Type:         schema.TypeText,
				Alternatives: []string{"Town", "Municipality"},
			},
			{
				ID: "capacity", Label: "Capacity", LocalizedLabel: "السعة",
				Type:         schema.TypeNumber,
				Alternatives: []string{"Max Capacity", "Storage Capacity", "Volume"},
				Check:        "value > 0",
			},
			{
				ID: "operational", Label: "Operational", LocalizedLabel: "قيد التشغيل",
				Type:         schema.TypeBoolean,
				Alternatives: []string{"Active", "Open", "In Service"},
			},
		},
	}
}

func stockMovementsTable() schema.TableSchema {
	return schema.TableSchema{
		ID:                   "stock_movements",
		Name:                 "Stock Movements",
		LocalizedName:        "حركات المخزون",
		Description:          "Receipts, issues and transfers between warehouses",
		LocalizedDescription: "الاستلامات والصرف والتحويلات بين المستودعات",
		Columns: []schema.ColumnDefinition{
			{
				ID: "movement_id", Label: "Movement ID", LocalizedLabel: "معرف الحركة",
				Type: schema.TypeText, Required: true,
				Alternatives: []string{"Transaction ID", "Document Number", "Reference"},
			},
			{
				ID: "item_id", Label: "Item ID", LocalizedLabel: "معرف الصنف",
				Type: schema.TypeText, Required: true,
				Alternatives: []string{"SKU", "Item Number", "Product Code"},
			},
			{
				ID: "movement_type", Label: "Movement Type", LocalizedLabel: "نوع الحركة",
				Type: schema.TypeEnum, Required: true,
				Alternatives: []string{"Type", "Transaction Type", "Direction"},
				EnumValues: []schema.EnumValue{
					{Value: "receipt", Label: "Receipt", LocalizedLabel: "استلام"},
					{Value: "issue", Label: "Issue", LocalizedLabel: "صرف"},
					{Value: "transfer", Label: "Transfer", LocalizedLabel: "تحويل"},
					{Value: "adjustment", Label: "Adjustment", LocalizedLabel: "تسوية"},
				},
			},
			{
				ID: "quantity", Label: "Quantity", LocalizedLabel: "الكمية",
				Type: schema.TypeNumber, Required: true,
				Alternatives: []string{"Qty", "Amount", "Units Moved"},
			},
			{
				ID: "moved_on", Label: "Movement Date", LocalizedLabel: "تاريخ الحركة",
				Type: schema.TypeDate, Required: true,
				Alternatives: []string{"Date", "Transaction Date", "Posted On"},
			},
			{
				ID: "warehouse_id", Label: "Warehouse ID", LocalizedLabel: "معرف المستودع",
				Type:         schema.TypeText,
				Alternatives: []string{"Warehouse", "Location", "Site Code"},
			},
		},
	}
}
