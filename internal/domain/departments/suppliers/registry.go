// Package suppliers defines the schema registry of the suppliers department.
package suppliers

import "tabularium/internal/domain/schema"

// DepartmentID is the canonical identifier of this department.
const DepartmentID = "suppliers"

// Registry returns the suppliers department's schema registry. Inventory
// items are linked in under the local display name "Supplied Items".
func Registry() schema.SchemaRegistry {
	return schema.SchemaRegistry{
		DepartmentID:            DepartmentID,
		DepartmentName:          "Suppliers",
		LocalizedDepartmentName: "الموردون",
		OwnedTables: []schema.TableSchema{
			suppliersTable(),
			purchaseOrdersTable(),
		},
		LinkedTables: []schema.TableSchema{
			{
				ID:                   "items",
				Name:                 "Supplied Items",
				LocalizedName:        "الأصناف الموردة",
				Description:          "Items sourced from suppliers, owned by the inventory department",
				LocalizedDescription: "الأصناف المستوردة من الموردين من قسم المخزون",
				IsLinked:             true,
				LinkedDepartmentID:   "inventory",
				Columns: []schema.ColumnDefinition{
					{
						ID: "item_id", Label: "Item ID", LocalizedLabel: "معرف الصنف",
						Type: schema.TypeText, Required: true,
						Alternatives: []string{"SKU", "Part Number", "Item Number"},
					},
					{
						ID: "name", Label: "Item Name", LocalizedLabel: "اسم الصنف",
						Type: schema.TypeText, Required: true,
						Alternatives: []string{"Description", "Part Name"},
					},
					{
						ID: "reorder_level", Label: "Reorder Level", LocalizedLabel: "حد إعادة الطلب",
						Type:         schema.TypeNumber,
						Alternatives: []string{"Reorder Point", "Min Stock"},
					},
				},
			},
		},
	}
}

func suppliersTable() schema.TableSchema {
	return schema.TableSchema{
		ID:                   "suppliers",
		Name:                 "Suppliers",
		LocalizedName:        "الموردون",
		Description:          "Supplier master data",
		LocalizedDescription: "البيانات الرئيسية للموردين",
		Columns: []schema.ColumnDefinition{
			{
				ID: "supplier_id", Label: "Supplier ID", LocalizedLabel: "معرف المورد",
				Type: schema.TypeText, Required: true,
				Alternatives: []string{"Vendor ID", "Vendor Number", "Supplier Code", "Vendor Code"},
			},
			{
				ID: "name", Label: "Supplier Name", LocalizedLabel: "اسم المورد",
				Type: schema.TypeText, Required: true,
				Alternatives:     []string{"Vendor", "Vendor Name", "Company", "Company Name"},
				DisplayWidthHint: 220,
			},
			{
				ID: "contact_email", Label: "Contact Email", LocalizedLabel: "بريد التواصل",
				Type:         schema.TypeText,
				Alternatives: []string{"Email", "E-mail", "Contact"},
			},
			{
				ID: "rating", Label: "Rating", LocalizedLabel: "التقييم",
				Type:         schema.TypeEnum,
				Alternatives: []string{"Supplier Rating", "Grade", "Score"},
				EnumValues: []schema.EnumValue{
					{Value: "preferred", Label: "Preferred", LocalizedLabel: "مفضل"},
					{Value: "approved", Label: "Approved", LocalizedLabel: "معتمد"},
					{Value: "probation", Label: "On Probation", LocalizedLabel: "تحت التجربة"},
					{Value: "blocked", Label: "Blocked", LocalizedLabel: "محظور"},
				},
			},
			{
				ID: "lead_time_days", Label: "Lead Time (Days)", LocalizedLabel: "مدة التوريد بالأيام",
				Type:         schema.TypeNumber,
				Alternatives: []string{"Lead Time", "Delivery Days", "Turnaround"},
				Check:        "value >= 0",
			},
			{
				ID: "active", Label: "Active", LocalizedLabel: "نشط",
				Type:         schema.TypeBoolean,
				Alternatives: []string{"Is Active", "Enabled"},
			},
		},
	}
}

func purchaseOrdersTable() schema.TableSchema {
	return schema.TableSchema{
		ID:                   "purchase_orders",
		Name:                 "Purchase Orders",
		LocalizedName:        "أوامر الشراء",
		Description:          "Orders placed with suppliers",
		LocalizedDescription: "الطلبات الموجهة إلى الموردين",
		Columns: []schema.ColumnDefinition{
			{
				ID: "po_number", Label: "PO Number", LocalizedLabel: "رقم أمر الشراء",
				Type: schema.TypeText, Required: true,
				Alternatives: []string{"Purchase Order", "PO", "Order Number", "PO No"},
			},
			{
				ID: "supplier_id", Label: "Supplier ID", LocalizedLabel: "معرف المورد",
				Type: schema.TypeText, Required: true,
				Alternatives: []string{"Vendor ID", "Vendor", "Supplier Code"},
			},
			{
				ID: "ordered_on", Label: "Order Date", LocalizedLabel: "تاريخ الطلب",
				Type: schema.TypeDate, Required: true,
				Alternatives: []string{"Date", "PO Date", "Issued On"},
			},
			{
				ID: "expected_on", Label: "Expected Delivery", LocalizedLabel: "التسليم المتوقع",
				Type:         schema.TypeDate,
				Alternatives: []string{"Delivery Date", "ETA", "Due Date"},
			},
			{
				ID: "status", Label: "Status", LocalizedLabel: "الحالة",
				Type:         schema.TypeEnum,
				Alternatives: []string{"PO Status", "State"},
				EnumValues: []schema.EnumValue{
					{Value: "draft", Label: "Draft", LocalizedLabel: "مسودة"},
					{Value: "sent", Label: "Sent", LocalizedLabel: "مرسل"},
					{Value: "received", Label: "Received", LocalizedLabel: "مستلم"},
					{Value: "closed", Label: "Closed", LocalizedLabel: "مغلق"},
				},
			},
			{
				ID: "total_cost", Label: "Total Cost", LocalizedLabel: "التكلفة الإجمالية",
				Type:         schema.TypeDecimal,
				Alternatives: []string{"Total", "Amount", "Cost", "PO Value"},
				Check:        "value >= 0.0",
			},
		},
	}
}
