// Package sales defines the schema registry of the sales department.
package sales

import "tabularium/internal/domain/schema"

// DepartmentID is the canonical identifier of this department.
const DepartmentID = "sales"

// Registry returns the sales department's schema registry. Inventory items
// are linked in under the local display name "Products".
func Registry() schema.SchemaRegistry {
	return schema.SchemaRegistry{
		DepartmentID:            DepartmentID,
		DepartmentName:          "Sales",
		LocalizedDepartmentName: "المبيعات",
		OwnedTables: []schema.TableSchema{
			ordersTable(),
			customersTable(),
		},
		LinkedTables: []schema.TableSchema{
			{
				ID:                   "items",
				Name:                 "Products",
				LocalizedName:        "المنتجات",
				Description:          "Sellable items, owned by the inventory department",
				LocalizedDescription: "الأصناف القابلة للبيع من قسم المخزون",
				IsLinked:             true,
				LinkedDepartmentID:   "inventory",
				Columns: []schema.ColumnDefinition{
					{
						ID: "item_id", Label: "Item ID", LocalizedLabel: "معرف الصنف",
						Type: schema.TypeText, Required: true,
						Alternatives: []string{"SKU", "Product Code", "Item Number"},
					},
					{
						ID: "name", Label: "Item Name", LocalizedLabel: "اسم الصنف",
						Type: schema.TypeText, Required: true,
						Alternatives: []string{"Product Name", "Description"},
					},
					{
						ID: "unit_price", Label: "Unit Price", LocalizedLabel: "سعر الوحدة",
						Type:         schema.TypeDecimal,
						Alternatives: []string{"Price", "List Price"},
					},
				},
			},
		},
	}
}

func ordersTable() schema.TableSchema {
	return schema.TableSchema{
		ID:                   "orders",
		Name:                 "Orders",
		LocalizedName:        "الطلبات",
		Description:          "Customer sales orders",
		LocalizedDescription: "طلبات بيع العملاء",
		Columns: []schema.ColumnDefinition{
			{
				ID: "order_id", Label: "Order ID", LocalizedLabel: "معرف الطلب",
				Type: schema.TypeText, Required: true,
				Alternatives:     []string{"Order Number", "Order No", "Sales Order", "SO Number"},
				DisplayWidthHint: 120,
			},
			{
				ID: "customer_id", Label: "Customer ID", LocalizedLabel: "معرف العميل",
				Type: schema.TypeText, Required: true,
				Alternatives: []string{"Customer Number", "Client ID", "Account"},
			},
			{
				ID: "order_date", Label: "Order Date", LocalizedLabel: "تاريخ الطلب",
				Type: schema.TypeDate, Required: true,
				Alternatives: []string{"Date", "Created", "Placed On"},
			},
			{
				ID: "status", Label: "Status", LocalizedLabel: "الحالة",
				Type:         schema.TypeEnum,
				Alternatives: []string{"Order Status", "State", "Stage"},
				EnumValues: []schema.EnumValue{
					{Value: "pending", Label: "Pending", LocalizedLabel: "قيد الانتظار"},
					{Value: "confirmed", Label: "Confirmed", LocalizedLabel: "مؤكد"},
					{Value: "shipped", Label: "Shipped", LocalizedLabel: "تم الشحن"},
					{Value: "delivered", Label: "Delivered", LocalizedLabel: "تم التسليم"},
					{Value: "cancelled", Label: "Cancelled", LocalizedLabel: "ملغى"},
				},
				DisplayWidthHint: 130,
			},
			{
				ID: "total_amount", Label: "Total Amount", LocalizedLabel: "المبلغ الإجمالي",
				Type:         schema.TypeDecimal,
				Alternatives: []string{"Total", "Amount", "Order Total", "Grand Total"},
				Check:        "value >= 0.0",
			},
			{
				ID: "paid", Label: "Paid", LocalizedLabel: "مدفوع",
				Type:         schema.TypeBoolean,
				Alternatives: []string{"Is Paid", "Payment Received", "Settled"},
			},
		},
	}
}

func customersTable() schema.TableSchema {
	return schema.TableSchema{
		ID:                   "customers",
		Name:                 "Customers",
		LocalizedName:        "العملاء",
		Description:          "Customer master data",
		LocalizedDescription: "البيانات الرئيسية للعملاء",
		Columns: []schema.ColumnDefinition{
			{
				ID: "customer_id", Label: "Customer ID", LocalizedLabel: "معرف العميل",
				Type: schema.TypeText, Required: true,
				Alternatives: []string{"Customer Number", "Client ID", "Account Number"},
			},
			{
				ID: "name", Label: "Customer Name", LocalizedLabel: "اسم العميل",
				Type: schema.TypeText, Required: true,
				Alternatives:     []string{"Client", "Company", "Account Name", "Full Name"},
				DisplayWidthHint: 220,
			},
			{
				ID: "email", Label: "Email", LocalizedLabel: "البريد الإلكتروني",
				Type:         schema.TypeText,
				Alternatives: []string{"E-mail", "Email Address", "Contact Email"},
			},
			{
				ID: "segment", Label: "Segment", LocalizedLabel: "الشريحة",
				Type:         schema.TypeEnum,
				Alternatives: []string{"Customer Segment", "Tier", "Category"},
				EnumValues: []schema.EnumValue{
					{Value: "retail", Label: "Retail", LocalizedLabel: "تجزئة"},
					{Value: "wholesale", Label: "Wholesale", LocalizedLabel: "جملة"},
					{Value: "key_account", Label: "Key Account", LocalizedLabel: "حساب رئيسي"},
				},
			},
			{
				ID: "credit_limit", Label: "Credit Limit", LocalizedLabel: "حد الائتمان",
				Type:         schema.TypeDecimal,
				Alternatives: []string{"Max Credit", "Credit Ceiling"},
				Check:        "value >= 0.0",
			},
			{
				ID: "since", Label: "Customer Since", LocalizedLabel: "عميل منذ",
				Type:         schema.TypeDate,
				Alternatives: []string{"First Order", "Joined", "Registration Date"},
			},
		},
	}
}
