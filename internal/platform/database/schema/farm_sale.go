package schema

// FarmSaleTable represents the 'farm.sale' table
type FarmSaleTable struct {
	Table        string
	ID           string
	LivestockID  string
	SaleDate     string
	Price        string
	CustomerName string
	Weight       string
	Grade        string
	Notes        string
	CreatedAt    string
}

// FarmSale is the schema definition for farm.sale
var FarmSale = FarmSaleTable{
	Table:        "farm.sale",
	ID:           "id",
	LivestockID:  "livestockid",
	SaleDate:     "saledate",
	Price:        "price",
	CustomerName: "customername",
	Weight:       "weight",
	Grade:        "grade",
	Notes:        "notes",
	CreatedAt:    "createdat",
}

// Columns returns all standard column names
func (t FarmSaleTable) Columns() []string {
	return []string{
		t.ID, t.LivestockID, t.SaleDate, t.Price, t.CustomerName, t.Weight, t.Grade, t.Notes, t.CreatedAt,
	}
}
