package schema

// FarmPenTable represents the 'farm.pen' table
type FarmPenTable struct {
	Table     string
	ID        string
	BarnID    string
	Name      string
	Capacity  string
	CreatedAt string
}

// FarmPen is the schema definition for farm.pen
var FarmPen = FarmPenTable{
	Table:     "farm.pen",
	ID:        "id",
	BarnID:    "barnid",
	Name:      "name",
	Capacity:  "capacity",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t FarmPenTable) Columns() []string {
	return []string{
		t.ID, t.BarnID, t.Name, t.Capacity, t.CreatedAt,
	}
}
