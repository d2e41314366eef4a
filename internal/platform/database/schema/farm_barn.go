package schema

// FarmBarnTable represents the 'farm.barn' table
type FarmBarnTable struct {
	Table     string
	ID        string
	Name      string
	CreatedAt string
}

// FarmBarn is the schema definition for farm.barn
var FarmBarn = FarmBarnTable{
	Table:     "farm.barn",
	ID:        "id",
	Name:      "name",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t FarmBarnTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.CreatedAt,
	}
}
