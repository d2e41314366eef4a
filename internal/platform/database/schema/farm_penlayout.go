package schema

// FarmPenLayoutTable represents the 'farm.penlayout' table
type FarmPenLayoutTable struct {
	Table     string
	ID        string
	BarnID    string
	PenID     string
	GridRow   string
	GridCol   string
	RowSpan   string
	ColSpan   string
	UpdatedAt string
}

// FarmPenLayout is the schema definition for farm.penlayout
var FarmPenLayout = FarmPenLayoutTable{
	Table:     "farm.penlayout",
	ID:        "id",
	BarnID:    "barnid",
	PenID:     "penid",
	GridRow:   "gridrow",
	GridCol:   "gridcol",
	RowSpan:   "rowspan",
	ColSpan:   "colspan",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t FarmPenLayoutTable) Columns() []string {
	return []string{
		t.ID, t.BarnID, t.PenID, t.GridRow, t.GridCol, t.RowSpan, t.ColSpan, t.UpdatedAt,
	}
}
