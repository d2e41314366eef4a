package schema

// FarmBreedingTable represents the 'farm.breeding' table
type FarmBreedingTable struct {
	Table        string
	ID           string
	LivestockID  string
	Type         string
	EventDate    string
	SireCode     string
	IsPregnant   string
	ExpectedDate string
	Notes        string
	CreatedAt    string
}

// FarmBreeding is the schema definition for farm.breeding
var FarmBreeding = FarmBreedingTable{
	Table:        "farm.breeding",
	ID:           "id",
	LivestockID:  "livestockid",
	Type:         "type",
	EventDate:    "eventdate",
	SireCode:     "sirecode",
	IsPregnant:   "ispregnant",
	ExpectedDate: "expecteddate",
	Notes:        "notes",
	CreatedAt:    "createdat",
}

// Columns returns all standard column names
func (t FarmBreedingTable) Columns() []string {
	return []string{
		t.ID, t.LivestockID, t.Type, t.EventDate, t.SireCode, t.IsPregnant, t.ExpectedDate, t.Notes, t.CreatedAt,
	}
}
