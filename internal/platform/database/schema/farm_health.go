package schema

// FarmHealthTable represents the 'farm.health' table
type FarmHealthTable struct {
	Table            string
	ID               string
	LivestockID      string
	Type             string
	EventDate        string
	DiseaseName      string
	Medicine         string
	Description      string
	WithdrawalPeriod string
	CreatedAt        string
}

// FarmHealth is the schema definition for farm.health
var FarmHealth = FarmHealthTable{
	Table:            "farm.health",
	ID:               "id",
	LivestockID:      "livestockid",
	Type:             "type",
	EventDate:        "eventdate",
	DiseaseName:      "diseasename",
	Medicine:         "medicine",
	Description:      "description",
	WithdrawalPeriod: "withdrawalperiod",
	CreatedAt:        "createdat",
}

// Columns returns all standard column names
func (t FarmHealthTable) Columns() []string {
	return []string{
		t.ID, t.LivestockID, t.Type, t.EventDate, t.DiseaseName, t.Medicine, t.Description, t.WithdrawalPeriod, t.CreatedAt,
	}
}
