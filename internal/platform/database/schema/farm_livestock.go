package schema

// FarmLivestockTable represents the 'farm.livestock' table
type FarmLivestockTable struct {
	Table             string
	ID                string
	EarTag            string
	Name              string
	BirthDate         string
	Gender            string
	Status            string
	Breed             string
	PenID             string
	MotherID          string
	FatherID          string
	Notes             string
	BreedingCount     string
	LastEstrusDate    string
	LastAIDate        string
	ExpectedDate      string
	WithdrawalDate    string
	LastDiseaseName   string
	LastTreatmentDate string
	CreatedAt         string
	UpdatedAt         string
}

// FarmLivestock is the schema definition for farm.livestock
var FarmLivestock = FarmLivestockTable{
	Table:             "farm.livestock",
	ID:                "id",
	EarTag:            "eartag",
	Name:              "name",
	BirthDate:         "birthdate",
	Gender:            "gender",
	Status:            "status",
	Breed:             "breed",
	PenID:             "penid",
	MotherID:          "motherid",
	FatherID:          "fatherid",
	Notes:             "notes",
	BreedingCount:     "breedingcount",
	LastEstrusDate:    "lastestrusdate",
	LastAIDate:        "lastaidate",
	ExpectedDate:      "expecteddate",
	WithdrawalDate:    "withdrawaldate",
	LastDiseaseName:   "lastdiseasename",
	LastTreatmentDate: "lasttreatmentdate",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
}

// Columns returns all standard column names
func (t FarmLivestockTable) Columns() []string {
	return []string{
		t.ID, t.EarTag, t.Name, t.BirthDate, t.Gender, t.Status, t.Breed, t.PenID, t.MotherID, t.FatherID, t.Notes, t.BreedingCount, t.LastEstrusDate, t.LastAIDate, t.ExpectedDate, t.WithdrawalDate, t.LastDiseaseName, t.LastTreatmentDate, t.CreatedAt, t.UpdatedAt,
	}
}
