package models

// FoodRecord is one nutrition entry of the dataset. Fields missing from the
// source stay at their zero value; Nutrients and Notes are nil when absent.
type FoodRecord struct {
	ID                     int       `json:"id" yaml:"id"`
	FoodName               string    `json:"food_name" yaml:"food_name"`
	Nutrients              Nutrients `json:"nutrients" yaml:"nutrients"`
	QuantityRecommendation string    `json:"quantity_recommendation" yaml:"quantity_recommendation"`
	AgeGroup               string    `json:"age_group" yaml:"age_group"`
	// Quality is a serving quantity, shown as "Quantity Serve".
	Quality          float64 `json:"quality" yaml:"quality"`
	NutritionalValue string  `json:"nutritional_value" yaml:"nutritional_value"`
	Notes            *string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// HasNotes reports whether the record carries a non-empty note.
func (f FoodRecord) HasNotes() bool {
	return f.Notes != nil && *f.Notes != ""
}

// NoteText returns the note or "" when there is none.
func (f FoodRecord) NoteText() string {
	if f.Notes == nil {
		return ""
	}
	return *f.Notes
}
