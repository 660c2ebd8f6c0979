package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// FoodRow is the Postgres shape of a FoodRecord. Nutrients must live in a
// json (not jsonb) column: jsonb does not keep key order.
type FoodRow struct {
	ID                     int            `gorm:"primaryKey;autoIncrement:false"`
	FoodName               string         `gorm:"not null"`
	Nutrients              datatypes.JSON `gorm:"type:json"`
	QuantityRecommendation string
	AgeGroup               string `gorm:"index"`
	Quality                float64
	NutritionalValue       string
	Notes                  *string
}

// ToRecord converts a row into the in-memory record. A nutrients column that
// is not a JSON object of numbers is read leniently, like a dataset file.
func (r FoodRow) ToRecord() (FoodRecord, []FieldIssue) {
	rec := FoodRecord{
		ID:                     r.ID,
		FoodName:               r.FoodName,
		QuantityRecommendation: r.QuantityRecommendation,
		AgeGroup:               r.AgeGroup,
		Quality:                r.Quality,
		NutritionalValue:       r.NutritionalValue,
		Notes:                  r.Notes,
	}
	if len(r.Nutrients) == 0 || string(r.Nutrients) == "null" {
		return rec, nil
	}

	var issues []FieldIssue
	rec.Nutrients, issues = lenientNutrientsJSON(json.RawMessage(r.Nutrients))
	return rec, issues
}
