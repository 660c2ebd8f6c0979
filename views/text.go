package views

import (
	"bufio"
	"io"
	"strings"

	"github.com/RehanAli357/baby-food/models"
)

// RenderText writes the filtered list for a terminal, one block per food.
func RenderText(w io.Writer, foods []models.FoodRecord) error {
	bw := bufio.NewWriter(w)
	if len(foods) == 0 {
		bw.WriteString(NoResults + "\n")
		return bw.Flush()
	}

	for i, f := range foods {
		if i > 0 {
			bw.WriteString("\n")
		}
		bw.WriteString(f.FoodName + "\n")
		bw.WriteString(strings.Repeat("-", len(f.FoodName)) + "\n")
		if f.Nutrients != nil {
			bw.WriteString("Nutrients:\n")
			for _, n := range f.Nutrients {
				bw.WriteString("  - " + n.Key + ": " + models.FormatAmount(n.Amount) + "\n")
			}
		}
		bw.WriteString("Quantity Recommended: " + f.QuantityRecommendation + "\n")
		bw.WriteString("Age Group: " + f.AgeGroup + "\n")
		bw.WriteString("Quantity Serve: " + models.FormatAmount(f.Quality) + "\n")
		bw.WriteString("Nutrition Value: " + f.NutritionalValue + "\n")
		if f.HasNotes() {
			bw.WriteString("Notes: " + f.NoteText() + "\n")
		}
	}
	return bw.Flush()
}
