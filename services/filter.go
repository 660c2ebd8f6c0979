package services

import (
	"strings"

	"github.com/RehanAli357/baby-food/models"
)

// AllAgeGroups is the age-group selection that disables the age filter.
const AllAgeGroups = "All"

// MatchesAge is an exact, case-sensitive comparison unless selected is "All".
func MatchesAge(food models.FoodRecord, selected string) bool {
	return selected == AllAgeGroups || food.AgeGroup == selected
}

// MatchesSearch looks for search, ignoring case, in the food name and in the
// space-joined nutrient names. Nutrient amounts are never searched.
func MatchesSearch(food models.FoodRecord, search string) bool {
	return matchText(strings.ToLower(food.FoodName), nutrientHaystack(food), strings.ToLower(search))
}

// Matches is the full filter: age and text must both hold.
func Matches(food models.FoodRecord, selected, search string) bool {
	return MatchesAge(food, selected) && MatchesSearch(food, search)
}

// FilterFoods returns, in dataset order, every food passing Matches. The
// result never shares its backing array with foods.
func FilterFoods(foods []models.FoodRecord, selected, search string) []models.FoodRecord {
	out := make([]models.FoodRecord, 0, len(foods))
	for _, f := range foods {
		if Matches(f, selected, search) {
			out = append(out, f)
		}
	}
	return out
}

// AgeGroupOptions lists each distinct age group once, in first-seen order.
// The "All" sentinel is not part of the result.
func AgeGroupOptions(foods []models.FoodRecord) []string {
	seen := make(map[string]struct{}, len(foods))
	groups := make([]string, 0)
	for _, f := range foods {
		if _, ok := seen[f.AgeGroup]; ok {
			continue
		}
		seen[f.AgeGroup] = struct{}{}
		groups = append(groups, f.AgeGroup)
	}
	return groups
}

// nutrientHaystack returns the lowercased key text, or nil when the record
// has no nutrients so the key branch is skipped.
func nutrientHaystack(food models.FoodRecord) *string {
	if food.Nutrients == nil {
		return nil
	}
	keys := strings.ToLower(food.Nutrients.KeyText())
	return &keys
}

func matchText(name string, keys *string, needle string) bool {
	if strings.Contains(name, needle) {
		return true
	}
	return keys != nil && strings.Contains(*keys, needle)
}
