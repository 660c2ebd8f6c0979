package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RehanAli357/baby-food/models"
)

var (
	ErrDuplicateID     = errors.New("duplicate food id")
	ErrMissingFoodName = errors.New("food_name is required")
)

// Catalog is the immutable, loaded dataset together with the values derived
// from it once at construction. It is safe for concurrent readers.
type Catalog struct {
	foods     []models.FoodRecord
	ageGroups []string
	index     []searchEntry
}

// searchEntry holds the lowercased texts a search term is matched against.
type searchEntry struct {
	name string
	keys *string
}

// NewCatalog validates foods and derives the age-group options.
func NewCatalog(foods []models.FoodRecord) (*Catalog, error) {
	if err := ValidateFoods(foods); err != nil {
		return nil, err
	}

	c := &Catalog{
		foods: append([]models.FoodRecord(nil), foods...),
		index: make([]searchEntry, len(foods)),
	}
	for i, f := range c.foods {
		c.index[i] = searchEntry{
			name: strings.ToLower(f.FoodName),
			keys: nutrientHaystack(f),
		}
	}
	c.ageGroups = AgeGroupOptions(c.foods)
	return c, nil
}

// ValidateFoods enforces the two rules every dataset must meet: ids are
// unique and every food has a name. Everything else is optional.
func ValidateFoods(foods []models.FoodRecord) error {
	seen := make(map[int]int, len(foods))
	for i, f := range foods {
		if f.FoodName == "" {
			return fmt.Errorf("record %d (id %d): %w", i, f.ID, ErrMissingFoodName)
		}
		if prev, ok := seen[f.ID]; ok {
			return fmt.Errorf("records %d and %d share id %d: %w", prev, i, f.ID, ErrDuplicateID)
		}
		seen[f.ID] = i
	}
	return nil
}

func (c *Catalog) Len() int { return len(c.foods) }

// Foods returns every record in dataset order.
func (c *Catalog) Foods() []models.FoodRecord {
	return append([]models.FoodRecord{}, c.foods...)
}

// AgeGroups returns the distinct age groups in first-seen order.
func (c *Catalog) AgeGroups() []string {
	return append([]string{}, c.ageGroups...)
}

// Options is what a dropdown offers: "All" followed by the age groups. A
// group literally named "All" is listed once.
func (c *Catalog) Options() []string {
	out := make([]string, 0, len(c.ageGroups)+1)
	out = append(out, AllAgeGroups)
	for _, g := range c.ageGroups {
		if g != AllAgeGroups {
			out = append(out, g)
		}
	}
	return out
}

// Filter runs the filter over the whole dataset. It gives the same answer as
// FilterFoods(c.Foods(), selected, search) using the precomputed texts.
func (c *Catalog) Filter(selected, search string) []models.FoodRecord {
	needle := strings.ToLower(search)
	out := make([]models.FoodRecord, 0, len(c.foods))
	for i, f := range c.foods {
		if !MatchesAge(f, selected) {
			continue
		}
		if e := c.index[i]; matchText(e.name, e.keys, needle) {
			out = append(out, f)
		}
	}
	return out
}

// FilterState is Filter driven by a view state.
func (c *Catalog) FilterState(s ViewState) []models.FoodRecord {
	return c.Filter(s.SelectedAgeGroup, s.SearchText)
}
