package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNutrientsUnmarshalJSON(t *testing.T) {
	t.Run("Keeps source order", func(t *testing.T) {
		var n Nutrients
		err := json.Unmarshal([]byte(`{"zinc_g": 0.1, "calories_kcal": 60, "fats_g": 0.5}`), &n)
		require.NoError(t, err)

		assert.Equal(t, []string{"zinc_g", "calories_kcal", "fats_g"}, n.Keys())
		assert.Equal(t, "zinc_g calories_kcal fats_g", n.KeyText())
	})

	t.Run("Repeated key keeps first position and last amount", func(t *testing.T) {
		var n Nutrients
		err := json.Unmarshal([]byte(`{"a": 1, "b": 2, "a": 3}`), &n)
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b"}, n.Keys())
		amount, ok := n.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 3.0, amount)
	})

	t.Run("Empty object is present but empty", func(t *testing.T) {
		var n Nutrients
		require.NoError(t, json.Unmarshal([]byte(`{}`), &n))
		assert.NotNil(t, n)
		assert.Empty(t, n)
	})

	t.Run("Null is absent", func(t *testing.T) {
		rec := FoodRecord{Nutrients: Nutrients{{Key: "x", Amount: 1}}}
		require.NoError(t, json.Unmarshal([]byte(`{"nutrients": null}`), &rec))
		assert.Nil(t, rec.Nutrients)
	})

	t.Run("Rejects non-object", func(t *testing.T) {
		var n Nutrients
		err := json.Unmarshal([]byte(`[1, 2]`), &n)
		assert.Error(t, err)
	})

	t.Run("Rejects non-numeric amount", func(t *testing.T) {
		var n Nutrients
		err := json.Unmarshal([]byte(`{"calories_kcal": "lots"}`), &n)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "calories_kcal")
	})
}

func TestNutrientsMarshalJSON(t *testing.T) {
	n := Nutrients{{Key: "sugar_g", Amount: 12}, {Key: "fats_g", Amount: 0.3}}
	out, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Equal(t, `{"sugar_g":12,"fats_g":0.3}`, string(out))

	out, err = json.Marshal(FoodRecord{ID: 1, FoodName: "Pear"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"nutrients":null`)
	assert.NotContains(t, string(out), "notes")
}

func TestNutrientsUnmarshalYAML(t *testing.T) {
	t.Run("Keeps source order", func(t *testing.T) {
		var rec FoodRecord
		err := yaml.Unmarshal([]byte("food_name: Pear\nnutrients:\n  sugar_g: 10\n  calories_kcal: 57\n"), &rec)
		require.NoError(t, err)
		assert.Equal(t, []string{"sugar_g", "calories_kcal"}, rec.Nutrients.Keys())
	})

	t.Run("Rejects sequence", func(t *testing.T) {
		var rec FoodRecord
		err := yaml.Unmarshal([]byte("nutrients:\n  - 1\n  - 2\n"), &rec)
		assert.Error(t, err)
	})
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "60", FormatAmount(60))
	assert.Equal(t, "0.5", FormatAmount(0.5))
	assert.Equal(t, "0.00003", FormatAmount(0.00003))
}

func TestFoodRecordNotes(t *testing.T) {
	note := "Watch for allergies"
	empty := ""

	assert.False(t, FoodRecord{}.HasNotes())
	assert.False(t, FoodRecord{Notes: &empty}.HasNotes())
	assert.True(t, FoodRecord{Notes: &note}.HasNotes())
	assert.Equal(t, note, FoodRecord{Notes: &note}.NoteText())
	assert.Equal(t, "", FoodRecord{}.NoteText())
}
