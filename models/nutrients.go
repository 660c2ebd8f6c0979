package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Nutrient keys the bundled dataset carries for every record. Records may
// present a subset.
var KnownNutrientKeys = []string{
	"calories_kcal",
	"fats_g",
	"sodium_g",
	"carbohydrates_g",
	"fiber_g",
	"sugar_g",
	"protein_g",
	"vitaminA_g",
	"calcium_g",
	"zinc_g",
	"potassium_g",
	"magnesium_g",
	"vitaminC_g",
}

// Nutrient is one named amount of a record's nutrient mapping.
type Nutrient struct {
	Key    string
	Amount float64
}

// Nutrients keeps the source order of a nutrient mapping. A nil value means
// the record had no nutrients at all.
type Nutrients []Nutrient

// Keys returns the nutrient names in source order.
func (n Nutrients) Keys() []string {
	keys := make([]string, 0, len(n))
	for _, e := range n {
		keys = append(keys, e.Key)
	}
	return keys
}

// KeyText is the space-joined list of nutrient names, the text a search
// term is matched against.
func (n Nutrients) KeyText() string {
	return strings.Join(n.Keys(), " ")
}

// Get returns the amount stored under key.
func (n Nutrients) Get(key string) (float64, bool) {
	for _, e := range n {
		if e.Key == key {
			return e.Amount, true
		}
	}
	return 0, false
}

// set keeps the first position of a repeated key and the last amount.
func (n Nutrients) set(key string, amount float64) Nutrients {
	for i := range n {
		if n[i].Key == key {
			n[i].Amount = amount
			return n
		}
	}
	return append(n, Nutrient{Key: key, Amount: amount})
}

func (n *Nutrients) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("nutrients: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("nutrients: expected object, got %v", tok)
	}

	out := Nutrients{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("nutrients: %w", err)
		}
		key, _ := tok.(string)

		var amount float64
		if err := dec.Decode(&amount); err != nil {
			return fmt.Errorf("nutrients: %q: %w", key, err)
		}
		out = out.set(key, amount)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("nutrients: %w", err)
	}

	*n = out
	return nil
}

func (n Nutrients) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range n {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(e.Amount, 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (n *Nutrients) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		*n = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("nutrients: line %d: expected mapping", value.Line)
	}

	out := Nutrients{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value

		var amount float64
		if err := value.Content[i+1].Decode(&amount); err != nil {
			return fmt.Errorf("nutrients: %q: %w", key, err)
		}
		out = out.set(key, amount)
	}

	*n = out
	return nil
}

// FormatAmount renders an amount the way the dataset spells it: no trailing
// zeros, no exponent for ordinary values.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
