package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FieldIssue is a record field that was present but not of its declared
// type. The field is left at its empty value.
type FieldIssue struct {
	Field string
	Err   error
}

func (i FieldIssue) Error() string { return i.Field + ": " + i.Err.Error() }

func (i FieldIssue) Unwrap() error { return i.Err }

var recordFields = []string{
	"id",
	"food_name",
	"nutrients",
	"quantity_recommendation",
	"age_group",
	"quality",
	"nutritional_value",
	"notes",
}

// DecodeFoodJSON reads one dataset record leniently: a field of the wrong
// type is left empty and reported, unknown fields are ignored. A value that
// is not an object yields an empty record.
func DecodeFoodJSON(data []byte) (FoodRecord, []FieldIssue) {
	var rec FoodRecord
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return rec, []FieldIssue{{Field: "record", Err: err}}
	}

	var issues []FieldIssue
	report := func(field string, err error) {
		if err != nil {
			issues = append(issues, FieldIssue{Field: field, Err: err})
		}
	}

	for _, name := range recordFields {
		raw, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		switch name {
		case "id":
			report(name, jsonField(raw, &rec.ID))
		case "food_name":
			report(name, jsonField(raw, &rec.FoodName))
		case "nutrients":
			var nutrientIssues []FieldIssue
			rec.Nutrients, nutrientIssues = lenientNutrientsJSON(raw)
			issues = append(issues, nutrientIssues...)
		case "quantity_recommendation":
			report(name, jsonField(raw, &rec.QuantityRecommendation))
		case "age_group":
			report(name, jsonField(raw, &rec.AgeGroup))
		case "quality":
			report(name, jsonField(raw, &rec.Quality))
		case "nutritional_value":
			report(name, jsonField(raw, &rec.NutritionalValue))
		case "notes":
			var s string
			if err := jsonField(raw, &s); err != nil {
				report(name, err)
			} else {
				rec.Notes = &s
			}
		}
	}
	return rec, issues
}

// jsonField sets dst only when raw decodes cleanly.
func jsonField[T any](raw json.RawMessage, dst *T) error {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*dst = v
	return nil
}

// lenientNutrientsJSON keeps every numeric entry in source order and drops
// the others.
func lenientNutrientsJSON(raw json.RawMessage) (Nutrients, []FieldIssue) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, []FieldIssue{{Field: "nutrients", Err: err}}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, []FieldIssue{{Field: "nutrients", Err: fmt.Errorf("expected object, got %s", jsonKind(tok))}}
	}

	out := Nutrients{}
	var issues []FieldIssue
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return out, append(issues, FieldIssue{Field: "nutrients", Err: err})
		}
		key, _ := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return out, append(issues, FieldIssue{Field: "nutrients." + key, Err: err})
		}
		var amount float64
		if err := json.Unmarshal(value, &amount); err != nil {
			issues = append(issues, FieldIssue{Field: "nutrients." + key, Err: err})
			continue
		}
		out = out.set(key, amount)
	}
	return out, issues
}

func jsonKind(tok json.Token) string {
	switch v := tok.(type) {
	case json.Delim:
		if v == '[' {
			return "array"
		}
		return "object"
	case string:
		return "string"
	case float64, json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return "null"
	}
}

// DecodeFoodYAML is DecodeFoodJSON for a YAML node.
func DecodeFoodYAML(n *yaml.Node) (FoodRecord, []FieldIssue) {
	var rec FoodRecord
	n = resolveAlias(n)
	if n.Kind != yaml.MappingNode {
		return rec, []FieldIssue{{Field: "record", Err: fmt.Errorf("line %d: expected mapping", n.Line)}}
	}

	fields := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		fields[n.Content[i].Value] = resolveAlias(n.Content[i+1])
	}

	var issues []FieldIssue
	report := func(field string, err error) {
		if err != nil {
			issues = append(issues, FieldIssue{Field: field, Err: err})
		}
	}

	for _, name := range recordFields {
		v, ok := fields[name]
		if !ok || v.Tag == "!!null" {
			continue
		}
		switch name {
		case "id":
			report(name, yamlField(v, &rec.ID))
		case "food_name":
			report(name, yamlField(v, &rec.FoodName))
		case "nutrients":
			var nutrientIssues []FieldIssue
			rec.Nutrients, nutrientIssues = lenientNutrientsYAML(v)
			issues = append(issues, nutrientIssues...)
		case "quantity_recommendation":
			report(name, yamlField(v, &rec.QuantityRecommendation))
		case "age_group":
			report(name, yamlField(v, &rec.AgeGroup))
		case "quality":
			report(name, yamlField(v, &rec.Quality))
		case "nutritional_value":
			report(name, yamlField(v, &rec.NutritionalValue))
		case "notes":
			var s string
			if err := yamlField(v, &s); err != nil {
				report(name, err)
			} else {
				rec.Notes = &s
			}
		}
	}
	return rec, issues
}

func yamlField[T any](n *yaml.Node, dst *T) error {
	var v T
	if err := n.Decode(&v); err != nil {
		return err
	}
	*dst = v
	return nil
}

func lenientNutrientsYAML(n *yaml.Node) (Nutrients, []FieldIssue) {
	if n.Kind != yaml.MappingNode {
		return nil, []FieldIssue{{Field: "nutrients", Err: fmt.Errorf("line %d: expected mapping", n.Line)}}
	}

	out := Nutrients{}
	var issues []FieldIssue
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		var amount float64
		if err := resolveAlias(n.Content[i+1]).Decode(&amount); err != nil {
			issues = append(issues, FieldIssue{Field: "nutrients." + key, Err: err})
			continue
		}
		out = out.set(key, amount)
	}
	return out, issues
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
