// Package dataset carries the food records bundled into the binary.
package dataset

import _ "embed"

//go:embed food.json
var FoodJSON []byte
