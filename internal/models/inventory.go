package models

import (
	"encoding/json"
	"unicode"
	"unicode/utf8"
)

// InventoryItem is a stored pantry record keyed by item name
// A stored item always has a positive quantity
type InventoryItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// DisplayName returns the name with its first letter upper-cased
func (i InventoryItem) DisplayName() string {
	r, size := utf8.DecodeRuneInString(i.Name)
	if r == utf8.RuneError {
		return i.Name
	}
	return string(unicode.ToUpper(r)) + i.Name[size:]
}

// MarshalJSON adds the display name to the JSON representation
func (i InventoryItem) MarshalJSON() ([]byte, error) {
	type item InventoryItem
	return json.Marshal(struct {
		item
		DisplayName string `json:"displayName"`
	}{
		item:        item(i),
		DisplayName: i.DisplayName(),
	})
}

// InventoryChange describes the outcome of applying a quantity delta
type InventoryChange struct {
	Name     string         `json:"name"`
	Delta    int            `json:"delta"`
	Previous int            `json:"previous"`
	Item     *InventoryItem `json:"item"`
	Created  bool           `json:"created"`
	Deleted  bool           `json:"deleted"`
}
