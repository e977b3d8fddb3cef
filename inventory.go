// Copyright 2019 Fabian Wenzelmann
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package brickmos

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

const (
	// ItemTypePart is the BrickLink item type of a part.
	ItemTypePart = "P"
	// ConditionAny is the BrickLink condition that accepts new and used parts.
	ConditionAny = "X"
)

// InventoryItem is one lot in a BrickLink wanted list.
type InventoryItem struct {
	ItemType  string `xml:"ITEMTYPE"`
	ItemID    string `xml:"ITEMID"`
	Color     string `xml:"COLOR"`
	MinQty    int    `xml:"MINQTY"`
	Condition string `xml:"CONDITION"`
}

// Inventory is a BrickLink wanted list, it can be uploaded on
// https://www.bricklink.com/v2/wanted/upload.page
type Inventory struct {
	XMLName xml.Name        `xml:"INVENTORY"`
	Items   []InventoryItem `xml:"ITEM"`
}

// ExportInventory creates the inventory for the given stats. For each used
// palette entry one item is created with a quantity of count + spares.
// Items appear in the order the entries were discovered.
func ExportInventory(stats *UsageStats, p Palette, spares int) (*Inventory, error) {
	if spares < 0 {
		return nil, fmt.Errorf("Number of spares must be ≥ 0, got %d", spares)
	}
	entries := stats.Entries()
	res := &Inventory{Items: make([]InventoryItem, 0, len(entries))}
	for _, usage := range entries {
		if usage.Index < 0 || usage.Index >= len(p) {
			return nil, fmt.Errorf("Palette index %d not in palette of size %d", usage.Index, len(p))
		}
		entry := p[usage.Index]
		res.Items = append(res.Items, InventoryItem{
			ItemType:  ItemTypePart,
			ItemID:    entry.PartID,
			Color:     entry.ColorID,
			MinQty:    usage.Count + spares,
			Condition: ConditionAny,
		})
	}
	return res, nil
}

// TotalQuantity returns the sum of all minimum quantities.
func (inv *Inventory) TotalQuantity() int {
	res := 0
	for _, item := range inv.Items {
		res += item.MinQty
	}
	return res
}

// WriteXML writes the inventory as xml (without xml declaration).
func (inv *Inventory) WriteXML(w io.Writer) error {
	enc := xml.NewEncoder(w)
	if err := enc.Encode(inv); err != nil {
		return err
	}
	return enc.Flush()
}

// WriteInventoryFile writes the inventory as xml to the given file.
func (inv *Inventory) WriteInventoryFile(path string) (err error) {
	f, createErr := os.Create(path)
	if createErr != nil {
		return createErr
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return inv.WriteXML(f)
}

// ParseInventory reads an inventory written by WriteXML.
func ParseInventory(r io.Reader) (*Inventory, error) {
	var res Inventory
	if err := xml.NewDecoder(r).Decode(&res); err != nil {
		return nil, err
	}
	if res.XMLName.Local != "INVENTORY" {
		return nil, errors.New("Invalid inventory: root element must be INVENTORY")
	}
	return &res, nil
}

// WriteSummary writes a human readable summary of the stats, for example:
//
//	Colors (2 colors, 3 tiles):
//	Red: 2
//	Blue: 1
//
// Colors are sorted by count in descending order.
func WriteSummary(w io.Writer, stats *UsageStats, p Palette) error {
	if _, err := fmt.Fprintf(w, "Colors (%d colors, %d tiles):\n", stats.Len(), stats.Total()); err != nil {
		return err
	}
	for _, usage := range stats.Sorted() {
		if _, err := fmt.Fprintln(w, p[usage.Index].Name+": "+strconv.Itoa(usage.Count)); err != nil {
			return err
		}
	}
	return nil
}
