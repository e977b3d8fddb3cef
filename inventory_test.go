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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redBlueStats() *UsageStats {
	stats := NewUsageStats()
	stats.Add(0, 1)
	stats.Add(1, 3)
	return stats
}

func TestExportInventory(t *testing.T) {
	palette := Palette{testRed, testBlue}
	inv, err := ExportInventory(redBlueStats(), palette, 2)
	require.NoError(t, err)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, InventoryItem{ItemType: "P", ItemID: "3024", Color: "5", MinQty: 3, Condition: "X"}, inv.Items[0])
	assert.Equal(t, InventoryItem{ItemType: "P", ItemID: "3024", Color: "7", MinQty: 5, Condition: "X"}, inv.Items[1])
	assert.Equal(t, 8, inv.TotalQuantity())

	var buf bytes.Buffer
	require.NoError(t, inv.WriteXML(&buf))
	expected := "<INVENTORY>" +
		"<ITEM><ITEMTYPE>P</ITEMTYPE><ITEMID>3024</ITEMID><COLOR>5</COLOR><MINQTY>3</MINQTY><CONDITION>X</CONDITION></ITEM>" +
		"<ITEM><ITEMTYPE>P</ITEMTYPE><ITEMID>3024</ITEMID><COLOR>7</COLOR><MINQTY>5</MINQTY><CONDITION>X</CONDITION></ITEM>" +
		"</INVENTORY>"
	assert.Equal(t, expected, buf.String())
}

func TestExportInventoryErrors(t *testing.T) {
	_, err := ExportInventory(redBlueStats(), Palette{testRed, testBlue}, -1)
	assert.Error(t, err)
	_, err = ExportInventory(redBlueStats(), Palette{testRed}, 0)
	assert.Error(t, err)
}

func TestExportInventoryEmpty(t *testing.T) {
	inv, err := ExportInventory(NewUsageStats(), Palette{testRed}, 3)
	require.NoError(t, err)
	assert.Empty(t, inv.Items)
	assert.Equal(t, 0, inv.TotalQuantity())
}

func TestInventoryRoundTrip(t *testing.T) {
	palette := DefaultPalette()
	stats := NewUsageStats()
	stats.Add(4, 10)
	stats.Add(0, 7)
	stats.Add(32, 1)
	inv, err := ExportInventory(stats, palette, 0)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bricklink.xml")
	require.NoError(t, inv.WriteInventoryFile(path))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	parsed, err := ParseInventory(f)
	require.NoError(t, err)

	require.Len(t, parsed.Items, 3)
	for i, usage := range stats.Entries() {
		item := parsed.Items[i]
		assert.Equal(t, palette[usage.Index].ColorID, item.Color)
		assert.Equal(t, palette[usage.Index].PartID, item.ItemID)
		assert.Equal(t, usage.Count, item.MinQty)
		assert.Equal(t, ConditionAny, item.Condition)
		assert.Equal(t, ItemTypePart, item.ItemType)
	}
	assert.Equal(t, stats.Total(), parsed.TotalQuantity())
}

func TestParseInventoryInvalid(t *testing.T) {
	_, err := ParseInventory(strings.NewReader("<WANTED></WANTED>"))
	assert.Error(t, err)
	_, err = ParseInventory(strings.NewReader("<INVENTORY>"))
	assert.Error(t, err)
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, redBlueStats(), Palette{testRed, testBlue}))
	assert.Equal(t, "Colors (2 colors, 4 tiles):\nBlue: 3\nRed: 1\n", buf.String())
}
