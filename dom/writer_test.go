package dom

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerRow(cells ...string) *TableRow {
	row := NewTableRow()
	for _, c := range cells {
		row.AppendEntry(NewTableEntry(NewText(c)))
	}
	return row
}

func TestTableSerialization(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.dom")
	defer teardown()
	//
	table := NewTable()
	table.SetHeader(headerRow("Name", "Qty", "Price", "Note"))
	table.AppendRow(headerRow("tea", "2", "4.50", "loose"))
	table.SetAlignment(1, AlignCenter)
	table.SetAlignment(2, AlignRight)
	//
	lines := strings.Split(table.String(), "\n")
	require.Equal(t, 3, len(lines))
	assert.Equal(t, "| Name | Qty | Price | Note  |", lines[0])
	assert.Equal(t, "| ---- | :-: | ----: | ----- |", lines[1])
	assert.Equal(t, "| tea  |  2  |  4.50 | loose |", lines[2])
}

func TestTableEntryRowBackPointer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.dom")
	defer teardown()
	//
	row := NewTableRow()
	entry := NewTableEntry(NewText("x"))
	row.AppendEntry(entry)
	assert.Equal(t, row, entry.Row())
}

func TestDisplayWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.dom")
	defer teardown()
	//
	assert.Equal(t, 5, displayWidth("hello"))
	assert.Equal(t, 4, displayWidth("世界")) // East-Asian wide, 2 cells each
	assert.Equal(t, 4, displayWidth("4.50")) // keycap bases are 1 cell, not emoji-wide
	assert.Equal(t, 3, displayWidth("#1*"))
	assert.Equal(t, 0, displayWidth(""))
}

func TestQuoteSerialization(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.dom")
	defer teardown()
	//
	q := NewBlockQuote(NewText("This is a quote"))
	assert.Equal(t, "> This is a quote", q.String())
	//
	q = NewBlockQuote(
		NewParagraph(NewText("Para 1")),
		NewParagraph(NewText("Para 2")),
	)
	assert.Equal(t, "> Para 1\n>\n> Para 2", q.String())
}
