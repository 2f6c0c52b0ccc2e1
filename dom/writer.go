package dom

import (
	"strings"
	"sync"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
)

// Markdown serialization of tables pads every column to a uniform display
// width, so the emitted source stays readable in a monospaced editor. Widths
// are measured per grapheme cluster with East-Asian width classes (UAX#11),
// not per byte or rune. The padding is cosmetic: cell content is trimmed by
// the parser, so width-aligned output re-parses to an equal tree.

var setupGraphemes sync.Once

// displayWidth measures the display width of s in monospace cells.
func displayWidth(s string) int {
	setupGraphemes.Do(func() {
		grapheme.SetupGraphemeClasses()
	})
	onGraphemes := grapheme.NewBreaker(1)
	splitter := segment.NewSegmenter(onGraphemes)
	splitter.Init(strings.NewReader(s))
	w := 0
	for splitter.Next() {
		frag := splitter.Bytes()
		// UAX#11 classifies keycap bases (digits, '#', '*') as emoji and
		// would give them width 2. A single ASCII byte always occupies
		// one cell.
		if len(frag) == 1 && frag[0] < 0x80 {
			w++
			continue
		}
		w += uax11.Width(frag, uax11.LatinContext)
	}
	return w
}

// pad pads cell content to width w according to the column alignment.
func pad(s string, w int, align Alignment) string {
	fill := w - displayWidth(s)
	if fill <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", fill) + s
	case AlignCenter:
		left := fill / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", fill-left)
	}
	return s + strings.Repeat(" ", fill)
}

// alignMarker encodes a column alignment as an alignment-row cell of
// width w: `---`, `:--`, `:-:` or `--:`.
func alignMarker(align Alignment, w int) string {
	switch align {
	case AlignLeft:
		return ":" + strings.Repeat("-", w-1)
	case AlignCenter:
		return ":" + strings.Repeat("-", w-2) + ":"
	case AlignRight:
		return strings.Repeat("-", w-1) + ":"
	}
	return strings.Repeat("-", w)
}

func (t *Table) String() string {
	cols := t.Columns()
	if cols == 0 {
		return ""
	}
	cells := make([][]string, len(t.rows))
	widths := make([]int, cols)
	for i := range widths {
		widths[i] = 3 // room for an alignment marker
	}
	for i, row := range t.rows {
		cells[i] = make([]string, cols)
		for j := 0; j < cols; j++ {
			if j < len(row.entries) {
				cells[i][j] = row.entries[j].String()
			}
			if w := displayWidth(cells[i][j]); w > widths[j] {
				widths[j] = w
			}
		}
	}
	var sb strings.Builder
	for i := range cells {
		writeTableLine(&sb, cells[i], widths, t)
		if i == 0 {
			// alignment row after the header
			markers := make([]string, cols)
			for j := 0; j < cols; j++ {
				markers[j] = alignMarker(t.Alignment(j), widths[j])
			}
			sb.WriteString("\n")
			sb.WriteString("| " + strings.Join(markers, " | ") + " |")
		}
		if i < len(cells)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func writeTableLine(sb *strings.Builder, cells []string, widths []int, t *Table) {
	padded := make([]string, len(cells))
	for j, cell := range cells {
		padded[j] = pad(cell, widths[j], t.Alignment(j))
	}
	sb.WriteString("| " + strings.Join(padded, " | ") + " |")
}
