package dom

import (
	"strconv"
	"strings"

	"github.com/npillmayer/mdown/core"
	"github.com/npillmayer/mdown/core/option"
)

// Heading is a section heading with a level of 1 to 6.
type Heading struct {
	BlockElement
	Level int
}

// NewHeading creates a heading node. Levels outside of 1…6 are a programmer
// error and panic with an application error.
func NewHeading(level int, children ...Node) *Heading {
	if level < 1 || level > 6 {
		panic(core.Error(core.EINVALID, "heading level %d outside of 1…6", level))
	}
	return &Heading{
		BlockElement: newBlockElement(TypeHeading, false, children),
		Level:        level,
	}
}

func (h *Heading) String() string {
	return strings.Repeat("#", h.Level) + " " + childrenMarkdown(h.children)
}

// Paragraph is a run of inline content.
type Paragraph struct {
	BlockElement
}

// NewParagraph creates a paragraph node.
func NewParagraph(children ...Node) *Paragraph {
	return &Paragraph{newBlockElement(TypeParagraph, true, children)}
}

// BlockCode is a fenced or indented code block.
type BlockCode struct {
	Code     string
	Language string
}

// NewBlockCode creates a code block.
func NewBlockCode(code, language string) *BlockCode {
	return &BlockCode{Code: code, Language: language}
}

func (c *BlockCode) Type() NodeType { return TypeBlockCode }

func (c *BlockCode) IsBlock() bool { return true }

func (c *BlockCode) PlainText() string { return c.Code }

func (c *BlockCode) String() string {
	return "```" + c.Language + "\n" + c.Code + "\n```"
}

// BlockQuote is a quoted block. Its children are block nodes, except that a
// quote of a single paragraph holds that paragraph's inline children
// directly.
type BlockQuote struct {
	BlockElement
}

// NewBlockQuote creates a quote block.
func NewBlockQuote(children ...Node) *BlockQuote {
	return &BlockQuote{newBlockElement(TypeBlockQuote, true, children)}
}

func (q *BlockQuote) String() string {
	inner := ""
	for i, c := range q.children {
		if i > 0 && c.IsBlock() {
			inner += "\n\n"
		}
		inner += c.String()
	}
	lines := strings.Split(inner, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	return strings.Join(lines, "\n")
}

// LatexDisplay is a $$-fenced display math block.
type LatexDisplay struct {
	Code string
}

// NewLatexDisplay creates a display math block.
func NewLatexDisplay(code string) *LatexDisplay {
	return &LatexDisplay{Code: code}
}

func (l *LatexDisplay) Type() NodeType { return TypeLatexDisplay }

func (l *LatexDisplay) IsBlock() bool { return true }

func (l *LatexDisplay) PlainText() string { return l.Code }

func (l *LatexDisplay) String() string { return "$$\n" + l.Code + "\n$$" }

// HorizontalRule is a thematic break. It is a stateless value.
type HorizontalRule struct{}

func (r HorizontalRule) Type() NodeType { return TypeHorizontalRule }

func (r HorizontalRule) IsBlock() bool { return true }

func (r HorizontalRule) PlainText() string { return "" }

func (r HorizontalRule) String() string { return "---" }

func (r HorizontalRule) MarshalJSON() ([]byte, error) {
	return marshalTagged(tagged{Type: TypeHorizontalRule.Name()})
}

// TableOfContents is a placeholder block, written [[toc]]. It carries no
// content of its own; Document.TableOfContents materializes a list from the
// document's headings on demand.
type TableOfContents struct{}

func (t TableOfContents) Type() NodeType { return TypeTableOfContents }

func (t TableOfContents) IsBlock() bool { return true }

func (t TableOfContents) PlainText() string { return "" }

func (t TableOfContents) String() string { return "[[toc]]" }

func (t TableOfContents) MarshalJSON() ([]byte, error) {
	return marshalTagged(tagged{Type: TypeTableOfContents.Name()})
}

// --- Lists -----------------------------------------------------------------

// List is an ordered or unordered list of entries. Ordered lists start
// numbering at Start, which defaults to 1.
type List struct {
	Ordered bool
	Start   int
	entries []*ListEntry
}

// NewList creates an empty list. start is ignored for unordered lists.
func NewList(ordered bool, start int) *List {
	if !ordered || start < 1 {
		start = 1
	}
	return &List{Ordered: ordered, Start: start}
}

func (l *List) Type() NodeType { return TypeList }

func (l *List) IsBlock() bool { return true }

// Entries returns the list's entries in document order.
func (l *List) Entries() []*ListEntry {
	return l.entries
}

// AppendEntry appends an entry to the list.
func (l *List) AppendEntry(e *ListEntry) {
	if e != nil {
		l.entries = append(l.entries, e)
	}
}

func (l *List) PlainText() string {
	var sb strings.Builder
	for _, e := range l.entries {
		sb.WriteString(e.PlainText())
		sb.WriteString("\n")
	}
	return sb.String()
}

func (l *List) String() string {
	return l.indentedString("")
}

func (l *List) indentedString(indent string) string {
	var sb strings.Builder
	for i, e := range l.entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		marker := "- "
		if l.Ordered {
			marker = strconv.Itoa(l.Start+i) + ". "
		}
		sb.WriteString(indent)
		sb.WriteString(marker)
		sb.WriteString(e.entryString(indent))
	}
	return sb.String()
}

// ListEntry is a single list item: inline or block content, an optional
// tri-state checkbox, and any number of nested sub-lists. All sub-lists keep
// uniform orderedness; a change in orderedness starts a new sub-list.
type ListEntry struct {
	BlockElement
	Checked  option.BoolT
	subLists []*List
}

// NewListEntry creates a list entry. checked is the tri-state checkbox
// state; option.Bool() leaves the entry checkbox-less.
func NewListEntry(checked option.BoolT, children ...Node) *ListEntry {
	return &ListEntry{
		BlockElement: newBlockElement(TypeListEntry, true, children),
		Checked:      checked,
	}
}

// SubLists returns the entry's nested lists, in document order.
func (e *ListEntry) SubLists() []*List {
	return e.subLists
}

// AppendSubList appends a nested list to the entry.
func (e *ListEntry) AppendSubList(l *List) {
	if l != nil {
		e.subLists = append(e.subLists, l)
	}
}

func (e *ListEntry) PlainText() string {
	s := innerTextString(e.children)
	for _, sub := range e.subLists {
		s += "\n" + sub.PlainText()
	}
	return s
}

func (e *ListEntry) String() string {
	return e.entryString("")
}

func (e *ListEntry) entryString(indent string) string {
	var sb strings.Builder
	c, _ := e.Checked.Match(option.Maybe{
		option.None: "",
		option.Some: checkboxMarker(e.Checked),
	})
	sb.WriteString(c.(string))
	for i, child := range e.children {
		if i > 0 && child.IsBlock() {
			sb.WriteString("\n" + indent + "  ")
		}
		sb.WriteString(strings.ReplaceAll(child.String(), "\n", "\n"+indent+"  "))
	}
	for _, sub := range e.subLists {
		sb.WriteString("\n")
		sb.WriteString(sub.indentedString(indent + "  "))
	}
	return sb.String()
}

func checkboxMarker(checked option.BoolT) string {
	if checked.Unwrap() {
		return "[x] "
	}
	return "[ ] "
}

// --- Tables ----------------------------------------------------------------

// Alignment is a table column alignment.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "none"
}

// Table is a grid of rows. Row 0 is always the header row; NewTable
// synthesizes an empty one. Column alignments are carried per table.
type Table struct {
	rows   []*TableRow
	aligns []Alignment
}

// NewTable creates a table with an empty header row.
func NewTable() *Table {
	return &Table{rows: []*TableRow{NewTableRow()}}
}

func (t *Table) Type() NodeType { return TypeTable }

func (t *Table) IsBlock() bool { return true }

// Rows returns the table's rows. Row 0 is the header row.
func (t *Table) Rows() []*TableRow {
	return t.rows
}

// Header returns the header row.
func (t *Table) Header() *TableRow {
	return t.rows[0]
}

// AppendRow appends a body row.
func (t *Table) AppendRow(row *TableRow) {
	if row != nil {
		t.rows = append(t.rows, row)
	}
}

// SetHeader replaces the synthesized header row.
func (t *Table) SetHeader(row *TableRow) {
	if row != nil {
		t.rows[0] = row
	}
}

// Alignment returns the alignment of column col, AlignNone if unset.
func (t *Table) Alignment(col int) Alignment {
	if col < 0 || col >= len(t.aligns) {
		return AlignNone
	}
	return t.aligns[col]
}

// SetAlignment sets the alignment of column col.
func (t *Table) SetAlignment(col int, a Alignment) {
	for col >= len(t.aligns) {
		t.aligns = append(t.aligns, AlignNone)
	}
	t.aligns[col] = a
}

// Columns returns the widest column count over all rows.
func (t *Table) Columns() int {
	cols := 0
	for _, row := range t.rows {
		if len(row.entries) > cols {
			cols = len(row.entries)
		}
	}
	return cols
}

func (t *Table) PlainText() string {
	var sb strings.Builder
	for _, row := range t.rows {
		for i, e := range row.entries {
			if i > 0 {
				sb.WriteString("\t")
			}
			sb.WriteString(e.PlainText())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// TableRow is a single table row.
type TableRow struct {
	entries []*TableEntry
}

// NewTableRow creates an empty row.
func NewTableRow() *TableRow {
	return &TableRow{}
}

func (r *TableRow) Type() NodeType { return TypeTableRow }

func (r *TableRow) IsBlock() bool { return true }

// Entries returns the row's cells in column order.
func (r *TableRow) Entries() []*TableEntry {
	return r.entries
}

// AppendEntry appends a cell to the row and links it back to the row.
func (r *TableRow) AppendEntry(e *TableEntry) {
	if e != nil {
		e.row = r
		r.entries = append(r.entries, e)
	}
}

func (r *TableRow) PlainText() string {
	var sb strings.Builder
	for i, e := range r.entries {
		if i > 0 {
			sb.WriteString("\t")
		}
		sb.WriteString(e.PlainText())
	}
	return sb.String()
}

func (r *TableRow) String() string {
	cells := make([]string, len(r.entries))
	for i, e := range r.entries {
		cells[i] = e.String()
	}
	return "| " + strings.Join(cells, " | ") + " |"
}

// TableEntry is a single table cell, holding inline content without
// linebreaks. Every entry points back to its row.
type TableEntry struct {
	Element
	row *TableRow
}

// NewTableEntry creates a cell.
func NewTableEntry(children ...Node) *TableEntry {
	return &TableEntry{Element: newElement(TypeTableEntry, false, children)}
}

// Row returns the row this entry belongs to, nil if detached.
func (e *TableEntry) Row() *TableRow {
	return e.row
}

// --- Inline HTML -----------------------------------------------------------

// InlineHTML is a raw-markup passthrough block: a span of HTML source kept
// verbatim as tokenized inline content.
type InlineHTML struct {
	BlockElement
}

// NewInlineHTML creates a raw-markup block.
func NewInlineHTML(children ...Node) *InlineHTML {
	return &InlineHTML{newBlockElement(TypeInlineHTML, true, children)}
}

var _ Node = &Heading{}
var _ Node = &Paragraph{}
var _ Node = &BlockCode{}
var _ Node = &BlockQuote{}
var _ Node = &LatexDisplay{}
var _ Node = HorizontalRule{}
var _ Node = &List{}
var _ Node = &ListEntry{}
var _ Node = &Table{}
var _ Node = &TableRow{}
var _ Node = &TableEntry{}
var _ Node = &InlineHTML{}
var _ Node = TableOfContents{}
