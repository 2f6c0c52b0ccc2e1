package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/mdown/core/option"
	"github.com/npillmayer/mdown/dom"
)

// build maps one raw group to exactly one node. Lists and tables construct
// multi-level subtrees internally; everything else is a single node with
// tokenized inline content.
func (p *parser) build(g group) dom.Node {
	switch g.typ {
	case gParagraph:
		return p.buildParagraph(g.lines)
	case gHeading:
		return p.buildHeading(g.lines[0])
	case gCode:
		return p.buildCode(g.lines)
	case gIndentCode:
		return dom.NewBlockCode(strings.Join(g.lines, "\n"), "")
	case gLatex:
		return p.buildLatex(g.lines)
	case gHTML:
		return dom.NewInlineHTML(p.tokenize(strings.Join(g.lines, "\n"), true, true)...)
	case gQuote:
		return p.buildQuote(g.lines)
	case gTOC:
		return dom.TableOfContents{}
	case gHRule:
		return dom.HorizontalRule{}
	case gList:
		return p.buildList(g.lines)
	case gTable:
		return p.buildTable(g.lines)
	}
	tracer().Errorf("builder cannot map group type %s", g.typ)
	return nil
}

func (p *parser) buildParagraph(lines []string) dom.Node {
	children := p.tokenize(strings.Join(lines, "\n"), true, false)
	if len(children) == 0 {
		return nil
	}
	return dom.NewParagraph(children...)
}

// buildHeading splits the leading run of '#' characters off; its count is
// the heading level, clamped to 1…6.
func (p *parser) buildHeading(line string) dom.Node {
	count := 0
	for count < len(line) && line[count] == '#' {
		count++
	}
	level := count
	if level > 6 {
		level = 6
	}
	children := p.tokenize(line[count:], false, false)
	return dom.NewHeading(level, children...)
}

// buildCode splits the fence line's trailing token off as the language, if
// it is a single word, and joins the remaining lines as code content.
func (p *parser) buildCode(lines []string) dom.Node {
	language := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[0]), "```"))
	if strings.ContainsAny(language, " \t") {
		language = ""
	}
	body := lines[1:]
	if n := len(body); n > 0 && strings.HasPrefix(strings.TrimSpace(body[n-1]), "```") {
		body = body[:n-1]
	}
	return dom.NewBlockCode(strings.Join(body, "\n"), language)
}

func (p *parser) buildLatex(lines []string) dom.Node {
	first := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[0]), "$$"))
	body := lines[1:]
	if n := len(body); n > 0 && strings.HasPrefix(strings.TrimSpace(body[n-1]), "$$") {
		body = body[:n-1]
	}
	if first != "" {
		body = append([]string{first}, body...)
	}
	return dom.NewLatexDisplay(strings.Join(body, "\n"))
}

// buildQuote re-parses the dequoted text recursively. A quote of exactly
// one paragraph splices the paragraph's children up one level.
func (p *parser) buildQuote(lines []string) dom.Node {
	dequoted := make([]string, len(lines))
	for i, line := range lines {
		dequoted[i] = stripQuotePrefix(line)
	}
	blocks := p.nested().parseBlocks(strings.Join(dequoted, "\n"))
	if len(blocks) == 1 {
		if para, ok := blocks[0].(*dom.Paragraph); ok {
			return dom.NewBlockQuote(para.Children()...)
		}
	}
	return dom.NewBlockQuote(blocks...)
}

func stripQuotePrefix(line string) string {
	line = strings.TrimPrefix(line, ">")
	if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
		line = line[1:]
	}
	return line
}

// --- List reconstruction ---------------------------------------------------

// rawEntry is one raw list item: its marker line plus all merged
// continuation lines, not yet parsed.
type rawEntry struct {
	indent  int // leading whitespace width of the marker line
	ordered bool
	number  int // numeric marker value, ordered markers only
	text    string
}

var checkboxPat = regexp.MustCompile(`^\[([ xX])\](?:[ \t]+|$)`)

// buildList reconstructs a possibly nested list from a raw group. A new raw
// entry starts at every marker line; other lines merge into the current
// entry. Nesting levels derive from indentation (two spaces per level) and
// are tracked in a per-level array of the most recent entry.
func (p *parser) buildList(lines []string) dom.Node {
	entries := splitRawEntries(lines)
	if len(entries) == 0 {
		return p.buildParagraph(lines)
	}
	root := dom.NewList(entries[0].ordered, entries[0].number)
	var tracking []*dom.ListEntry
	for i, re := range entries {
		level := re.indent / 2
		if i == 0 {
			level = 0
		}
		// fall back to the closest ancestor level actually present
		for level > 0 && (level-1 >= len(tracking) || tracking[level-1] == nil) {
			level--
		}
		entry := p.buildListEntry(re)
		if level == 0 {
			root.AppendEntry(entry)
			tracking = []*dom.ListEntry{entry}
			continue
		}
		parent := tracking[level-1]
		subs := parent.SubLists()
		var sub *dom.List
		if len(subs) == 0 || subs[len(subs)-1].Ordered != re.ordered {
			// a change in orderedness starts a new sub-list
			sub = dom.NewList(re.ordered, re.number)
			parent.AppendSubList(sub)
		} else {
			sub = subs[len(subs)-1]
		}
		sub.AppendEntry(entry)
		tracking = append(tracking[:level], entry)
	}
	return root
}

// buildListEntry extracts the optional checkbox token and recursively
// parses the entry text as nested blocks.
func (p *parser) buildListEntry(re rawEntry) *dom.ListEntry {
	text := re.text
	checked := option.Bool()
	if p.cfg.Checkbox {
		if m := checkboxPat.FindStringSubmatch(text); m != nil {
			checked = option.SomeBool(m[1] != " ")
			text = text[len(m[0]):]
		}
	}
	blocks := p.nested().parseBlocks(text)
	return dom.NewListEntry(checked, blocks...)
}

func splitRawEntries(lines []string) []rawEntry {
	var entries []rawEntry
	for _, line := range lines {
		if m := listMarkerPat.FindStringSubmatch(line); m != nil {
			e := rawEntry{
				indent:  indentWidth(line),
				ordered: isOrderedMarker(m[2]),
				text:    m[3],
			}
			if e.ordered {
				e.number, _ = strconv.Atoi(strings.TrimSuffix(m[2], "."))
			}
			entries = append(entries, e)
			continue
		}
		if len(entries) == 0 {
			continue // stray lines before the first marker
		}
		last := &entries[len(entries)-1]
		last.text += "\n" + dedent(line, last.indent+2)
	}
	return entries
}

// dedent removes up to width leading whitespace columns from a continuation
// line.
func dedent(line string, width int) string {
	w := 0
	i := 0
	for i < len(line) && w < width {
		switch line[i] {
		case ' ':
			w++
		case '\t':
			w += 2
		default:
			return line[i:]
		}
		i++
	}
	return line[i:]
}

// --- Table parsing ---------------------------------------------------------

// buildTable converts a raw table group. The second line is the alignment
// row and is consumed, not emitted. A group without a separator degrades to
// a paragraph.
func (p *parser) buildTable(lines []string) dom.Node {
	if len(lines) < 2 {
		return p.buildParagraph(lines)
	}
	table := dom.NewTable()
	for i, line := range lines {
		if i == 1 {
			for col, cell := range splitTableRow(line) {
				table.SetAlignment(col, alignmentOf(strings.TrimSpace(cell)))
			}
			continue
		}
		row := dom.NewTableRow()
		for _, cell := range splitTableRow(line) {
			children := p.tokenize(strings.TrimSpace(cell), false, false)
			row.AppendEntry(dom.NewTableEntry(children...))
		}
		if i == 0 {
			table.SetHeader(row)
		} else {
			table.AppendRow(row)
		}
	}
	return table
}

// splitTableRow splits a table line on '|', trimming the one leading and
// one trailing empty cell produced by leading/trailing pipes.
func splitTableRow(line string) []string {
	cells := strings.Split(line, "|")
	if len(cells) > 0 && strings.TrimSpace(cells[0]) == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && strings.TrimSpace(cells[len(cells)-1]) == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

// alignmentOf derives a column alignment from the leftmost and rightmost
// characters of an alignment-row cell: --, :-, :: or -:.
func alignmentOf(cell string) dom.Alignment {
	if len(cell) < 2 {
		return dom.AlignNone
	}
	left := cell[0] == ':'
	right := cell[len(cell)-1] == ':'
	switch {
	case left && right:
		return dom.AlignCenter
	case left:
		return dom.AlignLeft
	case right:
		return dom.AlignRight
	}
	return dom.AlignNone
}
