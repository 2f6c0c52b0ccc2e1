package parse

import (
	"regexp"
	"strings"

	"github.com/npillmayer/mdown/core/option"
	"github.com/npillmayer/mdown/dom"
	"github.com/npillmayer/mdown/markup"
)

// The block grouper is a single forward scan over the source lines with one
// mutable open-group slot. Every line runs through an ordered rule chain;
// the first matching rule either accumulates the line into the open group,
// closes it, or emits a standalone group. Raw-markup spans (comments,
// balanced HTML elements) may end mid-line, in which case the remainder of
// the line re-enters the scan as a fresh line.

type groupType int

const (
	gNone groupType = iota
	gParagraph
	gCode
	gIndentCode
	gLatex
	gHTML
	gHeading
	gTOC
	gHRule
	gQuote
	gList
	gTable
)

func (t groupType) String() string {
	switch t {
	case gParagraph:
		return "paragraph"
	case gCode:
		return "code"
	case gIndentCode:
		return "indent-code"
	case gLatex:
		return "latex"
	case gHTML:
		return "html"
	case gHeading:
		return "heading"
	case gTOC:
		return "toc"
	case gHRule:
		return "hrule"
	case gQuote:
		return "quote"
	case gList:
		return "list"
	case gTable:
		return "table"
	}
	return "none"
}

// group is a classified, contiguous run of raw source lines, not yet
// converted to a node.
type group struct {
	typ     groupType
	lines   []string
	ordered bool // list groups: orderedness of the opening marker
}

var (
	hrulePat      = regexp.MustCompile(`^[ \t]*((-[ \t]*){3,}|(\*[ \t]*){3,}|(_[ \t]*){3,})$`)
	listMarkerPat = regexp.MustCompile(`^([ \t]*)([-*+]|[0-9]+\.)[ \t]+(.+)$`)
	alignCellPat  = regexp.MustCompile(`^:?-+:?$`)
	// definition lines, consumed by the grouper and never visible as blocks
	footnoteDefPat = regexp.MustCompile(`^\[\^([^\]\s]+)\]:[ \t]*(.*)$`)
	refDefPat      = regexp.MustCompile(`^\[([^\^\]][^\]]*)\]:[ \t]+([^\s]+)(?:[ \t]+"([^"]*)")?[ \t]*$`)
)

type scanner struct {
	p         *parser
	groups    []group
	open      group
	fenceOpen bool // inside ``` fence
	latexOpen bool // inside $$ fence
}

// scan classifies text into an ordered list of raw groups.
func (sc *scanner) scan(text string) []group {
	rest := text
	for rest != "" {
		line, tail, last := splitLine(rest)
		if consumed := sc.line(line, tail, last); consumed > 0 {
			rest = rest[consumed:]
			if strings.HasPrefix(rest, "\n") {
				rest = rest[1:]
			}
		} else {
			rest = tail
		}
	}
	sc.finish()
	return sc.groups
}

// splitLine splits off the first line. last is true only for a final line
// without a trailing newline: newline-terminated input ends in a regular
// line, so a fence closer there still closes.
func splitLine(text string) (line, tail string, last bool) {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx], text[idx+1:], false
	}
	return text, "", true
}

// line runs the rule chain on one line. It returns the number of raw bytes
// consumed for multi-line span rules, 0 if exactly the line was consumed.
func (sc *scanner) line(line, tail string, last bool) int {
	cfg := &sc.p.cfg
	trimmed := strings.TrimSpace(line)

	// open fences accumulate until their closer. A closer on a final line
	// without trailing newline counts as content, and an unterminated
	// fence degrades to a paragraph.
	if sc.fenceOpen {
		sc.open.lines = append(sc.open.lines, line)
		if strings.HasPrefix(trimmed, "```") && !last {
			sc.fenceOpen = false
			sc.closeOpen()
		}
		return 0
	}
	if sc.latexOpen {
		sc.open.lines = append(sc.open.lines, line)
		if strings.HasPrefix(trimmed, "$$") && !last {
			sc.latexOpen = false
			sc.closeOpen()
		}
		return 0
	}

	// (1) indentation-based code block
	if cfg.CodeBlockFromIndent && sc.open.typ != gList && trimmed != "" &&
		(strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t")) {
		sc.continueGroup(gIndentCode, stripCodeIndent(line))
		return 0
	}

	// (2) fenced code block
	if strings.HasPrefix(trimmed, "```") {
		sc.closeOpen()
		sc.open = group{typ: gCode, lines: []string{line}}
		sc.fenceOpen = true
		return 0
	}

	ltrim := strings.TrimLeft(line, " \t")
	offset := len(line) - len(ltrim)

	// (3) HTML comment span, possibly ending mid-line
	if strings.HasPrefix(ltrim, "<!--") {
		remaining := joinRemaining(ltrim, tail)
		if _, length, ok := markup.Comment(remaining); ok {
			sc.closeOpen()
			sc.emit(group{typ: gHTML, lines: strings.Split(remaining[:length], "\n")})
			tracer().Debugf("grouper found comment span of %d bytes", length)
			return offset + length
		}
	}

	// (4) single HTML element span with balanced open/close tags
	if strings.HasPrefix(ltrim, "<") {
		remaining := joinRemaining(ltrim, tail)
		if tag, ok := markup.ProbeTag(remaining); ok && tag.Kind != markup.CloseTag &&
			!sc.disallowedTag(tag.Name) {
			if tag.Kind == markup.SelfClosingTag || markup.IsVoid(tag.Name) {
				// no balance tracking for tags without a closing counterpart
				sc.closeOpen()
				sc.emit(group{typ: gHTML, lines: []string{remaining[:tag.Length]}})
				return offset + tag.Length
			}
			if length, ok := balanceSpan(remaining, tag.Name); ok {
				sc.closeOpen()
				sc.emit(group{typ: gHTML, lines: strings.Split(remaining[:length], "\n")})
				tracer().Debugf("grouper found <%s> span of %d bytes", tag.Name, length)
				return offset + length
			}
			// never rebalances: not raw markup, degrade to text
		}
	}

	// (5) LaTeX display fence
	if cfg.Latex && strings.HasPrefix(trimmed, "$$") {
		sc.closeOpen()
		sc.open = group{typ: gLatex, lines: []string{line}}
		sc.latexOpen = true
		return 0
	}

	// (6) heading, always a standalone one-line group
	if strings.HasPrefix(line, "#") {
		sc.closeOpen()
		sc.emit(group{typ: gHeading, lines: []string{line}})
		return 0
	}

	// (7) [[toc]] marker line
	if cfg.TableOfContents && strings.EqualFold(trimmed, "[[toc]]") {
		sc.closeOpen()
		sc.emit(group{typ: gTOC, lines: []string{line}})
		return 0
	}

	// (8) horizontal rule
	if trimmed != "" && hrulePat.MatchString(line) {
		sc.closeOpen()
		sc.emit(group{typ: gHRule, lines: []string{line}})
		return 0
	}

	// (9) blockquote; a bare '>' continues a quote but cannot open one
	if isQuoteLine(line) {
		if sc.open.typ == gQuote {
			sc.open.lines = append(sc.open.lines, line)
			return 0
		}
		if trimmed != ">" {
			sc.closeOpen()
			sc.open = group{typ: gQuote, lines: []string{line}}
			return 0
		}
	}

	// (10) list items and list continuation
	if cfg.List {
		m := listMarkerPat.FindStringSubmatch(line)
		if sc.open.typ == gList {
			if m != nil {
				ordered := isOrderedMarker(m[2])
				if ordered != sc.open.ordered && indentWidth(line) < 2 {
					// orderedness changed at top level: new list group
					sc.closeOpen()
					sc.open = group{typ: gList, ordered: ordered, lines: []string{line}}
				} else {
					sc.open.lines = append(sc.open.lines, line)
				}
				return 0
			}
			if trimmed == "" || strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
				sc.open.lines = append(sc.open.lines, line)
				return 0
			}
		} else if m != nil {
			sc.closeOpen()
			sc.open = group{typ: gList, ordered: isOrderedMarker(m[2]), lines: []string{line}}
			return 0
		}
	}

	// (11) table, only if the next line is a valid alignment row
	if cfg.Table && strings.Contains(line, "|") {
		if sc.open.typ == gTable {
			sc.open.lines = append(sc.open.lines, line)
			return 0
		}
		if next, _, _ := splitLine(tail); tail != "" && isAlignmentRow(next) {
			sc.closeOpen()
			sc.open = group{typ: gTable, lines: []string{line}}
			return 0
		}
	}

	// (12) a blank line unconditionally closes any open group
	if trimmed == "" {
		sc.closeOpen()
		return 0
	}

	// (13) definition lines are consumed into the side tables, never blocks
	if m := footnoteDefPat.FindStringSubmatch(line); m != nil {
		if sc.p.collect {
			content := sc.p.nested().tokenize(m[2], true, false)
			sc.p.doc.StoreFootnote(m[1], content)
		}
		return 0
	}
	if m := refDefPat.FindStringSubmatchIndex(line); m != nil {
		if sc.p.collect {
			tooltip := option.Nothing()
			if m[6] >= 0 { // the quoted title is optional
				tooltip = option.Something(line[m[6]:m[7]])
			}
			sc.p.doc.StoreReference(line[m[2]:m[3]], dom.Reference{
				URL:     line[m[4]:m[5]],
				Tooltip: tooltip,
			})
		}
		return 0
	}

	// (14) paragraph accumulation
	sc.continueGroup(gParagraph, line)
	return 0
}

// finish closes the scan. A still-open fence never got its closer and
// degrades to a paragraph.
func (sc *scanner) finish() {
	if sc.fenceOpen || sc.latexOpen {
		sc.open.typ = gParagraph
		sc.fenceOpen = false
		sc.latexOpen = false
	}
	sc.closeOpen()
}

func (sc *scanner) emit(g group) {
	tracer().Debugf("grouper emits %s group (%d lines)", g.typ, len(g.lines))
	sc.groups = append(sc.groups, g)
}

func (sc *scanner) closeOpen() {
	if sc.open.typ != gNone {
		sc.emit(sc.open)
		sc.open = group{}
	}
}

// continueGroup accumulates a line into the open group of the given type,
// closing a differently-typed open group first.
func (sc *scanner) continueGroup(typ groupType, line string) {
	if sc.open.typ != typ {
		sc.closeOpen()
		sc.open = group{typ: typ}
	}
	sc.open.lines = append(sc.open.lines, line)
}

func (sc *scanner) disallowedTag(name string) bool {
	for _, t := range sc.p.cfg.InlineHTML.DisallowedTags {
		if strings.EqualFold(t, name) {
			return true
		}
	}
	return false
}

// balanceSpan scans text for the point where the opener tag's balance
// returns to zero and returns the byte length of the span. Only the single
// opener tag name is tracked, not a full stack of names; interleaved
// distinct tags inside the span are ignored for balancing purposes.
func balanceSpan(text, name string) (int, bool) {
	depth := 0
	i := 0
	for i < len(text) {
		if text[i] == '<' {
			if tag, ok := markup.ProbeTag(text[i:]); ok {
				if tag.Name == name {
					switch tag.Kind {
					case markup.OpenTag:
						depth++
					case markup.CloseTag:
						depth--
						if depth == 0 {
							return i + tag.Length, true
						}
					}
				}
				i += tag.Length
				continue
			}
		}
		i++
	}
	return 0, false
}

// joinRemaining reconstructs the unscanned source text starting at a line
// fragment.
func joinRemaining(lineFragment, tail string) string {
	if tail == "" {
		return lineFragment
	}
	return lineFragment + "\n" + tail
}

func isQuoteLine(line string) bool {
	if !strings.HasPrefix(line, ">") {
		return false
	}
	return len(line) == 1 || line[1] == ' ' || line[1] == '\t'
}

func isOrderedMarker(marker string) bool {
	return strings.HasSuffix(marker, ".")
}

// indentWidth is the width of a line's leading whitespace, a tab counting
// as two spaces.
func indentWidth(line string) int {
	w := 0
	for _, c := range line {
		switch c {
		case ' ':
			w++
		case '\t':
			w += 2
		default:
			return w
		}
	}
	return w
}

// stripCodeIndent removes the code-block indentation prefix.
func stripCodeIndent(line string) string {
	if strings.HasPrefix(line, "\t") {
		return line[1:]
	}
	return strings.TrimPrefix(line, "    ")
}

// isAlignmentRow tests a line for being a table alignment-separator row:
// |-delimited cells, each of the form :?-+:?.
func isAlignmentRow(line string) bool {
	if !strings.Contains(line, "|") {
		return false
	}
	cells := splitTableRow(line)
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !alignCellPat.MatchString(strings.TrimSpace(c)) {
			return false
		}
	}
	return true
}
