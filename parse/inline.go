package parse

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/mdown/dom"
	"github.com/npillmayer/mdown/markup"
)

// The inline tokenizer converts one logical text span into an ordered
// sequence of inline nodes. It keeps a single pending-word accumulator
// which is flushed into a text node whenever a structural token fires or
// the input ends. At every position an ordered rule chain runs; unmatched
// input accumulates into the pending word.

type tokenizer struct {
	p       *parser
	input   string
	pos     int
	allowLB bool // explicit linebreaks permitted here
	raw     bool // raw-markup block mode: literal newlines, verbatim tags
	nodes   []dom.Node
	word    strings.Builder
}

// tokenize tokenizes one text span. In normal mode the span's outer
// whitespace is trimmed and character references are decoded on flush; raw
// mode keeps everything literal.
func (p *parser) tokenize(text string, allowLinebreaks bool, rawMode bool) []dom.Node {
	if !rawMode {
		text = strings.TrimSpace(text)
	}
	t := &tokenizer{p: p, input: text, allowLB: allowLinebreaks, raw: rawMode}
	t.run()
	return t.nodes
}

// sub tokenizes a nested span (emphasis content, link titles), inheriting
// the raw-markup mode.
func (t *tokenizer) sub(text string, allowLinebreaks bool) []dom.Node {
	return t.p.tokenize(text, allowLinebreaks, t.raw)
}

func (t *tokenizer) run() {
	for t.pos < len(t.input) {
		if t.tryEscape() || t.tryMarkup() || t.tryCode() || t.tryLatex() ||
			t.tryLinebreak() || t.tryNewline() || t.tryEmoji() || t.tryImage() ||
			t.tryFootnote() || t.tryLink() || t.trySpoiler() || t.tryStrikethrough() ||
			t.tryEmphasis() || t.tryHighlight() || t.tryAutolink() {
			continue
		}
		r, size := utf8.DecodeRuneInString(t.input[t.pos:])
		t.word.WriteRune(r)
		t.pos += size
	}
	t.flush()
}

// flush turns the pending word into a text node. Character references are
// decoded unless raw-markup mode keeps the text literal.
func (t *tokenizer) flush() {
	if t.word.Len() == 0 {
		return
	}
	s := t.word.String()
	t.word.Reset()
	if !t.raw {
		s = markup.Unescape(s)
	}
	t.nodes = append(t.nodes, dom.NewText(s))
}

// emit flushes the pending word and appends a structural node.
func (t *tokenizer) emit(n dom.Node) {
	t.flush()
	t.nodes = append(t.nodes, n)
}

func (t *tokenizer) rest() string {
	return t.input[t.pos:]
}

// --- Rule (1): backslash escapes -------------------------------------------

// tryEscape handles \xHH, \uHHHH and \UHHHHHHHH unicode escapes and the
// literal pass-through of any other escaped character.
func (t *tokenizer) tryEscape() bool {
	if !t.p.cfg.MetaControl.AllowEscape {
		return false
	}
	rest := t.rest()
	if rest[0] != '\\' || len(rest) < 2 {
		return false
	}
	digits := 0
	switch rest[1] {
	case 'x':
		digits = 2
	case 'u':
		digits = 4
	case 'U':
		digits = 8
	}
	if digits > 0 && len(rest) >= 2+digits {
		if v, err := strconv.ParseUint(rest[2:2+digits], 16, 32); err == nil {
			t.word.WriteRune(rune(v))
			t.pos += 2 + digits
			return true
		}
	}
	r, size := utf8.DecodeRuneInString(rest[1:])
	t.word.WriteRune(r)
	t.pos += 1 + size
	return true
}

// --- Rule (2): raw markup ---------------------------------------------------

// tryMarkup handles HTML comments, the <br> tag, and (in raw-markup mode)
// arbitrary tags, which are folded into the pending word verbatim.
func (t *tokenizer) tryMarkup() bool {
	rest := t.rest()
	if rest[0] != '<' {
		return false
	}
	if content, length, ok := markup.Comment(rest); ok {
		t.emit(dom.NewComment(content))
		t.pos += length
		return true
	}
	tag, ok := markup.ProbeTag(rest)
	if !ok {
		return false
	}
	if tag.Name == "br" && tag.Kind != markup.CloseTag {
		if t.allowLB {
			t.emit(dom.NewLinebreak())
		}
		t.pos += tag.Length
		return true
	}
	if t.raw {
		t.word.WriteString(rest[:tag.Length])
		t.pos += tag.Length
		return true
	}
	return false
}

// --- Rule (3): inline code --------------------------------------------------

func (t *tokenizer) tryCode() bool {
	rest := t.rest()
	if rest[0] != '`' {
		return false
	}
	if strings.HasPrefix(rest, "```") {
		if idx := strings.Index(rest[3:], "```"); idx >= 0 {
			t.emit(dom.NewInlineCode(rest[3 : 3+idx]))
			t.pos += idx + 6
			return true
		}
		return false
	}
	if idx := strings.IndexByte(rest[1:], '`'); idx >= 0 {
		t.emit(dom.NewInlineCode(rest[1 : 1+idx]))
		t.pos += idx + 2
		return true
	}
	return false
}

// --- Rule (4): inline LaTeX -------------------------------------------------

func (t *tokenizer) tryLatex() bool {
	if !t.p.cfg.Latex {
		return false
	}
	rest := t.rest()
	if rest[0] != '$' || strings.HasPrefix(rest, "$$") {
		return false
	}
	if idx := strings.IndexByte(rest[1:], '$'); idx > 0 {
		t.emit(dom.NewInlineLatex(rest[1 : 1+idx]))
		t.pos += idx + 2
		return true
	}
	return false
}

// --- Rules (5)+(6): linebreaks and newlines ---------------------------------

// tryLinebreak matches the explicit two-spaces-plus-newline linebreak.
func (t *tokenizer) tryLinebreak() bool {
	if !t.allowLB || !strings.HasPrefix(t.rest(), "  \n") {
		return false
	}
	t.emit(dom.NewLinebreak())
	t.pos += 3
	return true
}

// tryNewline handles a bare newline: an explicit linebreak if configured, a
// literal newline in raw-markup mode, a single space otherwise.
func (t *tokenizer) tryNewline() bool {
	if t.input[t.pos] != '\n' {
		return false
	}
	switch {
	case t.p.cfg.MetaControl.NewlineAsLinebreaks:
		t.emit(dom.NewLinebreak())
	case t.raw:
		t.word.WriteByte('\n')
	default:
		t.word.WriteByte(' ')
	}
	t.pos++
	return true
}

// --- Rule (7): emoji shortcodes ---------------------------------------------

var (
	emojiPat       = regexp.MustCompile(`^:([a-zA-Z0-9_+-]+):`)
	customEmojiPat = regexp.MustCompile(`^:~([a-zA-Z0-9_+-]+)~([a-zA-Z0-9_+-]+):`)
	skinTonePat    = regexp.MustCompile(`^:(skin-tone-[2-6]):`)
)

func (t *tokenizer) tryEmoji() bool {
	cfg := &t.p.cfg.Emoji
	if !cfg.Enabled || t.input[t.pos] != ':' {
		return false
	}
	rest := t.rest()
	if m := customEmojiPat.FindStringSubmatch(rest); m != nil {
		if cfg.Match != nil && !cfg.Match(m[1]) {
			return false
		}
		t.emit(dom.NewEmoji(m[1], m[2], true))
		t.pos += len(m[0])
		return true
	}
	m := emojiPat.FindStringSubmatch(rest)
	if m == nil {
		return false
	}
	id := m[1]
	if t.p.emojiDict != nil {
		if _, found := t.p.emojiDict.Find(id); !found {
			return false
		}
	}
	if cfg.Match != nil && !cfg.Match(id) {
		return false
	}
	length := len(m[0])
	variant := ""
	if cfg.SkinTones {
		if sm := skinTonePat.FindStringSubmatch(rest[length:]); sm != nil {
			variant = sm[1]
			length += len(sm[0])
		}
	}
	t.emit(dom.NewEmoji(id, variant, false))
	t.pos += length
	return true
}

// --- Rules (8)–(10): images, footnote references, links ---------------------

func (t *tokenizer) tryImage() bool {
	if !t.p.cfg.Image {
		return false
	}
	rest := t.rest()
	if rest[0] != '!' || len(rest) < 2 || rest[1] != '[' {
		return false
	}
	if t.p.cfg.Footnote && strings.HasPrefix(rest[1:], "[^") {
		return false // that is a footnote marker, not an image
	}
	span, ok := t.parseLinkSpan(t.pos + 1)
	if !ok {
		return false
	}
	link := t.linkFromSpan(span)
	if len(link.Children()) == 0 {
		// alt text defaults to the URL, or "Image" for embedded data
		alt := link.URL
		if strings.HasPrefix(alt, "data:") {
			alt = "Image"
		}
		if alt != "" {
			link.AppendChild(dom.NewText(alt))
		}
	}
	t.emit(dom.NewImage(link))
	t.pos += 1 + span.length
	return true
}

func (t *tokenizer) tryFootnote() bool {
	if !t.p.cfg.Footnote {
		return false
	}
	rest := t.rest()
	if !strings.HasPrefix(rest, "[^") {
		return false
	}
	idx := strings.IndexByte(rest, ']')
	if idx < 3 {
		return false
	}
	name := rest[2:idx]
	if strings.ContainsAny(name, " \t\n") {
		return false
	}
	t.emit(dom.NewFootnoteRef(name))
	t.pos += idx + 1
	return true
}

func (t *tokenizer) tryLink() bool {
	if !t.p.cfg.Link.Standard || t.input[t.pos] != '[' {
		return false
	}
	span, ok := t.parseLinkSpan(t.pos)
	if !ok {
		return false
	}
	t.emit(t.linkFromSpan(span))
	t.pos += span.length
	return true
}

// linkSpan is a successfully matched link at some input position.
type linkSpan struct {
	title   string
	url     string
	tooltip string
	refName string // set for reference-style links, already folded
	length  int    // bytes from the opening '['
}

// shortcutBoundary contains the characters which may follow a bare [title]
// shortcut reference.
const shortcutBoundary = "!\"':;?."

// parseLinkSpan matches a link span starting at input[start] == '['. The
// title scan tracks a signed bracket-nesting counter until it returns to
// -1; nested bracket pairs are permitted inside the title. The target is
// either (url "tooltip"), [reference], or — before whitespace, punctuation
// or end of input — a shortcut reference named like the title itself.
func (t *tokenizer) parseLinkSpan(start int) (linkSpan, bool) {
	input := t.input
	depth := 0
	i := start + 1
	for i < len(input) {
		switch input[i] {
		case '[':
			depth++
		case ']':
			depth--
		}
		if depth == -1 {
			break
		}
		i++
	}
	if i >= len(input) {
		return linkSpan{}, false
	}
	title := input[start+1 : i]
	after := i + 1
	if after < len(input) && input[after] == '(' {
		parens := 1
		j := after + 1
		for j < len(input) && parens > 0 {
			switch input[j] {
			case '(':
				parens++
			case ')':
				parens--
			}
			j++
		}
		if parens != 0 {
			return linkSpan{}, false
		}
		url, tooltip := splitLinkTarget(input[after+1 : j-1])
		return linkSpan{title: title, url: url, tooltip: tooltip, length: j - start}, true
	}
	if after < len(input) && input[after] == '[' {
		k := strings.IndexByte(input[after:], ']')
		if k < 0 {
			return linkSpan{}, false
		}
		name := input[after+1 : after+k]
		return linkSpan{title: title, refName: dom.FoldName(name), length: after + k + 1 - start}, true
	}
	if after >= len(input) || isShortcutBoundary(input[after]) {
		return linkSpan{title: title, refName: dom.FoldName(title), length: after - start}, true
	}
	return linkSpan{}, false
}

func isShortcutBoundary(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || strings.IndexByte(shortcutBoundary, c) >= 0
}

// splitLinkTarget splits a (…) link target on the first space into the URL
// and an optional tooltip, which must be fully quoted or is discarded.
func splitLinkTarget(target string) (url, tooltip string) {
	target = strings.TrimSpace(target)
	idx := strings.IndexByte(target, ' ')
	if idx < 0 {
		return target, ""
	}
	url = target[:idx]
	rest := strings.TrimSpace(target[idx+1:])
	if len(rest) >= 2 && rest[0] == '"' && rest[len(rest)-1] == '"' {
		tooltip = rest[1 : len(rest)-1]
	}
	return url, tooltip
}

func (t *tokenizer) linkFromSpan(span linkSpan) *dom.Link {
	title := t.sub(span.title, false)
	if span.refName != "" {
		return dom.NewRefLink(span.refName, title...)
	}
	return dom.NewLink(span.url, span.tooltip, title...)
}

// --- Rules (11)–(14): delimited spans ---------------------------------------

func (t *tokenizer) trySpoiler() bool {
	if !t.p.cfg.Spoiler || t.input[t.pos] != '|' {
		return false
	}
	return t.tryDelimited('|', 2, func(children []dom.Node) dom.Node {
		return dom.NewSpoiler(children...)
	})
}

func (t *tokenizer) tryStrikethrough() bool {
	if t.input[t.pos] != '~' {
		return false
	}
	return t.tryDelimited('~', 2, func(children []dom.Node) dom.Node {
		return dom.NewStrikethrough(children...)
	})
}

// tryEmphasis handles bold/italic via '*' and underline/italic via '_',
// trying the repeat-2 form before the repeat-1 form.
func (t *tokenizer) tryEmphasis() bool {
	c := t.input[t.pos]
	if c != '*' && c != '_' {
		return false
	}
	if c == '_' && t.p.cfg.Underline {
		if t.tryDelimited('_', 2, func(children []dom.Node) dom.Node {
			return dom.NewUnderline(children...)
		}) {
			return true
		}
	} else if t.tryDelimited(c, 2, func(children []dom.Node) dom.Node {
		return dom.NewBold(children...)
	}) {
		return true
	}
	return t.tryDelimited(c, 1, func(children []dom.Node) dom.Node {
		return dom.NewItalic(children...)
	})
}

func (t *tokenizer) tryHighlight() bool {
	if !t.p.cfg.Highlight || t.input[t.pos] != '=' {
		return false
	}
	return t.tryDelimited('=', 2, func(children []dom.Node) dom.Node {
		return dom.NewHighlight(children...)
	})
}

// tryDelimited matches one delimited span, tokenizes its content
// recursively and emits the built node. Nesting past maxEmphasisDepth fails
// immediately, leaving the delimiters literal.
func (t *tokenizer) tryDelimited(delim byte, repeat int, build func([]dom.Node) dom.Node) bool {
	if t.p.depth >= maxEmphasisDepth {
		return false
	}
	if !hasRun(t.input, t.pos, delim, repeat) {
		return false
	}
	content, length, ok := t.scanDelimited(delim, repeat)
	if !ok {
		return false
	}
	t.p.depth++
	children := t.sub(content, t.allowLB)
	t.p.depth--
	t.emit(build(children))
	t.pos += length
	return true
}

func hasRun(s string, pos int, delim byte, repeat int) bool {
	if pos+repeat > len(s) {
		return false
	}
	for i := 0; i < repeat; i++ {
		if s[pos+i] != delim {
			return false
		}
	}
	return true
}

func runLength(s string, pos int, delim byte) int {
	n := 0
	for pos+n < len(s) && s[pos+n] == delim {
		n++
	}
	return n
}

// scanDelimited scans forward for a closing delimiter run, skipping over
// well-formed link/image spans, whose brackets are not interpreted as
// delimiters. An exact run of the requested repeat closes the span. A
// longer run is remembered as a fallback close using its last repeat
// characters, the surplus staying inside the content; this resolves
// *a**b*-style ambiguity and the ***bold italic*** triple form, where a
// repeat-1 scan hitting exactly 3 closes immediately via the fallback.
func (t *tokenizer) scanDelimited(delim byte, repeat int) (content string, length int, ok bool) {
	input := t.input
	pos := t.pos
	contentStart := pos + repeat
	fallbackEnd := -1 // content end of the remembered fallback close
	fallbackLen := -1
	i := contentStart
	for i < len(input) {
		c := input[i]
		if c == '[' {
			if span, ok := t.parseLinkSpan(i); ok {
				i += span.length
				continue
			}
		}
		if c == '!' && i+1 < len(input) && input[i+1] == '[' {
			if span, ok := t.parseLinkSpan(i + 1); ok {
				i += 1 + span.length
				continue
			}
		}
		if c == delim {
			r := runLength(input, i, delim)
			if r == repeat {
				content = input[contentStart:i]
				if content == "" {
					return "", 0, false
				}
				return content, i + repeat - pos, true
			}
			if r > repeat {
				fallbackEnd = i + r - repeat
				fallbackLen = i + r - pos
				if repeat == 1 && r == 3 {
					if content = input[contentStart:fallbackEnd]; content != "" {
						return content, fallbackLen, true
					}
				}
			}
			i += r
			continue
		}
		i++
	}
	if fallbackEnd > contentStart {
		return input[contentStart:fallbackEnd], fallbackLen, true
	}
	return "", 0, false
}

// --- Rule (15): autolinks ---------------------------------------------------

var autolinkPat = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+.-]*):([^\s]+)`)

// autolinkSchemes may autolink without a //-style authority.
var autolinkSchemes = map[string]bool{"file": true, "mailto": true, "tel": true}

// tryAutolink matches a bare scheme-prefixed URL at a word boundary.
func (t *tokenizer) tryAutolink() bool {
	if !t.p.cfg.Link.AutoLink {
		return false
	}
	c := t.input[t.pos]
	if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
		return false
	}
	if !t.atWordBoundary() {
		return false
	}
	m := autolinkPat.FindStringSubmatch(t.rest())
	if m == nil {
		return false
	}
	scheme := strings.ToLower(m[1])
	if !strings.HasPrefix(m[2], "//") && !autolinkSchemes[scheme] {
		return false
	}
	t.emit(dom.NewInlineLink(m[0]))
	t.pos += len(m[0])
	return true
}

// atWordBoundary is true if the pending word is empty or ends in a
// non-alphanumeric rune.
func (t *tokenizer) atWordBoundary() bool {
	if t.word.Len() == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(t.word.String())
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
