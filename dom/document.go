package dom

import (
	"strings"
	"unicode"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/mdown/core/option"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax29"
)

// Reference is a link target defined out-of-line, as in
//
//	[name]: https://example.com "tooltip"
//
// and resolved by name from link nodes. Tooltip is the optional quoted
// title; a definition without one leaves it unset.
type Reference struct {
	URL     string
	Tooltip option.RefT
}

// Footnote is a named footnote definition: a display label, a stable anchor
// string and the tokenized footnote content.
type Footnote struct {
	Label   string
	Anchor  string
	Content []Node
}

// PlainText returns the footnote content with all markup stripped.
func (f *Footnote) PlainText() string {
	return innerTextString(f.Content)
}

// Document is a parsed markdown document: an ordered sequence of block
// nodes plus two side tables for link references and footnotes. Table keys
// are case-folded; the first definition of a name wins and later duplicates
// are silently dropped. Insertion order is preserved and determines footnote
// numbering.
//
// A document is populated during a single parse (or by direct construction
// for round-trip testing) and is immutable by convention afterwards.
type Document struct {
	blocks     []Node
	references *linkedhashmap.Map // folded name -> Reference
	footnotes  *linkedhashmap.Map // folded name -> *Footnote
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		references: linkedhashmap.New(),
		footnotes:  linkedhashmap.New(),
	}
}

// AppendBlock appends a block node to the document.
func (d *Document) AppendBlock(n Node) {
	if n != nil {
		d.blocks = append(d.blocks, n)
	}
}

// Blocks returns the document's block nodes in order. The returned slice is
// a read-only view; callers must not modify it.
func (d *Document) Blocks() []Node {
	return d.blocks
}

// StoreReference inserts a link reference definition. Names are case-folded;
// the first definition of a name wins. Returns true if the definition was
// stored, false if a previous definition already claimed the name.
func (d *Document) StoreReference(name string, ref Reference) bool {
	key := FoldName(name)
	if _, ok := d.references.Get(key); ok {
		tracer().Debugf("dropping duplicate reference definition [%s]", key)
		return false
	}
	d.references.Put(key, ref)
	return true
}

// Reference looks up a link reference by name, case-insensitively.
func (d *Document) Reference(name string) (Reference, bool) {
	if v, ok := d.references.Get(FoldName(name)); ok {
		return v.(Reference), true
	}
	return Reference{}, false
}

// ReferenceNames returns all defined reference names (folded), in insertion
// order.
func (d *Document) ReferenceNames() []string {
	keys := d.references.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

// StoreFootnote inserts a footnote definition. The name is case-folded for
// the table key; label keeps the name as written. The first definition of a
// name wins. Returns true if the definition was stored.
func (d *Document) StoreFootnote(name string, content []Node) bool {
	key := FoldName(name)
	if _, ok := d.footnotes.Get(key); ok {
		tracer().Debugf("dropping duplicate footnote definition [^%s]", key)
		return false
	}
	d.footnotes.Put(key, &Footnote{
		Label:   name,
		Anchor:  "fn:" + key,
		Content: content,
	})
	return true
}

// Footnote looks up a footnote by name, case-insensitively.
func (d *Document) Footnote(name string) (*Footnote, bool) {
	if v, ok := d.footnotes.Get(FoldName(name)); ok {
		return v.(*Footnote), true
	}
	return nil, false
}

// FootnoteNames returns all defined footnote names (folded), in insertion
// order. This order, not citation order, determines footnote numbering.
func (d *Document) FootnoteNames() []string {
	keys := d.footnotes.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

// FootnoteNumber returns the 1-based display number of a footnote, derived
// from insertion order. It returns 0 for undefined footnotes.
func (d *Document) FootnoteNumber(name string) int {
	key := FoldName(name)
	for i, k := range d.footnotes.Keys() {
		if k.(string) == key {
			return i + 1
		}
	}
	return 0
}

// PlainText returns the document's text content with all markup stripped.
func (d *Document) PlainText() string {
	var sb strings.Builder
	for i, b := range d.blocks {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(b.PlainText())
	}
	return sb.String()
}

// WordCount counts the words of the document's plain text, segmented by
// Unicode word boundaries (UAX#29). Segments without a letter or digit
// (punctuation, whitespace) do not count.
func (d *Document) WordCount() int {
	wordbreaker := uax29.NewWordBreaker(1)
	segmenter := segment.NewSegmenter(wordbreaker)
	segmenter.Init(strings.NewReader(d.PlainText()))
	count := 0
	for segmenter.Next() {
		for _, r := range segmenter.Text() {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				count++
				break
			}
		}
	}
	return count
}

// TableOfContents materializes a table of contents from the document's
// headings: an unordered list nested by heading level. Entries hold fresh
// text leaves of the headings' plain text; no nodes are shared with the
// document tree.
func (d *Document) TableOfContents() *List {
	root := NewList(false, 1)
	type frame struct {
		list  *List
		level int
	}
	var stack []frame
	for _, b := range d.blocks {
		h, ok := b.(*Heading)
		if !ok {
			continue
		}
		for len(stack) > 1 && h.Level < stack[len(stack)-1].level {
			stack = stack[:len(stack)-1]
		}
		switch {
		case len(stack) == 0:
			stack = append(stack, frame{root, h.Level})
		case h.Level > stack[len(stack)-1].level:
			top := stack[len(stack)-1]
			entries := top.list.Entries()
			if len(entries) == 0 {
				// no entry to nest under, flatten into the current list
				stack[len(stack)-1].level = h.Level
			} else {
				sub := NewList(false, 1)
				entries[len(entries)-1].AppendSubList(sub)
				stack = append(stack, frame{sub, h.Level})
			}
		}
		top := stack[len(stack)-1]
		entry := NewListEntry(option.Bool(), NewText(h.PlainText()))
		top.list.AppendEntry(entry)
	}
	return root
}

// String serializes the document back to markdown, appending reference and
// footnote definitions after the block content.
func (d *Document) String() string {
	var sb strings.Builder
	for i, b := range d.blocks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(b.String())
	}
	if d.references.Size() > 0 {
		d.references.Each(func(key, value interface{}) {
			ref := value.(Reference)
			sb.WriteString("\n\n[")
			sb.WriteString(key.(string))
			sb.WriteString("]: ")
			sb.WriteString(ref.URL)
			if !ref.Tooltip.IsNone() {
				sb.WriteString(` "`)
				sb.WriteString(ref.Tooltip.String())
				sb.WriteString(`"`)
			}
		})
	}
	if d.footnotes.Size() > 0 {
		d.footnotes.Each(func(key, value interface{}) {
			fn := value.(*Footnote)
			sb.WriteString("\n\n[^")
			sb.WriteString(key.(string))
			sb.WriteString("]: ")
			sb.WriteString(childrenMarkdown(fn.Content))
		})
	}
	return sb.String()
}
