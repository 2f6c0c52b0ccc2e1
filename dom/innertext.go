package dom

import (
	"github.com/npillmayer/cords"
)

// InnerText creates a text cord for the textual content of a node and all
// its descendents, with markup stripped. It resembles the text produced by
//
//	document.getElementById("myNode").innerText
//
// in JavaScript. The fragment organization of the resulting cord reflects
// the node hierarchy: every leaf points back at the node it originated from,
// so clients may map text positions to tree nodes.
func InnerText(n Node) (cords.Cord, error) {
	if n == nil {
		return cords.Cord{}, cords.ErrIllegalArguments
	}
	b := cords.NewBuilder()
	collectText(n, b)
	return b.Cord(), nil
}

func collectText(n Node, b *cords.Builder) {
	switch x := n.(type) {
	case *Text:
		appendLeaf(b, x, x.PlainText())
	case *InlineCode:
		appendLeaf(b, x, x.Code)
	case *InlineLatex:
		appendLeaf(b, x, x.Code)
	case *InlineLink:
		appendLeaf(b, x, x.URL)
	case *Emoji:
		appendLeaf(b, x, x.String())
	case *FootnoteRef, *Comment:
		// invisible in plain text
	case *BlockCode:
		appendLeaf(b, x, x.Code)
	case *LatexDisplay:
		appendLeaf(b, x, x.Code)
	case HorizontalRule, TableOfContents:
		// no text content
	case *Image:
		collectChildren(x.Children(), b)
	case *Link:
		collectChildren(x.Children(), b)
	case *List:
		for _, e := range x.Entries() {
			collectText(e, b)
			appendLeaf(b, x, "\n")
		}
	case *ListEntry:
		collectChildren(x.Children(), b)
		for _, sub := range x.SubLists() {
			appendLeaf(b, x, "\n")
			collectText(sub, b)
		}
	case *Table:
		for _, row := range x.Rows() {
			collectText(row, b)
			appendLeaf(b, x, "\n")
		}
	case *TableRow:
		for i, e := range x.Entries() {
			if i > 0 {
				appendLeaf(b, x, "\t")
			}
			collectText(e, b)
		}
	case *TableEntry:
		collectChildren(x.Children(), b)
	case *Bold:
		collectChildren(x.Children(), b)
	case *Italic:
		collectChildren(x.Children(), b)
	case *Underline:
		collectChildren(x.Children(), b)
	case *Strikethrough:
		collectChildren(x.Children(), b)
	case *Highlight:
		collectChildren(x.Children(), b)
	case *Spoiler:
		collectChildren(x.Children(), b)
	case *Heading:
		collectChildren(x.Children(), b)
	case *Paragraph:
		collectChildren(x.Children(), b)
	case *BlockQuote:
		collectChildren(x.Children(), b)
	case *InlineHTML:
		collectChildren(x.Children(), b)
	default:
		tracer().Errorf("inner text of unknown node type %v", n.Type())
	}
}

func collectChildren(children []Node, b *cords.Builder) {
	for _, c := range children {
		collectText(c, b)
	}
}

func appendLeaf(b *cords.Builder, origin Node, content string) {
	if content == "" {
		return
	}
	leaf := &TextLeaf{
		origin:  origin,
		length:  uint64(len(content)),
		content: content,
	}
	b.Append(leaf)
}

// innerTextString collects the plain text of a node sequence.
func innerTextString(children []Node) string {
	b := cords.NewBuilder()
	collectChildren(children, b)
	return b.Cord().String()
}

// ---------------------------------------------------------------------------

// TextLeaf is the leaf type created for cords from calls to InnerText(…).
type TextLeaf struct {
	origin  Node
	length  uint64
	content string
}

// Origin returns the document node this text fragment came from.
func (l TextLeaf) Origin() Node {
	return l.origin
}

// Weight of a leaf is its string length in bytes.
func (l TextLeaf) Weight() uint64 {
	return l.length
}

func (l TextLeaf) String() string {
	return l.content
}

// Split splits a leaf at position i, resulting in 2 new leafs.
func (l TextLeaf) Split(i uint64) (cords.Leaf, cords.Leaf) {
	left := &TextLeaf{
		origin:  l.origin,
		length:  i,
		content: l.content[:i],
	}
	right := &TextLeaf{
		origin:  l.origin,
		length:  l.length - i,
		content: l.content[i:],
	}
	return left, right
}

// Substring returns a string segment of the leaf's text fragment.
func (l TextLeaf) Substring(i, j uint64) []byte {
	return []byte(l.content)[i:j]
}

var _ cords.Leaf = TextLeaf{}
