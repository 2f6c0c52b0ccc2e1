package dom

import (
	"encoding/json"
)

// NodeType enumerates every node kind the document model knows about.
// The set is closed: serializers and renderers switch exhaustively over it
// instead of probing concrete types at runtime.
type NodeType int

const (
	TypeText NodeType = iota
	TypeBold
	TypeItalic
	TypeUnderline
	TypeStrikethrough
	TypeHighlight
	TypeSpoiler
	TypeLink
	TypeImage
	TypeInlineCode
	TypeInlineLatex
	TypeEmoji
	TypeInlineLink
	TypeFootnoteRef
	TypeComment
	TypeHeading
	TypeParagraph
	TypeBlockCode
	TypeBlockQuote
	TypeLatexDisplay
	TypeHorizontalRule
	TypeList
	TypeListEntry
	TypeTable
	TypeTableRow
	TypeTableEntry
	TypeInlineHTML
	TypeTableOfContents
)

var nodeTypeNames = map[NodeType]string{
	TypeText:            "text",
	TypeBold:            "bold",
	TypeItalic:          "italic",
	TypeUnderline:       "underline",
	TypeStrikethrough:   "strikethrough",
	TypeHighlight:       "highlight",
	TypeSpoiler:         "spoiler",
	TypeLink:            "link",
	TypeImage:           "image",
	TypeInlineCode:      "inline_code",
	TypeInlineLatex:     "inline_latex",
	TypeEmoji:           "emoji",
	TypeInlineLink:      "inline_link",
	TypeFootnoteRef:     "footnote_reference",
	TypeComment:         "comment",
	TypeHeading:         "heading",
	TypeParagraph:       "paragraph",
	TypeBlockCode:       "block_code",
	TypeBlockQuote:      "block_quote",
	TypeLatexDisplay:    "latex_display",
	TypeHorizontalRule:  "horizontal_rule",
	TypeList:            "list",
	TypeListEntry:       "list_entry",
	TypeTable:           "table",
	TypeTableRow:        "table_row",
	TypeTableEntry:      "table_entry",
	TypeInlineHTML:      "inline_html",
	TypeTableOfContents: "table_of_contents",
}

// Name returns the stable string discriminator for t, as used in the JSON
// serialization ("heading", "table_entry", …).
func (t NodeType) Name() string {
	if name, ok := nodeTypeNames[t]; ok {
		return name
	}
	return "undefined"
}

func (t NodeType) String() string {
	return t.Name()
}

// Node is the interface common to every member of a document tree.
type Node interface {
	Type() NodeType       // node kind, member of a closed enum
	IsBlock() bool        // true for block-level containers
	PlainText() string    // text content with all markup stripped
	String() string       // markdown form
	json.Marshaler        // structural form with a "type" discriminator
}

// --- Text ------------------------------------------------------------------

// linebreakSentinel is the distinguished Text content representing an
// explicit line break. It is detected by content, never by node identity.
const linebreakSentinel = "  \n"

// Text is a leaf node wrapping a string.
type Text struct {
	Content string
}

// NewText creates a text leaf.
func NewText(content string) *Text {
	return &Text{Content: content}
}

// NewLinebreak creates a text leaf carrying the explicit-linebreak marker
// (two spaces followed by a newline).
func NewLinebreak() *Text {
	return &Text{Content: linebreakSentinel}
}

// IsLinebreak is true if t is an explicit line break.
func (t *Text) IsLinebreak() bool {
	return t.Content == linebreakSentinel
}

func (t *Text) Type() NodeType { return TypeText }

func (t *Text) IsBlock() bool { return false }

func (t *Text) PlainText() string {
	if t.IsLinebreak() {
		return "\n"
	}
	return t.Content
}

func (t *Text) String() string {
	return t.Content
}

// --- Containers ------------------------------------------------------------

// Element is an ordered container of inline child nodes. Insertion order is
// significant. An element constructed without linebreak permission purges
// explicit-linebreak text children at construction and insertion time.
type Element struct {
	kind            NodeType
	allowLinebreaks bool
	children        []Node
}

func newElement(kind NodeType, allowLinebreaks bool, children []Node) Element {
	e := Element{kind: kind, allowLinebreaks: allowLinebreaks}
	e.AppendChild(children...)
	return e
}

func (e *Element) Type() NodeType { return e.kind }

func (e *Element) IsBlock() bool { return false }

// Children returns the element's child nodes, in document order.
func (e *Element) Children() []Node {
	return e.children
}

// AppendChild appends nodes to the element's children. Explicit linebreaks
// are dropped if the element does not permit them.
func (e *Element) AppendChild(nodes ...Node) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if !e.allowLinebreaks {
			if t, ok := n.(*Text); ok && t.IsLinebreak() {
				continue
			}
		}
		e.children = append(e.children, n)
	}
}

func (e *Element) PlainText() string {
	return innerTextString(e.children)
}

func (e *Element) String() string {
	return childrenMarkdown(e.children)
}

// BlockElement marks a container as block-level.
type BlockElement struct {
	Element
}

func newBlockElement(kind NodeType, allowLinebreaks bool, children []Node) BlockElement {
	return BlockElement{newElement(kind, allowLinebreaks, children)}
}

func (e *BlockElement) IsBlock() bool { return true }

// childrenMarkdown concatenates the markdown form of a node sequence.
func childrenMarkdown(children []Node) string {
	s := ""
	for _, c := range children {
		s += c.String()
	}
	return s
}
