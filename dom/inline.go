package dom

import (
	"strings"

	"golang.org/x/text/cases"
)

// Bold is strong emphasis, written **like this**.
type Bold struct {
	Element
}

// NewBold creates a strong-emphasis span.
func NewBold(children ...Node) *Bold {
	return &Bold{newElement(TypeBold, true, children)}
}

func (b *Bold) String() string {
	return "**" + childrenMarkdown(b.children) + "**"
}

// Italic is regular emphasis, written *like this*.
type Italic struct {
	Element
}

// NewItalic creates an emphasis span.
func NewItalic(children ...Node) *Italic {
	return &Italic{newElement(TypeItalic, true, children)}
}

func (i *Italic) String() string {
	return "*" + childrenMarkdown(i.children) + "*"
}

// Underline is an underlined span, written __like this__.
type Underline struct {
	Element
}

// NewUnderline creates an underlined span.
func NewUnderline(children ...Node) *Underline {
	return &Underline{newElement(TypeUnderline, true, children)}
}

func (u *Underline) String() string {
	return "__" + childrenMarkdown(u.children) + "__"
}

// Strikethrough is a struck-through span, written ~~like this~~.
type Strikethrough struct {
	Element
}

// NewStrikethrough creates a struck-through span.
func NewStrikethrough(children ...Node) *Strikethrough {
	return &Strikethrough{newElement(TypeStrikethrough, true, children)}
}

func (s *Strikethrough) String() string {
	return "~~" + childrenMarkdown(s.children) + "~~"
}

// Highlight is a highlighted span, written ==like this==.
type Highlight struct {
	Element
}

// NewHighlight creates a highlighted span.
func NewHighlight(children ...Node) *Highlight {
	return &Highlight{newElement(TypeHighlight, true, children)}
}

func (h *Highlight) String() string {
	return "==" + childrenMarkdown(h.children) + "=="
}

// Spoiler is a hidden span, written ||like this||.
type Spoiler struct {
	Element
}

// NewSpoiler creates a spoiler span.
func NewSpoiler(children ...Node) *Spoiler {
	return &Spoiler{newElement(TypeSpoiler, true, children)}
}

func (s *Spoiler) String() string {
	return "||" + childrenMarkdown(s.children) + "||"
}

// --- Links and images ------------------------------------------------------

// Link is a hyperlink. The link title is the ordered child sequence. A link
// either carries a URL (with optional tooltip) directly, or names a
// reference to be resolved against the document's reference table. Reference
// names are case-folded at construction time.
type Link struct {
	Element
	URL     string
	Tooltip string
	RefName string
}

// NewLink creates a direct link with url and an optional tooltip.
func NewLink(url, tooltip string, title ...Node) *Link {
	return &Link{
		Element: newElement(TypeLink, false, title),
		URL:     url,
		Tooltip: tooltip,
	}
}

// NewRefLink creates a reference-style link. The name is folded for
// case-insensitive table lookup.
func NewRefLink(name string, title ...Node) *Link {
	return &Link{
		Element: newElement(TypeLink, false, title),
		RefName: FoldName(name),
	}
}

func (l *Link) String() string {
	return l.markdown("")
}

func (l *Link) markdown(prefix string) string {
	title := childrenMarkdown(l.children)
	if l.RefName != "" {
		if l.RefName == FoldName(title) {
			return prefix + "[" + title + "]"
		}
		return prefix + "[" + title + "][" + l.RefName + "]"
	}
	if l.Tooltip != "" {
		return prefix + "[" + title + "](" + l.URL + ` "` + l.Tooltip + `")`
	}
	return prefix + "[" + title + "](" + l.URL + ")"
}

// Image is an embedded image. It is a Link specialization: the link title
// doubles as the image's alt text.
type Image struct {
	Link
}

// NewImage creates an image from a link.
func NewImage(link *Link) *Image {
	img := &Image{Link: *link}
	img.kind = TypeImage
	return img
}

func (i *Image) Type() NodeType { return TypeImage }

func (i *Image) String() string {
	return i.markdown("!")
}

// InlineLink is a bare autolink: a URL standing for itself.
type InlineLink struct {
	URL string
}

// NewInlineLink creates an autolink node.
func NewInlineLink(url string) *InlineLink {
	return &InlineLink{URL: url}
}

func (l *InlineLink) Type() NodeType { return TypeInlineLink }

func (l *InlineLink) IsBlock() bool { return false }

func (l *InlineLink) PlainText() string { return l.URL }

func (l *InlineLink) String() string { return l.URL }

// --- Verbatim spans --------------------------------------------------------

// InlineCode is a verbatim code span.
type InlineCode struct {
	Code string
}

// NewInlineCode creates a code span.
func NewInlineCode(code string) *InlineCode {
	return &InlineCode{Code: code}
}

func (c *InlineCode) Type() NodeType { return TypeInlineCode }

func (c *InlineCode) IsBlock() bool { return false }

func (c *InlineCode) PlainText() string { return c.Code }

func (c *InlineCode) String() string {
	if strings.Contains(c.Code, "`") {
		return "```" + c.Code + "```"
	}
	return "`" + c.Code + "`"
}

// InlineLatex is a LaTeX math span, written $like this$.
type InlineLatex struct {
	Code string
}

// NewInlineLatex creates a math span.
func NewInlineLatex(code string) *InlineLatex {
	return &InlineLatex{Code: code}
}

func (l *InlineLatex) Type() NodeType { return TypeInlineLatex }

func (l *InlineLatex) IsBlock() bool { return false }

func (l *InlineLatex) PlainText() string { return l.Code }

func (l *InlineLatex) String() string { return "$" + l.Code + "$" }

// --- Emoji -----------------------------------------------------------------

// Emoji is an emoji shortcode, e.g. :wave: or :wave::skin-tone-3:. Custom
// emoji carry a mandatory variant and are written :~id~variant:.
type Emoji struct {
	ID      string
	Variant string
	Custom  bool
}

// NewEmoji creates an emoji node.
func NewEmoji(id, variant string, custom bool) *Emoji {
	return &Emoji{ID: id, Variant: variant, Custom: custom}
}

func (e *Emoji) Type() NodeType { return TypeEmoji }

func (e *Emoji) IsBlock() bool { return false }

func (e *Emoji) PlainText() string { return e.String() }

func (e *Emoji) String() string {
	if e.Custom {
		return ":~" + e.ID + "~" + e.Variant + ":"
	}
	if e.Variant != "" {
		return ":" + e.ID + "::" + e.Variant + ":"
	}
	return ":" + e.ID + ":"
}

// --- Footnote references and comments --------------------------------------

// FootnoteRef is a citation of a footnote by name, written [^name]. The name
// is folded for case-insensitive lookup in the document's footnote table.
type FootnoteRef struct {
	Name string
}

// NewFootnoteRef creates a footnote citation.
func NewFootnoteRef(name string) *FootnoteRef {
	return &FootnoteRef{Name: FoldName(name)}
}

func (f *FootnoteRef) Type() NodeType { return TypeFootnoteRef }

func (f *FootnoteRef) IsBlock() bool { return false }

func (f *FootnoteRef) PlainText() string { return "" }

func (f *FootnoteRef) String() string { return "[^" + f.Name + "]" }

// Comment is an HTML comment span, preserved but invisible in plain text.
type Comment struct {
	Text string
}

// NewComment creates a comment node.
func NewComment(text string) *Comment {
	return &Comment{Text: text}
}

func (c *Comment) Type() NodeType { return TypeComment }

func (c *Comment) IsBlock() bool { return false }

func (c *Comment) PlainText() string { return "" }

func (c *Comment) String() string { return "<!--" + c.Text + "-->" }

// ---------------------------------------------------------------------------

// FoldName case-folds a reference or footnote name for table lookup.
// Folding is Unicode-correct, not just ASCII lowercasing.
func FoldName(name string) string {
	return cases.Fold().String(name)
}
