package dom

import (
	"encoding/json"
)

// The JSON form of a document is a tagged-union tree: every node carries a
// "type" discriminator string (see NodeType.Name), making the output a
// stable interchange contract for downstream tooling. The structs below pin
// the wire shape of each node kind.

type tagged struct {
	Type string `json:"type"`
}

func marshalTagged(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (t *Text) MarshalJSON() ([]byte, error) {
	return marshalTagged(struct {
		Type      string `json:"type"`
		Content   string `json:"content"`
		Linebreak bool   `json:"linebreak,omitempty"`
	}{TypeText.Name(), t.Content, t.IsLinebreak()})
}

// MarshalJSON emits a generic container shape. Concrete kinds which carry
// extra fields shadow this method.
func (e *Element) MarshalJSON() ([]byte, error) {
	return marshalTagged(struct {
		Type     string `json:"type"`
		Children []Node `json:"children"`
	}{e.kind.Name(), e.childrenOrEmpty()})
}

func (e *Element) childrenOrEmpty() []Node {
	if e.children == nil {
		return []Node{}
	}
	return e.children
}

func (l *Link) MarshalJSON() ([]byte, error) {
	return l.marshalLink(TypeLink)
}

func (l *Link) marshalLink(kind NodeType) ([]byte, error) {
	return marshalTagged(struct {
		Type      string `json:"type"`
		URL       string `json:"url,omitempty"`
		Tooltip   string `json:"tooltip,omitempty"`
		Reference string `json:"reference,omitempty"`
		Title     []Node `json:"title"`
	}{kind.Name(), l.URL, l.Tooltip, l.RefName, l.childrenOrEmpty()})
}

func (i *Image) MarshalJSON() ([]byte, error) {
	return i.marshalLink(TypeImage)
}

func (l *InlineLink) MarshalJSON() ([]byte, error) {
	return marshalTagged(struct {
		Type string `json:"type"`
		URL  string `json:"url"`
	}{TypeInlineLink.Name(), l.URL})
}

func (c *InlineCode) MarshalJSON() ([]byte, error) {
	return marshalTagged(struct {
		Type string `json:"type"`
		Code string `json:"code"`
	}{TypeInlineCode.Name(), c.Code})
}

func (l *InlineLatex) MarshalJSON() ([]byte, error) {
	return marshalTagged(struct {
		Type string `json:"type"`
		Code string `json:"code"`
	}{TypeInlineLatex.Name(), l.Code})
}

func (e *Emoji) MarshalJSON() ([]byte, error) {
	return marshalTagged(struct {
		Type    string `json:"type"`
		ID      string `json:"id"`
		Variant string `json:"variant,omitempty"`
		Custom  bool   `json:"custom,omitempty"`
	}{TypeEmoji.Name(), e.ID, e.Variant, e.Custom})
}

func (f *FootnoteRef) MarshalJSON() ([]byte, error) {
	return marshalTagged(struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}{TypeFootnoteRef.Name(), f.Name})
}

func (c *Comment) MarshalJSON() ([]byte, error) {
	return marshalTagged(struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{TypeComment.Name(), c.Text})
}

func (h *Heading) MarshalJSON() ([]byte, error) {
	return marshalTagged(struct {
		Type     string `json:"type"`
		Level    int    `json:"level"`
		Children []Node `json:"children"`
	}{TypeHeading.Name(), h.Level, h.childrenOrEmpty()})
}

func (c *BlockCode) MarshalJSON() ([]byte, error) {
	return marshalTagged(struct {
		Type     string `json:"type"`
		Code     string `json:"code"`
		Language string `json:"language,omitempty"`
	}{TypeBlockCode.Name(), c.Code, c.Language})
}

func (l *LatexDisplay) MarshalJSON() ([]byte, error) {
	return marshalTagged(struct {
		Type string `json:"type"`
		Code string `json:"code"`
	}{TypeLatexDisplay.Name(), l.Code})
}

func (l *List) MarshalJSON() ([]byte, error) {
	entries := l.entries
	if entries == nil {
		entries = []*ListEntry{}
	}
	return marshalTagged(struct {
		Type    string       `json:"type"`
		Ordered bool         `json:"ordered"`
		Start   int          `json:"start,omitempty"`
		Entries []*ListEntry `json:"entries"`
	}{TypeList.Name(), l.Ordered, l.orderedStart(), entries})
}

func (l *List) orderedStart() int {
	if l.Ordered {
		return l.Start
	}
	return 0
}

func (e *ListEntry) MarshalJSON() ([]byte, error) {
	// tri-state checkbox: absent, false or true
	var checked *bool
	if !e.Checked.IsNone() {
		c := e.Checked.Unwrap()
		checked = &c
	}
	subs := e.subLists
	if subs == nil {
		subs = []*List{}
	}
	return marshalTagged(struct {
		Type     string  `json:"type"`
		Checked  *bool   `json:"checked,omitempty"`
		Children []Node  `json:"children"`
		SubLists []*List `json:"sub_lists"`
	}{TypeListEntry.Name(), checked, e.childrenOrEmpty(), subs})
}

func (t *Table) MarshalJSON() ([]byte, error) {
	aligns := make([]string, t.Columns())
	for i := range aligns {
		aligns[i] = t.Alignment(i).String()
	}
	return marshalTagged(struct {
		Type       string      `json:"type"`
		Alignments []string    `json:"alignments"`
		Rows       []*TableRow `json:"rows"`
	}{TypeTable.Name(), aligns, t.rows})
}

func (r *TableRow) MarshalJSON() ([]byte, error) {
	entries := r.entries
	if entries == nil {
		entries = []*TableEntry{}
	}
	return marshalTagged(struct {
		Type    string        `json:"type"`
		Entries []*TableEntry `json:"entries"`
	}{TypeTableRow.Name(), entries})
}

func (f *Footnote) MarshalJSON() ([]byte, error) {
	content := f.Content
	if content == nil {
		content = []Node{}
	}
	return marshalTagged(struct {
		Type    string `json:"type"`
		Label   string `json:"label"`
		Anchor  string `json:"anchor"`
		Content []Node `json:"content"`
	}{"footnote", f.Label, f.Anchor, content})
}

// MarshalJSON emits the whole document as a tagged-union tree, side tables
// included. References and footnotes are emitted as arrays to preserve
// their insertion order.
func (d *Document) MarshalJSON() ([]byte, error) {
	type namedReference struct {
		Type    string `json:"type"`
		Name    string `json:"name"`
		URL     string `json:"url"`
		Tooltip string `json:"tooltip,omitempty"`
	}
	refs := []namedReference{}
	d.references.Each(func(key, value interface{}) {
		ref := value.(Reference)
		tooltip := ""
		if !ref.Tooltip.IsNone() {
			tooltip = ref.Tooltip.String()
		}
		refs = append(refs, namedReference{"reference", key.(string), ref.URL, tooltip})
	})
	footnotes := []*Footnote{}
	d.footnotes.Each(func(key, value interface{}) {
		footnotes = append(footnotes, value.(*Footnote))
	})
	blocks := d.blocks
	if blocks == nil {
		blocks = []Node{}
	}
	return marshalTagged(struct {
		Type       string           `json:"type"`
		Blocks     []Node           `json:"blocks"`
		References []namedReference `json:"references"`
		Footnotes  []*Footnote      `json:"footnotes"`
	}{"document", blocks, refs, footnotes})
}
