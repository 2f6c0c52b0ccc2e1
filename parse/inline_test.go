package parse

import (
	"testing"

	"github.com/derekparker/trie"
	"github.com/npillmayer/mdown/dom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokens(t *testing.T, input string, cfg *Config) []dom.Node {
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	p := &parser{cfg: c, doc: dom.NewDocument(), collect: true}
	if len(c.Emoji.Dictionary) > 0 {
		p.emojiDict = trie.New()
		for _, id := range c.Emoji.Dictionary {
			p.emojiDict.Add(id, nil)
		}
	}
	return p.tokenize(input, true, false)
}

func asText(t *testing.T, n dom.Node) string {
	txt, ok := n.(*dom.Text)
	require.True(t, ok, "expected a text node, have %v", n.Type())
	return txt.PlainText()
}

func TestInlinePlainWord(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.parse")
	defer teardown()
	//
	nodes := tokens(t, "  hello world  ", nil)
	require.Equal(t, 1, len(nodes))
	assert.Equal(t, "hello world", asText(t, nodes[0]))
}

func TestInlineEscapes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.parse")
	defer teardown()
	//
	nodes := tokens(t, `\*not emphasis\*`, nil)
	require.Equal(t, 1, len(nodes))
	assert.Equal(t, "*not emphasis*", asText(t, nodes[0]))
	//
	nodes = tokens(t, `\x41é\U0001F600`, nil)
	require.Equal(t, 1, len(nodes))
	assert.Equal(t, "Aé😀", asText(t, nodes[0]))
	//
	cfg := DefaultConfig()
	cfg.MetaControl.AllowEscape = false
	nodes = tokens(t, `\x41`, &cfg)
	require.Equal(t, 1, len(nodes))
	assert.Equal(t, `\x41`, asText(t, nodes[0]))
}

func TestInlineEntityDecoding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.parse")
	defer teardown()
	//
	nodes := tokens(t, "fish &amp; chips", nil)
	require.Equal(t, 1, len(nodes))
	assert.Equal(t, "fish & chips", asText(t, nodes[0]))
}

func TestInlineCodeSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.parse")
	defer teardown()
	//
	nodes := tokens(t, "call `f(x)` now", nil)
	require.Equal(t, 3, len(nodes))
	code, ok := nodes[1].(*dom.InlineCode)
	require.True(t, ok)
	assert.Equal(t, "f(x)", code.Code)
	//
	// triple backticks protect embedded backticks
	nodes = tokens(t, "```a ` b```", nil)
	require.Equal(t, 1, len(nodes))
	code = nodes[0].(*dom.InlineCode)
	assert.Equal(t, "a ` b", code.Code)
	//
	// an unterminated backtick stays literal
	nodes = tokens(t, "un`closed", nil)
	require.Equal(t, 1, len(nodes))
	assert.Equal(t, "un`closed", asText(t, nodes[0]))
}

func TestInlineLatex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.parse")
	defer teardown()
	//
	cfg := DefaultConfig()
	cfg.Latex = true
	nodes := tokens(t, "energy $e = mc^2$ is famous", &cfg)
	require.Equal(t, 3, len(nodes))
	latex, ok := nodes[1].(*dom.InlineLatex)
	require.True(t, ok)
	assert.Equal(t, "e = mc^2", latex.Code)
	//
	// disabled by default
	nodes = tokens(t, "$e = mc^2$", nil)
	require.Equal(t, 1, len(nodes))
	assert.Equal(t, "$e = mc^2$", asText(t, nodes[0]))
}

func TestInlineLinebreaks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.parse")
	defer teardown()
	//
	nodes := tokens(t, "one  \ntwo", nil)
	require.Equal(t, 3, len(nodes))
	lb, ok := nodes[1].(*dom.Text)
	require.True(t, ok)
	assert.True(t, lb.IsLinebreak())
	//
	// a bare newline is a space
	nodes = tokens(t, "one\ntwo", nil)
	require.Equal(t, 1, len(nodes))
	assert.Equal(t, "one two", asText(t, nodes[0]))
	//
	cfg := DefaultConfig()
	cfg.MetaControl.NewlineAsLinebreaks = true
	nodes = tokens(t, "one\ntwo", &cfg)
	require.Equal(t, 3, len(nodes))
	assert.True(t, nodes[1].(*dom.Text).IsLinebreak())
}

func TestInlineBreakTag(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.parse")
	defer teardown()
	//
	nodes := tokens(t, "one<br>two", nil)
	require.Equal(t, 3, len(nodes))
	assert.True(t, nodes[1].(*dom.Text).IsLinebreak())
}

func TestInlineComment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.parse")
	defer teardown()
	//
	nodes := tokens(t, "a <!-- hidden --> b", nil)
	require.Equal(t, 3, len(nodes))
	comment, ok := nodes[1].(*dom.Comment)
	require.True(t, ok)
	assert.Equal(t, " hidden ", comment.Text)
	assert.Equal(t, "", comment.PlainText())
}

func TestInlineEmojiForms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.parse")
	defer teardown()
	//
	// an empty dictionary accepts every identifier
	nodes := tokens(t, ":smile:", nil)
	require.Equal(t, 1, len(nodes))
	emoji, ok := nodes[0].(*dom.Emoji)
	require.True(t, ok)
	assert.Equal(t, "smile", emoji.ID)
	assert.False(t, emoji.Custom)
	//
	nodes = tokens(t, ":thumbsup::skin-tone-3:", nil)
	require.Equal(t, 1, len(nodes))
	emoji = nodes[0].(*dom.Emoji)
	assert.Equal(t, "thumbsup", emoji.ID)
	assert.Equal(t, "skin-tone-3", emoji.Variant)
	//
	nodes = tokens(t, ":~party~blob:", nil)
	require.Equal(t, 1, len(nodes))
	emoji = nodes[0].(*dom.Emoji)
	assert.Equal(t, "party", emoji.ID)
	assert.Equal(t, "blob", emoji.Variant)
	assert.True(t, emoji.Custom)
}

func TestInlineEmojiDictionaryGating(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.parse")
	defer teardown()
	//
	cfg := DefaultConfig()
	cfg.Emoji.Dictionary = []string{"smile"}
	nodes := tokens(t, ":smile: but not :frown:", &cfg)
	require.Equal(t, 2, len(nodes))
	assert.Equal(t, dom.TypeEmoji, nodes[0].Type())
	assert.Equal(t, " but not :frown:", asText(t, nodes[1]))
	//
	cfg = DefaultConfig()
	cfg.Emoji.Match = func(id string) bool { return id == "wave" }
	nodes = tokens(t, ":wave::smile:", &cfg)
	require.Equal(t, 2, len(nodes))
	assert.Equal(t, dom.TypeEmoji, nodes[0].Type())
	assert.Equal(t, ":smile:", asText(t, nodes[1]))
	//
	cfg = DefaultConfig()
	cfg.Emoji.SkinTones = false
	nodes = tokens(t, ":thumbsup::skin-tone-3:", &cfg)
	require.Equal(t, 2, len(nodes))
	assert.Equal(t, "", nodes[0].(*dom.Emoji).Variant)
}

func TestInlineLinks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.parse")
	defer teardown()
	//
	nodes := tokens(t, `[here](https://example.com "a tip")`, nil)
	require.Equal(t, 1, len(nodes))
	link, ok := nodes[0].(*dom.Link)
	require.True(t, ok)
	assert.Equal(t, "https://example.com", link.URL)
	assert.Equal(t, "a tip", link.Tooltip)
	assert.Equal(t, "here", link.PlainText())
	//
	nodes = tokens(t, "[here][The Ref]", nil)
	require.Equal(t, 1, len(nodes))
	link = nodes[0].(*dom.Link)
	assert.Equal(t, "the ref", link.RefName)
	//
	// shortcut references need a boundary after the bracket
	nodes = tokens(t, "[Shortcut].", nil)
	require.Equal(t, 2, len(nodes))
	link = nodes[0].(*dom.Link)
	assert.Equal(t, "shortcut", link.RefName)
	//
	nodes = tokens(t, "[not a link]x", nil)
	require.Equal(t, 1, len(nodes))
	assert.Equal(t, "[not a link]x", asText(t, nodes[0]))
}

func TestInlineImages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.parse")
	defer teardown()
	//
	nodes := tokens(t, "![a cat](https://example.com/cat.png)", nil)
	require.Equal(t, 1, len(nodes))
	img, ok := nodes[0].(*dom.Image)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/cat.png", img.URL)
	assert.Equal(t, "a cat", img.PlainText())
	//
	// a missing alt text defaults to the URL
	nodes = tokens(t, "![](https://example.com/cat.png)", nil)
	img = nodes[0].(*dom.Image)
	assert.Equal(t, "https://example.com/cat.png", img.PlainText())
	//
	// but embedded data is not a usable alt text
	nodes = tokens(t, "![](data:image/png;base64,AAAA)", nil)
	img = nodes[0].(*dom.Image)
	assert.Equal(t, "Image", img.PlainText())
}

func TestInlineFootnoteRef(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.parse")
	defer teardown()
	//
	nodes := tokens(t, "fact[^Source]", nil)
	require.Equal(t, 2, len(nodes))
	ref, ok := nodes[1].(*dom.FootnoteRef)
	require.True(t, ok)
	assert.Equal(t, "source", ref.Name)
	//
	// the footnote marker shields '![' from the image rule
	nodes = tokens(t, "wow![^Source]", nil)
	require.Equal(t, 2, len(nodes))
	assert.Equal(t, "wow!", asText(t, nodes[0]))
	assert.Equal(t, dom.TypeFootnoteRef, nodes[1].Type())
}

func TestInlineEmphasis(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.parse")
	defer teardown()
	//
	nodes := tokens(t, "*a* **b** __c__ ~~d~~ ==e== ||f||", nil)
	require.Equal(t, 11, len(nodes))
	assert.Equal(t, dom.TypeItalic, nodes[0].Type())
	assert.Equal(t, dom.TypeBold, nodes[2].Type())
	assert.Equal(t, dom.TypeUnderline, nodes[4].Type())
	assert.Equal(t, dom.TypeStrikethrough, nodes[6].Type())
	assert.Equal(t, dom.TypeHighlight, nodes[8].Type())
	assert.Equal(t, dom.TypeSpoiler, nodes[10].Type())
}

func TestInlineEmphasisNesting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.parse")
	defer teardown()
	//
	nodes := tokens(t, "*a **b** c*", nil)
	require.Equal(t, 1, len(nodes))
	italic, ok := nodes[0].(*dom.Italic)
	require.True(t, ok)
	children := italic.Children()
	require.Equal(t, 3, len(children))
	assert.Equal(t, "a ", asText(t, children[0]))
	assert.Equal(t, dom.TypeBold, children[1].Type())
	assert.Equal(t, " c", asText(t, children[2]))
	//
	// the triple form closes bold first via the fallback close
	nodes = tokens(t, "***both***", nil)
	require.Equal(t, 1, len(nodes))
	bold, ok := nodes[0].(*dom.Bold)
	require.True(t, ok)
	require.Equal(t, 1, len(bold.Children()))
	assert.Equal(t, dom.TypeItalic, bold.Children()[0].Type())
}

func TestInlineEmphasisFallbackClose(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.parse")
	defer teardown()
	//
	// the longer run closes with its last repeat chars, surplus inside
	nodes := tokens(t, "*a**", nil)
	require.Equal(t, 1, len(nodes))
	italic, ok := nodes[0].(*dom.Italic)
	require.True(t, ok)
	assert.Equal(t, "a*", italic.PlainText())
}

func TestInlineUnderlineToggle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.parse")
	defer teardown()
	//
	cfg := DefaultConfig()
	cfg.Underline = false
	nodes := tokens(t, "__strong__", &cfg)
	require.Equal(t, 1, len(nodes))
	assert.Equal(t, dom.TypeBold, nodes[0].Type())
}

func TestInlineSpoilerToggle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.parse")
	defer teardown()
	//
	cfg := DefaultConfig()
	cfg.Spoiler = false
	nodes := tokens(t, "||secret||", &cfg)
	require.Equal(t, 1, len(nodes))
	assert.Equal(t, "||secret||", asText(t, nodes[0]))
}

func TestInlineDelimiterInsideLinkTitle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.parse")
	defer teardown()
	//
	// the emphasis scan skips over well-formed link spans
	nodes := tokens(t, "*see [a*b](https://example.com) here*", nil)
	require.Equal(t, 1, len(nodes))
	italic, ok := nodes[0].(*dom.Italic)
	require.True(t, ok)
	children := italic.Children()
	require.Equal(t, 3, len(children))
	assert.Equal(t, dom.TypeLink, children[1].Type())
}

func TestInlineAutolink(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.parse")
	defer teardown()
	//
	cfg := DefaultConfig()
	cfg.Link.AutoLink = true
	nodes := tokens(t, "visit https://example.dev today", &cfg)
	require.Equal(t, 3, len(nodes))
	link, ok := nodes[1].(*dom.InlineLink)
	require.True(t, ok)
	assert.Equal(t, "https://example.dev", link.URL)
	//
	// only at a word boundary
	nodes = tokens(t, "4https://example.dev", &cfg)
	require.Equal(t, 1, len(nodes))
	assert.Equal(t, "4https://example.dev", asText(t, nodes[0]))
	//
	// schemes without an authority part need to be known
	nodes = tokens(t, "mailto:ada@example.com", &cfg)
	require.Equal(t, 1, len(nodes))
	assert.Equal(t, dom.TypeInlineLink, nodes[0].Type())
	nodes = tokens(t, "custom:thing", &cfg)
	require.Equal(t, 1, len(nodes))
	assert.Equal(t, "custom:thing", asText(t, nodes[0]))
	//
	// disabled by default
	nodes = tokens(t, "https://example.dev", nil)
	require.Equal(t, 1, len(nodes))
	assert.Equal(t, dom.TypeText, nodes[0].Type())
}

func TestInlineRawMarkupMode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdown.parse")
	defer teardown()
	//
	p := &parser{cfg: DefaultConfig(), doc: dom.NewDocument(), collect: true}
	nodes := p.tokenize("<div>\n  fish &amp; chips\n</div>", true, true)
	require.Equal(t, 1, len(nodes))
	// tags stay verbatim, newlines literal, entities undecoded
	assert.Equal(t, "<div>\n  fish &amp; chips\n</div>", asText(t, nodes[0]))
}
