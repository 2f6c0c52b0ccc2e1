/*
Package markup is the parser's boundary to raw HTML markup.

The markdown parser never interprets HTML itself; it only needs to detect
and measure raw-markup spans (comments and tags) at the current scan
position, and to decode character references in text runs. Both concerns are
delegated to the tokenizer of golang.org/x/net/html, wrapped here in
first-token probes.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package markup

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// tracer traces with key 'mdown.markup'.
func tracer() tracing.Trace {
	return tracing.Select("mdown.markup")
}

// TagKind classifies a probed tag span.
type TagKind int

const (
	OpenTag TagKind = iota
	CloseTag
	SelfClosingTag
)

// Tag describes an HTML tag span found at the start of a text.
type Tag struct {
	Name   string // tag name, lowercased
	Kind   TagKind
	Length int // byte length of the raw tag span
}

// voidTags never open a balance-tracking region: they have no closing tag.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// IsVoid reports whether an element with the given tag name is a void
// element, i.e. never has a closing tag.
func IsVoid(name string) bool {
	return voidTags[strings.ToLower(name)]
}

// Comment probes text for an HTML comment span at position 0. If text starts
// with a terminated comment, Comment returns its inner text and the byte
// length of the whole span. An unterminated comment is not a span: parsing
// has to stay total and the text degrades to ordinary content.
func Comment(text string) (content string, length int, ok bool) {
	if !strings.HasPrefix(text, "<!--") {
		return "", 0, false
	}
	z := html.NewTokenizer(strings.NewReader(text))
	if z.Next() != html.CommentToken {
		return "", 0, false
	}
	raw := z.Raw()
	if !strings.HasSuffix(string(raw), "-->") {
		tracer().Debugf("unterminated comment, not a raw-markup span")
		return "", 0, false
	}
	return z.Token().Data, len(raw), true
}

// ProbeTag probes text for an HTML tag span at position 0. It reports the
// tag's name, kind and raw byte length. Text not starting with a complete
// tag fails the probe.
func ProbeTag(text string) (Tag, bool) {
	if !strings.HasPrefix(text, "<") {
		return Tag{}, false
	}
	z := html.NewTokenizer(strings.NewReader(text))
	tt := z.Next()
	switch tt {
	case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
	default:
		return Tag{}, false
	}
	raw := string(z.Raw())
	if !strings.HasSuffix(raw, ">") {
		return Tag{}, false
	}
	tok := z.Token()
	tag := Tag{Name: tok.Data, Length: len(raw)}
	switch tt {
	case html.EndTagToken:
		tag.Kind = CloseTag
	case html.SelfClosingTagToken:
		tag.Kind = SelfClosingTag
	default:
		tag.Kind = OpenTag
	}
	return tag, true
}

// Unescape decodes HTML character references like &amp; or &#39; in a text
// run.
func Unescape(text string) string {
	return html.UnescapeString(text)
}
