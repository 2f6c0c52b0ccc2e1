package parse

import (
	"bufio"
	"io"

	"github.com/derekparker/trie"
	"github.com/npillmayer/mdown/core"
	"github.com/npillmayer/mdown/dom"
	"golang.org/x/text/unicode/norm"
)

// Parse parses markdown source into a document tree. cfg may be nil, in
// which case DefaultConfig applies. Parsing is total: it never fails on
// malformed input, which instead degrades to plain paragraphs.
func Parse(input string, cfg *Config) *dom.Document {
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	p := &parser{
		cfg:     c,
		doc:     dom.NewDocument(),
		collect: true,
	}
	if c.Emoji.Enabled && len(c.Emoji.Dictionary) > 0 {
		p.emojiDict = trie.New()
		for _, id := range c.Emoji.Dictionary {
			p.emojiDict.Add(id, nil)
		}
	}
	for _, b := range p.parseBlocks(input) {
		p.doc.AppendBlock(b)
	}
	tracer().Infof("parsed document with %d blocks", len(p.doc.Blocks()))
	return p.doc
}

// ParseReader reads all of r through an NFC normalization reader and parses
// it. The only possible error is the reader's.
func ParseReader(r io.Reader, cfg *Config) (*dom.Document, error) {
	input := bufio.NewReader(norm.NFC.Reader(r))
	data, err := io.ReadAll(input)
	if err != nil {
		return nil, core.WrapError(err, core.ECONNECTION, "cannot read markdown input")
	}
	return Parse(string(data), cfg), nil
}

// maxEmphasisDepth bounds the nesting of delimited inline spans. Past the
// cap, delimiter characters stay literal text. This keeps pathological
// inputs with long ambiguous delimiter runs from forcing superlinear
// rescans.
const maxEmphasisDepth = 16

// parser carries one parse call's state. Nested parses (quote bodies, list
// entries, footnote content) work on a copy with fields overridden, never
// on the caller's parser.
type parser struct {
	cfg       Config
	doc       *dom.Document
	collect   bool // capture reference/footnote definitions
	emojiDict *trie.Trie
	depth     int // current delimited-span nesting
}

// nested returns a copy of p for a recursive block parse. Definitions are
// only collected at the document's outermost scope.
func (p *parser) nested() *parser {
	q := *p
	q.collect = false
	return &q
}

// parseBlocks runs the grouper and the builder over a text.
func (p *parser) parseBlocks(text string) []dom.Node {
	sc := &scanner{p: p}
	groups := sc.scan(text)
	var blocks []dom.Node
	for _, g := range groups {
		if b := p.build(g); b != nil {
			blocks = append(blocks, b)
		}
	}
	return blocks
}
