/*
Package dom implements the document object model for parsed markdown text.

A parsed document is a tree of typed nodes: block-level containers (headings,
paragraphs, quotes, lists, tables, …) holding inline content (text, emphasis
spans, links, code spans, …). The tree is produced by package parse and is
passive data afterwards: clients walk it, serialize it back to markdown
(String), or export it as a tagged JSON tree (MarshalJSON) for downstream
tooling such as HTML renderers.

Nodes are exclusively owned by their parent container; the tree carries no
back-references and no cycles (table entries' row pointers being the one
deliberate exception, pointing sideways within a single table).

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdown.dom'.
func tracer() tracing.Trace {
	return tracing.Select("mdown.dom")
}
