/*
Package parse implements the markdown parsing engine.

Parsing is a two-phase process. A block grouper scans the source line by
line, classifying contiguous line ranges into typed raw groups (paragraph,
heading, fenced code, quote, list, table, …) and capturing link-reference
and footnote definitions into the document's side tables. A block builder
then maps every group to one node of the document tree, calling into the
inline tokenizer for text content and recursing into grouping and building
for quote bodies and list entries.

Parsing is total: malformed markdown never fails, it degrades to plain
text or paragraphs. It is synchronous, single-threaded and performs no I/O
(except for ParseReader's input reading). Nested parses receive a copied
parser state with fields overridden, never a shared mutable one.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parse

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdown.parse'.
func tracer() tracing.Trace {
	return tracing.Select("mdown.parse")
}
