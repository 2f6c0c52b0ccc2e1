package parse

// Config is the parser's option surface. The zero value disables
// everything; start from DefaultConfig and override fields as needed.
//
// A Config is treated as an immutable value: the parser copies it and
// nested parses receive copies with per-call overrides, so a caller's
// Config is never mutated.
type Config struct {
	Checkbox            bool // tri-state checkboxes in list entries
	CodeBlockFromIndent bool // 4-space/tab indented code blocks
	Emoji               EmojiConfig
	Footnote            bool // footnote references and definitions
	Highlight           bool // ==highlight== spans
	Image               bool // ![alt](url) images
	InlineHTML          InlineHTMLConfig
	Latex               bool // $…$ spans and $$ display blocks
	Link                LinkConfig
	List                bool // list blocks
	MetaControl         MetaControlConfig
	Spoiler             bool // ||spoiler|| spans
	Table               bool // pipe tables
	TableOfContents     bool // [[toc]] marker blocks
	Underline           bool // __underline__ instead of bold
}

// EmojiConfig controls :shortcode: emoji recognition.
type EmojiConfig struct {
	Enabled    bool
	Dictionary []string          // accepted shortcode ids; empty accepts all
	Match      func(string) bool // optional predicate, may reject a match
	SkinTones  bool              // :id::skin-tone-N: variants, N in 2…6
}

// InlineHTMLConfig controls raw-markup passthrough blocks.
type InlineHTMLConfig struct {
	// DisallowedTags are tag names which never open an inline-HTML block;
	// lines starting with them fall through to the ordinary block rules.
	DisallowedTags []string
}

// LinkConfig controls link recognition.
type LinkConfig struct {
	Standard bool // [title](url) and reference-style links
	AutoLink bool // bare scheme-prefixed URLs
}

// MetaControlConfig controls character-level parsing behavior.
type MetaControlConfig struct {
	AllowEscape         bool // backslash escapes, incl. \uXXXX forms
	NewlineAsLinebreaks bool // treat every newline as an explicit linebreak
}

// DefaultDisallowedTags is the suggested disallowed-tag list for inline
// HTML blocks.
var DefaultDisallowedTags = []string{
	"iframe", "noembed", "noframes", "plaintext", "script",
	"style", "svg", "textarea", "title", "xmp",
}

// DefaultConfig returns the default option set.
func DefaultConfig() Config {
	return Config{
		Checkbox:            true,
		CodeBlockFromIndent: false,
		Emoji: EmojiConfig{
			Enabled:   true,
			SkinTones: true,
		},
		Footnote:  true,
		Highlight: true,
		Image:     true,
		InlineHTML: InlineHTMLConfig{
			DisallowedTags: DefaultDisallowedTags,
		},
		Latex: false,
		Link: LinkConfig{
			Standard: true,
			AutoLink: false,
		},
		List: true,
		MetaControl: MetaControlConfig{
			AllowEscape:         true,
			NewlineAsLinebreaks: false,
		},
		Spoiler:         true,
		Table:           true,
		TableOfContents: true,
		Underline:       true,
	}
}
