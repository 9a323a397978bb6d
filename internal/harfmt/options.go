package harfmt

import "redtrace/internal/version"

// DefaultLang is the template language used when Options.Lang is empty.
const DefaultLang = "en"

// DefaultIndent matches the four-space layout of archives produced by
// earlier releases.
const DefaultIndent = 4

// Creator identifies the tool in log.creator and log.browser.
type Creator struct {
	Name    string
	Version string
}

// Options configures an Exporter.
type Options struct {
	Lang    string  // template language tag, e.g. "en"
	Creator Creator // tool identity
	Indent  int     // spaces per level; 0 gives DefaultIndent, negative gives compact output
}

func (o Options) withDefaults() Options {
	if o.Lang == "" {
		o.Lang = DefaultLang
	}
	if o.Indent == 0 {
		o.Indent = DefaultIndent
	}
	if o.Creator.Name == "" {
		o.Creator.Name = version.Tool
	}
	if o.Creator.Version == "" {
		o.Creator.Version = version.Current()
	}
	return o
}
