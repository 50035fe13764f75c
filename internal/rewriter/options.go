package rewriter

// EntryFlag is one user-supplied `--entry TAG SYMBOL` pair: a dynamic
// section tag (parsed as hex, matching the original's `int(tag, 16)`) and
// the name of a dynamic-symbol-table entry whose value becomes that tag's
// d_val. A symbol name with no matching dynamic symbol is silently
// skipped, not an error.
type EntryFlag struct {
	Tag    int32
	Symbol string
}

// Options configures one rewrite of an input object into an extension
// module.
type Options struct {
	// Strip deletes every section whose name starts with ".debug" before
	// the rewrite proceeds.
	Strip bool

	// SonameBase is the string recorded in the synthesized module's
	// DT_SONAME entry, as its base name — the input object's path, not
	// the output path the rewritten module is written to.
	SonameBase string

	// Entries are applied in the order given, each appended as its own
	// .dynamic entry.
	Entries []EntryFlag
}
