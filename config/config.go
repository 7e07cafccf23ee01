// Package config holds caller-supplied settings for the lexer and for the
// localization helpers in astutil. It never touches the filesystem: every
// loader here decodes a byte slice the caller already read, keeping the
// "no filesystem I/O from the lexer" non-goal intact.
package config

import (
	"github.com/juju/errors"
	"gopkg.in/yaml.v2"
)

// LexerConfig controls the handful of lexer behaviors spec.md leaves as
// implementation choices.
type LexerConfig struct {
	// TabWidth is the column width of a tab character when comparing
	// indentation widths. spec.md §9 notes the original source mixes two
	// conventions (one tab = one unit vs. one tab = four units); this
	// implementation defaults to one unit and treats four-wide as an
	// explicit opt-in rather than silently accepting both.
	TabWidth int

	// Debug is a verbose-tracing flag. The lexer does not read it and
	// emits no trace output; logx.SetDebug is what turns tracing on for
	// logx loggers.
	Debug bool
}

// DefaultLexerConfig returns the configuration used when a caller passes a
// nil *LexerConfig to lexer.New.
func DefaultLexerConfig() *LexerConfig {
	return &LexerConfig{TabWidth: 1}
}

func (c *LexerConfig) orDefault() *LexerConfig {
	if c == nil {
		return DefaultLexerConfig()
	}
	if c.TabWidth <= 0 {
		cp := *c
		cp.TabWidth = 1
		return &cp
	}
	return c
}

// Normalize returns c with zero-value fields replaced by defaults, never
// mutating c itself.
func (c *LexerConfig) Normalize() *LexerConfig {
	return c.orDefault()
}

// existingKeysDoc is the YAML shape LoadExistingKeys decodes: a flat list
// of previously issued localization keys, e.g.:
//
//	keys: [abcd, ef01, gh23]
type existingKeysDoc struct {
	Keys []string `yaml:"keys"`
}

// LoadExistingKeys parses a YAML manifest of previously-issued
// localization keys so astutil.InsertLocalizationKeysSeeded can seed its
// uniqueness set from more than just the keys already present in the
// source being edited. data is a byte slice the caller has already read
// (from a file, a database row, a network fetch — this function doesn't
// care); no I/O happens here.
func LoadExistingKeys(data []byte) (map[string]bool, error) {
	var doc existingKeysDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Annotate(err, "config: parsing existing-keys manifest")
	}
	out := make(map[string]bool, len(doc.Keys))
	for _, k := range doc.Keys {
		out[k] = true
	}
	return out, nil
}
