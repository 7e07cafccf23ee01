package astutil

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/loreline-lang/loreline/ast"
)

// localizationTarget extracts the StringLiteral a hash-comment anchor can
// attach to, for the three statement kinds spec.md §4.5 names.
func localizationTarget(node ast.Node) *ast.StringLiteral {
	switch t := node.(type) {
	case *ast.TextStatement:
		return t.Content
	case *ast.DialogueStatement:
		return t.Content
	case *ast.ChoiceOption:
		return t.Text
	default:
		return nil
	}
}

func hasHashComment(node ast.Node) bool {
	leading, trailing := node.Comments()
	for _, c := range leading {
		if c.IsHash {
			return true
		}
	}
	for _, c := range trailing {
		if c.IsHash {
			return true
		}
	}
	return false
}

// InsertLocalizationKeys scans script for TextStatement, DialogueStatement,
// and ChoiceOption nodes whose string literal does not already carry a
// `#key` comment, and inserts a freshly generated one immediately after
// each literal's span in source. Existing keys (anywhere in the tree) are
// honored so every generated key is unique. Insertions are applied in
// descending offset order so earlier ones never shift later ones.
func InsertLocalizationKeys(source string, script *ast.Script) string {
	return InsertLocalizationKeysSeeded(source, script, nil)
}

// InsertLocalizationKeysSeeded is InsertLocalizationKeys with its
// uniqueness set pre-seeded from knownKeys — keys issued in other files or
// in a previous run, e.g. loaded via config.LoadExistingKeys from a
// persisted key manifest, that the source being edited may not itself
// mention yet. knownKeys may be nil.
func InsertLocalizationKeysSeeded(source string, script *ast.Script, knownKeys map[string]bool) string {
	existing := map[string]bool{}
	for k := range knownKeys {
		existing[k] = true
	}
	ast.EachComment(script, func(owner ast.Node, c ast.Comment, trailing bool) {
		if c.IsHash && c.Key != "" {
			existing[c.Key] = true
		}
	})

	type insertion struct {
		offset int
		text   []rune
	}
	var insertions []insertion

	script.EachExcludingImported(func(node ast.Node, _ ast.Node) bool {
		lit := localizationTarget(node)
		if lit == nil || hasHashComment(node) {
			return true
		}
		key := generateKey(existing)
		existing[key] = true
		insertions = append(insertions, insertion{offset: lit.Position.End(), text: []rune(" #" + key)})
		return true
	})

	sort.Slice(insertions, func(i, j int) bool { return insertions[i].offset > insertions[j].offset })

	runes := []rune(source)
	for _, ins := range insertions {
		if ins.offset < 0 || ins.offset > len(runes) {
			continue
		}
		combined := make([]rune, 0, len(runes)+len(ins.text))
		combined = append(combined, runes[:ins.offset]...)
		combined = append(combined, ins.text...)
		combined = append(combined, runes[ins.offset:]...)
		runes = combined
	}
	return string(runes)
}

// RemoveLocalizationKeys deletes every hash comment attached anywhere in
// script, together with its preceding run of spaces/tabs, in descending
// offset order.
func RemoveLocalizationKeys(source string, script *ast.Script) string {
	type removal struct{ start, end int }
	var removals []removal

	runes := []rune(source)
	ast.EachComment(script, func(owner ast.Node, c ast.Comment, trailing bool) {
		if !c.IsHash {
			return
		}
		start := c.Pos.Offset
		end := c.Pos.End()
		for start > 0 && (runes[start-1] == ' ' || runes[start-1] == '\t') {
			start--
		}
		removals = append(removals, removal{start, end})
	})

	sort.Slice(removals, func(i, j int) bool { return removals[i].start > removals[j].start })
	for _, r := range removals {
		if r.start < 0 || r.end > len(runes) || r.start > r.end {
			continue
		}
		runes = append(runes[:r.start], runes[r.end:]...)
	}
	return string(runes)
}

// Translation is one (key, string-literal) pair collected by
// ExtractTranslations.
type Translation struct {
	Key     string
	Literal *ast.StringLiteral
}

// TranslatableEntry is a Translation plus the owning statement node, for
// callers (GenerateTranslationFile) that need positional context as well.
type TranslatableEntry struct {
	Key     string
	Node    ast.Node
	Literal *ast.StringLiteral
}

func findHashKey(node ast.Node) (string, bool) {
	leading, trailing := node.Comments()
	for _, c := range leading {
		if c.IsHash {
			return c.Key, true
		}
	}
	for _, c := range trailing {
		if c.IsHash {
			return c.Key, true
		}
	}
	return "", false
}

// ExtractTranslations walks script and collects the (key, literal) pair
// for every localizable statement that already has a hash-comment anchor.
func ExtractTranslations(script *ast.Script) []Translation {
	var out []Translation
	script.EachExcludingImported(func(node ast.Node, _ ast.Node) bool {
		lit := localizationTarget(node)
		if lit == nil {
			return true
		}
		if key, ok := findHashKey(node); ok {
			out = append(out, Translation{Key: key, Literal: lit})
		}
		return true
	})
	return out
}

// ExtractTranslatableEntries is ExtractTranslations plus the owning node,
// for callers that need to re-render it (e.g. GenerateTranslationFile).
func ExtractTranslatableEntries(script *ast.Script) []TranslatableEntry {
	var out []TranslatableEntry
	script.EachExcludingImported(func(node ast.Node, _ ast.Node) bool {
		lit := localizationTarget(node)
		if lit == nil {
			return true
		}
		if key, ok := findHashKey(node); ok {
			out = append(out, TranslatableEntry{Key: key, Node: node, Literal: lit})
		}
		return true
	})
	return out
}

// GenerateTranslationFile emits a translation template: one
// `#key // reference` header per entry (reference rendered by printer),
// followed by the existing translation text for that key if any.
func GenerateTranslationFile(script *ast.Script, existing map[string]string, printer ast.Printer) string {
	entries := ExtractTranslatableEntries(script)
	var b strings.Builder
	for _, e := range entries {
		ref := printer.PrintStringLiteralAsReference(e.Literal)
		b.WriteString("#")
		b.WriteString(e.Key)
		b.WriteString(" // ")
		b.WriteString(ref)
		b.WriteString("\n")
		if tr, ok := existing[e.Key]; ok {
			b.WriteString(tr)
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

// base36Charset is the alphabet InsertLocalizationKeys draws random keys
// from.
const base36Charset = "0123456789abcdefghijklmnopqrstuvwxyz"

// generateKey produces a random base-36 key not present in existing and
// not purely hexadecimal (editors color-preview bare hex runs as colors,
// which is confusing for what's meant to be an opaque id). Length grows
// slowly if collisions keep happening at the current length.
func generateKey(existing map[string]bool) string {
	length := 4
	for attempt := 0; ; attempt++ {
		if attempt > 0 && attempt%64 == 0 {
			length++
		}
		key := randomBase36(length)
		if existing[key] || isPureHex(key) {
			continue
		}
		return key
	}
}

func randomBase36(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = base36Charset[rand.Intn(len(base36Charset))]
	}
	return string(b)
}

func isPureHex(s string) bool {
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			return false
		}
	}
	return true
}
