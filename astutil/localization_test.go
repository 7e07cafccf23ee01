package astutil

import (
	"strings"
	"testing"

	"github.com/loreline-lang/loreline/ast"
	"github.com/loreline-lang/loreline/config"
	"github.com/loreline-lang/loreline/position"
	"github.com/loreline-lang/loreline/token"
)

// stringLiteralAt builds a *ast.StringLiteral whose Position matches the
// span it occupies in source, as InsertLocalizationKeys/
// RemoveLocalizationKeys require to compute insertion/removal offsets.
func stringLiteralAt(text string, offset int) *ast.StringLiteral {
	return &ast.StringLiteral{
		Base: ast.Base{
			Position: position.Position{Line: 1, Column: offset + 1, Offset: offset, Length: len([]rune(text))},
		},
		Quoting: token.DoubleQuoted,
		Parts:   []ast.StringPart{&ast.RawPart{Text: text}},
	}
}

func TestInsertLocalizationKeysInsertsOneKeyPerUnkeyedLiteral(t *testing.T) {
	source := `"Hello"` + "\n" + `"World"` + "\n"
	helloText := `"Hello"`
	helloLit := stringLiteralAt("Hello", 0)
	helloLit.Position.Length = len([]rune(helloText))

	worldOffset := len([]rune(helloText)) + 1 // +1 for the newline
	worldText := `"World"`
	worldLit := stringLiteralAt("World", worldOffset)
	worldLit.Position.Length = len([]rune(worldText))

	script := &ast.Script{Body: []ast.Node{
		&ast.TextStatement{Content: helloLit},
		&ast.TextStatement{Content: worldLit},
	}}

	out := InsertLocalizationKeys(source, script)

	if strings.Count(out, "#") != 2 {
		t.Fatalf("expected exactly 2 inserted keys, got output %q", out)
	}
	if !strings.Contains(out, `"Hello" #`) {
		t.Fatalf("expected a key inserted right after the Hello literal, got %q", out)
	}
	if !strings.Contains(out, `"World" #`) {
		t.Fatalf("expected a key inserted right after the World literal, got %q", out)
	}
}

func TestInsertLocalizationKeysSkipsAlreadyKeyedLiterals(t *testing.T) {
	source := `"Hello" #abcd` + "\n"
	lit := stringLiteralAt("Hello", 0)
	lit.Position.Length = len([]rune(`"Hello"`))
	stmt := &ast.TextStatement{Content: lit}
	stmt.TrailingComments = []ast.Comment{{IsHash: true, Key: "abcd", Pos: position.Position{Offset: 8, Length: 5}}}
	script := &ast.Script{Body: []ast.Node{stmt}}

	out := InsertLocalizationKeys(source, script)
	if out != source {
		t.Fatalf("expected source untouched when every literal already has a key, got %q", out)
	}
}

func TestInsertLocalizationKeysGeneratesUniqueKeys(t *testing.T) {
	source := strings.Repeat(`"X"`+"\n", 3)
	var body []ast.Node
	offset := 0
	for i := 0; i < 3; i++ {
		lit := stringLiteralAt("X", offset)
		lit.Position.Length = 3
		body = append(body, &ast.TextStatement{Content: lit})
		offset += 4 // len(`"X"`) + newline
	}
	script := &ast.Script{Body: body}

	out := InsertLocalizationKeys(source, script)
	var keys []string
	for _, part := range strings.Split(out, "\n") {
		if idx := strings.IndexByte(part, '#'); idx >= 0 {
			keys = append(keys, part[idx+1:])
		}
	}
	if len(keys) != 3 {
		t.Fatalf("expected 3 generated keys, got %v", keys)
	}
	seen := map[string]bool{}
	for _, k := range keys {
		if seen[k] {
			t.Fatalf("expected unique keys, got duplicate %q among %v", k, keys)
		}
		seen[k] = true
	}
}

// TestInsertLocalizationKeysSeededHonorsLoadedManifest wires
// config.LoadExistingKeys' output into InsertLocalizationKeysSeeded's
// uniqueness set, as SPEC_FULL.md §4.5 describes. generateKey picks a
// random key, so this can't force a collision deterministically, but it
// does confirm the manifest's keys actually reach the dedup set and that
// the generated key comes back in the output.
func TestInsertLocalizationKeysSeededHonorsLoadedManifest(t *testing.T) {
	manifest := []byte("keys: [abcd, ef01]\n")
	known, err := config.LoadExistingKeys(manifest)
	if err != nil {
		t.Fatalf("LoadExistingKeys: %v", err)
	}
	if !known["abcd"] || !known["ef01"] {
		t.Fatalf("expected both manifest keys loaded, got %v", known)
	}

	source := `"Hello"` + "\n"
	lit := stringLiteralAt("Hello", 0)
	lit.Position.Length = len([]rune(`"Hello"`))
	script := &ast.Script{Body: []ast.Node{&ast.TextStatement{Content: lit}}}

	out := InsertLocalizationKeysSeeded(source, script, known)

	idx := strings.IndexByte(out, '#')
	if idx < 0 {
		t.Fatalf("expected a generated key, got %q", out)
	}
	key := strings.TrimRight(out[idx+1:], "\n")
	if known[key] {
		t.Fatalf("generated key %q collides with a key from the loaded manifest", key)
	}
}

func TestRemoveLocalizationKeysStripsHashCommentAndLeadingSpace(t *testing.T) {
	source := `"Hello" #abcd` + "\n"
	lit := stringLiteralAt("Hello", 0)
	lit.Position.Length = len([]rune(`"Hello"`))
	stmt := &ast.TextStatement{Content: lit}
	// The hash comment "#abcd" starts right after the space following the
	// closing quote, at rune offset 8 (`"Hello"` is 7 runes, offset 7 is
	// the space, offset 8 is '#').
	stmt.TrailingComments = []ast.Comment{{IsHash: true, Key: "abcd", Pos: position.Position{Offset: 8, Length: 5}}}
	script := &ast.Script{Body: []ast.Node{stmt}}

	out := RemoveLocalizationKeys(source, script)
	if out != `"Hello"`+"\n" {
		t.Fatalf("got %q, want %q", out, `"Hello"`+"\n")
	}
}

// fakePrinter is a minimal ast.Printer for GenerateTranslationFile tests.
type fakePrinter struct{}

func (fakePrinter) PrintStringLiteralAsReference(str *ast.StringLiteral) string {
	var b strings.Builder
	for _, p := range str.Parts {
		if raw, ok := p.(*ast.RawPart); ok {
			b.WriteString(raw.Text)
		}
	}
	return b.String()
}

func (fakePrinter) PrintStringLiteralAsText(str *ast.StringLiteral) string {
	return fakePrinter{}.PrintStringLiteralAsReference(str)
}

func keyedTextStatement(text, key string) *ast.TextStatement {
	lit := &ast.StringLiteral{Parts: []ast.StringPart{&ast.RawPart{Text: text}}}
	stmt := &ast.TextStatement{Content: lit}
	stmt.TrailingComments = []ast.Comment{{IsHash: true, Key: key}}
	return stmt
}

func TestExtractTranslationsOnlyReturnsKeyedLiterals(t *testing.T) {
	keyed := keyedTextStatement("Hello", "abcd")
	unkeyed := &ast.TextStatement{Content: &ast.StringLiteral{Parts: []ast.StringPart{&ast.RawPart{Text: "World"}}}}
	script := &ast.Script{Body: []ast.Node{keyed, unkeyed}}

	got := ExtractTranslations(script)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 translation, got %v", got)
	}
	if got[0].Key != "abcd" {
		t.Fatalf("Key = %q, want abcd", got[0].Key)
	}
}

func TestGenerateTranslationFileIncludesReferenceAndExisting(t *testing.T) {
	stmt := keyedTextStatement("Hello", "abcd")
	script := &ast.Script{Body: []ast.Node{stmt}}

	out := GenerateTranslationFile(script, map[string]string{"abcd": "Bonjour"}, fakePrinter{})
	if !strings.Contains(out, "#abcd // Hello") {
		t.Fatalf("expected a header line with the key and reference, got %q", out)
	}
	if !strings.Contains(out, "Bonjour") {
		t.Fatalf("expected the existing translation text to be included, got %q", out)
	}
}

func TestGenerateTranslationFileOmitsMissingExistingTranslation(t *testing.T) {
	stmt := keyedTextStatement("Hello", "abcd")
	script := &ast.Script{Body: []ast.Node{stmt}}

	out := GenerateTranslationFile(script, map[string]string{}, fakePrinter{})
	if !strings.Contains(out, "#abcd // Hello") {
		t.Fatalf("expected a header line even with no existing translation, got %q", out)
	}
	if want := "#abcd // Hello\n\n\n"; out != want {
		t.Fatalf("expected no translation text for a key missing from existing, got %q, want %q", out, want)
	}
}
