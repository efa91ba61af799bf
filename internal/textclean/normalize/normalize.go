// Package normalize implements Unicode and encoding normalization (C2): NFC
// composition, mojibake remediation, whitespace collapsing, and HTML entity
// decoding, in that order. It never fails — malformed input is lossily
// decoded rather than rejected, leaving the reject decision to triage (C5).
package normalize

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Result reports whether normalization changed the text, alongside the
// (possibly unchanged) output.
type Result struct {
	Text    string
	Changed bool
}

// DecodeBytes converts raw input bytes to a string, preferring UTF-8 and
// falling back to Latin-1 (Windows-1252 superset via charmap) when the
// input is not valid UTF-8. It never errors: worst case, invalid byte
// sequences become the Unicode replacement character.
func DecodeBytes(raw []byte) string {
	if utf8Valid(raw) {
		return string(raw)
	}
	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "�")
	}
	return string(decoded)
}

func utf8Valid(b []byte) bool {
	return len(b) == len(strings.ToValidUTF8(string(b), ""))
}

// Normalize runs the four-step normalization pipeline (NFC, mojibake
// remediation, whitespace collapsing, HTML entity decoding) and reports
// whether the text changed.
func Normalize(text string) Result {
	original := text

	text = norm.NFC.String(text)
	text = fixMojibake(text)
	text = collapseWhitespace(text)
	text = decodeEntities(text)

	return Result{Text: text, Changed: text != original}
}

// mojibakeRules remediate UTF-8 bytes that were misread as Latin-1/CP1252,
// the classic "double-encoding" artifact. These run after NFC so that
// already-correct text is left untouched (NFC output never introduces
// these byte sequences). Each "from" string is written as literal
// characters; the trailing comment on each rule names the UTF-8 bytes it
// stands for.
var mojibakeRules = []struct{ from, to string }{
	// Latin-1 Supplement letters: UTF-8 C3 xx read byte-by-byte as Latin-1.
	{"Ã©", "é"}, // Ã© -> é  (UTF-8 C3 A9)
	{"Ã¨", "è"}, // Ã¨ -> è  (UTF-8 C3 A8)
	{"Ã ", "à"}, // Ã  -> à  (UTF-8 C3 A0)
	{"Ã´", "ô"}, // Ã´ -> ô  (UTF-8 C3 B4)
	{"Ã§", "ç"}, // Ã§ -> ç  (UTF-8 C3 A7)
	{"Ã¼", "ü"}, // Ã¼ -> ü  (UTF-8 C3 BC)
	{"Ã¶", "ö"}, // Ã¶ -> ö  (UTF-8 C3 B6)
	{"Ã±", "ñ"}, // Ã± -> ñ  (UTF-8 C3 B1)
	// General Punctuation: UTF-8 E2 80 xx read byte-by-byte as Windows-1252.
	{"â€™", "’"}, // â€™ -> '  (UTF-8 E2 80 99)
	{"â€œ", "“"}, // â€œ -> "  (UTF-8 E2 80 9C)
	// Latin-1 Supplement punctuation: UTF-8 C2 xx read byte-by-byte.
	{"Â ", " "},           // NBSP  -> space (UTF-8 C2 A0)
	{"Â«", "«"},      // Â« -> «  (UTF-8 C2 AB)
	{"Â»", "»"},      // Â» -> »  (UTF-8 C2 BB)
}

func fixMojibake(text string) string {
	for _, r := range mojibakeRules {
		if strings.Contains(text, r.from) {
			text = strings.ReplaceAll(text, r.from, r.to)
		}
	}
	return text
}

// zeroWidthRe matches zero-width space/non-joiner/joiner and the byte-order
// mark (U+200B, U+200C, U+200D, U+FEFF), which are deleted outright rather
// than collapsed to a space.
var zeroWidthRe = regexp.MustCompile(`[\x{200B}\x{200C}\x{200D}\x{FEFF}]`)

// collapseWhitespace turns every Unicode whitespace variant (NBSP, various
// em/en spaces, tabs) into a single regular space, and deletes zero-width
// characters and the BOM outright. It also collapses runs of spaces,
// including those created by the deletion step, to one space.
func collapseWhitespace(text string) string {
	text = zeroWidthRe.ReplaceAllString(text, "")

	var b strings.Builder
	b.Grow(len(text))
	lastWasSpace := false
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r':
			b.WriteRune(r)
			lastWasSpace = false
		case r == ' ':
			if !lastWasSpace {
				b.WriteRune(r)
			}
			lastWasSpace = true
		case unicode.IsSpace(r):
			if !lastWasSpace {
				b.WriteRune(' ')
			}
			lastWasSpace = true
		default:
			b.WriteRune(r)
			lastWasSpace = false
		}
	}
	return b.String()
}

// entityRe catches any remaining literal "&...;" sequence so double-encoded
// entities (&amp;amp; -> &amp; -> &) can be unwound by repeated decoding.
var entityRe = regexp.MustCompile(`&(?:#[0-9]+|#x[0-9A-Fa-f]+|[A-Za-z]+);`)

// decodeEntities decodes HTML entities, including double-encoded forms, by
// repeatedly unescaping until a fixed point is reached (bounded to avoid
// pathological input looping forever).
func decodeEntities(text string) string {
	for i := 0; i < 4 && entityRe.MatchString(text); i++ {
		next := html.UnescapeString(text)
		if next == text {
			break
		}
		text = next
	}
	return text
}
