package textutil

import "strings"

// formattingLabels names the invisible bidi and zero-width runes so they
// show up on screen instead of silently reordering or hiding text.
var formattingLabels = map[rune]string{
	0x061C: "⟪ALM⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2028: "⟪LSEP⟫",
	0x2029: "⟪PSEP⟫",
	0x00AD: "⟪SHY⟫",
	0x180E: "⟪MVS⟫",
	0x2060: "⟪WJ⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0x206A: "⟪ISS⟫",
	0x206B: "⟪ASS⟫",
	0x206C: "⟪IAFS⟫",
	0x206D: "⟪AAFS⟫",
	0x206E: "⟪NADS⟫",
	0x206F: "⟪NODS⟫",
	0xFEFF: "⟪BOM⟫",
}

// Sanitize makes text safe to paint on a terminal. Control characters that
// could start escape sequences become '?', line breaks and tabs become
// spaces, and formatting runes are replaced by their label.
func Sanitize(text string) string {
	if strings.IndexFunc(text, needsReplacement) < 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 8)
	for _, r := range text {
		if label, ok := formattingLabels[r]; ok {
			b.WriteString(label)
			continue
		}
		switch {
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsReplacement(r rune) bool {
	if r < 0x20 || r == 0x7f {
		return true
	}
	_, ok := formattingLabels[r]
	return ok
}

// HasFormattingRunes reports whether text contains bidi or zero-width
// formatting runes.
func HasFormattingRunes(text string) bool {
	return strings.IndexFunc(text, func(r rune) bool {
		_, ok := formattingLabels[r]
		return ok
	}) >= 0
}
