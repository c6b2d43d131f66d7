package fuzzy

import "unicode"

// Boundaries computes the boundary (skip) index of text: the byte offsets at
// which a new matchable unit begins. A unit begins at a word start (an
// alphanumeric rune after a non-alphanumeric one), at a case shift (an
// uppercase rune after a non-uppercase one, splitting camelCase and
// PascalCase), and at every ASCII punctuation rune. The total byte length of
// text is appended as a final sentinel so that boundaries[i] and
// boundaries[i+1] always delimit one unit without further bounds checks.
//
// Offsets are rune-aligned: the scan decodes runes and records each rune's
// starting byte offset, so a boundary can never split a multi-byte encoding.
// The result may be cached alongside an unchanged text and reused across
// queries.
func Boundaries(text string) []int {
	boundaries := make([]int, 0, len(text)/4+1)
	wasAlphaNum := false
	wasUpper := false

	for i, r := range text {
		isAlphaNum := unicode.IsLetter(r) || unicode.IsNumber(r)
		isUpper := unicode.IsUpper(r)

		if (isAlphaNum && !wasAlphaNum) || (isUpper && !wasUpper) || isASCIIPunct(r) {
			boundaries = append(boundaries, i)
		}

		wasAlphaNum = isAlphaNum
		wasUpper = isUpper
	}

	return append(boundaries, len(text))
}

// isASCIIPunct reports whether r is a printable ASCII rune that is neither
// alphanumeric nor a space.
func isASCIIPunct(r rune) bool {
	switch {
	case r <= ' ' || r >= 0x7f:
		return false
	case r >= '0' && r <= '9':
		return false
	case r >= 'a' && r <= 'z':
		return false
	case r >= 'A' && r <= 'Z':
		return false
	}
	return true
}
