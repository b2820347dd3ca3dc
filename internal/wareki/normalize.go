package wareki

import (
	"strings"

	"golang.org/x/text/width"
)

// Normalize prepares user input for ParseYear: full-width ASCII such as
// "Ｒ５" or "令和５" is folded to half width and surrounding white space,
// including the ideographic space, is trimmed. Kanji are left untouched.
func Normalize(input string) string {
	return strings.TrimSpace(width.Fold.String(input))
}
