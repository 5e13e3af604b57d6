package template

import (
	"strings"

	"cursey/gennypp/internal/preprocessor/lexical"
)

// SanitizeToken maps an argument string to an identifier-safe fragment:
// pointers become "ptr", references "ref", brackets "arr", angle brackets
// "lt"/"gt", a '.' becomes an underscore between separators (so "a.b"
// yields "a___b"), and every other non-identifier character collapses
// into a single underscore separator.
func SanitizeToken(token string) string {
	var b strings.Builder
	b.Grow(len(token) + 8)

	pushSep := func() {
		if b.Len() > 0 {
			s := b.String()
			if s[len(s)-1] != '_' {
				b.WriteByte('_')
			}
		}
	}

	pushWord := func(word string) {
		pushSep()
		b.WriteString(word)
		pushSep()
	}

	for i := 0; i < len(token); i++ {
		c := token[i]

		switch {
		case lexical.IsIdentChar(c):
			b.WriteByte(c)
		case c == '*':
			pushWord("ptr")
		case c == '&':
			pushWord("ref")
		case c == '[' || c == ']':
			pushWord("arr")
		case c == '<':
			pushWord("lt")
		case c == '>':
			pushWord("gt")
		case c == '.':
			pushWord(".")
		default:
			pushSep()
		}
	}

	result := b.String()
	result = strings.TrimPrefix(result, "_")

	if result != "" && lexical.IsDigit(result[0]) {
		result = "_" + result
	}

	if result == "" {
		result = "T"
	}

	return strings.ReplaceAll(result, ".", "_")
}

// SanitizeScopeName maps a dotted scope path to an identifier fragment by
// replacing every non-identifier character with an underscore.
func SanitizeScopeName(path string) string {
	if path == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(path))

	for i := 0; i < len(path); i++ {
		if lexical.IsIdentChar(path[i]) {
			b.WriteByte(path[i])
		} else {
			b.WriteByte('_')
		}
	}

	return b.String()
}

// makeSignature joins the raw arguments with an unprintable separator so
// signatures compare byte-for-byte.
func makeSignature(args []string) string {
	return strings.Join(args, "\x1f")
}
