// Package lexical provides the byte-level scanning primitives shared by the
// preprocessor: character classification, whitespace/comment skipping,
// string-literal skipping and identifier-boundary matching.
//
// All positions are byte offsets. The dialect is ASCII at the structural
// level, so classification works on bytes.
package lexical

import "strings"

// IsIdentStart reports whether c can begin an identifier.
func IsIdentStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// IsIdentChar reports whether c can continue an identifier.
func IsIdentChar(c byte) bool {
	return IsIdentStart(c) || (c >= '0' && c <= '9')
}

// IsTypeChar reports whether c belongs to a type token. Type tokens admit
// '.' and ':' so qualified names scan as a single token.
func IsTypeChar(c byte) bool {
	return IsIdentChar(c) || c == '.' || c == ':'
}

// IsSpace reports whether c is ASCII whitespace.
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// IsDigit reports whether c is a decimal digit.
func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// SkipSpaceAndComments advances pos past whitespace, // line comments and
// /* */ block comments. A block comment with no closing marker extends to
// the end of the text.
func SkipSpaceAndComments(text string, pos int) int {
	size := len(text)

	for pos < size {
		c := text[pos]

		if IsSpace(c) {
			pos++
			continue
		}

		if c == '/' && pos+1 < size {
			if text[pos+1] == '/' {
				pos += 2
				for pos < size && text[pos] != '\n' {
					pos++
				}
				continue
			}

			if text[pos+1] == '*' {
				pos += 2
				for pos+1 < size && !(text[pos] == '*' && text[pos+1] == '/') {
					pos++
				}
				pos = min(pos+2, size)
				continue
			}
		}

		break
	}

	return pos
}

// SkipStringLiteral advances past a quoted literal. pos must sit on the
// opening delimiter (either '"' or '\''). Any character following a
// backslash is consumed. An unterminated literal extends to end of text.
func SkipStringLiteral(text string, pos int) int {
	delimiter := text[pos]
	pos++

	for pos < len(text) {
		c := text[pos]

		if c == '\\' {
			pos += 2
			continue
		}

		if c == delimiter {
			pos++
			break
		}

		pos++
	}

	return pos
}

// MatchKeyword reports whether keyword appears at pos with non-identifier
// characters on both sides.
func MatchKeyword(text string, pos int, keyword string) bool {
	if pos+len(keyword) > len(text) {
		return false
	}

	if pos > 0 && IsIdentChar(text[pos-1]) {
		return false
	}

	if end := pos + len(keyword); end < len(text) && IsIdentChar(text[end]) {
		return false
	}

	return text[pos:pos+len(keyword)] == keyword
}

// FindIdentifier returns the offset of the next occurrence of token in text
// at or after from where both neighbors are non-identifier characters, or
// -1 if there is none.
func FindIdentifier(text, token string, from int) int {
	for {
		found := strings.Index(text[from:], token)
		if found < 0 {
			return -1
		}
		found += from

		beforeOK := found == 0 || !IsIdentChar(text[found-1])
		end := found + len(token)
		afterOK := end >= len(text) || !IsIdentChar(text[end])

		if beforeOK && afterOK {
			return found
		}

		from = end
	}
}

// ReplaceIdentifier replaces every identifier-boundary occurrence of name
// in text with replacement.
func ReplaceIdentifier(text, name, replacement string) string {
	pos := 0

	for {
		found := FindIdentifier(text, name, pos)
		if found < 0 {
			return text
		}

		text = text[:found] + replacement + text[found+len(name):]
		pos = found + len(replacement)
	}
}
