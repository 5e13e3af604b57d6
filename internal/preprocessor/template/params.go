package template

import (
	"strings"

	"cursey/gennypp/internal/preprocessor/lexical"
)

// SplitParameters splits a raw parameter list at top-level commas and
// classifies each entry. Default values (after a top-level '=') and
// trailing parameter packs are stripped before the name is extracted; an
// entry with no identifier suffix is discarded.
func SplitParameters(params string) []Parameter {
	var result []Parameter
	depth := 0
	tokenStart := 0

	for i := 0; i < len(params); i++ {
		switch params[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				if param, ok := parseParameter(params[tokenStart:i]); ok {
					result = append(result, param)
				}

				tokenStart = i + 1
			}
		}
	}

	if param, ok := parseParameter(params[tokenStart:]); ok {
		result = append(result, param)
	}

	return result
}

// parseParameter extracts the name and kind from one parameter's text.
func parseParameter(token string) (Parameter, bool) {
	cleaned := strings.TrimSpace(token)

	if cleaned == "" {
		return Parameter{}, false
	}

	// drop a default value at the first top-level '='
	depth := 0
	assignPos := -1

	for j := 0; j < len(cleaned); j++ {
		switch cleaned[j] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case '=':
			if depth == 0 {
				assignPos = j
			}
		}

		if assignPos >= 0 {
			break
		}
	}

	if assignPos >= 0 {
		cleaned = strings.TrimSpace(cleaned[:assignPos])
	}

	if cleaned == "" {
		return Parameter{}, false
	}

	if strings.HasSuffix(cleaned, "...") {
		cleaned = strings.TrimSpace(cleaned[:len(cleaned)-3])
	}

	end := len(cleaned)

	for end > 0 && lexical.IsSpace(cleaned[end-1]) {
		end--
	}

	begin := end

	for begin > 0 && lexical.IsIdentChar(cleaned[begin-1]) {
		begin--
	}

	if begin >= end {
		return Parameter{}, false
	}

	param := Parameter{Name: cleaned[begin:end], Kind: NonTypeParameter}
	prefix := strings.ToLower(strings.TrimSpace(cleaned[:begin]))

	if strings.Contains(prefix, "typename") || strings.Contains(prefix, "class") ||
		strings.Contains(prefix, "struct") || strings.Contains(prefix, "template") {
		param.Kind = TypeParameter
	}

	return param, true
}

// ReplaceParameters substitutes every identifier-boundary occurrence of
// each parameter name with the corresponding argument. A length mismatch
// leaves the text unchanged.
func ReplaceParameters(text string, params []Parameter, args []string) string {
	if len(params) != len(args) {
		return text
	}

	for i := range params {
		text = lexical.ReplaceIdentifier(text, params[i].Name, args[i])
	}

	return text
}
