package template

import (
	"strings"

	"cursey/gennypp/internal/preprocessor/constexpr"
	"cursey/gennypp/internal/preprocessor/lexical"
)

// RegisterSpecialization returns the specialization of def for args,
// creating it on first use. prefix is the qualification of the use-site
// token (empty when unqualified); the scope token baked into the mangled
// name falls back to the definition's own scope, then to the current
// scope. Deduplication is by (scope token, argument tuple).
func (d *Definition) RegisterSpecialization(args []string, prefix, currentScope string) *Specialization {
	var scopeToken string

	switch {
	case prefix != "":
		scopeToken = SanitizeScopeName(prefix)
	case d.ScopePath != "":
		scopeToken = SanitizeScopeName(d.ScopePath)
	default:
		scopeToken = SanitizeScopeName(currentScope)
	}

	signature := scopeToken + "|" + makeSignature(args)

	if d.specializationIndex == nil {
		d.specializationIndex = make(map[string]int)
	}

	if index, ok := d.specializationIndex[signature]; ok {
		return d.Specializations[index]
	}

	sanitizedName := d.Name

	if scopeToken != "" {
		sanitizedName += "_" + scopeToken
	}

	for _, arg := range args {
		sanitizedName += "_" + SanitizeToken(arg)
	}

	d.specializationIndex[signature] = len(d.Specializations)

	spec := &Specialization{
		Arguments:     args,
		SanitizedName: sanitizedName,
		Between:       ReplaceParameters(d.Between, d.Parameters, args),
		Body:          constexpr.FoldBrackets(ReplaceParameters(d.Body, d.Parameters, args)),
		Closing:       ReplaceParameters(d.Closing, d.Parameters, args),
	}

	d.Specializations = append(d.Specializations, spec)
	return spec
}

// PlaceholderBody erases the parameters from the body: type parameters
// become void* (or void when raw text already supplies the '*', looking
// through const/volatile qualifiers), non-type parameters become 1.
// Bracket expressions are folded afterwards so sizes stay constant.
func (d *Definition) PlaceholderBody() string {
	result := d.Body

	for _, param := range d.Parameters {
		searchPos := 0

		for searchPos < len(result) {
			matchPos := lexical.FindIdentifier(result, param.Name, searchPos)
			if matchPos < 0 {
				break
			}

			if param.Kind == TypeParameter {
				lookahead := skipSpaces(result, matchPos+len(param.Name))
				lookahead = skipQualifiers(result, lookahead)

				replacement := "void*"
				if lookahead < len(result) && result[lookahead] == '*' {
					replacement = "void"
				}

				result = result[:matchPos] + replacement + result[matchPos+len(param.Name):]
				searchPos = matchPos + len(replacement)
			} else {
				result = result[:matchPos] + "1" + result[matchPos+len(param.Name):]
				searchPos = matchPos + 1
			}
		}
	}

	return constexpr.FoldBrackets(result)
}

func skipSpaces(text string, pos int) int {
	for pos < len(text) && lexical.IsSpace(text[pos]) {
		pos++
	}

	return pos
}

func skipQualifiers(text string, pos int) int {
	for advanced := true; advanced && pos < len(text); {
		advanced = false

		for _, qualifier := range []string{"const", "volatile"} {
			if strings.HasPrefix(text[pos:], qualifier) {
				end := pos + len(qualifier)
				if end >= len(text) || !lexical.IsIdentChar(text[end]) {
					pos = skipSpaces(text, end)
					advanced = true
				}
			}
		}
	}

	return pos
}

// Placeholder renders the generic-erased definition that stands in for
// the declaration in the rewritten file.
func (d *Definition) Placeholder() string {
	convertedBody := d.PlaceholderBody()

	var b strings.Builder
	b.WriteString(d.Indentation)
	b.WriteString(d.Keyword)
	b.WriteByte(' ')
	b.WriteString(d.Name)
	b.WriteString(d.Between)
	b.WriteByte('{')
	b.WriteString(convertedBody)
	b.WriteString(d.Closing)

	if convertedBody != "" && convertedBody[len(convertedBody)-1] != '\n' &&
		(d.Closing == "" || d.Closing[0] != '\n') {
		b.WriteByte('\n')
	}

	return b.String()
}
