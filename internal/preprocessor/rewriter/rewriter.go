// Package rewriter performs the single forward pass over one file's text:
// generic declarations are replaced by placeholders, use sites are
// rewritten to reference monomorphic specializations emitted on first use
// in their scope, and everything else is copied through verbatim. After
// rewriting it scans the produced output for import directives.
package rewriter

import (
	"path/filepath"
	"strings"

	"cursey/gennypp/internal/preprocessor/lexical"
	"cursey/gennypp/internal/preprocessor/template"
)

// FileResult is the outcome of rewriting one file.
type FileResult struct {
	Content      string
	HadTemplates bool
	Imports      []string
}

// scopeFrame tracks one entry of the scope stack. Specialization emission
// is recorded per frame so a monomorphization is injected at most once per
// scope.
type scopeFrame struct {
	name    string
	path    string
	depth   int
	emitted map[string]bool
}

// pendingScope is the latch waiting for "namespace/struct/class NAME {".
type pendingScope struct {
	expectName  bool
	expectBrace bool
	keyword     string
	name        string
}

// Rewrite processes text belonging to filePath and returns the rewritten
// content, whether any template activity occurred, and the imports
// discovered in the output. It never fails: unrecognized or malformed
// spans degrade to verbatim pass-through.
func Rewrite(filePath, text string) FileResult {
	var result FileResult
	lookup := template.NewLookup()

	var out strings.Builder
	out.Grow(len(text) + 512)

	pos := 0
	braceDepth := 0
	scopeStack := []scopeFrame{{emitted: make(map[string]bool)}}
	var pending pendingScope

	for pos < len(text) {
		c := text[pos]

		if c == '"' || c == '\'' {
			start := pos
			pos = lexical.SkipStringLiteral(text, pos)
			out.WriteString(text[start:pos])
			continue
		}

		if c == '/' && pos+1 < len(text) {
			if text[pos+1] == '/' {
				start := pos
				pos += 2

				for pos < len(text) && text[pos] != '\n' {
					pos++
				}

				out.WriteString(text[start:pos])
				continue
			}

			if text[pos+1] == '*' {
				start := pos
				pos += 2

				for pos+1 < len(text) && !(text[pos] == '*' && text[pos+1] == '/') {
					pos++
				}

				pos = min(pos+2, len(text))
				out.WriteString(text[start:pos])
				continue
			}
		}

		if lexical.IsIdentStart(c) {
			if def, end, ok := template.ParseDefinition(text, pos); ok {
				def.ScopePath = scopeStack[len(scopeStack)-1].path
				lookup.Register(def)
				result.HadTemplates = true

				if !def.PlaceholderGenerated {
					placeholder := def.Placeholder()
					out.WriteString(placeholder)

					if placeholder != "" && !strings.HasSuffix(out.String(), "\n") {
						out.WriteByte('\n')
					}

					def.PlaceholderGenerated = true
				}

				pos = end
				pending = pendingScope{}
				continue
			}
		}

		switch c {
		case '{':
			out.WriteByte('{')
			pos++
			braceDepth++

			if pending.expectBrace {
				newPath := scopeStack[len(scopeStack)-1].path

				if pending.name != "" {
					if newPath != "" {
						newPath += "."
					}
					newPath += pending.name
				}

				scopeStack = append(scopeStack, scopeFrame{
					name:    pending.name,
					path:    newPath,
					depth:   braceDepth,
					emitted: make(map[string]bool),
				})
				pending = pendingScope{}
			}

			continue

		case '}':
			out.WriteByte('}')
			pos++

			if braceDepth > 0 {
				braceDepth--
			}

			for len(scopeStack) > 1 && scopeStack[len(scopeStack)-1].depth > braceDepth {
				scopeStack = scopeStack[:len(scopeStack)-1]
			}

			pending = pendingScope{}
			continue

		case ';':
			out.WriteByte(';')
			pos++
			pending = pendingScope{}
			continue
		}

		if lexical.IsSpace(c) {
			out.WriteByte(c)
			pos++
			continue
		}

		if lexical.IsTypeChar(c) {
			tokenStart := pos

			for pos < len(text) && lexical.IsTypeChar(text[pos]) {
				pos++
			}

			token := text[tokenStart:pos]

			if pending.expectName {
				pending.name = token
				pending.expectName = false
				pending.expectBrace = true
			}

			if token == "namespace" || token == "struct" || token == "class" {
				pending = pendingScope{keyword: token, expectName: true}
				out.WriteString(token)
				continue
			}

			lookahead := lexical.SkipSpaceAndComments(text, pos)

			if lookahead < len(text) && text[lookahead] == '<' {
				args, argsEnd := template.ParseArguments(text, lookahead)

				if len(args) > 0 {
					currentScope := scopeStack[len(scopeStack)-1].path

					if def := lookup.Resolve(token, currentScope); def != nil {
						tokenPrefix := ""
						if dot := strings.LastIndexByte(token, '.'); dot >= 0 {
							tokenPrefix = token[:dot]
						}

						spec := def.RegisterSpecialization(args, tokenPrefix, currentScope)
						scope := &scopeStack[len(scopeStack)-1]

						if !scope.emitted[spec.SanitizedName] {
							scope.emitted[spec.SanitizedName] = true
							emitSpecialization(&out, def, spec)
						}

						out.WriteString(spec.SanitizedName)
						pos = argsEnd
						result.HadTemplates = true
						pending = pendingScope{}
						continue
					}
				}

				// no specialization, keep the original span
				out.WriteString(text[tokenStart:argsEnd])
				pos = argsEnd
				continue
			}

			out.WriteString(token)
			continue
		}

		out.WriteByte(c)
		pos++
	}

	result.Content = out.String()
	result.Imports = ExtractImports(result.Content, filePath)
	return result
}

// emitSpecialization materializes a monomorphic definition ahead of its
// first use in the current scope, preserving the indentation of the line
// being emitted.
func emitSpecialization(out *strings.Builder, def *template.Definition, spec *template.Specialization) {
	indent := currentIndent(out.String())

	if out.Len() > 0 && !strings.HasSuffix(out.String(), "\n") {
		out.WriteByte('\n')
	}

	out.WriteString(indent)
	out.WriteString(def.Keyword)
	out.WriteByte(' ')
	out.WriteString(spec.SanitizedName)
	out.WriteString(spec.Between)
	out.WriteByte('{')
	out.WriteString(spec.Body)

	if firstNonSpace(spec.Closing) != '}' {
		out.WriteByte('}')
	}

	out.WriteString(spec.Closing)

	if !strings.HasSuffix(out.String(), "\n") {
		out.WriteByte('\n')
	}

	out.WriteString(indent)
}

// firstNonSpace returns the first non-whitespace byte of s, or 0.
func firstNonSpace(s string) byte {
	for i := 0; i < len(s); i++ {
		if !lexical.IsSpace(s[i]) {
			return s[i]
		}
	}

	return 0
}

// currentIndent returns the leading whitespace of the last line of text.
func currentIndent(text string) string {
	newline := strings.LastIndexByte(text, '\n')
	if newline < 0 {
		return ""
	}

	end := newline + 1

	for end < len(text) && (text[end] == ' ' || text[end] == '\t') {
		end++
	}

	return text[newline+1 : end]
}

// ExtractImports scans rewritten content for keyword-bounded `import "…"`
// directives and resolves each path against the directory of filePath.
// Strings and comments are opaque; the raw bytes between the quotes form
// the path.
func ExtractImports(text, filePath string) []string {
	var imports []string
	size := len(text)
	pos := 0

	for pos < size {
		c := text[pos]

		if c == '"' || c == '\'' {
			pos = lexical.SkipStringLiteral(text, pos)
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

		if !lexical.IsIdentStart(c) {
			pos++
			continue
		}

		idStart := pos

		for pos < size && lexical.IsIdentChar(text[pos]) {
			pos++
		}

		if text[idStart:pos] != "import" {
			continue
		}

		pos = lexical.SkipSpaceAndComments(text, pos)

		if pos >= size || text[pos] != '"' {
			continue
		}

		pos++
		pathStart := pos

		for pos < size && text[pos] != '"' {
			if text[pos] == '\\' && pos+1 < size {
				pos += 2
			} else {
				pos++
			}
		}

		if pos > pathStart {
			imported := text[pathStart:pos]
			resolved := filepath.Join(filepath.Dir(filePath), imported)

			if abs, err := filepath.Abs(resolved); err == nil {
				resolved = abs
			}

			imports = append(imports, resolved)
		}

		if pos < size && text[pos] == '"' {
			pos++
		}
	}

	return imports
}
