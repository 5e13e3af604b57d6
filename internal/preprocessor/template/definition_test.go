package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefinition_Basic(t *testing.T) {
	text := "struct Foo<typename T>{ T* a; };"

	def, end, ok := ParseDefinition(text, 0)
	require.True(t, ok)

	assert.Equal(t, "struct", def.Keyword)
	assert.Equal(t, "Foo", def.Name)
	require.Len(t, def.Parameters, 1)
	assert.Equal(t, "T", def.Parameters[0].Name)
	assert.Equal(t, TypeParameter, def.Parameters[0].Kind)
	assert.Equal(t, "", def.Between)
	assert.Equal(t, " T* a; ", def.Body)
	assert.Equal(t, "};", def.Closing)
	assert.Equal(t, len(text), end)
}

func TestParseDefinition_ClassWithBase(t *testing.T) {
	text := "class Bar<class U> : public Base { U u; }"

	def, end, ok := ParseDefinition(text, 0)
	require.True(t, ok)

	assert.Equal(t, "class", def.Keyword)
	assert.Equal(t, "Bar", def.Name)
	assert.Equal(t, " : public Base ", def.Between)
	assert.Equal(t, " U u; ", def.Body)
	assert.Equal(t, "}", def.Closing)
	assert.Equal(t, len(text), end)
}

func TestParseDefinition_TrailingNewline(t *testing.T) {
	text := "struct F<typename T>{ T a; };\nnext"

	def, end, ok := ParseDefinition(text, 0)
	require.True(t, ok)

	assert.Equal(t, "};\n", def.Closing)
	assert.Equal(t, 'n', rune(text[end]))
}

func TestParseDefinition_Indentation(t *testing.T) {
	text := "x;\n    struct I<typename T>{ T a; };"

	def, _, ok := ParseDefinition(text, 7)
	require.True(t, ok)
	assert.Equal(t, "    ", def.Indentation)
}

func TestParseDefinition_Rejections(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no parameter list", "struct Foo{ int a; };"},
		{"empty parameter list", "struct Foo<>{};"},
		{"wrong keyword", "union Foo<typename T>{};"},
		{"unclosed angle", "struct X<typename T{ int a; };"},
		{"unclosed brace", "struct X<typename T>{ int a;"},
		{"missing name", "struct <typename T>{};"},
		{"parameters without names", "struct P<...>{};"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := ParseDefinition(tt.text, 0)
			assert.False(t, ok)
		})
	}
}

func TestParseDefinition_OpaqueRegions(t *testing.T) {
	text := `struct S</*k*/typename T>{ const char* s = "}"; T t; };`

	def, end, ok := ParseDefinition(text, 0)
	require.True(t, ok)

	require.Len(t, def.Parameters, 1)
	assert.Equal(t, "T", def.Parameters[0].Name)
	assert.Equal(t, ` const char* s = "}"; T t; `, def.Body)
	assert.Equal(t, len(text), end)
}

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantArgs []string
		wantEnd  int
	}{
		{"single", "<int>", []string{"int"}, 5},
		{"multiple", "<int, long>", []string{"int", "long"}, 11},
		{"nested", "<A<int>, B>", []string{"A<int>", "B"}, 11},
		{"empty", "<>", nil, 2},
		{"not at angle", "x", nil, 0},
		{"unclosed", "<int", nil, 4},
		{"string opaque", `<"a,b", c>`, []string{`"a,b"`, "c"}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, end := ParseArguments(tt.text, 0)
			assert.Equal(t, tt.wantArgs, args)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestFullName(t *testing.T) {
	def := &Definition{Name: "Foo"}
	assert.Equal(t, "Foo", def.FullName())

	def.ScopePath = "ns.inner"
	assert.Equal(t, "ns.inner.Foo", def.FullName())
}
