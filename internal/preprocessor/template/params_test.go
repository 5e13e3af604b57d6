package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitParameters(t *testing.T) {
	tests := []struct {
		name   string
		params string
		want   []Parameter
	}{
		{
			"single type parameter",
			"typename T",
			[]Parameter{{Name: "T", Kind: TypeParameter}},
		},
		{
			"class keyword",
			"class U",
			[]Parameter{{Name: "U", Kind: TypeParameter}},
		},
		{
			"non-type parameter",
			"int N",
			[]Parameter{{Name: "N", Kind: NonTypeParameter}},
		},
		{
			"mixed",
			"typename T, int N",
			[]Parameter{
				{Name: "T", Kind: TypeParameter},
				{Name: "N", Kind: NonTypeParameter},
			},
		},
		{
			"default value stripped",
			"typename T = int",
			[]Parameter{{Name: "T", Kind: TypeParameter}},
		},
		{
			"variadic pack",
			"typename... Args",
			[]Parameter{{Name: "Args", Kind: TypeParameter}},
		},
		{
			"trailing ellipsis",
			"typename Args...",
			[]Parameter{{Name: "Args", Kind: TypeParameter}},
		},
		{
			"template template parameter",
			"template<typename> class TT",
			[]Parameter{{Name: "TT", Kind: TypeParameter}},
		},
		{
			"nested angle default",
			"typename T = A<int, long>, int N",
			[]Parameter{
				{Name: "T", Kind: TypeParameter},
				{Name: "N", Kind: NonTypeParameter},
			},
		},
		{
			"unnamed entries discarded",
			"typename T, ...",
			[]Parameter{{Name: "T", Kind: TypeParameter}},
		},
		{
			"empty",
			"",
			nil,
		},
		{
			"size type is non-type",
			"size_t Count",
			[]Parameter{{Name: "Count", Kind: NonTypeParameter}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitParameters(tt.params))
		})
	}
}

// The kind heuristic is a substring search over the prefix, so a prefix
// that merely contains "class" classifies as a type parameter.
func TestSplitParameters_HeuristicPrefix(t *testing.T) {
	params := SplitParameters("MyClassOfT x")
	require.Len(t, params, 1)
	assert.Equal(t, "x", params[0].Name)
	assert.Equal(t, TypeParameter, params[0].Kind)
}

func TestReplaceParameters(t *testing.T) {
	params := []Parameter{
		{Name: "T", Kind: TypeParameter},
		{Name: "N", Kind: NonTypeParameter},
	}

	got := ReplaceParameters(" T data[N]; TN x; ", params, []string{"int", "4"})
	assert.Equal(t, " int data[4]; TN x; ", got)

	// length mismatch leaves the text alone
	got = ReplaceParameters(" T x; ", params, []string{"int"})
	assert.Equal(t, " T x; ", got)
}
