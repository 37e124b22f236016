package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SymbolLeaf(t *testing.T) {
	tm, err := Parse("x")
	require.NoError(t, err)
	assert.Equal(t, Sym("x"), tm)
}

func TestParse_NumberLeaf(t *testing.T) {
	tm, err := Parse("42")
	require.NoError(t, err)
	n, ok := tm.(Num)
	require.True(t, ok, "expected Num, got %T", tm)
	assert.Equal(t, "42", n.Dec.String())
}

func TestParse_NegativeNumber(t *testing.T) {
	tm, err := Parse("-3")
	require.NoError(t, err)
	n, ok := tm.(Num)
	require.True(t, ok, "expected Num, got %T", tm)
	assert.Equal(t, "-3", n.Dec.String())
}

func TestParse_BareSignIsSymbol(t *testing.T) {
	// "+" and "-" on their own are operators, not numbers.
	tm, err := Parse("+")
	require.NoError(t, err)
	assert.Equal(t, Sym("+"), tm)
}

func TestParse_Application(t *testing.T) {
	tm, err := Parse("(f a b)")
	require.NoError(t, err)
	call, ok := tm.(Call)
	require.True(t, ok, "expected Call, got %T", tm)
	assert.Equal(t, "f", call.Head)
	require.Len(t, call.Args, 2)
	assert.Equal(t, Sym("a"), call.Args[0])
	assert.Equal(t, Sym("b"), call.Args[1])
}

func TestParse_Nested(t *testing.T) {
	tm, err := Parse("(+ (* x 2) 3)")
	require.NoError(t, err)
	outer, ok := tm.(Call)
	require.True(t, ok)
	assert.Equal(t, "+", outer.Head)
	require.Len(t, outer.Args, 2)

	inner, ok := outer.Args[0].(Call)
	require.True(t, ok)
	assert.Equal(t, "*", inner.Head)
}

func TestParse_NullaryApplication(t *testing.T) {
	tm, err := Parse("(now)")
	require.NoError(t, err)
	call, ok := tm.(Call)
	require.True(t, ok)
	assert.Equal(t, "now", call.Head)
	assert.Empty(t, call.Args)
}

func TestParse_Errors(t *testing.T) {
	for _, src := range []string{"", "(", ")", "(f a", "((f) x)", "a b"} {
		_, err := Parse(src)
		assert.Error(t, err, "input %q should not parse", src)
	}
}

func TestParse_NFCNormalization(t *testing.T) {
	// "e" + combining acute accent must intern identically to precomposed "é".
	composed := "é"
	decomposed := "é"
	a, err := Parse(composed)
	require.NoError(t, err)
	b, err := Parse(decomposed)
	require.NoError(t, err)
	assert.Equal(t, a, b, "NFC normalization should unify both spellings")
}

func TestFormat_RoundTrip(t *testing.T) {
	for _, src := range []string{"x", "42", "(f a b)", "(+ (* x 2) 3)"} {
		tm, err := Parse(src)
		require.NoError(t, err)
		assert.Equal(t, src, Format(tm))
	}
}
