package render

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnicodeTypesetter(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"x^2", "x²"},
		{"E = mc^2", "E = mc²"},
		{"2^{10}", "2¹⁰"},
		{"a_i", "aᵢ"},
		{"x_{10}", "x₁₀"},
		{`\alpha + \beta`, "α + β"},
		{`\pi r^2`, "π r²"},
		{`\frac{a}{b}`, "a/b"},
		{`\frac{a+b}{2}`, "(a+b)/2"},
		{`\sqrt{2}`, "√2"},
		{`\sqrt{x+1}`, "√(x+1)"},
		{`\sum_{i} x_i`, "∑ᵢ xᵢ"},
		{`a \leq b`, "a ≤ b"},
		{`x \to \infty`, "x → ∞"},
	}

	var ts UnicodeTypesetter
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ts.Typeset(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnicodeTypesetterRejectsWhatItCannotExpress(t *testing.T) {
	var ts UnicodeTypesetter

	for _, expr := range []string{
		`\mathbb{R}`,
		"x^b",
		"",
		"   ",
	} {
		_, err := ts.Typeset(expr)
		assert.Error(t, err, "expr %q", expr)
	}
}

func TestMathCacheAppliesAfterBackgroundTypeset(t *testing.T) {
	cache := NewMathCache(UnicodeTypesetter{})

	first := cache.Apply("area is $\\pi r^2$ exactly")
	assert.Equal(t, "area is $\\pi r^2$ exactly", first, "first pass keeps the raw span")

	select {
	case <-cache.Updates():
	case <-time.After(2 * time.Second):
		t.Fatal("no completion signal")
	}

	assert.Equal(t, "area is π r² exactly", cache.Apply("area is $\\pi r^2$ exactly"))
}

func TestMathCacheFailedSpanStaysRaw(t *testing.T) {
	cache := NewMathCache(UnicodeTypesetter{})
	text := "the reals $\\mathbb{R}$ stay raw"

	assert.Equal(t, text, cache.Apply(text))

	select {
	case <-cache.Updates():
	case <-time.After(2 * time.Second):
		t.Fatal("no completion signal")
	}

	assert.Equal(t, text, cache.Apply(text))

	cache.mu.Lock()
	defer cache.mu.Unlock()
	assert.Contains(t, cache.failed, `$\mathbb{R}$`)
	assert.Empty(t, cache.pending, "failed spans are not retried")
}

func TestMathCacheLeavesDollarAmountsAlone(t *testing.T) {
	cache := NewMathCache(UnicodeTypesetter{})
	text := "it costs $5 and $6 respectively"

	assert.Equal(t, text, cache.Apply(text))

	cache.mu.Lock()
	defer cache.mu.Unlock()
	assert.Empty(t, cache.pending, "no spans should have been scheduled")
}

func TestMathCacheDisplayDelimiters(t *testing.T) {
	cache := NewMathCache(UnicodeTypesetter{})
	text := `$$x^2$$ and \[a_1\] and \(b_2\)`

	cache.Apply(text)
	for i := 0; i < 3; i++ {
		select {
		case <-cache.Updates():
		case <-time.After(2 * time.Second):
			// Coalesced signals cover several completions.
		}
		if cache.Apply(text) == "x² and a₁ and b₂" {
			break
		}
	}

	assert.Equal(t, "x² and a₁ and b₂", cache.Apply(text))
}

func TestStripMathDelimiters(t *testing.T) {
	tests := []struct {
		span string
		want string
	}{
		{"$$x$$", "x"},
		{`\[x\]`, "x"},
		{`\(x\)`, "x"},
		{"$x$", "x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripMathDelimiters(tt.span), fmt.Sprintf("span %q", tt.span))
	}
}
