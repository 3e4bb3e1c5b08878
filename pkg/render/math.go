package render

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/banterhq/banter/pkg/logger"
)

// Typesetter converts a TeX expression, delimiters already stripped,
// into display text. Implementations may be slow or fail; callers only
// ever reach one through MathCache.
type Typesetter interface {
	Typeset(expr string) (string, error)
}

// mathSpanRe finds TeX spans: $$...$$ and \[...\] display math,
// \(...\) inline math, and single-dollar inline math whose content does
// not start or end with whitespace (so "$5 and $6" is left alone).
var mathSpanRe = regexp.MustCompile(`(?s)\$\$.+?\$\$|\\\[.+?\\\]|\\\(.+?\\\)|\$[^\s$][^$\n]*?[^\s$]\$|\$[^\s$]\$`)

// MathCache is the pipeline's view of the typesetter. Lookups hit the
// cache; a miss schedules background work and leaves the span raw, and
// a completion signal on Updates tells the caller a re-render is worth
// doing. A render pass racing a completion shows the raw span one cycle
// longer, which the next pass corrects.
type MathCache struct {
	engine  Typesetter
	updates chan struct{}

	mu      sync.Mutex
	done    map[string]string
	failed  map[string]struct{}
	pending map[string]struct{}
}

func NewMathCache(engine Typesetter) *MathCache {
	return &MathCache{
		engine:  engine,
		updates: make(chan struct{}, 1),
		done:    make(map[string]string),
		failed:  make(map[string]struct{}),
		pending: make(map[string]struct{}),
	}
}

// Updates signals that a background typeset finished. The channel
// coalesces bursts; one receive may cover many completions.
func (c *MathCache) Updates() <-chan struct{} {
	return c.updates
}

// Apply rewrites every TeX span whose typeset form is ready and
// schedules the rest. It never blocks on the engine. Spans that failed
// to typeset stay raw permanently and are not retried.
func (c *MathCache) Apply(text string) string {
	if !strings.ContainsAny(text, "$\\") {
		return text
	}
	return mathSpanRe.ReplaceAllStringFunc(text, func(span string) string {
		c.mu.Lock()
		if out, ok := c.done[span]; ok {
			c.mu.Unlock()
			return out
		}
		if _, ok := c.failed[span]; ok {
			c.mu.Unlock()
			return span
		}
		if _, ok := c.pending[span]; ok {
			c.mu.Unlock()
			return span
		}
		c.pending[span] = struct{}{}
		c.mu.Unlock()

		go c.typeset(span)
		return span
	})
}

func (c *MathCache) typeset(span string) {
	out, err := c.engine.Typeset(stripMathDelimiters(span))

	c.mu.Lock()
	delete(c.pending, span)
	if err != nil {
		c.failed[span] = struct{}{}
		logger.Debug("Typeset failed for %q: %v", span, err)
	} else {
		c.done[span] = out
	}
	c.mu.Unlock()

	select {
	case c.updates <- struct{}{}:
	default:
	}
}

func stripMathDelimiters(span string) string {
	switch {
	case strings.HasPrefix(span, "$$"):
		return span[2 : len(span)-2]
	case strings.HasPrefix(span, `\[`), strings.HasPrefix(span, `\(`):
		return span[2 : len(span)-2]
	case strings.HasPrefix(span, "$"):
		return span[1 : len(span)-1]
	}
	return span
}

// UnicodeTypesetter renders a practical subset of TeX as plain Unicode:
// greek letters, common operators, digit super/subscripts, \frac and
// \sqrt. Anything it cannot express fails, so the caller keeps the raw
// span instead of showing a mangled one.
type UnicodeTypesetter struct{}

var texFracRe = regexp.MustCompile(`\\frac\{([^{}]*)\}\{([^{}]*)\}`)
var texSqrtRe = regexp.MustCompile(`\\sqrt\{([^{}]*)\}`)
var texScriptBraceRe = regexp.MustCompile(`([\^_])\{([^{}]+)\}`)
var texScriptRe = regexp.MustCompile(`([\^_])([0-9a-zA-Z+\-=()])`)

var texSymbols = map[string]string{
	`\alpha`: "α", `\beta`: "β", `\gamma`: "γ", `\delta`: "δ",
	`\epsilon`: "ε", `\zeta`: "ζ", `\eta`: "η", `\theta`: "θ",
	`\lambda`: "λ", `\mu`: "μ", `\nu`: "ν", `\xi`: "ξ",
	`\pi`: "π", `\rho`: "ρ", `\sigma`: "σ", `\tau`: "τ",
	`\phi`: "φ", `\chi`: "χ", `\psi`: "ψ", `\omega`: "ω",
	`\Gamma`: "Γ", `\Delta`: "Δ", `\Theta`: "Θ", `\Lambda`: "Λ",
	`\Pi`: "Π", `\Sigma`: "Σ", `\Phi`: "Φ", `\Psi`: "Ψ", `\Omega`: "Ω",
	`\times`: "×", `\cdot`: "·", `\pm`: "±", `\mp`: "∓", `\div`: "÷",
	`\leq`: "≤", `\le`: "≤", `\geq`: "≥", `\ge`: "≥",
	`\neq`: "≠", `\ne`: "≠", `\approx`: "≈", `\equiv`: "≡",
	`\infty`: "∞", `\partial`: "∂", `\nabla`: "∇",
	`\sum`: "∑", `\prod`: "∏", `\int`: "∫",
	`\to`: "→", `\rightarrow`: "→", `\leftarrow`: "←", `\Rightarrow`: "⇒",
	`\in`: "∈", `\notin`: "∉", `\subset`: "⊂", `\cup`: "∪", `\cap`: "∩",
	`\forall`: "∀", `\exists`: "∃", `\ldots`: "…", `\cdots`: "⋯",
	`\sqrt`: "√", `\quad`: " ", `\qquad`: "  ", `\,`: " ", `\;`: " ",
}

// symbolKeys longest-first so \leq resolves before \le.
var symbolKeys = func() []string {
	keys := make([]string, 0, len(texSymbols))
	for k := range texSymbols {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
	return keys
}()

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻', '=': '⁼', '(': '⁽', ')': '⁾', 'n': 'ⁿ', 'i': 'ⁱ',
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
	'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
	'+': '₊', '-': '₋', '=': '₌', '(': '₍', ')': '₎',
	'a': 'ₐ', 'e': 'ₑ', 'i': 'ᵢ', 'k': 'ₖ', 'n': 'ₙ', 'x': 'ₓ',
}

func (UnicodeTypesetter) Typeset(expr string) (string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", fmt.Errorf("empty expression")
	}

	out := texFracRe.ReplaceAllStringFunc(expr, func(m string) string {
		parts := texFracRe.FindStringSubmatch(m)
		return fracOperand(parts[1]) + "/" + fracOperand(parts[2])
	})

	out = texSqrtRe.ReplaceAllStringFunc(out, func(m string) string {
		inner := texSqrtRe.FindStringSubmatch(m)[1]
		if len([]rune(inner)) <= 1 {
			return "√" + inner
		}
		return "√(" + inner + ")"
	})

	for _, key := range symbolKeys {
		out = strings.ReplaceAll(out, key, texSymbols[key])
	}

	scriptErr := error(nil)
	convert := func(marker, body string) string {
		table := superscripts
		if marker == "_" {
			table = subscripts
		}
		var b strings.Builder
		for _, r := range body {
			mapped, ok := table[r]
			if !ok {
				scriptErr = fmt.Errorf("no script form for %q", r)
				return marker + body
			}
			b.WriteRune(mapped)
		}
		return b.String()
	}
	out = texScriptBraceRe.ReplaceAllStringFunc(out, func(m string) string {
		parts := texScriptBraceRe.FindStringSubmatch(m)
		return convert(parts[1], parts[2])
	})
	out = texScriptRe.ReplaceAllStringFunc(out, func(m string) string {
		parts := texScriptRe.FindStringSubmatch(m)
		return convert(parts[1], parts[2])
	})
	if scriptErr != nil {
		return "", scriptErr
	}

	// Grouping braces carry no visual weight once commands are resolved.
	out = strings.ReplaceAll(out, "{", "")
	out = strings.ReplaceAll(out, "}", "")

	if strings.ContainsRune(out, '\\') {
		return "", fmt.Errorf("unsupported TeX command in %q", expr)
	}
	return out, nil
}

func fracOperand(s string) string {
	if len([]rune(s)) <= 1 {
		return s
	}
	return "(" + s + ")"
}
