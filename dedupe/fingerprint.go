package dedupe

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/figreact"
)

// Fingerprinter computes content-blind structural signatures.
// Text and expression payloads never affect the result.
// A Fingerprinter caches results by node identity and is not safe for
// concurrent use; create one per run.
type Fingerprinter struct {
	classAttrs []string
	ignore     map[string]bool
	raw        bool
	deep       bool

	memo map[*figreact.Node]figreact.Fingerprint
	sigs map[*figreact.Node]string
}

// NewFingerprinter returns a Fingerprinter configured by opts.
func NewFingerprinter(opts figreact.FingerprintOptions) *Fingerprinter {
	classAttrs := opts.ClassAttributes
	if len(classAttrs) == 0 {
		classAttrs = []string{"className", "class"}
	}
	ignore := make(map[string]bool, len(opts.IgnoreAttributes))
	for _, name := range opts.IgnoreAttributes {
		ignore[name] = true
	}
	return &Fingerprinter{
		classAttrs: classAttrs,
		ignore:     ignore,
		raw:        opts.RawClass,
		deep:       opts.Deep,
		memo:       make(map[*figreact.Node]figreact.Fingerprint),
		sigs:       make(map[*figreact.Node]string),
	}
}

// Fingerprint returns the fingerprint of element n.
func (f *Fingerprinter) Fingerprint(n *figreact.Node) figreact.Fingerprint {
	if fp, ok := f.memo[n]; ok {
		return fp
	}
	fp := figreact.Fingerprint(fmt.Sprintf("%016x", xxhash.Sum64String(f.Signature(n))))
	f.memo[n] = fp
	return fp
}

// Signature returns the canonical key hashed by Fingerprint: tag name,
// attribute count, significant child count and the style-class token.
// Two elements are structurally equal exactly when their signatures are.
func (f *Fingerprinter) Signature(n *figreact.Node) string {
	if sig, ok := f.sigs[n]; ok {
		return sig
	}
	var b strings.Builder
	b.WriteString(n.Tag)
	b.WriteString("|a")
	b.WriteString(strconv.Itoa(f.attrCount(n)))
	b.WriteString("|c")
	b.WriteString(strconv.Itoa(significantChildren(n)))
	b.WriteString("|")
	b.WriteString(f.classToken(n))

	if f.deep {
		for _, child := range n.Children {
			switch {
			case !child.IsSignificant():
			case child.IsElement():
				b.WriteString("|(")
				b.WriteString(f.Signature(child))
				b.WriteString(")")
			case child.Kind == figreact.ExpressionNode:
				b.WriteString("|{}")
			default:
				b.WriteString("|#")
			}
		}
	}
	sig := b.String()
	f.sigs[n] = sig
	return sig
}

func (f *Fingerprinter) attrCount(n *figreact.Node) int {
	count := 0
	for _, a := range n.Attrs {
		if a.Kind != figreact.AttrSpread && f.ignore[a.Name] {
			continue
		}
		count++
	}
	return count
}

func (f *Fingerprinter) classToken(n *figreact.Node) string {
	for _, name := range f.classAttrs {
		a, ok := n.Attr(name)
		if !ok {
			continue
		}
		switch a.Kind {
		case figreact.AttrLiteral:
			if f.raw {
				return "." + a.Literal()
			}
			return "." + normalizeClass(a.Literal())
		case figreact.AttrExpression:
			return ".{}"
		default:
			return "."
		}
	}
	return ""
}

// normalizeClass sorts and de-duplicates whitespace-separated class tokens.
func normalizeClass(class string) string {
	tokens := strings.Fields(class)
	slices.Sort(tokens)
	return strings.Join(slices.Compact(tokens), " ")
}

func significantChildren(n *figreact.Node) int {
	count := 0
	for _, child := range n.Children {
		if child.IsSignificant() {
			count++
		}
	}
	return count
}
