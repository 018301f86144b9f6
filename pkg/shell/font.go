package shell

import (
	"fmt"
	"hash/fnv"
	"slices"
	"strings"
)

// FontLoader resolves a webfont family to a CSS class token.
// The token is opaque to the shell and applied to the body element.
type FontLoader interface {
	Load(family string, subsets ...string) (className string, err error)
}

// Fonts is the built-in FontLoader. It knows a fixed set of families and the
// subsets each one ships with.
type Fonts struct {
	families map[string][]string
}

// NewFonts returns a loader for the bundled families.
func NewFonts() *Fonts {
	return &Fonts{
		families: map[string][]string{
			"Inter": {"latin", "latin-ext", "cyrillic", "cyrillic-ext", "greek", "greek-ext", "vietnamese"},
		},
	}
}

// Load returns a deterministic class token for family and subsets,
// e.g. "font-inter-5f0c1d2e". Subsets default to "latin".
func (f *Fonts) Load(family string, subsets ...string) (string, error) {
	family = strings.TrimSpace(family)
	if family == "" {
		return "", ErrEmptyFontFamily
	}

	supported, ok := f.families[family]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFont, family)
	}

	if len(subsets) == 0 {
		subsets = []string{"latin"}
	}
	subsets = slices.Clone(subsets)
	slices.Sort(subsets)
	for _, s := range subsets {
		if !slices.Contains(supported, s) {
			return "", fmt.Errorf("%w: %q for %s", ErrUnknownSubset, s, family)
		}
	}

	h := fnv.New32a()
	h.Write([]byte(family))
	for _, s := range subsets {
		h.Write([]byte{0})
		h.Write([]byte(s))
	}

	slug := strings.ToLower(strings.ReplaceAll(family, " ", "-"))
	return fmt.Sprintf("font-%s-%08x", slug, h.Sum32()), nil
}

var _ FontLoader = (*Fonts)(nil)
