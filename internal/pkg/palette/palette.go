// Package palette derives stable display colors for users. The palette is an
// explicit immutable value passed to whoever renders with it; there is no
// process-wide theme state to mutate.
package palette

import "hash/fnv"

// Palette is an ordered set of hex color tokens.
type Palette struct {
	colors []string
}

// Default returns the brand palette. Each call returns an independent value.
func Default() Palette {
	return New(
		"#FF5C80",
		"#FF4DFA",
		"#9E5CF7",
		"#3633FF",
		"#2BC2FF",
		"#42DED1",
		"#F5BE31",
	)
}

// New builds a palette from the given hex colors. The slice is copied so
// later mutation of the argument cannot leak in.
func New(colors ...string) Palette {
	p := Palette{colors: make([]string, len(colors))}
	copy(p.colors, colors)
	return p
}

// ColorFor returns the palette entry for the given key. The same key always
// maps to the same color for the same palette.
func (p Palette) ColorFor(key string) string {
	if len(p.colors) == 0 {
		return ""
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return p.colors[int(h.Sum32())%len(p.colors)]
}
