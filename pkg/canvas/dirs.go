package canvas

// Dirs is a bitset of the four line directions a glyph connects to.
// Every line glyph corresponds to exactly one direction set, so merging
// two glyphs is a union of their sets.
type Dirs uint8

// Direction bits.
const (
	Up Dirs = 1 << iota
	Down
	Left
	Right
)

// Has reports whether all bits in other are set.
func (d Dirs) Has(other Dirs) bool { return d&other == other }

// dirsGlyph maps a direction set to its box-drawing glyph.
// Single directions render as plain line segments.
var dirsGlyph = map[Dirs]rune{
	Up:                     '│',
	Down:                   '│',
	Up | Down:              '│',
	Left:                   '─',
	Right:                  '─',
	Left | Right:           '─',
	Down | Right:           '┌',
	Down | Left:            '┐',
	Up | Right:             '└',
	Up | Left:              '┘',
	Up | Down | Right:      '├',
	Up | Down | Left:       '┤',
	Down | Left | Right:    '┬',
	Up | Left | Right:      '┴',
	Up | Down | Left | Right: '┼',
}

// glyphDirs is the reverse mapping used when merging into an occupied cell.
var glyphDirs = map[rune]Dirs{
	'│': Up | Down,
	'─': Left | Right,
	'┌': Down | Right,
	'┐': Down | Left,
	'└': Up | Right,
	'┘': Up | Left,
	'├': Up | Down | Right,
	'┤': Up | Down | Left,
	'┬': Down | Left | Right,
	'┴': Up | Left | Right,
	'┼': Up | Down | Left | Right,
}

// Glyph returns the box-drawing rune for the direction set.
// Panics on an empty set - that always indicates a drawing bug.
func (d Dirs) Glyph() rune {
	if r, ok := dirsGlyph[d]; ok {
		return r
	}
	panic("canvas: no glyph for empty direction set")
}

// GlyphDirs returns the direction set for a line glyph and whether the rune
// is a line glyph at all.
func GlyphDirs(r rune) (Dirs, bool) {
	d, ok := glyphDirs[r]
	return d, ok
}

// IsLineGlyph reports whether r is a line or junction glyph.
func IsLineGlyph(r rune) bool {
	_, ok := glyphDirs[r]
	return ok
}

// IsArrow reports whether r is an arrowhead glyph.
func IsArrow(r rune) bool {
	switch r {
	case ArrowDown, ArrowUp, ArrowRight, ArrowLeft:
		return true
	}
	return false
}
