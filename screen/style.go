package screen

import "strconv"

// Attribute is a set of text attributes that can be combined.
type Attribute uint8

const (
	AttrNone  Attribute = 0
	AttrBold  Attribute = 1 << (iota - 1)
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrInverse
	AttrStrikethrough
)

// Has reports whether the set contains attr.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns the set with attr added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns the set with attr removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// ColorMode says how a Color value is interpreted.
type ColorMode uint8

const (
	ColorDefault ColorMode = iota // terminal default
	Color16                       // basic 16 colors (0-15)
	Color256                      // 256 color palette
	ColorRGB                      // 24-bit true color
)

// Color is a terminal color.
type Color struct {
	Mode    ColorMode
	R, G, B uint8 // ColorRGB
	Index   uint8 // Color16 and Color256
}

// DefaultColor returns the terminal's default color.
func DefaultColor() Color {
	return Color{Mode: ColorDefault}
}

// BasicColor returns one of the 16 basic terminal colors.
func BasicColor(index uint8) Color {
	return Color{Mode: Color16, Index: index & 0x0f}
}

// PaletteColor returns one of the 256 palette colors.
func PaletteColor(index uint8) Color {
	return Color{Mode: Color256, Index: index}
}

// RGB returns a 24-bit color.
func RGB(r, g, b uint8) Color {
	return Color{Mode: ColorRGB, R: r, G: g, B: b}
}

// Hex returns a 24-bit color from a value such as 0xFF5500.
func Hex(hex uint32) Color {
	return RGB(uint8(hex>>16), uint8(hex>>8), uint8(hex))
}

var (
	Black   = BasicColor(0)
	Red     = BasicColor(1)
	Green   = BasicColor(2)
	Yellow  = BasicColor(3)
	Blue    = BasicColor(4)
	Magenta = BasicColor(5)
	Cyan    = BasicColor(6)
	White   = BasicColor(7)

	BrightBlack   = BasicColor(8)
	BrightRed     = BasicColor(9)
	BrightGreen   = BasicColor(10)
	BrightYellow  = BasicColor(11)
	BrightBlue    = BasicColor(12)
	BrightMagenta = BasicColor(13)
	BrightCyan    = BasicColor(14)
	BrightWhite   = BasicColor(15)
)

var colorNames = map[string]Color{
	"default":        DefaultColor(),
	"black":          Black,
	"red":            Red,
	"green":          Green,
	"yellow":         Yellow,
	"blue":           Blue,
	"magenta":        Magenta,
	"cyan":           Cyan,
	"white":          White,
	"bright-black":   BrightBlack,
	"bright-red":     BrightRed,
	"bright-green":   BrightGreen,
	"bright-yellow":  BrightYellow,
	"bright-blue":    BrightBlue,
	"bright-magenta": BrightMagenta,
	"bright-cyan":    BrightCyan,
	"bright-white":   BrightWhite,
}

// ParseColor accepts a basic color name ("red", "bright-blue", "default") or
// a "#rrggbb" hex triplet.
func ParseColor(s string) (Color, bool) {
	if c, ok := colorNames[s]; ok {
		return c, true
	}
	if len(s) != 7 || s[0] != '#' {
		return Color{}, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Hex(uint32(v)), true
}

// Style combines foreground and background colors with attributes.
// The zero value is the terminal default.
type Style struct {
	FG   Color
	BG   Color
	Attr Attribute
}

// DefaultStyle returns a style with default colors and no attributes.
func DefaultStyle() Style {
	return Style{}
}

// Foreground returns s with the given foreground color.
func (s Style) Foreground(c Color) Style {
	s.FG = c
	return s
}

// Background returns s with the given background color.
func (s Style) Background(c Color) Style {
	s.BG = c
	return s
}

// Bold returns s with bold enabled.
func (s Style) Bold() Style {
	s.Attr = s.Attr.With(AttrBold)
	return s
}

// Dim returns s with dim enabled.
func (s Style) Dim() Style {
	s.Attr = s.Attr.With(AttrDim)
	return s
}

// Italic returns s with italic enabled.
func (s Style) Italic() Style {
	s.Attr = s.Attr.With(AttrItalic)
	return s
}

// Underline returns s with underline enabled.
func (s Style) Underline() Style {
	s.Attr = s.Attr.With(AttrUnderline)
	return s
}

// Inverse returns s with inverse enabled.
func (s Style) Inverse() Style {
	s.Attr = s.Attr.With(AttrInverse)
	return s
}

// Strikethrough returns s with strikethrough enabled.
func (s Style) Strikethrough() Style {
	s.Attr = s.Attr.With(AttrStrikethrough)
	return s
}

// Cell is one terminal cell. A cell holding the leading column of a wide
// cluster has the cluster's text; the columns it covers to its right are
// continuation cells with empty Text.
type Cell struct {
	Text  string
	Style Style
}

// BlankCell returns a space in the given style.
func BlankCell(style Style) Cell {
	return Cell{Text: " ", Style: style}
}

// IsContinuation reports whether c is covered by a wide cluster to its left.
func (c Cell) IsContinuation() bool {
	return c.Text == ""
}
