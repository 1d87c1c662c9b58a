package tvx

import "tvx/screen"

// Theme provides a set of styles for consistent UI appearance. Widgets take
// their styles from a theme; DefaultTheme is used unless one is set.
type Theme struct {
	Base   screen.Style // default text style
	Muted  screen.Style // de-emphasized text
	Accent screen.Style // highlighted/important text
	Error  screen.Style // error messages
	Border screen.Style // border/divider style
	Focus  screen.Style // focused widget
	Hotkey screen.Style // hotkey letter inside a label
}

// Pre-defined themes

// ThemeDark is a dark theme with light text on dark background.
var ThemeDark = Theme{
	Base:   screen.Style{FG: screen.White},
	Muted:  screen.Style{FG: screen.BrightBlack},
	Accent: screen.Style{FG: screen.BrightCyan},
	Error:  screen.Style{FG: screen.BrightRed},
	Border: screen.Style{FG: screen.BrightBlack},
	Focus:  screen.Style{FG: screen.Black, BG: screen.Cyan},
	Hotkey: screen.Style{FG: screen.BrightYellow},
}

// ThemeLight is a light theme with dark text on light background.
var ThemeLight = Theme{
	Base:   screen.Style{FG: screen.Black},
	Muted:  screen.Style{FG: screen.BrightBlack},
	Accent: screen.Style{FG: screen.Blue},
	Error:  screen.Style{FG: screen.Red},
	Border: screen.Style{FG: screen.White},
	Focus:  screen.Style{FG: screen.White, BG: screen.Blue},
	Hotkey: screen.Style{FG: screen.Red},
}

// ThemeMonochrome is a minimal theme using only attributes.
var ThemeMonochrome = Theme{
	Base:   screen.Style{},
	Muted:  screen.Style{Attr: screen.AttrDim},
	Accent: screen.Style{Attr: screen.AttrBold},
	Error:  screen.Style{Attr: screen.AttrBold | screen.AttrUnderline},
	Border: screen.Style{Attr: screen.AttrDim},
	Focus:  screen.Style{Attr: screen.AttrInverse},
	Hotkey: screen.Style{Attr: screen.AttrUnderline},
}

// DefaultTheme is the theme new widgets start with.
var DefaultTheme = ThemeDark

// ThemeByName returns one of the pre-defined themes: "dark", "light" or
// "mono".
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "dark":
		return ThemeDark, true
	case "light":
		return ThemeLight, true
	case "mono", "monochrome":
		return ThemeMonochrome, true
	}
	return Theme{}, false
}
