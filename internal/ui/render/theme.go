package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	HiddenFg    tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	DirectoryFg tcell.Color
	SymlinkFg   tcell.Color
	FileFg      tcell.Color
	BookmarkFg  tcell.Color
	MatchFg     tcell.Color
	DetailFg    tcell.Color
	ModeBg      tcell.Color
	ModeFg      tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
	ErrorBg     tcell.Color
	ErrorFg     tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		HiddenFg:    tcell.ColorLightSlateGray,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		DirectoryFg: tcell.Color33,
		SymlinkFg:   tcell.Color51,
		FileFg:      tcell.ColorDefault,
		BookmarkFg:  tcell.ColorYellow,
		MatchFg:     tcell.ColorYellow,
		DetailFg:    tcell.Color252,
		ModeBg:      tcell.Color33,
		ModeFg:      tcell.ColorWhite,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
		ErrorBg:     tcell.ColorDarkRed,
		ErrorFg:     tcell.ColorWhite,
	}
}
