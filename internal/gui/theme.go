package gui

import (
	"log/slog"
	"strings"

	darkmode "github.com/thiagokokada/dark-mode-go"

	"github.com/hexbee/git-diff-viewer/internal/nav"
)

// ThemePreference is the requested color mode before auto detection.
type ThemePreference int

const (
	ThemeAuto ThemePreference = iota
	ThemeLight
	ThemeDark
)

func (p ThemePreference) String() string {
	switch p {
	case ThemeLight:
		return "light"
	case ThemeDark:
		return "dark"
	default:
		return "auto"
	}
}

func ThemePreferenceFromString(raw string) ThemePreference {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ThemeDark.String():
		return ThemeDark
	case ThemeLight.String():
		return ThemeLight
	default:
		return ThemeAuto
	}
}

type colorPalette struct {
	ThemeName     string
	DiffAdd       string
	DiffDel       string
	DiffHeader    string
	AddedFileRow  string
	DeletedRow    string
	WatermarkFg   string
	BreadcrumbSep string
}

var (
	lightPalette = colorPalette{
		ThemeName:     "azure light",
		DiffAdd:       "#dff5de",
		DiffDel:       "#f9d6d5",
		DiffHeader:    "#e4e4e4",
		AddedFileRow:  "#1c7a2f",
		DeletedRow:    "#b02a27",
		WatermarkFg:   "#6b6b6b",
		BreadcrumbSep: "#9a9a9a",
	}
	darkPalette = colorPalette{
		ThemeName:     "azure dark",
		DiffAdd:       "#1f3d2b",
		DiffDel:       "#3d1f29",
		DiffHeader:    "#2f2f2f",
		AddedFileRow:  "#58c371",
		DeletedRow:    "#e3706c",
		WatermarkFg:   "#8f8f8f",
		BreadcrumbSep: "#707070",
	}
	detectDarkMode = darkmode.IsDarkMode
)

// resolveTheme settles an auto preference against the desktop environment.
func resolveTheme(pref ThemePreference) nav.Theme {
	switch pref {
	case ThemeDark:
		return nav.ThemeDark
	case ThemeLight:
		return nav.ThemeLight
	default:
		if detectDarkMode != nil {
			if dark, err := detectDarkMode(); err == nil {
				if dark {
					return nav.ThemeDark
				}
			} else {
				slog.Debug("detect dark-mode", slog.Any("error", err))
			}
		}
		return nav.ThemeLight
	}
}

func paletteForTheme(theme nav.Theme) colorPalette {
	if theme == nav.ThemeDark {
		return darkPalette
	}
	return lightPalette
}
