package types

// ThemeMode is persisted as a plain string under the theme_mode key,
// not as JSON.
type ThemeMode string

const (
	ThemeModeLight  ThemeMode = "light"
	ThemeModeDark   ThemeMode = "dark"
	ThemeModeSystem ThemeMode = "system"
)

func (m ThemeMode) Valid() bool {
	switch m {
	case ThemeModeLight, ThemeModeDark, ThemeModeSystem:
		return true
	}
	return false
}
