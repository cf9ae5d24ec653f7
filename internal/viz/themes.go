package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for phase portraits and the TUI.
type Theme struct {
	Name       string
	XNullcline lipgloss.Color
	YNullcline lipgloss.Color
	Stable     lipgloss.Color
	Unstable   lipgloss.Color
	FixedPoint lipgloss.Color
	Orbit      lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
}

// Available themes
var (
	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		XNullcline: lipgloss.Color("#00ffff"),
		YNullcline: lipgloss.Color("#ff00ff"),
		Stable:     lipgloss.Color("#00ff88"),
		Unstable:   lipgloss.Color("#ff4444"),
		FixedPoint: lipgloss.Color("#ffff00"),
		Orbit:      lipgloss.Color("#ffffff"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		XNullcline: lipgloss.Color("#00ff00"),
		YNullcline: lipgloss.Color("#88ff88"),
		Stable:     lipgloss.Color("#00cc00"),
		Unstable:   lipgloss.Color("#ffff00"),
		FixedPoint: lipgloss.Color("#ffffff"),
		Orbit:      lipgloss.Color("#00ff00"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		XNullcline: lipgloss.Color("#0088ff"),
		YNullcline: lipgloss.Color("#cccccc"),
		Stable:     lipgloss.Color("#00ff00"),
		Unstable:   lipgloss.Color("#ff0000"),
		FixedPoint: lipgloss.Color("#ffffff"),
		Orbit:      lipgloss.Color("#888888"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		XNullcline: lipgloss.Color("#00a8cc"),
		YNullcline: lipgloss.Color("#ffd700"),
		Stable:     lipgloss.Color("#00ff88"),
		Unstable:   lipgloss.Color("#ff4444"),
		FixedPoint: lipgloss.Color("#e0f0ff"),
		Orbit:      lipgloss.Color("#0077be"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Error:      lipgloss.Color("#ff4444"),
	}

	// Default theme
	CurrentTheme = ThemeCyberpunk

	// All available themes
	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// SetTheme changes the current theme.
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// ThemeNames returns the available theme names.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
