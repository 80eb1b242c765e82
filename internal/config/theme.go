package config

const (
	LightTheme string = "light"
	DarkTheme  string = "dark"

	DefaultDarkSyntaxTheme  string = "gruvbox"
	DefaultLightSyntaxTheme string = "catppuccin-latte"

	DefaultTheme string = LightTheme
)
