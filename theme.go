package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/borgmon/despertafoco/pkg/models"
)

// variantTheme pins the default theme to one variant regardless of the OS
// appearance.
type variantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func (t variantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, t.variant)
}

func themeVariant(t models.Theme) fyne.ThemeVariant {
	if t == models.ThemeDark {
		return theme.VariantDark
	}
	return theme.VariantLight
}

func applyTheme(a fyne.App, t models.Theme) {
	a.Settings().SetTheme(variantTheme{Theme: theme.DefaultTheme(), variant: themeVariant(t)})
}

// toggleThemeTo persists and applies t.
func (df *DespertaFoco) toggleThemeTo(t models.Theme) {
	df.core.SetTheme(t)
	applyTheme(df.app, df.core.Theme())
	df.log.Info().Str("theme", string(t)).Msg("Theme changed")
	df.updateSystemTrayMenu()
}
