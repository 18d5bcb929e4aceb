package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the styles of the menus and the scoreboard.
type Theme struct {
	// Level picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	MenuBest        lipgloss.Style
	Controls        lipgloss.Style

	// Scoreboard styles
	Border      lipgloss.Style
	TableHeader lipgloss.Style
	TableActive lipgloss.Style
	Empty       lipgloss.Style
}

// DefaultTheme returns the default ember-on-black theme.
func DefaultTheme() Theme {
	return Theme{
		// Level picker
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("202")).Bold(true), // Flame orange
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuBest:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Controls:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		// Scoreboard
		Border:      lipgloss.NewStyle().BorderForeground(lipgloss.Color("88")), // Dark red
		TableHeader: lipgloss.NewStyle().Bold(true).BorderForeground(lipgloss.Color("240")),
		TableActive: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("52")),
		Empty:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
	}
}

// MonochromeTheme returns a grayscale theme.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Underline(true)
	theme.MenuBest = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.Border = lipgloss.NewStyle().BorderForeground(lipgloss.Color("240"))
	theme.TableActive = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("250"))
	return theme
}

// Global theme variable (can be changed at runtime)
var theme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(t Theme) {
	theme = t
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return theme
}
