package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bpstudios/widescreen/internal/models"
)

// Palette is the color set a theme selects.
type Palette struct {
	Accent    lipgloss.Color
	Dim       lipgloss.Color
	Highlight lipgloss.Color
	Danger    lipgloss.Color
}

// PaletteFor maps a preferences theme to terminal colors.
func PaletteFor(theme string) Palette {
	switch theme {
	case models.Theme2:
		return Palette{Accent: lipgloss.Color("69"), Dim: lipgloss.Color("240"), Highlight: lipgloss.Color("117"), Danger: lipgloss.Color("203")}
	case models.Theme3:
		return Palette{Accent: lipgloss.Color("78"), Dim: lipgloss.Color("240"), Highlight: lipgloss.Color("120"), Danger: lipgloss.Color("203")}
	case models.Theme4:
		return Palette{Accent: lipgloss.Color("135"), Dim: lipgloss.Color("240"), Highlight: lipgloss.Color("177"), Danger: lipgloss.Color("203")}
	default:
		return Palette{Accent: lipgloss.Color("214"), Dim: lipgloss.Color("240"), Highlight: lipgloss.Color("220"), Danger: lipgloss.Color("203")}
	}
}

// Styles holds the rendered lipgloss styles for the active palette.
type Styles struct {
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Doc         lipgloss.Style
	Title       lipgloss.Style
	Highlight   lipgloss.Style
	Dim         lipgloss.Style
	Danger      lipgloss.Style
	Won         lipgloss.Style
	Lost        lipgloss.Style
}

func New(p Palette) Styles {
	return Styles{
		ActiveTab: lipgloss.NewStyle().
			Foreground(p.Accent).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true),
		InactiveTab: lipgloss.NewStyle().
			Foreground(p.Dim).
			Padding(0, 1),
		Doc:       lipgloss.NewStyle().Margin(1, 2),
		Title:     lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		Highlight: lipgloss.NewStyle().Foreground(p.Highlight),
		Dim:       lipgloss.NewStyle().Foreground(p.Dim),
		Danger:    lipgloss.NewStyle().Foreground(p.Danger).Bold(true),
		Won:       lipgloss.NewStyle().Foreground(p.Highlight).Bold(true),
		Lost:      lipgloss.NewStyle().Foreground(p.Danger),
	}
}
