package theme

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Panel    PanelTheme
	Calendar CalendarTheme
	Player   PlayerTheme
	Footer   FooterTheme
}

// PanelTheme styles framed panes and headings.
type PanelTheme struct {
	Frame        lipgloss.Style
	FocusedFrame lipgloss.Style
	Title        lipgloss.Style
	Body         lipgloss.Style
}

// CalendarTheme styles the day cells of the grid.
type CalendarTheme struct {
	Header   lipgloss.Style
	Day      lipgloss.Style
	Muted    lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
}

// PlayerTheme styles the library list and the status gauges.
type PlayerTheme struct {
	Track   lipgloss.Style
	Current lipgloss.Style
	Cursor  lipgloss.Style
	Gauge   lipgloss.Style
	Faint   lipgloss.Style
}

// FooterTheme styles the bottom help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1),
			FocusedFrame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		Calendar: CalendarTheme{
			Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
			Day:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
			Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Today:    lipgloss.NewStyle().Underline(true),
			Selected: lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
			Cursor:   lipgloss.NewStyle().Reverse(true),
		},
		Player: PlayerTheme{
			Track:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
			Current: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Cursor:  lipgloss.NewStyle().Reverse(true),
			Gauge:   lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
			Faint:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
	}
}
