package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Accent    lipgloss.Color
	AccentAlt lipgloss.Color
	Border    lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	BarFill   lipgloss.Color
	BarEmpty  lipgloss.Color
}

var palettes = map[string]palette{
	"catppuccin": {
		Text:      lipgloss.Color("#cdd6f4"),
		Muted:     lipgloss.Color("#a6adc8"),
		Accent:    lipgloss.Color("#cba6f7"),
		AccentAlt: lipgloss.Color("#f38ba8"),
		Border:    lipgloss.Color("#585b70"),
		Success:   lipgloss.Color("#94e2d5"),
		Warning:   lipgloss.Color("#f9e2af"),
		BarFill:   lipgloss.Color("#94e2d5"),
		BarEmpty:  lipgloss.Color("#313244"),
	},
	"dracula": {
		Text:      lipgloss.Color("#f8f8f2"),
		Muted:     lipgloss.Color("#6272a4"),
		Accent:    lipgloss.Color("#ff79c6"),
		AccentAlt: lipgloss.Color("#bd93f9"),
		Border:    lipgloss.Color("#44475a"),
		Success:   lipgloss.Color("#50fa7b"),
		Warning:   lipgloss.Color("#f1fa8c"),
		BarFill:   lipgloss.Color("#50fa7b"),
		BarEmpty:  lipgloss.Color("#343746"),
	},
	"gruvbox": {
		Text:      lipgloss.Color("#ebdbb2"),
		Muted:     lipgloss.Color("#a89984"),
		Accent:    lipgloss.Color("#fabd2f"),
		AccentAlt: lipgloss.Color("#d3869b"),
		Border:    lipgloss.Color("#665c54"),
		Success:   lipgloss.Color("#b8bb26"),
		Warning:   lipgloss.Color("#fe8019"),
		BarFill:   lipgloss.Color("#b8bb26"),
		BarEmpty:  lipgloss.Color("#3c3836"),
	},
	"solarized_dark": {
		Text:      lipgloss.Color("#fdf6e3"),
		Muted:     lipgloss.Color("#93a1a1"),
		Accent:    lipgloss.Color("#b58900"),
		AccentAlt: lipgloss.Color("#268bd2"),
		Border:    lipgloss.Color("#586e75"),
		Success:   lipgloss.Color("#859900"),
		Warning:   lipgloss.Color("#cb4b16"),
		BarFill:   lipgloss.Color("#859900"),
		BarEmpty:  lipgloss.Color("#073642"),
	},
}

func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["catppuccin"]
}

func themeNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func nextThemeName(current string, step int) string {
	names := themeNames()
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	idx = (idx + step) % len(names)
	if idx < 0 {
		idx += len(names)
	}
	return names[idx]
}

type styles struct {
	title   lipgloss.Style
	muted   lipgloss.Style
	prompt  lipgloss.Style
	err     lipgloss.Style
	panel   lipgloss.Style
	barFill lipgloss.Style
	barRest lipgloss.Style
}

func newStyles(p palette) styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		muted:   lipgloss.NewStyle().Foreground(p.Muted),
		prompt:  lipgloss.NewStyle().Bold(true).Foreground(p.AccentAlt),
		err:     lipgloss.NewStyle().Foreground(p.Warning),
		panel:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(p.Border).Foreground(p.Text).Padding(0, 1),
		barFill: lipgloss.NewStyle().Foreground(p.BarFill),
		barRest: lipgloss.NewStyle().Foreground(p.BarEmpty),
	}
}

// bar draws v out of top as a fixed width gauge.
func (s styles) bar(v, top int) string {
	const width = 10
	fill := 0
	if top > 0 {
		fill = (v*width + top/2) / top
	}
	fill = min(max0(fill), width)
	return s.barFill.Render(strings.Repeat("█", fill)) + s.barRest.Render(strings.Repeat("·", width-fill))
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
