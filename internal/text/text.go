// Package text turns the board into markdown and renders it for the terminal.
package text

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/pkg/errors"
	"github.com/sirjenkins/lwotai/internal/engine"
)

// Status is the full board report in markdown.
func Status(w *engine.World) string {
	var b strings.Builder
	us := w.MustCountry(engine.UnitedStates)
	pos := w.WorldPosture()
	fmt.Fprintf(&b, "# %d (Turn %d)\n\n", w.Year(), w.Turn)
	fmt.Fprintf(&b, "- Jihadist Ideology: %s\n", w.Ideology)
	fmt.Fprintf(&b, "- US Prestige: %d\n", w.Prestige)
	fmt.Fprintf(&b, "- Jihadist Funding: %d\n", w.Funding)
	fmt.Fprintf(&b, "- Troops in track: %d\n", w.TroopPool)
	fmt.Fprintf(&b, "- Cells in track: %d\n", w.CellPool)
	fmt.Fprintf(&b, "- US Posture: %s\n", us.Posture)
	fmt.Fprintf(&b, "- World Posture: %s %d\n", engine.WorldPostureLabel(pos), abs(pos))
	fmt.Fprintf(&b, "- GWOT penalty: %d\n", w.GWOTPenalty())
	if len(w.Markers) > 0 {
		fmt.Fprintf(&b, "- Markers: %s\n", strings.Join(w.Markers, ", "))
	}
	if len(w.Lapsing) > 0 {
		fmt.Fprintf(&b, "- Lapsing: %s\n", strings.Join(w.Lapsing, ", "))
	}

	sections := []struct {
		title string
		keep  func(c *engine.Country) bool
	}{
		{"Muslim countries", func(c *engine.Country) bool { return c.Culture.Muslim() && !c.Untested() }},
		{"Non-Muslim countries", func(c *engine.Country) bool {
			return c.NonMuslim() && c.Name != engine.UnitedStates && (c.Posture != engine.PostureUntested || c.HasPresence())
		}},
	}
	for _, s := range sections {
		fmt.Fprintf(&b, "\n## %s\n\n", s.title)
		names := w.Names(s.keep)
		if len(names) == 0 {
			b.WriteString("(none)\n")
		}
		for _, n := range names {
			fmt.Fprintf(&b, "- %s\n", w.CountryLine(n))
		}
	}

	sum := w.Summarize()
	b.WriteString("\n## Resources\n\n")
	fmt.Fprintf(&b, "- Good Resources: %d\n", sum.GoodResources)
	fmt.Fprintf(&b, "- Islamic Resources: %d\n", sum.IslamistResources)
	fmt.Fprintf(&b, "- Good/Fair Countries: %d\n", sum.GoodFair)
	fmt.Fprintf(&b, "- Poor/Islamic Countries: %d\n", sum.PoorIslamist)
	return b.String()
}

// CountryStatus is the detail line for one country, matched by prefix.
func CountryStatus(w *engine.World, input string) (string, error) {
	c, err := w.ResolveCountry(input)
	if err != nil {
		return "", err
	}
	return "- " + w.CountryLine(c.Name) + "\n", nil
}

// History renders the resolution log as a markdown list.
func History(w *engine.World) string {
	if len(w.History) == 0 {
		return "(no history)\n"
	}
	return Lines(w.History)
}

// Lines renders resolution lines as a list; turn banners become headings.
func Lines(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		if strings.HasPrefix(l, "[[") {
			fmt.Fprintf(&b, "\n### %s\n\n", strings.Trim(l, "[] "))
			continue
		}
		fmt.Fprintf(&b, "- %s\n", escape(l))
	}
	return b.String()
}

// escape keeps history text from being read as markdown.
func escape(s string) string {
	r := strings.NewReplacer("*", `\*`, "_", `\_`, "#", `\#`)
	return r.Replace(s)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Renderer turns markdown into terminal text.
type Renderer interface {
	Render(md string) (string, error)
}

type glamourRenderer struct {
	r *glamour.TermRenderer
}

// NewGlamourRenderer styles markdown for the current terminal, wrapped at width.
func NewGlamourRenderer(width int) (Renderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "glamour renderer")
	}
	return &glamourRenderer{r: r}, nil
}

func (g *glamourRenderer) Render(md string) (string, error) { return g.r.Render(md) }

// plainRenderer drops the markdown syntax for line-mode output.
type plainRenderer struct{}

func NewPlainRenderer() Renderer { return plainRenderer{} }

func (plainRenderer) Render(md string) (string, error) {
	var b strings.Builder
	for _, l := range strings.Split(md, "\n") {
		l = strings.TrimLeft(l, "#")
		l = strings.TrimPrefix(l, " ")
		l = strings.NewReplacer(`\*`, "*", `\_`, "_", `\#`, "#").Replace(l)
		b.WriteString(l + "\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

// WithFallback returns a renderer that prefers primary and falls back on error.
func WithFallback(primary, fallback Renderer) Renderer {
	return &fallbackRenderer{p: primary, f: fallback}
}

type fallbackRenderer struct{ p, f Renderer }

func (r *fallbackRenderer) Render(md string) (string, error) {
	if r.p == nil {
		return r.f.Render(md)
	}
	if s, err := r.p.Render(md); err == nil {
		return s, nil
	}
	return r.f.Render(md)
}
