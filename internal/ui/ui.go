package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/sirjenkins/lwotai/internal/engine"
	"github.com/sirjenkins/lwotai/internal/text"
)

const (
	viewGame   = "game"
	viewStatus = "status"
	viewHelp   = "help"
)

type result struct {
	reply Reply
	err   error
}

type (
	queryMsg  query
	resultMsg result
)

// block is one entry of the scrollback: the raw markdown and its rendering at the current width.
type block struct {
	md       string
	rendered string
	isErr    bool
}

type model struct {
	ctx     context.Context
	sh      *Shell
	queries chan query
	results chan result

	busy    bool
	pending *query
	input   string

	blocks []block
	board  Board
	status string

	view     string
	theme    string
	styles   styles
	renderer text.Renderer

	width  int
	height int
	// scroll counts lines up from the bottom of the log.
	scroll int

	fatal error
}

func newModel(ctx context.Context, sh *Shell, theme string) model {
	m := model{
		ctx:     ctx,
		sh:      sh,
		queries: make(chan query),
		results: make(chan result, 1),
		view:    viewGame,
		theme:   theme,
		styles:  newStyles(paletteFor(theme)),
	}
	sh.SetDecider(chanDecider(m.queries))
	cur := sh.Current()
	m.board = cur.Board
	m.status = cur.Status
	m.setWidth(100)
	m.push("Type `help` for the command list.", false)
	return m
}

func (m *model) setWidth(w int) {
	m.width = w
	primary, err := text.NewGlamourRenderer(m.mainWidth() - 2)
	if err != nil {
		primary = nil
	}
	m.renderer = text.WithFallback(primary, text.NewPlainRenderer())
	for i := range m.blocks {
		m.blocks[i].rendered = m.render(m.blocks[i].md, m.blocks[i].isErr)
	}
}

func (m *model) mainWidth() int {
	w := m.width
	if w <= 0 {
		w = 100
	}
	return w - m.sidebarWidth() - 1
}

func (m *model) sidebarWidth() int {
	if m.width > 0 && m.width < 90 {
		return 24
	}
	return 30
}

func (m *model) render(md string, isErr bool) string {
	if isErr {
		return m.styles.err.Render(md) + "\n"
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n") + "\n"
}

func (m *model) push(md string, isErr bool) {
	if strings.TrimSpace(md) == "" {
		return
	}
	m.blocks = append(m.blocks, block{md: md, rendered: m.render(md, isErr), isErr: isErr})
	m.scroll = 0
}

// wait delivers the worker's next question or its final result.
func (m model) wait() tea.Cmd {
	queries, results, ctx := m.queries, m.results, m.ctx
	return func() tea.Msg {
		select {
		case q := <-queries:
			return queryMsg(q)
		case r := <-results:
			return resultMsg(r)
		case <-ctx.Done():
			return tea.Quit()
		}
	}
}

// exec runs line on a worker goroutine; the board is only touched there until the result arrives.
func (m model) exec(line string) tea.Cmd {
	sh, ctx, results := m.sh, m.ctx, m.results
	go func() {
		r, err := sh.Exec(ctx, line)
		results <- result{reply: r, err: err}
	}()
	return m.wait()
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.setWidth(msg.Width)
		return m, nil
	case queryMsg:
		q := query(msg)
		m.pending = &q
		return m, nil
	case resultMsg:
		m.busy = false
		m.board = msg.reply.Board
		m.status = msg.reply.Status
		m.push(msg.reply.Markdown, false)
		if msg.err != nil {
			if errors.Is(msg.err, engine.ErrInvariantViolation) {
				m.fatal = msg.err
				return m, tea.Quit
			}
			m.push(msg.err.Error(), true)
		}
		if msg.reply.Quit {
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyMsg:
		return m.key(msg)
	}
	return m, nil
}

func (m model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k := msg.String(); k {
	case "ctrl+c":
		if m.pending != nil {
			m.pending.answer <- reply{cancel: true}
			m.pending = nil
		}
		return m, tea.Quit
	case "ctrl+t":
		m.theme = nextThemeName(m.theme, 1)
		m.styles = newStyles(paletteFor(m.theme))
		m.setWidth(m.width)
	case "tab":
		switch m.view {
		case viewGame:
			m.view = viewStatus
		case viewStatus:
			m.view = viewHelp
		default:
			m.view = viewGame
		}
	case "esc":
		if m.pending != nil {
			m.push(m.pending.prompt+": cancelled", true)
			m.pending.answer <- reply{cancel: true}
			m.pending = nil
			m.input = ""
			return m, m.wait()
		}
		m.view = viewGame
	case "pgup", "ctrl+b":
		m.scroll = min(m.scroll+8, m.scrollLimit())
	case "pgdown", "ctrl+f":
		m.scroll = max(m.scroll-8, 0)
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case "enter":
		line := strings.TrimSpace(m.input)
		m.input = ""
		if m.pending != nil {
			m.push(fmt.Sprintf("%s **%s**", m.pending.prompt, line), false)
			m.pending.answer <- reply{text: line}
			m.pending = nil
			return m, m.wait()
		}
		if m.busy || line == "" {
			return m, nil
		}
		m.busy = true
		m.view = viewGame
		m.push("`> "+line+"`", false)
		return m, m.exec(line)
	default:
		if msg.Type == tea.KeySpace {
			m.input += " "
		} else if isRuneInput(k) {
			m.input += k
		}
	}
	return m, nil
}

func isRuneInput(s string) bool {
	runes := []rune(s)
	return len(runes) == 1 && runes[0] >= 32 && runes[0] < 127
}

func (m model) View() string {
	switch m.view {
	case viewStatus:
		return m.render(m.status, false)
	case viewHelp:
		return m.renderHelp()
	}
	return m.renderLayout()
}

// logHeight is how many log lines fit between the top and bottom bars.
func (m *model) logHeight() int { return m.height - 5 }

func (m *model) scrollLimit() int {
	lines := strings.Count(m.logText(), "\n") + 1
	return max(lines-m.logHeight(), 0)
}

func (m *model) renderLayout() string {
	top := m.renderTopBar()
	lines := strings.Split(m.logText(), "\n")
	avail := m.logHeight()
	if avail > 5 && len(lines) > avail {
		scroll := min(m.scroll, len(lines)-avail)
		end := len(lines) - scroll
		lines = lines[end-avail : end]
	}
	main := lipgloss.NewStyle().Width(m.mainWidth()).Render(strings.Join(lines, "\n"))
	side := m.styles.panel.Width(m.sidebarWidth()).Render(m.buildSidebar())
	body := lipgloss.JoinHorizontal(lipgloss.Top, main, side)
	return lipgloss.JoinVertical(lipgloss.Left, top, body, m.renderBottomBar())
}

func (m *model) logText() string {
	var b strings.Builder
	for _, bl := range m.blocks {
		b.WriteString(bl.rendered)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *model) renderTopBar() string {
	left := fmt.Sprintf("LABYRINTH AI • Scenario %d • %d (Turn %d)", m.board.Scenario, m.board.Year, m.board.Turn)
	right := "theme: " + m.theme
	w := m.width
	if w <= 0 {
		w = 100
	}
	gap := max(w-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return m.styles.title.Render(left + strings.Repeat(" ", gap) + right)
}

func (m *model) renderBottomBar() string {
	keys := m.styles.muted.Render("[Enter] run  [Esc] cancel question  [Tab] status/help  [PgUp/PgDn] scroll  [Ctrl+T] theme  [Ctrl+C] quit")
	var prompt string
	switch {
	case m.pending != nil:
		prompt = m.styles.prompt.Render(fmt.Sprintf("%s [%s]> ", m.pending.prompt, m.pending.hint)) + m.input
	case m.busy:
		prompt = m.styles.muted.Render("working...")
	default:
		prompt = m.styles.prompt.Render("Command> ") + m.input
	}
	return prompt + "\n" + keys
}

func (m *model) buildSidebar() string {
	b := m.board
	var s strings.Builder
	s.WriteString(m.styles.title.Render("TRACKS") + "\n")
	fmt.Fprintf(&s, "Prestige %s %2d\n", m.styles.bar(b.Prestige, engine.MaxPrestige), b.Prestige)
	fmt.Fprintf(&s, "Funding  %s %2d\n", m.styles.bar(b.Funding, engine.MaxFunding), b.Funding)
	fmt.Fprintf(&s, "Troops   %s %2d\n", m.styles.bar(b.Troops, engine.MaxTroops), b.Troops)
	fmt.Fprintf(&s, "Cells    %s %2d\n\n", m.styles.bar(b.Cells, engine.MaxCells), b.Cells)
	s.WriteString(m.styles.title.Render("POSTURE") + "\n")
	fmt.Fprintf(&s, "US    %s\n", b.USPosture)
	fmt.Fprintf(&s, "World %s\n\n", b.WorldPosture)
	s.WriteString(m.styles.title.Render("RESOURCES") + "\n")
	fmt.Fprintf(&s, "Good     %d\n", b.GoodResources)
	fmt.Fprintf(&s, "Islamist %d\n", b.IslamResources)
	fmt.Fprintf(&s, "IR countries %d\n", b.IslamistRule)
	return s.String()
}

func (m *model) renderHelp() string {
	return m.render(helpText+"\n\nQuestions from the rules appear in the prompt line; "+
		"answers accept unique prefixes of country names. Esc cancels the question and the whole command.", false)
}
