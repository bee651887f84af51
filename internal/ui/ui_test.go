package ui

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sirjenkins/lwotai/internal/cards"
	"github.com/sirjenkins/lwotai/internal/engine"
	"github.com/sirjenkins/lwotai/internal/store"
)

func newShell(t *testing.T, answers ...string) (*Shell, *store.Snapshots) {
	t.Helper()
	seed, err := engine.NewRunSeed("shell-test")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	w := engine.NewWorld(engine.WithRoller(seed.Stream("dice")), engine.WithDecider(engine.NewScriptedDecider(answers...)))
	w.StartYear = 2001
	deck, err := cards.New()
	if err != nil {
		t.Fatalf("deck: %v", err)
	}
	snaps, err := store.OpenSnapshots(filepath.Join(t.TempDir(), "lwot.db"))
	if err != nil {
		t.Fatalf("snapshots: %v", err)
	}
	t.Cleanup(func() { _ = snaps.Close() })
	sh := NewShell(w, deck, WithSnapshots(snaps))
	if err := sh.Start(context.Background(), "shell-test"); err != nil {
		t.Fatalf("start: %v", err)
	}
	return sh, snaps
}

func TestUnknownCommand(t *testing.T) {
	sh, _ := newShell(t)
	if _, err := sh.Exec(context.Background(), "fly"); !errors.Is(err, engine.ErrInvalidTarget) {
		t.Fatalf("got %v", err)
	}
}

func TestAliasRunsReassessmentAndSuspends(t *testing.T) {
	ctx := context.Background()
	sh, snaps := newShell(t)
	rep, err := sh.Exec(ctx, "rea")
	if err != nil {
		t.Fatalf("rea: %v", err)
	}
	if !strings.Contains(rep.Markdown, "US Posture now Soft") || rep.Board.USPosture != string(engine.PostureSoft) {
		t.Fatalf("reply %+v", rep)
	}
	saved, err := snaps.Resume(ctx)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if saved.MustCountry(engine.UnitedStates).Posture != engine.PostureSoft {
		t.Fatalf("suspend slot not updated")
	}
}

func TestFailedCommandLeavesBoardUntouched(t *testing.T) {
	sh, _ := newShell(t)
	before := len(sh.World().History)
	// Madrassas asks a question the empty script cannot answer.
	_, err := sh.Exec(context.Background(), "j 53")
	if !errors.Is(err, engine.ErrAmbiguousChoice) {
		t.Fatalf("got %v", err)
	}
	w := sh.World()
	if len(w.History) != before || w.CellPool != engine.MaxCells {
		t.Fatalf("board changed: history %d pool %d", len(w.History), w.CellPool)
	}
}

func TestCardPlayThenUndo(t *testing.T) {
	ctx := context.Background()
	sh, _ := newShell(t)
	if _, err := sh.Exec(ctx, "j 49"); err != nil {
		t.Fatalf("j 49: %v", err)
	}
	if sh.World().MustCountry(engine.Somalia).Sleepers != 1 {
		t.Fatalf("Al-Ittihad al-Islami should place a cell in Somalia")
	}
	if _, err := sh.Exec(ctx, "undo"); err != nil {
		t.Fatalf("undo: %v", err)
	}
	w := sh.World()
	if w.MustCountry(engine.Somalia).Sleepers != 0 || w.CellPool != engine.MaxCells {
		t.Fatalf("undo left somalia=%d pool=%d", w.MustCountry(engine.Somalia).Sleepers, w.CellPool)
	}
	if _, err := sh.Exec(ctx, "undo"); !errors.Is(err, engine.ErrInvalidTarget) {
		t.Fatalf("second undo: %v", err)
	}
}

func TestTurnThenRollback(t *testing.T) {
	ctx := context.Background()
	sh, _ := newShell(t)
	if _, err := sh.Exec(ctx, "turn"); err != nil {
		t.Fatalf("turn: %v", err)
	}
	if sh.World().Turn != 2 {
		t.Fatalf("turn %d", sh.World().Turn)
	}
	if _, err := sh.Exec(ctx, "roll 1"); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if sh.World().Turn != 1 {
		t.Fatalf("rolled back to turn %d", sh.World().Turn)
	}
	if _, err := sh.Exec(ctx, "rollback 9"); !errors.Is(err, engine.ErrInvalidTarget) {
		t.Fatalf("rollback to the future: %v", err)
	}
}

func TestDeployAsksFromToAndCount(t *testing.T) {
	sh, _ := newShell(t, "track", "egy", "2")
	eg := sh.World().MustCountry(engine.Egypt)
	eg.Governance = engine.GovFair
	eg.Alignment = engine.AlignAlly
	if _, err := sh.Exec(context.Background(), "dep"); err != nil {
		t.Fatalf("deploy: %v", err)
	}
	eg = sh.World().MustCountry(engine.Egypt)
	if eg.Troops != 2 || sh.World().TroopPool != engine.MaxTroops-2 {
		t.Fatalf("egypt=%d pool=%d", eg.Troops, sh.World().TroopPool)
	}
}

func TestRegimeChangeSkipsGarrisonThatMustStay(t *testing.T) {
	sh, _ := newShell(t, "afg")
	w := sh.World()
	af := w.MustCountry(engine.Afghanistan)
	af.Governance, af.Alignment = engine.GovIslamistRule, engine.AlignAdversary
	iraq := w.MustCountry(engine.Iraq)
	iraq.Governance, iraq.Alignment, iraq.RegimeChange = engine.GovPoor, engine.AlignAlly, true
	iraq.Troops, w.TroopPool = 9, engine.MaxTroops-9
	iraq.Sleepers, w.CellPool = 2, engine.MaxCells-2

	if _, err := sh.Exec(context.Background(), "reg"); !errors.Is(err, engine.ErrInvalidTarget) {
		t.Fatalf("Iraq can only spare 2 troops and the track has 6, got %v", err)
	}
	if sh.World().MustCountry(engine.Iraq).Troops != 9 {
		t.Fatalf("refused regime change moved troops")
	}
}

func TestStrictInvariantStopsGame(t *testing.T) {
	sh, _ := newShell(t)
	sh.World().CellPool--
	if _, err := sh.Exec(context.Background(), "rea"); !errors.Is(err, engine.ErrInvariantViolation) {
		t.Fatalf("strict: %v", err)
	}
	sh.strict = false
	if _, err := sh.Exec(context.Background(), "rea"); err != nil {
		t.Fatalf("lenient: %v", err)
	}
}

func TestRunLinesScript(t *testing.T) {
	sh, _ := newShell(t)
	in := strings.NewReader("rea\nsta Pak\nbogus\nquit\n")
	var out bytes.Buffer
	if err := RunLines(context.Background(), sh, in, &out); err != nil {
		t.Fatalf("RunLines: %v", err)
	}
	got := out.String()
	for _, want := range []string{"US Posture now Soft", "Pakistan", "unknown command", "Game suspended."} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestLineDeciderRepromptsUntilValid(t *testing.T) {
	var out bytes.Buffer
	d := NewLineDecider(bufio.NewReader(strings.NewReader("seven\n9\n4\n")), &out)
	n, err := d.AskDieRoll("Enter die roll")
	if err != nil || n != 4 {
		t.Fatalf("got %d %v", n, err)
	}
	if strings.Count(out.String(), "Enter die roll") != 3 {
		t.Fatalf("prompts:\n%s", out.String())
	}
	if _, err := d.AskYesNo("More?"); !errors.Is(err, engine.ErrAmbiguousChoice) {
		t.Fatalf("EOF should give up, got %v", err)
	}
}

func TestChanDeciderCancel(t *testing.T) {
	queries := make(chan query)
	d := chanDecider(queries)
	go func() {
		q := <-queries
		q.answer <- reply{text: "Iraq"}
		q = <-queries
		q.answer <- reply{cancel: true}
	}()
	name, err := d.AskCountry("Where?", []string{engine.Iraq, engine.Iran})
	if err != nil || name != engine.Iraq {
		t.Fatalf("got %q %v", name, err)
	}
	if _, err := d.AskYesNo("Sure?"); !errors.Is(err, engine.ErrAmbiguousChoice) {
		t.Fatalf("cancel: %v", err)
	}
}

func TestModelRunsCommandOnWorker(t *testing.T) {
	sh, _ := newShell(t)
	m := newModel(context.Background(), sh, "dracula")
	for _, r := range "rea" {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(model)
	}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	if !m.busy || cmd == nil {
		t.Fatalf("enter should start the worker")
	}
	msg := cmd()
	if _, ok := msg.(resultMsg); !ok {
		t.Fatalf("got %T", msg)
	}
	next, _ = m.Update(msg)
	m = next.(model)
	if m.busy || m.board.USPosture != string(engine.PostureSoft) {
		t.Fatalf("busy=%v posture=%s", m.busy, m.board.USPosture)
	}
	if !strings.Contains(m.View(), "TRACKS") {
		t.Fatalf("view:\n%s", m.View())
	}
}

func TestNextThemeNameWraps(t *testing.T) {
	if got := nextThemeName("solarized_dark", 1); got != "catppuccin" {
		t.Fatalf("got %q", got)
	}
	if got := nextThemeName("catppuccin", -1); got != "solarized_dark" {
		t.Fatalf("got %q", got)
	}
}
