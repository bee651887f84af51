package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirjenkins/lwotai/internal/ai"
	"github.com/sirjenkins/lwotai/internal/engine"
	"github.com/sirjenkins/lwotai/internal/store"
	"github.com/sirjenkins/lwotai/internal/text"
	"go.uber.org/zap"
)

// Snapshots is the save slot store the shell writes around commands.
type Snapshots interface {
	Suspend(ctx context.Context, w *engine.World) error
	MarkUndo(ctx context.Context, w *engine.World) error
	Undo(ctx context.Context, opts ...engine.Option) (*engine.World, error)
	MarkTurn(ctx context.Context, w *engine.World) error
	Rollback(ctx context.Context, turn int, opts ...engine.Option) (*engine.World, error)
}

// Journal mirrors the session into long-term storage.
type Journal interface {
	Start(ctx context.Context, w *engine.World, seed string) error
	Sync(ctx context.Context, w *engine.World, res *ai.Result) error
}

// Reply is what one command produced.
type Reply struct {
	Markdown string
	// Status and Board describe the board after the command; the worker that ran it fills them in.
	Status string
	Board  Board
	Quit   bool
}

// Board is the track summary shown beside the log.
type Board struct {
	Year, Turn     int
	Scenario       int
	Prestige       int
	Funding        int
	Troops         int
	Cells          int
	USPosture      string
	WorldPosture   string
	IslamistRule   int
	GoodResources  int
	IslamResources int
}

func boardOf(w *engine.World) Board {
	pos := w.WorldPosture()
	sum := w.Summarize()
	return Board{
		Year:           w.Year(),
		Turn:           w.Turn,
		Scenario:       w.Scenario,
		Prestige:       w.Prestige,
		Funding:        w.Funding,
		Troops:         w.TroopPool,
		Cells:          w.CellPool,
		USPosture:      string(w.MustCountry(engine.UnitedStates).Posture),
		WorldPosture:   fmt.Sprintf("%s %d", engine.WorldPostureLabel(pos), max(pos, -pos)),
		IslamistRule:   w.NumIslamistRule(),
		GoodResources:  sum.GoodResources,
		IslamResources: sum.IslamistResources,
	}
}

// Shell runs player commands against one game. It is not safe for concurrent use.
type Shell struct {
	w       *engine.World
	cards   ai.CardSource
	flow    *ai.Flowchart
	decider engine.Decider
	log     *zap.Logger
	snaps   Snapshots
	journal Journal
	strict  bool
}

type ShellOption func(*Shell)

func WithSnapshots(s Snapshots) ShellOption { return func(sh *Shell) { sh.snaps = s } }
func WithJournal(j Journal) ShellOption     { return func(sh *Shell) { sh.journal = j } }
func WithStrict(strict bool) ShellOption    { return func(sh *Shell) { sh.strict = strict } }
func WithShellLogger(l *zap.Logger) ShellOption {
	return func(sh *Shell) { sh.log = l }
}

func NewShell(w *engine.World, cards ai.CardSource, opts ...ShellOption) *Shell {
	sh := &Shell{w: w, cards: cards, flow: ai.New(cards), decider: w.Decider(), log: w.Logger(), strict: true}
	for _, o := range opts {
		o(sh)
	}
	w.SetLogger(sh.log)
	return sh
}

func (sh *Shell) World() *engine.World { return sh.w }

// Current describes the board without running a command.
func (sh *Shell) Current() Reply { return sh.reply("") }

// SetDecider routes every later question to d.
func (sh *Shell) SetDecider(d engine.Decider) {
	sh.decider = d
	sh.w.SetDecider(d)
}

// Start records the turn-start and suspend slots for a fresh or resumed game.
func (sh *Shell) Start(ctx context.Context, seed string) error {
	if sh.snaps != nil {
		if err := sh.snaps.MarkTurn(ctx, sh.w); err != nil {
			return err
		}
		if err := sh.snaps.Suspend(ctx, sh.w); err != nil {
			return err
		}
	}
	if sh.journal != nil {
		if err := sh.journal.Start(ctx, sh.w, seed); err != nil {
			sh.log.Warn("journal unavailable", zap.Error(err))
			sh.journal = nil
		}
	}
	return nil
}

var aliases = map[string]string{
	"dis":  "disrupt",
	"alr":  "alert",
	"rea":  "reassessment",
	"reg":  "regime",
	"wit":  "withdraw",
	"dep":  "deploy",
	"sta":  "status",
	"his":  "history",
	"roll": "rollback",
	"q":    "quit",
	"?":    "help",
}

const helpText = `## Commands

- disrupt (dis): US Disrupt
- woi: US War of Ideas
- alert (alr): US Alert
- reassessment (rea): US Reassessment
- regime (reg): US Regime Change
- withdraw (wit): US Withdrawal
- deploy (dep): US troop deployment
- j <card#>: Jihadist AI plays a card
- u <card#>: US plays a card
- plot: resolve plots
- turn: end the turn
- status (sta) [country]: board status
- history (his): resolution log
- undo: take back the last card play
- rollback (roll) <turn>: return to the start of a turn
- quit: save and leave
`

// Exec parses and runs one command line. A failed command leaves the board as it was;
// an invariant failure in strict mode is returned wrapped in ErrInvariantViolation and
// the game should stop.
func (sh *Shell) Exec(ctx context.Context, line string) (Reply, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return sh.reply(""), nil
	}
	cmd := strings.ToLower(fields[0])
	if full, ok := aliases[cmd]; ok {
		cmd = full
	}
	args := fields[1:]
	sh.log.Debug("command", zap.String("cmd", cmd), zap.Strings("args", args))

	switch cmd {
	case "help":
		return sh.reply(helpText), nil
	case "status":
		if len(args) > 0 {
			md, err := text.CountryStatus(sh.w, strings.Join(args, " "))
			if err != nil {
				return sh.reply(""), err
			}
			return sh.reply(md), nil
		}
		return sh.reply(text.Status(sh.w)), nil
	case "history":
		return sh.reply(text.History(sh.w)), nil
	case "undo":
		return sh.undo(ctx)
	case "rollback":
		if len(args) != 1 {
			return sh.reply(""), errors.Wrap(engine.ErrInvalidTarget, "usage: rollback <turn>")
		}
		turn, err := strconv.Atoi(args[0])
		if err != nil || turn < 1 || turn > sh.w.Turn {
			return sh.reply(""), errors.Wrapf(engine.ErrInvalidTarget, "no turn %q to roll back to", args[0])
		}
		return sh.rollback(ctx, turn)
	case "quit":
		if sh.snaps != nil {
			if err := sh.snaps.Suspend(ctx, sh.w); err != nil {
				return sh.reply(""), err
			}
		}
		r := sh.reply("Game suspended.")
		r.Quit = true
		return r, nil
	}

	op, ok := sh.mutating(cmd, args)
	if !ok {
		return sh.reply(""), errors.Wrapf(engine.ErrInvalidTarget, "unknown command %q, try help", cmd)
	}
	return sh.transact(ctx, cmd, op)
}

// op is a board-changing command. It may return the flowchart result of a card play.
type op func(ctx context.Context) (*ai.Result, error)

func (sh *Shell) mutating(cmd string, args []string) (op, bool) {
	switch cmd {
	case "disrupt":
		return sh.disrupt, true
	case "woi":
		return sh.warOfIdeas, true
	case "alert":
		return sh.alert, true
	case "reassessment":
		return func(context.Context) (*ai.Result, error) { sh.w.Reassessment(); return nil, nil }, true
	case "regime":
		return sh.regimeChange, true
	case "withdraw":
		return sh.withdraw, true
	case "deploy":
		return sh.deploy, true
	case "plot":
		return func(context.Context) (*ai.Result, error) { return nil, sh.w.ResolvePlots() }, true
	case "turn":
		return sh.endTurn, true
	case "j", "u":
		return func(ctx context.Context) (*ai.Result, error) {
			if len(args) != 1 {
				return nil, errors.Wrapf(engine.ErrInvalidTarget, "usage: %s <card#>", cmd)
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, errors.Wrapf(engine.ErrInvalidTarget, "card %q", args[0])
			}
			if _, err := sh.cards.Lookup(n); err != nil {
				return nil, err
			}
			if sh.snaps != nil {
				if err := sh.snaps.MarkUndo(ctx, sh.w); err != nil {
					return nil, err
				}
			}
			if cmd == "j" {
				res, err := sh.flow.Play(sh.w, n)
				return &res, err
			}
			return nil, sh.usCard(n)
		}, true
	}
	return nil, false
}

// transact runs fn so that a failure restores the board and the dice.
func (sh *Shell) transact(ctx context.Context, cmd string, fn op) (Reply, error) {
	before, err := sh.w.Snapshot()
	if err != nil {
		return sh.reply(""), errors.Wrap(err, "snapshot")
	}
	mark := len(sh.w.History)
	res, err := fn(ctx)
	if err == nil {
		err = sh.w.CheckInvariants()
	}
	if err != nil {
		if errors.Is(err, engine.ErrInvariantViolation) {
			sh.log.Warn("invariant failed", zap.String("cmd", cmd), zap.Error(err))
			if sh.strict {
				return sh.reply(sh.linesSince(mark)), err
			}
			sh.w.ResetErr()
			return sh.after(ctx, mark, res)
		}
		if rerr := sh.restore(before); rerr != nil {
			return sh.reply(""), errors.Wrap(rerr, "restore after failed command")
		}
		return sh.reply(""), err
	}
	return sh.after(ctx, mark, res)
}

func (sh *Shell) after(ctx context.Context, mark int, res *ai.Result) (Reply, error) {
	if sh.snaps != nil {
		if err := sh.snaps.Suspend(ctx, sh.w); err != nil {
			return sh.reply(sh.linesSince(mark)), err
		}
	}
	sh.sync(ctx, res)
	return sh.reply(sh.linesSince(mark)), nil
}

func (sh *Shell) sync(ctx context.Context, res *ai.Result) {
	if sh.journal == nil {
		return
	}
	if err := sh.journal.Sync(ctx, sh.w, res); err != nil {
		sh.log.Warn("journal sync failed", zap.Error(err))
	}
}

func (sh *Shell) options() []engine.Option {
	opts := []engine.Option{engine.WithDecider(sh.decider), engine.WithLogger(sh.log)}
	if _, ok := sh.w.Roller().(*engine.Stream); !ok {
		opts = append(opts, engine.WithRoller(sh.w.Roller()))
	}
	return opts
}

func (sh *Shell) restore(data []byte) error {
	w, err := engine.RestoreWorld(data, sh.options()...)
	if err != nil {
		return err
	}
	sh.w = w
	return nil
}

func (sh *Shell) replace(ctx context.Context, w *engine.World, msg string) (Reply, error) {
	sh.w = w
	if sh.snaps != nil {
		if err := sh.snaps.Suspend(ctx, w); err != nil {
			return sh.reply(msg), err
		}
	}
	sh.sync(ctx, nil)
	return sh.reply(msg), nil
}

func (sh *Shell) undo(ctx context.Context) (Reply, error) {
	if sh.snaps == nil {
		return sh.reply(""), errors.Wrap(engine.ErrInvalidTarget, "undo needs a snapshot store")
	}
	w, err := sh.snaps.Undo(ctx, sh.options()...)
	if errors.Is(err, store.ErrNotFound) {
		return sh.reply(""), errors.Wrap(engine.ErrInvalidTarget, "nothing to undo")
	}
	if err != nil {
		return sh.reply(""), err
	}
	return sh.replace(ctx, w, "Undo complete: the last card play was taken back.")
}

func (sh *Shell) rollback(ctx context.Context, turn int) (Reply, error) {
	if sh.snaps == nil {
		return sh.reply(""), errors.Wrap(engine.ErrInvalidTarget, "rollback needs a snapshot store")
	}
	w, err := sh.snaps.Rollback(ctx, turn, sh.options()...)
	if errors.Is(err, store.ErrNotFound) {
		return sh.reply(""), errors.Wrapf(engine.ErrInvalidTarget, "no snapshot for turn %d", turn)
	}
	if err != nil {
		return sh.reply(""), err
	}
	return sh.replace(ctx, w, fmt.Sprintf("Rolled back to the start of turn %d.", turn))
}

func (sh *Shell) reply(md string) Reply {
	return Reply{Markdown: md, Status: text.Status(sh.w), Board: boardOf(sh.w)}
}

func (sh *Shell) linesSince(mark int) string {
	if mark > len(sh.w.History) {
		return ""
	}
	return text.Lines(sh.w.History[mark:])
}

func (sh *Shell) endTurn(ctx context.Context) (*ai.Result, error) {
	sh.w.EndTurn()
	if sh.snaps != nil {
		return nil, sh.snaps.MarkTurn(ctx, sh.w)
	}
	return nil, nil
}
