package cards

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"
	"github.com/sirjenkins/lwotai/internal/engine"
)

// Event is one card of the deck bound to its compiled playability rule and its effect.
type Event struct {
	card    Card
	program *vm.Program
	apply   eventFunc
}

func (e *Event) Number() int           { return e.card.Number }
func (e *Event) Name() string          { return e.card.Name }
func (e *Event) Type() engine.CardType { return e.card.Type }
func (e *Event) Ops() int              { return e.card.Ops }
func (e *Event) PlacesCell() bool      { return e.card.PutsCell }
func (e *Event) Card() Card            { return e.card }

// Playable reports whether side may play the card as an event. Cards of the other
// side never are; while the door of Itjihad is closed the Jihadist plays no events.
func (e *Event) Playable(side engine.Side, w *engine.World) (bool, error) {
	switch e.card.Type {
	case engine.CardUS:
		if side != engine.SideUS {
			return false, nil
		}
	case engine.CardJihadist:
		if side != engine.SideJihadist {
			return false, nil
		}
		if w.IsLapsing(engine.LapsingItjihadClose) {
			return false, nil
		}
	default:
		if side == engine.SideJihadist && w.IsLapsing(engine.LapsingItjihadClose) {
			return false, nil
		}
	}
	if e.program == nil {
		return true, nil
	}
	env := newEnv(w, side)
	out, err := vm.Run(e.program, env)
	if err != nil {
		return false, errors.Wrapf(err, "evaluate card %d", e.card.Number)
	}
	if env.asked.err != nil {
		return false, env.asked.err
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Apply resolves the event and logs the reminders for the physical card.
func (e *Event) Apply(side engine.Side, w *engine.World) (engine.EventOutcome, error) {
	w.Logf("Card played for Event.")
	out, err := e.apply(w, side)
	if err != nil || !out.Handled {
		return out, err
	}
	if e.card.Remove {
		w.Logf("Remove card from game.")
	}
	if e.card.Mark {
		w.Logf("Place marker for card.")
	}
	if e.card.Lapsing {
		w.Logf("Place card in Lapsing.")
	}
	return out, nil
}

// Deck is the full catalogue with every rule compiled.
type Deck struct {
	events []*Event
}

// New compiles the playability rules of all 120 cards.
func New() (*Deck, error) {
	d := &Deck{events: make([]*Event, 0, len(table))}
	for _, c := range table {
		ev := &Event{card: c, apply: effectOf(c)}
		if ev.apply == nil {
			return nil, errors.Errorf("card %d has no event", c.Number)
		}
		if c.When != "" {
			prog, err := expr.Compile(c.When, expr.Env(Env{}), expr.AsBool())
			if err != nil {
				return nil, errors.Wrapf(err, "compile card %d", c.Number)
			}
			ev.program = prog
		}
		d.events = append(d.events, ev)
	}
	return d, nil
}

func effectOf(c Card) eventFunc {
	switch c.Type {
	case engine.CardUS:
		return usEvents[c.Number]
	case engine.CardJihadist:
		return jihadistEvents[c.Number]
	}
	return unassociatedEvents[c.Number]
}

func (d *Deck) Len() int { return len(d.events) }

// Event returns card n, 1-based.
func (d *Deck) Event(n int) (*Event, error) {
	if n < 1 || n > len(d.events) {
		return nil, errors.Wrapf(engine.ErrInvalidTarget, "no card %d", n)
	}
	return d.events[n-1], nil
}

// Lookup satisfies the flowchart's card source.
func (d *Deck) Lookup(n int) (engine.CardEvent, error) {
	ev, err := d.Event(n)
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// Name returns the card name or "" for an unknown number.
func (d *Deck) Name(n int) string {
	if ev, err := d.Event(n); err == nil {
		return ev.Name()
	}
	return ""
}
