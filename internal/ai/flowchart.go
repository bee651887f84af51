// Package ai plays the Jihadist side: each card goes through a fixed flowchart that
// decides between the card's event and its operations.
package ai

import (
	"github.com/pkg/errors"
	"github.com/sirjenkins/lwotai/internal/engine"
	"go.uber.org/zap"
)

// State is one box of the flowchart.
type State string

const (
	Start                   State = "Start"
	CheckNonUSEventPlayable State = "CheckNonUSEventPlayable"
	CheckEventPlacesCell    State = "CheckEventPlacesCell"
	CheckPoolHasCell        State = "CheckPoolHasCell"
	PlayEvent               State = "PlayEvent"
	Radicalize              State = "Radicalize"
	CheckUSEventPlayable    State = "CheckUSEventPlayable"
	PlotHere                State = "PlotHere"
	UnplayableFallback      State = "UnplayableFallback"
	MajorJihad              State = "MajorJihad"
	MinorJihad              State = "MinorJihad"
	CellsAvailable          State = "CellsAvailable"
	Recruit                 State = "Recruit"
	Travel                  State = "Travel"
)

// CardSource resolves a card number to its event.
type CardSource interface {
	Lookup(n int) (engine.CardEvent, error)
}

// Result is the path one card took.
type Result struct {
	Card        int
	Path        []State
	EventPlayed bool
	// Target is the major jihad country, when one was chosen.
	Target string
}

type Flowchart struct {
	cards CardSource
}

func New(cards CardSource) *Flowchart {
	return &Flowchart{cards: cards}
}

type run struct {
	w   *engine.World
	log *zap.Logger
	res Result
}

func (r *run) enter(s State) {
	r.res.Path = append(r.res.Path, s)
	r.log.Debug("flowchart", zap.Int("card", r.res.Card), zap.String("state", string(s)))
}

// radicalize spends whatever a step left over.
func (r *run) radicalize(unused int) {
	if unused <= 0 {
		return
	}
	r.enter(Radicalize)
	r.w.Radicalize(unused)
}

// Play runs card through the flowchart against w. Errors come from event questions the
// decider could not answer or from an invariant the rules broke.
func (f *Flowchart) Play(w *engine.World, card int) (Result, error) {
	ev, err := f.cards.Lookup(card)
	if err != nil {
		return Result{Card: card}, err
	}
	r := &run{w: w, log: w.Logger(), res: Result{Card: card}}
	r.enter(Start)
	r.enter(CheckNonUSEventPlayable)
	playable := false
	if ev.Type() != engine.CardUS {
		if playable, err = ev.Playable(engine.SideJihadist, w); err != nil {
			return r.res, errors.Wrapf(err, "card %d playability", card)
		}
	}
	if playable {
		w.Logf("Playable Non-US Event.")
		r.enter(CheckEventPlacesCell)
		if ev.PlacesCell() {
			r.enter(CheckPoolHasCell)
			if w.CellPool <= 0 {
				r.enter(Radicalize)
				w.Radicalize(ev.Ops())
				return r.res, w.Err()
			}
		}
		return r.res, f.playEvent(r, ev)
	}

	r.enter(CheckUSEventPlayable)
	usPlayable := false
	if ev.Type() == engine.CardUS {
		if usPlayable, err = ev.Playable(engine.SideUS, w); err != nil {
			return r.res, errors.Wrapf(err, "card %d playability", card)
		}
	}
	if usPlayable {
		w.Logf("Playable US Event.")
		r.enter(PlotHere)
		r.radicalize(w.HandlePlot(ev.Ops(), true))
		return r.res, w.Err()
	}
	r.enter(UnplayableFallback)
	w.Logf("Unplayable Event. Using Ops for Operations.")
	f.operations(r, ev.Ops())
	return r.res, w.Err()
}

func (f *Flowchart) playEvent(r *run, ev engine.CardEvent) error {
	r.enter(PlayEvent)
	out, err := ev.Apply(engine.SideJihadist, r.w)
	if err != nil {
		return errors.Wrapf(err, "card %d event", ev.Number())
	}
	r.res.EventPlayed = out.Handled
	if ev.Type() == engine.CardUnassociated || out.UsedAsOperations {
		r.w.Logf("Unassociated event now being used for Ops.")
		f.operations(r, ev.Ops())
	}
	return r.w.Err()
}

// operations is the major jihad, minor jihad, recruit, travel cascade.
func (f *Flowchart) operations(r *run, ops int) {
	w := r.w
	r.enter(MajorJihad)
	if target := w.MajorJihadChoice(ops); target != "" {
		r.res.Target = target
		r.radicalize(w.HandleJihad(target, ops))
		return
	}
	r.enter(MinorJihad)
	if plan := w.MinorJihadChoice(ops); len(plan) > 0 {
		r.radicalize(w.HandleMinorJihad(plan, ops))
		return
	}
	r.enter(CellsAvailable)
	if w.CellsAvailable(false) > 0 {
		r.enter(Recruit)
		r.radicalize(w.HandleRecruit(ops, false))
		return
	}
	r.enter(Travel)
	r.radicalize(w.HandleTravel(ops, engine.TravelStandard))
}
