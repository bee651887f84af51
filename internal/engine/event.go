package engine

// EventOutcome reports how a card event resolved. UsedAsOperations is set when an event
// declines its own effect and the card's ops should be spent instead.
type EventOutcome struct {
	Handled          bool
	UsedAsOperations bool
}

// CardEvent is one card's event as the flowchart sees it.
type CardEvent interface {
	Number() int
	Name() string
	Type() CardType
	Ops() int
	Playable(side Side, w *World) (bool, error)
	PlacesCell() bool
	Apply(side Side, w *World) (EventOutcome, error)
}
