package engine

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Decider answers the questions the rules cannot settle on their own: facts about the
// physical table (cards in hand, what the US did last phase) and choices reserved for the player.
// Calls block until answered.
type Decider interface {
	AskYesNo(prompt string) (bool, error)
	AskCountry(prompt string, candidates []string) (string, error)
	AskDieRoll(prompt string) (int, error)
	AskNumber(prompt string, lo, hi int) (int, error)
	AskOption(prompt string, options []string) (string, error)
}

// ScriptedDecider replays a queue of textual answers. An empty queue yields ErrAmbiguousChoice.
type ScriptedDecider struct {
	Answers []string
}

func NewScriptedDecider(answers ...string) *ScriptedDecider {
	return &ScriptedDecider{Answers: answers}
}

func (s *ScriptedDecider) Pending() int { return len(s.Answers) }

func (s *ScriptedDecider) next(prompt string) (string, error) {
	if len(s.Answers) == 0 {
		return "", errors.Wrapf(ErrAmbiguousChoice, "no scripted answer for %q", prompt)
	}
	a := s.Answers[0]
	s.Answers = s.Answers[1:]
	return strings.TrimSpace(a), nil
}

func (s *ScriptedDecider) AskYesNo(prompt string) (bool, error) {
	a, err := s.next(prompt)
	if err != nil {
		return false, err
	}
	return ParseYesNo(a)
}

func (s *ScriptedDecider) AskCountry(prompt string, candidates []string) (string, error) {
	a, err := s.next(prompt)
	if err != nil {
		return "", err
	}
	return MatchName(a, candidates)
}

func (s *ScriptedDecider) AskDieRoll(prompt string) (int, error) {
	return s.AskNumber(prompt, 1, 6)
}

func (s *ScriptedDecider) AskNumber(prompt string, lo, hi int) (int, error) {
	a, err := s.next(prompt)
	if err != nil {
		return 0, err
	}
	return ParseNumber(a, lo, hi)
}

func (s *ScriptedDecider) AskOption(prompt string, options []string) (string, error) {
	a, err := s.next(prompt)
	if err != nil {
		return "", err
	}
	return MatchName(a, options)
}

// FallbackDecider answers from the script while it lasts, then from Interactive.
type FallbackDecider struct {
	Script      *ScriptedDecider
	Interactive Decider
}

func (f *FallbackDecider) pick() (Decider, error) {
	if f.Script != nil && f.Script.Pending() > 0 {
		return f.Script, nil
	}
	if f.Interactive == nil {
		return nil, errors.Wrap(ErrAmbiguousChoice, "no decision source")
	}
	return f.Interactive, nil
}

func (f *FallbackDecider) AskYesNo(prompt string) (bool, error) {
	d, err := f.pick()
	if err != nil {
		return false, err
	}
	return d.AskYesNo(prompt)
}

func (f *FallbackDecider) AskCountry(prompt string, candidates []string) (string, error) {
	d, err := f.pick()
	if err != nil {
		return "", err
	}
	return d.AskCountry(prompt, candidates)
}

func (f *FallbackDecider) AskDieRoll(prompt string) (int, error) {
	d, err := f.pick()
	if err != nil {
		return 0, err
	}
	return d.AskDieRoll(prompt)
}

func (f *FallbackDecider) AskNumber(prompt string, lo, hi int) (int, error) {
	d, err := f.pick()
	if err != nil {
		return 0, err
	}
	return d.AskNumber(prompt, lo, hi)
}

func (f *FallbackDecider) AskOption(prompt string, options []string) (string, error) {
	d, err := f.pick()
	if err != nil {
		return "", err
	}
	return d.AskOption(prompt, options)
}

// ParseYesNo accepts y/yes/n/no in any case.
func ParseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, errors.Wrapf(ErrAmbiguousChoice, "expected y or n, got %q", s)
}

func ParseNumber(s string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrapf(ErrAmbiguousChoice, "expected a number, got %q", s)
	}
	if n < lo || n > hi {
		return 0, errors.Wrapf(ErrAmbiguousChoice, "%d outside %d-%d", n, lo, hi)
	}
	return n, nil
}

// MatchName resolves user input against candidates: exact (case-insensitive) match first,
// then a unique prefix.
func MatchName(input string, candidates []string) (string, error) {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return "", errors.Wrap(ErrAmbiguousChoice, "empty answer")
	}
	var prefixed []string
	for _, c := range candidates {
		lc := strings.ToLower(c)
		if lc == in {
			return c, nil
		}
		if strings.HasPrefix(lc, in) {
			prefixed = append(prefixed, c)
		}
	}
	switch len(prefixed) {
	case 1:
		return prefixed[0], nil
	case 0:
		return "", errors.Wrapf(ErrInvalidTarget, "%q is not one of %s", input, strings.Join(candidates, ", "))
	}
	return "", errors.Wrapf(ErrAmbiguousChoice, "%q matches %s", input, strings.Join(prefixed, ", "))
}
