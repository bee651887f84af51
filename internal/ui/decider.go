package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirjenkins/lwotai/internal/engine"
)

// askFunc shows prompt (with a hint of valid answers) and returns the raw reply.
// An error means the player gave up on the question.
type askFunc func(prompt, hint string) (string, error)

// promptDecider implements engine.Decider on top of a raw question source and
// repeats a question until the answer parses.
type promptDecider struct {
	ask askFunc
}

func (d promptDecider) loop(prompt, hint string, parse func(string) error) error {
	for {
		reply, err := d.ask(prompt, hint)
		if err != nil {
			return errors.Wrapf(engine.ErrAmbiguousChoice, "%s: %v", prompt, err)
		}
		err = parse(reply)
		if err == nil {
			return nil
		}
		hint = err.Error()
	}
}

func (d promptDecider) AskYesNo(prompt string) (bool, error) {
	var v bool
	err := d.loop(prompt+" (y/n)", "y or n", func(s string) (err error) {
		v, err = engine.ParseYesNo(s)
		return err
	})
	return v, err
}

func (d promptDecider) AskCountry(prompt string, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", errors.Wrapf(engine.ErrInvalidTarget, "%s: no candidates", prompt)
	}
	var v string
	err := d.loop(prompt, strings.Join(candidates, ", "), func(s string) (err error) {
		v, err = engine.MatchName(s, candidates)
		return err
	})
	return v, err
}

func (d promptDecider) AskDieRoll(prompt string) (int, error) {
	return d.AskNumber(prompt, 1, 6)
}

func (d promptDecider) AskNumber(prompt string, lo, hi int) (int, error) {
	var v int
	err := d.loop(prompt, fmt.Sprintf("%d-%d", lo, hi), func(s string) (err error) {
		v, err = engine.ParseNumber(s, lo, hi)
		return err
	})
	return v, err
}

func (d promptDecider) AskOption(prompt string, options []string) (string, error) {
	var v string
	err := d.loop(prompt, strings.Join(options, "/"), func(s string) (err error) {
		v, err = engine.MatchName(s, options)
		return err
	})
	return v, err
}

// NewLineDecider asks on out and reads answers line by line from in.
func NewLineDecider(in *bufio.Reader, out io.Writer) engine.Decider {
	return promptDecider{ask: func(prompt, hint string) (string, error) {
		fmt.Fprintf(out, "%s [%s]: ", prompt, hint)
		line, err := in.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}}
}

// query is one question handed from the worker goroutine to the TUI.
type query struct {
	prompt string
	hint   string
	answer chan reply
}

type reply struct {
	text   string
	cancel bool
}

var errCancelled = errors.New("cancelled")

// chanDecider blocks the worker on each question until the TUI answers it.
func chanDecider(queries chan<- query) engine.Decider {
	return promptDecider{ask: func(prompt, hint string) (string, error) {
		q := query{prompt: prompt, hint: hint, answer: make(chan reply, 1)}
		queries <- q
		r := <-q.answer
		if r.cancel {
			return "", errCancelled
		}
		return r.text, nil
	}}
}
