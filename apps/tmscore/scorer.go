package tmscore

import (
	"context"
	"fmt"

	"github.com/BurntSushi/tmscore/tmout"
)

// Scorer remembers the most recent comparison it ran, so that its scores,
// superposition and raw output can be retrieved afterwards.
//
// Each call to Compare replaces everything known about the previous one, and
// a failed comparison leaves the Scorer with nothing computed. A Scorer must
// not be used from more than one goroutine at a time; use one per goroutine
// or call Config.Compare directly.
type Scorer struct {
	Config Config
	last   *Comparison
}

// NewScorer returns a Scorer that compares structures with conf.
func NewScorer(conf Config) *Scorer {
	return &Scorer{Config: conf}
}

// Compare compares x with y and remembers the result.
func (s *Scorer) Compare(ctx context.Context, x, y Structure) (Result, error) {
	s.last = nil
	cmp, err := s.Config.Compare(ctx, x, y)
	if err != nil {
		return Result{}, err
	}
	s.last = cmp
	return cmp.Result, nil
}

// Comparison returns the most recent comparison.
func (s *Scorer) Comparison() (*Comparison, error) {
	if s.last == nil {
		return nil, ErrNotYetComputed
	}
	return s.last, nil
}

// Result returns the scores of the most recent comparison.
func (s *Scorer) Result() (Result, error) {
	if s.last == nil {
		return Result{}, ErrNotYetComputed
	}
	return s.last.Result, nil
}

// ParseTransform parses the superposition of the most recent comparison from
// its raw reports, whether or not Config.ParseTransform was set when it ran.
// With Config.Verbose set, the superposition is printed.
func (s *Scorer) ParseTransform() (tmout.Transform, error) {
	if s.last == nil {
		return tmout.Transform{}, ErrNotYetComputed
	}
	tr, err := s.last.Transform()
	if err != nil {
		return tmout.Transform{}, err
	}
	s.last.Result.Transform = &tr
	if s.Config.Verbose {
		fmt.Fprintln(s.Config.output(), FormatTransform(tr))
	}
	return tr, nil
}

// Render returns the raw reports of the most recent comparison.
func (s *Scorer) Render() (string, error) {
	if s.last == nil {
		return "", ErrNotYetComputed
	}
	return s.last.String(), nil
}

// Summary returns the score summary of the most recent comparison.
func (s *Scorer) Summary() (string, error) {
	if s.last == nil {
		return "", ErrNotYetComputed
	}
	return s.last.Result.String(), nil
}
