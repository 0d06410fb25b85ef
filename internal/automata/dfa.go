// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package automata

import (
	"errors"
	"fmt"
	"slices"
)

// State identifies a state of an automaton.
type State int

func (s State) String() string {
	return fmt.Sprintf("q%d", int(s))
}

// Table holds the transitions of an automaton: state -> class -> next state.
type Table map[State]map[Class]State

// DFA is a deterministic finite automaton over character classes. It is built once
// and never mutated afterwards, so a single value may be evaluated concurrently.
type DFA struct {
	name      string
	alphabet  Alphabet
	classify  Classifier
	start     State
	accepting map[State]struct{}
	table     Table
}

// New builds a DFA and checks that its transition table is total over the alphabet,
// i.e. every declared class has a successor from every state, and that every state
// referenced by the start state, the accepting set or a transition is declared.
func New(name string, alphabet Alphabet, start State, accepting []State, table Table) (*DFA, error) {
	if len(alphabet) == 0 {
		return nil, fmt.Errorf("automaton %q: empty alphabet", name)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("automaton %q: empty transition table", name)
	}
	if _, ok := table[start]; !ok {
		return nil, fmt.Errorf("automaton %q: undeclared start state %v", name, start)
	}

	d := &DFA{
		name:      name,
		alphabet:  slices.Clone(alphabet),
		start:     start,
		accepting: make(map[State]struct{}, len(accepting)),
		table:     make(Table, len(table)),
	}
	d.classify = d.alphabet.Classifier()

	for _, s := range accepting {
		if _, ok := table[s]; !ok {
			return nil, fmt.Errorf("automaton %q: undeclared accepting state %v", name, s)
		}
		d.accepting[s] = struct{}{}
	}

	var errs []error
	for from, row := range table {
		copied := make(map[Class]State, len(row))
		for _, class := range d.alphabet {
			to, ok := row[class]
			if !ok {
				errs = append(errs, fmt.Errorf("missing transition from %v on %v", from, class))
				continue
			}
			if _, declared := table[to]; !declared {
				errs = append(errs, fmt.Errorf("transition from %v on %v to undeclared state %v", from, class, to))
				continue
			}
			copied[class] = to
		}
		for class := range row {
			if !d.alphabet.Contains(class) {
				errs = append(errs, fmt.Errorf("transition from %v on %v outside the alphabet", from, class))
			}
		}
		d.table[from] = copied
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("automaton %q: %w", name, err)
	}
	return d, nil
}

// MustNew is like New but panics on an invalid definition. It is meant for
// package-level automata.
func MustNew(name string, alphabet Alphabet, start State, accepting []State, table Table) *DFA {
	d, err := New(name, alphabet, start, accepting, table)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *DFA) Name() string { return d.name }

// Alphabet returns a copy of the classes recognized by the automaton.
func (d *DFA) Alphabet() Alphabet { return slices.Clone(d.alphabet) }

func (d *DFA) Start() State { return d.start }

// IsAccepting reports whether s is an accepting state.
func (d *DFA) IsAccepting(s State) bool {
	_, ok := d.accepting[s]
	return ok
}

// Step returns the successor of s on class c. The boolean is false when no such
// transition exists.
func (d *DFA) Step(s State, c Class) (State, bool) {
	to, ok := d.table[s][c]
	return to, ok
}

// States returns the declared states in ascending order.
func (d *DFA) States() []State {
	states := make([]State, 0, len(d.table))
	for s := range d.table {
		states = append(states, s)
	}
	slices.Sort(states)
	return states
}

// Accepts evaluates input with the automaton's own alphabet classifier.
func (d *DFA) Accepts(input string) bool {
	return Evaluate(d, d.classify, input)
}

// Evaluate runs d over input, mapping each character with classify. A character
// classify cannot map rejects the whole input at once, whatever the current state.
func Evaluate(d *DFA, classify Classifier, input string) bool {
	state := d.start
	for _, r := range input {
		class, ok := classify(r)
		if !ok {
			return false
		}
		next, ok := d.table[state][class]
		if !ok {
			return false
		}
		state = next
	}
	return d.IsAccepting(state)
}
