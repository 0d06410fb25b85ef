// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package lexer

import (
	"github.com/open-edge-platform/arith-lexer/internal/automata"
)

var operatorCategories = map[string]Category{
	"=": CategoryAssignment,
	"+": CategoryAddition,
	"-": CategorySubtraction,
	"*": CategoryMultiplication,
	"/": CategoryDivision,
	"^": CategoryPower,
}

type rule struct {
	dfa    *automata.DFA
	refine func(lexeme string) Category
}

func fixed(c Category) func(string) Category {
	return func(string) Category { return c }
}

// rules are tried in order; the first automaton accepting the lexeme decides.
var rules = []rule{
	{dfa: automata.Integer, refine: fixed(CategoryInteger)},
	{dfa: automata.Float, refine: fixed(CategoryFloat)},
	{dfa: automata.ScientificNotation, refine: fixed(CategoryScientificNotation)},
	{dfa: automata.Operator, refine: operatorCategory},
	{dfa: automata.Identifier, refine: fixed(CategoryVariable)},
	{dfa: automata.SpecialSymbol, refine: parenthesisCategory},
}

func operatorCategory(lexeme string) Category {
	if c, ok := operatorCategories[lexeme]; ok {
		return c
	}
	return CategoryOperator
}

func parenthesisCategory(lexeme string) Category {
	if lexeme == "(" {
		return CategoryOpeningParenthesis
	}
	return CategoryClosingParenthesis
}

// Classify returns the category of a single lexeme. It never fails: a lexeme no
// automaton accepts is Unidentified.
func Classify(lexeme string) Category {
	for _, r := range rules {
		if r.dfa.Accepts(lexeme) {
			return r.refine(lexeme)
		}
	}
	return CategoryUnidentified
}
