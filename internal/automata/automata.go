// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

// Package automata holds the deterministic finite automata used to recognize the
// token classes of the arithmetic language, together with the generic evaluator
// that runs them.
package automata

const (
	q0 State = iota
	q1
	q2
	q3
	q4
	q5
	q6
	q7
	q8
)

// Integer accepts an optional sign followed by one or more digits.
var Integer = MustNew("Integer",
	Alphabet{Digit, Sign},
	q0, []State{q1},
	Table{
		q0: {Digit: q1, Sign: q2},
		q1: {Digit: q1, Sign: q3},
		q2: {Digit: q1, Sign: q3},
		q3: {Digit: q3, Sign: q3},
	},
)

// Float accepts an optional sign, optional digits, a decimal point and at least one digit.
var Float = MustNew("Float",
	Alphabet{Digit, Sign, DecimalPoint},
	q0, []State{q4},
	Table{
		q0: {Digit: q1, Sign: q2, DecimalPoint: q3},
		q1: {Digit: q1, Sign: q5, DecimalPoint: q3},
		q2: {Digit: q1, Sign: q5, DecimalPoint: q3},
		q3: {Digit: q4, Sign: q5, DecimalPoint: q5},
		q4: {Digit: q4, Sign: q5, DecimalPoint: q5},
		q5: {Digit: q5, Sign: q5, DecimalPoint: q5},
	},
)

// ScientificNotation accepts an integer or float mantissa, the exponent marker 'E',
// an optional sign and at least one digit.
var ScientificNotation = MustNew("ScientificNotation",
	Alphabet{Digit, Sign, DecimalPoint, Exponent},
	q0, []State{q8},
	Table{
		q0: {Digit: q1, Sign: q2, DecimalPoint: q3, Exponent: q5},
		q1: {Digit: q1, Sign: q5, DecimalPoint: q3, Exponent: q6},
		q2: {Digit: q1, Sign: q5, DecimalPoint: q3, Exponent: q5},
		q3: {Digit: q4, Sign: q5, DecimalPoint: q5, Exponent: q6},
		q4: {Digit: q4, Sign: q5, DecimalPoint: q5, Exponent: q6},
		q5: {Digit: q5, Sign: q5, DecimalPoint: q5, Exponent: q5},
		q6: {Digit: q8, Sign: q7, DecimalPoint: q5, Exponent: q5},
		q7: {Digit: q8, Sign: q5, DecimalPoint: q5, Exponent: q5},
		q8: {Digit: q8, Sign: q5, DecimalPoint: q5, Exponent: q5},
	},
)

// Operator accepts exactly one of = + - * / ^.
var Operator = MustNew("Operator",
	Alphabet{OperatorSymbol},
	q0, []State{q1},
	Table{
		q0: {OperatorSymbol: q1},
		q1: {OperatorSymbol: q2},
		q2: {OperatorSymbol: q2},
	},
)

// Identifier accepts a letter followed by any run of letters, digits and underscores.
var Identifier = MustNew("Identifier",
	Alphabet{Letter, Underscore, Digit},
	q0, []State{q1},
	Table{
		q0: {Letter: q1, Underscore: q2, Digit: q2},
		q1: {Letter: q1, Underscore: q1, Digit: q1},
		q2: {Letter: q2, Underscore: q2, Digit: q2},
	},
)

// SpecialSymbol accepts any non-empty run of parentheses.
var SpecialSymbol = MustNew("SpecialSymbol",
	Alphabet{Parenthesis},
	q0, []State{q1},
	Table{
		q0: {Parenthesis: q1},
		q1: {Parenthesis: q1},
	},
)

// Comment accepts any string starting with two slashes.
var Comment = MustNew("Comment",
	Alphabet{Slash, Other},
	q0, []State{q2},
	Table{
		q0: {Slash: q1, Other: q3},
		q1: {Slash: q2, Other: q3},
		q2: {Slash: q2, Other: q2},
		q3: {Slash: q3, Other: q3},
	},
)

// TokenClasses returns the token-class automata in dispatch priority order.
func TokenClasses() []*DFA {
	return []*DFA{Integer, Float, ScientificNotation, Operator, Identifier, SpecialSymbol}
}

// IsComment reports whether text opens a comment.
func IsComment(text string) bool {
	return Comment.Accepts(text)
}
