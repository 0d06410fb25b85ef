// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package automata

import "fmt"

// Class is the abstract category a character is mapped to before it is fed to an automaton.
type Class int

const (
	Digit Class = iota
	Sign
	DecimalPoint
	Exponent
	Letter
	Underscore
	OperatorSymbol
	Parenthesis
	Slash
	Other
)

var classNames = map[Class]string{
	Digit:          "digit",
	Sign:           "sign",
	DecimalPoint:   "decimal-point",
	Exponent:       "exponent",
	Letter:         "letter",
	Underscore:     "underscore",
	OperatorSymbol: "operator-symbol",
	Parenthesis:    "parenthesis",
	Slash:          "slash",
	Other:          "other",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return fmt.Sprintf("class(%d)", int(c))
}

// Matches reports whether r belongs to the class. Only ASCII characters belong to
// any class except Other, which is everything but a slash.
func (c Class) Matches(r rune) bool {
	switch c {
	case Digit:
		return r >= '0' && r <= '9'
	case Sign:
		return r == '+' || r == '-'
	case DecimalPoint:
		return r == '.'
	case Exponent:
		return r == 'E'
	case Letter:
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	case Underscore:
		return r == '_'
	case OperatorSymbol:
		switch r {
		case '=', '+', '-', '*', '/', '^':
			return true
		}
		return false
	case Parenthesis:
		return r == '(' || r == ')'
	case Slash:
		return r == '/'
	case Other:
		return r != '/'
	default:
		return false
	}
}

// Classifier maps a character to a class. The boolean is false when the character
// cannot be classified, in which case the input is rejected.
type Classifier func(r rune) (Class, bool)

// Alphabet is the ordered set of classes an automaton recognizes. When a character
// matches several classes (e.g. 'E' is both an exponent marker and a letter) the
// first one in the alphabet wins.
type Alphabet []Class

// Contains reports whether c is part of the alphabet.
func (a Alphabet) Contains(c Class) bool {
	for _, class := range a {
		if class == c {
			return true
		}
	}
	return false
}

// Classifier returns the character classifier of the alphabet.
func (a Alphabet) Classifier() Classifier {
	return func(r rune) (Class, bool) {
		for _, class := range a {
			if class.Matches(r) {
				return class, true
			}
		}
		return 0, false
	}
}
