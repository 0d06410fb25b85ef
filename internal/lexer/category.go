// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package lexer

import "fmt"

// Category is the semantic label given to a lexeme.
type Category string

const (
	CategoryInteger            Category = "Integer"
	CategoryFloat              Category = "Float"
	CategoryScientificNotation Category = "ScientificNotation"
	CategoryAssignment         Category = "Assignment"
	CategoryAddition           Category = "Addition"
	CategorySubtraction        Category = "Subtraction"
	CategoryMultiplication     Category = "Multiplication"
	CategoryDivision           Category = "Division"
	CategoryPower              Category = "Power"
	CategoryOperator           Category = "Operator"
	CategoryVariable           Category = "Variable"
	CategoryOpeningParenthesis Category = "OpeningParenthesis"
	CategoryClosingParenthesis Category = "ClosingParenthesis"
	CategoryComment            Category = "Comment"
	CategoryUnidentified       Category = "Unidentified"
)

// Categories lists every category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryInteger,
		CategoryFloat,
		CategoryScientificNotation,
		CategoryAssignment,
		CategoryAddition,
		CategorySubtraction,
		CategoryMultiplication,
		CategoryDivision,
		CategoryPower,
		CategoryOperator,
		CategoryVariable,
		CategoryOpeningParenthesis,
		CategoryClosingParenthesis,
		CategoryComment,
		CategoryUnidentified,
	}
}

func (c Category) Validate() error {
	switch c {
	case CategoryInteger:
	case CategoryFloat:
	case CategoryScientificNotation:
	case CategoryAssignment:
	case CategoryAddition:
	case CategorySubtraction:
	case CategoryMultiplication:
	case CategoryDivision:
	case CategoryPower:
	case CategoryOperator:
	case CategoryVariable:
	case CategoryOpeningParenthesis:
	case CategoryClosingParenthesis:
	case CategoryComment:
	case CategoryUnidentified:
	default:
		return fmt.Errorf("unknown category: %q", c)
	}
	return nil
}

// Label returns the human readable name used in reports.
func (c Category) Label() string {
	switch c {
	case CategoryScientificNotation:
		return "Scientific notation"
	case CategoryOpeningParenthesis:
		return "Opening parenthesis"
	case CategoryClosingParenthesis:
		return "Closing parenthesis"
	default:
		return string(c)
	}
}
