// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package lexer

import "strings"

// Record is a lexeme paired with its category.
type Record struct {
	Lexeme   string   `json:"lexeme" yaml:"lexeme"`
	Category Category `json:"category" yaml:"category"`
}

// AnalyzeLine tokenizes and classifies one line. The comment marker and every
// whitespace separated word of the comment text are reported as Comment.
func AnalyzeLine(line string) []Record {
	lexemes := Tokenize(line)
	records := make([]Record, 0, len(lexemes))

	for i, lexeme := range lexemes {
		if lexeme != CommentMarker {
			records = append(records, Record{Lexeme: lexeme, Category: Classify(lexeme)})
			continue
		}

		records = append(records, Record{Lexeme: CommentMarker, Category: CategoryComment})
		if i+1 < len(lexemes) {
			for _, word := range strings.Fields(lexemes[i+1]) {
				records = append(records, Record{Lexeme: word, Category: CategoryComment})
			}
		}
		break
	}
	return records
}

// AnalyzeLines analyzes each line in order.
func AnalyzeLines(lines []string) [][]Record {
	out := make([][]Record, len(lines))
	for i, line := range lines {
		out[i] = AnalyzeLine(line)
	}
	return out
}
