// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package lexer

import (
	"strings"

	"github.com/open-edge-platform/arith-lexer/internal/automata"
)

// CommentMarker is emitted by Tokenize where a comment starts.
const CommentMarker = "//"

func isWhitespace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// isDelimiter reports whether ch always forms a lexeme on its own. '+' and '-' are
// not delimiters: they stay glued to their neighbours so that signed literals such
// as -5 survive tokenization.
func isDelimiter(ch rune) bool {
	switch ch {
	case '/', '^', '(', ')', '=', '*':
		return true
	}
	return false
}

// Tokenize splits a line into lexemes. When a comment starts, the marker "//" is
// emitted, followed by the trimmed comment text as a single lexeme when it is not
// empty, and the rest of the line is not scanned.
func Tokenize(line string) []string {
	var (
		lexemes []string
		buf     strings.Builder
	)

	flush := func() {
		if buf.Len() > 0 {
			lexemes = append(lexemes, buf.String())
			buf.Reset()
		}
	}

	for i, ch := range line {
		// Only a slash can open a comment.
		if ch == '/' && automata.IsComment(line[i:]) {
			flush()
			lexemes = append(lexemes, CommentMarker)
			if text := strings.TrimSpace(line[i+len(CommentMarker):]); text != "" {
				lexemes = append(lexemes, text)
			}
			return lexemes
		}

		switch {
		case isWhitespace(ch):
			flush()
		case isDelimiter(ch):
			flush()
			lexemes = append(lexemes, string(ch))
		default:
			buf.WriteRune(ch)
		}
	}
	flush()

	return lexemes
}
