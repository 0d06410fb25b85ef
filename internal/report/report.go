// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/open-edge-platform/arith-lexer/internal/lexer"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

func (f Format) Validate() error {
	switch f {
	case FormatTable:
	case FormatJSON:
	case FormatYAML:
	default:
		return fmt.Errorf("unknown report format %q", f)
	}
	return nil
}

// ParseFormat converts s into a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if err := f.Validate(); err != nil {
		return "", err
	}
	return f, nil
}

// Entry is one classified lexeme together with its 1-based line number.
type Entry struct {
	Line     int            `json:"line" yaml:"line"`
	Lexeme   string         `json:"lexeme" yaml:"lexeme"`
	Category lexer.Category `json:"category" yaml:"category"`
}

// Flatten turns per-line records into entries.
func Flatten(lines [][]lexer.Record) []Entry {
	entries := []Entry{}
	for i, records := range lines {
		for _, r := range records {
			entries = append(entries, Entry{Line: i + 1, Lexeme: r.Lexeme, Category: r.Category})
		}
	}
	return entries
}

// Write renders the records of every line in the given format.
func Write(w io.Writer, format Format, lines [][]lexer.Record) error {
	switch format {
	case FormatTable:
		return writeTable(w, lines)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "\t")
		if err := enc.Encode(Flatten(lines)); err != nil {
			return fmt.Errorf("failed to encode json report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Flatten(lines)); err != nil {
			return fmt.Errorf("failed to encode yaml report: %w", err)
		}
		return enc.Close()
	default:
		return format.Validate()
	}
}

func writeTable(w io.Writer, lines [][]lexer.Record) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Token\tType")
	for _, records := range lines {
		for _, r := range records {
			fmt.Fprintf(tw, "%s\t%s\n", r.Lexeme, r.Category.Label())
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write table report: %w", err)
	}
	return nil
}
