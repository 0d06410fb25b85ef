// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestLexerGRPC(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Lexer gRPC Suite")
}
