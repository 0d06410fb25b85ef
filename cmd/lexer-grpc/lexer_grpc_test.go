// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/open-edge-platform/arith-lexer/internal/lexer"
	"github.com/open-edge-platform/arith-lexer/internal/metrics"
	"github.com/open-edge-platform/arith-lexer/internal/rpc"
)

const rpcTimeout = 5 * time.Second

type lexerService struct {
	s      *server
	client *rpc.LexerClient
	health grpc_health_v1.HealthClient
	closer func()
}

var svc *lexerService

var _ = Describe("Lexer gRPC", Ordered, func() {
	BeforeAll(func() {
		lis := bufconn.Listen(1024 * 1024)
		s := &server{
			grpcServer: grpc.NewServer(),
			metrics:    metrics.NewCollector(),
		}

		healthCheck := health.NewServer()
		healthCheck.SetServingStatus(rpc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
		grpc_health_v1.RegisterHealthServer(s.grpcServer, healthCheck)

		rpc.RegisterLexerServer(s.grpcServer, s)
		go func() {
			if err := s.grpcServer.Serve(lis); err != nil {
				log.Printf("Error serving server: %v", err)
			}
		}()

		conn, err := grpc.NewClient(
			"passthrough://bufnet",
			grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
				return lis.Dial()
			}),
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
		Expect(err).ToNot(HaveOccurred())

		closer := func() {
			Expect(conn.Close()).To(Succeed())
			Expect(lis.Close()).To(Succeed())

			s.grpcServer.Stop()
		}

		svc = &lexerService{
			s:      s,
			client: rpc.NewLexerClient(conn),
			health: grpc_health_v1.NewHealthClient(conn),
			closer: closer,
		}
	})

	AfterAll(func() {
		if svc == nil {
			return
		}
		svc.closer()
	})

	It("Reports the lexer service as serving", func() {
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()

		res, err := svc.health.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: rpc.ServiceName})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(res.GetStatus()).To(Equal(grpc_health_v1.HealthCheckResponse_SERVING))
	})

	DescribeTable("Classify returns the category of a lexeme",
		func(lexeme string, expected lexer.Category) {
			ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
			defer cancel()

			res, err := svc.client.Classify(ctx, wrapperspb.String(lexeme))
			Expect(err).ShouldNot(HaveOccurred())

			record, err := rpc.StructToRecord(res)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(record).To(Equal(lexer.Record{Lexeme: lexeme, Category: expected}))
		},
		Entry("integer", "42", lexer.CategoryInteger),
		Entry("signed integer", "-5", lexer.CategoryInteger),
		Entry("float", "4.5", lexer.CategoryFloat),
		Entry("scientific notation", "1.5E-3", lexer.CategoryScientificNotation),
		Entry("power operator", "^", lexer.CategoryPower),
		Entry("variable", "var_1", lexer.CategoryVariable),
		Entry("closing parenthesis", ")", lexer.CategoryClosingParenthesis),
		Entry("lower case exponent", "1e5", lexer.CategoryUnidentified),
	)

	It("Classify rejects an empty lexeme", func() {
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()

		_, err := svc.client.Classify(ctx, wrapperspb.String(""))
		Expect(err).Should(HaveOccurred())
		Expect(status.Code(err)).To(Equal(codes.InvalidArgument))
	})

	It("AnalyzeLine returns the records of a line", func() {
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()

		res, err := svc.client.AnalyzeLine(ctx, wrapperspb.String("x = 3 + 4.5 // sum"))
		Expect(err).ShouldNot(HaveOccurred())

		records, err := rpc.ListToRecords(res)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(records).To(Equal([]lexer.Record{
			{Lexeme: "x", Category: lexer.CategoryVariable},
			{Lexeme: "=", Category: lexer.CategoryAssignment},
			{Lexeme: "3", Category: lexer.CategoryInteger},
			{Lexeme: "+", Category: lexer.CategoryAddition},
			{Lexeme: "4.5", Category: lexer.CategoryFloat},
			{Lexeme: "//", Category: lexer.CategoryComment},
			{Lexeme: "sum", Category: lexer.CategoryComment},
		}))
	})

	It("AnalyzeLine of an empty line returns no records", func() {
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()

		res, err := svc.client.AnalyzeLine(ctx, wrapperspb.String(""))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(res.GetValues()).To(BeEmpty())
	})

	It("AnalyzeLine rejects an oversized line", func() {
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()

		_, err := svc.client.AnalyzeLine(ctx, wrapperspb.String(strings.Repeat("x", maxLineLength+1)))
		Expect(err).Should(HaveOccurred())
		Expect(status.Code(err)).To(Equal(codes.InvalidArgument))
	})

	It("Analyzed lines are counted", func() {
		count, err := testutil.GatherAndCount(svc.s.metrics.Registry(), "arith_lexer_lines_total")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(count).To(Equal(1))

		Expect(testutil.GatherAndCompare(svc.s.metrics.Registry(), strings.NewReader(`
# HELP arith_lexer_lines_total Number of analyzed lines.
# TYPE arith_lexer_lines_total counter
arith_lexer_lines_total 2
`), "arith_lexer_lines_total")).To(Succeed())
	})

	It("Metrics server exposes the collector", func() {
		metricsServer := svc.s.newMetricsServer(9102)
		Expect(metricsServer.Addr).To(Equal(":9102"))

		rec := httptest.NewRecorder()
		metricsServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("arith_lexer_lines_total 2"))
		Expect(rec.Body.String()).To(ContainSubstring(`arith_lexer_lexemes_total{category="Variable"}`))

		rec = httptest.NewRecorder()
		metricsServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})
})
