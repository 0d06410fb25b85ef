// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/open-edge-platform/arith-lexer/internal/config"
	"github.com/open-edge-platform/arith-lexer/internal/lexer"
	"github.com/open-edge-platform/arith-lexer/internal/metrics"
	"github.com/open-edge-platform/arith-lexer/internal/rpc"
)

// maxLineLength bounds the lines accepted over gRPC.
const maxLineLength = 64 * 1024

type server struct {
	grpcServer *grpc.Server
	metrics    *metrics.Collector
	port       int
}

var _ rpc.LexerServer = (*server)(nil)

func main() {
	configFile := flag.String("config", "", "config file path")
	port := flag.Int("port", 0, "gRPC server port, overrides the config file")
	flag.Parse()

	conf, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *port == 0 {
		*port = conf.Server.GRPCPort
	}

	s := server{
		grpcServer: grpc.NewServer(),
		metrics:    metrics.NewCollector(),
		port:       *port,
	}

	lis, err := net.Listen("tcp", ":"+strconv.Itoa(s.port))
	if err != nil {
		log.Panicf("Failed to listen: %v", err)
	}
	log.Printf("Server listening on :%v", s.port)

	// Register the health service
	healthCheck := health.NewServer()
	healthCheck.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthCheck.SetServingStatus(rpc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(s.grpcServer, healthCheck)

	rpc.RegisterLexerServer(s.grpcServer, &s)

	var metricsServer *http.Server
	if conf.Server.MetricsPort != 0 {
		metricsServer = s.newMetricsServer(conf.Server.MetricsPort)
		go func() {
			log.Printf("Metrics listening on %v", metricsServer.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Metrics server stopped: %v", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		<-ctx.Done()
		stop()

		log.Println("Got termination/interruption signal, attempting graceful shutdown.")
		healthCheck.Shutdown()
		stopped := make(chan struct{})
		go func() {
			s.grpcServer.GracefulStop()
			close(stopped)
		}()

		dur := 5 * time.Second
		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), dur)
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("Failed to shut down metrics server: %v", err)
			}
			cancel()
		}

		t := time.NewTimer(dur)
		select {
		case <-t.C:
			log.Printf("Graceful shutdown could not be completed within %q, attempting ungraceful shutdown.", dur)
			s.grpcServer.Stop()
		case <-stopped:
			t.Stop()
		}

		wg.Done()
	}()

	log.Println("Starting grpc server.")
	if err := s.grpcServer.Serve(lis); err != nil {
		log.Panicf("Failed to serve: %v", err)
	}
	wg.Wait()
	log.Println("Shutdown completed.")
}

// newMetricsServer exposes the collector registry on /metrics.
func (s *server) newMetricsServer(port int) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.metrics.Handler())
	return &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Classify returns the category of a single lexeme.
func (s *server) Classify(_ context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	lexeme := req.GetValue()
	if lexeme == "" {
		return nil, status.Error(codes.InvalidArgument, "lexeme cannot be empty")
	}
	if len(lexeme) > maxLineLength {
		return nil, status.Errorf(codes.InvalidArgument, "lexeme exceeds %d bytes", maxLineLength)
	}

	return rpc.RecordToStruct(lexer.Record{
		Lexeme:   lexeme,
		Category: lexer.Classify(lexeme),
	}), nil
}

// AnalyzeLine tokenizes and classifies one line.
func (s *server) AnalyzeLine(_ context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	line := req.GetValue()
	if len(line) > maxLineLength {
		return nil, status.Errorf(codes.InvalidArgument, "line exceeds %d bytes", maxLineLength)
	}

	start := time.Now()
	records := lexer.AnalyzeLine(line)
	if s.metrics != nil {
		s.metrics.Observe([][]lexer.Record{records}, time.Since(start))
	}
	return rpc.RecordsToList(records), nil
}
