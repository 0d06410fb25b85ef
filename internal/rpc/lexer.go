// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

// Package rpc describes the lexer.v1.Lexer gRPC service. Requests and responses
// are protobuf well-known types, so the service needs no generated messages.
package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/open-edge-platform/arith-lexer/internal/lexer"
)

const (
	ServiceName = "lexer.v1.Lexer"

	ClassifyFullMethodName    = "/" + ServiceName + "/Classify"
	AnalyzeLineFullMethodName = "/" + ServiceName + "/AnalyzeLine"
)

// LexerServer is the server API for the lexer.v1.Lexer service.
type LexerServer interface {
	// Classify returns {lexeme, category} for a single lexeme.
	Classify(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	// AnalyzeLine returns the {lexeme, category} records of a line, in order.
	AnalyzeLine(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
}

// LexerServiceDesc is the grpc.ServiceDesc for the lexer.v1.Lexer service.
var LexerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LexerServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Classify",
			Handler:    classifyHandler,
		},
		{
			MethodName: "AnalyzeLine",
			Handler:    analyzeLineHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "lexer/v1/lexer.proto",
}

// RegisterLexerServer registers srv on s.
func RegisterLexerServer(s grpc.ServiceRegistrar, srv LexerServer) {
	s.RegisterService(&LexerServiceDesc, srv)
}

func classifyHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LexerServer).Classify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ClassifyFullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LexerServer).Classify(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func analyzeLineHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LexerServer).AnalyzeLine(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: AnalyzeLineFullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LexerServer).AnalyzeLine(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// LexerClient is the client API for the lexer.v1.Lexer service.
type LexerClient struct {
	cc grpc.ClientConnInterface
}

func NewLexerClient(cc grpc.ClientConnInterface) *LexerClient {
	return &LexerClient{cc: cc}
}

func (c *LexerClient) Classify(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ClassifyFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LexerClient) AnalyzeLine(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, AnalyzeLineFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// RecordToStruct encodes a record as {lexeme, category}.
func RecordToStruct(r lexer.Record) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			"lexeme":   structpb.NewStringValue(r.Lexeme),
			"category": structpb.NewStringValue(string(r.Category)),
		},
	}
}

// RecordsToList encodes records as a list of {lexeme, category} structs.
func RecordsToList(records []lexer.Record) *structpb.ListValue {
	values := make([]*structpb.Value, 0, len(records))
	for _, r := range records {
		values = append(values, structpb.NewStructValue(RecordToStruct(r)))
	}
	return &structpb.ListValue{Values: values}
}

// StructToRecord decodes a {lexeme, category} struct. The category must be known.
func StructToRecord(s *structpb.Struct) (lexer.Record, error) {
	fields := s.GetFields()
	lexeme, ok := fields["lexeme"].GetKind().(*structpb.Value_StringValue)
	if !ok {
		return lexer.Record{}, fmt.Errorf("field %q is not a string", "lexeme")
	}
	category, ok := fields["category"].GetKind().(*structpb.Value_StringValue)
	if !ok {
		return lexer.Record{}, fmt.Errorf("field %q is not a string", "category")
	}

	r := lexer.Record{Lexeme: lexeme.StringValue, Category: lexer.Category(category.StringValue)}
	if err := r.Category.Validate(); err != nil {
		return lexer.Record{}, err
	}
	return r, nil
}

// ListToRecords decodes a list of {lexeme, category} structs.
func ListToRecords(l *structpb.ListValue) ([]lexer.Record, error) {
	records := make([]lexer.Record, 0, len(l.GetValues()))
	for i, v := range l.GetValues() {
		s := v.GetStructValue()
		if s == nil {
			return nil, fmt.Errorf("record %d is not a struct", i)
		}
		r, err := StructToRecord(s)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, r)
	}
	return records, nil
}
