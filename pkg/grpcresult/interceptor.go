package grpcresult

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/StricklySoft/stricklysoft-results/pkg/resultlog"
)

// MetadataCorrelationID is the gRPC metadata key carrying the
// correlation ID. gRPC metadata keys are lowercase.
var MetadataCorrelationID = strings.ToLower(resultlog.HeaderCorrelationID)

// UnaryServerInterceptor stores the incoming correlation ID in the
// handler context, generating one when the caller sent none, and echoes
// it in the response header.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		ctx, id := incomingCorrelationID(ctx)
		// SetHeader fails outside a real server transport; the ID is
		// still available to the handler.
		_ = grpc.SetHeader(ctx, metadata.Pairs(MetadataCorrelationID, id))
		return handler(ctx, req)
	}
}

// UnaryClientInterceptor copies the correlation ID from the context
// into outgoing metadata.
func UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		if id, ok := resultlog.CorrelationID(ctx); ok {
			ctx = metadata.AppendToOutgoingContext(ctx, MetadataCorrelationID, id)
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

func incomingCorrelationID(ctx context.Context) (context.Context, string) {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		for _, v := range md.Get(MetadataCorrelationID) {
			if v = strings.TrimSpace(v); v != "" {
				return resultlog.WithCorrelationID(ctx, v), v
			}
		}
	}
	return resultlog.EnsureCorrelationID(ctx)
}
