package ext

import (
	"context"
	"fmt"
	"reflect"

	"google.golang.org/grpc"

	"github.com/funvibe/checkmate/internal/diagnostics"
)

// HandlerHints pairs a gRPC method's full name with the hints its request
// and response messages are checked against, the wiring a caller supplies
// to UnaryServerInterceptor per registered method.
type HandlerHints struct {
	Request  any
	Response any
}

// Registry maps a gRPC fully-qualified method name (as seen in
// grpc.UnaryServerInfo.FullMethod) to the hints its request/response should
// satisfy.
type Registry map[string]HandlerHints

// UnaryServerInterceptor returns a grpc.UnaryServerInterceptor that checks
// the request message against the hint registered for the incoming method
// before invoking the handler, and the response message after -- the
// runtime-decorator pattern (spec §1 Purpose) applied at an RPC service
// boundary instead of a plain function call, grounded on how this
// teacher's internal/evaluator/builtins_grpc.go wires a grpc.ClientConn
// into the language's builtin call surface.
//
// Methods absent from reg pass through unchecked, matching Decorate's rule
// that an un-annotated parameter carries no constraint (spec §4.3).
func UnaryServerInterceptor(reg Registry) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		hh, ok := reg[info.FullMethod]
		if !ok {
			return handler(ctx, req)
		}

		if hh.Request != nil {
			if err := checkMessage(req, hh.Request, info.FullMethod+" request"); err != nil {
				return nil, err
			}
		}

		resp, err := handler(ctx, req)
		if err != nil {
			return resp, err
		}

		if hh.Response != nil {
			if err := checkMessage(resp, hh.Response, info.FullMethod+" response"); err != nil {
				return nil, err
			}
		}
		return resp, nil
	}
}

// checkMessage validates v is an instance of the protobuf message type
// named by hint (a zero-value *pb.SomeMessage, conventionally), reusing
// CheckProtoMessage's recognition rather than inventing a second check path.
func checkMessage(v any, hint any, label string) error {
	origin := reflect.TypeOf(hint)
	if !CheckProtoMessage(v, origin) {
		return diagnostics.ParamTypeError(label, "message", fmt.Sprintf("expected %s, got %T", origin, v))
	}
	return nil
}
