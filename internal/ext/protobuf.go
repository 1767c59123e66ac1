package ext

import (
	"reflect"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/funvibe/checkmate/internal/hir"
)

// protoMessageType is the well-known proto.Message interface type, used to
// recognize Generic-sign hints whose origin is a protobuf message rather
// than a Go generic container (spec §3 "Generic(origin, args)" is silent on
// what an "origin" may be beyond a type constructor; this module treats any
// origin implementing proto.Message as the protobuf case and checks
// messages by their concrete Go message type instead of args).
var protoMessageType = reflect.TypeOf((*proto.Message)(nil)).Elem()

// IsProtoGeneric reports whether h is a Generic hint whose erased origin is
// a protobuf message type, e.g. hir.Classify(hir.Generic{Origin:
// reflect.TypeOf(&pb.Foo{})}).
func IsProtoGeneric(h hir.Hint) bool {
	if h.Sign != hir.SignGeneric || h.Class == nil {
		return false
	}
	t := h.Class
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return reflect.PointerTo(t).Implements(protoMessageType)
}

// CheckProtoMessage reports whether v is a non-nil proto.Message whose
// pointer type is exactly origin (or a pointer to origin) -- grounded on
// how the teacher's internal/evaluator recognizes and dispatches builtin
// module values by concrete Go type rather than by a string tag. No
// descriptor-based validation is performed.
func CheckProtoMessage(v any, origin reflect.Type) bool {
	if v == nil {
		return false
	}
	m, ok := v.(proto.Message)
	if !ok {
		return false
	}
	mt := reflect.TypeOf(m)
	want := origin
	if want.Kind() != reflect.Pointer {
		want = reflect.PointerTo(want)
	}
	return mt == want
}

// ParseDescriptor compiles a .proto source file into its message
// descriptors, for callers that want to register Generic hints against
// dynamically-loaded schemas rather than generated Go structs. Unused
// descriptors are simply discarded by the caller; this is a thin
// convenience wrapper over protoparse, not a registry of its own.
func ParseDescriptor(protoPath string, importPaths []string) ([]*desc.FileDescriptor, error) {
	parser := protoparse.Parser{ImportPaths: importPaths}
	return parser.ParseFiles(protoPath)
}

// messageName returns the fully-qualified protobuf message name for a
// proto.Message value. Nothing in this package calls it; the
// interceptor's diagnostics name the Go type instead.
func messageName(m proto.Message) protoreflect.FullName {
	return m.ProtoReflect().Descriptor().FullName()
}
