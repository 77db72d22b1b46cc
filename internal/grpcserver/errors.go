package grpcserver

import (
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"galvani/internal/redox"
)

// Domain tags ErrorInfo details attached to engine errors.
const Domain = "galvani"

// CodeFor maps an engine error kind onto a gRPC code.
func CodeFor(kind redox.Kind) codes.Code {
	switch kind {
	case redox.KindNotFound:
		return codes.NotFound
	case redox.KindUnknownSpecies, redox.KindDuplicateSelection,
		redox.KindSameElementConflict, redox.KindRoleConflict:
		return codes.InvalidArgument
	case redox.KindZeroPotentialCell:
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}

// toStatus converts err to a status carrying the kind as ErrorInfo.Reason.
// Internal failures keep their message out of the status.
func toStatus(err error) error {
	kind := redox.KindOf(err)
	code := CodeFor(kind)

	msg := err.Error()
	if code == codes.Internal {
		msg = "internal error"
	}

	st := status.New(code, msg)
	if kind == "" {
		return st.Err()
	}
	detailed, derr := st.WithDetails(&errdetails.ErrorInfo{Reason: string(kind), Domain: Domain})
	if derr != nil {
		return st.Err()
	}
	return detailed.Err()
}

// KindFromStatus recovers the engine kind from a status returned by this
// service, or "" when none is attached.
func KindFromStatus(err error) redox.Kind {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == Domain {
			return redox.Kind(info.GetReason())
		}
	}
	return ""
}
