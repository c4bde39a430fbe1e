// Package apperr is the error taxonomy shared by every service boundary.
//
// An *Error carries two texts: Message, a fixed and safe description that
// may be returned to a caller, and Err, the diagnostic cause that is only
// ever logged. ToStatus and FromStatus translate between this taxonomy and
// gRPC status codes; HTTPStatus maps it onto the gateway's HTTP responses.
package apperr

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Kind uint8

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindNotFound
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// MsgInternal is the only text an Internal or Unavailable failure shows
// once it leaves the gateway.
const MsgInternal = "Internal server error"

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func InvalidArgument(msg string) error {
	return &Error{Kind: KindInvalidArgument, Message: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Unavailable(msg string, cause error) error {
	return &Error{Kind: KindUnavailable, Message: msg, Err: cause}
}

func Internal(msg string, cause error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: cause}
}

// KindOf reports the taxonomy member of err. Unclassified errors are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// PublicMessage returns the text that may cross a process boundary.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return MsgInternal
}

// ToStatus converts err into a gRPC status error carrying only the public
// message.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	return status.Error(grpcCode(KindOf(err)), PublicMessage(err))
}

func grpcCode(k Kind) codes.Code {
	switch k {
	case KindInvalidArgument:
		return codes.InvalidArgument
	case KindNotFound:
		return codes.NotFound
	case KindUnavailable:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// FromStatus classifies an error returned by a gRPC call. The peer's
// message is kept for InvalidArgument and NotFound; the rest keep the
// original error only as the cause.
func FromStatus(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Unavailable("Service unavailable", err)
	}
	st, ok := status.FromError(err)
	if !ok {
		return Internal(MsgInternal, err)
	}
	switch st.Code() {
	case codes.InvalidArgument:
		return &Error{Kind: KindInvalidArgument, Message: st.Message(), Err: err}
	case codes.NotFound:
		return &Error{Kind: KindNotFound, Message: st.Message(), Err: err}
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return Unavailable("Service unavailable", err)
	default:
		return Internal(MsgInternal, err)
	}
}

// HTTPStatus maps a kind onto the gateway's response codes.
func HTTPStatus(k Kind) int {
	switch k {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
