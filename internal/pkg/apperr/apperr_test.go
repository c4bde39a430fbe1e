package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToStatusHidesCause(t *testing.T) {
	err := Internal(MsgInternal, errors.New("disk I/O error at /var/lib/orders.db"))

	st, ok := status.FromError(ToStatus(err))
	require.True(t, ok)
	assert.Equal(t, codes.Internal, st.Code())
	assert.Equal(t, MsgInternal, st.Message())
	assert.NotContains(t, st.Message(), "disk")
}

func TestToStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"invalid", InvalidArgument("Invalid order data"), codes.InvalidArgument},
		{"not found", NotFound("Product not found"), codes.NotFound},
		{"unavailable", Unavailable("Product service unavailable", errors.New("refused")), codes.Unavailable},
		{"internal", Internal(MsgInternal, nil), codes.Internal},
		{"unclassified", errors.New("boom"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.Code(ToStatus(tt.err)))
		})
	}
}

func TestUnclassifiedErrorGetsGenericMessage(t *testing.T) {
	st, _ := status.FromError(ToStatus(errors.New("pq: relation \"orders\" does not exist")))
	assert.Equal(t, MsgInternal, st.Message())
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
		msg  string
	}{
		{"not found keeps message", status.Error(codes.NotFound, "Product not found"), KindNotFound, "Product not found"},
		{"invalid keeps message", status.Error(codes.InvalidArgument, "Invalid product data"), KindInvalidArgument, "Invalid product data"},
		{"unavailable", status.Error(codes.Unavailable, "connection refused"), KindUnavailable, "Service unavailable"},
		{"deadline", status.Error(codes.DeadlineExceeded, "deadline exceeded"), KindUnavailable, "Service unavailable"},
		{"context deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), KindUnavailable, "Service unavailable"},
		{"internal", status.Error(codes.Internal, "Internal server error"), KindInternal, MsgInternal},
		{"unknown", status.Error(codes.Unknown, "stack trace here"), KindInternal, MsgInternal},
		{"plain error", errors.New("boom"), KindInternal, MsgInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromStatus(tt.err)
			assert.Equal(t, tt.kind, KindOf(got))
			assert.Equal(t, tt.msg, PublicMessage(got))
		})
	}
	assert.NoError(t, FromStatus(nil))
}

func TestWrappedErrorKeepsKind(t *testing.T) {
	err := fmt.Errorf("create order: %w", NotFound("Product not found"))
	assert.True(t, Is(err, KindNotFound))
	assert.False(t, Is(nil, KindNotFound))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindInvalidArgument))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(KindNotFound))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindUnavailable))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindInternal))
}
