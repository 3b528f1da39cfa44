package grpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestRecoveryInterceptorConvertsPanic(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: "/pizza.Test/Panic"}
	_, err := recoveryInterceptor(context.Background(), nil, info, func(context.Context, interface{}) (interface{}, error) {
		panic("boom")
	})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestHealthServerWithoutCheckIsServing(t *testing.T) {
	h := &healthServer{}
	resp, err := h.Check(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, "SERVING", resp.GetStatus().String())
}
