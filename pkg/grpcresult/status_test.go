package grpcresult

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/StricklySoft/stricklysoft-results/pkg/result"
	"github.com/StricklySoft/stricklysoft-results/pkg/result/factory"
)

func TestCode(t *testing.T) {
	tests := []struct {
		in   result.StatusCode
		want codes.Code
	}{
		{result.StatusOK, codes.OK},
		{result.StatusNoContent, codes.OK},
		{result.StatusBadRequest, codes.InvalidArgument},
		{result.StatusUnauthorized, codes.Unauthenticated},
		{result.StatusForbidden, codes.PermissionDenied},
		{result.StatusNotFound, codes.NotFound},
		{result.StatusConflict, codes.Aborted},
		{result.StatusInternalServerError, codes.Internal},
		{result.StatusServiceUnavailable, codes.Unavailable},
		{result.StatusGatewayTimeout, codes.DeadlineExceeded},
		{result.StatusCode(418), codes.FailedPrecondition},
		{result.StatusCode(599), codes.Internal},
		{result.StatusCode(302), codes.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Code(tt.in))
		})
	}
}

func TestStatus_Succeeded(t *testing.T) {
	st := Status(factory.SuccessOf(42))
	assert.Equal(t, codes.OK, st.Code())
	assert.NoError(t, Err(factory.Success()))
}

func TestStatus_FailedUsesPublicFieldsOnly(t *testing.T) {
	env := factory.FailureWithException("order rejected", errors.New("pq: password authentication failed"))
	env.AddErrorCode("quantity must be positive", "E_QTY")
	env.AddError("  ")
	require.NoError(t, env.AddMetadata("internal", "secret"))

	err := Err(env)
	require.Error(t, err)

	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Equal(t, "order rejected", st.Message())
	assert.NotContains(t, err.Error(), "password")

	require.Len(t, st.Details(), 1)
	info, ok := st.Details()[0].(*errdetails.ErrorInfo)
	require.True(t, ok)
	assert.Equal(t, "BadRequest", info.GetReason())
	assert.Equal(t, ErrorDomain, info.GetDomain())
	assert.Equal(t, map[string]string{"error_0": "quantity must be positive"}, info.GetMetadata())

	assert.Equal(t, []string{"quantity must be positive"}, Errors(err))
}

func TestStatus_BlankMessageFallsBackToStatusName(t *testing.T) {
	env := result.NewOf[int]().NotFound("")
	st := Status(env)
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Equal(t, "NotFound", st.Message())
	assert.Empty(t, Errors(st.Err()))
}

func TestStatus_Grid(t *testing.T) {
	g := factory.GridFailure[string]("load failed", false, nil)
	g.AddError("first")
	g.AddError("second")

	err := Err(g)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, []string{"first", "second"}, Errors(err))
}

func TestStatus_Nil(t *testing.T) {
	assert.Equal(t, codes.Internal, Status(nil).Code())
	assert.Equal(t, codes.Internal, Status((*result.Grid[int])(nil)).Code())
}

func TestErrors_ForeignError(t *testing.T) {
	assert.Nil(t, Errors(errors.New("plain")))
	assert.Nil(t, Errors(status.Error(codes.Internal, "no details")))
}
