package interceptors

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	apperrors "github.com/umalmyha/contacts/internal/errors"
	"github.com/umalmyha/contacts/internal/validation"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var healthInfo = &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

func failingHandler(err error) grpc.UnaryHandler {
	return func(context.Context, any) (any, error) {
		return nil, err
	}
}

func TestErrorUnaryInterceptor(t *testing.T) {
	logger, _ := test.NewNullLogger()
	interceptor := ErrorUnaryInterceptor(logger)
	ctx := context.Background()

	cases := []struct {
		name string
		err  error
		code codes.Code
		msg  string
	}{
		{"payload", validation.NewPayloadError("First name, last name, email, and phone are required."), codes.InvalidArgument, "First name, last name, email, and phone are required."},
		{"duplicate", apperrors.NewDuplicateEmailErr("a@x.com"), codes.InvalidArgument, "This email already exists."},
		{"not found", apperrors.NewEntryNotFoundErr("Contact not found"), codes.NotFound, "Contact not found"},
		{"unavailable", apperrors.NewStoreUnavailableErr("Failed to fetch contacts", errors.New("dial tcp: refused")), codes.Unavailable, "Failed to fetch contacts"},
		{"unknown", errors.New("nil pointer somewhere"), codes.Internal, "Internal server error"},
		{"status", status.Error(codes.PermissionDenied, "denied"), codes.PermissionDenied, "denied"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := interceptor(ctx, nil, healthInfo, failingHandler(tc.err))
			st, ok := status.FromError(err)
			require.True(t, ok, "error must be grpc status error")
			require.Equal(t, tc.code, st.Code())
			require.Equal(t, tc.msg, st.Message())
		})
	}

	t.Run("success", func(t *testing.T) {
		res, err := interceptor(ctx, "req", healthInfo, func(_ context.Context, req any) (any, error) {
			return req, nil
		})
		require.NoError(t, err)
		require.Equal(t, "req", res)
	})
}

func TestInterceptorApplicability(t *testing.T) {
	logger, hook := test.NewNullLogger()
	interceptor := ErrorUnaryInterceptor(logger, UnaryApplicableForService("contacts.Contacts"))

	_, err := interceptor(context.Background(), nil, healthInfo, failingHandler(errors.New("raw")))
	require.EqualError(t, err, "raw", "interceptor must be skipped for other services")
	require.Empty(t, hook.AllEntries(), "nothing must be logged")
}

func TestLoggerUnaryInterceptor(t *testing.T) {
	logger, hook := test.NewNullLogger()
	interceptor := LoggerUnaryInterceptor(logger)

	_, err := interceptor(context.Background(), nil, healthInfo, failingHandler(status.Error(codes.NotFound, "unknown service")))
	require.Error(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry, "call must be logged")
	require.Equal(t, logrus.InfoLevel, entry.Level)
	require.Equal(t, "/grpc.health.v1.Health/Check", entry.Data["method"])
	require.Equal(t, codes.NotFound.String(), entry.Data["code"])
}
