package interceptors

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	apperrors "github.com/umalmyha/contacts/internal/errors"
	"github.com/umalmyha/contacts/internal/validation"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func appToGrpcStatus(err error) *status.Status {
	var payloadErr *validation.PayloadError
	var duplicateErr *apperrors.DuplicateEmailErr
	var notFoundErr *apperrors.EntryNotFoundErr
	var unavailableErr *apperrors.StoreUnavailableErr

	switch {
	case errors.As(err, &payloadErr):
		return status.New(codes.InvalidArgument, payloadErr.Error())
	case errors.As(err, &duplicateErr):
		return status.New(codes.InvalidArgument, duplicateErr.Error())
	case errors.As(err, &notFoundErr):
		return status.New(codes.NotFound, notFoundErr.Error())
	case errors.As(err, &unavailableErr):
		return status.New(codes.Unavailable, unavailableErr.Message())
	default:
		return status.New(codes.Internal, "Internal server error")
	}
}

// ErrorUnaryInterceptor converts error retrieved from handler to gRPC error with corresponding code
func ErrorUnaryInterceptor(logger logrus.FieldLogger, applicables ...UnaryInterceptorApplicable) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, h grpc.UnaryHandler) (any, error) {
		if !isUnaryInterceptorApplicable(info, applicables...) {
			return h(ctx, req)
		}

		res, err := h(ctx, req)
		if err == nil {
			return res, nil
		}
		logger.Errorf("error occurred on grpc request processing - %v", err)

		if _, ok := status.FromError(err); ok { // it is already grpc status error
			return nil, err
		}
		return nil, appToGrpcStatus(err).Err()
	}
}
