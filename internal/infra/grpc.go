package infra

import (
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/contacts/internal/handlers"
	"github.com/umalmyha/contacts/internal/interceptors"
	"github.com/umalmyha/contacts/internal/service"
	"github.com/umalmyha/contacts/internal/validation"
	"github.com/umalmyha/contacts/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// GrpcDeps holds services exposed over gRPC
type GrpcDeps struct {
	ContactSvc service.ContactService
	HealthSvc  service.HealthService
}

// GrpcServer builds gRPC server with contacts and health services registered.
// Application errors are converted to status codes for contacts service only, health handler reports statuses itself.
func GrpcServer(logger logrus.FieldLogger, deps GrpcDeps) (*grpc.Server, error) {
	validator, err := validation.NewEnglish()
	if err != nil {
		return nil, err
	}

	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			interceptors.LoggerUnaryInterceptor(logger),
			interceptors.ErrorUnaryInterceptor(logger, interceptors.UnaryApplicableForService(proto.ContactServiceName)),
		),
	)
	proto.RegisterContactServiceServer(server, handlers.NewContactGrpcHandler(deps.ContactSvc, validator))
	grpc_health_v1.RegisterHealthServer(server, handlers.NewHealthGrpcHandler(deps.HealthSvc))
	return server, nil
}
