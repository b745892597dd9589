package infra

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/umalmyha/contacts/internal/cache"
	"github.com/umalmyha/contacts/internal/repository"
	rpsMocks "github.com/umalmyha/contacts/internal/repository/mocks"
	"github.com/umalmyha/contacts/internal/service"
	"github.com/umalmyha/contacts/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const grpcConnBufSize = 1024 * 1024

func newTestGrpcConn(t *testing.T, contactRps repository.ContactRepository, backends ...service.Backend) *grpc.ClientConn {
	logger, _ := test.NewNullLogger()
	server, err := GrpcServer(logger, GrpcDeps{
		ContactSvc: service.NewContactService(contactRps, cache.NewNopContactCache(), logger),
		HealthSvc:  service.NewHealthService(backends...),
	})
	require.NoError(t, err, "failed to build grpc server")

	bufListener := bufconn.Listen(grpcConnBufSize)
	go func() {
		_ = server.Serve(bufListener)
	}()
	t.Cleanup(server.Stop)

	bufDialer := func(context.Context, string) (net.Conn, error) {
		return bufListener.Dial()
	}

	conn, err := grpc.DialContext(context.Background(), "bufnet", grpc.WithContextDialer(bufDialer), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err, "failed to dial bufnet")
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func newContactStruct(t *testing.T, fields map[string]any) *structpb.Struct {
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err, "failed to build request")
	return s
}

//nolint:funlen // function contains a lot of inlined tests
func TestGrpcContactService(t *testing.T) {
	ctx := context.Background()
	client := proto.NewContactServiceClient(newTestGrpcConn(t, repository.NewMemoryContactRepository()))

	var id string
	t.Log("create contact")
	{
		res, err := client.Create(ctx, newContactStruct(t, map[string]any{
			"firstName": "Ann",
			"lastName":  "Lee",
			"email":     "ann@x.com",
			"phone":     "555-1",
		}))
		require.NoError(t, err, "failed to create contact")

		id = res.GetFields()["id"].GetStringValue()
		require.NotEmpty(t, id, "id must be assigned")
		require.Equal(t, "", res.GetFields()["company"].GetStringValue())
	}

	t.Log("missing required field is invalid argument")
	{
		_, err := client.Create(ctx, newContactStruct(t, map[string]any{"firstName": "Bob", "lastName": "Ray", "email": "bob@x.com"}))
		require.Equal(t, codes.InvalidArgument, status.Code(err))
		require.Equal(t, "First name, last name, email, and phone are required.", status.Convert(err).Message())
	}

	t.Log("duplicate email is invalid argument")
	{
		_, err := client.Create(ctx, newContactStruct(t, map[string]any{
			"firstName": "Anna",
			"lastName":  "Lin",
			"email":     "ann@x.com",
			"phone":     "555-9",
		}))
		require.Equal(t, codes.InvalidArgument, status.Code(err))
		require.Equal(t, "This email already exists.", status.Convert(err).Message())
	}

	t.Log("update keeps omitted fields")
	{
		res, err := client.Update(ctx, newContactStruct(t, map[string]any{"id": id, "phone": "555-7"}))
		require.NoError(t, err, "failed to update contact")
		require.Equal(t, "555-7", res.GetFields()["phone"].GetStringValue())
		require.Equal(t, "ann@x.com", res.GetFields()["email"].GetStringValue())
	}

	t.Log("get contact and list contacts")
	{
		res, err := client.GetByID(ctx, wrapperspb.String(id))
		require.NoError(t, err, "failed to get contact")
		require.Equal(t, "555-7", res.GetFields()["phone"].GetStringValue())

		list, err := client.GetAll(ctx, new(emptypb.Empty))
		require.NoError(t, err, "failed to list contacts")
		require.Len(t, list.GetValues(), 1)
	}

	t.Log("delete contact, then it is not found")
	{
		_, err := client.DeleteByID(ctx, wrapperspb.String(id))
		require.NoError(t, err, "failed to delete contact")

		_, err = client.GetByID(ctx, wrapperspb.String(id))
		require.Equal(t, codes.NotFound, status.Code(err))
		require.Equal(t, "Contact not found", status.Convert(err).Message())

		_, err = client.DeleteByID(ctx, wrapperspb.String(id))
		require.Equal(t, codes.NotFound, status.Code(err))
	}
}

func TestGrpcContactServiceStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	contactRps := rpsMocks.NewContactRepository(t)
	contactRps.On("FindAll", mock.Anything).Return(nil, errors.New("server selection timeout")).Once()
	broken := service.PingerFunc(func(context.Context) error { return errors.New("connection refused") })
	conn := newTestGrpcConn(t, contactRps, service.Backend{Name: "mongodb", Pinger: broken})

	t.Log("store failure is unavailable without exposing cause")
	{
		_, err := proto.NewContactServiceClient(conn).GetAll(ctx, new(emptypb.Empty))
		require.Equal(t, codes.Unavailable, status.Code(err))
		require.Equal(t, service.FetchFailedMsg, status.Convert(err).Message())
	}

	t.Log("health service reports its own status and is not touched by error conversion")
	{
		res, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{})
		require.NoError(t, err, "health check must not fail")
		require.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, res.Status)

		_, err = grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: "customers"})
		require.Equal(t, codes.NotFound, status.Code(err))
	}
}
