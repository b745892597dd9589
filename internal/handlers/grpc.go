package handlers

import (
	"context"
	"encoding/json"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/contacts/internal/model"
	"github.com/umalmyha/contacts/internal/service"
	"github.com/umalmyha/contacts/internal/validation"
	"github.com/umalmyha/contacts/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ContactsServiceName is name of service reported by health checks
const ContactsServiceName = "contacts"

// HealthGrpcHandler is gRPC handler implementing standard health checking protocol
type HealthGrpcHandler struct {
	grpc_health_v1.UnimplementedHealthServer
	healthSvc service.HealthService
}

// NewHealthGrpcHandler builds new HealthGrpcHandler
func NewHealthGrpcHandler(healthSvc service.HealthService) *HealthGrpcHandler {
	return &HealthGrpcHandler{
		UnimplementedHealthServer: grpc_health_v1.UnimplementedHealthServer{},
		healthSvc:                 healthSvc,
	}
}

// Check reports SERVING if every backend is reachable. Empty service name means whole server.
func (h *HealthGrpcHandler) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	if req.Service != "" && req.Service != ContactsServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %s", req.Service)
	}

	if err := h.healthSvc.Check(ctx); err != nil {
		return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_NOT_SERVING}, nil
	}
	return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_SERVING}, nil
}

// ContactGrpcHandler is gRPC handler for contacts service
type ContactGrpcHandler struct {
	proto.UnimplementedContactServiceServer
	contactSvc service.ContactService
	validator  echo.Validator
}

// NewContactGrpcHandler builds new ContactGrpcHandler, payloads are checked with the same rules as REST ones
func NewContactGrpcHandler(contactSvc service.ContactService, validator echo.Validator) *ContactGrpcHandler {
	return &ContactGrpcHandler{
		UnimplementedContactServiceServer: proto.UnimplementedContactServiceServer{},
		contactSvc:                        contactSvc,
		validator:                         validator,
	}
}

// GetAll gets all contacts
func (h *ContactGrpcHandler) GetAll(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	contacts, err := h.contactSvc.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	values := make([]*structpb.Value, 0, len(contacts))
	for _, c := range contacts {
		res, err := h.contactResponse(c)
		if err != nil {
			return nil, err
		}
		values = append(values, structpb.NewStructValue(res))
	}
	return &structpb.ListValue{Values: values}, nil
}

// GetByID gets contact by id
func (h *ContactGrpcHandler) GetByID(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	c, err := h.contactSvc.FindByID(ctx, req.GetValue())
	if err != nil {
		return nil, err
	}
	return h.contactResponse(c)
}

// Create creates new contact
func (h *ContactGrpcHandler) Create(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var nc newContact
	if err := h.decode(req, &nc); err != nil {
		return nil, err
	}

	c, err := h.contactSvc.Create(ctx, &model.Contact{
		FirstName: nc.FirstName,
		LastName:  nc.LastName,
		Email:     nc.Email,
		Phone:     nc.Phone,
		Company:   nc.Company,
		JobTitle:  nc.JobTitle,
	})
	if err != nil {
		return nil, err
	}
	return h.contactResponse(c)
}

// Update updates provided fields of contact with id from "id" field
func (h *ContactGrpcHandler) Update(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var uc updateContact
	if err := h.decode(req, &uc); err != nil {
		return nil, err
	}
	uc.ID = req.GetFields()["id"].GetStringValue()

	c, err := h.contactSvc.Update(ctx, uc.ID, uc.patch())
	if err != nil {
		return nil, err
	}
	return h.contactResponse(c)
}

// DeleteByID deletes contact by id
func (h *ContactGrpcHandler) DeleteByID(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if err := h.contactSvc.DeleteByID(ctx, req.GetValue()); err != nil {
		return nil, err
	}
	return new(emptypb.Empty), nil
}

// decode fills payload from struct fields named as REST json fields and validates it
func (h *ContactGrpcHandler) decode(req *structpb.Struct, payload any) error {
	encoded, err := req.MarshalJSON()
	if err != nil {
		return validation.NewPayloadError(InvalidPayloadMsg)
	}

	if err := json.Unmarshal(encoded, payload); err != nil {
		return validation.NewPayloadError(InvalidPayloadMsg)
	}
	return h.validator.Validate(payload)
}

func (h *ContactGrpcHandler) contactResponse(c *model.Contact) (*structpb.Struct, error) {
	encoded, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}

	res := new(structpb.Struct)
	if err := res.UnmarshalJSON(encoded); err != nil {
		return nil, err
	}
	return res, nil
}
