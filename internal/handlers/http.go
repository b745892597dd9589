package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apperrors "github.com/umalmyha/contacts/internal/errors"
	"github.com/umalmyha/contacts/internal/model"
	"github.com/umalmyha/contacts/internal/service"
)

// Validation messages of contact payloads
const (
	RequiredFieldsMsg = "First name, last name, email, and phone are required."
	EmptyFieldsMsg    = "First name, last name, email, and phone cannot be empty."
)

// InvalidPayloadMsg is message returned when request body can't be parsed
const InvalidPayloadMsg = "Invalid request payload"

// ContactDeletedMsg is message returned on successful contact deletion
const ContactDeletedMsg = "Contact deleted successfully"

type message struct {
	Message string `json:"message"`
}

type newContact struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Company   string `json:"company"`
	JobTitle  string `json:"jobTitle"`
}

func (nc *newContact) ValidationMessage() string {
	return RequiredFieldsMsg
}

type updateContact struct {
	ID        string  `param:"id" json:"-"`
	FirstName *string `json:"firstName" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1"`
	Email     *string `json:"email" validate:"omitempty,min=1"`
	Phone     *string `json:"phone" validate:"omitempty,min=1"`
	Company   *string `json:"company"`
	JobTitle  *string `json:"jobTitle"`
}

func (uc *updateContact) ValidationMessage() string {
	return EmptyFieldsMsg
}

func (uc *updateContact) patch() model.ContactPatch {
	return model.ContactPatch{
		FirstName: uc.FirstName,
		LastName:  uc.LastName,
		Email:     uc.Email,
		Phone:     uc.Phone,
		Company:   uc.Company,
		JobTitle:  uc.JobTitle,
	}
}

// ContactHTTPHandler is http handler for contacts endpoint
type ContactHTTPHandler struct {
	contactSvc service.ContactService
}

// NewContactHTTPHandler builds new ContactHTTPHandler
func NewContactHTTPHandler(contactSvc service.ContactService) *ContactHTTPHandler {
	return &ContactHTTPHandler{contactSvc: contactSvc}
}

// GetAll gets all contacts
// @Summary     Get all contacts
// @Description Returns all contacts in insertion order
// @Tags        contacts
// @Produce     json
// @Success     200    {array}  model.Contact
// @Failure     500    {object} errorResponse
// @Router      /api/contacts [get]
func (h *ContactHTTPHandler) GetAll(c echo.Context) error {
	contacts, err := h.contactSvc.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contacts)
}

// Get gets contact
// @Summary     Get single contact by id
// @Description Returns single contact with provided id
// @Tags        contacts
// @Produce     json
// @Param       id     path     string true "Contact id"
// @Success     200    {object} model.Contact
// @Failure     404    {object} errorResponse
// @Failure     500    {object} errorResponse
// @Router      /api/contacts/{id} [get]
func (h *ContactHTTPHandler) Get(c echo.Context) error {
	contact, err := h.contactSvc.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contact)
}

// Post creates contact
// @Summary     Create new contact
// @Description Creates new contact, email must be unique
// @Tags        contacts
// @Accept      json
// @Produce     json
// @Param       contact body     newContact true "New contact data"
// @Success     201     {object} model.Contact
// @Failure     400     {object} errorResponse
// @Failure     500     {object} errorResponse
// @Router      /api/contacts [post]
func (h *ContactHTTPHandler) Post(c echo.Context) error {
	var nc newContact
	if err := c.Bind(&nc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, InvalidPayloadMsg).SetInternal(err)
	}

	if err := c.Validate(&nc); err != nil {
		return err
	}

	contact, err := h.contactSvc.Create(c.Request().Context(), &model.Contact{
		FirstName: nc.FirstName,
		LastName:  nc.LastName,
		Email:     nc.Email,
		Phone:     nc.Phone,
		Company:   nc.Company,
		JobTitle:  nc.JobTitle,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, contact)
}

// Put updates contact
// @Summary     Update contact
// @Description Updates provided fields of contact, omitted fields keep their values
// @Tags        contacts
// @Accept      json
// @Produce     json
// @Param       id      path     string        true "Contact id"
// @Param       contact body     updateContact true "Contact fields to update"
// @Success     200     {object} model.Contact
// @Failure     400     {object} errorResponse
// @Failure     404     {object} errorResponse
// @Failure     500     {object} errorResponse
// @Router      /api/contacts/{id} [put]
func (h *ContactHTTPHandler) Put(c echo.Context) error {
	var uc updateContact
	if err := c.Bind(&uc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, InvalidPayloadMsg).SetInternal(err)
	}

	if err := c.Validate(&uc); err != nil {
		return err
	}

	contact, err := h.contactSvc.Update(c.Request().Context(), uc.ID, uc.patch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contact)
}

// DeleteByID deletes contact
// @Summary     Delete contact
// @Description Deletes contact with provided id
// @Tags        contacts
// @Produce     json
// @Param       id     path     string true "Contact id"
// @Success     200    {object} message
// @Failure     404    {object} errorResponse
// @Failure     500    {object} errorResponse
// @Router      /api/contacts/{id} [delete]
func (h *ContactHTTPHandler) DeleteByID(c echo.Context) error {
	if err := h.contactSvc.DeleteByID(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &message{Message: ContactDeletedMsg})
}

// only used for swagger docs
type errorResponse struct {
	Error string `json:"error"`
}

// HealthHTTPHandler is http handler for health endpoints
type HealthHTTPHandler struct {
	healthSvc service.HealthService
}

// NewHealthHTTPHandler builds new HealthHTTPHandler
func NewHealthHTTPHandler(healthSvc service.HealthService) *HealthHTTPHandler {
	return &HealthHTTPHandler{healthSvc: healthSvc}
}

// Liveness reports that process is up
// @Summary     Liveness probe
// @Tags        health
// @Success     200 "Service is alive"
// @Router      /health/liveness [get]
func (h *HealthHTTPHandler) Liveness(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// Readiness reports whether every backend is reachable
// @Summary     Readiness probe
// @Tags        health
// @Produce     json
// @Success     200 "Service is ready"
// @Failure     503 {object} errorResponse
// @Router      /health/readiness [get]
func (h *HealthHTTPHandler) Readiness(c echo.Context) error {
	if err := h.healthSvc.Check(c.Request().Context()); err != nil {
		msg := "Service unavailable"

		var unavailableErr *apperrors.StoreUnavailableErr
		if errors.As(err, &unavailableErr) {
			msg = unavailableErr.Message()
		}
		return echo.NewHTTPError(http.StatusServiceUnavailable, msg).SetInternal(err)
	}
	return c.NoContent(http.StatusOK)
}
