package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/contacts/internal/cache"
	apperrors "github.com/umalmyha/contacts/internal/errors"
	"github.com/umalmyha/contacts/internal/model"
	"github.com/umalmyha/contacts/internal/repository"
)

// Public messages of store failures
const (
	FetchFailedMsg  = "Failed to fetch contacts"
	CreateFailedMsg = "Failed to create contact"
	UpdateFailedMsg = "Failed to update contact"
	DeleteFailedMsg = "Failed to delete contact"
)

// ContactService represents behavior of contact service
type ContactService interface {
	FindAll(context.Context) ([]*model.Contact, error)
	FindByID(context.Context, string) (*model.Contact, error)
	Create(context.Context, *model.Contact) (*model.Contact, error)
	Update(context.Context, string, model.ContactPatch) (*model.Contact, error)
	DeleteByID(context.Context, string) error
}

type contactService struct {
	contactRps   repository.ContactRepository
	contactCache cache.ContactCache
	logger       logrus.FieldLogger
}

// NewContactService builds new ContactService.
// Store is the source of truth: cache failures are logged and never fail the request.
func NewContactService(contactRps repository.ContactRepository, contactCache cache.ContactCache, logger logrus.FieldLogger) ContactService {
	return &contactService{contactRps: contactRps, contactCache: contactCache, logger: logger}
}

func (s *contactService) FindAll(ctx context.Context) ([]*model.Contact, error) {
	contacts, err := s.contactRps.FindAll(ctx)
	if err != nil {
		return nil, s.classify(FetchFailedMsg, err)
	}
	return contacts, nil
}

func (s *contactService) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	c, err := s.contactCache.FindByID(ctx, id)
	if err != nil {
		s.logger.Warnf("failed to read contact %s from cache, falling back to store - %v", id, err)
	} else if c != nil {
		return c, nil
	}

	c, err = s.contactRps.FindByID(ctx, id)
	if err != nil {
		return nil, s.classify(FetchFailedMsg, err)
	}

	if c == nil {
		return nil, apperrors.NewEntryNotFoundErr(repository.ContactNotFoundMsg)
	}

	if err := s.contactCache.Create(ctx, c); err != nil {
		s.logger.Warnf("failed to cache contact %s - %v", id, err)
	}
	return c, nil
}

func (s *contactService) Create(ctx context.Context, c *model.Contact) (*model.Contact, error) {
	c.ID = uuid.NewString()
	if err := s.contactRps.Create(ctx, c); err != nil {
		return nil, s.classify(CreateFailedMsg, err)
	}
	return c, nil
}

func (s *contactService) Update(ctx context.Context, id string, p model.ContactPatch) (*model.Contact, error) {
	c, err := s.contactRps.Update(ctx, id, p)
	if err != nil {
		return nil, s.classify(UpdateFailedMsg, err)
	}

	if err := s.contactCache.Set(ctx, c); err != nil {
		s.logger.Warnf("failed to refresh cached contact %s after update - %v", id, err)
	}
	return c, nil
}

func (s *contactService) DeleteByID(ctx context.Context, id string) error {
	if err := s.contactRps.DeleteByID(ctx, id); err != nil {
		return s.classify(DeleteFailedMsg, err)
	}

	if err := s.contactCache.DeleteByID(ctx, id); err != nil {
		s.logger.Warnf("failed to evict deleted contact %s from cache - %v", id, err)
	}
	return nil
}

// classify keeps domain errors as is, anything else is a store failure
func (s *contactService) classify(msg string, err error) error {
	var notFoundErr *apperrors.EntryNotFoundErr
	var duplicateErr *apperrors.DuplicateEmailErr
	var unavailableErr *apperrors.StoreUnavailableErr

	if errors.As(err, &notFoundErr) || errors.As(err, &duplicateErr) || errors.As(err, &unavailableErr) {
		return err
	}
	return apperrors.NewStoreUnavailableErr(msg, err)
}
