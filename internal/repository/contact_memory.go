package repository

import (
	"context"
	"sync"

	apperrors "github.com/umalmyha/contacts/internal/errors"
	"github.com/umalmyha/contacts/internal/model"
)

type memoryContactRepository struct {
	mu       sync.RWMutex
	index    map[string]int
	emails   map[string]string
	contacts []model.Contact
}

// NewMemoryContactRepository builds ContactRepository keeping contacts in process memory
func NewMemoryContactRepository(cs ...*model.Contact) ContactRepository {
	r := &memoryContactRepository{
		index:    make(map[string]int, len(cs)),
		emails:   make(map[string]string, len(cs)),
		contacts: make([]model.Contact, 0, len(cs)),
	}

	for _, c := range cs {
		r.index[c.ID] = len(r.contacts)
		r.emails[c.Email] = c.ID
		r.contacts = append(r.contacts, *c)
	}
	return r
}

func (r *memoryContactRepository) FindByID(_ context.Context, id string) (*model.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, nil
	}

	c := r.contacts[i]
	return &c, nil
}

func (r *memoryContactRepository) FindAll(context.Context) ([]*model.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contacts := make([]*model.Contact, 0, len(r.contacts))
	for i := range r.contacts {
		c := r.contacts[i]
		contacts = append(contacts, &c)
	}
	return contacts, nil
}

func (r *memoryContactRepository) Create(_ context.Context, c *model.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.emails[c.Email]; ok {
		return apperrors.NewDuplicateEmailErr(c.Email)
	}

	r.index[c.ID] = len(r.contacts)
	r.emails[c.Email] = c.ID
	r.contacts = append(r.contacts, *c)
	return nil
}

func (r *memoryContactRepository) Update(_ context.Context, id string, p model.ContactPatch) (*model.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil, apperrors.NewEntryNotFoundErr(ContactNotFoundMsg)
	}

	existing := r.contacts[i]
	updated := p.Apply(existing)

	if updated.Email != existing.Email {
		if _, taken := r.emails[updated.Email]; taken {
			return nil, apperrors.NewDuplicateEmailErr(updated.Email)
		}
		delete(r.emails, existing.Email)
		r.emails[updated.Email] = id
	}

	r.contacts[i] = updated
	return &updated, nil
}

func (r *memoryContactRepository) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return apperrors.NewEntryNotFoundErr(ContactNotFoundMsg)
	}

	delete(r.emails, r.contacts[i].Email)
	delete(r.index, id)
	r.contacts = append(r.contacts[:i], r.contacts[i+1:]...)

	for j := i; j < len(r.contacts); j++ {
		r.index[r.contacts[j].ID] = j
	}
	return nil
}
