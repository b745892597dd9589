package service

import (
	"context"
	"sync"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	apperrors "github.com/umalmyha/contacts/internal/errors"
	"github.com/umalmyha/contacts/internal/model"
	"github.com/umalmyha/contacts/internal/repository"
)

// pausingContactRepository holds the next FindByID after its store read until resumed
type pausingContactRepository struct {
	repository.ContactRepository
	mu      sync.Mutex
	armed   bool
	read    chan struct{}
	release chan struct{}
}

func newPausingContactRepository(cs ...*model.Contact) *pausingContactRepository {
	return &pausingContactRepository{
		ContactRepository: repository.NewMemoryContactRepository(cs...),
		read:              make(chan struct{}),
		release:           make(chan struct{}),
	}
}

func (r *pausingContactRepository) pauseNextRead() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.armed = true
}

func (r *pausingContactRepository) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	c, err := r.ContactRepository.FindByID(ctx, id)

	r.mu.Lock()
	armed := r.armed
	r.armed = false
	r.mu.Unlock()

	if armed {
		r.read <- struct{}{}
		<-r.release
	}
	return c, err
}

// memoryContactCache follows redis cache rules: fill only if absent, overwrite unless deleted
type memoryContactCache struct {
	mu       sync.Mutex
	contacts map[string]model.Contact
	deleted  map[string]bool
}

func newMemoryContactCache() *memoryContactCache {
	return &memoryContactCache{contacts: make(map[string]model.Contact), deleted: make(map[string]bool)}
}

func (m *memoryContactCache) FindByID(_ context.Context, id string) (*model.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.contacts[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memoryContactCache) Create(_ context.Context, c *model.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.contacts[c.ID]; ok || m.deleted[c.ID] {
		return nil
	}
	m.contacts[c.ID] = *c
	return nil
}

func (m *memoryContactCache) Set(_ context.Context, c *model.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deleted[c.ID] {
		return nil
	}
	m.contacts[c.ID] = *c
	return nil
}

func (m *memoryContactCache) DeleteByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.contacts, id)
	m.deleted[id] = true
	return nil
}

type findResult struct {
	contact *model.Contact
	err     error
}

// findDuringWrite runs FindByID, executes write while store read result is held and then lets FindByID fill the cache
func findDuringWrite(repo *pausingContactRepository, svc ContactService, id string, write func()) findResult {
	repo.pauseNextRead()

	done := make(chan findResult, 1)
	go func() {
		c, err := svc.FindByID(context.Background(), id)
		done <- findResult{contact: c, err: err}
	}()

	<-repo.read
	write()
	close(repo.release)

	return <-done
}

func TestFindByIDOverlappingUpdate(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()
	contact := &model.Contact{ID: "1d6c2fa4-6f53-4c1e-9c55-58b3c1a0e2a1", FirstName: "Ann", LastName: "Lee", Email: "a@x.com", Phone: "1"}

	repo := newPausingContactRepository(contact)
	svc := NewContactService(repo, newMemoryContactCache(), logger)

	phone := "999"
	res := findDuringWrite(repo, svc, contact.ID, func() {
		_, err := svc.Update(ctx, contact.ID, model.ContactPatch{Phone: &phone})
		require.NoError(t, err, "failed to update contact")
	})
	require.NoError(t, res.err, "overlapping read failed")

	t.Log("read after update returns stored values, not the overlapping read result")
	{
		c, err := svc.FindByID(ctx, contact.ID)
		require.NoError(t, err, "failed to read contact")
		require.Equal(t, phone, c.Phone, "stale contact was served from cache")
	}
}

func TestFindByIDOverlappingDelete(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()
	contact := &model.Contact{ID: "7a0f3b7e-9d0e-4f7a-8d39-2b1c53e6a9f0", FirstName: "Ann", LastName: "Lee", Email: "a@x.com", Phone: "1"}

	repo := newPausingContactRepository(contact)
	svc := NewContactService(repo, newMemoryContactCache(), logger)

	res := findDuringWrite(repo, svc, contact.ID, func() {
		require.NoError(t, svc.DeleteByID(ctx, contact.ID), "failed to delete contact")
	})
	require.NoError(t, res.err, "overlapping read failed")

	t.Log("read after delete reports contact as missing")
	{
		c, err := svc.FindByID(ctx, contact.ID)
		require.Nil(t, c, "deleted contact was served from cache")
		require.IsType(t, &apperrors.EntryNotFoundErr{}, err, "error must be not found error")
	}
}
