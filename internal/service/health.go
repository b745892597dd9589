package service

import (
	"context"
	"fmt"

	apperrors "github.com/umalmyha/contacts/internal/errors"
)

// Pinger is anything able to report its availability
type Pinger interface {
	Ping(context.Context) error
}

// PingerFunc adapts function to Pinger
type PingerFunc func(context.Context) error

// Ping calls f(ctx)
func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Backend is named external dependency checked by HealthService
type Backend struct {
	Name   string
	Pinger Pinger
}

// HealthService reports availability of backends
type HealthService interface {
	Check(context.Context) error
}

type healthService struct {
	backends []Backend
}

// NewHealthService builds HealthService checking backends in provided order
func NewHealthService(backends ...Backend) HealthService {
	return &healthService{backends: backends}
}

func (s *healthService) Check(ctx context.Context) error {
	for _, b := range s.backends {
		if err := b.Pinger.Ping(ctx); err != nil {
			return apperrors.NewStoreUnavailableErr(fmt.Sprintf("%s is unavailable", b.Name), err)
		}
	}
	return nil
}
