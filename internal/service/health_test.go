package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	apperrors "github.com/umalmyha/contacts/internal/errors"
)

func TestHealthService(t *testing.T) {
	ctx := context.Background()
	healthy := PingerFunc(func(context.Context) error { return nil })
	broken := PingerFunc(func(context.Context) error { return errors.New("connection refused") })

	t.Log("all backends healthy")
	{
		healthSvc := NewHealthService(Backend{Name: "mongodb", Pinger: healthy}, Backend{Name: "redis", Pinger: healthy})
		require.NoError(t, healthSvc.Check(ctx))
	}

	t.Log("first failed backend is reported")
	{
		healthSvc := NewHealthService(Backend{Name: "mongodb", Pinger: healthy}, Backend{Name: "redis", Pinger: broken})
		err := healthSvc.Check(ctx)

		var unavailableErr *apperrors.StoreUnavailableErr
		require.ErrorAs(t, err, &unavailableErr, "error must be store unavailable error")
		require.Equal(t, "redis is unavailable", unavailableErr.Message())
	}

	t.Log("no backends is healthy")
	{
		require.NoError(t, NewHealthService().Check(ctx))
	}
}
