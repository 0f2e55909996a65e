package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type captureInfra struct {
	lastErr     error
	lastDetails string
}

func (c *captureInfra) Notify(_ context.Context, err error, details string) error {
	c.lastErr = err
	c.lastDetails = details
	return nil
}

func TestServiceForwardsToInfra(t *testing.T) {
	t.Parallel()

	infra := &captureInfra{}
	svc := NewService(infra)

	failure := errors.New("boom")
	require.NoError(t, svc.Notify(context.Background(), failure, "model=tiny"))
	require.Equal(t, failure, infra.lastErr)
	require.Equal(t, "model=tiny", infra.lastDetails)
}

func TestServiceNoopWithoutInfra(t *testing.T) {
	t.Parallel()

	svc := NewService(nil)
	require.NoError(t, svc.Notify(context.Background(), errors.New("boom"), ""))
}
