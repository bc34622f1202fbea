package events

import (
	"context"
	"testing"

	"cineticket/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewPublisher_None(t *testing.T) {
	p, err := NewPublisher(utils.EventsConfig{Driver: DriverNone}, zap.NewNop())
	require.NoError(t, err)

	assert.IsType(t, NoopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), "k", BookingPaid{EventType: EventBookingPaid}))
	assert.NoError(t, p.Close())
}

func TestNewPublisher_Unknown(t *testing.T) {
	_, err := NewPublisher(utils.EventsConfig{Driver: "carrier-pigeon"}, zap.NewNop())
	assert.Error(t, err)
}
