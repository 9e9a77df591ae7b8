package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLatencyDelayScales(t *testing.T) {
	l := NewLatency(DefaultDelays, 0.5)
	assert.Equal(t, 200*time.Millisecond, l.Delay(OpLeadCreate))
	assert.Equal(t, 150*time.Millisecond, l.Delay(OpLeadGetAll))
}

func TestLatencyDisabled(t *testing.T) {
	var nilLatency *Latency
	assert.Zero(t, nilLatency.Delay(OpLeadGetAll))
	assert.Zero(t, NoLatency().Delay(OpLeadGetAll))
	assert.Zero(t, NewLatency(DefaultDelays, 0).Delay(OpLeadGetAll))
	assert.NoError(t, NoLatency().Wait(context.Background(), OpLeadGetAll))
}

func TestLatencyWaitHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewLatency(DefaultDelays, 1).Wait(ctx, OpLeadGetAll)
	assert.ErrorIs(t, err, context.Canceled)

	// já cancelado e sem atraso também não segue
	assert.ErrorIs(t, NoLatency().Wait(ctx, OpLeadGetAll), context.Canceled)
}

func TestLatencyWaitElapses(t *testing.T) {
	l := NewLatency(map[Op]time.Duration{OpLeadGetByID: 20 * time.Millisecond}, 1)

	start := time.Now()
	assert.NoError(t, l.Wait(context.Background(), OpLeadGetByID))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
