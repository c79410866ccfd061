package watch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-dashboard/pkg/logger"
)

type tickRecorder struct {
	mu    sync.Mutex
	ticks []string
}

func (r *tickRecorder) refresh(_ context.Context, symbol string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, symbol)
}

func (r *tickRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ticks...)
}

func TestPollerFiresRepeatedly(t *testing.T) {
	rec := &tickRecorder{}
	p := NewPoller(5*time.Millisecond, logger.NewNop(), rec.refresh)

	p.Start("TCS")
	defer p.Stop()

	require.Eventually(t, func() bool {
		return len(rec.all()) >= 3
	}, time.Second, 5*time.Millisecond)
	for _, s := range rec.all() {
		assert.Equal(t, "TCS", s)
	}
}

func TestStartSupersedesRunningPoll(t *testing.T) {
	rec := &tickRecorder{}
	p := NewPoller(5*time.Millisecond, logger.NewNop(), rec.refresh)

	p.Start("OLD")
	p.Start("NEW")
	defer p.Stop()

	symbol, active := p.Active()
	assert.True(t, active)
	assert.Equal(t, "NEW", symbol)

	// Let a few periods elapse; only the new poll may tick from here on.
	time.Sleep(15 * time.Millisecond)
	before := rec.all()
	time.Sleep(30 * time.Millisecond)
	after := rec.all()

	require.Greater(t, len(after), len(before))
	for _, s := range after[len(before):] {
		assert.Equal(t, "NEW", s)
	}
}

func TestStopCancelsPoll(t *testing.T) {
	rec := &tickRecorder{}
	p := NewPoller(5*time.Millisecond, logger.NewNop(), rec.refresh)

	p.Start("TCS")
	time.Sleep(20 * time.Millisecond)
	p.Stop()

	_, active := p.Active()
	assert.False(t, active)

	// No further ticks once stopped.
	time.Sleep(10 * time.Millisecond)
	count := len(rec.all())
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, count, len(rec.all()))
}

func TestStopWithoutActivePollIsNoop(t *testing.T) {
	p := NewPoller(time.Minute, logger.NewNop(), func(context.Context, string) {})

	p.Stop()
	p.Stop()

	_, active := p.Active()
	assert.False(t, active)
}
