package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"court_queue/internal/models"
	"court_queue/internal/queue"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	snap queue.Snapshot
	err  error
}

func (s staticSource) Snapshot(context.Context) (queue.Snapshot, error) {
	return s.snap, s.err
}

func TestCheckpointRequestsSnapshot(t *testing.T) {
	gw := newRecordingGateway()
	s := NewSaver(gw, time.Second, zerolog.Nop())

	Checkpoint(staticSource{snap: snapshotOf(7, "A", "B")}, s, time.Second, zerolog.Nop())()

	snap, ok := s.takePending()
	require.True(t, ok)
	assert.Equal(t, uint64(7), snap.Revision)
}

func TestCheckpointSnapshotErrorRequestsNothing(t *testing.T) {
	gw := newRecordingGateway()
	s := NewSaver(gw, time.Second, zerolog.Nop())

	Checkpoint(staticSource{err: errors.New("engine stopped")}, s, time.Second, zerolog.Nop())()

	_, ok := s.takePending()
	assert.False(t, ok)
}

func TestInitSchedulerRunsJob(t *testing.T) {
	var runs int32
	c, err := InitScheduler("@every 1s", func() { atomic.AddInt32(&runs, 1) }, zerolog.Nop())
	require.NoError(t, err)
	defer c.Stop()

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestInitSchedulerRejectsBadSpec(t *testing.T) {
	_, err := InitScheduler("every now and then", func() {}, zerolog.Nop())
	assert.Error(t, err)
}

func TestCheckpointBeforeInitializeSavesNothing(t *testing.T) {
	gw := newRecordingGateway()
	s := NewSaver(gw, time.Second, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	store := queue.NewStore()
	store.AddParticipant("A")
	Checkpoint(staticSource{snap: store.Snapshot()}, s, time.Second, zerolog.Nop())()

	_, ok := s.takePending()
	assert.False(t, ok)
	assert.Never(t, func() bool { return len(gw.started) > 0 }, 200*time.Millisecond, 20*time.Millisecond,
		"хранилище не должно перезаписываться до загрузки")

	store.Initialize([]models.Participant{{Name: "Loaded"}}, nil)
	Checkpoint(staticSource{snap: store.Snapshot()}, s, time.Second, zerolog.Nop())()

	select {
	case <-gw.started:
	case <-time.After(time.Second):
		t.Fatal("checkpoint after initialize did not save")
	}
	assert.Eventually(t, func() bool { return len(gw.savedCopy()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"Loaded"}, gw.savedCopy()[0])
}
