package tasks

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"court_queue/internal/models"
	"court_queue/internal/queue"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingGateway struct {
	mu          sync.Mutex
	inFlight    int
	maxInFlight int
	saved       [][]string
	fail        bool

	started chan struct{}
	release chan struct{}
}

func newRecordingGateway() *recordingGateway {
	return &recordingGateway{started: make(chan struct{}, 16)}
}

func (g *recordingGateway) Load(context.Context) ([]models.Participant, []models.HistoryEntry, error) {
	return nil, nil, nil
}

func (g *recordingGateway) Save(ctx context.Context, q []models.Participant, h []models.HistoryEntry) error {
	g.mu.Lock()
	g.inFlight++
	if g.inFlight > g.maxInFlight {
		g.maxInFlight = g.inFlight
	}
	g.mu.Unlock()

	g.started <- struct{}{}
	if g.release != nil {
		<-g.release
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.inFlight--
	if g.fail {
		return errors.New("sheet unavailable")
	}
	g.saved = append(g.saved, models.Names(q))
	return nil
}

func (g *recordingGateway) savedCopy() [][]string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([][]string(nil), g.saved...)
}

func snapshotOf(rev uint64, names ...string) queue.Snapshot {
	snap := queue.Snapshot{Revision: rev, Initialized: true}
	for _, n := range names {
		snap.Queue = append(snap.Queue, models.Participant{Name: n})
	}
	return snap
}

func TestSaverCoalescesWhileSaving(t *testing.T) {
	gw := newRecordingGateway()
	gw.release = make(chan struct{})
	s := NewSaver(gw, time.Second, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	s.Request(snapshotOf(1, "A"))
	<-gw.started

	s.Request(snapshotOf(2, "A", "B"))
	s.Request(snapshotOf(3, "A", "B", "C"))
	s.Request(snapshotOf(4, "A", "B", "C", "D"))
	close(gw.release)

	assert.Eventually(t, func() bool { return len(gw.savedCopy()) == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, [][]string{{"A"}, {"A", "B", "C", "D"}}, gw.savedCopy())
	assert.Equal(t, 1, gw.maxInFlight)

	rev, ok := s.SavedRevision()
	assert.True(t, ok)
	assert.Equal(t, uint64(4), rev)
}

func TestSaverSkipsAlreadySavedRevision(t *testing.T) {
	gw := newRecordingGateway()
	s := NewSaver(gw, time.Second, zerolog.Nop())

	require.NoError(t, s.Flush(context.Background(), snapshotOf(5, "A")))
	require.NoError(t, s.Flush(context.Background(), snapshotOf(5, "A")))
	require.NoError(t, s.Flush(context.Background(), snapshotOf(3, "old")))

	assert.Equal(t, [][]string{{"A"}}, gw.savedCopy())
}

func TestSaverFailureIsRetriedOnNextRequest(t *testing.T) {
	gw := newRecordingGateway()
	gw.fail = true
	s := NewSaver(gw, time.Second, zerolog.Nop())

	assert.Error(t, s.Flush(context.Background(), snapshotOf(1, "A")))
	_, ok := s.SavedRevision()
	assert.False(t, ok)

	gw.mu.Lock()
	gw.fail = false
	gw.mu.Unlock()

	require.NoError(t, s.Flush(context.Background(), snapshotOf(1, "A")))
	assert.Equal(t, [][]string{{"A"}}, gw.savedCopy())
}

func TestSaverRequestNeverBlocks(t *testing.T) {
	gw := newRecordingGateway()
	s := NewSaver(gw, time.Second, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			s.Request(snapshotOf(uint64(i), "A"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Request blocked without a running worker")
	}
}
